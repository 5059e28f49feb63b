package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbase/ledgerbase/internal/api/middleware"
	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/core/tag"
	"github.com/ledgerbase/ledgerbase/internal/core/transaction"
	"github.com/ledgerbase/ledgerbase/internal/core/validation"
)

type TagHandler struct {
	tags      *repository.Repository[tag.Tag]
	links     *transaction.Links
	validator *validation.Validator
}

func NewTagHandler(tags *repository.Repository[tag.Tag], links *transaction.Links, validator *validation.Validator) *TagHandler {
	return &TagHandler{tags: tags, links: links, validator: validator}
}

func (h *TagHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sort, err := sortFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	filters := []*repository.Filter{
		repository.Eq("name", queryValue(c, "name")),
	}

	tags, err := h.tags.GetEntries(c.Request.Context(), userID, filters, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	if tags == nil {
		tags = []tag.Tag{}
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *TagHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fields, err := bindFields(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.Validate(fields, tag.Schema); err != nil {
		respondError(c, err)
		return
	}

	t, err := h.tags.AddEntry(c.Request.Context(), userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (h *TagHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.tags.GetEntry(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TagHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fields, err := bindFields(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validator.ValidatePartial(fields, tag.Schema); err != nil {
		respondError(c, err)
		return
	}

	t, err := h.tags.UpdateEntry(c.Request.Context(), userID, id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TagHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tags.DeleteEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Transactions lists the transactions filed under one tag.
func (h *TagHandler) Transactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.tags.GetEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	txns, err := h.links.TransactionsFor(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if txns == nil {
		txns = []transaction.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}
