package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbase/ledgerbase/internal/api/middleware"
	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/core/statement"
	"github.com/ledgerbase/ledgerbase/internal/core/tag"
	"github.com/ledgerbase/ledgerbase/internal/core/transaction"
	"github.com/ledgerbase/ledgerbase/internal/core/validation"
)

type TransactionHandler struct {
	transactions *repository.Repository[transaction.Transaction]
	statements   *repository.ViewRepository[statement.Statement, statement.StatementView]
	tags         *repository.Repository[tag.Tag]
	links        *transaction.Links
	validator    *validation.Validator
}

func NewTransactionHandler(
	transactions *repository.Repository[transaction.Transaction],
	statements *repository.ViewRepository[statement.Statement, statement.StatementView],
	tags *repository.Repository[tag.Tag],
	links *transaction.Links,
	validator *validation.Validator,
) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		statements:   statements,
		tags:         tags,
		links:        links,
		validator:    validator,
	}
}

func (h *TransactionHandler) List(c *gin.Context) {
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

	statementID, err := queryIntValue(c, "statement_id")
	if err != nil {
		respondError(c, err)
		return
	}

	filters := []*repository.Filter{
		repository.Eq("statement_id", statementID),
		repository.Eq("merchant", queryValue(c, "merchant")),
	}

	txns, err := h.transactions.GetEntries(c.Request.Context(), userID, filters, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	if txns == nil {
		txns = []transaction.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{"transactions": txns})
}

func (h *TransactionHandler) Create(c *gin.Context) {
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
	if err := h.validator.Validate(fields, transaction.Schema); err != nil {
		respondError(c, err)
		return
	}

	if statementID, ok := fieldInt64(fields, "statement_id"); ok {
		if _, err := h.statements.GetEntry(c.Request.Context(), userID, statementID); err != nil {
			respondError(c, err)
			return
		}
	}

	t, err := h.transactions.AddEntry(c.Request.Context(), userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	t, err := h.transactions.GetEntry(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) Update(c *gin.Context) {
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
	if err := h.validator.ValidatePartial(fields, transaction.Schema); err != nil {
		respondError(c, err)
		return
	}

	if statementID, ok := fieldInt64(fields, "statement_id"); ok {
		if _, err := h.statements.GetEntry(c.Request.Context(), userID, statementID); err != nil {
			respondError(c, err)
			return
		}
	}

	t, err := h.transactions.UpdateEntry(c.Request.Context(), userID, id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, t)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.transactions.DeleteEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Tags lists the tags filed against a transaction.
func (h *TransactionHandler) Tags(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.transactions.GetEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	tags, err := h.links.TagsFor(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if tags == nil {
		tags = []tag.Tag{}
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// AttachTag files the transaction under a tag. Ownership of both sides is
// confirmed through the scoped GetEntry before the link is written.
func (h *TransactionHandler) AttachTag(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "tagId")
	if !ok {
		return
	}

	if _, err := h.transactions.GetEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.tags.GetEntry(c.Request.Context(), userID, tagID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.links.Attach(c.Request.Context(), userID, id, tagID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *TransactionHandler) DetachTag(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tagID, ok := parseIDParam(c, "tagId")
	if !ok {
		return
	}

	if _, err := h.transactions.GetEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	if err := h.links.Detach(c.Request.Context(), userID, id, tagID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
