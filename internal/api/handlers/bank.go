package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbase/ledgerbase/internal/api/middleware"
	"github.com/ledgerbase/ledgerbase/internal/core/bank"
	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/core/validation"
)

type BankHandler struct {
	banks     *repository.Repository[bank.Bank]
	validator *validation.Validator
}

func NewBankHandler(banks *repository.Repository[bank.Bank], validator *validation.Validator) *BankHandler {
	return &BankHandler{banks: banks, validator: validator}
}

func (h *BankHandler) List(c *gin.Context) {
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

	banks, err := h.banks.GetEntries(c.Request.Context(), userID, filters, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	if banks == nil {
		banks = []bank.Bank{}
	}

	c.JSON(http.StatusOK, gin.H{"banks": banks})
}

func (h *BankHandler) Create(c *gin.Context) {
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
	if err := h.validator.Validate(fields, bank.Schema); err != nil {
		respondError(c, err)
		return
	}

	b, err := h.banks.AddEntry(c.Request.Context(), userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BankHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.banks.GetEntry(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BankHandler) Update(c *gin.Context) {
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
	if err := h.validator.ValidatePartial(fields, bank.Schema); err != nil {
		respondError(c, err)
		return
	}

	b, err := h.banks.UpdateEntry(c.Request.Context(), userID, id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

func (h *BankHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.banks.DeleteEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
