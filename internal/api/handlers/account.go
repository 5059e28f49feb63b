package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbase/ledgerbase/internal/api/middleware"
	"github.com/ledgerbase/ledgerbase/internal/core/account"
	"github.com/ledgerbase/ledgerbase/internal/core/bank"
	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/core/validation"
)

type AccountHandler struct {
	accounts  *repository.ViewRepository[account.Account, account.AccountView]
	banks     *repository.Repository[bank.Bank]
	validator *validation.Validator
}

func NewAccountHandler(
	accounts *repository.ViewRepository[account.Account, account.AccountView],
	banks *repository.Repository[bank.Bank],
	validator *validation.Validator,
) *AccountHandler {
	return &AccountHandler{accounts: accounts, banks: banks, validator: validator}
}

// List serves accounts from the balance view so each row carries its
// aggregated balance.
func (h *AccountHandler) List(c *gin.Context) {
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

	bankID, err := queryIntValue(c, "bank_id")
	if err != nil {
		respondError(c, err)
		return
	}

	filters := []*repository.Filter{
		repository.Eq("bank_id", bankID),
		repository.Eq("account_type", queryValue(c, "account_type")),
	}

	accounts, err := h.accounts.GetViewEntries(c.Request.Context(), userID, filters, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	if accounts == nil {
		accounts = []account.AccountView{}
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (h *AccountHandler) Create(c *gin.Context) {
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
	if err := h.validator.Validate(fields, account.Schema); err != nil {
		respondError(c, err)
		return
	}

	// The referenced bank must be visible to the acting user.
	if bankID, ok := fieldInt64(fields, "bank_id"); ok {
		if _, err := h.banks.GetEntry(c.Request.Context(), userID, bankID); err != nil {
			respondError(c, err)
			return
		}
	}

	a, err := h.accounts.AddEntry(c.Request.Context(), userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *AccountHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	a, err := h.accounts.GetViewEntry(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) Update(c *gin.Context) {
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
	if err := h.validator.ValidatePartial(fields, account.Schema); err != nil {
		respondError(c, err)
		return
	}

	if bankID, ok := fieldInt64(fields, "bank_id"); ok {
		if _, err := h.banks.GetEntry(c.Request.Context(), userID, bankID); err != nil {
			respondError(c, err)
			return
		}
	}

	a, err := h.accounts.UpdateEntry(c.Request.Context(), userID, id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *AccountHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.accounts.DeleteEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
