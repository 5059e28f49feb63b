package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbase/ledgerbase/internal/api/middleware"
	"github.com/ledgerbase/ledgerbase/internal/core/account"
	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/core/statement"
	"github.com/ledgerbase/ledgerbase/internal/core/transaction"
	"github.com/ledgerbase/ledgerbase/internal/core/validation"
)

type StatementHandler struct {
	statements   *repository.ViewRepository[statement.Statement, statement.StatementView]
	accounts     *repository.ViewRepository[account.Account, account.AccountView]
	transactions *repository.Repository[transaction.Transaction]
	validator    *validation.Validator
}

func NewStatementHandler(
	statements *repository.ViewRepository[statement.Statement, statement.StatementView],
	accounts *repository.ViewRepository[account.Account, account.AccountView],
	transactions *repository.Repository[transaction.Transaction],
	validator *validation.Validator,
) *StatementHandler {
	return &StatementHandler{
		statements:   statements,
		accounts:     accounts,
		transactions: transactions,
		validator:    validator,
	}
}

// List serves statements from the balance view; ?account_id= narrows to one
// account and ?sort=/&order= may reference derived columns such as balance.
func (h *StatementHandler) List(c *gin.Context) {
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

	accountID, err := queryIntValue(c, "account_id")
	if err != nil {
		respondError(c, err)
		return
	}

	filters := []*repository.Filter{
		repository.Eq("account_id", accountID),
	}

	statements, err := h.statements.GetViewEntries(c.Request.Context(), userID, filters, sort)
	if err != nil {
		respondError(c, err)
		return
	}
	if statements == nil {
		statements = []statement.StatementView{}
	}

	c.JSON(http.StatusOK, gin.H{"statements": statements})
}

func (h *StatementHandler) Create(c *gin.Context) {
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
	if err := h.validator.Validate(fields, statement.Schema); err != nil {
		respondError(c, err)
		return
	}

	if accountID, ok := fieldInt64(fields, "account_id"); ok {
		if _, err := h.accounts.GetEntry(c.Request.Context(), userID, accountID); err != nil {
			respondError(c, err)
			return
		}
	}

	s, err := h.statements.AddEntry(c.Request.Context(), userID, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

func (h *StatementHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := h.statements.GetViewEntry(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *StatementHandler) Update(c *gin.Context) {
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
	if err := h.validator.ValidatePartial(fields, statement.Schema); err != nil {
		respondError(c, err)
		return
	}

	if accountID, ok := fieldInt64(fields, "account_id"); ok {
		if _, err := h.accounts.GetEntry(c.Request.Context(), userID, accountID); err != nil {
			respondError(c, err)
			return
		}
	}

	s, err := h.statements.UpdateEntry(c.Request.Context(), userID, id, fields)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *StatementHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.statements.DeleteEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// Transactions lists the transactions on one statement.
func (h *StatementHandler) Transactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := h.statements.GetEntry(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}

	sort, err := sortFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	filters := []*repository.Filter{
		repository.Eq("statement_id", id),
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
