package statement

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

// Statement is one billing period of an account.
type Statement struct {
	ID        int64      `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	AccountID int64      `json:"account_id"`
	IssueDate time.Time  `json:"issue_date"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// StatementView adds the statement balance and transaction count derived by
// the statement_balances view.
type StatementView struct {
	Statement
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int64           `json:"transaction_count"`
}

var Schema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []interface{}{"account_id", "issue_date"},
	"properties": map[string]interface{}{
		"account_id": map[string]interface{}{"type": "integer"},
		"issue_date": map[string]interface{}{"type": "string", "format": "date"},
		"due_date":   map[string]interface{}{"type": []interface{}{"string", "null"}, "format": "date"},
	},
}

var table = repository.Table[Statement]{
	Name:        "statements",
	IDColumn:    "id",
	OwnerColumn: "user_id",
	Columns:     []string{"id", "user_id", "account_id", "issue_date", "due_date", "created_at"},
	Fields: []repository.Field{
		repository.IntField("account_id"),
		repository.DateField("issue_date"),
		repository.DateField("due_date"),
	},
	ScanRow: func(s repository.Scanner) (Statement, error) {
		var st Statement
		var due sql.NullTime
		err := s.Scan(&st.ID, &st.UserID, &st.AccountID, &st.IssueDate, &due, &st.CreatedAt)
		if due.Valid {
			st.DueDate = &due.Time
		}
		return st, err
	},
}

var viewTable = repository.Table[StatementView]{
	Name:        "statement_balances",
	IDColumn:    "id",
	OwnerColumn: "user_id",
	Columns:     []string{"id", "user_id", "account_id", "issue_date", "due_date", "created_at", "balance", "transaction_count"},
	ScanRow: func(s repository.Scanner) (StatementView, error) {
		var v StatementView
		var due sql.NullTime
		err := s.Scan(&v.ID, &v.UserID, &v.AccountID, &v.IssueDate, &due, &v.CreatedAt, &v.Balance, &v.TransactionCount)
		if due.Valid {
			v.DueDate = &due.Time
		}
		return v, err
	},
}

func NewRepository(db *postgres.Client) (*repository.ViewRepository[Statement, StatementView], error) {
	return repository.NewView(db, table, viewTable)
}
