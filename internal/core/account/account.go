package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

const (
	TypeChecking = "checking"
	TypeSavings  = "savings"
	TypeCredit   = "credit"
)

// Account is a bank or credit account owned by a user.
type Account struct {
	ID          int64     `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	BankID      int64     `json:"bank_id"`
	AccountType string    `json:"account_type"`
	LastFour    string    `json:"last_four"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// AccountView is the read-only projection of an account with its balance
// aggregated from all transactions, served by the account_balances view.
type AccountView struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}

var Schema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []interface{}{"bank_id", "account_type", "last_four"},
	"properties": map[string]interface{}{
		"bank_id":      map[string]interface{}{"type": "integer"},
		"account_type": map[string]interface{}{"type": "string", "enum": []interface{}{TypeChecking, TypeSavings, TypeCredit}},
		"last_four":    map[string]interface{}{"type": "string", "pattern": "^[0-9]{4}$"},
		"active":       map[string]interface{}{"type": "boolean"},
	},
}

var table = repository.Table[Account]{
	Name:        "accounts",
	IDColumn:    "id",
	OwnerColumn: "user_id",
	Columns:     []string{"id", "user_id", "bank_id", "account_type", "last_four", "active", "created_at"},
	Fields: []repository.Field{
		repository.IntField("bank_id"),
		repository.StringField("account_type"),
		repository.StringField("last_four"),
		repository.BoolField("active"),
	},
	ScanRow: func(s repository.Scanner) (Account, error) {
		var a Account
		err := s.Scan(&a.ID, &a.UserID, &a.BankID, &a.AccountType, &a.LastFour, &a.Active, &a.CreatedAt)
		return a, err
	},
}

var viewTable = repository.Table[AccountView]{
	Name:        "account_balances",
	IDColumn:    "id",
	OwnerColumn: "user_id",
	Columns:     []string{"id", "user_id", "bank_id", "account_type", "last_four", "active", "created_at", "balance"},
	ScanRow: func(s repository.Scanner) (AccountView, error) {
		var v AccountView
		err := s.Scan(&v.ID, &v.UserID, &v.BankID, &v.AccountType, &v.LastFour, &v.Active, &v.CreatedAt, &v.Balance)
		return v, err
	},
}

func NewRepository(db *postgres.Client) (*repository.ViewRepository[Account, AccountView], error) {
	return repository.NewView(db, table, viewTable)
}
