package transaction

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

// Transaction is one charge or payment on a statement. Amounts are signed:
// charges positive, payments negative.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	StatementID int64           `json:"statement_id"`
	Date        time.Time       `json:"txn_date"`
	Merchant    string          `json:"merchant"`
	Amount      decimal.Decimal `json:"amount"`
	Note        *string         `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

var Schema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []interface{}{"statement_id", "txn_date", "merchant", "amount"},
	"properties": map[string]interface{}{
		"statement_id": map[string]interface{}{"type": "integer"},
		"txn_date":     map[string]interface{}{"type": "string", "format": "date"},
		"merchant":     map[string]interface{}{"type": "string", "minLength": 1},
		"amount":       map[string]interface{}{"type": []interface{}{"number", "string"}},
		"note":         map[string]interface{}{"type": []interface{}{"string", "null"}},
	},
}

var table = repository.Table[Transaction]{
	Name:        "transactions",
	IDColumn:    "id",
	OwnerColumn: "user_id",
	Columns:     []string{"id", "user_id", "statement_id", "txn_date", "merchant", "amount", "note", "created_at"},
	Fields: []repository.Field{
		repository.IntField("statement_id"),
		repository.DateField("txn_date"),
		repository.StringField("merchant"),
		repository.MoneyField("amount"),
		repository.StringField("note"),
	},
	ScanRow: func(s repository.Scanner) (Transaction, error) {
		var t Transaction
		var note sql.NullString
		err := s.Scan(&t.ID, &t.UserID, &t.StatementID, &t.Date, &t.Merchant, &t.Amount, &note, &t.CreatedAt)
		if note.Valid {
			t.Note = &note.String
		}
		return t, err
	},
}

func NewRepository(db *postgres.Client) (*repository.Repository[Transaction], error) {
	return repository.New(db, table)
}
