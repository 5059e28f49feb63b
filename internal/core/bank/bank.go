package bank

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

// Bank is a financial institution a user holds accounts with.
type Bank struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Schema validates bank payloads. Updates are validated against the partial
// form of the same schema.
var Schema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []interface{}{"name"},
	"properties": map[string]interface{}{
		"name": map[string]interface{}{"type": "string", "minLength": 1},
	},
}

var table = repository.Table[Bank]{
	Name:        "banks",
	IDColumn:    "id",
	OwnerColumn: "user_id",
	Columns:     []string{"id", "user_id", "name", "created_at"},
	Fields: []repository.Field{
		repository.StringField("name"),
	},
	ScanRow: func(s repository.Scanner) (Bank, error) {
		var b Bank
		err := s.Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt)
		return b, err
	},
}

func NewRepository(db *postgres.Client) (*repository.Repository[Bank], error) {
	return repository.New(db, table)
}
