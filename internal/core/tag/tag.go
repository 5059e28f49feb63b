package tag

import (
	"time"

	"github.com/google/uuid"

	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

// Tag is a user-defined category transactions can be filed under.
type Tag struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

var Schema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []interface{}{"name"},
	"properties": map[string]interface{}{
		"name": map[string]interface{}{"type": "string", "minLength": 1},
	},
}

var table = repository.Table[Tag]{
	Name:        "tags",
	IDColumn:    "id",
	OwnerColumn: "user_id",
	Columns:     []string{"id", "user_id", "name", "created_at"},
	Fields: []repository.Field{
		repository.StringField("name"),
	},
	ScanRow: func(s repository.Scanner) (Tag, error) {
		var t Tag
		err := s.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt)
		return t, err
	},
}

func NewRepository(db *postgres.Client) (*repository.Repository[Tag], error) {
	return repository.New(db, table)
}
