package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerbase/ledgerbase/internal/core/tag"
	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

// Links manages the transaction/tag association table. Ownership of both
// sides is confirmed by the caller through the repositories' GetEntry before
// any link is touched; the queries here still carry the user predicate so a
// stale id can never cross user boundaries.
type Links struct {
	db *postgres.Client
}

func NewLinks(db *postgres.Client) *Links {
	return &Links{db: db}
}

// Attach files the transaction under the tag. Attaching twice is a no-op.
func (l *Links) Attach(ctx context.Context, userID uuid.UUID, transactionID, tagID int64) error {
	query := `
		INSERT INTO transaction_tags (transaction_id, tag_id)
		SELECT t.id, g.id
		FROM transactions t, tags g
		WHERE t.id = $1 AND t.user_id = $3 AND g.id = $2 AND g.user_id = $3
		ON CONFLICT DO NOTHING`
	_, err := l.db.DB.ExecContext(ctx, query, transactionID, tagID, userID)
	return err
}

// Detach removes the link if present. Detaching an absent link is a no-op.
func (l *Links) Detach(ctx context.Context, userID uuid.UUID, transactionID, tagID int64) error {
	query := `
		DELETE FROM transaction_tags tt
		USING transactions t
		WHERE tt.transaction_id = t.id
		  AND tt.transaction_id = $1 AND tt.tag_id = $2 AND t.user_id = $3`
	_, err := l.db.DB.ExecContext(ctx, query, transactionID, tagID, userID)
	return err
}

// TagsFor returns the tags filed against one transaction.
func (l *Links) TagsFor(ctx context.Context, userID uuid.UUID, transactionID int64) ([]tag.Tag, error) {
	query := `
		SELECT g.id, g.user_id, g.name, g.created_at
		FROM tags g
		JOIN transaction_tags tt ON tt.tag_id = g.id
		WHERE tt.transaction_id = $1 AND g.user_id = $2
		ORDER BY g.name ASC`

	rows, err := l.db.DB.QueryContext(ctx, query, transactionID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []tag.Tag
	for rows.Next() {
		var t tag.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// TransactionsFor returns the transactions filed under one tag, newest first.
func (l *Links) TransactionsFor(ctx context.Context, userID uuid.UUID, tagID int64) ([]Transaction, error) {
	query := `
		SELECT t.id, t.user_id, t.statement_id, t.txn_date, t.merchant, t.amount, t.note, t.created_at
		FROM transactions t
		JOIN transaction_tags tt ON tt.transaction_id = t.id
		WHERE tt.tag_id = $1 AND t.user_id = $2
		ORDER BY t.txn_date DESC`

	rows, err := l.db.DB.QueryContext(ctx, query, tagID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []Transaction
	for rows.Next() {
		t, err := table.ScanRow(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
