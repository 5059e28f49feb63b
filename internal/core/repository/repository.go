package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerbase/ledgerbase/internal/core/validation"
	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

var (
	ErrNotFound  = errors.New("entry not found")
	ErrNotUnique = errors.New("entry is not unique")
)

// Repository provides user-scoped CRUD and query access to one relation.
// Every query it issues carries the owner-column predicate, so a row owned
// by another user is indistinguishable from a row that does not exist.
type Repository[E any] struct {
	db    *postgres.Client
	table Table[E]
}

// New builds a repository over the given table descriptor. The descriptor is
// validated here; a repository cannot be constructed without a usable model.
func New[E any](db *postgres.Client, table Table[E]) (*Repository[E], error) {
	if err := table.validate(); err != nil {
		return nil, err
	}
	return &Repository[E]{db: db, table: table}, nil
}

// Table returns a copy of the table descriptor.
func (r *Repository[E]) Table() Table[E] {
	return r.table
}

func (r *Repository[E]) selectQuery(userID uuid.UUID, filters []*Filter, sort *Sort) (string, []interface{}, error) {
	where := []string{fmt.Sprintf("%s = $1", r.table.OwnerColumn)}
	args := []interface{}{userID}
	argIndex := 2

	for _, f := range filters {
		if f == nil {
			continue
		}
		if !r.table.hasColumn(f.Column) {
			return "", nil, fieldError(f.Column, "unknown filter column")
		}
		if len(f.Values) == 1 {
			where = append(where, fmt.Sprintf("%s = $%d", f.Column, argIndex))
			args = append(args, f.Values[0])
			argIndex++
			continue
		}
		placeholders := make([]string, len(f.Values))
		for i, v := range f.Values {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, v)
			argIndex++
		}
		where = append(where, fmt.Sprintf("%s IN (%s)", f.Column, strings.Join(placeholders, ", ")))
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s",
		r.table.selectColumns(), r.table.Name, strings.Join(where, " AND "))

	if sort != nil {
		if err := validation.ValidateSortOrder(sort.Direction); err != nil {
			return "", nil, err
		}
		if !r.table.hasColumn(sort.Column) {
			return "", nil, fieldError(sort.Column, "unknown sort column")
		}
		dir := "ASC"
		if sort.Direction == validation.Descending {
			dir = "DESC"
		}
		query = fmt.Sprintf("%s ORDER BY %s %s", query, sort.Column, dir)
	}

	return query, args, nil
}

// GetEntries returns all rows owned by userID that match the non-nil filters
// (conjunction), ordered by sort if given. An empty result is not an error.
func (r *Repository[E]) GetEntries(ctx context.Context, userID uuid.UUID, filters []*Filter, sort *Sort) ([]E, error) {
	query, args, err := r.selectQuery(userID, filters, sort)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// FindEntry returns the single row matching the filters, or nil when nothing
// matches. When every filter is nil the query is skipped entirely and nil is
// returned. With requireUnique, more than one match is ErrNotUnique; without
// it the first row produced by the query is returned, which is unspecified
// unless a sort is given.
func (r *Repository[E]) FindEntry(ctx context.Context, userID uuid.UUID, filters []*Filter, sort *Sort, requireUnique bool) (*E, error) {
	if allNil(filters) {
		return nil, nil
	}

	query, args, err := r.selectQuery(userID, filters, sort)
	if err != nil {
		return nil, err
	}
	// Two rows are enough to detect a uniqueness violation.
	query += " LIMIT 2"

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries, err := r.scanEntries(rows)
	if err != nil {
		return nil, err
	}

	switch {
	case len(entries) == 0:
		return nil, nil
	case len(entries) > 1 && requireUnique:
		return nil, ErrNotUnique
	default:
		return &entries[0], nil
	}
}

// GetEntry fetches one row by id under the acting user's scope. A row owned
// by another user yields the same ErrNotFound as a nonexistent id.
func (r *Repository[E]) GetEntry(ctx context.Context, userID uuid.UUID, id int64) (*E, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
		r.table.selectColumns(), r.table.Name, r.table.OwnerColumn, r.table.IDColumn)

	entry, err := r.table.ScanRow(r.db.DB.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// AddEntry inserts a new row with the given field values and rereads it
// through GetEntry, so the returned entry carries server-generated columns
// and is guaranteed visible under the acting user's scope. The owner column
// is always set to userID and cannot be supplied as a field.
func (r *Repository[E]) AddEntry(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) (*E, error) {
	cols, vals, err := r.table.convertFields(fields)
	if err != nil {
		return nil, err
	}

	insertCols := append([]string{r.table.OwnerColumn}, cols...)
	args := append([]interface{}{userID}, vals...)
	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.table.Name, strings.Join(insertCols, ", "), strings.Join(placeholders, ", "), r.table.IDColumn)

	var id int64
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, err
	}

	return r.GetEntry(ctx, userID, id)
}

// UpdateEntry applies the given field values to the row with the given id.
// Ownership is confirmed through GetEntry first, so the operation fails
// closed for rows the user cannot see. Field validation is all-or-nothing:
// an unknown field aborts the update before anything is written.
func (r *Repository[E]) UpdateEntry(ctx context.Context, userID uuid.UUID, id int64, fields map[string]interface{}) (*E, error) {
	if _, err := r.GetEntry(ctx, userID, id); err != nil {
		return nil, err
	}

	cols, vals, err := r.table.convertFields(fields)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return r.GetEntry(ctx, userID, id)
	}

	set := make([]string, len(cols))
	for i, c := range cols {
		set[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	args := append(vals, id, userID)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d AND %s = $%d",
		r.table.Name, strings.Join(set, ", "),
		r.table.IDColumn, len(cols)+1, r.table.OwnerColumn, len(cols)+2)

	if _, err := r.db.DB.ExecContext(ctx, query, args...); err != nil {
		return nil, err
	}

	return r.GetEntry(ctx, userID, id)
}

// DeleteEntry removes the row with the given id after confirming ownership
// through GetEntry.
func (r *Repository[E]) DeleteEntry(ctx context.Context, userID uuid.UUID, id int64) error {
	if _, err := r.GetEntry(ctx, userID, id); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1 AND %s = $2",
		r.table.Name, r.table.IDColumn, r.table.OwnerColumn)
	_, err := r.db.DB.ExecContext(ctx, query, id, userID)
	return err
}

func (r *Repository[E]) scanEntries(rows *sql.Rows) ([]E, error) {
	var entries []E
	for rows.Next() {
		entry, err := r.table.ScanRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func fieldError(field, message string) error {
	return &validation.ValidationErrors{Errors: []validation.ValidationError{{
		Field:   field,
		Message: message,
	}}}
}
