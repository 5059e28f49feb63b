package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

// ViewRepository pairs a base table with a read-optimized SQL view over the
// same rows. The view is addressable by the base id and exposes derived
// columns. Which relation a call targets is decided by the method called,
// never by shared state, so view reads cannot leak into base reads and all
// writes go through the embedded base repository. The view itself is never
// mutated.
type ViewRepository[E any, V any] struct {
	*Repository[E]
	view *Repository[V]
}

func NewView[E any, V any](db *postgres.Client, base Table[E], view Table[V]) (*ViewRepository[E, V], error) {
	baseRepo, err := New(db, base)
	if err != nil {
		return nil, err
	}
	viewRepo, err := New(db, view)
	if err != nil {
		return nil, err
	}
	return &ViewRepository[E, V]{Repository: baseRepo, view: viewRepo}, nil
}

// GetViewEntries is GetEntries answered by the view relation. Filters and
// sort may reference the view's derived columns.
func (r *ViewRepository[E, V]) GetViewEntries(ctx context.Context, userID uuid.UUID, filters []*Filter, sort *Sort) ([]V, error) {
	return r.view.GetEntries(ctx, userID, filters, sort)
}

// FindViewEntry is FindEntry answered by the view relation.
func (r *ViewRepository[E, V]) FindViewEntry(ctx context.Context, userID uuid.UUID, filters []*Filter, sort *Sort, requireUnique bool) (*V, error) {
	return r.view.FindEntry(ctx, userID, filters, sort, requireUnique)
}

// GetViewEntry is GetEntry answered by the view relation.
func (r *ViewRepository[E, V]) GetViewEntry(ctx context.Context, userID uuid.UUID, id int64) (*V, error) {
	return r.view.GetEntry(ctx, userID, id)
}
