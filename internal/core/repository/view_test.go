package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type widgetBalance struct {
	widget
	Total int64
}

var widgetBalanceTable = Table[widgetBalance]{
	Name:        "widget_balances",
	IDColumn:    "id",
	OwnerColumn: "user_id",
	Columns:     []string{"id", "user_id", "name", "size", "total"},
	ScanRow: func(s Scanner) (widgetBalance, error) {
		var w widgetBalance
		err := s.Scan(&w.ID, &w.UserID, &w.Name, &w.Size, &w.Total)
		return w, err
	},
}

func TestNewView_ValidatesBothTables(t *testing.T) {
	if _, err := NewView[widget, widgetBalance](nil, widgetTable, widgetBalanceTable); err != nil {
		t.Fatalf("NewView returned error: %v", err)
	}

	bad := widgetBalanceTable
	bad.Columns = nil
	if _, err := NewView[widget, widgetBalance](nil, widgetTable, bad); err == nil {
		t.Error("NewView should reject an invalid view table")
	}
}

func TestViewRepository_ReadsTargetTheView(t *testing.T) {
	r, err := NewView[widget, widgetBalance](nil, widgetTable, widgetBalanceTable)
	if err != nil {
		t.Fatalf("NewView returned error: %v", err)
	}

	query, _, err := r.view.selectQuery(uuid.New(), nil, nil)
	if err != nil {
		t.Fatalf("selectQuery returned error: %v", err)
	}
	if !strings.Contains(query, "FROM widget_balances") {
		t.Errorf("view query should read the view relation: %q", query)
	}

	// The base repository is untouched by view reads; a subsequent base
	// query still targets the base table.
	query, _, err = r.selectQuery(uuid.New(), nil, nil)
	if err != nil {
		t.Fatalf("selectQuery returned error: %v", err)
	}
	if !strings.Contains(query, "FROM widgets") {
		t.Errorf("base query should read the base relation: %q", query)
	}
}

func TestViewRepository_ViewFiltersUseViewColumns(t *testing.T) {
	r, err := NewView[widget, widgetBalance](nil, widgetTable, widgetBalanceTable)
	if err != nil {
		t.Fatalf("NewView returned error: %v", err)
	}

	// total exists only on the view, so it sorts there but not on the base.
	if _, _, err := r.view.selectQuery(uuid.New(), nil, &Sort{Column: "total", Direction: "asc"}); err != nil {
		t.Errorf("view should accept its derived column: %v", err)
	}
	if _, _, err := r.selectQuery(uuid.New(), nil, &Sort{Column: "total", Direction: "asc"}); err == nil {
		t.Error("base should reject the view-only column")
	}
}

func TestViewRepository_FindViewEntryAllNilSkipsQuery(t *testing.T) {
	r, err := NewView[widget, widgetBalance](nil, widgetTable, widgetBalanceTable)
	if err != nil {
		t.Fatalf("NewView returned error: %v", err)
	}

	entry, err := r.FindViewEntry(context.Background(), uuid.New(), []*Filter{nil}, nil, false)
	if err != nil {
		t.Fatalf("FindViewEntry returned error: %v", err)
	}
	if entry != nil {
		t.Errorf("FindViewEntry = %v, want nil", entry)
	}
}
