package repository

import "testing"

func TestEq_NilValue(t *testing.T) {
	if f := Eq("name", nil); f != nil {
		t.Errorf("Eq with nil value = %v, want nil", f)
	}

	f := Eq("name", "groceries")
	if f == nil || f.Column != "name" || len(f.Values) != 1 {
		t.Errorf("Eq = %v, want a single-value filter on name", f)
	}
}

func TestIn_EmptyValues(t *testing.T) {
	if f := In("size"); f != nil {
		t.Errorf("In with no values = %v, want nil", f)
	}

	f := In("size", 1, 2)
	if f == nil || len(f.Values) != 2 {
		t.Errorf("In = %v, want a two-value filter", f)
	}
}

func TestAllNil(t *testing.T) {
	if !allNil(nil) {
		t.Error("allNil(nil) = false, want true")
	}
	if !allNil([]*Filter{nil, Eq("name", nil)}) {
		t.Error("allNil with only nil filters = false, want true")
	}
	if allNil([]*Filter{nil, Eq("name", "x")}) {
		t.Error("allNil with a live filter = true, want false")
	}
}
