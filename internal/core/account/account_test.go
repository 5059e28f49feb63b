package account

import (
	"testing"

	"github.com/ledgerbase/ledgerbase/internal/core/validation"
)

func TestNewRepository(t *testing.T) {
	if _, err := NewRepository(nil); err != nil {
		t.Fatalf("NewRepository returned error: %v", err)
	}
}

func TestSchema(t *testing.T) {
	v := validation.NewValidator()

	valid := map[string]interface{}{
		"bank_id":      1,
		"account_type": TypeChecking,
		"last_four":    "4242",
	}
	if err := v.Validate(valid, Schema); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	badType := map[string]interface{}{
		"bank_id":      1,
		"account_type": "brokerage",
		"last_four":    "4242",
	}
	if err := v.Validate(badType, Schema); !validation.IsValidationError(err) {
		t.Errorf("unknown account type = %v, want validation error", err)
	}

	badDigits := map[string]interface{}{
		"bank_id":      1,
		"account_type": TypeSavings,
		"last_four":    "42",
	}
	if err := v.Validate(badDigits, Schema); !validation.IsValidationError(err) {
		t.Errorf("short last_four = %v, want validation error", err)
	}
}
