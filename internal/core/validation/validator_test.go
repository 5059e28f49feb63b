package validation

import (
	"errors"
	"testing"
)

var testSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"required":             []string{"name"},
	"properties": map[string]interface{}{
		"name": map[string]interface{}{"type": "string", "minLength": 1},
		"size": map[string]interface{}{"type": "integer"},
	},
}

func TestValidate_Success(t *testing.T) {
	v := NewValidator()

	err := v.Validate(map[string]interface{}{"name": "groceries", "size": 3}, testSchema)
	if err != nil {
		t.Errorf("Validate returned error: %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	v := NewValidator()

	err := v.Validate(map[string]interface{}{"size": 3}, testSchema)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidate_AdditionalProperty(t *testing.T) {
	v := NewValidator()

	err := v.Validate(map[string]interface{}{"name": "groceries", "color": "red"}, testSchema)
	if !IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidate_EmptySchemaAllowsAnything(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(map[string]interface{}{"anything": true}, nil); err != nil {
		t.Errorf("Validate with no schema returned error: %v", err)
	}
}

func TestValidatePartial_DropsRequired(t *testing.T) {
	v := NewValidator()

	if err := v.ValidatePartial(map[string]interface{}{"size": 3}, testSchema); err != nil {
		t.Errorf("ValidatePartial returned error: %v", err)
	}

	// Everything except the required constraint still applies.
	err := v.ValidatePartial(map[string]interface{}{"size": "big"}, testSchema)
	if !IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestIsValidationError(t *testing.T) {
	if IsValidationError(errors.New("boom")) {
		t.Error("plain errors are not validation errors")
	}
	if IsValidationError(nil) {
		t.Error("nil is not a validation error")
	}

	ve := &ValidationErrors{Errors: []ValidationError{{Field: "name", Message: "bad"}}}
	if !IsValidationError(ve) {
		t.Error("ValidationErrors should be recognized")
	}
	if got := GetValidationErrors(ve); got != ve {
		t.Errorf("GetValidationErrors = %v, want the original value", got)
	}
}
