package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/core/validation"
)

func testContext(t *testing.T, method, target string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	c.Request = httptest.NewRequest(method, target, reader)
	return c, w
}

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"not unique", repository.ErrNotUnique, http.StatusConflict},
		{"validation", &validation.ValidationErrors{Errors: []validation.ValidationError{{Field: "name", Message: "bad"}}}, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(t, http.MethodGet, "/api/banks", "")
			respondError(c, tt.err)
			if w.Code != tt.code {
				t.Errorf("status = %d, want %d", w.Code, tt.code)
			}
		})
	}
}

func TestBindFields_DecodesNumbersAsJSONNumber(t *testing.T) {
	c, _ := testContext(t, http.MethodPost, "/api/transactions", `{"merchant":"market","amount":12.34}`)

	fields, err := bindFields(c)
	if err != nil {
		t.Fatalf("bindFields returned error: %v", err)
	}
	if fields["merchant"] != "market" {
		t.Errorf("merchant = %v", fields["merchant"])
	}
	if n, ok := fields["amount"].(json.Number); !ok || n.String() != "12.34" {
		t.Errorf("amount = %v (%T), want json.Number 12.34", fields["amount"], fields["amount"])
	}
}

func TestBindFields_RejectsNonObject(t *testing.T) {
	c, _ := testContext(t, http.MethodPost, "/api/banks", `[1,2,3]`)

	if _, err := bindFields(c); err == nil {
		t.Error("array body should be rejected")
	}
}

func TestQueryValue(t *testing.T) {
	c, _ := testContext(t, http.MethodGet, "/api/accounts?account_type=checking", "")

	if v := queryValue(c, "account_type"); v != "checking" {
		t.Errorf("queryValue = %v", v)
	}
	if v := queryValue(c, "missing"); v != nil {
		t.Errorf("absent parameter = %v, want nil", v)
	}
}

func TestQueryIntValue(t *testing.T) {
	c, _ := testContext(t, http.MethodGet, "/api/accounts?bank_id=7", "")

	v, err := queryIntValue(c, "bank_id")
	if err != nil {
		t.Fatalf("queryIntValue returned error: %v", err)
	}
	if v != int64(7) {
		t.Errorf("queryIntValue = %v (%T), want int64 7", v, v)
	}

	v, err = queryIntValue(c, "missing")
	if err != nil || v != nil {
		t.Errorf("absent parameter = %v, %v, want nil, nil", v, err)
	}

	c, _ = testContext(t, http.MethodGet, "/api/accounts?bank_id=seven", "")
	if _, err := queryIntValue(c, "bank_id"); !validation.IsValidationError(err) {
		t.Errorf("non-numeric parameter = %v, want validation error", err)
	}
}

func TestSortFromQuery(t *testing.T) {
	c, _ := testContext(t, http.MethodGet, "/api/transactions?sort=txn_date&order=desc", "")
	sort, err := sortFromQuery(c)
	if err != nil {
		t.Fatalf("sortFromQuery returned error: %v", err)
	}
	if sort == nil || sort.Column != "txn_date" || sort.Direction != validation.Descending {
		t.Errorf("sort = %v", sort)
	}

	c, _ = testContext(t, http.MethodGet, "/api/transactions?sort=txn_date", "")
	sort, err = sortFromQuery(c)
	if err != nil {
		t.Fatalf("sortFromQuery returned error: %v", err)
	}
	if sort == nil || sort.Direction != validation.Ascending {
		t.Errorf("default order = %v, want asc", sort)
	}

	c, _ = testContext(t, http.MethodGet, "/api/transactions", "")
	sort, err = sortFromQuery(c)
	if err != nil || sort != nil {
		t.Errorf("no sort parameter = %v, %v, want nil, nil", sort, err)
	}

	c, _ = testContext(t, http.MethodGet, "/api/transactions?sort=txn_date&order=upward", "")
	if _, err := sortFromQuery(c); !validation.IsValidationError(err) {
		t.Errorf("bad order = %v, want validation error", err)
	}
}

func TestParseIDParam(t *testing.T) {
	c, _ := testContext(t, http.MethodGet, "/api/banks/5", "")
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	id, ok := parseIDParam(c, "id")
	if !ok || id != 5 {
		t.Errorf("parseIDParam = %d, %v", id, ok)
	}

	c, w := testContext(t, http.MethodGet, "/api/banks/abc", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	if _, ok := parseIDParam(c, "id"); ok {
		t.Error("non-numeric id should be rejected")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestFieldInt64(t *testing.T) {
	fields := map[string]interface{}{
		"bank_id": json.Number("3"),
		"name":    "checking",
	}

	if id, ok := fieldInt64(fields, "bank_id"); !ok || id != 3 {
		t.Errorf("fieldInt64 = %d, %v", id, ok)
	}
	if _, ok := fieldInt64(fields, "name"); ok {
		t.Error("string value should not read as an integer")
	}
	if _, ok := fieldInt64(fields, "missing"); ok {
		t.Error("absent key should not read as an integer")
	}
}
