package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerbase/ledgerbase/internal/core/validation"
)

// Scanner is satisfied by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Field is one writable column of a table: its name plus the codec that
// normalizes an incoming value into a driver value. Unknown field names are
// rejected before any value is converted or any SQL is issued.
type Field struct {
	Name  string
	Parse func(value interface{}) (interface{}, error)
}

// Table describes the relation a Repository operates on. Every user-owned
// relation carries an owner column; all queries are scoped to it.
type Table[E any] struct {
	Name        string
	IDColumn    string
	OwnerColumn string
	Columns     []string
	Fields      []Field
	ScanRow     func(Scanner) (E, error)
}

func (t *Table[E]) validate() error {
	if t.Name == "" {
		return errors.New("repository: table name is required")
	}
	if t.IDColumn == "" || t.OwnerColumn == "" {
		return fmt.Errorf("repository: table %s needs id and owner columns", t.Name)
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("repository: table %s has no columns", t.Name)
	}
	if t.ScanRow == nil {
		return fmt.Errorf("repository: table %s has no row scanner", t.Name)
	}
	return nil
}

func (t *Table[E]) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

func (t *Table[E]) selectColumns() string {
	return strings.Join(t.Columns, ", ")
}

// convertFields validates every key against the table's writable fields and
// runs the per-field codecs. Validation is all-or-nothing: any unknown field
// or unparseable value aborts the whole operation before any SQL runs.
// Columns come back in declaration order so built statements are stable.
func (t *Table[E]) convertFields(fields map[string]interface{}) ([]string, []interface{}, error) {
	byName := make(map[string]Field, len(t.Fields))
	for _, f := range t.Fields {
		byName[f.Name] = f
	}

	var verrs []validation.ValidationError
	for name := range fields {
		if _, ok := byName[name]; !ok {
			verrs = append(verrs, validation.ValidationError{
				Field:   name,
				Message: "unknown field",
			})
		}
	}
	if len(verrs) > 0 {
		return nil, nil, &validation.ValidationErrors{Errors: verrs}
	}

	var cols []string
	var vals []interface{}
	for _, f := range t.Fields {
		raw, ok := fields[f.Name]
		if !ok {
			continue
		}
		v, err := f.Parse(raw)
		if err != nil {
			verrs = append(verrs, validation.ValidationError{
				Field:   f.Name,
				Message: err.Error(),
			})
			continue
		}
		cols = append(cols, f.Name)
		vals = append(vals, v)
	}
	if len(verrs) > 0 {
		return nil, nil, &validation.ValidationErrors{Errors: verrs}
	}

	return cols, vals, nil
}

// Field codecs. JSON request bodies are decoded with json.Number, so the
// codecs accept json.Number alongside native Go values.

func StringField(name string) Field {
	return Field{Name: name, Parse: func(v interface{}) (interface{}, error) {
		if v == nil {
			return nil, nil
		}
		s, ok := v.(string)
		if !ok {
			return nil, errors.New("must be a string")
		}
		return s, nil
	}}
}

func IntField(name string) Field {
	return Field{Name: name, Parse: func(v interface{}) (interface{}, error) {
		switch n := v.(type) {
		case nil:
			return nil, nil
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return nil, errors.New("must be an integer")
			}
			return i, nil
		case float64:
			if n != float64(int64(n)) {
				return nil, errors.New("must be an integer")
			}
			return int64(n), nil
		default:
			return nil, errors.New("must be an integer")
		}
	}}
}

func BoolField(name string) Field {
	return Field{Name: name, Parse: func(v interface{}) (interface{}, error) {
		if v == nil {
			return nil, nil
		}
		b, ok := v.(bool)
		if !ok {
			return nil, errors.New("must be a boolean")
		}
		return b, nil
	}}
}

// DateField accepts time.Time or an ISO date string (2006-01-02).
func DateField(name string) Field {
	return Field{Name: name, Parse: func(v interface{}) (interface{}, error) {
		switch d := v.(type) {
		case nil:
			return nil, nil
		case time.Time:
			return d, nil
		case string:
			t, err := time.Parse("2006-01-02", d)
			if err != nil {
				return nil, errors.New("must be a date in YYYY-MM-DD format")
			}
			return t, nil
		default:
			return nil, errors.New("must be a date in YYYY-MM-DD format")
		}
	}}
}

// MoneyField accepts decimal.Decimal, a numeric string, or a JSON number.
func MoneyField(name string) Field {
	return Field{Name: name, Parse: func(v interface{}) (interface{}, error) {
		switch a := v.(type) {
		case nil:
			return nil, nil
		case decimal.Decimal:
			return a, nil
		case json.Number:
			d, err := decimal.NewFromString(a.String())
			if err != nil {
				return nil, errors.New("must be a decimal amount")
			}
			return d, nil
		case string:
			d, err := decimal.NewFromString(a)
			if err != nil {
				return nil, errors.New("must be a decimal amount")
			}
			return d, nil
		case float64:
			return decimal.NewFromFloat(a), nil
		default:
			return nil, errors.New("must be a decimal amount")
		}
	}}
}
