package repository

// Filter narrows a query to rows whose column equals one of the given values.
// A nil *Filter is a no-op and is silently dropped before query construction,
// so callers can pass optional form values straight through.
type Filter struct {
	Column string
	Values []interface{}
}

// Eq matches rows where column equals value. A nil value yields a nil filter.
func Eq(column string, value interface{}) *Filter {
	if value == nil {
		return nil
	}
	return &Filter{Column: column, Values: []interface{}{value}}
}

// In matches rows where column is any of values. No values yields a nil
// filter.
func In(column string, values ...interface{}) *Filter {
	if len(values) == 0 {
		return nil
	}
	return &Filter{Column: column, Values: values}
}

// Sort orders query results by a column. Direction must be one of the tokens
// accepted by validation.ValidateSortOrder.
type Sort struct {
	Column    string
	Direction string
}

func allNil(filters []*Filter) bool {
	for _, f := range filters {
		if f != nil {
			return false
		}
	}
	return true
}
