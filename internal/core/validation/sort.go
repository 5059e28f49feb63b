package validation

// Sort direction tokens accepted by list queries.
const (
	Ascending  = "asc"
	Descending = "desc"
)

// ValidateSortOrder accepts exactly the two recognized direction tokens.
func ValidateSortOrder(value string) error {
	if value == Ascending || value == Descending {
		return nil
	}
	return &ValidationErrors{Errors: []ValidationError{{
		Field:   "sort_order",
		Message: "must be \"asc\" or \"desc\"",
	}}}
}
