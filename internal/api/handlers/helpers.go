package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ledgerbase/ledgerbase/internal/core/repository"
	"github.com/ledgerbase/ledgerbase/internal/core/validation"
)

// respondError translates core-layer failures into HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrNotUnique):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case validation.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": validation.GetValidationErrors(err)})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// bindFields decodes a JSON object body into a field map. Numbers decode as
// json.Number so amounts survive without float rounding.
func bindFields(c *gin.Context) (map[string]interface{}, error) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// queryValue returns the raw query parameter, or nil when absent so the
// resulting filter is dropped.
func queryValue(c *gin.Context, key string) interface{} {
	if v, ok := c.GetQuery(key); ok {
		return v
	}
	return nil
}

// queryIntValue is queryValue for numeric parameters.
func queryIntValue(c *gin.Context, key string) (interface{}, error) {
	v, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, &validation.ValidationErrors{Errors: []validation.ValidationError{{
			Field:   key,
			Message: "must be an integer",
		}}}
	}
	return n, nil
}

// sortFromQuery builds a sort spec from ?sort=<column>&order=<asc|desc>.
func sortFromQuery(c *gin.Context) (*repository.Sort, error) {
	column := c.Query("sort")
	if column == "" {
		return nil, nil
	}

	direction := c.DefaultQuery("order", validation.Ascending)
	if err := validation.ValidateSortOrder(direction); err != nil {
		return nil, err
	}

	return &repository.Sort{Column: column, Direction: direction}, nil
}

// fieldInt64 reads an integer out of a decoded field map.
func fieldInt64(fields map[string]interface{}, key string) (int64, bool) {
	v, ok := fields[key]
	if !ok {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}
