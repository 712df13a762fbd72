package errors

import (
	stdErrors "errors"
	"fmt"
)

// CatalogError is returned when the bibliographic catalog cannot be reached
// or answers with a non-2xx status. There is no safe default for a failed
// catalog lookup, so callers must surface it.
type CatalogError struct {
	Query      string
	StatusCode int // zero for transport failures
	Err        error
}

func (e *CatalogError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog search %q failed (HTTP %d): %v", e.Query, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog search %q failed: %v", e.Query, e.Err)
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewCatalogError wraps err as a CatalogError for the given query.
func NewCatalogError(query string, statusCode int, err error) *CatalogError {
	return &CatalogError{Query: query, StatusCode: statusCode, Err: err}
}

// IsCatalogError checks if error is a CatalogError
func IsCatalogError(err error) bool {
	var catalogErr *CatalogError
	return stdErrors.As(err, &catalogErr)
}
