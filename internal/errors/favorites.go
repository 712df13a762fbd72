package errors

import (
	stdErrors "errors"
	"fmt"
)

// FavoritesError reports a failure to persist the favorites set.
type FavoritesError struct {
	Op  string
	Err error
}

func (e *FavoritesError) Error() string {
	return fmt.Sprintf("favorites %s: %v", e.Op, e.Err)
}

func (e *FavoritesError) Unwrap() error {
	return e.Err
}

// NewFavoritesError wraps err for the given store operation.
func NewFavoritesError(op string, err error) *FavoritesError {
	return &FavoritesError{Op: op, Err: err}
}

// IsFavoritesError reports whether err is a FavoritesError (even when wrapped).
func IsFavoritesError(err error) bool {
	var favErr *FavoritesError
	return stdErrors.As(err, &favErr)
}
