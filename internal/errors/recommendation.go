package errors

import (
	stdErrors "errors"
	"fmt"
)

// RecommendationError is the single error a recommendation request reports,
// whatever the underlying client failure was.
type RecommendationError struct {
	Mode string
	Err  error
}

func (e *RecommendationError) Error() string {
	return fmt.Sprintf("could not fetch recommendations (%s): %v", e.Mode, e.Err)
}

func (e *RecommendationError) Unwrap() error {
	return e.Err
}

// NewRecommendationError wraps err for the given routing mode.
func NewRecommendationError(mode string, err error) *RecommendationError {
	return &RecommendationError{Mode: mode, Err: err}
}

// IsRecommendationError reports whether err is a RecommendationError (even when wrapped).
func IsRecommendationError(err error) bool {
	var recErr *RecommendationError
	return stdErrors.As(err, &recErr)
}
