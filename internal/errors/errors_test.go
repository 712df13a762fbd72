package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimitError(t *testing.T) {
	err := NewRateLimitError("slow down")

	if err.Error() != "slow down" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "slow down")
	}

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for RateLimitError")
	}

	wrapped := stdErrors.Join(err)
	if !IsRateLimitError(wrapped) {
		t.Fatalf("IsRateLimitError returned false for wrapped RateLimitError")
	}
}

func TestRateLimitErrorWithRetry(t *testing.T) {
	err := NewRateLimitErrorWithRetry("too many requests", 2*time.Minute)

	expected := "too many requests (retry after 2m0s)"
	if err.Error() != expected {
		t.Fatalf("Error message = %q, want %q", err.Error(), expected)
	}

	if err.RetryAfter.Minutes() != 2.0 {
		t.Fatalf("RetryAfter = %v, want 2 minutes", err.RetryAfter)
	}
}

func TestRateLimitErrorWithRetry_ZeroDuration(t *testing.T) {
	err := NewRateLimitErrorWithRetry("rate limited", 0)

	if err.Error() != "rate limited" {
		t.Fatalf("Error message = %q, want %q", err.Error(), "rate limited")
	}
}

func TestCatalogError(t *testing.T) {
	tests := []struct {
		name       string
		err        *CatalogError
		expected   string
		statusCode int
	}{
		{
			name:     "with status code",
			err:      NewCatalogError("dune", 503, stdErrors.New("service unavailable")),
			expected: `catalog search "dune" failed (HTTP 503): service unavailable`,
		},
		{
			name:     "transport failure",
			err:      NewCatalogError("dune", 0, stdErrors.New("connection refused")),
			expected: `catalog search "dune" failed: connection refused`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Fatalf("Error message = %q, want %q", tt.err.Error(), tt.expected)
			}
			if !IsCatalogError(tt.err) {
				t.Fatalf("IsCatalogError returned false for CatalogError")
			}
		})
	}
}

func TestCatalogErrorUnwrapsRateLimit(t *testing.T) {
	err := NewCatalogError("dune", 429, NewRateLimitError("quota exceeded"))

	if !IsRateLimitError(err) {
		t.Fatalf("IsRateLimitError returned false for CatalogError wrapping RateLimitError")
	}
}

func TestRecommendationErrorWrapsCatalogError(t *testing.T) {
	catalogErr := NewCatalogError("the hobbit", 500, stdErrors.New("boom"))
	err := fmt.Errorf("resolve: %w", NewRecommendationError("direct-search", catalogErr))

	if !IsRecommendationError(err) {
		t.Fatalf("IsRecommendationError returned false for wrapped RecommendationError")
	}
	if !IsCatalogError(err) {
		t.Fatalf("IsCatalogError returned false for RecommendationError wrapping CatalogError")
	}

	var recErr *RecommendationError
	if !stdErrors.As(err, &recErr) || recErr.Mode != "direct-search" {
		t.Fatalf("Mode = %v, want direct-search", recErr)
	}
}

func TestFavoritesError(t *testing.T) {
	err := NewFavoritesError("save", stdErrors.New("disk full"))

	if err.Error() != "favorites save: disk full" {
		t.Fatalf("Error message = %q", err.Error())
	}
	if !IsFavoritesError(stdErrors.Join(err)) {
		t.Fatalf("IsFavoritesError returned false for wrapped FavoritesError")
	}
}
