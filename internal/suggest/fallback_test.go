package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackKey(t *testing.T) {
	tests := []struct {
		prompt   string
		expected string
	}{
		{prompt: "books in the fiction genre", expected: FallbackFiction},
		{prompt: "books in the non-fiction genre", expected: FallbackFiction},
		{prompt: "a gripping thriller", expected: FallbackThriller},
		{prompt: "fiction and thriller", expected: FallbackFiction},
		{prompt: "Thriller with capital T", expected: FallbackDefault},
		{prompt: "poetry", expected: FallbackDefault},
		{prompt: "", expected: FallbackDefault},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.expected, FallbackKey(tt.prompt))
		})
	}
}

func TestFallbackListsHaveSixTitles(t *testing.T) {
	for _, key := range []string{FallbackFiction, FallbackNonFiction, FallbackThriller, FallbackDefault} {
		assert.Len(t, FallbackFor(key), 6, key)
	}
}

func TestFallbackForReturnsCopy(t *testing.T) {
	first := FallbackFor(FallbackFiction)
	first[0].Title = "mutated"

	second := FallbackFor(FallbackFiction)
	require.Equal(t, "The Great Gatsby", second[0].Title)
}

func TestFallbackForUnknownKey(t *testing.T) {
	assert.Equal(t, titlesOf(FallbackFor(FallbackDefault)), titlesOf(FallbackFor("romance")))
}

func TestFallbackNonFictionList(t *testing.T) {
	assert.Equal(t, []string{
		"Sapiens: A Brief History of Humankind",
		"Educated",
		"Becoming",
		"The Immortal Life of Henrietta Lacks",
		"In Cold Blood",
		"Thinking, Fast and Slow",
	}, titlesOf(FallbackFor(FallbackNonFiction)))
}
