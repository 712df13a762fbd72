package suggest

import (
	"strings"

	"github.com/lepinkainen/bookfinder/internal/book"
)

// Fallback keys, checked against the prompt in this order.
const (
	FallbackFiction    = "fiction"
	FallbackNonFiction = "non-fiction"
	FallbackThriller   = "thriller"
	FallbackDefault    = "default"
)

var fallbackOrder = []string{FallbackFiction, FallbackNonFiction, FallbackThriller}

var fallbackTitles = map[string][]string{
	FallbackFiction: {
		"The Great Gatsby",
		"To Kill a Mockingbird",
		"1984",
		"Pride and Prejudice",
		"The Catcher in the Rye",
		"The Hobbit",
	},
	FallbackNonFiction: {
		"Sapiens: A Brief History of Humankind",
		"Educated",
		"Becoming",
		"The Immortal Life of Henrietta Lacks",
		"In Cold Blood",
		"Thinking, Fast and Slow",
	},
	FallbackThriller: {
		"Gone Girl",
		"The Girl on the Train",
		"The Silent Patient",
		"The Da Vinci Code",
		"The Girl with the Dragon Tattoo",
		"Before I Go to Sleep",
	},
	FallbackDefault: {
		"The Alchemist",
		"Harry Potter and the Sorcerer's Stone",
		"The Lord of the Rings",
		"The Hunger Games",
		"The Kite Runner",
		"The Shining",
	},
}

// FallbackKey picks the fallback list for prompt by case-sensitive substring
// match. "non-fiction" also contains "fiction", so the fiction list wins for
// such prompts.
func FallbackKey(prompt string) string {
	for _, key := range fallbackOrder {
		if strings.Contains(prompt, key) {
			return key
		}
	}
	return FallbackDefault
}

// Fallback returns the static titles for prompt.
func Fallback(prompt string) []book.CandidateTitle {
	return FallbackFor(FallbackKey(prompt))
}

// FallbackFor returns a fresh copy of the list stored under key, or the
// default list for an unknown key.
func FallbackFor(key string) []book.CandidateTitle {
	titles, ok := fallbackTitles[key]
	if !ok {
		titles = fallbackTitles[FallbackDefault]
	}
	return book.Titles(titles...)
}
