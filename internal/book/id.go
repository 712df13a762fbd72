package book

import (
	"log/slog"
	"strings"
)

// Slug lower-cases s and removes every character outside [a-z0-9].
func Slug(s string) string {
	lower := strings.ToLower(s)
	var sb strings.Builder
	sb.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		c := lower[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// DeriveID builds the synthetic identity of a book from its title and
// authors. The result depends only on its inputs, so the same book maps to
// the same id regardless of which lookup produced it.
func DeriveID(title string, authors []string) string {
	authorPart := "unknown"
	if len(authors) > 0 {
		authorPart = Slug(strings.Join(authors, ""))
	}
	return Slug(title) + "_" + authorPart
}

// EnsureID assigns a derived id to b if it has none. It reports whether the
// id was repaired.
func EnsureID(b *Book) bool {
	if b.ID != "" {
		return false
	}
	b.ID = DeriveID(b.Title, b.Authors)
	slog.Warn("Book missing ID, generated one", "title", b.Title, "id", b.ID)
	return true
}

// Dedupe drops books whose id has already been seen, keeping the first
// occurrence and the original order.
func Dedupe(books []Book) []Book {
	seen := make(map[string]bool, len(books))
	result := make([]Book, 0, len(books))
	for _, b := range books {
		if seen[b.ID] {
			slog.Debug("Dropping duplicate book", "id", b.ID, "title", b.Title)
			continue
		}
		seen[b.ID] = true
		result = append(result, b)
	}
	return result
}
