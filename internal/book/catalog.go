package book

import "context"

// Catalog looks books up in a bibliographic search service.
type Catalog interface {
	// Search returns up to opts.MaxResults books matching query. No hits is
	// an empty slice, not an error.
	Search(ctx context.Context, query string, opts SearchOptions) ([]Book, error)
}

// SearchOptions narrows a catalog search.
type SearchOptions struct {
	// MaxResults caps the number of hits. Zero leaves the provider default.
	MaxResults int
	// LanguageRestrict is a two-letter language code, e.g. "en".
	LanguageRestrict string
	// Subject adds a "+subject:" qualifier to the query.
	Subject string
}
