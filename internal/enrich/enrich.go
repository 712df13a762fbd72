// Package enrich resolves suggested titles into full catalog records.
package enrich

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/bookfinder/internal/book"
)

// LookupLanguage restricts every enrichment lookup.
const LookupLanguage = "en"

// Stage looks up each candidate title in the catalog.
type Stage struct {
	catalog book.Catalog
	limit   int
}

// Option configures a Stage.
type Option func(*Stage)

// WithConcurrency bounds the number of lookups in flight. Zero or less means
// every title is looked up at once.
func WithConcurrency(n int) Option {
	return func(s *Stage) {
		s.limit = n
	}
}

// New creates an enrichment stage backed by catalog.
func New(catalog book.Catalog, opts ...Option) *Stage {
	s := &Stage{catalog: catalog}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enrich returns one book per candidate title, in input order, followed by
// deduplication on id. A single failed lookup fails the whole batch.
func (s *Stage) Enrich(ctx context.Context, titles []book.CandidateTitle) ([]book.Book, error) {
	results := make([]book.Book, len(titles))

	g, gctx := errgroup.WithContext(ctx)
	if s.limit > 0 {
		g.SetLimit(s.limit)
	}

	for i, candidate := range titles {
		g.Go(func() error {
			b, err := s.lookup(gctx, candidate.Title)
			if err != nil {
				return err
			}
			results[i] = b
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Enriched suggested titles", "requested", len(titles))
	return book.Dedupe(results), nil
}

// lookup resolves a single title. A title with no catalog hit becomes a
// placeholder record rather than being dropped.
func (s *Stage) lookup(ctx context.Context, title string) (book.Book, error) {
	hits, err := s.catalog.Search(ctx, title, book.SearchOptions{MaxResults: 1, LanguageRestrict: LookupLanguage})
	if err != nil {
		return book.Book{}, err
	}

	if len(hits) == 0 {
		slog.Debug("No catalog match for suggested title", "title", title)
		return book.Placeholder(title), nil
	}

	return fromHit(title, hits[0]), nil
}

// fromHit keeps the requested title and derives the id from it, so the same
// suggestion always maps to the same identity.
func fromHit(title string, hit book.Book) book.Book {
	authors := hit.Authors
	if len(authors) == 0 || (len(authors) == 1 && authors[0] == book.UnknownAuthor) {
		authors = []string{book.UnknownPlaceholderAuthor}
	}

	hit.Title = title
	hit.Authors = authors
	hit.ID = book.DeriveID(title, authors)
	if hit.Genre == "" {
		hit.Genre = book.UnknownGenre
	}
	if hit.Summary == "" {
		hit.Summary = book.DefaultSummary
	}
	if hit.Image == "" {
		hit.Image = book.PlaceholderImage
	}
	return hit
}
