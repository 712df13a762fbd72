// Package recommend picks a resolution strategy for a query and runs it.
package recommend

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/lepinkainen/bookfinder/internal/book"
	apierrors "github.com/lepinkainen/bookfinder/internal/errors"
)

// Mode names a resolution strategy.
type Mode string

const (
	ModeCategory     Mode = "category"
	ModeSimilarTitle Mode = "similar-title"
	ModeDirectSearch Mode = "direct-search"
	ModeKeyword      Mode = "keyword"
)

const (
	// DirectSearchResults is the number of hits requested in direct-search mode.
	DirectSearchResults = 16
	// DirectSearchLanguage restricts direct-search hits.
	DirectSearchLanguage = "en"

	similarTitleMinTokens = 3
	directSearchMinRunes  = 4
)

// Suggester turns a prompt into candidate titles. It degrades instead of failing.
type Suggester interface {
	Suggest(ctx context.Context, prompt string) []book.CandidateTitle
}

// Enricher resolves candidate titles into full records.
type Enricher interface {
	Enrich(ctx context.Context, titles []book.CandidateTitle) ([]book.Book, error)
}

// Request carries the user's query and filters.
type Request struct {
	Query  string
	Genre  string
	Length string
}

// SelectMode classifies a raw query. Checks run in order and the first match wins.
func SelectMode(query string) Mode {
	trimmed := strings.TrimSpace(query)
	switch {
	case trimmed == "":
		return ModeCategory
	case len(strings.Fields(query)) >= similarTitleMinTokens:
		return ModeSimilarTitle
	case utf8.RuneCountInString(trimmed) >= directSearchMinRunes:
		return ModeDirectSearch
	default:
		return ModeKeyword
	}
}

// Router dispatches requests to the suggestion pipeline or the catalog.
type Router struct {
	suggester Suggester
	enricher  Enricher
	catalog   book.Catalog
}

// NewRouter wires the router's collaborators.
func NewRouter(suggester Suggester, enricher Enricher, catalog book.Catalog) *Router {
	return &Router{suggester: suggester, enricher: enricher, catalog: catalog}
}

// Resolve runs the strategy selected for req.Query. Every returned book has an
// id and no id appears twice. Failures come back as a RecommendationError.
func (r *Router) Resolve(ctx context.Context, req Request) ([]book.Book, error) {
	mode := SelectMode(req.Query)
	query := strings.TrimSpace(req.Query)
	slog.Debug("Resolving recommendations", "mode", mode, "query", query, "genre", req.Genre, "length", req.Length)

	var (
		books []book.Book
		err   error
	)
	switch mode {
	case ModeCategory:
		books, err = r.suggestAndEnrich(ctx, CategoryPrompt(req.Genre, req.Length))
	case ModeSimilarTitle:
		books, err = r.suggestAndEnrich(ctx, SimilarTitlePrompt(query, req.Genre))
	case ModeDirectSearch:
		books, err = r.catalog.Search(ctx, query, book.SearchOptions{
			MaxResults:       DirectSearchResults,
			LanguageRestrict: DirectSearchLanguage,
		})
	default:
		books, err = r.suggestAndEnrich(ctx, KeywordPrompt(req.Genre, req.Length, query))
	}
	if err != nil {
		return nil, apierrors.NewRecommendationError(string(mode), err)
	}

	for i := range books {
		book.EnsureID(&books[i])
	}
	return book.Dedupe(books), nil
}

func (r *Router) suggestAndEnrich(ctx context.Context, prompt string) ([]book.Book, error) {
	titles := r.suggester.Suggest(ctx, prompt)
	return r.enricher.Enrich(ctx, titles)
}
