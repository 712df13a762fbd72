package enrich

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lepinkainen/bookfinder/internal/book"
	apierrors "github.com/lepinkainen/bookfinder/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	mu       sync.Mutex
	hits     map[string]book.Book
	delays   map[string]time.Duration
	failOn   string
	opts     []book.SearchOptions
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeCatalog) Search(ctx context.Context, query string, opts book.SearchOptions) ([]book.Book, error) {
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if current <= seen || f.maxSeen.CompareAndSwap(seen, current) {
			break
		}
	}

	f.mu.Lock()
	f.opts = append(f.opts, opts)
	delay := f.delays[query]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if query == f.failOn {
		return nil, apierrors.NewCatalogError(query, 503, errors.New("unavailable"))
	}

	hit, ok := f.hits[query]
	if !ok {
		return []book.Book{}, nil
	}
	return []book.Book{hit}, nil
}

func catalogBook(id, title string, authors ...string) book.Book {
	return book.Book{
		ID:      id,
		Title:   title,
		Authors: authors,
		Summary: "summary of " + title,
		Genre:   "Fiction",
		Image:   "http://img/" + id,
	}
}

func TestEnrichPreservesInputOrder(t *testing.T) {
	catalog := &fakeCatalog{
		hits: map[string]book.Book{
			"Dune":       catalogBook("v1", "Dune", "Frank Herbert"),
			"Hyperion":   catalogBook("v2", "Hyperion", "Dan Simmons"),
			"Foundation": catalogBook("v3", "Foundation", "Isaac Asimov"),
		},
		// First title finishes last
		delays: map[string]time.Duration{
			"Dune":     60 * time.Millisecond,
			"Hyperion": 30 * time.Millisecond,
		},
	}

	books, err := New(catalog).Enrich(context.Background(), book.Titles("Dune", "Hyperion", "Foundation"))
	require.NoError(t, err)
	require.Len(t, books, 3)

	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Hyperion", books[1].Title)
	assert.Equal(t, "Foundation", books[2].Title)
}

func TestEnrichOutputLengthMatchesInput(t *testing.T) {
	catalog := &fakeCatalog{
		hits: map[string]book.Book{
			"Gone Girl": catalogBook("v1", "Gone Girl", "Gillian Flynn"),
		},
	}

	titles := book.Titles("Gone Girl", "A Book Nobody Has Heard Of", "The Silent Patient", "Before I Go to Sleep")
	books, err := New(catalog).Enrich(context.Background(), titles)
	require.NoError(t, err)
	assert.Len(t, books, len(titles))
}

func TestEnrichDerivesIDFromRequestedTitle(t *testing.T) {
	catalog := &fakeCatalog{
		hits: map[string]book.Book{
			"The Great Gatsby": catalogBook("iXn5U2IzVH0C", "The Great Gatsby (Annotated)", "F. Scott Fitzgerald"),
		},
	}

	books, err := New(catalog).Enrich(context.Background(), book.Titles("The Great Gatsby"))
	require.NoError(t, err)
	require.Len(t, books, 1)

	assert.Equal(t, "thegreatgatsby_fscottfitzgerald", books[0].ID)
	assert.Equal(t, "The Great Gatsby", books[0].Title)
	assert.Equal(t, "summary of The Great Gatsby (Annotated)", books[0].Summary)
}

func TestEnrichUnknownAuthors(t *testing.T) {
	catalog := &fakeCatalog{
		hits: map[string]book.Book{
			"Beowulf": catalogBook("v1", "Beowulf", book.UnknownAuthor),
		},
	}

	books, err := New(catalog).Enrich(context.Background(), book.Titles("Beowulf"))
	require.NoError(t, err)
	assert.Equal(t, []string{book.UnknownPlaceholderAuthor}, books[0].Authors)
	assert.Equal(t, "beowulf_unknown", books[0].ID)
}

func TestEnrichPlaceholderForMissingTitle(t *testing.T) {
	books, err := New(&fakeCatalog{}).Enrich(context.Background(), book.Titles("Nonexistent Book"))
	require.NoError(t, err)
	require.Len(t, books, 1)

	b := books[0]
	assert.Equal(t, "nonexistentbook_unknown", b.ID)
	assert.Equal(t, "Nonexistent Book", b.Title)
	assert.Equal(t, []string{"Unknown"}, b.Authors)
	assert.Equal(t, "Unknown", b.Genre)
	assert.Equal(t, book.DefaultSummary, b.Summary)
	assert.Equal(t, book.PlaceholderImage, b.Image)
}

func TestEnrichLookupOptions(t *testing.T) {
	catalog := &fakeCatalog{}

	_, err := New(catalog).Enrich(context.Background(), book.Titles("a", "b"))
	require.NoError(t, err)

	require.Len(t, catalog.opts, 2)
	for _, opts := range catalog.opts {
		assert.Equal(t, 1, opts.MaxResults)
		assert.Equal(t, "en", opts.LanguageRestrict)
		assert.Empty(t, opts.Subject)
	}
}

func TestEnrichSingleFailureFailsBatch(t *testing.T) {
	catalog := &fakeCatalog{
		hits:   map[string]book.Book{"Dune": catalogBook("v1", "Dune", "Frank Herbert")},
		failOn: "Hyperion",
	}

	books, err := New(catalog).Enrich(context.Background(), book.Titles("Dune", "Hyperion", "Foundation"))
	require.Error(t, err)
	assert.Nil(t, books)
	assert.True(t, apierrors.IsCatalogError(err))
}

func TestEnrichDeduplicatesByID(t *testing.T) {
	catalog := &fakeCatalog{
		hits: map[string]book.Book{
			"Dune":  catalogBook("v1", "Dune", "Frank Herbert"),
			"DUNE!": catalogBook("v1", "Dune", "Frank Herbert"),
		},
	}

	books, err := New(catalog).Enrich(context.Background(), book.Titles("Dune", "Hyperion", "DUNE!"))
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Hyperion", books[1].Title)
}

func TestEnrichRespectsConcurrencyLimit(t *testing.T) {
	catalog := &fakeCatalog{
		delays: map[string]time.Duration{
			"a": 20 * time.Millisecond,
			"b": 20 * time.Millisecond,
			"c": 20 * time.Millisecond,
			"d": 20 * time.Millisecond,
		},
	}

	books, err := New(catalog, WithConcurrency(2)).Enrich(context.Background(), book.Titles("a", "b", "c", "d"))
	require.NoError(t, err)
	assert.Len(t, books, 4)
	assert.LessOrEqual(t, catalog.maxSeen.Load(), int32(2))
}

func TestEnrichEmptyInput(t *testing.T) {
	books, err := New(&fakeCatalog{}).Enrich(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, books)
}
