// Package favorites keeps the user's favorite books in a durable record.
package favorites

import (
	"context"
	"log/slog"
	"sync"

	"github.com/goccy/go-json"

	"github.com/lepinkainen/bookfinder/internal/book"
	apierrors "github.com/lepinkainen/bookfinder/internal/errors"
)

// RecordKey names the record holding the serialized favorites set.
const RecordKey = "bookFavorites"

// Storage is the durable record store backing the favorites set.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, data string) error
	Delete(ctx context.Context, key string) error
}

// Store owns the in-memory favorites set and mirrors every change to Storage.
type Store struct {
	mu      sync.Mutex
	storage Storage
	books   []book.Book
}

// New creates an empty store. Call Load to read persisted favorites.
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Load replaces the in-memory set with the persisted one. A missing record
// is an empty set. An unreadable record is logged and treated as empty, and
// entries without an id are discarded.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.storage.Get(ctx, RecordKey)
	if err != nil {
		return apierrors.NewFavoritesError("load", err)
	}
	if !ok {
		s.books = nil
		return nil
	}

	s.books = decode(data)
	slog.Debug("Loaded favorites", "count", len(s.books))
	return nil
}

func decode(data string) []book.Book {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		slog.Warn("Favorites record is corrupt, starting with an empty set", "error", err)
		return nil
	}

	books := make([]book.Book, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, raw := range entries {
		var b book.Book
		if err := json.Unmarshal(raw, &b); err != nil {
			slog.Warn("Discarding unreadable favorite", "index", i, "error", err)
			continue
		}
		if b.ID == "" {
			slog.Warn("Discarding favorite without id", "index", i, "title", b.Title)
			continue
		}
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		books = append(books, b)
	}
	return books
}

// Toggle adds b when it is not a favorite and removes it otherwise. It
// reports whether b is a favorite afterwards. The change is written to
// Storage before it becomes visible; on a write failure the set is left
// as it was.
func (s *Store) Toggle(ctx context.Context, b book.Book) (bool, error) {
	if b.ID == "" {
		return false, book.ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, added := toggled(s.books, b)
	if err := s.persist(ctx, next); err != nil {
		return s.indexOf(b.ID) >= 0, apierrors.NewFavoritesError("toggle", err)
	}
	s.books = next

	slog.Debug("Toggled favorite", "id", b.ID, "favorite", added)
	return added, nil
}

// Remove drops the favorite with the given id. It reports whether anything
// was removed.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, book.ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next, _ := toggled(s.books, s.books[i])
	if err := s.persist(ctx, next); err != nil {
		return false, apierrors.NewFavoritesError("remove", err)
	}
	s.books = next
	return true, nil
}

// Clear empties the set and deletes the persisted record.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Delete(ctx, RecordKey); err != nil {
		return apierrors.NewFavoritesError("clear", err)
	}
	s.books = nil
	return nil
}

// IsFavorite reports whether id is in the set.
func (s *Store) IsFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// List returns a copy of the favorites in the order they were added.
func (s *Store) List() []book.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]book.Book, len(s.books))
	copy(out, s.books)
	return out
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.books)
}

func (s *Store) indexOf(id string) int {
	for i, b := range s.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// toggled returns a new slice with b added or removed, never aliasing current.
func toggled(current []book.Book, b book.Book) ([]book.Book, bool) {
	next := make([]book.Book, 0, len(current)+1)
	removed := false
	for _, existing := range current {
		if existing.ID == b.ID {
			removed = true
			continue
		}
		next = append(next, existing)
	}
	if removed {
		return next, false
	}
	return append(next, b), true
}

// persist writes books as the full record. An empty set deletes the record
// so that absent and empty serialize identically.
func (s *Store) persist(ctx context.Context, books []book.Book) error {
	if len(books) == 0 {
		return s.storage.Delete(ctx, RecordKey)
	}

	data, err := json.Marshal(books)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, RecordKey, string(data))
}
