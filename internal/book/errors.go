package book

import "errors"

var (
	// ErrMissingID is returned when an operation needs a book identity and
	// the book has none.
	ErrMissingID = errors.New("book has no id")

	// ErrEmptyTitle is returned when a lookup is attempted for a blank title.
	ErrEmptyTitle = errors.New("empty title")
)
