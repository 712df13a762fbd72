// Package render writes book lists as text, JSON or YAML.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/bookfinder/internal/book"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultLimit is how many results are shown at once.
const DefaultLimit = 8

const summaryWidth = 160

// Formats lists the accepted format names.
var Formats = []string{string(FormatText), string(FormatJSON), string(FormatYAML)}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}

// Options controls how a list is written.
type Options struct {
	Format Format
	// Limit caps the number of books written. Zero or less writes all of them.
	Limit int
	// IsFavorite marks favorites in text output. Nil marks nothing.
	IsFavorite func(id string) bool
}

// Books writes books to w.
func Books(w io.Writer, books []book.Book, opts Options) error {
	shown := books
	if opts.Limit > 0 && len(shown) > opts.Limit {
		shown = shown[:opts.Limit]
	}

	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, shown)
	case FormatYAML:
		return writeYAML(w, shown)
	case FormatText, "":
		return writeText(w, shown, len(books), opts.IsFavorite)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// Encode returns books in a machine-readable format, for files.
func Encode(books []book.Book, format Format) ([]byte, error) {
	var sb strings.Builder
	var err error
	switch format {
	case FormatJSON:
		err = writeJSON(&sb, books)
	case FormatYAML:
		err = writeYAML(&sb, books)
	default:
		return nil, fmt.Errorf("format %q cannot be encoded to a file", format)
	}
	if err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func writeJSON(w io.Writer, books []book.Book) error {
	if books == nil {
		books = []book.Book{}
	}
	data, err := json.MarshalIndent(books, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

func writeYAML(w io.Writer, books []book.Book) error {
	if books == nil {
		books = []book.Book{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(books); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

func writeText(w io.Writer, books []book.Book, total int, isFavorite func(string) bool) error {
	if len(books) == 0 {
		_, err := fmt.Fprintln(w, "No books found.")
		return err
	}

	var sb strings.Builder
	for i, b := range books {
		marker := ""
		if isFavorite != nil && isFavorite(b.ID) {
			marker = " ★"
		}
		fmt.Fprintf(&sb, "%d. %s%s\n", i+1, b.Title, marker)
		fmt.Fprintf(&sb, "   %s | %s\n", b.AuthorList(), b.Genre)
		if b.Summary != "" {
			fmt.Fprintf(&sb, "   %s\n", Truncate(b.Summary, summaryWidth))
		}
		fmt.Fprintf(&sb, "   id: %s\n", b.ID)
	}
	if total > len(books) {
		fmt.Fprintf(&sb, "\nShowing %d of %d results.\n", len(books), total)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Truncate shortens s to at most width runes, ending with "..." when cut.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if width <= 3 || len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
