// Package book defines the canonical book record shared by the catalog,
// suggestion, enrichment and favorites layers.
package book

import "strings"

const (
	// UnknownAuthor is used when the catalog returns no authors for a volume.
	UnknownAuthor = "Unknown Author"

	// UnknownPlaceholderAuthor is the author of a placeholder record created
	// for a suggested title the catalog could not find.
	UnknownPlaceholderAuthor = "Unknown"

	// DefaultSummary is used when no description is available.
	DefaultSummary = "No description available"

	// UnknownGenre is used when the catalog reports no categories.
	UnknownGenre = "Unknown"

	// UnknownPublisher is used when the catalog reports no publisher.
	UnknownPublisher = "Unknown"

	// UnknownTitle is used for catalog hits without a title.
	UnknownTitle = "Unknown Title"

	// PlaceholderImage is shown when no cover thumbnail exists.
	PlaceholderImage = "https://via.placeholder.com/128x192?text=No+Cover"
)

// Book is a single book as presented to the user and stored in favorites.
// Optional fields are empty when the source did not provide them.
type Book struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Subtitle      string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Authors       []string `json:"authors" yaml:"authors"`
	Summary       string   `json:"summary" yaml:"summary"`
	Genre         string   `json:"genre" yaml:"genre"`
	Publisher     string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty" yaml:"publishedDate,omitempty"`
	PageCount     int      `json:"pageCount,omitempty" yaml:"pageCount,omitempty"`
	Language      string   `json:"language,omitempty" yaml:"language,omitempty"`
	ISBN10        string   `json:"isbn10,omitempty" yaml:"isbn10,omitempty"`
	Image         string   `json:"image" yaml:"image"`
	PreviewLink   string   `json:"previewLink,omitempty" yaml:"previewLink,omitempty"`
}

// CandidateTitle is a title proposed by the suggestion service before it has
// been looked up in the catalog.
type CandidateTitle struct {
	Title string `json:"title"`
}

// AuthorList joins the authors for display.
func (b Book) AuthorList() string {
	if len(b.Authors) == 0 {
		return UnknownAuthor
	}
	return strings.Join(b.Authors, ", ")
}

// Placeholder builds the record used for a suggested title that has no
// catalog match.
func Placeholder(title string) Book {
	return Book{
		ID:        Slug(title) + "_unknown",
		Title:     title,
		Authors:   []string{UnknownPlaceholderAuthor},
		Summary:   DefaultSummary,
		Genre:     UnknownGenre,
		Publisher: UnknownPublisher,
		Image:     PlaceholderImage,
	}
}

// Titles converts plain strings into candidate titles.
func Titles(titles ...string) []CandidateTitle {
	out := make([]CandidateTitle, len(titles))
	for i, t := range titles {
		out[i] = CandidateTitle{Title: t}
	}
	return out
}
