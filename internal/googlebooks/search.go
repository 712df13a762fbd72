package googlebooks

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/lepinkainen/bookfinder/internal/book"
	apierrors "github.com/lepinkainen/bookfinder/internal/errors"
)

// Compile-time check that Client implements book.Catalog.
var _ book.Catalog = (*Client)(nil)

// Search queries the volumes endpoint and maps every hit to a book.
// An empty result set is not an error. Transport and status failures are
// returned as *errors.CatalogError.
func (c *Client) Search(ctx context.Context, query string, opts book.SearchOptions) ([]book.Book, error) {
	endpoint := c.searchURL(query, opts)

	slog.Debug("Searching Google Books", "query", query, "max_results", opts.MaxResults, "lang", opts.LanguageRestrict)

	var result volumesResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, apierrors.NewCatalogError(query, statusCode(err), err)
	}

	if len(result.Items) == 0 {
		slog.Debug("No Google Books results", "query", query)
		return []book.Book{}, nil
	}

	books := make([]book.Book, 0, len(result.Items))
	for _, item := range result.Items {
		books = append(books, toBook(item))
	}
	return books, nil
}

func (c *Client) searchURL(query string, opts book.SearchOptions) string {
	q := url.QueryEscape(query)
	if opts.Subject != "" && opts.Subject != "all" {
		q += "+subject:" + url.QueryEscape(opts.Subject)
	}

	var sb strings.Builder
	sb.WriteString(c.baseURL)
	sb.WriteString("/volumes?q=")
	sb.WriteString(q)
	if opts.MaxResults > 0 {
		sb.WriteString("&maxResults=")
		sb.WriteString(strconv.Itoa(opts.MaxResults))
	}
	if opts.LanguageRestrict != "" {
		sb.WriteString("&langRestrict=")
		sb.WriteString(url.QueryEscape(opts.LanguageRestrict))
	}
	if c.apiKey != "" {
		sb.WriteString("&key=")
		sb.WriteString(url.QueryEscape(c.apiKey))
	}
	return sb.String()
}

// toBook maps a volume to the canonical book shape, filling defaults for
// missing fields.
func toBook(v volume) book.Book {
	info := v.VolumeInfo

	b := book.Book{
		ID:            v.ID,
		Title:         info.Title,
		Subtitle:      info.Subtitle,
		Authors:       info.Authors,
		Summary:       info.Description,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		PageCount:     info.PageCount,
		Language:      info.Language,
		ISBN10:        isbn10(info.IndustryIdentifiers),
		Image:         info.ImageLinks.Thumbnail,
		PreviewLink:   info.PreviewLink,
	}

	if b.Title == "" {
		b.Title = book.UnknownTitle
	}
	if len(b.Authors) == 0 {
		b.Authors = []string{book.UnknownAuthor}
	}
	if b.Summary == "" {
		b.Summary = book.DefaultSummary
	}
	if len(info.Categories) > 0 {
		b.Genre = info.Categories[0]
	} else {
		b.Genre = book.UnknownGenre
	}
	if b.Publisher == "" {
		b.Publisher = book.UnknownPublisher
	}
	if b.Image == "" {
		b.Image = book.PlaceholderImage
	}

	return b
}

// isbn10 returns the first ISBN_10 identifier, if any.
func isbn10(ids []industryIdentifier) string {
	for _, id := range ids {
		if id.Type == "ISBN_10" {
			return id.Identifier
		}
	}
	return ""
}
