package cmd

import (
	"context"
	"strings"

	"github.com/lepinkainen/bookfinder/internal/book"
	"github.com/lepinkainen/bookfinder/internal/render"
)

// SearchCmd represents the search command
type SearchCmd struct {
	Query   []string `arg:"" help:"Catalog query"`
	Subject string   `short:"s" help:"Restrict results to a subject, e.g. a genre (\"all\" disables the filter)"`
	Max     int      `short:"m" help:"Maximum number of results to request" default:"16"`
	Lang    string   `help:"Restrict results to a language code" default:"en"`
	Limit   int      `short:"n" help:"Number of results to show (0 shows all)" default:"0"`
	Format  string   `short:"o" help:"Output format (${enum})" enum:"${formats}" default:"text"`
}

func (s *SearchCmd) Run(env *Env) (err error) {
	ctx := context.Background()

	app, err := env.Open(ctx)
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	books, err := app.Catalog.Search(ctx, strings.Join(s.Query, " "), book.SearchOptions{
		MaxResults:       s.Max,
		LanguageRestrict: s.Lang,
		Subject:          s.Subject,
	})
	if err != nil {
		return err
	}

	format, err := render.ParseFormat(s.Format)
	if err != nil {
		return err
	}
	return render.Books(env.Out, books, render.Options{
		Format:     format,
		Limit:      s.Limit,
		IsFavorite: app.Favorites.IsFavorite,
	})
}
