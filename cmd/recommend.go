package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/lepinkainen/bookfinder/internal/recommend"
	"github.com/lepinkainen/bookfinder/internal/render"
	"github.com/lepinkainen/bookfinder/internal/tui"
)

var browse = tui.Browse

// RecommendCmd represents the recommend command
type RecommendCmd struct {
	Query       []string `arg:"" optional:"" help:"Free-text query. Leave empty for genre and length recommendations."`
	Genre       string   `short:"g" help:"Genre filter (${enum})" enum:"${genres}" default:"${defaultGenre}"`
	Length      string   `short:"l" help:"Book length filter (${enum})" enum:"${lengths}" default:"${defaultLength}"`
	Limit       int      `short:"n" help:"Number of results to show (0 shows all)" default:"${defaultLimit}"`
	Format      string   `short:"o" help:"Output format (${enum})" enum:"${formats}" default:"text"`
	Interactive bool     `short:"i" help:"Browse results interactively and toggle favorites"`
}

func (r *RecommendCmd) request() recommend.Request {
	return recommend.Request{
		Query:  strings.Join(r.Query, " "),
		Genre:  r.Genre,
		Length: r.Length,
	}
}

func (r *RecommendCmd) Run(env *Env) (err error) {
	ctx := context.Background()

	app, err := env.Open(ctx)
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	req := r.request()
	books, err := app.Router.Resolve(ctx, req)
	if err != nil {
		return err
	}

	if r.Interactive {
		result, err := browse(ctx, tui.Heading(req.Query, len(books)), books, app.Favorites)
		if err != nil {
			return fmt.Errorf("interactive browser failed: %w", err)
		}
		_, err = fmt.Fprintf(env.Out, "Favorites added: %d, removed: %d\n", result.Added, result.Removed)
		return err
	}

	format, err := render.ParseFormat(r.Format)
	if err != nil {
		return err
	}
	return render.Books(env.Out, books, render.Options{
		Format:     format,
		Limit:      r.Limit,
		IsFavorite: app.Favorites.IsFavorite,
	})
}

func closeApp(app *App, err *error) {
	if closeErr := app.Close(); closeErr != nil && *err == nil {
		*err = closeErr
	}
}
