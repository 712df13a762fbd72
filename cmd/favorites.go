package cmd

import (
	"context"
	"fmt"

	"github.com/lepinkainen/bookfinder/internal/fileutil"
	"github.com/lepinkainen/bookfinder/internal/render"
)

// FavoritesCmd represents the favorites command and its subcommands
type FavoritesCmd struct {
	List   FavoritesListCmd   `cmd:"" default:"1" help:"List favorite books"`
	Remove FavoritesRemoveCmd `cmd:"" help:"Remove a book from favorites by id"`
	Clear  FavoritesClearCmd  `cmd:"" help:"Remove every favorite"`
	Export FavoritesExportCmd `cmd:"" help:"Write favorites to a JSON or YAML file"`
}

// FavoritesListCmd represents the favorites list command
type FavoritesListCmd struct {
	Format string `short:"o" help:"Output format (${enum})" enum:"${formats}" default:"text"`
}

func (l *FavoritesListCmd) Run(env *Env) (err error) {
	app, err := env.Open(context.Background())
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	format, err := render.ParseFormat(l.Format)
	if err != nil {
		return err
	}
	return render.Books(env.Out, app.Favorites.List(), render.Options{Format: format})
}

// FavoritesRemoveCmd represents the favorites remove command
type FavoritesRemoveCmd struct {
	ID string `arg:"" help:"Id of the book to remove"`
}

func (r *FavoritesRemoveCmd) Run(env *Env) (err error) {
	ctx := context.Background()

	app, err := env.Open(ctx)
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	removed, err := app.Favorites.Remove(ctx, r.ID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no favorite with id %q", r.ID)
	}
	_, err = fmt.Fprintf(env.Out, "Removed %s from favorites\n", r.ID)
	return err
}

// FavoritesClearCmd represents the favorites clear command
type FavoritesClearCmd struct{}

func (c *FavoritesClearCmd) Run(env *Env) (err error) {
	ctx := context.Background()

	app, err := env.Open(ctx)
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	count := app.Favorites.Len()
	if err := app.Favorites.Clear(ctx); err != nil {
		return err
	}
	_, err = fmt.Fprintf(env.Out, "Cleared %d favorites\n", count)
	return err
}

// FavoritesExportCmd represents the favorites export command
type FavoritesExportCmd struct {
	Path      string `arg:"" help:"Destination file (.json, .yaml or .yml)"`
	Overwrite bool   `help:"Replace the file if it already exists"`
}

func (e *FavoritesExportCmd) Run(env *Env) (err error) {
	app, err := env.Open(context.Background())
	if err != nil {
		return err
	}
	defer closeApp(app, &err)

	books := app.Favorites.List()
	written, err := fileutil.ExportBooks(e.Path, books, e.Overwrite)
	if err != nil {
		return err
	}
	if !written {
		_, err = fmt.Fprintf(env.Out, "%s already exists, use --overwrite to replace it\n", e.Path)
		return err
	}
	_, err = fmt.Fprintf(env.Out, "Exported %d favorites to %s\n", len(books), e.Path)
	return err
}
