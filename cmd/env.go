package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/lepinkainen/bookfinder/internal/book"
	"github.com/lepinkainen/bookfinder/internal/config"
	"github.com/lepinkainen/bookfinder/internal/enrich"
	"github.com/lepinkainen/bookfinder/internal/favorites"
	"github.com/lepinkainen/bookfinder/internal/googlebooks"
	"github.com/lepinkainen/bookfinder/internal/kvstore"
	"github.com/lepinkainen/bookfinder/internal/ratelimit"
	"github.com/lepinkainen/bookfinder/internal/recommend"
	"github.com/lepinkainen/bookfinder/internal/suggest"
)

// Resolver produces recommendations for a request.
type Resolver interface {
	Resolve(ctx context.Context, req recommend.Request) ([]book.Book, error)
}

// App holds the wired pipeline a command runs against.
type App struct {
	Router    Resolver
	Catalog   book.Catalog
	Favorites *favorites.Store
	closers   []io.Closer
}

// Close releases the resources opened for the app.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Env is bound into every command's Run method.
type Env struct {
	Out  io.Writer
	Open func(ctx context.Context) (*App, error)
}

func defaultEnv() *Env {
	return &Env{
		Out: os.Stdout,
		Open: func(ctx context.Context) (*App, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return openApp(ctx, cfg)
		},
	}
}

// openApp wires the catalog, suggestion, enrichment and favorites layers
// from cfg and loads the persisted favorites.
func openApp(ctx context.Context, cfg config.Config) (*App, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	catalog := googlebooks.NewClient(
		googlebooks.WithHTTPClient(httpClient),
		googlebooks.WithBaseURL(cfg.Catalog.BaseURL),
		googlebooks.WithAPIKey(cfg.Catalog.APIKey),
		googlebooks.WithRateLimiter(ratelimit.New("GoogleBooks", cfg.Catalog.RateLimit)),
	)

	suggester := suggest.New(cfg.Suggestion,
		suggest.WithHTTPClient(httpClient),
		suggest.WithRateLimiter(ratelimit.New("Suggestion", cfg.SuggestionRateLimit)),
	)
	if suggester.Offline() {
		slog.Info("No suggestion credential configured, recommendations use built-in titles")
	}

	enricher := enrich.New(catalog, enrich.WithConcurrency(cfg.EnrichConcurrency))

	db, err := kvstore.Open(cfg.FavoritesDB)
	if err != nil {
		return nil, err
	}

	store := favorites.New(db)
	if err := store.Load(ctx); err != nil {
		return nil, errors.Join(err, db.Close())
	}

	return &App{
		Router:    recommend.NewRouter(suggester, enricher, catalog),
		Catalog:   catalog,
		Favorites: store,
		closers:   []io.Closer{db},
	}, nil
}
