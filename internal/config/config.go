// Package config assembles the runtime configuration from viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/lepinkainen/bookfinder/internal/googlebooks"
	"github.com/lepinkainen/bookfinder/internal/suggest"
)

// Default values for settings that are not provider defaults.
const (
	DefaultFavoritesDB       = "./bookfinder.db"
	DefaultCatalogRateLimit  = 10.0
	DefaultSuggestRateLimit  = 1.0
	DefaultEnrichConcurrency = 0
)

// CatalogConfig configures the catalog client.
type CatalogConfig struct {
	BaseURL string
	APIKey  string
	// RateLimit is in requests per second. Zero disables pacing.
	RateLimit float64
}

// Config is the explicit configuration handed to every constructor.
type Config struct {
	Suggestion          suggest.Config
	SuggestionRateLimit float64
	Catalog             CatalogConfig
	FavoritesDB         string
	// HTTPTimeout bounds outbound calls. Zero waits until the call settles.
	HTTPTimeout       time.Duration
	EnrichConcurrency int
}

// SetDefaults registers defaults and environment bindings on the global viper
// instance.
func SetDefaults() {
	viper.SetDefault("suggestion.baseurl", suggest.DefaultBaseURL)
	viper.SetDefault("suggestion.model", suggest.DefaultModel)
	viper.SetDefault("suggestion.maxtokens", suggest.DefaultMaxTokens)
	viper.SetDefault("suggestion.temperature", suggest.DefaultTemperature)
	viper.SetDefault("suggestion.ratelimit", DefaultSuggestRateLimit)
	viper.SetDefault("catalog.baseurl", googlebooks.DefaultBaseURL)
	viper.SetDefault("catalog.ratelimit", DefaultCatalogRateLimit)
	viper.SetDefault("favorites.dbfile", DefaultFavoritesDB)
	viper.SetDefault("http.timeout", "0s")
	viper.SetDefault("enrich.concurrency", DefaultEnrichConcurrency)

	_ = viper.BindEnv("suggestion.credential", "OPENROUTER_API_KEY")
	_ = viper.BindEnv("suggestion.baseurl", "OPENROUTER_API_BASE")
	_ = viper.BindEnv("catalog.apikey", "GOOGLE_BOOKS_API_KEY")
}

// Load reads the current viper state into a Config.
func Load() (Config, error) {
	timeout, err := parseDuration("http.timeout")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Suggestion: suggest.Config{
			Credential:  viper.GetString("suggestion.credential"),
			BaseURL:     viper.GetString("suggestion.baseurl"),
			Model:       viper.GetString("suggestion.model"),
			MaxTokens:   viper.GetInt("suggestion.maxtokens"),
			Temperature: viper.GetFloat64("suggestion.temperature"),
			Referer:     viper.GetString("suggestion.referer"),
			Title:       viper.GetString("suggestion.title"),
		},
		SuggestionRateLimit: viper.GetFloat64("suggestion.ratelimit"),
		Catalog: CatalogConfig{
			BaseURL:   viper.GetString("catalog.baseurl"),
			APIKey:    viper.GetString("catalog.apikey"),
			RateLimit: viper.GetFloat64("catalog.ratelimit"),
		},
		FavoritesDB:       viper.GetString("favorites.dbfile"),
		HTTPTimeout:       timeout,
		EnrichConcurrency: viper.GetInt("enrich.concurrency"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work.
func (c Config) Validate() error {
	switch {
	case c.HTTPTimeout < 0:
		return fmt.Errorf("http.timeout must not be negative, got %s", c.HTTPTimeout)
	case c.EnrichConcurrency < 0:
		return fmt.Errorf("enrich.concurrency must not be negative, got %d", c.EnrichConcurrency)
	case c.Catalog.RateLimit < 0:
		return fmt.Errorf("catalog.ratelimit must not be negative, got %v", c.Catalog.RateLimit)
	case c.SuggestionRateLimit < 0:
		return fmt.Errorf("suggestion.ratelimit must not be negative, got %v", c.SuggestionRateLimit)
	case c.FavoritesDB == "":
		return fmt.Errorf("favorites.dbfile must be set")
	}
	return nil
}

// parseDuration accepts both duration strings and values viper already decoded.
func parseDuration(key string) (time.Duration, error) {
	raw := viper.Get(key)
	switch v := raw.(type) {
	case nil:
		return 0, nil
	case time.Duration:
		return v, nil
	case string:
		if v == "" {
			return 0, nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
		}
		return d, nil
	default:
		return viper.GetDuration(key), nil
	}
}
