package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/bookfinder/internal/config"
	apierrors "github.com/lepinkainen/bookfinder/internal/errors"
	"github.com/lepinkainen/bookfinder/internal/recommend"
	"github.com/lepinkainen/bookfinder/internal/render"
)

// CLI represents the complete command structure for the bookfinder application
type CLI struct {
	// Global flags
	Verbose    bool          `short:"v" help:"Enable debug logging"`
	ConfigFile string        `name:"config" help:"Path to a YAML config file (defaults to ./config.yaml when present)"`
	DBFile     string        `name:"db" help:"Path to the favorites SQLite database file (default ./bookfinder.db)"`
	Timeout    time.Duration `help:"Bound every outbound HTTP call (0 waits until the call settles)"`

	Recommend RecommendCmd `cmd:"" help:"Recommend books for a query or a genre and length"`
	Search    SearchCmd    `cmd:"" help:"Search the book catalog directly"`
	Favorites FavoritesCmd `cmd:"" help:"Manage favorite books"`
	Genres    GenresCmd    `cmd:"" help:"List the available genre and length filters"`
}

func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("bookfinder"),
		kong.Description("Discover books by query or by genre and length, and keep a list of favorites."),
		kong.UsageOnError(),
		kong.Vars{
			"genres":        strings.Join(recommend.Values(recommend.Genres), ","),
			"lengths":       strings.Join(recommend.Values(recommend.Lengths), ","),
			"formats":       strings.Join(render.Formats, ","),
			"defaultGenre":  recommend.DefaultGenre,
			"defaultLength": recommend.DefaultLength,
			"defaultLimit":  fmt.Sprint(render.DefaultLimit),
		},
	}
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI
	ctx := kong.Parse(&cli, kongOptions()...)

	initLogging(cli.Verbose)
	if err := initConfig(cli.ConfigFile); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	updateConfig(&cli)

	err := ctx.Run(defaultEnv())
	if err != nil {
		if apierrors.IsRecommendationError(err) {
			fmt.Fprintln(os.Stderr, "could not fetch recommendations")
		}
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig(configFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	config.SetDefaults()

	// BOOKFINDER_HTTP_TIMEOUT and friends override config file values
	viper.SetEnvPrefix("bookfinder")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("Config file not found, using defaults and environment")
	}
	return nil
}

// updateConfig applies global flags on top of file and environment settings.
func updateConfig(cli *CLI) {
	if cli.DBFile != "" {
		viper.Set("favorites.dbfile", cli.DBFile)
	}
	if cli.Timeout > 0 {
		viper.Set("http.timeout", cli.Timeout.String())
	}
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Logs go to stderr so JSON and YAML output on stdout stays machine-readable
	handler := humanlog.NewHandler(os.Stderr, &humanlog.Options{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
