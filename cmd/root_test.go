package cmd

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/bookfinder/internal/testutil"
)

func resetCmdState(t *testing.T) *testutil.TestEnv {
	t.Helper()

	env := testutil.NewTestEnv(t)
	testutil.ResetConfig(t, env)
	return env
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"bookfinder"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	opts := append(kongOptions(), kong.Exit(func(code int) {
		t.Fatalf("unexpected Kong exit %d", code)
	}))
	ctx := kong.Parse(cli, opts...)

	return cli, ctx
}

func parseCLIError(t *testing.T, args ...string) error {
	t.Helper()

	cli := &CLI{}
	parser, err := kong.New(cli, kongOptions()...)
	require.NoError(t, err)

	_, err = parser.Parse(args)
	return err
}

func TestRecommendCommandDefaults(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "recommend")

	assert.Equal(t, "recommend", ctx.Command())
	assert.Empty(t, cli.Recommend.Query)
	assert.Equal(t, "fiction", cli.Recommend.Genre)
	assert.Equal(t, "novels", cli.Recommend.Length)
	assert.Equal(t, 8, cli.Recommend.Limit)
	assert.Equal(t, "text", cli.Recommend.Format)
	assert.False(t, cli.Recommend.Interactive)
}

func TestRecommendCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "recommend", "The", "Great", "Gatsby", "-g", "thriller", "-l", "short-novels", "-n", "4", "-o", "json", "-i")

	assert.Equal(t, []string{"The", "Great", "Gatsby"}, cli.Recommend.Query)
	assert.Equal(t, "The Great Gatsby", cli.Recommend.request().Query)
	assert.Equal(t, "thriller", cli.Recommend.Genre)
	assert.Equal(t, "short-novels", cli.Recommend.Length)
	assert.Equal(t, 4, cli.Recommend.Limit)
	assert.Equal(t, "json", cli.Recommend.Format)
	assert.True(t, cli.Recommend.Interactive)
}

func TestRecommendRejectsUnknownGenre(t *testing.T) {
	resetCmdState(t)

	err := parseCLIError(t, "recommend", "--genre", "westerns")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "westerns")
}

func TestSearchCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "search", "harry", "potter", "--subject", "fiction", "--max", "5", "--lang", "fi")

	assert.Equal(t, []string{"harry", "potter"}, cli.Search.Query)
	assert.Equal(t, "fiction", cli.Search.Subject)
	assert.Equal(t, 5, cli.Search.Max)
	assert.Equal(t, "fi", cli.Search.Lang)
}

func TestSearchRequiresQuery(t *testing.T) {
	resetCmdState(t)

	require.Error(t, parseCLIError(t, "search"))
}

func TestFavoritesDefaultsToList(t *testing.T) {
	resetCmdState(t)

	_, ctx := parseCLI(t, "favorites")
	assert.Equal(t, "favorites list", ctx.Command())
}

func TestFavoritesExportParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "favorites", "export", "favs.yaml", "--overwrite")
	assert.Equal(t, "favorites export <path>", ctx.Command())
	assert.Equal(t, "favs.yaml", cli.Favorites.Export.Path)
	assert.True(t, cli.Favorites.Export.Overwrite)
}

func TestGlobalFlags(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "--db", "/tmp/favs.db", "--timeout", "30s", "-v", "genres")

	assert.Equal(t, "/tmp/favs.db", cli.DBFile)
	assert.Equal(t, 30*time.Second, cli.Timeout)
	assert.True(t, cli.Verbose)
}

func TestUpdateConfigSetsViperValues(t *testing.T) {
	resetCmdState(t)

	updateConfig(&CLI{DBFile: "/tmp/favs.db", Timeout: 5 * time.Second})

	assert.Equal(t, "/tmp/favs.db", viper.GetString("favorites.dbfile"))
	assert.Equal(t, "5s", viper.GetString("http.timeout"))
}

func TestUpdateConfigKeepsUnsetValues(t *testing.T) {
	resetCmdState(t)
	viper.Set("favorites.dbfile", "/from/config.db")

	updateConfig(&CLI{})

	assert.Equal(t, "/from/config.db", viper.GetString("favorites.dbfile"))
	assert.False(t, viper.IsSet("http.timeout"))
}

func TestInitConfigWithoutFile(t *testing.T) {
	env := resetCmdState(t)
	env.Chdir(".")

	require.NoError(t, initConfig(""))
	assert.Equal(t, "./bookfinder.db", viper.GetString("favorites.dbfile"))
}

func TestInitConfigReadsYAMLAndDotEnv(t *testing.T) {
	env := resetCmdState(t)
	env.WriteFileString("config.yaml", "favorites:\n  dbfile: from-yaml.db\nenrich:\n  concurrency: 3\n")
	env.WriteFileString(".env", "OPENROUTER_API_KEY=from-dotenv\n")
	env.Chdir(".")
	t.Cleanup(func() { _ = os.Unsetenv("OPENROUTER_API_KEY") })

	require.NoError(t, initConfig(""))

	assert.Equal(t, "from-yaml.db", viper.GetString("favorites.dbfile"))
	assert.Equal(t, 3, viper.GetInt("enrich.concurrency"))
	assert.Equal(t, "from-dotenv", viper.GetString("suggestion.credential"))
}

func TestInitConfigExplicitMissingFile(t *testing.T) {
	env := resetCmdState(t)

	err := initConfig(env.Path("nope.yaml"))
	require.Error(t, err)
}

func TestOpenFailurePropagates(t *testing.T) {
	resetCmdState(t)

	env := &Env{Open: func(context.Context) (*App, error) { return nil, errors.New("no database") }}

	err := (&FavoritesListCmd{Format: "text"}).Run(env)
	require.EqualError(t, err, "no database")
}
