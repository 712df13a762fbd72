package testutil

import (
	"testing"

	"github.com/spf13/viper"
)

// credentialEnvVars are cleared by ResetConfig so a developer's shell never
// leaks real provider keys into a test.
var credentialEnvVars = []string{
	"OPENROUTER_API_KEY",
	"OPENROUTER_API_BASE",
	"GOOGLE_BOOKS_API_KEY",
}

// ResetConfig resets viper now and again when the test completes, and
// clears provider credentials from the environment.
func ResetConfig(t *testing.T, env *TestEnv) {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	for _, key := range credentialEnvVars {
		env.UnsetEnv(key)
	}
}

// SetupFavoritesDB points favorites.dbfile at a database inside env and
// returns its path.
func SetupFavoritesDB(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("favorites.db")
	viper.Set("favorites.dbfile", dbPath)
	return dbPath
}
