package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestEnv_Path(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("a", "b.json")
	assert.Equal(t, filepath.Join(env.RootDir(), "a", "b.json"), path)
	assert.Equal(t, env.RootDir(), env.Path())
}

func TestTestEnv_WriteReadFileString(t *testing.T) {
	env := NewTestEnv(t)

	env.WriteFileString("nested/dir/file.txt", "hello")
	assert.True(t, env.FileExists("nested/dir/file.txt"))
	assert.Equal(t, "hello", env.ReadFileString("nested/dir/file.txt"))
	assert.False(t, env.FileExists("missing.txt"))
}

func TestTestEnv_Chdir(t *testing.T) {
	env := NewTestEnv(t)
	env.WriteFileString("work/marker", "x")

	env.Chdir("work")

	_, err := os.Stat("marker")
	require.NoError(t, err)
}

func TestTestEnv_SetEnv(t *testing.T) {
	env := NewTestEnv(t)

	env.SetEnv("BOOKFINDER_TEST_VAR", "value")
	assert.Equal(t, "value", os.Getenv("BOOKFINDER_TEST_VAR"))
}

func TestTestEnv_UnsetEnv_Restores(t *testing.T) {
	require.NoError(t, os.Setenv("BOOKFINDER_TEST_RESTORE", "orig"))
	t.Cleanup(func() { _ = os.Unsetenv("BOOKFINDER_TEST_RESTORE") })

	t.Run("inner", func(t *testing.T) {
		env := NewTestEnv(t)
		env.UnsetEnv("BOOKFINDER_TEST_RESTORE")
		_, ok := os.LookupEnv("BOOKFINDER_TEST_RESTORE")
		assert.False(t, ok)
	})

	assert.Equal(t, "orig", os.Getenv("BOOKFINDER_TEST_RESTORE"))
}

func TestResetConfigClearsCredentials(t *testing.T) {
	env := NewTestEnv(t)
	env.SetEnv("OPENROUTER_API_KEY", "secret")
	viper.Set("suggestion.model", "custom")

	ResetConfig(t, env)

	_, ok := os.LookupEnv("OPENROUTER_API_KEY")
	assert.False(t, ok)
	assert.False(t, viper.IsSet("suggestion.model"))
}

func TestSetupFavoritesDB(t *testing.T) {
	env := NewTestEnv(t)
	ResetConfig(t, env)

	path := SetupFavoritesDB(t, env)
	assert.Equal(t, env.Path("favorites.db"), path)
	assert.Equal(t, path, viper.GetString("favorites.dbfile"))
}
