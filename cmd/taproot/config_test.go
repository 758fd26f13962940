package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	cfg, err := loadConfig(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".taproot", "index.db"), cfg.DB)
	assert.Equal(t, []string{"**/*.js"}, cfg.Sources)
	assert.Empty(t, cfg.Externs)
	assert.False(t, cfg.ComplexFunctionDefs)
}

func TestLoadConfig_ReadsProjectFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(`
db = "build/defs.db"
externs = ["externs/*.js"]
sources = ["src/**/*.js", "lib/**/*.js"]
complex_function_defs = true
`), 0o644))

	cfg, err := loadConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "build/defs.db", cfg.DB)
	assert.Equal(t, []string{"externs/*.js"}, cfg.Externs)
	assert.Equal(t, []string{"src/**/*.js", "lib/**/*.js"}, cfg.Sources)
	assert.True(t, cfg.ComplexFunctionDefs)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName),
		[]byte(`externs = ["ext.js"]`), 0o644))

	cfg, err := loadConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(".taproot", "index.db"), cfg.DB)
	assert.Equal(t, []string{"**/*.js"}, cfg.Sources)
	assert.Equal(t, []string{"ext.js"}, cfg.Externs)
}

func TestLoadConfig_ExplicitMissingFileErrors(t *testing.T) {
	_, err := loadConfig(t.TempDir(), filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadConfig_MalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName),
		[]byte("externs = not-a-value"), 0o644))

	_, err := loadConfig(dir, "")
	require.Error(t, err)
}

func TestResolveDBPath(t *testing.T) {
	resetFlags()
	cfg := config{DB: filepath.Join(".taproot", "index.db")}
	assert.Equal(t, filepath.Join("proj", ".taproot", "index.db"), resolveDBPath("proj", cfg))

	abs := string(filepath.Separator) + filepath.Join("tmp", "defs.db")
	assert.Equal(t, abs, resolveDBPath("proj", config{DB: abs}))

	flagDB = "override.db"
	defer resetFlags()
	assert.Equal(t, "override.db", resolveDBPath("proj", cfg))
}
