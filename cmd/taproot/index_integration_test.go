package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/taproot/internal/store"
)

// writeProject lays out a small JavaScript project in a temp dir.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "externs"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))

	write := func(rel, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, rel), []byte(content), 0o644))
	}
	write(filepath.Join("externs", "env.js"), "/** @type {number} */\nFoo.bar;\nFoo.bar;\nvar console;\n")
	write(filepath.Join("src", "app.js"), "var greeting = 'hi';\nvar speak = function(name) { return greeting; };\nspeak.extra = compute();\n")
	write("taproot.toml", "externs = [\"externs/**/*.js\"]\nsources = [\"src/**/*.js\"]\n")
	return dir
}

func runCommand(t *testing.T, args ...string) {
	t.Helper()
	resetFlags()
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

// resetFlags restores flag-bound globals between Execute calls, since
// cobra keeps flag state across runs in one process.
func resetFlags() {
	flagDB = ""
	flagFormat = "auto"
	flagConfig = ""
	flagExterns = nil
	flagSources = nil
	flagForce = false
	flagComplexFuncs = false
}

func openDumpedStore(t *testing.T, dir string) *store.Store {
	t.Helper()
	s, err := store.NewStore(filepath.Join(dir, ".taproot", "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIndexCommand_DumpsDefinitions(t *testing.T) {
	dir := writeProject(t)
	runCommand(t, "index", dir)

	s := openDumpedStore(t, dir)

	files, err := s.AllFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)
	// Ordered by path: externs/env.js then src/app.js.
	assert.True(t, files[0].IsExtern)
	assert.False(t, files[1].IsExtern)

	speak, err := s.DefinitionsByName("speak")
	require.NoError(t, err)
	require.Len(t, speak, 1)
	assert.Equal(t, "concrete", speak[0].Kind)
	assert.True(t, speak[0].InGlobalScope)

	// The untyped duplicate stub was pruned; one stub row remains.
	bar, err := s.DefinitionsByName("this.bar")
	require.NoError(t, err)
	require.Len(t, bar, 1)
	assert.Equal(t, "stub", bar[0].Kind)
	assert.True(t, bar[0].IsExtern)

	extra, err := s.DefinitionsByName("this.extra")
	require.NoError(t, err)
	require.Len(t, extra, 1)
	assert.Equal(t, "unknown", extra[0].Kind)

	hash, err := s.GetMetadata("inputs_hash")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}

func TestIndexCommand_SkipsUnchangedInputs(t *testing.T) {
	dir := writeProject(t)
	runCommand(t, "index", dir)

	s := openDumpedStore(t, dir)
	before, err := s.AllFiles()
	require.NoError(t, err)
	require.Len(t, before, 2)
	firstIndexed := before[0].LastIndexed

	// Unchanged inputs leave the dump alone.
	runCommand(t, "index", dir)
	after, err := s.AllFiles()
	require.NoError(t, err)
	require.Len(t, after, 2)
	assert.Equal(t, firstIndexed, after[0].LastIndexed)

	// A content change triggers a re-dump.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "src", "app.js"),
		[]byte("var renamed = 1;\n"), 0o644))
	runCommand(t, "index", dir)

	defs, err := s.DefinitionsByName("renamed")
	require.NoError(t, err)
	assert.Len(t, defs, 1)
	gone, err := s.DefinitionsByName("speak")
	require.NoError(t, err)
	assert.Empty(t, gone)
}

func TestIndexCommand_ForceRebuilds(t *testing.T) {
	dir := writeProject(t)
	runCommand(t, "index", dir)
	runCommand(t, "index", dir, "--force")

	s := openDumpedStore(t, dir)
	defs, err := s.DefinitionsByName("speak")
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

func TestIndexCommand_FlagGlobsOverrideConfig(t *testing.T) {
	dir := writeProject(t)
	runCommand(t, "index", dir, "--externs", "src/**/*.js", "--sources", "src/**/*.js")

	s := openDumpedStore(t, dir)
	files, err := s.AllFiles()
	require.NoError(t, err)
	// Everything matched both sets, so everything is an extern.
	require.Len(t, files, 1)
	assert.True(t, files[0].IsExtern)
}

func TestIndexCommand_NoInputs(t *testing.T) {
	dir := t.TempDir()
	resetFlags()
	rootCmd.SetArgs([]string{"index", dir})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input files")
}

func TestIndexCommand_InvalidFormatRejected(t *testing.T) {
	dir := writeProject(t)
	resetFlags()
	rootCmd.SetArgs([]string{"index", dir, "--format", "yaml"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
