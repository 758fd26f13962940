package ast

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseFiles_PreservesInputOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.js", "var a = 1;")
	b := writeFile(t, dir, "b.js", "var b = 2;")
	c := writeFile(t, dir, "c.js", "var c = 3;")

	roots, err := ParseFiles(context.Background(), []string{c, a, b}, false)
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.Equal(t, c, roots[0].File)
	assert.Equal(t, a, roots[1].File)
	assert.Equal(t, b, roots[2].File)
	assert.Equal(t, "c", roots[0].Children[0].Children[0].Value)
}

func TestParseFiles_ExternFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ext.js", "var console;")

	roots, err := ParseFiles(context.Background(), []string{path}, true)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.True(t, roots[0].FromExterns)
}

func TestParseFiles_MissingFile(t *testing.T) {
	_, err := ParseFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.js")}, false)
	require.Error(t, err)
}

func TestParseFiles_Empty(t *testing.T) {
	roots, err := ParseFiles(context.Background(), nil, false)
	require.NoError(t, err)
	assert.Empty(t, roots)
}
