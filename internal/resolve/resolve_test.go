package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveStdPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "io"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "io", "fs.lm"), []byte("@module \"fs\""), 0o644))

	r := New(dir)
	path, err := r.Resolve("std/io/fs")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "io", "fs.lm"), path)
}

func TestResolveBareIdentifierRetriesWithStdPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "math.lm"), []byte("@module \"math\""), 0o644))

	r := New(dir)
	path, err := r.Resolve("math")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "math.lm"), path)
}

func TestResolvePassthrough(t *testing.T) {
	r := New(t.TempDir())
	path, err := r.Resolve("./util")
	require.NoError(t, err)
	require.Equal(t, "./util.lm", path)
}

func TestResolveNotFound(t *testing.T) {
	r := New(t.TempDir())
	_, err := r.Resolve("std/does/not/exist")
	require.ErrorIs(t, err, ErrNotFound)
}
