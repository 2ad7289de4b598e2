package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	resolved, err := ResolvePath("~/mirror")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "mirror"), resolved)

	_, err = ResolvePath("")
	assert.Error(t, err)
}

func TestEnsureParent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "current.log")

	require.NoError(t, EnsureParent(target))
	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// idempotent
	require.NoError(t, EnsureParent(target))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(filepath.Join(dir, "missing")))
	assert.False(t, FileExists(dir), "directories are not files")

	path := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	assert.True(t, FileExists(path))
}
