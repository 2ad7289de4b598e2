package workspace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceLayout(t *testing.T) {
	dir := t.TempDir()
	ws, err := New(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "current.log"), ws.CurrentPath)
	assert.Equal(t, filepath.Join(dir, "reversed.log"), ws.ReversedPath)
	assert.Equal(t, filepath.Join(dir, ".data", "journal.db"), ws.JournalPath)
}

func TestWorkspaceSingleInstanceLock(t *testing.T) {
	dir := t.TempDir()

	ws1, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, ws1.Lock())
	defer ws1.Unlock()

	ws2, err := New(dir)
	require.NoError(t, err)
	err = ws2.Lock()
	assert.ErrorIs(t, err, ErrWorkspaceLocked)

	require.NoError(t, ws1.Unlock())
	require.NoError(t, ws2.Lock())
	require.NoError(t, ws2.Unlock())
}

func TestWorkspaceUnlockWithoutLock(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, ws.Unlock())
}
