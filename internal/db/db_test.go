package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSqliteDBInMemory(t *testing.T) {
	db, err := NewSqliteDB()
	require.NoError(t, err)
	defer db.Close()

	var one int
	require.NoError(t, db.Get(&one, "SELECT 1"))
	assert.Equal(t, 1, one)
}

func TestNewSqliteDBFileCreatesParent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "journal.db")

	db, err := NewSqliteDB(WithPath(path), WithMaxOpenConns(1))
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.Get(&mode, "PRAGMA journal_mode"))
	assert.Equal(t, "wal", mode)
}
