package mirror

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/logmirror/logmirror/internal/db"
)

// Cycle outcomes recorded in the journal.
const (
	OutcomeSynced  = "synced"
	OutcomeNoop    = "noop"
	OutcomeAnomaly = "anomaly"
	OutcomeFailed  = "failed"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS sync_cycles (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    key TEXT NOT NULL,
    outcome TEXT NOT NULL,
    bytes_moved INTEGER NOT NULL DEFAULT 0,
    remote_size INTEGER NOT NULL DEFAULT 0,
    local_size INTEGER NOT NULL DEFAULT 0,
    took_ms INTEGER NOT NULL DEFAULT 0,
    error TEXT NOT NULL DEFAULT '',
    completed_at TEXT NOT NULL -- RFC3339Nano
);

CREATE INDEX IF NOT EXISTS idx_cycles_completed ON sync_cycles(completed_at);
CREATE INDEX IF NOT EXISTS idx_cycles_outcome ON sync_cycles(outcome);

CREATE TABLE IF NOT EXISTS mirror_state (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const stateReversedSize = "reversed_size"

// CycleRecord is one journaled sync cycle.
type CycleRecord struct {
	ID          int64  `db:"id" json:"id"`
	Key         string `db:"key" json:"key"`
	Outcome     string `db:"outcome" json:"outcome"`
	BytesMoved  int64  `db:"bytes_moved" json:"bytes_moved"`
	RemoteSize  int64  `db:"remote_size" json:"remote_size"`
	LocalSize   int64  `db:"local_size" json:"local_size"`
	TookMs      int64  `db:"took_ms" json:"took_ms"`
	Error       string `db:"error" json:"error,omitempty"`
	CompletedAt string `db:"completed_at" json:"completed_at"`
}

// CycleJournal persists the outcome of every sync cycle in SQLite.
type CycleJournal struct {
	db *sqlx.DB
}

// NewCycleJournal creates or opens a journal at dbPath.
// Use ":memory:" for tests.
func NewCycleJournal(dbPath string) (*CycleJournal, error) {
	sdb, err := db.NewSqliteDB(db.WithPath(dbPath), db.WithMaxOpenConns(1))
	if err != nil {
		return nil, fmt.Errorf("open cycle journal: %w", err)
	}

	if _, err := sdb.Exec(journalSchema); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("init cycle journal schema: %w", err)
	}

	return &CycleJournal{db: sdb}, nil
}

func (j *CycleJournal) Close() error {
	return j.db.Close()
}

// Record appends one cycle record.
func (j *CycleJournal) Record(rec *CycleRecord) error {
	_, err := j.db.NamedExec(`
		INSERT INTO sync_cycles (key, outcome, bytes_moved, remote_size, local_size, took_ms, error, completed_at)
		VALUES (:key, :outcome, :bytes_moved, :remote_size, :local_size, :took_ms, :error, :completed_at)`,
		rec,
	)
	if err != nil {
		return fmt.Errorf("insert cycle record: %w", err)
	}
	return nil
}

// Last returns the most recent record, or nil when the journal is empty.
func (j *CycleJournal) Last() (*CycleRecord, error) {
	recs, err := j.Tail(1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

// Tail returns up to n most recent records, newest first.
func (j *CycleJournal) Tail(n int) ([]*CycleRecord, error) {
	var recs []*CycleRecord
	if err := j.db.Select(&recs, "SELECT * FROM sync_cycles ORDER BY id DESC LIMIT ?", n); err != nil {
		return nil, fmt.Errorf("query cycle records: %w", err)
	}
	return recs, nil
}

// SetReversedSize records the byte length the reversed file is expected to
// have. Written before the reversed file itself, so a write that never lands
// shows up as a mismatch on the next cycle.
func (j *CycleJournal) SetReversedSize(n int64) error {
	_, err := j.db.Exec(`
		INSERT INTO mirror_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		stateReversedSize, strconv.FormatInt(n, 10),
	)
	if err != nil {
		return fmt.Errorf("record reversed size: %w", err)
	}
	return nil
}

// ReversedSize returns the recorded expected reversed file length. The bool
// is false when no size has been recorded yet.
func (j *CycleJournal) ReversedSize() (int64, bool, error) {
	var value string
	err := j.db.Get(&value, "SELECT value FROM mirror_state WHERE key = ?", stateReversedSize)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query reversed size: %w", err)
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse reversed size %q: %w", value, err)
	}
	return n, true, nil
}

// Count returns the number of journaled cycles.
func (j *CycleJournal) Count() (int, error) {
	var count int
	if err := j.db.Get(&count, "SELECT COUNT(*) FROM sync_cycles"); err != nil {
		return 0, fmt.Errorf("count cycle records: %w", err)
	}
	return count, nil
}
