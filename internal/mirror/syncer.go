package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/logmirror/logmirror/internal/blob"
)

// Syncer mirrors one remote append-only log object into a canonical local
// file and a newest-first reversed copy. At most one cycle runs at a time;
// overlapping calls are rejected, never queued.
type Syncer struct {
	store        blob.Store
	currentPath  string
	reversedPath string
	journal      *CycleJournal

	muCycle sync.Mutex // single-flight guard for RunCycle

	muState sync.RWMutex
	key     string
	last    *CycleResult
	lastErr error
}

func NewSyncer(store blob.Store, key, currentPath, reversedPath string, journal *CycleJournal) *Syncer {
	return &Syncer{
		store:        store,
		key:          key,
		currentPath:  currentPath,
		reversedPath: reversedPath,
		journal:      journal,
	}
}

// Key returns the remote object key currently mirrored.
func (s *Syncer) Key() string {
	s.muState.RLock()
	defer s.muState.RUnlock()
	return s.key
}

// SetKey switches the mirrored remote object. Takes effect on the next
// cycle; an in-flight cycle keeps the key it started with.
func (s *Syncer) SetKey(key string) {
	s.muState.Lock()
	defer s.muState.Unlock()
	if key != s.key {
		slog.Info("mirror key changed", "old", s.key, "new", key)
		s.key = key
	}
}

// Status reports the current watermark and last cycle outcome.
func (s *Syncer) Status() (*Status, error) {
	watermark, err := localSize(s.currentPath)
	if err != nil {
		return nil, err
	}

	s.muState.RLock()
	defer s.muState.RUnlock()

	st := &Status{
		Key:        s.key,
		Watermark:  watermark,
		LastResult: s.last,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st, nil
}

// ReadPage serves a newest-first page from the reversed file.
func (s *Syncer) ReadPage(page, size int) (*Page, error) {
	return ReadPage(s.reversedPath, page, size)
}

// RunCycle executes one sync cycle: probe sizes, fetch the byte delta,
// append it to the canonical mirror and merge its reversal into the
// reversed file. Returns ErrCycleInProgress when a cycle is already
// running. The guard is released on every path.
func (s *Syncer) RunCycle(ctx context.Context) (*CycleResult, error) {
	if !s.muCycle.TryLock() {
		return nil, ErrCycleInProgress
	}
	defer s.muCycle.Unlock()

	key := s.Key()
	tstart := time.Now()

	result, err := s.runCycle(ctx, key)

	took := time.Since(tstart)
	completedAt := time.Now().UTC()

	s.muState.Lock()
	if err != nil {
		s.lastErr = err
	} else {
		result.Took = took
		result.CompletedAt = completedAt
		s.last = result
		s.lastErr = nil
	}
	s.muState.Unlock()

	s.recordCycle(key, result, err, took, completedAt)

	if err != nil {
		return nil, err
	}

	if result.Changed {
		slog.Info("sync cycle",
			"key", key,
			"moved", humanize.Bytes(uint64(result.BytesMoved)),
			"remote", result.RemoteSize,
			"local", result.LocalSize,
			"took", took,
		)
	} else if result.Anomaly != "" {
		slog.Warn("sync cycle anomaly",
			"key", key,
			"anomaly", result.Anomaly,
			"remote", result.RemoteSize,
			"local", result.LocalSize,
		)
	}

	return result, nil
}

func (s *Syncer) runCycle(ctx context.Context, key string) (*CycleResult, error) {
	remoteSize, err := s.store.Size(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("remote size: %w", err)
	}

	// The watermark is re-derived from the canonical file every cycle, so
	// external truncation or a restart heals itself here.
	local, err := localSize(s.currentPath)
	if err != nil {
		return nil, fmt.Errorf("local size: %w", err)
	}

	if err := s.repairReversed(); err != nil {
		return nil, err
	}

	switch {
	case remoteSize < local:
		return &CycleResult{
			Changed:    false,
			RemoteSize: remoteSize,
			LocalSize:  local,
			Anomaly:    AnomalyRemoteShrank,
		}, nil

	case remoteSize == local:
		return &CycleResult{
			Changed:    false,
			RemoteSize: remoteSize,
			LocalSize:  local,
		}, nil
	}

	want := remoteSize - local
	chunk, err := s.store.ReadRange(ctx, key, local, remoteSize-1)
	if err != nil {
		return nil, fmt.Errorf("fetch [%d, %d]: %w", local, remoteSize-1, err)
	}
	if len(chunk) == 0 {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrEmptyDownload, local, remoteSize-1)
	}
	if int64(len(chunk)) != want {
		// some stores round or recompress ranges; carry on with what we got
		slog.Warn("short range read", "key", key, "want", want, "got", len(chunk))
	}

	// Compute the merged reversed content before touching either file, so a
	// failure here leaves both untouched.
	block, _ := reverseChunk(chunk)
	existing, err := readFileOrEmpty(s.reversedPath)
	if err != nil {
		return nil, err
	}
	merged := joinReversed(block, existing)

	// Record the length the reversed file is about to have before writing
	// anything. A crash between here and the reversed rewrite leaves the
	// recorded length ahead of the file; the next cycle's repair pass sees
	// the mismatch and rebuilds from the canonical mirror.
	if s.journal != nil {
		if err := s.journal.SetReversedSize(int64(len(merged))); err != nil {
			return nil, err
		}
	}

	if err := appendChunk(s.currentPath, chunk); err != nil {
		return nil, err
	}
	if err := writeFileAtomic(s.reversedPath, merged); err != nil {
		return nil, err
	}

	return &CycleResult{
		Changed:    true,
		BytesMoved: int64(len(chunk)),
		RemoteSize: remoteSize,
		LocalSize:  local + int64(len(chunk)),
	}, nil
}

// repairReversed rebuilds the reversed file from the canonical mirror when a
// recorded reversed write never landed. The expected length is journaled
// before either file is written, so a cycle that died between the canonical
// append and the reversed rewrite shows up here as a length mismatch. The
// reversed file's size is not derivable from the canonical one: each chunk
// that arrived mid-line adds a seam delimiter, so the recorded length is the
// only trustworthy signal.
func (s *Syncer) repairReversed() error {
	if s.journal == nil {
		return nil
	}

	expected, ok, err := s.journal.ReversedSize()
	if err != nil {
		return err
	}

	actual, err := localSize(s.reversedPath)
	if err != nil {
		return fmt.Errorf("reversed size: %w", err)
	}

	if !ok {
		// mirror predates the journal state; adopt what is on disk
		return s.journal.SetReversedSize(actual)
	}
	if actual == expected {
		return nil
	}

	slog.Warn("reversed file out of step, rebuilding", "expected", expected, "actual", actual)

	content, err := readFileOrEmpty(s.currentPath)
	if err != nil {
		return err
	}
	rebuilt, _ := reverseChunk([]byte(content))
	if err := writeFileAtomic(s.reversedPath, rebuilt); err != nil {
		return err
	}
	return s.journal.SetReversedSize(int64(len(rebuilt)))
}

func (s *Syncer) recordCycle(key string, result *CycleResult, cycleErr error, took time.Duration, completedAt time.Time) {
	if s.journal == nil {
		return
	}

	rec := &CycleRecord{
		Key:         key,
		Outcome:     OutcomeSynced,
		TookMs:      took.Milliseconds(),
		CompletedAt: completedAt.Format(time.RFC3339Nano),
	}

	switch {
	case cycleErr != nil:
		rec.Outcome = OutcomeFailed
		rec.Error = cycleErr.Error()
	case result.Anomaly != "":
		rec.Outcome = OutcomeAnomaly
		rec.RemoteSize = result.RemoteSize
		rec.LocalSize = result.LocalSize
	case !result.Changed:
		rec.Outcome = OutcomeNoop
		rec.RemoteSize = result.RemoteSize
		rec.LocalSize = result.LocalSize
	default:
		rec.BytesMoved = result.BytesMoved
		rec.RemoteSize = result.RemoteSize
		rec.LocalSize = result.LocalSize
	}

	if err := s.journal.Record(rec); err != nil {
		slog.Error("record cycle", "error", err)
	}
}
