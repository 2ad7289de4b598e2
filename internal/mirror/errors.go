package mirror

import "errors"

var (
	// ErrCycleInProgress signals that a sync cycle is already running.
	// Expected contention, not a failure; callers should try again later.
	ErrCycleInProgress = errors.New("sync cycle already in progress")

	// ErrEmptyDownload means the remote returned zero bytes for a claimed
	// non-empty range. Fatal to the cycle.
	ErrEmptyDownload = errors.New("empty download for non-empty range")

	// ErrStorageWrite wraps local filesystem write failures.
	ErrStorageWrite = errors.New("storage write failed")
)
