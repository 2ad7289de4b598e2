package workspace

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/logmirror/logmirror/internal/utils"
)

const (
	metadataDir  = ".data"
	lockFile     = "logmirror.lock"
	journalFile  = "journal.db"
	currentFile  = "current.log"
	reversedFile = "reversed.log"
)

var (
	ErrWorkspaceLocked = errors.New("mirror directory locked by another process")
)

// Workspace owns the on-disk layout of one mirror: the canonical log, its
// reversed copy, and the metadata directory holding the journal and the
// single-instance lock.
type Workspace struct {
	Root         string
	CurrentPath  string
	ReversedPath string
	MetadataDir  string
	JournalPath  string

	flock *flock.Flock
}

func New(rootDir string) (*Workspace, error) {
	root, err := utils.ResolvePath(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", rootDir, err)
	}

	meta := filepath.Join(root, metadataDir)

	return &Workspace{
		Root:         root,
		CurrentPath:  filepath.Join(root, currentFile),
		ReversedPath: filepath.Join(root, reversedFile),
		MetadataDir:  meta,
		JournalPath:  filepath.Join(meta, journalFile),
		flock:        flock.New(filepath.Join(meta, lockFile)),
	}, nil
}

// Lock claims the workspace for this process. A mirror has exactly one
// owner; a second instance gets ErrWorkspaceLocked.
func (w *Workspace) Lock() error {
	if err := utils.EnsureDir(w.MetadataDir); err != nil {
		return fmt.Errorf("create %q: %w", w.MetadataDir, err)
	}

	locked, err := w.flock.TryLock()
	if err != nil {
		return fmt.Errorf("lock workspace: %w", err)
	}
	if !locked {
		return ErrWorkspaceLocked
	}
	return nil
}

func (w *Workspace) Unlock() error {
	if !w.flock.Locked() {
		return nil
	}
	if err := w.flock.Unlock(); err != nil {
		return fmt.Errorf("unlock workspace: %w", err)
	}
	return nil
}
