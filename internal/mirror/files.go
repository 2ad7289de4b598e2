package mirror

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/logmirror/logmirror/internal/utils"
)

// localSize returns the byte length of the file at path, or 0 when the file
// does not exist. Absence is the expected state on first run, not an error.
func localSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("stat %q: %w", path, err)
	}
	return info.Size(), nil
}

// appendChunk appends b to the file at path, creating parent directories and
// the file itself as needed.
func appendChunk(path string, b []byte) error {
	if err := utils.EnsureParent(path); err != nil {
		return fmt.Errorf("%w: ensure parent of %q: %v", ErrStorageWrite, path, err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %q: %v", ErrStorageWrite, path, err)
	}

	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("%w: append %q: %v", ErrStorageWrite, path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("%w: sync %q: %v", ErrStorageWrite, path, err)
	}
	return f.Close()
}

// readFileOrEmpty returns the file's content, or "" when it does not exist.
func readFileOrEmpty(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %q: %w", path, err)
	}
	return string(data), nil
}

// writeFileAtomic rewrites path via a sibling temp file and rename, so a
// crash mid-write never leaves a truncated reversed file behind.
func writeFileAtomic(path string, content string) error {
	if err := utils.EnsureParent(path); err != nil {
		return fmt.Errorf("%w: ensure parent of %q: %v", ErrStorageWrite, path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: temp for %q: %v", ErrStorageWrite, path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %q: %v", ErrStorageWrite, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %q: %v", ErrStorageWrite, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %q: %v", ErrStorageWrite, tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename %q: %v", ErrStorageWrite, path, err)
	}
	return nil
}
