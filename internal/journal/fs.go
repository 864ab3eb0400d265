package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/illien/illien/internal/apperr"
	"github.com/illien/illien/internal/models"
)

const filePerm = 0o644

// FS implements Provider backed by the local file system.
type FS struct{}

// NewFS creates a new FS provider.
func NewFS() *FS {
	return &FS{}
}

// entryPath joins a plain file name onto dir. Names that carry a path
// separator or point at the directory itself are rejected.
func entryPath(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("journal: %q: %w", name, apperr.ErrInvalidName)
	}
	return filepath.Join(dir, name), nil
}

// Save writes content through a temp file in dir and renames it into place.
// The directory is not created.
func (f *FS) Save(dir, filename, content string) error {
	abs, err := entryPath(dir, filename)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(abs, []byte(content)); err != nil {
		return fmt.Errorf("journal: save %s: %w", filename, err)
	}
	return nil
}

// Load returns the file content. A missing file is not an error.
func (f *FS) Load(dir, filename string) (string, bool, error) {
	abs, err := entryPath(dir, filename)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("journal: load %s: %w", filename, err)
	}
	return string(data), true, nil
}

// Delete removes a journal file. Unlike Load, absence is an error. The
// existence check follows symlinks, so a dangling link counts as absent.
func (f *FS) Delete(dir, filename string) error {
	abs, err := entryPath(dir, filename)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("journal: delete %s: %w", filename, apperr.ErrNotFound)
		}
		return fmt.Errorf("journal: delete %s: %w", filename, err)
	}
	if info.IsDir() {
		return fmt.Errorf("journal: delete %s: is a directory", filename)
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("journal: delete %s: %w", filename, err)
	}
	return nil
}

// List scans dir without descending into subdirectories.
func (f *FS) List(dir string) ([]models.JournalEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("journal: read directory: %w", err)
	}
	out := make([]models.JournalEntry, 0, len(dirEntries))
	for _, d := range dirEntries {
		if d.IsDir() {
			continue
		}
		entry, ok := Classify(d.Name())
		if !ok {
			continue
		}
		out = append(out, entry)
	}
	SortEntries(out)
	return out, nil
}

// ListDailyDates returns the dates of daily entries only, newest first.
// Titled entries are dropped.
func ListDailyDates(p Provider, dir string) ([]string, error) {
	entries, err := p.List(dir)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.EntryType == models.EntryDaily && e.Date != nil {
			dates = append(dates, *e.Date)
		}
	}
	return dates, nil
}

// writeFileAtomic writes content: tmp file → fsync → rename.
func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".illien-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	success = true
	return nil
}
