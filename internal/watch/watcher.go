// Package watch reports changes to the journal directory so connected UIs
// can refresh their entry list.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/illien/illien/internal/checksum"
	"github.com/illien/illien/internal/journal"
	"github.com/illien/illien/internal/models"
)

// EventCallback is called for every journal file change.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind, filename string, entryType models.EntryType)

// Run watches dir (non-recursively) until ctx is cancelled. A path received
// on retarget replaces the watched directory. An empty or missing dir is
// logged and the watcher waits for a retarget.
//
// Entries present when a directory is first watched count as known. A
// create on a known name (a save renamed over the old file) is reported as
// "updated", and changes that leave a known file's contents unchanged are
// not reported at all.
func Run(ctx context.Context, dir string, retarget <-chan string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	current := ""
	digests := make(map[string]string)
	switchTo := func(next string) {
		if next == current {
			return
		}
		if current != "" {
			_ = w.Remove(current)
			current = ""
			digests = map[string]string{}
		}
		if next == "" {
			return
		}
		if addErr := w.Add(next); addErr != nil {
			logger.Warn("watcher: add dir failed",
				slog.String("dir", next),
				slog.String("error", addErr.Error()))
			return
		}
		current = next
		digests = seedDigests(next)
		logger.Info("watcher: watching",
			slog.String("dir", next),
			slog.Int("entries", len(digests)))
	}
	switchTo(dir)

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case next, ok := <-retarget:
			if !ok {
				retarget = nil
				continue
			}
			switchTo(next)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if current == "" || filepath.Dir(ev.Name) != filepath.Clean(current) {
				continue
			}
			name := filepath.Base(ev.Name)
			entry, isEntry := journal.Classify(name)
			if !isEntry {
				continue
			}

			var kind string
			switch {
			case ev.Op&fsnotify.Create != 0:
				kind = "created"
			case ev.Op&fsnotify.Write != 0:
				kind = "updated"
			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// Rename fires on the old name; the new name arrives as Create.
				kind = "deleted"
			default:
				continue
			}
			if kind == "deleted" {
				delete(digests, name)
			} else {
				prev, known := digests[name]
				sum, sumErr := checksum.File(ev.Name)
				if known && sumErr == nil && prev == sum {
					continue
				}
				if known {
					kind = "updated"
				}
				// An unreadable file stays known with an empty digest.
				digests[name] = sum
			}
			logger.Debug("watcher: change", slog.String("filename", name), slog.String("op", kind))
			if cb != nil {
				cb(kind, name, entry.EntryType)
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// seedDigests hashes the entries already in dir. Unreadable files are known
// with an empty digest.
func seedDigests(dir string) map[string]string {
	digests := make(map[string]string)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return digests
	}
	for _, d := range dirEntries {
		if d.IsDir() {
			continue
		}
		if _, ok := journal.Classify(d.Name()); !ok {
			continue
		}
		sum, _ := checksum.File(filepath.Join(dir, d.Name()))
		digests[d.Name()] = sum
	}
	return digests
}
