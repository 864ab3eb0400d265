// Package testutil provides shared test helpers for setting up journal
// directories and settings stores.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/illien/illien/internal/backend"
	"github.com/illien/illien/internal/journal"
	"github.com/illien/illien/internal/settings"
)

// TestSettings creates a settings store rooted in a temporary config directory.
func TestSettings(t *testing.T) *settings.Store {
	t.Helper()
	return settings.NewStore(t.TempDir())
}

// TestJournal creates a temporary journal directory seeded with files.
// Each file is written with its own name as content.
func TestJournal(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// TestService wires a Service over a temporary settings store and the
// file-system journal provider.
func TestService(t *testing.T, opts ...backend.Option) *backend.Service {
	t.Helper()
	return backend.NewService(TestSettings(t), journal.NewFS(), opts...)
}
