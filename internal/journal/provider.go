// Package journal stores Markdown journal entries as flat files inside a
// caller-supplied directory.
package journal

import "github.com/illien/illien/internal/models"

// Provider is the interface for journal file operations. Every call names
// the directory it works in; nothing is remembered between calls.
type Provider interface {
	// Save writes content to dir/filename, replacing any existing file.
	Save(dir, filename, content string) error
	// Load returns the content of dir/filename. found is false when the file does not exist.
	Load(dir, filename string) (content string, found bool, err error)
	// Delete removes dir/filename. It fails with apperr.ErrNotFound when the file is absent.
	Delete(dir, filename string) error
	// List returns classified metadata for every .md file directly inside dir.
	List(dir string) ([]models.JournalEntry, error)
}
