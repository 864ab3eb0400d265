// Package models defines the domain types for illien.
package models

// EntryType classifies a journal file by its name.
type EntryType string

const (
	EntryDaily  EntryType = "daily"
	EntryTitled EntryType = "titled"
)

// JournalEntry is the metadata derived from one Markdown file during a directory scan.
type JournalEntry struct {
	Filename  string    `json:"filename"`
	EntryType EntryType `json:"entry_type"`
	Title     string    `json:"title"`
	Date      *string   `json:"date"`
}

// Settings is the persisted user preference record. A nil field was never set.
type Settings struct {
	JournalDirectory *string `json:"journal_directory"`
	DarkMode         *bool   `json:"dark_mode"`
}
