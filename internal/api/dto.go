package api

import "github.com/illien/illien/internal/models"

// JournalEntry is a listed entry (aliased from the domain layer).
type JournalEntry = models.JournalEntry

// EntryListResponse wraps the full listing.
type EntryListResponse struct {
	Entries []JournalEntry `json:"entries" validate:"required"`
}

// DailyDatesResponse wraps the daily-only listing.
type DailyDatesResponse struct {
	Dates []string `json:"dates" example:"2024-03-05" validate:"required"`
}

// EntryResponse is returned by a load. Content is null when the entry does not exist.
type EntryResponse struct {
	Filename string  `json:"filename" example:"2024-03-05.md" validate:"required"`
	Content  *string `json:"content" example:"# Tuesday"`
}

// SaveEntryRequest is the request body for saving an entry.
type SaveEntryRequest struct {
	Content *string `json:"content" example:"# Tuesday\nWrote some Go." validate:"required"`
}

// JournalDirectoryBody is both the response and request body of the
// journal-directory setting.
type JournalDirectoryBody struct {
	JournalDirectory *string `json:"journal_directory" example:"/home/me/journal"`
}

// DarkModeBody is both the response and request body of the dark-mode setting.
type DarkModeBody struct {
	DarkMode *bool `json:"dark_mode" example:"true"`
}
