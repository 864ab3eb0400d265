package journal

import (
	"cmp"
	"slices"
	"strings"

	"github.com/illien/illien/internal/models"
)

// Ext is the suffix every journal file carries.
const Ext = ".md"

const dailyNameLen = len("2006-01-02.md")

// IsDaily reports whether name has the YYYY-MM-DD.md shape. Digits are not
// checked for calendar validity.
func IsDaily(name string) bool {
	if len(name) != dailyNameLen || !strings.HasSuffix(name, Ext) {
		return false
	}
	if name[4] != '-' || name[7] != '-' {
		return false
	}
	return allDigits(name[0:4]) && allDigits(name[5:7]) && allDigits(name[8:10])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Classify derives entry metadata from a file name. ok is false for names
// without the .md suffix.
func Classify(name string) (entry models.JournalEntry, ok bool) {
	if !strings.HasSuffix(name, Ext) {
		return models.JournalEntry{}, false
	}
	if IsDaily(name) {
		date := name[:10]
		return models.JournalEntry{
			Filename:  name,
			EntryType: models.EntryDaily,
			Title:     date,
			Date:      &date,
		}, true
	}
	return models.JournalEntry{
		Filename:  name,
		EntryType: models.EntryTitled,
		Title:     strings.TrimSuffix(name, Ext),
	}, true
}

// SortEntries orders daily entries newest first, then titled entries by
// case-insensitive title. Equal keys keep their input order.
func SortEntries(entries []models.JournalEntry) {
	slices.SortStableFunc(entries, compareEntries)
}

func compareEntries(a, b models.JournalEntry) int {
	aDaily := a.EntryType == models.EntryDaily
	bDaily := b.EntryType == models.EntryDaily
	switch {
	case aDaily && !bDaily:
		return -1
	case !aDaily && bDaily:
		return 1
	case aDaily:
		// YYYY-MM-DD sorts lexicographically in date order.
		return cmp.Compare(deref(b.Date), deref(a.Date))
	default:
		return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// DailyFilename returns the file name for a bare YYYY-MM-DD date.
func DailyFilename(date string) string {
	return date + Ext
}
