// Package backend implements the journal command surface on top of the
// settings and journal stores.
package backend

import (
	"context"

	"github.com/illien/illien/internal/apperr"
	"github.com/illien/illien/internal/journal"
	"github.com/illien/illien/internal/models"
	"github.com/illien/illien/internal/settings"
)

// SettingsListener is called with the full settings after a successful setter.
type SettingsListener func(models.Settings)

// Option configures a Service.
type Option func(*Service)

// WithSettingsListener registers fn to observe settings changes.
func WithSettingsListener(fn SettingsListener) Option {
	return func(s *Service) {
		s.onSettings = fn
	}
}

// Service exposes the journal and settings operations. It holds no state
// between calls beyond its collaborators.
type Service struct {
	settings   *settings.Store
	journal    journal.Provider
	onSettings SettingsListener
}

// NewService creates a new Service.
func NewService(st *settings.Store, j journal.Provider, opts ...Option) *Service {
	s := &Service{settings: st, journal: j}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveJournal writes content to dir/filename, overwriting any existing entry.
func (s *Service) SaveJournal(_ context.Context, filename, content, dir string) error {
	return s.journal.Save(dir, filename, content)
}

// LoadJournal returns the entry content; found is false when it does not exist.
func (s *Service) LoadJournal(_ context.Context, filename, dir string) (string, bool, error) {
	return s.journal.Load(dir, filename)
}

// DeleteJournal removes an existing entry.
func (s *Service) DeleteJournal(_ context.Context, filename, dir string) error {
	return s.journal.Delete(dir, filename)
}

// ListJournalEntries returns every entry in dir, daily entries first.
func (s *Service) ListJournalEntries(_ context.Context, dir string) ([]models.JournalEntry, error) {
	return s.journal.List(dir)
}

// SaveDaily is SaveJournal addressed by a bare YYYY-MM-DD date.
func (s *Service) SaveDaily(ctx context.Context, date, content, dir string) error {
	return s.SaveJournal(ctx, journal.DailyFilename(date), content, dir)
}

// LoadDaily is LoadJournal addressed by a bare YYYY-MM-DD date.
func (s *Service) LoadDaily(ctx context.Context, date, dir string) (string, bool, error) {
	return s.LoadJournal(ctx, journal.DailyFilename(date), dir)
}

// ListDailyDates returns the dates of daily entries only.
func (s *Service) ListDailyDates(_ context.Context, dir string) ([]string, error) {
	return journal.ListDailyDates(s.journal, dir)
}

// JournalDirectory returns the configured journal directory, or nil.
func (s *Service) JournalDirectory(_ context.Context) *string {
	return s.settings.JournalDirectory()
}

// SetJournalDirectory stores the journal directory.
func (s *Service) SetJournalDirectory(_ context.Context, dir string) error {
	st, err := s.settings.SetJournalDirectory(dir)
	if err != nil {
		return err
	}
	s.notify(st)
	return nil
}

// DarkMode returns the dark-mode preference, or nil.
func (s *Service) DarkMode(_ context.Context) *bool {
	return s.settings.DarkMode()
}

// SetDarkMode stores the dark-mode preference.
func (s *Service) SetDarkMode(_ context.Context, on bool) error {
	st, err := s.settings.SetDarkMode(on)
	if err != nil {
		return err
	}
	s.notify(st)
	return nil
}

// ResolveDirectory returns dir, or the configured journal directory when dir
// is empty.
func (s *Service) ResolveDirectory(ctx context.Context, dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if d := s.JournalDirectory(ctx); d != nil && *d != "" {
		return *d, nil
	}
	return "", apperr.ErrNoDirectory
}

func (s *Service) notify(st models.Settings) {
	if s.onSettings != nil {
		s.onSettings(st)
	}
}
