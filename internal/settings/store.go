// Package settings persists the small user preference record as a JSON file
// under the per-user configuration directory.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/illien/illien/internal/models"
)

const (
	// AppDirName is the subdirectory created under the configuration root.
	AppDirName = "illien"
	// FileName is the settings document inside AppDirName.
	FileName = "settings.json"
)

// Store reads and writes the settings file. It keeps no copy of the settings;
// every call goes to disk.
type Store struct {
	root string
}

// NewStore creates a Store. An empty root selects os.UserConfigDir.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// ResolvePath returns the settings file path and creates its directory.
// Creation errors are ignored; a later write reports them.
func (s *Store) ResolvePath() string {
	root := s.root
	if root == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			root = dir
		} else {
			root = "."
		}
	}
	dir := filepath.Join(root, AppDirName)
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, FileName)
}

// Load returns the stored settings. A missing, unreadable or malformed file
// yields zero Settings.
func (s *Store) Load() models.Settings {
	data, err := os.ReadFile(s.ResolvePath())
	if err != nil {
		return models.Settings{}
	}
	st, err := decode(data)
	if err != nil {
		return models.Settings{}
	}
	return st
}

// decode reads the settings document with exact key matching. A key that
// differs only in case, such as "DARK_MODE", is ignored like any other
// unknown key.
func decode(data []byte) (models.Settings, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return models.Settings{}, err
	}
	var st models.Settings
	if raw, ok := fields["journal_directory"]; ok {
		if err := json.Unmarshal(raw, &st.JournalDirectory); err != nil {
			return models.Settings{}, err
		}
	}
	if raw, ok := fields["dark_mode"]; ok {
		if err := json.Unmarshal(raw, &st.DarkMode); err != nil {
			return models.Settings{}, err
		}
	}
	return st, nil
}

// Save overwrites the settings file with pretty-printed JSON.
func (s *Store) Save(st models.Settings) error {
	path := s.ResolvePath()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: serialize: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("settings: write: %w", err)
	}
	return nil
}

// JournalDirectory returns the configured journal directory, or nil.
func (s *Store) JournalDirectory() *string {
	return s.Load().JournalDirectory
}

// SetJournalDirectory stores dir without checking that it exists.
func (s *Store) SetJournalDirectory(dir string) (models.Settings, error) {
	st := s.Load()
	st.JournalDirectory = &dir
	return st, s.Save(st)
}

// DarkMode returns the dark-mode preference, or nil.
func (s *Store) DarkMode() *bool {
	return s.Load().DarkMode
}

// SetDarkMode stores the dark-mode preference.
func (s *Store) SetDarkMode(on bool) (models.Settings, error) {
	st := s.Load()
	st.DarkMode = &on
	return st, s.Save(st)
}
