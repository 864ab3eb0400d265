package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolvePathCreatesDir(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	p := s.ResolvePath()
	if p != filepath.Join(root, AppDirName, FileName) {
		t.Errorf("path = %q", p)
	}
	info, err := os.Stat(filepath.Dir(p))
	if err != nil || !info.IsDir() {
		t.Fatalf("settings dir not created: %v", err)
	}
	// Second resolve is idempotent.
	if again := s.ResolvePath(); again != p {
		t.Errorf("path changed: %q", again)
	}
}

func TestFreshStoreIsUnset(t *testing.T) {
	s := NewStore(t.TempDir())
	if d := s.DarkMode(); d != nil {
		t.Errorf("dark mode = %v, want nil", *d)
	}
	if d := s.JournalDirectory(); d != nil {
		t.Errorf("journal directory = %q, want nil", *d)
	}
}

func TestSetDarkMode(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.SetDarkMode(true); err != nil {
		t.Fatalf("SetDarkMode: %v", err)
	}
	got := s.DarkMode()
	if got == nil || !*got {
		t.Fatalf("dark mode = %v, want true", got)
	}
	// Other field stays unset.
	if d := s.JournalDirectory(); d != nil {
		t.Errorf("journal directory = %q, want nil", *d)
	}

	if _, err := s.SetDarkMode(false); err != nil {
		t.Fatalf("SetDarkMode: %v", err)
	}
	got = s.DarkMode()
	if got == nil || *got {
		t.Errorf("dark mode = %v, want explicit false", got)
	}
}

func TestSetJournalDirectoryKeepsOtherFields(t *testing.T) {
	s := NewStore(t.TempDir())
	_, _ = s.SetDarkMode(true)
	if _, err := s.SetJournalDirectory("/does/not/exist"); err != nil {
		t.Fatalf("SetJournalDirectory: %v", err)
	}
	dir := s.JournalDirectory()
	if dir == nil || *dir != "/does/not/exist" {
		t.Errorf("journal directory = %v", dir)
	}
	if d := s.DarkMode(); d == nil || !*d {
		t.Errorf("dark mode lost after directory update: %v", d)
	}
}

func TestEmptyDirectoryIsDistinctFromUnset(t *testing.T) {
	s := NewStore(t.TempDir())
	_, _ = s.SetJournalDirectory("")
	dir := s.JournalDirectory()
	if dir == nil {
		t.Fatal("explicit empty directory read back as unset")
	}
	if *dir != "" {
		t.Errorf("journal directory = %q", *dir)
	}
}

func TestInvalidJSONTreatedAsMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := os.WriteFile(s.ResolvePath(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if d := s.DarkMode(); d != nil {
		t.Errorf("dark mode = %v, want nil", *d)
	}
	if d := s.JournalDirectory(); d != nil {
		t.Errorf("journal directory = %q, want nil", *d)
	}
}

func TestWrongShapeTreatedAsMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	body := `{"journal_directory": "/j", "dark_mode": "yes"}`
	if err := os.WriteFile(s.ResolvePath(), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	st := s.Load()
	if st.JournalDirectory != nil || st.DarkMode != nil {
		t.Errorf("settings = %+v, want defaults", st)
	}
}

func TestKeysMatchExactly(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantDir  string
		wantDark *bool
	}{
		{"upper case ignored", `{"DARK_MODE": true, "Journal_Directory": "/j"}`, "", nil},
		{"unknown keys ignored", `{"dark_mode": false, "theme": "solarized"}`, "", new(bool)},
		{"explicit null is unset", `{"journal_directory": null, "dark_mode": null}`, "", nil},
		{"exact keys", `{"journal_directory": "/j", "dark_mode": false}`, "/j", new(bool)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(t.TempDir())
			if err := os.WriteFile(s.ResolvePath(), []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			st := s.Load()
			switch {
			case tt.wantDir == "" && st.JournalDirectory != nil:
				t.Errorf("journal directory = %q, want nil", *st.JournalDirectory)
			case tt.wantDir != "" && (st.JournalDirectory == nil || *st.JournalDirectory != tt.wantDir):
				t.Errorf("journal directory = %v, want %q", st.JournalDirectory, tt.wantDir)
			}
			switch {
			case tt.wantDark == nil && st.DarkMode != nil:
				t.Errorf("dark mode = %v, want nil", *st.DarkMode)
			case tt.wantDark != nil && (st.DarkMode == nil || *st.DarkMode != *tt.wantDark):
				t.Errorf("dark mode = %v, want %v", st.DarkMode, *tt.wantDark)
			}
		})
	}
}

func TestSaveWritesPrettyJSONWithNulls(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.SetDarkMode(true); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(s.ResolvePath())
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "\n  \"dark_mode\": true") {
		t.Errorf("not pretty-printed: %s", text)
	}
	if !strings.Contains(text, `"journal_directory": null`) {
		t.Errorf("unset field not written as null: %s", text)
	}
}

func TestSaveFailsWhenPathIsDirectory(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := os.MkdirAll(s.ResolvePath(), 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := s.SetDarkMode(true)
	if err == nil {
		t.Fatal("expected write error")
	}
	if !strings.Contains(err.Error(), "settings: write") {
		t.Errorf("unexpected error: %v", err)
	}
}
