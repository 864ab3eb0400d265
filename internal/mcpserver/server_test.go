package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/illien/illien/internal/models"
	"github.com/illien/illien/internal/testutil"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	return New(testutil.TestService(t), "test"), testutil.TestJournal(t)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" helper, so dispatch to the handlers.
	handlers := map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"save_journal":              srv.saveJournal,
		"load_journal":              srv.loadJournal,
		"delete_journal":            srv.deleteJournal,
		"list_journal_entries":      srv.listJournalEntries,
		"get_journal_directory":     srv.getJournalDirectory,
		"set_journal_directory":     srv.setJournalDirectory,
		"get_dark_mode":             srv.getDarkMode,
		"set_dark_mode":             srv.setDarkMode,
		"get_entry_naming_contract": srv.getEntryNamingContract,
	}
	h, ok := handlers[name]
	if !ok {
		t.Fatalf("unknown tool: %s", name)
	}
	result, err := h(ctx, req)
	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSaveAndLoadJournal(t *testing.T) {
	srv, dir := testServer(t)

	r := callTool(t, srv, "save_journal", map[string]any{
		"filename":  "2024-03-05.md",
		"content":   "# Tuesday",
		"directory": dir,
	})
	if r.IsError || resultText(r) != "saved: 2024-03-05.md" {
		t.Fatalf("save result = %q", resultText(r))
	}

	r = callTool(t, srv, "load_journal", map[string]any{"filename": "2024-03-05.md", "directory": dir})
	if resultText(r) != "# Tuesday" {
		t.Errorf("load result = %q", resultText(r))
	}
}

func TestLoadMissingIsNotAnError(t *testing.T) {
	srv, dir := testServer(t)
	r := callTool(t, srv, "load_journal", map[string]any{"filename": "ghost.md", "directory": dir})
	if r.IsError {
		t.Errorf("missing entry should not be a tool error: %q", resultText(r))
	}
	if !strings.HasPrefix(resultText(r), "no entry") {
		t.Errorf("load result = %q", resultText(r))
	}
}

func TestDeleteMissingIsAnError(t *testing.T) {
	srv, dir := testServer(t)
	r := callTool(t, srv, "delete_journal", map[string]any{"filename": "ghost.md", "directory": dir})
	if !r.IsError {
		t.Error("expected error deleting missing entry")
	}
}

func TestListJournalEntries(t *testing.T) {
	srv, dir := testServer(t)
	for _, name := range []string{"b.md", "2024-01-01.md", "a.md"} {
		_ = os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644)
	}
	r := callTool(t, srv, "list_journal_entries", map[string]any{"directory": dir})
	if r.IsError {
		t.Fatalf("list error: %s", resultText(r))
	}
	var entries []models.JournalEntry
	if err := json.Unmarshal([]byte(resultText(r)), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(entries) != 3 || entries[0].Filename != "2024-01-01.md" || entries[1].Filename != "a.md" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestListJournalEntries_DailyOnly(t *testing.T) {
	srv, dir := testServer(t)
	for _, name := range []string{"notes.md", "2024-01-01.md", "2024-02-01.md"} {
		_ = os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644)
	}
	r := callTool(t, srv, "list_journal_entries", map[string]any{"directory": dir, "daily_only": true})
	var dates []string
	if err := json.Unmarshal([]byte(resultText(r)), &dates); err != nil {
		t.Fatalf("unmarshal %q: %v", resultText(r), err)
	}
	if len(dates) != 2 || dates[0] != "2024-02-01" || dates[1] != "2024-01-01" {
		t.Errorf("dates = %v", dates)
	}
}

func TestDirectoryRequiredWhenUnset(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "list_journal_entries", map[string]any{})
	if !r.IsError {
		t.Error("expected error without any journal directory")
	}
}

func TestSettingsTools(t *testing.T) {
	srv, dir := testServer(t)

	r := callTool(t, srv, "get_dark_mode", map[string]any{})
	if resultText(r) != "null" {
		t.Errorf("fresh dark mode = %q, want null", resultText(r))
	}
	_ = callTool(t, srv, "set_dark_mode", map[string]any{"dark_mode": true})
	r = callTool(t, srv, "get_dark_mode", map[string]any{})
	if resultText(r) != "true" {
		t.Errorf("dark mode = %q, want true", resultText(r))
	}

	_ = callTool(t, srv, "set_journal_directory", map[string]any{"directory": dir})
	r = callTool(t, srv, "get_journal_directory", map[string]any{})
	var got string
	if err := json.Unmarshal([]byte(resultText(r)), &got); err != nil || got != dir {
		t.Errorf("journal directory = %q (%v)", resultText(r), err)
	}

	// The configured directory is used when the argument is omitted.
	r = callTool(t, srv, "save_journal", map[string]any{"filename": "x.md", "content": "x"})
	if r.IsError {
		t.Fatalf("save with configured dir: %s", resultText(r))
	}
	if _, err := os.Stat(filepath.Join(dir, "x.md")); err != nil {
		t.Errorf("entry not written to configured dir: %v", err)
	}
}

func TestGetEntryNamingContract(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_entry_naming_contract", map[string]any{})
	if !strings.Contains(resultText(r), "YYYY-MM-DD.md") {
		t.Error("contract missing daily naming rule")
	}
}
