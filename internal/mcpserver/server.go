// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the journal operations to LLM clients over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/illien/illien/internal/backend"
)

const contractURI = "illien://entry-naming"

// Server wraps the MCP server with the journal tools.
type Server struct {
	mcp *server.MCPServer
	svc *backend.Service
}

// New creates a new MCP server with all tools registered.
func New(svc *backend.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"illien",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	dirArg := mcp.WithString("directory",
		mcp.Description("Journal directory; defaults to the configured journal directory"))

	s.mcp.AddTool(mcp.NewTool("save_journal",
		mcp.WithDescription("Write a journal entry, overwriting any existing file of the same name. "+
			"Read the naming contract first via get_entry_naming_contract."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Entry file name, e.g. 2024-03-05.md or Ideas.md")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content")),
		dirArg,
	), s.saveJournal)

	s.mcp.AddTool(mcp.NewTool("load_journal",
		mcp.WithDescription("Read a journal entry. Reports when the entry does not exist."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Entry file name")),
		dirArg,
	), s.loadJournal)

	s.mcp.AddTool(mcp.NewTool("delete_journal",
		mcp.WithDescription("Delete an existing journal entry."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Entry file name")),
		dirArg,
	), s.deleteJournal)

	s.mcp.AddTool(mcp.NewTool("list_journal_entries",
		mcp.WithDescription("List journal entries as JSON: daily entries newest first, then titled entries by title."),
		dirArg,
		mcp.WithBoolean("daily_only", mcp.Description("Return only the YYYY-MM-DD dates of daily entries")),
	), s.listJournalEntries)

	s.mcp.AddTool(mcp.NewTool("get_journal_directory",
		mcp.WithDescription("Return the configured journal directory, or null."),
	), s.getJournalDirectory)

	s.mcp.AddTool(mcp.NewTool("set_journal_directory",
		mcp.WithDescription("Set the journal directory. The path is not validated."),
		mcp.WithString("directory", mcp.Required(), mcp.Description("Absolute path to the journal directory")),
	), s.setJournalDirectory)

	s.mcp.AddTool(mcp.NewTool("get_dark_mode",
		mcp.WithDescription("Return the dark-mode preference, or null."),
	), s.getDarkMode)

	s.mcp.AddTool(mcp.NewTool("set_dark_mode",
		mcp.WithDescription("Set the dark-mode preference."),
		mcp.WithBoolean("dark_mode", mcp.Required(), mcp.Description("true for dark mode")),
	), s.setDarkMode)

	s.mcp.AddTool(mcp.NewTool("get_entry_naming_contract",
		mcp.WithDescription("Returns how journal files are named and classified."),
	), s.getEntryNamingContract)

	s.mcp.AddResource(
		mcp.NewResource(contractURI, "Entry Naming Contract",
			mcp.WithResourceDescription("How daily and titled journal files are named."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readContractResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) directory(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	return s.svc.ResolveDirectory(ctx, req.GetString("directory", ""))
}

func jsonResult(v any) *mcp.CallToolResult {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(string(out))
}

func (s *Server) saveJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dir, err := s.directory(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.SaveJournal(ctx, filename, content, dir); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s", filename)), nil
}

func (s *Server) loadJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dir, err := s.directory(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, found, err := s.svc.LoadJournal(ctx, filename, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !found {
		return mcp.NewToolResultText(fmt.Sprintf("no entry: %s", filename)), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) deleteJournal(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	dir, err := s.directory(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteJournal(ctx, filename, dir); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", filename)), nil
}

func (s *Server) listJournalEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := s.directory(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if req.GetBool("daily_only", false) {
		dates, err := s.svc.ListDailyDates(ctx, dir)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(dates), nil
	}
	entries, err := s.svc.ListJournalEntries(ctx, dir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(entries), nil
}

func (s *Server) getJournalDirectory(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.JournalDirectory(ctx)), nil
}

func (s *Server) setJournalDirectory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := req.RequireString("directory")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.SetJournalDirectory(ctx, dir); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("journal directory: %s", dir)), nil
}

func (s *Server) getDarkMode(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.svc.DarkMode(ctx)), nil
}

func (s *Server) setDarkMode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	on, err := req.RequireBool("dark_mode")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.SetDarkMode(ctx, on); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("dark mode: %t", on)), nil
}

func (s *Server) getEntryNamingContract(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EntryNamingContract), nil
}

func (s *Server) readContractResource(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      contractURI,
			MIMEType: "text/markdown",
			Text:     EntryNamingContract,
		},
	}, nil
}
