package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/illien/illien/internal/apperr"
	"github.com/illien/illien/internal/backend"
	"github.com/illien/illien/internal/journal"
)

const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *backend.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *backend.Service) *Handler {
	return &Handler{svc: svc}
}

// urlParam returns a decoded path parameter. chi matches on r.URL.RawPath
// when it is set, leaving the value encoded; otherwise the value comes from
// the already decoded r.URL.Path and must not be decoded again.
func urlParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return raw
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// directory resolves the ?dir= query parameter against the configured
// journal directory. It writes a 400 and returns false when neither is set.
func (h *Handler) directory(w http.ResponseWriter, r *http.Request) (string, bool) {
	dir, err := h.svc.ResolveDirectory(r.Context(), r.URL.Query().Get("dir"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return "", false
	}
	return dir, true
}

// writeError maps service errors onto status codes. The message is passed
// through so the UI can show the cause.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidName), errors.Is(err, apperr.ErrNoDirectory):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
	}
}

// decodeContent reads a SaveEntryRequest. Empty content is valid; a missing
// field is not.
func decodeContent(w http.ResponseWriter, r *http.Request) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return "", false
	}
	if req.Content == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return "", false
	}
	return *req.Content, true
}

// ListEntries handles GET /api/journal.
//
//	@Summary		List journal entries, daily entries first
//	@Tags			journal
//	@Produce		json
//	@Param			dir		query		string	false	"Journal directory (defaults to the configured one)"
//	@Param			view	query		string	false	"Listing view"	Enums(daily)
//	@Success		200		{object}	EntryListResponse
//	@Failure		400		{object}	errResponse
//	@Failure		500		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/journal [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("view") == "daily" {
		dates, err := h.svc.ListDailyDates(r.Context(), dir)
		if err != nil {
			writeError(w, "list daily dates", err)
			return
		}
		writeJSON(w, http.StatusOK, DailyDatesResponse{Dates: dates})
		return
	}
	entries, err := h.svc.ListJournalEntries(r.Context(), dir)
	if err != nil {
		writeError(w, "list entries", err)
		return
	}
	writeJSON(w, http.StatusOK, EntryListResponse{Entries: entries})
}

// LoadEntry handles GET /api/journal/{filename}.
//
//	@Summary		Load a journal entry; content is null when it does not exist
//	@Tags			journal
//	@Produce		json
//	@Param			filename	path		string	true	"Entry file name"
//	@Param			dir			query		string	false	"Journal directory"
//	@Success		200			{object}	EntryResponse
//	@Failure		400			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/journal/{filename} [get]
func (h *Handler) LoadEntry(w http.ResponseWriter, r *http.Request) {
	h.load(w, r, urlParam(r, "filename"), false)
}

// LoadDaily handles GET /api/daily/{date}.
//
//	@Summary		Load the daily entry for a YYYY-MM-DD date
//	@Tags			daily
//	@Produce		json
//	@Param			date	path		string	true	"Date"
//	@Param			dir		query		string	false	"Journal directory"
//	@Success		200		{object}	EntryResponse
//	@Security		BearerAuth
//	@Router			/daily/{date} [get]
func (h *Handler) LoadDaily(w http.ResponseWriter, r *http.Request) {
	h.load(w, r, urlParam(r, "date"), true)
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request, id string, byDate bool) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}
	var (
		content string
		found   bool
		err     error
	)
	filename := id
	if byDate {
		content, found, err = h.svc.LoadDaily(r.Context(), id, dir)
		filename = journal.DailyFilename(id)
	} else {
		content, found, err = h.svc.LoadJournal(r.Context(), id, dir)
	}
	if err != nil {
		writeError(w, "load entry", err)
		return
	}
	resp := EntryResponse{Filename: filename}
	if found {
		resp.Content = &content
	}
	writeJSON(w, http.StatusOK, resp)
}

// SaveEntry handles PUT /api/journal/{filename}.
//
//	@Summary		Create or overwrite a journal entry
//	@Tags			journal
//	@Accept			json
//	@Param			filename	path	string				true	"Entry file name"
//	@Param			dir			query	string				false	"Journal directory"
//	@Param			body		body	SaveEntryRequest	true	"Entry content"
//	@Success		204			"Entry saved"
//	@Failure		400			{object}	errResponse
//	@Failure		500			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/journal/{filename} [put]
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, urlParam(r, "filename"), false)
}

// SaveDaily handles PUT /api/daily/{date}.
//
//	@Summary		Create or overwrite the daily entry for a date
//	@Tags			daily
//	@Accept			json
//	@Param			date	path	string				true	"Date"
//	@Param			dir		query	string				false	"Journal directory"
//	@Param			body	body	SaveEntryRequest	true	"Entry content"
//	@Success		204		"Entry saved"
//	@Security		BearerAuth
//	@Router			/daily/{date} [put]
func (h *Handler) SaveDaily(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, urlParam(r, "date"), true)
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, id string, byDate bool) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}
	content, ok := decodeContent(w, r)
	if !ok {
		return
	}
	var err error
	if byDate {
		err = h.svc.SaveDaily(r.Context(), id, content, dir)
	} else {
		err = h.svc.SaveJournal(r.Context(), id, content, dir)
	}
	if err != nil {
		writeError(w, "save entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteEntry handles DELETE /api/journal/{filename}.
//
//	@Summary		Delete an existing journal entry
//	@Tags			journal
//	@Param			filename	path	string	true	"Entry file name"
//	@Param			dir			query	string	false	"Journal directory"
//	@Success		204			"Entry deleted"
//	@Failure		404			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/journal/{filename} [delete]
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	dir, ok := h.directory(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteJournal(r.Context(), urlParam(r, "filename"), dir); err != nil {
		writeError(w, "delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetJournalDirectory handles GET /api/settings/journal-directory.
//
//	@Summary		Get the configured journal directory (null when unset)
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	JournalDirectoryBody
//	@Security		BearerAuth
//	@Router			/settings/journal-directory [get]
func (h *Handler) GetJournalDirectory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, JournalDirectoryBody{JournalDirectory: h.svc.JournalDirectory(r.Context())})
}

// SetJournalDirectory handles PUT /api/settings/journal-directory.
//
//	@Summary		Set the journal directory
//	@Tags			settings
//	@Accept			json
//	@Param			body	body	JournalDirectoryBody	true	"New directory"
//	@Success		204		"Saved"
//	@Failure		400		{object}	errResponse
//	@Failure		500		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/settings/journal-directory [put]
func (h *Handler) SetJournalDirectory(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req JournalDirectoryBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.JournalDirectory == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("journal_directory is required"))
		return
	}
	if err := h.svc.SetJournalDirectory(r.Context(), *req.JournalDirectory); err != nil {
		writeError(w, "set journal directory", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDarkMode handles GET /api/settings/dark-mode.
//
//	@Summary		Get the dark-mode preference (null when unset)
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	DarkModeBody
//	@Security		BearerAuth
//	@Router			/settings/dark-mode [get]
func (h *Handler) GetDarkMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, DarkModeBody{DarkMode: h.svc.DarkMode(r.Context())})
}

// SetDarkMode handles PUT /api/settings/dark-mode.
//
//	@Summary		Set the dark-mode preference
//	@Tags			settings
//	@Accept			json
//	@Param			body	body	DarkModeBody	true	"New preference"
//	@Success		204		"Saved"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/settings/dark-mode [put]
func (h *Handler) SetDarkMode(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req DarkModeBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DarkMode == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("dark_mode is required"))
		return
	}
	if err := h.svc.SetDarkMode(r.Context(), *req.DarkMode); err != nil {
		writeError(w, "set dark mode", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
