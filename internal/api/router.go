package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/illien/illien/internal/backend"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *backend.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Journal entries by file name.
	r.Get("/journal", h.ListEntries)
	r.Get("/journal/{filename}", h.LoadEntry)
	r.Put("/journal/{filename}", h.SaveEntry)
	r.Delete("/journal/{filename}", h.DeleteEntry)

	// Daily entries by bare date.
	r.Get("/daily/{date}", h.LoadDaily)
	r.Put("/daily/{date}", h.SaveDaily)

	// Settings.
	r.Get("/settings/journal-directory", h.GetJournalDirectory)
	r.Put("/settings/journal-directory", h.SetJournalDirectory)
	r.Get("/settings/dark-mode", h.GetDarkMode)
	r.Put("/settings/dark-mode", h.SetDarkMode)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
