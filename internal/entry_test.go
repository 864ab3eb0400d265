package internal

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	cfg := NewDefaultConfig()
	cfg.Settings.ConfigRoot = t.TempDir()
	return cfg
}

func TestHTTPHandler_HealthUnauthenticated(t *testing.T) {
	cfg := testConfig(t)
	cfg.Auth = AuthConfig{Mode: AuthModeToken, Token: "tok"}
	h := NewHTTPHandler(cfg, NewBackend(cfg), nil)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s = %d, want 200", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings/dark-mode", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("api without token = %d, want 401", w.Code)
	}
}

func TestHTTPHandler_APIMounted(t *testing.T) {
	cfg := testConfig(t)
	h := NewHTTPHandler(cfg, NewBackend(cfg), nil)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings/journal-directory", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != "{\"journal_directory\":null}\n" {
		t.Errorf("body = %q", body)
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); !errors.Is(err, errConfigRequired) {
		t.Errorf("err = %v, want errConfigRequired", err)
	}
	if err := RunMCP(context.Background()); !errors.Is(err, errConfigRequired) {
		t.Errorf("err = %v, want errConfigRequired", err)
	}
}
