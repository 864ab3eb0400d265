package internal

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if got := cfg.App.HTTP.Address(); got != "127.0.0.1:7420" {
		t.Errorf("address = %q", got)
	}
}

func TestHTTPConfig_InvalidPort(t *testing.T) {
	cfg := HTTPConfig{Host: "127.0.0.1", Port: 70000}
	if err := cfg.Validate(); err == nil {
		t.Error("port out of range should fail")
	}
}

func TestHTTPConfig_IPv6Address(t *testing.T) {
	cfg := HTTPConfig{Host: "::1", Port: 7420}
	if got := cfg.Address(); got != "[::1]:7420" {
		t.Errorf("address = %q", got)
	}
}

func TestWatchConfig_NegativeThrottle(t *testing.T) {
	cfg := WatchConfig{Enabled: true, Throttle: -time.Second}
	if err := cfg.Validate(); err == nil {
		t.Error("negative throttle should fail")
	}
}

func TestLogFileConfig_NegativeBackups(t *testing.T) {
	cfg := LogFileConfig{Path: "illien.log", MaxBackups: -1}
	if err := cfg.Validate(); err == nil {
		t.Error("negative backups should fail")
	}
}

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
