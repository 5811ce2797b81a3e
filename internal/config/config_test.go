// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTAL_SESSION_SECRET", "test-secret-key-32-bytes-long!!!")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/portal.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/portal.db")
	}
	if cfg.ServerHost != "localhost" {
		t.Errorf("ServerHost = %q, want %q", cfg.ServerHost, "localhost")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.DoSeed {
		t.Error("DoSeed should default to false")
	}
	if cfg.EnrollmentsFile != "./data/enrollments.txt" {
		t.Errorf("EnrollmentsFile = %q, want %q", cfg.EnrollmentsFile, "./data/enrollments.txt")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	customSecret := "custom-secret-key-32-bytes-long!"
	setEnv(t, "PORTAL_SESSION_SECRET", customSecret)
	setEnv(t, "PORTAL_DB_PATH", "/custom/path.db")
	setEnv(t, "PORTAL_SERVER_HOST", "0.0.0.0")
	setEnv(t, "PORTAL_SERVER_PORT", "3000")
	setEnv(t, "PORTAL_ENV", "production")
	setEnv(t, "PORTAL_LOG_LEVEL", "debug")
	setEnv(t, "PORTAL_DO_SEED", "true")
	setEnv(t, "PORTAL_ENROLLMENTS_FILE", "/etc/portal/enrollments.txt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SessionSecret != customSecret {
		t.Errorf("SessionSecret = %q, want %q", cfg.SessionSecret, customSecret)
	}
	if cfg.DBPath != "/custom/path.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/custom/path.db")
	}
	if cfg.ServerPort != 3000 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 3000)
	}
	if !cfg.DoSeed {
		t.Error("DoSeed = false, want true")
	}
	if cfg.EnrollmentsFile != "/etc/portal/enrollments.txt" {
		t.Errorf("EnrollmentsFile = %q, want %q", cfg.EnrollmentsFile, "/etc/portal/enrollments.txt")
	}
}

func TestLoad_RequiredSessionSecret(t *testing.T) {
	os.Clearenv()

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when PORTAL_SESSION_SECRET is not set")
	}
}

func TestLoad_SessionSecretTooShort(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "short"},
		{"31_bytes", "1234567890123456789012345678901"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			setEnv(t, "PORTAL_SESSION_SECRET", tt.secret)

			_, err := Load()
			if err == nil {
				t.Errorf("Load() should fail for secret %q", tt.secret)
			}
		})
	}
}

func TestLoad_RejectsKnownWeakSecret(t *testing.T) {
	os.Clearenv()
	setEnv(t, "PORTAL_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject a known default secret")
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "example.org", ServerPort: 9090}
	if got := cfg.ServerAddr(); got != "example.org:9090" {
		t.Errorf("ServerAddr() = %q, want %q", got, "example.org:9090")
	}
}

func TestIsDevelopment(t *testing.T) {
	if !(Config{Env: "development"}).IsDevelopment() {
		t.Error("development env should report IsDevelopment")
	}
	if (Config{Env: "production"}).IsDevelopment() {
		t.Error("production env should not report IsDevelopment")
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"alllowercaseonlyhere", false},
		{"lower_UPPER_only!!!!", true},
		{"Mixed123Case456Here!", true},
		{"12345678901234567890", false},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
