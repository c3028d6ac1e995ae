package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_JWT_SECRET", "admin-test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Admin.Username != "admin" || cfg.Admin.Password != "admin123" {
		t.Errorf("admin defaults = %q/%q, want admin/admin123", cfg.Admin.Username, cfg.Admin.Password)
	}
	if cfg.JWT.Issuer != "gravitas.app" {
		t.Errorf("JWT.Issuer = %q, want gravitas.app", cfg.JWT.Issuer)
	}
	if cfg.Database.DBName != "gravitas" {
		t.Errorf("Database.DBName = %q, want gravitas", cfg.Database.DBName)
	}
}

func TestLoadConfigMissingSecretsFails(t *testing.T) {
	// Guard against secrets leaking in from the test environment.
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_JWT_SECRET", "")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected LoadConfig to fail without signing secrets")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_JWT_SECRET", "admin-test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ADMIN_USERNAME", "moderator")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: \"3000\"\nadmin:\n  username: fileadmin\n")
	if err := os.WriteFile(configPath, content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want env override 9090", cfg.Server.Port)
	}
	if cfg.Admin.Username != "moderator" {
		t.Errorf("Admin.Username = %q, want env override moderator", cfg.Admin.Username)
	}
	if cfg.Database.MaxOpenConns != 50 {
		t.Errorf("Database.MaxOpenConns = %d, want 50", cfg.Database.MaxOpenConns)
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.Database.Host = "db.internal"
	cfg.Database.Port = "5433"
	cfg.Database.User = "svc"
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "gravitas"

	want := "postgres://svc:pw@db.internal:5433/gravitas?sslmode=disable"
	if got := cfg.GetPostgresConnectionString(); got != want {
		t.Errorf("connection string = %q, want %q", got, want)
	}
}
