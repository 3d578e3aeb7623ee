package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %s, want :8080", cfg.Server.Addr)
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Errorf("token ttl = %v, want 24h", cfg.TokenTTL())
	}
	if cfg.DueSoonWindow() != 3*24*time.Hour {
		t.Errorf("due soon window = %v, want 72h", cfg.DueSoonWindow())
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
database:
  path: "/tmp/test.db"
auth:
  jwt_secret: "file-secret"
  token_ttl_hours: 2
reminders:
  due_soon_days: 7
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %s, want :9090", cfg.Server.Addr)
	}
	if cfg.Database.Path != "/tmp/test.db" {
		t.Errorf("db path = %s", cfg.Database.Path)
	}
	if cfg.Auth.JWTSecret != "file-secret" {
		t.Errorf("secret = %s", cfg.Auth.JWTSecret)
	}
	if cfg.TokenTTL() != 2*time.Hour {
		t.Errorf("token ttl = %v, want 2h", cfg.TokenTTL())
	}
	if cfg.DueSoonWindow() != 7*24*time.Hour {
		t.Errorf("due soon window = %v", cfg.DueSoonWindow())
	}
}

func TestEnvSecretWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("auth:\n  jwt_secret: \"file-secret\"\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("TASKDESK_JWT_SECRET", "env-secret")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Errorf("secret = %s, want env-secret", cfg.Auth.JWTSecret)
	}
}
