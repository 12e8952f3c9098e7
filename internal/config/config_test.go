package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.DBName != "campusfind" {
		t.Errorf("dbname = %q, want campusfind", cfg.Database.DBName)
	}
	if cfg.Database.LockTimeout != "5s" {
		t.Errorf("lock timeout = %q, want 5s", cfg.Database.LockTimeout)
	}
	if cfg.JWT.Issuer != "campusfind.app" {
		t.Errorf("issuer = %q, want campusfind.app", cfg.JWT.Issuer)
	}
	if !cfg.Seed.Enabled {
		t.Error("seed should be enabled by default")
	}
}

func TestLoadConfigYAMLAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9090"
database:
  dbname: "campusfind_test"
jwt:
  secret: "yaml-secret"
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	// Env overrides YAML.
	t.Setenv("DB_NAME", "campusfind_env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q, want YAML value 9090", cfg.Server.Port)
	}
	if cfg.Database.DBName != "campusfind_env" {
		t.Errorf("dbname = %q, want env value campusfind_env", cfg.Database.DBName)
	}
	if cfg.JWT.Secret != "yaml-secret" {
		t.Errorf("secret = %q, want yaml-secret", cfg.JWT.Secret)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadConfig accepted a missing JWT secret")
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.Password = "pw"

	got := cfg.GetPostgresConnectionString()
	want := "postgres://postgres:pw@localhost:5432/campusfind?sslmode=disable"
	if got != want {
		t.Errorf("connection string = %q, want %q", got, want)
	}
}
