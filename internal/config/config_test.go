package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv(func(string) string { return "" })
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.Env != "dev" {
		t.Fatalf("Env: got %q", cfg.Env)
	}
	if cfg.Addr != "127.0.0.1:8080" {
		t.Fatalf("Addr: got %q", cfg.Addr)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("SessionTTL: got %s", cfg.SessionTTL)
	}
	if cfg.AdminEmail != DefaultAdminEmail {
		t.Fatalf("AdminEmail: got %q", cfg.AdminEmail)
	}
	if cfg.AutoApproveAll {
		t.Fatalf("AutoApproveAll: expected false by default")
	}
	if cfg.UsersFile() != "data/users.csv" {
		t.Fatalf("UsersFile: got %q", cfg.UsersFile())
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	env := map[string]string{
		"APP_ENV":              "test",
		"APP_ADDR":             "0.0.0.0:9999",
		"APP_DATA_DIR":         "/var/lib/trackify",
		"APP_SESSION_TTL":      "45m",
		"APP_ADMIN_EMAIL":      " Admin@Example.COM ",
		"APP_AUTO_APPROVE_ALL": "true",
	}
	cfg, err := LoadFromEnv(func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}

	if cfg.SessionTTL != 45*time.Minute {
		t.Fatalf("SessionTTL: got %s", cfg.SessionTTL)
	}
	if cfg.AdminEmail != "admin@example.com" {
		t.Fatalf("AdminEmail: got %q", cfg.AdminEmail)
	}
	if !cfg.AutoApproveAll {
		t.Fatalf("AutoApproveAll: expected true")
	}
	if cfg.UsersFile() != "/var/lib/trackify/users.csv" {
		t.Fatalf("UsersFile: got %q", cfg.UsersFile())
	}
}

func TestLoadFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad env":      {"APP_ENV": "staging"},
		"bad ttl":      {"APP_SESSION_TTL": "soon"},
		"negative ttl": {"APP_SESSION_TTL": "-1h"},
		"bad bool":     {"APP_AUTO_APPROVE_ALL": "yep"},
		"short secret": {"APP_ENV": "prod", "APP_COOKIE_SECRET": "tooshort"},
		"empty secret": {"APP_ENV": "prod"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFromEnv(func(k string) string { return env[k] }); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}
