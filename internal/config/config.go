package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultAdminEmail is the single designated administrator. There is no role
// system; admin access is an exact-match check against this address (or its
// APP_ADMIN_EMAIL override).
const DefaultAdminEmail = "admin@trackify.app"

// AutoApproveDomain is the email domain whose registrations are approved
// immediately; every other domain starts pending.
const AutoApproveDomain = "gmail.com"

type Config struct {
	Env          string
	Addr         string
	DataDir      string
	CookieSecret string
	SessionTTL   time.Duration
	LogLevel     string
	AdminEmail   string

	// AutoApproveAll switches registration to the instant-approve policy
	// some deployments ran with, instead of the domain-gated default.
	AutoApproveAll bool
}

func Load() (Config, error) {
	return LoadFromEnv(os.Getenv)
}

func LoadFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Env:          getenv("APP_ENV"),
		Addr:         getenv("APP_ADDR"),
		DataDir:      getenv("APP_DATA_DIR"),
		LogLevel:     getenv("APP_LOG_LEVEL"),
		CookieSecret: getenv("APP_COOKIE_SECRET"),
	}

	if cfg.Env == "" {
		cfg.Env = "dev"
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8080"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	ttlRaw := getenv("APP_SESSION_TTL")
	if ttlRaw == "" {
		cfg.SessionTTL = 12 * time.Hour
	} else {
		ttl, err := time.ParseDuration(ttlRaw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_SESSION_TTL: %w", err)
		}
		if ttl <= 0 {
			return Config{}, errors.New("APP_SESSION_TTL: must be > 0")
		}
		cfg.SessionTTL = ttl
	}

	switch cfg.Env {
	case "dev", "prod", "test":
	default:
		return Config{}, errors.New("APP_ENV: must be one of dev, test, prod")
	}

	cfg.AdminEmail = strings.TrimSpace(strings.ToLower(getenv("APP_ADMIN_EMAIL")))
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = DefaultAdminEmail
	}

	if raw := getenv("APP_AUTO_APPROVE_ALL"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("APP_AUTO_APPROVE_ALL: %w", err)
		}
		cfg.AutoApproveAll = v
	}

	if cfg.IsProd() && len(cfg.CookieSecret) < 32 {
		return Config{}, errors.New("APP_COOKIE_SECRET: must be at least 32 bytes in prod")
	}

	return cfg, nil
}

func (c Config) IsProd() bool { return c.Env == "prod" }

func (c Config) UsersFile() string    { return filepath.Join(c.DataDir, "users.csv") }
func (c Config) ActivityFile() string { return filepath.Join(c.DataDir, "life_tracker_data.csv") }
func (c Config) GoalsFile() string    { return filepath.Join(c.DataDir, "goals.csv") }
