// Package config loads runtime settings from defaults, an optional TOML
// file and TRAINBOOK_* environment variables, in that order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	DataDir       string        `toml:"data_dir"`
	Backend       string        `toml:"backend"`
	SQLitePath    string        `toml:"sqlite_path"`
	CorruptPolicy string        `toml:"corrupt_policy"`
	BcryptCost    int           `toml:"bcrypt_cost"`
	TokenSecret   string        `toml:"token_secret"`
	TokenTTL      time.Duration `toml:"token_ttl"`
	LoginRate     float64       `toml:"login_rate"`
	LoginBurst    float64       `toml:"login_burst"`
	LogLevel      string        `toml:"log_level"`
	LogFile       string        `toml:"log_file"`
	Redis         RedisConfig   `toml:"redis"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		DataDir:       "localDb",
		Backend:       BackendFile,
		SQLitePath:    "trainbook.db",
		CorruptPolicy: "backup",
		BcryptCost:    12,
		TokenTTL:      24 * time.Hour,
		LoginRate:     0.2,
		LoginBurst:    5,
		LogLevel:      "warn",
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "trainbook:",
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFromEnvironment is Load with os.Getenv.
func LoadFromEnvironment(path string) (Config, error) {
	return Load(path, os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	envOrDefault := func(key, defaultVal string) string {
		if val := getenv(key); val != "" {
			return val
		}
		return defaultVal
	}

	c.DataDir = envOrDefault("TRAINBOOK_DATA_DIR", c.DataDir)
	c.Backend = envOrDefault("TRAINBOOK_BACKEND", c.Backend)
	c.SQLitePath = envOrDefault("TRAINBOOK_SQLITE_PATH", c.SQLitePath)
	c.CorruptPolicy = envOrDefault("TRAINBOOK_CORRUPT_POLICY", c.CorruptPolicy)
	c.TokenSecret = envOrDefault("TRAINBOOK_TOKEN_SECRET", c.TokenSecret)
	c.LogLevel = envOrDefault("TRAINBOOK_LOG_LEVEL", c.LogLevel)
	c.LogFile = envOrDefault("TRAINBOOK_LOG_FILE", c.LogFile)
	c.Redis.Addr = envOrDefault("TRAINBOOK_REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = envOrDefault("TRAINBOOK_REDIS_PASSWORD", c.Redis.Password)
	c.Redis.Prefix = envOrDefault("TRAINBOOK_REDIS_PREFIX", c.Redis.Prefix)

	if v := getenv("TRAINBOOK_BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TRAINBOOK_BCRYPT_COST: %w", err)
		}
		c.BcryptCost = parsed
	}
	if v := getenv("TRAINBOOK_TOKEN_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TRAINBOOK_TOKEN_TTL: %w", err)
		}
		c.TokenTTL = parsed
	}
	if v := getenv("TRAINBOOK_REDIS_DB"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TRAINBOOK_REDIS_DB: %w", err)
		}
		c.Redis.DB = parsed
	}
	return nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown backend %q (want file, sqlite or redis)", c.Backend)
	}
	switch c.CorruptPolicy {
	case "backup", "reset", "fail":
	default:
		return fmt.Errorf("unknown corrupt_policy %q (want backup, reset or fail)", c.CorruptPolicy)
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt_cost must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.TokenSecret != "" && len(c.TokenSecret) < 32 {
		return fmt.Errorf("token_secret must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", c.TokenTTL)
	}
	if c.LoginBurst < 1 || c.LoginRate < 0 {
		return fmt.Errorf("login_burst must be at least 1 and login_rate not negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
