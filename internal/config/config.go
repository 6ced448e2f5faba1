package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the client.
type Config struct {
	AppName     string
	Environment string
	API         APIConfig
	Keystore    KeystoreConfig
	Keeper      KeeperConfig
	Guard       GuardConfig
	Logger      LoggerConfig
}

type APIConfig struct {
	BaseURL        string
	Prefix         string
	RequestTimeout time.Duration
	UserAgent      string
}

type KeystoreConfig struct {
	Backend       string // "bolt", "memory" or "redis"
	Path          string
	Bucket        string
	RedisURL      string
	RedisPassword string
	RedisDB       int
	Namespace     string
}

type KeeperConfig struct {
	Enabled  bool
	Interval time.Duration
}

type GuardConfig struct {
	Landing string
	Home    string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the client can start in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "blossom"),
		Environment: getString("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:        getString("BLOSSOM_API_URL", "http://localhost:8000"),
			Prefix:         getString("BLOSSOM_API_PREFIX", "/api"),
			RequestTimeout: getDuration("REQUEST_TIMEOUT_SECONDS", 10*time.Second),
			UserAgent:      getString("BLOSSOM_USER_AGENT", "blossom-client"),
		},
		Keystore: KeystoreConfig{
			Backend:       getString("KEYSTORE_BACKEND", "bolt"),
			Path:          getString("KEYSTORE_PATH", defaultKeystorePath()),
			Bucket:        getString("KEYSTORE_BUCKET", "credentials"),
			RedisURL:      getString("REDIS_URL", "redis://localhost:6379"),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
			RedisDB:       getInt("REDIS_DB", 0),
			Namespace:     getString("KEYSTORE_NAMESPACE", "blossom"),
		},
		Keeper: KeeperConfig{
			Enabled:  getBool("KEEPER_ENABLED", false),
			Interval: getDuration("KEEPER_INTERVAL_SECONDS", 15*time.Minute),
		},
		Guard: GuardConfig{
			Landing: getString("GUARD_LANDING_ROUTE", "/"),
			Home:    getString("GUARD_HOME_ROUTE", "/(tabs)"),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func defaultKeystorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data/keystore.db"
	}
	return filepath.Join(home, ".blossom", "keystore.db")
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// APIRoot returns the fully-qualified API root, e.g. "http://host:8000/api".
func (c *Config) APIRoot() string {
	return fmt.Sprintf("%s%s", c.API.BaseURL, c.API.Prefix)
}
