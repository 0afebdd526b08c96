package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
	Store       StoreConfig       `yaml:"store"`
	Database    DatabaseConfig    `yaml:"database"`
	R2          R2Config          `yaml:"r2"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	GatewayToken   string   `yaml:"gateway_token"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// StoreConfig selects the snapshot backend: memory, postgres or r2.
type StoreConfig struct {
	Backend string `yaml:"backend"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type R2Config struct {
	AccountID       string `yaml:"account_id"`
	AccessKeyID     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
}

// LeaderboardConfig selects where the roster comes from: db or http.
type LeaderboardConfig struct {
	Source          string        `yaml:"source"`
	URL             string        `yaml:"url"`
	Token           string        `yaml:"token"`
	Limit           int           `yaml:"limit"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendR2       = "r2"

	LeaderboardDB   = "db"
	LeaderboardHTTP = "http"
)

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 5200, AllowedOrigins: []string{"http://localhost:3000"}},
		Log:    LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Store:  StoreConfig{Backend: BackendPostgres},
		R2:     R2Config{Prefix: "ecometer/state"},
		Leaderboard: LeaderboardConfig{
			Source:          LeaderboardDB,
			Limit:           5,
			RefreshInterval: time.Minute,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file (the given
// path or the first default path that exists), then .env, then the environment.
func Load(configFile string) (*Config, error) {
	c := Default()

	paths := []string{"etc/ecometer.yaml", "/etc/ecometer/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if configFile != "" {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			continue
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		break
	}

	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	envOverride(&c.Server.GatewayToken, "GATEWAY_TOKEN")
	envOverrideList(&c.Server.AllowedOrigins, "ALLOWED_ORIGINS")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverride(&c.Store.Backend, "STORE_BACKEND")
	envOverride(&c.Database.URL, "DATABASE_URL")
	envOverride(&c.R2.AccountID, "CLOUDFLARE_ACCOUNT_ID")
	envOverride(&c.R2.AccessKeyID, "R2_ACCESS_KEY_ID")
	envOverride(&c.R2.AccessKeySecret, "R2_ACCESS_KEY_SECRET")
	envOverride(&c.R2.Bucket, "R2_BUCKET_NAME")
	envOverride(&c.Leaderboard.Source, "LEADERBOARD_SOURCE")
	envOverride(&c.Leaderboard.URL, "LEADERBOARD_URL")
	envOverride(&c.Leaderboard.Token, "LEADERBOARD_TOKEN")
	envOverrideInt(&c.Leaderboard.Limit, "LEADERBOARD_LIMIT")
	envOverrideDuration(&c.Leaderboard.RefreshInterval, "LEADERBOARD_REFRESH")

	return c, c.Validate()
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("store backend %q requires DATABASE_URL", c.Store.Backend)
		}
	case BackendR2:
		if c.R2.AccountID == "" || c.R2.Bucket == "" {
			return fmt.Errorf("store backend %q requires CLOUDFLARE_ACCOUNT_ID and R2_BUCKET_NAME", c.Store.Backend)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	switch c.Leaderboard.Source {
	case LeaderboardDB:
		if c.Database.URL == "" {
			return fmt.Errorf("leaderboard source %q requires DATABASE_URL", c.Leaderboard.Source)
		}
	case LeaderboardHTTP:
		if c.Leaderboard.URL == "" {
			return fmt.Errorf("leaderboard source %q requires LEADERBOARD_URL", c.Leaderboard.Source)
		}
	default:
		return fmt.Errorf("unknown leaderboard source %q", c.Leaderboard.Source)
	}

	if c.Leaderboard.RefreshInterval <= 0 {
		return fmt.Errorf("leaderboard refresh interval must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envOverrideDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func envOverrideList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
