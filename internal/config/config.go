package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvDBPath     = "IMMORTALIS_DB"
	EnvHTTPAddr   = "IMMORTALIS_HTTP_ADDR"
	EnvLogLevel   = "IMMORTALIS_LOG_LEVEL"
	EnvLogFormat  = "IMMORTALIS_LOG_FORMAT"
	EnvFeedURL    = "IMMORTALIS_FEED_URL"
	EnvRedisAddr  = "IMMORTALIS_REDIS_ADDR"
	EnvSessionTTL = "IMMORTALIS_SESSION_TTL"
)

type Config struct {
	DBPath     string        `yaml:"db_path"`
	HTTPAddr   string        `yaml:"http_addr"`
	LogLevel   string        `yaml:"log_level"`
	LogFormat  string        `yaml:"log_format"`
	FeedURL    string        `yaml:"feed_url"`
	FeedLimit  int           `yaml:"feed_limit"`
	RedisAddr  string        `yaml:"redis_addr"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

func Default() Config {
	return Config{
		HTTPAddr:   ":8080",
		LogLevel:   "info",
		LogFormat:  "json",
		FeedURL:    "https://pubmed.ncbi.nlm.nih.gov",
		FeedLimit:  9,
		SessionTTL: 12 * time.Hour,
	}
}

// Load layers defaults, an optional YAML file, a .env file in the working
// directory and finally the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := cfg.loadFromEnv(); err != nil {
		return Config{}, err
	}
	if cfg.FeedLimit <= 0 {
		cfg.FeedLimit = Default().FeedLimit
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = Default().SessionTTL
	}
	return cfg, nil
}

func (c *Config) loadFromEnv() error {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		c.HTTPAddr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv(EnvFeedURL); v != "" {
		c.FeedURL = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv(EnvSessionTTL); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSessionTTL, v, err)
		}
		c.SessionTTL = ttl
	}
	return nil
}
