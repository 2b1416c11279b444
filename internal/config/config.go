package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Env string

const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
	RatePerSecond  float64  `yaml:"ratePerSecond"`
	RateBurst      int      `yaml:"rateBurst"`
}

type SessionConfig struct {
	TTL             time.Duration `yaml:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanupInterval"`
	HistoryDisplay  int           `yaml:"historyDisplay"`
}

type Config struct {
	Env     Env           `yaml:"env"`
	Seed    int64         `yaml:"seed"`
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
}

func DefaultConfig() *Config {
	return &Config{
		Env: EnvDevelopment,
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			RatePerSecond:  5,
			RateBurst:      10,
		},
		Session: SessionConfig{
			TTL:             30 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			HistoryDisplay:  3,
		},
	}
}

// Load layers defaults, the YAML file, a local .env file and environment
// variables, in that order. Unreadable files are skipped.
func Load() *Config {
	cfg := DefaultConfig()

	if path := configPath(); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	_ = godotenv.Load()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CHEEPNOW_ENV"); v != "" {
		c.WithEnv(v)
	}
	if v := os.Getenv("CHEEPNOW_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
	if v := os.Getenv("CHEEPNOW_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CHEEPNOW_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowedOrigins = origins
	}
	if v := os.Getenv("CHEEPNOW_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Session.TTL = d
		}
	}
	if v := os.Getenv("CHEEPNOW_HISTORY_DISPLAY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Session.HistoryDisplay = n
		}
	}
}

func (c *Config) WithEnv(env string) *Config {
	switch strings.ToLower(env) {
	case "production", "prod":
		c.Env = EnvProduction
	case "development", "dev":
		c.Env = EnvDevelopment
	}
	return c
}

// WithSeed overrides the seed when seed is non-zero.
func (c *Config) WithSeed(seed int64) *Config {
	if seed != 0 {
		c.Seed = seed
	}
	return c
}

// Validate reports every problem found rather than stopping at the first.
func (c *Config) Validate() error {
	var errs []error
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errs = append(errs, fmt.Errorf("env %q must be development or production", c.Env))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.RatePerSecond <= 0 {
		errs = append(errs, errors.New("server.ratePerSecond must be positive"))
	}
	if c.Server.RateBurst < 1 {
		errs = append(errs, errors.New("server.rateBurst must be at least 1"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.Session.CleanupInterval <= 0 {
		errs = append(errs, errors.New("session.cleanupInterval must be positive"))
	}
	if c.Session.HistoryDisplay < 1 {
		errs = append(errs, errors.New("session.historyDisplay must be at least 1"))
	}
	return errors.Join(errs...)
}

func configPath() string {
	if p := os.Getenv("CHEEPNOW_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(home, ".config", "cheepnow", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
