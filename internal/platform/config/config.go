package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"city-geo-events/internal/platform/retry"
)

type ServerConfig struct {
	Addr         string        `yaml:"addr"` // :8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type APIConfig struct {
	BaseURL      string        `yaml:"base_url"` // http://localhost:8000/api
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	// UpcomingOnly=true recorta el set cacheado a eventos futuros.
	UpcomingOnly bool          `yaml:"upcoming_only"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"` // 30m
}

type DisplayConfig struct {
	MaxMarkers int    `yaml:"max_markers"` // 0 = sin tope
	Timezone   string `yaml:"timezone"`    // Europe/Moscow; vacío = local
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
	Multiplier  float64       `yaml:"multiplier"`
	MaxDelay    time.Duration `yaml:"max_delay"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Server      ServerConfig  `yaml:"server"`
	API         APIConfig     `yaml:"api"`
	Cache       CacheConfig   `yaml:"cache"`
	Display     DisplayConfig `yaml:"display"`
	Retry       RetryConfig   `yaml:"retry"`
	Log         LogConfig     `yaml:"log"`
	DefaultCity string        `yaml:"default_city"`
}

func Default() Config {
	r := retry.Default()
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		API: APIConfig{
			BaseURL:      "http://localhost:8000/api",
			Timeout:      10 * time.Second,
			UserAgent:    "city-geo-events",
			UpcomingOnly: false,
		},
		Cache:   CacheConfig{TTL: 30 * time.Minute},
		Display: DisplayConfig{MaxMarkers: 500},
		Retry: RetryConfig{
			MaxAttempts: r.MaxAttempts,
			BaseDelay:   r.BaseDelay,
			Multiplier:  r.Multiplier,
			MaxDelay:    r.MaxDelay,
		},
		Log:         LogConfig{Level: "info", Format: "text"},
		DefaultCity: "voronezh",
	}
}

// Load lee el YAML (si path no es vacío) sobre los defaults y aplica env.
func Load(path string) (Config, error) {
	c := Default()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := c.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("PORT")); v != "" {
		c.Server.Addr = ":" + v
	}
	if v := strings.TrimSpace(getenv("CITYGEO_API_URL")); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(getenv("CACHE_TTL")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.Cache.TTL = d
	}
	if v := strings.TrimSpace(getenv("MAX_MARKERS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_MARKERS: %w", err)
		}
		c.Display.MaxMarkers = n
	}
	if v := strings.TrimSpace(getenv("DEFAULT_CITY")); v != "" {
		c.DefaultCity = v
	}
	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv("LOG_FORMAT")); v != "" {
		c.Log.Format = v
	}
	return nil
}

func (c Config) Validate() error {
	if c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be positive")
	}
	if c.Display.MaxMarkers < 0 {
		return errors.New("display.max_markers must be >= 0")
	}
	base := strings.TrimSpace(c.API.BaseURL)
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("api.base_url must be an http(s) url, got %q", c.API.BaseURL)
	}
	if c.Display.Timezone != "" {
		if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
			return fmt.Errorf("display.timezone: %w", err)
		}
	}
	return nil
}

// Location resuelve display.timezone. Vacío o inválido => time.Local.
func (c Config) Location() *time.Location {
	if c.Display.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: c.Retry.MaxAttempts,
		BaseDelay:   c.Retry.BaseDelay,
		Multiplier:  c.Retry.Multiplier,
		MaxDelay:    c.Retry.MaxDelay,
	}
}
