package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Window configures the desktop client.
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Config is the settings shared by both front-ends.
type Config struct {
	Addr         string        `yaml:"addr"`
	BoardSize    int           `yaml:"board_size"`
	Heartbeat    time.Duration `yaml:"heartbeat"`
	FrontendHost string        `yaml:"frontend_host"`
	LogLevel     string        `yaml:"log_level"`
	Development  bool          `yaml:"development"`
	Window       Window        `yaml:"window"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Addr:      ":8080",
		BoardSize: 3,
		Heartbeat: 15 * time.Second,
		LogLevel:  "info",
		Window: Window{
			Width:  1024,
			Height: 768,
			Title:  "Tic-Tac-Toe",
		},
	}
}

// Load reads a YAML file on top of Default. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(raw []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.BoardSize <= 1 {
		return fmt.Errorf("%w: board_size %d, want at least 2", ErrInvalid, c.BoardSize)
	}
	if c.Heartbeat <= 0 {
		return fmt.Errorf("%w: heartbeat must be positive", ErrInvalid)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	return nil
}

// ApplyEnv overrides Addr and FrontendHost from PORT and FRONTEND_HOST.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if port, ok := lookup("PORT"); ok && port != "" {
		c.Addr = ":" + port
	}
	if host, ok := lookup("FRONTEND_HOST"); ok {
		c.FrontendHost = host
	}
}
