package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures modsnap's settings.
type Config struct {
	Host        string `toml:"host" env:"MODSNAP_HOST"`
	Format      string `toml:"format" env:"MODSNAP_FORMAT"`
	Theme       string `toml:"theme" env:"MODSNAP_THEME"`
	LogLevel    string `toml:"log_level" env:"MODSNAP_LOG_LEVEL"`
	LogFile     string `toml:"log_file" env:"MODSNAP_LOG_FILE"`
	PollSeconds int    `toml:"poll_seconds" env:"MODSNAP_POLL_SECONDS"`
}

const (
	defaultConfigPath  = "~/.config/modsnap/config.toml"
	defaultHost        = "127.0.0.1:25585"
	defaultFormat      = "toml"
	defaultTheme       = "Nightfox"
	defaultLogLevel    = "info"
	defaultLogFile     = "~/.local/state/modsnap/modsnap.log"
	defaultPollSeconds = 5
)

// Default returns the built-in configuration. LogFile is left empty so
// one-shot commands log to stderr.
func Default() Config {
	return Config{
		Host:        defaultHost,
		Format:      defaultFormat,
		Theme:       defaultTheme,
		LogLevel:    defaultLogLevel,
		PollSeconds: defaultPollSeconds,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// DefaultLogFile returns the expanded log path used by the watch UI when no
// log_file is configured.
func DefaultLogFile() string {
	return mustExpand(defaultLogFile)
}

// Load reads the config file at path (or the default path), applies
// environment overrides, and fills in defaults for empty values. A missing
// file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw Config
	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return raw.withDefaults(), nil
}

// Save writes cfg to path, creating directories as needed.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	bytes, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SaveTheme records theme in the config file at path and leaves every other
// key as the file has it. Environment overrides and defaults are never
// written.
func SaveTheme(path, theme string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	raw := make(map[string]any)
	bytes, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read config: %w", err)
	}
	raw["theme"] = strings.TrimSpace(theme)

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	out, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(resolved, out, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) withDefaults() Config {
	def := Default()

	c.Host = strings.TrimSpace(c.Host)
	if c.Host == "" {
		c.Host = def.Host
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = def.Format
	}
	c.Theme = strings.TrimSpace(c.Theme)
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile != "" {
		c.LogFile = mustExpand(c.LogFile)
	}
	if c.PollSeconds <= 0 {
		c.PollSeconds = def.PollSeconds
	}
	return c
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
