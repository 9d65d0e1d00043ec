package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != defaultHost {
		t.Fatalf("Host = %q, want %q", cfg.Host, defaultHost)
	}
	if cfg.Format != defaultFormat {
		t.Fatalf("Format = %q, want %q", cfg.Format, defaultFormat)
	}
	if cfg.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, defaultTheme)
	}
	if cfg.PollSeconds != defaultPollSeconds {
		t.Fatalf("PollSeconds = %d, want %d", cfg.PollSeconds, defaultPollSeconds)
	}

	if cfg.LogFile != "" {
		t.Fatalf("LogFile = %q, want empty so commands log to stderr", cfg.LogFile)
	}
}

func TestDefaultLogFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got, want := DefaultLogFile(), filepath.Join(home, ".local/state/modsnap/modsnap.log"); got != want {
		t.Fatalf("DefaultLogFile() = %q, want %q", got, want)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
host = "  10.0.0.5:9999  "
format = " YAML "
theme = "Slate"
log_level = "DEBUG"
log_file = "  ~/logs/modsnap.log  "
poll_seconds = 12
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != "10.0.0.5:9999" {
		t.Fatalf("Host = %q, want %q", cfg.Host, "10.0.0.5:9999")
	}
	if cfg.Format != "yaml" {
		t.Fatalf("Format = %q, want yaml", cfg.Format)
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", cfg.Theme)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFile != filepath.Join(home, "logs/modsnap.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.PollSeconds != 12 {
		t.Fatalf("PollSeconds = %d, want 12", cfg.PollSeconds)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
host = "   "
theme = ""
poll_seconds = -3
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != defaultHost {
		t.Fatalf("Host = %q, want %q", cfg.Host, defaultHost)
	}
	if cfg.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, defaultTheme)
	}
	if cfg.PollSeconds != defaultPollSeconds {
		t.Fatalf("PollSeconds = %d, want %d", cfg.PollSeconds, defaultPollSeconds)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MODSNAP_HOST", "192.168.1.20:25585")
	t.Setenv("MODSNAP_THEME", "Kanagawa")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`host = "10.0.0.5:9999"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Host != "192.168.1.20:25585" {
		t.Fatalf("Host = %q, want env override", cfg.Host)
	}
	if cfg.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want Kanagawa", cfg.Theme)
	}
}

func TestLoad_InvalidEnvFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MODSNAP_POLL_SECONDS", "soon")

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("Load error = %v, want parse env error", err)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`host = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestSave_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Theme = "Slate"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("Load = %#v, want %#v", loaded, cfg)
	}
}

func TestSaveTheme_KeepsFileContents(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MODSNAP_HOST", "temp-host:9999")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("theme = \"Nightfox\"\npoll_seconds = 12\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := SaveTheme(path, "Kanagawa"); err != nil {
		t.Fatalf("SaveTheme returned error: %v", err)
	}

	var raw map[string]any
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if raw["theme"] != "Kanagawa" {
		t.Fatalf("theme = %v, want Kanagawa", raw["theme"])
	}
	if raw["poll_seconds"] != int64(12) {
		t.Fatalf("poll_seconds = %#v, want 12 kept", raw["poll_seconds"])
	}
	for _, key := range []string{"host", "format", "log_level", "log_file"} {
		if _, ok := raw[key]; ok {
			t.Fatalf("config file gained %q:\n%s", key, data)
		}
	}
}

func TestSaveTheme_CreatesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := SaveTheme(path, "Slate"); err != nil {
		t.Fatalf("SaveTheme returned error: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", cfg.Theme)
	}
}

func TestSaveTheme_InvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`host = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := SaveTheme(path, "Slate"); err == nil {
		t.Fatalf("SaveTheme returned nil error, want parse error")
	}
	data, _ := os.ReadFile(path)
	if string(data) != `host = [` {
		t.Fatalf("config file rewritten after parse error: %q", data)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
