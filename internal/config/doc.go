// Package config loads modsnap's settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/modsnap/config.toml (default)
//  3. If the config file doesn't exist, start from an empty config
//  4. Apply MODSNAP_* environment variables on top
//  5. Fill any field that is still empty with its default
//
// # Default Values
//
//   - Config file: ~/.config/modsnap/config.toml
//   - Host: 127.0.0.1:25585
//   - Snapshot format: toml
//   - Theme: Nightfox
//   - Log level: info
//   - Log file: ~/.local/state/modsnap/modsnap.log
//   - Poll interval: 5 seconds
//
// # TOML Format
//
//	host = "127.0.0.1:25585"
//	format = "toml"          # or "yaml"
//	theme = "Slate"
//	log_level = "debug"
//	log_file = "~/.local/state/modsnap/modsnap.log"
//	poll_seconds = 5
//
// All fields are optional. Tilde expansion is performed for log_file.
//
// # Environment Overrides
//
//	MODSNAP_HOST, MODSNAP_FORMAT, MODSNAP_THEME, MODSNAP_LOG_LEVEL,
//	MODSNAP_LOG_FILE, MODSNAP_POLL_SECONDS
//
// Environment values win over the file. Command-line flags win over both; the
// CLI applies them after Load returns.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//   - Environment values that do not parse (e.g., a non-numeric poll interval)
//
// Save is used by the TUI to remember the selected theme.
package config
