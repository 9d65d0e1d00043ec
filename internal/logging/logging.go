// Package logging builds the hclog logger shared by modsnap's packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const defaultLevel = "info"

// Options configure a logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error. Empty uses info.
	Level string
	// File receives log output when set. The TUI logs to a file so the
	// alternate screen stays clean.
	File string
	// Output is used when File is empty. Nil means stderr.
	Output io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger and a closer for its output.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	level := hclog.LevelFromString(strings.TrimSpace(opts.Level))
	if level == hclog.NoLevel {
		level = hclog.LevelFromString(defaultLevel)
	}

	var out io.Writer = os.Stderr
	if opts.Output != nil {
		out = opts.Output
	}
	var closer io.Closer = nopCloser{}

	if path := strings.TrimSpace(opts.File); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closer = file
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "modsnap",
		Level:  level,
		Output: out,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
