package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "zero lines",
			maxLines: 0,
			expected: nil,
		},
		{
			name:     "negative lines",
			maxLines: -1,
			expected: nil,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil for missing file", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

// markPalette wraps each part in a visible marker so the structure can be
// asserted without depending on terminal color support.
func markPalette() Palette {
	mark := func(tag string) lipgloss.Style {
		return lipgloss.NewStyle().Transform(func(s string) string { return "<" + tag + ">" + s + "</" + tag + ">" })
	}
	return Palette{
		Timestamp: mark("ts"),
		Trace:     mark("trace"),
		Debug:     mark("debug"),
		Info:      mark("info"),
		Warn:      mark("warn"),
		Error:     mark("error"),
		Name:      mark("name"),
		Field:     mark("field"),
		Message:   lipgloss.NewStyle(),
	}
}

func TestColorizeLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "blank line unchanged",
			input:    "   ",
			contains: []string{"   "},
		},
		{
			name:     "info with logger name",
			input:    "2026-10-18T09:12:01.512Z [INFO]  modsnap.store: saved snapshot: mods=3",
			contains: []string{"<ts>2026-10-18T09:12:01.512Z</ts>", "<info>INFO</info>", "<name>modsnap.store</name>", "<field>mods</field>=3"},
		},
		{
			name:     "warn without name",
			input:    "2026-10-18T09:12:01.512Z [WARN]  live snapshot poll failed: error=\"refused\"",
			contains: []string{"<warn>WARN</warn>", "live snapshot poll failed:", "<field>error</field>="},
		},
		{
			name:     "error level",
			input:    "2026-10-18T09:12:01.512Z [ERROR] modsnap: read snapshot failed",
			contains: []string{"<error>ERROR</error>", "<name>modsnap</name>"},
		},
		{
			name:     "foreign line passes through",
			input:    "panic: something else",
			contains: []string{"panic: something else"},
		},
	}

	p := markPalette()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorizeLine(tt.input, p)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ColorizeLine(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
		})
	}
}

func TestColorizeLines(t *testing.T) {
	input := []string{
		"2026-10-18T09:12:01.512Z [DEBUG] modsnap: compared live snapshot: summary=\"no differences\"",
		"free text",
	}
	got := ColorizeLines(input, markPalette())
	if len(got) != len(input) {
		t.Fatalf("ColorizeLines() returned %d lines, want %d", len(got), len(input))
	}
	if !strings.Contains(got[0], "<debug>DEBUG</debug>") {
		t.Errorf("ColorizeLines()[0] = %q, want debug level marked", got[0])
	}
	if got[1] != "free text" {
		t.Errorf("ColorizeLines()[1] = %q, want %q", got[1], "free text")
	}
}
