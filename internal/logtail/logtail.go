package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Palette holds the styles applied to each part of a log line.
type Palette struct {
	Timestamp lipgloss.Style
	Trace     lipgloss.Style
	Debug     lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Name      lipgloss.Style
	Field     lipgloss.Style
	Message   lipgloss.Style
}

// hclog writes "<timestamp> [LEVEL] <name>: <message>: k=v ...", padding the
// level column with spaces.
var linePattern = regexp.MustCompile(`^(\S+)\s+\[(TRACE|DEBUG|INFO|WARN|ERROR)\]\s+(?:([\w.\-]+):\s)?(.*)$`)

var fieldPattern = regexp.MustCompile(`(\s)([\w.\-]+)=`)

// ColorizeLine styles a single log line. Lines that do not look like logger
// output are rendered with the message style only.
func ColorizeLine(line string, p Palette) string {
	if strings.TrimSpace(line) == "" {
		return line
	}
	m := linePattern.FindStringSubmatch(line)
	if m == nil {
		return p.Message.Render(line)
	}
	ts, level, name, rest := m[1], m[2], m[3], m[4]

	var b strings.Builder
	b.WriteString(p.Timestamp.Render(ts))
	b.WriteString(" ")
	b.WriteString(levelStyle(level, p).Render(level))
	if name != "" {
		b.WriteString(" ")
		b.WriteString(p.Name.Render(name))
	}
	b.WriteString(" ")
	b.WriteString(colorizeFields(rest, p))
	return b.String()
}

// ColorizeLines styles every line in lines.
func ColorizeLines(lines []string, p Palette) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = ColorizeLine(line, p)
	}
	return out
}

func levelStyle(level string, p Palette) lipgloss.Style {
	switch level {
	case "TRACE":
		return p.Trace
	case "DEBUG":
		return p.Debug
	case "WARN":
		return p.Warn
	case "ERROR":
		return p.Error
	default:
		return p.Info
	}
}

// colorizeFields renders the message and highlights key=value field names.
func colorizeFields(rest string, p Palette) string {
	locs := fieldPattern.FindAllStringSubmatchIndex(rest, -1)
	if len(locs) == 0 {
		return p.Message.Render(rest)
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		// loc[4]:loc[5] is the key, loc[1] is just past "=".
		b.WriteString(p.Message.Render(rest[last:loc[4]]))
		b.WriteString(p.Field.Render(rest[loc[4]:loc[5]]))
		b.WriteString("=")
		last = loc[1]
	}
	b.WriteString(p.Message.Render(rest[last:]))
	return b.String()
}
