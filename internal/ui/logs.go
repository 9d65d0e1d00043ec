package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/modsnap/internal/logtail"
)

const logTailLines = 400

type logLinesMsg []string

type logErrorMsg struct{ err error }

// fetchLogsCmd reads the tail of the log file off the UI goroutine.
func fetchLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logLinesMsg(lines)
	}
}

func (t Theme) logPalette() logtail.Palette {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return logtail.Palette{
		Timestamp: fg(t.Faint),
		Trace:     fg(t.Faint).Bold(true),
		Debug:     fg(t.Info).Bold(true),
		Info:      fg(t.Success).Bold(true),
		Warn:      fg(t.Warning).Bold(true),
		Error:     fg(t.Danger).Bold(true),
		Name:      fg(t.Accent),
		Field:     fg(t.Muted),
		Message:   fg(t.Text),
	}
}

func (m *Model) renderLogContent() string {
	if m.logErr != nil {
		return m.theme.Styles().DangerText.Render("Unable to read log: " + m.logErr.Error())
	}
	if len(m.logLines) == 0 {
		return m.theme.Styles().MutedText.Render("No log output yet at " + m.logPath)
	}
	return strings.Join(logtail.ColorizeLines(m.logLines, m.theme.logPalette()), "\n")
}
