package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := "  "
	res := m.result

	parts := []string{styles.Logo.Render("modsnap")}

	switch {
	case res.LastError != nil && res.IsOffline():
		parts = append(parts,
			styles.DangerText.Render("HOST "+classifyConnectionError(res.LastError)),
			styles.WarningText.Bold(true).Render("Retrying..."))
	case res.LastError != nil:
		parts = append(parts,
			styles.WarningText.Bold(true).Render("HOST "+classifyConnectionError(res.LastError)))
	case !res.HasDiff:
		parts = append(parts, styles.WarningText.Bold(true).Render("Connecting..."))
	case !res.ReferenceUsable:
		parts = append(parts, styles.WarningText.Render("● NO SNAPSHOT"))
	case res.Diff.Equal:
		parts = append(parts, styles.SuccessText.Render("● MATCH"))
	default:
		parts = append(parts, styles.DangerText.Render("● DIFFERS"))
	}

	if res.HasDiff && res.ReferenceUsable {
		d := res.Diff
		modStyle := styles.MutedText
		if len(d.MissingMods) > 0 {
			modStyle = styles.DangerText
		}
		entryStyle := styles.MutedText
		if d.MissingContentCount > 0 {
			entryStyle = styles.DangerText
		}
		if m.width < 80 {
			parts = append(parts,
				styles.MutedText.Render("M:")+modStyle.Render(fmt.Sprintf("%d", len(d.MissingMods))),
				styles.MutedText.Render("E:")+entryStyle.Render(fmt.Sprintf("%d", d.MissingContentCount)))
		} else {
			parts = append(parts,
				styles.MutedText.Render("Missing mods: ")+modStyle.Render(fmt.Sprintf("%d", len(d.MissingMods))),
				styles.MutedText.Render("Updated: ")+styles.Text.Render(fmt.Sprintf("%d", len(d.UpdatedMods))),
				styles.MutedText.Render("Missing entries: ")+entryStyle.Render(fmt.Sprintf("%d", d.MissingContentCount)))
		}
	}

	if !res.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render(res.LastUpdated.Format("15:04:05")))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// classifyConnectionError returns a short label for a poll error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "no snapshot"):
		return "NO SNAPSHOT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	var commands []cmd
	switch m.currentView {
	case ViewLogs:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"G", "Latest"},
			{"r", "Report"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"l", "Logs"},
			{"?", "More"},
		}
	}

	colon := styles.FaintText.Render(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, styles.AccentText.Render(c.key)+colon+styles.MutedText.Render(c.desc))
	}
	segments = append(segments, styles.AccentText.Render("T")+colon+styles.FaintText.Render(m.theme.Name))

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Padding(0, 1).
		Width(m.width).
		Render(strings.Join(segments, "  "))
}
