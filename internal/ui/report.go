package ui

import (
	"fmt"
	"strings"

	"github.com/five82/modsnap/internal/compare"
)

// Report is what RenderReport draws: one comparison plus its context.
type Report struct {
	Diff            compare.Diff
	ReferenceUsable bool
	World           string
	// MaxEntries limits the registry entries listed per registry. Zero lists
	// all of them.
	MaxEntries int
}

// RenderReport renders a report as styled text lines. width <= 0 disables
// truncation.
func RenderReport(r Report, theme Theme, width int) string {
	styles := theme.Styles()
	d := r.Diff
	var lines []string
	add := func(s string) { lines = append(lines, s) }

	if r.World != "" {
		add(styles.MutedText.Render("World: ") + styles.Text.Render(truncateMiddle(r.World, limit(width, 7))))
	}

	if !r.ReferenceUsable {
		add(styles.WarningText.Bold(true).Render("No snapshot recorded for this world."))
		add(styles.MutedText.Render("It was last saved without modsnap, so missing content cannot be determined."))
		return strings.Join(lines, "\n")
	}

	versionStyle := styles.SuccessText
	if !d.EnvironmentVersionsEqual {
		versionStyle = styles.DangerText
	}
	add(styles.MutedText.Render("Game version: ") +
		versionStyle.Render(fmt.Sprintf("%s → %s", displayVersion(d.ReferenceEnvironmentVersion), d.CurrentEnvironmentVersion)))

	if d.Equal {
		add(styles.SuccessText.Render("✓ All recorded mods and content are present."))
		return strings.Join(lines, "\n")
	}

	add(styles.DangerText.Render("⚠ " + capitalize(d.Summary())))

	if len(d.MissingMods) > 0 {
		add("")
		add(styles.SectionTitle.Render(fmt.Sprintf("Missing mods (%d)", len(d.MissingMods))))
		for _, mod := range d.MissingMods {
			line := fmt.Sprintf("  %s %s", displayName(mod.Name, mod.ID), mod.Version)
			add(styles.DangerText.UnsetBold().Render(truncate(line, width)) +
				styles.FaintText.Render(idSuffix(mod.Name, mod.ID)))
		}
	}

	if len(d.UpdatedMods) > 0 {
		add("")
		add(styles.SectionTitle.Render(fmt.Sprintf("Updated mods (%d)", len(d.UpdatedMods))))
		for _, delta := range d.UpdatedMods {
			name := displayName(delta.Current.Name, delta.Current.ID)
			add("  " + styles.Text.Render(truncate(name, limit(width, 40))) + " " +
				styles.WarningText.Render(delta.Reference.Version+" → "+delta.Current.Version))
		}
	}

	if len(d.MissingRegistryEntries) > 0 {
		add("")
		add(styles.SectionTitle.Render(fmt.Sprintf("Missing content (%d entries, %d unmatched registries)",
			d.MissingContentCount, d.MissingRegistryCount)))
		for _, name := range d.RegistryNames() {
			entries := d.MissingRegistryEntries[name]
			if len(entries) == 0 {
				add("  " + styles.InfoText.Render(name) + styles.MutedText.Render(" not recorded in this world"))
				continue
			}
			add("  " + styles.InfoText.Render(name) + styles.MutedText.Render(fmt.Sprintf(" %d missing", len(entries))))
			shown := entries
			if r.MaxEntries > 0 && len(shown) > r.MaxEntries {
				shown = shown[:r.MaxEntries]
			}
			for _, entry := range shown {
				add("    " + styles.Text.Render(truncate(entry, limit(width, 4))))
			}
			if hidden := len(entries) - len(shown); hidden > 0 {
				add("    " + styles.FaintText.Render(fmt.Sprintf("… %d more", hidden)))
			}
		}
	}

	return strings.Join(lines, "\n")
}

func displayVersion(v string) string {
	if v == "" {
		return compare.UnknownVersion
	}
	return v
}

func displayName(name, id string) string {
	if strings.TrimSpace(name) == "" {
		return id
	}
	return name
}

func idSuffix(name, id string) string {
	if strings.TrimSpace(name) == "" || name == id {
		return ""
	}
	return " (" + id + ")"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// limit subtracts indent from width, keeping "no limit" as zero.
func limit(width, indent int) int {
	if width <= 0 {
		return 0
	}
	if width-indent < 8 {
		return 8
	}
	return width - indent
}
