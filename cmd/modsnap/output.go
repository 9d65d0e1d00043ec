package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/five82/modsnap/internal/compare"
	"github.com/five82/modsnap/internal/snapshot"
)

type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

func parseFormat(value string) (outputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text":
		return formatText, nil
	case "json":
		return formatJSON, nil
	case "yaml", "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", value)
	}
}

// writeStructured encodes data as indented JSON or YAML.
func writeStructured(w io.Writer, format outputFormat, data any) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}

type modView struct {
	ID      string `json:"id" yaml:"id"`
	Version string `json:"version" yaml:"version"`
	Name    string `json:"name" yaml:"name"`
}

type updateView struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// checkReport is the structured form of a comparison.
type checkReport struct {
	World                    string              `json:"world" yaml:"world"`
	ReferenceUsable          bool                `json:"referenceUsable" yaml:"referenceUsable"`
	Equal                    bool                `json:"equal" yaml:"equal"`
	Summary                  string              `json:"summary" yaml:"summary"`
	ReferenceVersion         string              `json:"referenceVersion" yaml:"referenceVersion"`
	CurrentVersion           string              `json:"currentVersion" yaml:"currentVersion"`
	EnvironmentVersionsEqual bool                `json:"environmentVersionsEqual" yaml:"environmentVersionsEqual"`
	MissingMods              []modView           `json:"missingMods" yaml:"missingMods"`
	UpdatedMods              []updateView        `json:"updatedMods" yaml:"updatedMods"`
	MissingRegistryEntries   map[string][]string `json:"missingRegistryEntries" yaml:"missingRegistryEntries"`
	MissingContentCount      int                 `json:"missingContentCount" yaml:"missingContentCount"`
	MissingRegistryCount     int                 `json:"missingRegistryCount" yaml:"missingRegistryCount"`
}

func newCheckReport(world string, usable bool, d compare.Diff) checkReport {
	r := checkReport{
		World:                    world,
		ReferenceUsable:          usable,
		Equal:                    d.Equal,
		Summary:                  d.Summary(),
		ReferenceVersion:         d.ReferenceEnvironmentVersion,
		CurrentVersion:           d.CurrentEnvironmentVersion,
		EnvironmentVersionsEqual: d.EnvironmentVersionsEqual,
		MissingMods:              make([]modView, 0, len(d.MissingMods)),
		UpdatedMods:              make([]updateView, 0, len(d.UpdatedMods)),
		MissingRegistryEntries:   make(map[string][]string, len(d.MissingRegistryEntries)),
		MissingContentCount:      d.MissingContentCount,
		MissingRegistryCount:     d.MissingRegistryCount,
	}
	for _, m := range d.MissingMods {
		r.MissingMods = append(r.MissingMods, modView{ID: m.ID, Version: m.Version, Name: m.Name})
	}
	for _, u := range d.UpdatedMods {
		r.UpdatedMods = append(r.UpdatedMods, updateView{
			ID:   u.Current.ID,
			Name: u.Current.Name,
			From: u.Reference.Version,
			To:   u.Current.Version,
		})
	}
	for name, entries := range d.MissingRegistryEntries {
		r.MissingRegistryEntries[name] = append([]string{}, entries...)
	}
	return r
}

// snapshotView is the structured form of a recorded snapshot.
type snapshotView struct {
	EnvironmentVersion string              `json:"mcVersion" yaml:"mcVersion"`
	Mods               []modView           `json:"mods" yaml:"mods"`
	Registries         map[string][]string `json:"registries" yaml:"registries"`
}

func newSnapshotView(s snapshot.Snapshot) snapshotView {
	v := snapshotView{
		EnvironmentVersion: s.EnvironmentVersion(),
		Mods:               make([]modView, 0),
		Registries:         s.Registries(),
	}
	for _, id := range s.ModIDs() {
		m, _ := s.Mod(id)
		v.Mods = append(v.Mods, modView{ID: m.ID, Version: m.Version, Name: m.Name})
	}
	return v
}

func writeSnapshotText(w io.Writer, s snapshot.Snapshot) {
	mods, entries := s.Len()
	fmt.Fprintf(w, "Game version: %s\n", displayVersion(s.EnvironmentVersion()))
	fmt.Fprintf(w, "Mods: %d   Registries: %d   Entries: %d\n\n", mods, len(s.RegistryNames()), entries)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVERSION\tNAME")
	for _, id := range s.ModIDs() {
		m, _ := s.Mod(id)
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Version, m.Name)
	}
	_ = tw.Flush()

	if names := s.RegistryNames(); len(names) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "REGISTRY\tENTRIES")
		for _, name := range names {
			regEntries, _ := s.Registry(name)
			fmt.Fprintf(tw, "%s\t%d\n", name, len(regEntries))
		}
		_ = tw.Flush()
	}
}
