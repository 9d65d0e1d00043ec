// Package compare computes what was lost between a recorded snapshot and the
// environment that is about to load it.
package compare

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/five82/modsnap/internal/snapshot"
)

// UnknownVersion replaces an empty current environment version in a Diff.
const UnknownVersion = "?"

// ModDelta pairs the recorded and current entry of a mod whose version changed.
type ModDelta struct {
	Reference snapshot.ModEntry
	Current   snapshot.ModEntry
}

// Diff is the result of comparing a reference snapshot against a current one.
type Diff struct {
	// MissingMods are recorded mods absent from the current snapshot, sorted
	// by name.
	MissingMods []snapshot.ModEntry
	// UpdatedMods are mods present in both with a different version, sorted
	// by the current name.
	UpdatedMods []ModDelta
	// MissingRegistryEntries maps a registry name to the recorded entries it
	// lost. An empty slice means the registry could not be matched at all.
	MissingRegistryEntries map[string][]string

	MissingContentCount  int
	MissingRegistryCount int

	EnvironmentVersionsEqual    bool
	ReferenceEnvironmentVersion string
	CurrentEnvironmentVersion   string

	Equal bool
}

// Snapshots compares reference (what was recorded) against current (what is
// loaded now). Mods added since the reference was recorded are not reported.
func Snapshots(reference, current snapshot.Snapshot) Diff {
	diff := Diff{
		MissingMods:            []snapshot.ModEntry{},
		UpdatedMods:            []ModDelta{},
		MissingRegistryEntries: make(map[string][]string),
	}

	for _, id := range reference.ModIDs() {
		ref, _ := reference.Mod(id)
		cur, ok := current.Mod(id)
		if !ok {
			diff.MissingMods = append(diff.MissingMods, ref)
			continue
		}
		if !strings.EqualFold(ref.Version, cur.Version) {
			diff.UpdatedMods = append(diff.UpdatedMods, ModDelta{Reference: ref, Current: cur})
		}
	}

	for name, curEntries := range current.Registries() {
		refEntries, ok := reference.Registry(name)
		if !ok {
			diff.MissingRegistryEntries[name] = []string{}
			continue
		}
		if missing := subtract(refEntries, curEntries); len(missing) > 0 {
			diff.MissingRegistryEntries[name] = missing
		}
	}

	for _, missing := range diff.MissingRegistryEntries {
		if len(missing) == 0 {
			diff.MissingRegistryCount++
		} else {
			diff.MissingContentCount += len(missing)
		}
	}

	diff.EnvironmentVersionsEqual = strings.EqualFold(current.EnvironmentVersion(), reference.EnvironmentVersion())
	diff.ReferenceEnvironmentVersion = reference.EnvironmentVersion()
	diff.CurrentEnvironmentVersion = current.EnvironmentVersion()
	if diff.CurrentEnvironmentVersion == "" {
		diff.CurrentEnvironmentVersion = UnknownVersion
	}

	diff.Equal = len(diff.MissingMods) == 0 &&
		len(diff.MissingRegistryEntries) == 0 &&
		diff.EnvironmentVersionsEqual &&
		len(diff.UpdatedMods) == 0

	slices.SortStableFunc(diff.MissingMods, func(a, b snapshot.ModEntry) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	slices.SortStableFunc(diff.UpdatedMods, func(a, b ModDelta) int {
		return cmp.Or(cmp.Compare(a.Current.Name, b.Current.Name), cmp.Compare(a.Current.ID, b.Current.ID))
	})

	return diff
}

// RegistryNames returns the registries in MissingRegistryEntries in ascending
// order.
func (d Diff) RegistryNames() []string {
	names := make([]string, 0, len(d.MissingRegistryEntries))
	for name := range d.MissingRegistryEntries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Summary renders a one-line description of the diff.
func (d Diff) Summary() string {
	if d.Equal {
		return "no differences"
	}
	var parts []string
	if n := len(d.MissingMods); n > 0 {
		parts = append(parts, plural(n, "missing mod"))
	}
	if n := len(d.UpdatedMods); n > 0 {
		parts = append(parts, plural(n, "updated mod"))
	}
	if d.MissingContentCount > 0 {
		parts = append(parts, plural(d.MissingContentCount, "missing entry", "missing entries"))
	}
	if d.MissingRegistryCount > 0 {
		parts = append(parts, plural(d.MissingRegistryCount, "unmatched registry", "unmatched registries"))
	}
	if !d.EnvironmentVersionsEqual {
		parts = append(parts, fmt.Sprintf("version %s -> %s", d.ReferenceEnvironmentVersion, d.CurrentEnvironmentVersion))
	}
	return strings.Join(parts, ", ")
}

// subtract returns the entries of ref that do not occur anywhere in cur,
// keeping order and duplicates.
func subtract(ref, cur []string) []string {
	present := make(map[string]struct{}, len(cur))
	for _, entry := range cur {
		present[entry] = struct{}{}
	}
	var missing []string
	for _, entry := range ref {
		if _, ok := present[entry]; !ok {
			missing = append(missing, entry)
		}
	}
	return missing
}

func plural(n int, forms ...string) string {
	word := forms[0]
	if n != 1 {
		if len(forms) > 1 {
			word = forms[1]
		} else {
			word += "s"
		}
	}
	return fmt.Sprintf("%d %s", n, word)
}
