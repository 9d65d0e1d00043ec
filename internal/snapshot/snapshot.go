package snapshot

import (
	"maps"
	"slices"
)

// ModEntry describes one installed mod. ID is the identity.
type ModEntry struct {
	ID      string
	Version string
	Name    string
}

// Snapshot records the mods and registry contents present at a point in time.
// It is read-only after construction; accessors return copies.
type Snapshot struct {
	mods               map[string]ModEntry
	registries         map[string][]string
	environmentVersion string
	usable             bool
}

// Empty returns a usable snapshot with no mods and no registries.
func Empty() Snapshot {
	return Snapshot{
		mods:       make(map[string]ModEntry),
		registries: make(map[string][]string),
		usable:     true,
	}
}

// New builds a snapshot from live data. A later mod with the same ID replaces
// an earlier one.
func New(envVersion string, mods []ModEntry, registries map[string][]string) Snapshot {
	s := Empty()
	s.environmentVersion = envVersion
	for _, mod := range mods {
		s.mods[mod.ID] = mod
	}
	for name, entries := range registries {
		s.registries[name] = cloneEntries(entries)
	}
	return s
}

// WithUsable returns a copy of s with the usable flag replaced.
func (s Snapshot) WithUsable(usable bool) Snapshot {
	out := s.clone()
	out.usable = usable
	return out
}

// Usable reports whether the snapshot holds genuine prior data. A snapshot
// loaded from a save that never recorded one is not usable.
func (s Snapshot) Usable() bool {
	return s.usable
}

// EnvironmentVersion returns the host version tag, or "" when unknown.
func (s Snapshot) EnvironmentVersion() string {
	return s.environmentVersion
}

// Mods returns a copy of the mod mapping.
func (s Snapshot) Mods() map[string]ModEntry {
	out := make(map[string]ModEntry, len(s.mods))
	maps.Copy(out, s.mods)
	return out
}

// Mod looks up a single mod by ID.
func (s Snapshot) Mod(id string) (ModEntry, bool) {
	mod, ok := s.mods[id]
	return mod, ok
}

// ModIDs returns the mod IDs in ascending order.
func (s Snapshot) ModIDs() []string {
	return slices.Sorted(maps.Keys(s.mods))
}

// Registries returns a deep copy of the registry mapping.
func (s Snapshot) Registries() map[string][]string {
	out := make(map[string][]string, len(s.registries))
	for name, entries := range s.registries {
		out[name] = cloneEntries(entries)
	}
	return out
}

// Registry returns a copy of one registry's entries.
func (s Snapshot) Registry(name string) ([]string, bool) {
	entries, ok := s.registries[name]
	if !ok {
		return nil, false
	}
	return cloneEntries(entries), true
}

// RegistryNames returns the registry names in ascending order.
func (s Snapshot) RegistryNames() []string {
	return slices.Sorted(maps.Keys(s.registries))
}

// Len returns the number of mods and the total number of registry entries.
func (s Snapshot) Len() (mods, entries int) {
	for _, list := range s.registries {
		entries += len(list)
	}
	return len(s.mods), entries
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		mods:               s.Mods(),
		registries:         s.Registries(),
		environmentVersion: s.environmentVersion,
		usable:             s.usable,
	}
}

func cloneEntries(entries []string) []string {
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}
