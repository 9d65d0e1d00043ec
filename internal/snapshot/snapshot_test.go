package snapshot

import (
	"reflect"
	"testing"
)

func TestEmpty_IsUsableAndHasNoData(t *testing.T) {
	s := Empty()
	if !s.Usable() {
		t.Fatalf("Usable() = false, want true")
	}
	if s.EnvironmentVersion() != "" {
		t.Fatalf("EnvironmentVersion() = %q, want empty", s.EnvironmentVersion())
	}
	mods, entries := s.Len()
	if mods != 0 || entries != 0 {
		t.Fatalf("Len() = (%d, %d), want (0, 0)", mods, entries)
	}
}

func TestNew_LaterDuplicateReplacesEarlier(t *testing.T) {
	s := New("1.14.4", []ModEntry{
		{ID: "fabric", Version: "0.3.0", Name: "Fabric API"},
		{ID: "fabric", Version: "0.4.0", Name: "Fabric API"},
	}, nil)

	mod, ok := s.Mod("fabric")
	if !ok {
		t.Fatalf("Mod(fabric) missing")
	}
	if mod.Version != "0.4.0" {
		t.Fatalf("Version = %q, want %q", mod.Version, "0.4.0")
	}
	if got := len(s.Mods()); got != 1 {
		t.Fatalf("len(Mods()) = %d, want 1", got)
	}
}

func TestNew_CopiesRegistryLists(t *testing.T) {
	items := []string{"minecraft:stone", "minecraft:dirt"}
	s := New("", nil, map[string][]string{"item": items})

	items[0] = "mutated"
	got, ok := s.Registry("item")
	if !ok {
		t.Fatalf("Registry(item) missing")
	}
	if got[0] != "minecraft:stone" {
		t.Fatalf("Registry(item)[0] = %q, want minecraft:stone", got[0])
	}

	// Accessor copies must not leak back either.
	got[1] = "mutated"
	again, _ := s.Registry("item")
	if again[1] != "minecraft:dirt" {
		t.Fatalf("Registry should return a copy; got %q", again[1])
	}
	all := s.Registries()
	all["item"][0] = "mutated"
	if first, _ := s.Registry("item"); first[0] != "minecraft:stone" {
		t.Fatalf("Registries should deep copy; got %q", first[0])
	}
}

func TestNew_KeepsDuplicateEntries(t *testing.T) {
	s := New("", nil, map[string][]string{"block": {"a", "a", "b"}})
	got, _ := s.Registry("block")
	if !reflect.DeepEqual(got, []string{"a", "a", "b"}) {
		t.Fatalf("Registry(block) = %v, want [a a b]", got)
	}
	_, entries := s.Len()
	if entries != 3 {
		t.Fatalf("entries = %d, want 3", entries)
	}
}

func TestSortedAccessors(t *testing.T) {
	s := New("", []ModEntry{{ID: "zeta"}, {ID: "alpha"}, {ID: "mid"}},
		map[string][]string{"item": nil, "block": nil})

	if got := s.ModIDs(); !reflect.DeepEqual(got, []string{"alpha", "mid", "zeta"}) {
		t.Fatalf("ModIDs() = %v, want [alpha mid zeta]", got)
	}
	if got := s.RegistryNames(); !reflect.DeepEqual(got, []string{"block", "item"}) {
		t.Fatalf("RegistryNames() = %v, want [block item]", got)
	}
}

func TestWithUsable_DoesNotMutateOriginal(t *testing.T) {
	s := New("1.15", []ModEntry{{ID: "a", Version: "1"}}, nil)
	off := s.WithUsable(false)

	if !s.Usable() {
		t.Fatalf("original Usable() = false, want true")
	}
	if off.Usable() {
		t.Fatalf("copy Usable() = true, want false")
	}
	if _, ok := off.Mod("a"); !ok {
		t.Fatalf("copy lost mod data")
	}
	if off.EnvironmentVersion() != "1.15" {
		t.Fatalf("copy EnvironmentVersion() = %q, want 1.15", off.EnvironmentVersion())
	}
}
