package snapshot

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func sampleSnapshot() Snapshot {
	return New("1.14.4",
		[]ModEntry{
			{ID: "fabric", Version: "0.3.0+build.200", Name: "Fabric API"},
			{ID: "techreborn", Version: "3.0.0", Name: "Tech Reborn"},
		},
		map[string][]string{
			"minecraft:item":  {"minecraft:stone", "techreborn:copper_ingot"},
			"minecraft:block": {"minecraft:stone"},
			"minecraft:fluid": {},
		})
}

func TestRoundTrip_PreservesMappings(t *testing.T) {
	s := sampleSnapshot()

	got, err := Decode(s.ToPersistedMods(), s.ToPersistedRegistries())
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !reflect.DeepEqual(got.Mods(), s.Mods()) {
		t.Fatalf("Mods() = %#v, want %#v", got.Mods(), s.Mods())
	}
	if !reflect.DeepEqual(got.Registries(), s.Registries()) {
		t.Fatalf("Registries() = %#v, want %#v", got.Registries(), s.Registries())
	}
	if got.EnvironmentVersion() != s.EnvironmentVersion() {
		t.Fatalf("EnvironmentVersion() = %q, want %q", got.EnvironmentVersion(), s.EnvironmentVersion())
	}
}

func TestToPersisted_EmptyIsNeverNil(t *testing.T) {
	s := Empty()

	mods := s.ToPersistedMods()
	if mods == nil || len(mods) != 0 {
		t.Fatalf("ToPersistedMods() = %#v, want empty non-nil document", mods)
	}
	regs := s.ToPersistedRegistries()
	if regs == nil {
		t.Fatalf("ToPersistedRegistries() = nil, want document")
	}
	if v, ok := regs[KeyEnvironmentVersion]; !ok || v != "" {
		t.Fatalf("mcVersion = %#v, want empty string", v)
	}
	if len(regs) != 1 {
		t.Fatalf("len(registries doc) = %d, want 1", len(regs))
	}
}

func TestToPersistedMods_Layout(t *testing.T) {
	doc := sampleSnapshot().ToPersistedMods()
	record, ok := doc["fabric"].(map[string]any)
	if !ok {
		t.Fatalf("doc[fabric] = %T, want map[string]any", doc["fabric"])
	}
	if record[KeyVersion] != "0.3.0+build.200" || record[KeyName] != "Fabric API" {
		t.Fatalf("doc[fabric] = %#v", record)
	}
}

func TestDecode_CodecShapes(t *testing.T) {
	// Shapes produced by the toml and yaml decoders.
	mods := Document{
		"modmenu": map[string]any{"version": "1.7.6", "name": "Mod Menu"},
	}
	regs := Document{
		"mcVersion": "1.14.4",
		"item":      []any{"a", "b", "a"},
	}

	s, err := Decode(mods, regs)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	mod, ok := s.Mod("modmenu")
	if !ok || mod.ID != "modmenu" || mod.Version != "1.7.6" || mod.Name != "Mod Menu" {
		t.Fatalf("Mod(modmenu) = %#v, %v", mod, ok)
	}
	items, _ := s.Registry("item")
	if !reflect.DeepEqual(items, []string{"a", "b", "a"}) {
		t.Fatalf("Registry(item) = %v, want [a b a]", items)
	}
	if _, ok := s.Registry(KeyEnvironmentVersion); ok {
		t.Fatalf("mcVersion must not be decoded as a registry")
	}
}

func TestDecode_MissingFieldsDefaultToEmpty(t *testing.T) {
	s, err := Decode(Document{"bare": map[string]any{}}, Document{"item": []any{}})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	mod, _ := s.Mod("bare")
	if mod.Version != "" || mod.Name != "" {
		t.Fatalf("Mod(bare) = %#v, want empty version and name", mod)
	}
	if s.EnvironmentVersion() != "" {
		t.Fatalf("EnvironmentVersion() = %q, want empty", s.EnvironmentVersion())
	}
}

func TestDecode_NilDocuments(t *testing.T) {
	s, err := Decode(nil, nil)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !s.Usable() {
		t.Fatalf("Usable() = false, want true")
	}
	if mods, entries := s.Len(); mods != 0 || entries != 0 {
		t.Fatalf("Len() = (%d, %d), want (0, 0)", mods, entries)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		mods Document
		regs Document
		want string
	}{
		{"mod not a record", Document{"a": "1.0"}, nil, `mod "a"`},
		{"mod version not string", Document{"a": map[string]any{"version": int64(1)}}, nil, `field "version"`},
		{"registry not a list", nil, Document{"item": "stone"}, `registry "item"`},
		{"registry entry not string", nil, Document{"item": []any{"a", int64(2)}}, "entry 1"},
		{"mcVersion not string", nil, Document{"mcVersion": []any{}}, `field "mcVersion"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.mods, tt.regs)
			if err == nil {
				t.Fatalf("Decode returned nil error, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Decode error = %q, want it to mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestFromPersisted_KeepsWellFormedFields(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug})

	mods := Document{
		"good":   map[string]any{"version": "1", "name": "Good"},
		"badver": map[string]any{"version": int64(3), "name": "Bad Version"},
		"flat":   "not a record",
	}
	regs := Document{
		"mcVersion":      "1.14.4",
		"minecraft:item": []any{"minecraft:stone"},
		"broken":         42,
		"mixed":          []any{"a", nil},
	}
	s := FromPersisted(mods, regs, logger)

	if !s.Usable() {
		t.Fatalf("Usable() = false, want true")
	}
	if got := s.EnvironmentVersion(); got != "1.14.4" {
		t.Fatalf("EnvironmentVersion() = %q, want 1.14.4", got)
	}
	if m, _ := s.Mod("good"); m.Version != "1" || m.Name != "Good" {
		t.Fatalf("good = %#v, want it intact", m)
	}
	if m, ok := s.Mod("badver"); !ok || m.Version != "" || m.Name != "Bad Version" {
		t.Fatalf("badver = %#v, %v; want empty version and name kept", m, ok)
	}
	if m, ok := s.Mod("flat"); !ok || m.Version != "" || m.Name != "" {
		t.Fatalf("flat = %#v, %v; want empty entry", m, ok)
	}
	if entries, _ := s.Registry("minecraft:item"); len(entries) != 1 {
		t.Fatalf("minecraft:item = %v, want one entry", entries)
	}
	for _, name := range []string{"broken", "mixed"} {
		entries, ok := s.Registry(name)
		if !ok || len(entries) != 0 {
			t.Fatalf("%s = %v, %v; want present and empty", name, entries, ok)
		}
	}

	out := buf.String()
	if got := strings.Count(out, "malformed snapshot field"); got != 4 {
		t.Fatalf("warnings = %d, want 4\n%s", got, out)
	}
	if !strings.Contains(out, "[WARN]") {
		t.Fatalf("log output = %q, want warn level", out)
	}
}

func TestFromPersisted_NilLogger(t *testing.T) {
	s := FromPersisted(Document{"a": 1}, Document{"mcVersion": 7}, nil)
	if m, ok := s.Mod("a"); !ok || m.Version != "" {
		t.Fatalf("a = %#v, %v; want empty entry", m, ok)
	}
	if got := s.EnvironmentVersion(); got != "" {
		t.Fatalf("EnvironmentVersion() = %q, want empty", got)
	}
}
