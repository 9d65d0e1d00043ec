package snapshot

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Document is the raw nested key-value form of one persisted record.
type Document map[string]any

// Field names used by the persisted layout.
const (
	KeyEnvironmentVersion = "mcVersion"
	KeyVersion            = "version"
	KeyName               = "name"
)

// Decode converts the two persisted documents into a Snapshot. Either document
// may be nil or empty. Missing string fields decode to "". Any value of the
// wrong type is an error.
func Decode(mods, regs Document) (Snapshot, error) {
	s, problems := decode(mods, regs)
	if len(problems) > 0 {
		return Empty(), errors.Join(problems...)
	}
	return s, nil
}

// FromPersisted decodes the two documents field by field. A value of the
// wrong type decodes as its zero value ("" for strings, an empty list for a
// registry) and is logged as a warning; the rest of the snapshot is kept.
func FromPersisted(mods, regs Document, logger hclog.Logger) Snapshot {
	s, problems := decode(mods, regs)
	if len(problems) > 0 {
		if logger == nil {
			logger = hclog.NewNullLogger()
		}
		for _, problem := range problems {
			logger.Warn("malformed snapshot field, using empty value", "error", problem)
		}
	}
	return s
}

// decode is lenient: malformed values become zero values and are reported.
func decode(mods, regs Document) (Snapshot, []error) {
	s := Empty()
	var problems []error

	for id, raw := range mods {
		record, ok := asRecord(raw)
		if !ok {
			problems = append(problems, fmt.Errorf("mod %q: expected record, got %T", id, raw))
		}
		version, err := optionalString(record, KeyVersion)
		if err != nil {
			problems = append(problems, fmt.Errorf("mod %q: %w", id, err))
		}
		name, err := optionalString(record, KeyName)
		if err != nil {
			problems = append(problems, fmt.Errorf("mod %q: %w", id, err))
		}
		s.mods[id] = ModEntry{ID: id, Version: version, Name: name}
	}

	envVersion, err := optionalString(regs, KeyEnvironmentVersion)
	if err != nil {
		problems = append(problems, err)
	}
	s.environmentVersion = envVersion

	for name, raw := range regs {
		if name == KeyEnvironmentVersion {
			continue
		}
		entries, err := asStringList(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("registry %q: %w", name, err))
			entries = []string{}
		}
		s.registries[name] = entries
	}

	return s, problems
}

// ToPersistedMods encodes the mod mapping. The result is never nil.
func (s Snapshot) ToPersistedMods() Document {
	doc := make(Document, len(s.mods))
	for id, mod := range s.mods {
		doc[id] = map[string]any{
			KeyVersion: mod.Version,
			KeyName:    mod.Name,
		}
	}
	return doc
}

// ToPersistedRegistries encodes the registry mapping plus the environment
// version tag. The tag is written last, so a registry that happens to be named
// like the tag key is shadowed by it.
func (s Snapshot) ToPersistedRegistries() Document {
	doc := make(Document, len(s.registries)+1)
	for name, entries := range s.registries {
		doc[name] = cloneEntries(entries)
	}
	doc[KeyEnvironmentVersion] = s.environmentVersion
	return doc
}

func asRecord(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case Document:
		return v, true
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func optionalString(record map[string]any, key string) (string, error) {
	raw, ok := record[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %T", key, raw)
	}
	return value, nil
}

func asStringList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return cloneEntries(v), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry %d: expected string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected list, got %T", raw)
	}
}
