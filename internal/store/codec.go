package store

import (
	"errors"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/modsnap/internal/snapshot"
)

// Format selects the on-disk encoding of the snapshot documents.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown snapshot format")

// ParseFormat maps a config value to a Format. Empty selects TOML.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// Ext returns the file extension used for the format.
func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".toml"
}

func (f Format) marshal(doc snapshot.Document) ([]byte, error) {
	if f == FormatYAML {
		return yaml.Marshal(map[string]any(doc))
	}
	return toml.Marshal(map[string]any(doc))
}

func (f Format) unmarshal(data []byte) (snapshot.Document, error) {
	var raw map[string]any
	var err error
	if f == FormatYAML {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = toml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, err
	}
	return snapshot.Document(raw), nil
}
