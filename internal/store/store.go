package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/five82/modsnap/internal/snapshot"
)

const (
	modsBaseName       = "modsnap-mods"
	registriesBaseName = "modsnap-registries"
)

// Store reads and writes the snapshot documents kept in a world directory.
type Store struct {
	dir    string
	format Format
	logger hclog.Logger
}

// New returns a Store rooted at dir. A leading ~ is expanded.
func New(dir string, format Format, logger hclog.Logger) (*Store, error) {
	resolved, err := expandPath(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve world dir: %w", err)
	}
	if format == "" {
		format = FormatTOML
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{dir: resolved, format: format, logger: logger.Named("store")}, nil
}

// Dir returns the resolved world directory.
func (s *Store) Dir() string {
	return s.dir
}

// Paths returns the mods and registries document paths.
func (s *Store) Paths() (mods, registries string) {
	ext := s.format.Ext()
	return filepath.Join(s.dir, modsBaseName+ext), filepath.Join(s.dir, registriesBaseName+ext)
}

// Exists reports whether at least one of the documents is present.
func (s *Store) Exists() bool {
	modsPath, regsPath := s.Paths()
	return fileExists(modsPath) || fileExists(regsPath)
}

// Load reads the persisted snapshot. It never fails: unreadable or malformed
// documents are logged and yield an empty snapshot, and a directory holding
// neither document yields a snapshot that is not usable.
func (s *Store) Load() snapshot.Snapshot {
	modsPath, regsPath := s.Paths()

	mods, modsExists, modsErr := s.readDocument(modsPath)
	regs, regsExists, regsErr := s.readDocument(regsPath)

	var loaded snapshot.Snapshot
	if err := errors.Join(modsErr, regsErr); err != nil {
		s.logger.Error("read snapshot failed, using empty snapshot", "dir", s.dir, "error", err)
		loaded = snapshot.Empty()
	} else {
		loaded = snapshot.FromPersisted(mods, regs, s.logger)
	}

	if !modsExists && !regsExists {
		loaded = loaded.WithUsable(false)
	}
	return loaded
}

// Save writes both documents, creating the directory as needed. Each document
// is replaced atomically.
func (s *Store) Save(snap snapshot.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create world dir: %w", err)
	}

	modsPath, regsPath := s.Paths()
	if err := s.writeDocument(modsPath, snap.ToPersistedMods()); err != nil {
		return fmt.Errorf("write mods: %w", err)
	}
	if err := s.writeDocument(regsPath, snap.ToPersistedRegistries()); err != nil {
		return fmt.Errorf("write registries: %w", err)
	}

	modCount, entryCount := snap.Len()
	s.logger.Debug("snapshot saved", "dir", s.dir, "mods", modCount, "entries", entryCount)
	return nil
}

func (s *Store) readDocument(path string) (snapshot.Document, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, true, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	doc, err := s.format.unmarshal(data)
	if err != nil {
		return nil, true, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return doc, true, nil
}

func (s *Store) writeDocument(path string, doc snapshot.Document) error {
	data, err := s.format.marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
