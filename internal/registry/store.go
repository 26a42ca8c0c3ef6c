package registry

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/paddock-dev/paddock/internal/errors"
	"github.com/paddock-dev/paddock/internal/logging"
)

// Store persists the registry document at a fixed path. Reads go through
// Load; every mutation goes through Update, which holds an advisory file
// lock for the read-modify-write window so independent paddock processes
// cannot interleave partial writes.
type Store struct {
	path string
}

// NewStore returns a store for the registry file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the registry file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the registry document. A missing file yields an empty
// registry. An unparseable file yields RegistryCorrupt; other filesystem
// failures yield RegistryIO.
func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.RegistryIO("load", err)
	}

	reg := &Registry{}
	if err := json.Unmarshal(data, reg); err != nil {
		return nil, errors.RegistryCorrupt(s.path, err)
	}
	return reg, nil
}

// Save writes the full document atomically: a temp file in the same
// directory is written first, then renamed over the target, so a crash
// mid-write never corrupts the existing file and concurrent readers never
// observe a half-written document.
func (s *Store) Save(reg *Registry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.RegistryIO("save", err)
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return errors.RegistryIO("save", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".registry-*.json")
	if err != nil {
		return errors.RegistryIO("save", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.RegistryIO("save", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.RegistryIO("save", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return errors.RegistryIO("save", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.RegistryIO("save", err)
	}
	return nil
}

// Update runs fn on the current registry and persists the result, holding
// an advisory lock on a sibling lock file for the whole window. When fn
// returns an error nothing is written.
func (s *Store) Update(fn func(*Registry) error) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.RegistryIO("lock", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.RegistryIO("lock", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.Warn("failed to release registry lock", "path", lock.Path(), "error", err)
		}
	}()

	reg, err := s.Load()
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	return s.Save(reg)
}
