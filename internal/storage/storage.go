// Package storage provides the string key-value stores presets are persisted in.
//
// Two backends are available: a JSON file holding a flat {key: value} object,
// and a SQLite table managed through gorm. Both are last-write-wins; neither
// locks across processes.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for storage operations.
var (
	ErrEmptyKey       = errors.New("storage key cannot be empty")
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrStoreRead      = errors.New("failed to read store")
	ErrStoreWrite     = errors.New("failed to write store")
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// KV is a minimal string key-value store.
// Get reports ok=false for a missing key without an error.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Open returns the backend named by backend rooted at path.
// An empty backend selects the file store.
func Open(backend, path string) (KV, error) {
	switch strings.ToLower(backend) {
	case "", BackendFile:
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownBackend, backend, BackendFile, BackendSQLite)
	}
}

// Memory is an in-process KV used by tests and dry runs.
type Memory map[string]string

// Get implements KV.
func (m Memory) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set implements KV.
func (m Memory) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m[key] = value
	return nil
}
