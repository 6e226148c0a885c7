package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alnah/go-pandoc-cmd/internal/fileutil"
)

const fileStorePerm = 0o600

// FileStore keeps every key in one JSON object on disk.
// Each Set rewrites the whole file through a temp file and rename.
// Unparseable contents read as an empty store.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path. The file is
// created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get implements KV.
func (s *FileStore) Get(key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	entries, err := s.readAll()
	if err != nil {
		return "", false, err
	}
	v, ok := entries[key]
	return v, ok, nil
}

// Set implements KV.
func (s *FileStore) Set(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	entries, err := s.readAll()
	if err != nil {
		return err
	}
	entries[key] = value

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, fileStorePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreWrite, err)
	}
	return nil
}

func (s *FileStore) readAll() (map[string]string, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 -- store path comes from config
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreRead, err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	// A file that does not parse reads as empty and is replaced on the next Set.
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return map[string]string{}, nil
	}
	return entries, nil
}
