package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists every key of a namespace into a single JSON file.
type FileStore struct {
	filePath string
	blobs    map[string]storedBlob
	mu       sync.RWMutex
}

type storedBlob struct {
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFileStore opens (or creates) <dataDir>/<namespace>.json.
func NewFileStore(dataDir, namespace string) (*FileStore, error) {
	if dataDir == "" {
		dataDir = "data"
	}
	if namespace == "" {
		namespace = "store"
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	fs := &FileStore{
		filePath: filepath.Join(dataDir, namespace+".json"),
		blobs:    make(map[string]storedBlob),
	}

	if err := fs.load(); err != nil {
		return nil, fmt.Errorf("failed to load store file: %w", err)
	}

	return fs, nil
}

func (fs *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	blob, ok := fs.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(blob.Value))
	copy(out, blob.Value)
	return out, nil
}

func (fs *FileStore) Set(_ context.Context, key string, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	fs.blobs[key] = storedBlob{Value: stored, UpdatedAt: time.Now()}
	return fs.save()
}

func (fs *FileStore) Close() error {
	return nil
}

// load reads the store file; a missing file means an empty store
func (fs *FileStore) load() error {
	file, err := os.Open(fs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open store file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&fs.blobs); err != nil {
		return fmt.Errorf("failed to decode store data: %w", err)
	}
	return nil
}

// save writes to a temp file and renames it over the store file
func (fs *FileStore) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(fs.filePath), ".store-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(fs.blobs); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode store data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), fs.filePath)
}
