package prompt

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository keeps all overrides in memory and rewrites the whole
// JSON document on every mutation. A file that exists but cannot be
// parsed is a constructor error: the caller must not start with a
// half-read store.
type FileRepository struct {
	path string
	mu   sync.Mutex
	data map[string]string
}

func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	// Touch file if not exists
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("touch file: %w", err)
	}
	_ = f.Close()
	r := &FileRepository{path: path, data: make(map[string]string)}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepository) Get(chatID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[chatID]
	return v, ok
}

func (r *FileRepository) Set(chatID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[chatID] = text
	return r.saveUnlocked()
}

func (r *FileRepository) Clear(chatID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[chatID]; !ok {
		return false, nil
	}
	delete(r.data, chatID)
	return true, r.saveUnlocked()
}

func (r *FileRepository) load() error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	dec := json.NewDecoder(f)
	if err := dec.Decode(&r.data); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("parse %s: %w", r.path, err)
	}
	return nil
}

func (r *FileRepository) saveUnlocked() error {
	f, err := os.OpenFile(r.path, os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open write: %w", err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r.data)
}
