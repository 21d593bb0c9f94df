package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileConfig holds file store configuration.
type FileConfig struct {
	// Path is the location of the state file.
	Path string `env:"AUTH_STATE_FILE,required"`
}

// File persists session snapshots to a JSON file on disk, the desktop
// equivalent of browser local storage. The file maps namespace names to
// snapshots so unrelated state can share it.
type File struct {
	path      string
	namespace string

	mu sync.Mutex
}

// FileOption configures a File store.
type FileOption func(*File)

// WithNamespace overrides the storage entry name. Defaults to
// DefaultNamespace.
func WithNamespace(namespace string) FileOption {
	return func(f *File) {
		if namespace != "" {
			f.namespace = namespace
		}
	}
}

// NewFile creates a file-backed snapshot store at cfg.Path. The parent
// directory is created if missing.
func NewFile(cfg FileConfig, opts ...FileOption) (*File, error) {
	if cfg.Path == "" {
		return nil, ErrMissingPath
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	f := &File{
		path:      cfg.Path,
		namespace: DefaultNamespace,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Load implements Store.
func (f *File) Load(ctx context.Context) (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return Snapshot{}, err
	}

	raw, ok := entries[f.namespace]
	if !ok {
		return Snapshot{}, ErrNotFound
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save implements Store.
func (f *File) Save(ctx context.Context, snap Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	entries[f.namespace] = raw

	return f.write(entries)
}

// Clear implements Store.
func (f *File) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.read()
	if err != nil {
		return err
	}

	if _, ok := entries[f.namespace]; !ok {
		return nil
	}
	delete(entries, f.namespace)

	return f.write(entries)
}

// read loads the namespace map from disk. A missing file yields an empty map.
func (f *File) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}

	entries := make(map[string]json.RawMessage)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode state file: %w", err)
		}
	}
	return entries, nil
}

// write replaces the state file atomically via a temp file and rename so a
// crash mid-write never leaves a truncated file behind.
func (f *File) write(entries map[string]json.RawMessage) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode state file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".authstate-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod state file: %w", err)
	}

	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
