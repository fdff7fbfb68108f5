package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/nikolayk812/storefront/internal/port"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// fileKV is the on-device store: every entry lives in one JSON object that is
// rewritten through a temp file and rename after each mutation.
type fileKV struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

func NewFileKV(path string) (port.KeyValueStore, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}

	entries, err := readEntries(path)
	if err != nil {
		return nil, unavailable("readEntries", err)
	}

	return &fileKV{
		path:    path,
		entries: entries,
	}, nil
}

func (f *fileKV) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.entries[key]
	return value, ok, nil
}

func (f *fileKV) Set(_ context.Context, key string, value string) error {
	if key == "" {
		return errEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next := maps.Clone(f.entries)
	next[key] = value

	if err := writeEntries(f.path, next); err != nil {
		return unavailable("writeEntries", err)
	}

	f.entries = next
	return nil
}

func (f *fileKV) Remove(_ context.Context, key string) error {
	if key == "" {
		return errEmptyKey
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[key]; !ok {
		return nil
	}

	next := maps.Clone(f.entries)
	delete(next, key)

	if err := writeEntries(f.path, next); err != nil {
		return unavailable("writeEntries", err)
	}

	f.entries = next
	return nil
}

func readEntries(path string) (map[string]string, error) {
	entries := make(map[string]string)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}
	if len(data) == 0 {
		return entries, nil
	}

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("json.Unmarshal[%s]: %w", path, err)
	}

	return entries, nil
}

func writeEntries(path string, entries map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	temp := path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	if err := os.Rename(temp, path); err != nil {
		return fmt.Errorf("os.Rename: %w", err)
	}

	return nil
}
