package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// File persists the whole keyspace as a single JSON document, rewritten on
// every mutation. Suited for local single-user deployments.
type File struct {
	mu    sync.Mutex
	path  string
	items map[string]map[string]json.RawMessage
}

func NewFile(path string) (*File, error) {
	f := &File{
		path:  path,
		items: make(map[string]map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &f.items); err != nil {
			return nil, fmt.Errorf("parse store file: %w", err)
		}
	}
	return f, nil
}

func (f *File) Get(_ context.Context, userID, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.items[userID][key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (f *File) Put(_ context.Context, userID, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.items[userID] == nil {
		f.items[userID] = make(map[string]json.RawMessage)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	f.items[userID][key] = stored
	return f.persist()
}

func (f *File) Delete(_ context.Context, userID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.items[userID][key]; !ok {
		return ErrNotFound
	}
	delete(f.items[userID], key)
	return f.persist()
}

func (f *File) QueryPrefix(_ context.Context, userID, prefix string) ([][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0)
	for key := range f.items[userID] {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	values := make([][]byte, 0, len(keys))
	for _, key := range keys {
		value := f.items[userID][key]
		out := make([]byte, len(value))
		copy(out, value)
		values = append(values, out)
	}
	return values, nil
}

func (f *File) Close() error {
	return nil
}

// persist writes the document through a temp file and rename so a crash
// mid-write never truncates the store. Caller holds f.mu.
func (f *File) persist() error {
	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}

	raw, err := json.Marshal(f.items)
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
