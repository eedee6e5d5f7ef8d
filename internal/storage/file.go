package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileKV persists each key as a file under a data directory. Writes go
// through a temp file and rename so a crash never leaves a torn blob.
type FileKV struct {
	dir   string
	quota int64
	mu    sync.Mutex
}

// NewFileKV creates the data directory if needed. A quota of zero means
// DefaultQuota.
func NewFileKV(dir string, quota int64) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if quota <= 0 {
		quota = DefaultQuota
	}
	return &FileKV{dir: dir, quota: quota}, nil
}

// Get reads a key's blob, nil if the key has never been set.
func (f *FileKV) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Set replaces a key's blob atomically.
func (f *FileKV) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit %s: %w", key, err)
	}
	return nil
}

// BytesInUse sums the stored blob sizes.
func (f *FileKV) BytesInUse() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return 0, fmt.Errorf("scan data dir: %w", err)
	}
	var total int64
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

// Quota reports the configured capacity.
func (f *FileKV) Quota() int64 {
	return f.quota
}

func (f *FileKV) path(key string) string {
	// Keys are internal constants, but keep them filesystem-safe anyway.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(f.dir, safe+".json")
}
