package statestore

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File persists each key as one JSON document in a state directory. Writes go
// through a temp file plus rename so a crash mid-write never corrupts the
// previous value.
type File struct {
	dir string
}

// NewFile builds a file-backed store rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(trimmed, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &File{dir: trimmed}, nil
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading state %q: %w", key, err)
	}
	return data, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("writing state %q: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("committing state %q: %w", key, err)
	}
	return nil
}

func (f *File) Delete(ctx context.Context, key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting state %q: %w", key, err)
	}
	return nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".json")
}

// Keys are caller-controlled (order numbers flow into them), so anything
// outside a conservative charset is hex-escaped to keep the filename safe.
func sanitizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteString("x" + hex.EncodeToString([]byte(string(r))))
		}
	}
	return b.String()
}
