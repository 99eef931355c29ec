// Package storage is the durable key-value layer under the editor. It
// translates filesystem failures into the typed errors the auto-save path
// branches on, and never drops a corrupt payload silently.
package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Driver is the raw read/write/delete surface. Values are opaque bytes;
// encoding and validation live one layer up.
type Driver interface {
	Write(key string, value []byte) error
	Read(key string) ([]byte, error)
	// Remove deletes a key. Removing an absent key is not an error.
	Remove(key string) error
	Keys() ([]string, error)
}

const recordExt = ".json"

// FileDriver stores one file per key under a directory, written atomically
// via temp file + rename.
type FileDriver struct {
	dir string
}

// NewFileDriver creates the store directory if needed and returns a driver
// over it. A directory that cannot be created or is not writable surfaces as
// ErrStorageUnavailable.
func NewFileDriver(dir string) (*FileDriver, error) {
	if dir == "" {
		return nil, ErrStorageUnavailable
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, classify(err)
	}
	return &FileDriver{dir: dir}, nil
}

// Dir returns the store directory.
func (d *FileDriver) Dir() string { return d.dir }

// Path returns the file backing a key. Exposed so the store watcher can
// watch the active-draft file for writes by other processes.
func (d *FileDriver) Path(key string) string {
	return filepath.Join(d.dir, key+recordExt)
}

// Write serializes nothing itself; it lands value on disk atomically.
func (d *FileDriver) Write(key string, value []byte) error {
	tmp, err := os.CreateTemp(d.dir, key+".tmp-*")
	if err != nil {
		return classify(err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return classify(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return classify(err)
	}
	if err := os.Rename(tmpPath, d.Path(key)); err != nil {
		_ = os.Remove(tmpPath)
		return classify(err)
	}
	return nil
}

// Read returns the stored bytes, or ErrNotFound for an absent key.
func (d *FileDriver) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(d.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, classify(err)
	}
	return data, nil
}

// Remove deletes the key's file. Idempotent.
func (d *FileDriver) Remove(key string) error {
	err := os.Remove(d.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return classify(err)
	}
	return nil
}

// Keys enumerates every stored key.
func (d *FileDriver) Keys() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, classify(err)
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, recordExt))
	}
	return keys, nil
}

// classify maps low-level filesystem failures onto the typed error taxonomy.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syscall.ENOSPC), errors.Is(err, syscall.EDQUOT):
		return errors.Join(ErrQuotaExceeded, err)
	case errors.Is(err, syscall.EROFS), errors.Is(err, fs.ErrPermission), errors.Is(err, fs.ErrNotExist):
		return errors.Join(ErrStorageUnavailable, err)
	default:
		return err
	}
}
