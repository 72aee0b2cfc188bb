// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sessionstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/spf13/afero"

	apperrors "lensfolio/cli/internal/errors"
	"lensfolio/cli/internal/session"
)

const recordFileMode = 0o600

// FileStore keeps the session record in a single file. Writes go to a temp
// file in the same directory and are renamed over the target.
type FileStore struct {
	mu   sync.RWMutex
	fs   afero.Fs
	path string
	key  []byte
}

// NewFileStore returns a store writing to path on fs. A non-nil key (32
// bytes) seals the record with AES-GCM.
func NewFileStore(fs afero.Fs, path string, key []byte) (*FileStore, error) {
	if path == "" {
		return nil, apperrors.New(apperrors.ConfigInvalid, "file store path is empty")
	}
	if key != nil && len(key) != 32 {
		return nil, apperrors.New(apperrors.ConfigInvalid, "seal key must be 32 bytes")
	}
	return &FileStore{fs: fs, path: path, key: key}, nil
}

// Path returns the record file path.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Save(ctx context.Context, s session.Session) error {
	data, err := encodeRecord(s)
	if err != nil {
		return err
	}
	if f.key != nil {
		if data, err = seal(data, f.key); err != nil {
			return unavailable("seal session record", err)
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.writeAtomic(data); err != nil {
		return unavailable("write session record", err)
	}
	return nil
}

func (f *FileStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	tmp, err := afero.TempFile(f.fs, dir, "."+filepath.Base(f.path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = f.fs.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := f.fs.Chmod(tmpPath, recordFileMode); err != nil {
		cleanup()
		return err
	}
	if err := f.fs.Rename(tmpPath, f.path); err != nil {
		cleanup()
		return err
	}
	return syncDir(f.fs, dir)
}

// syncDir flushes dir so a completed rename survives a crash. Only the OS
// filesystem has anything to flush; Windows cannot fsync a directory.
func syncDir(fs afero.Fs, dir string) error {
	if _, ok := fs.(*afero.OsFs); !ok || runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

func (f *FileStore) Load(ctx context.Context) (session.Session, bool, error) {
	f.mu.RLock()
	data, err := afero.ReadFile(f.fs, f.path)
	f.mu.RUnlock()
	if errors.Is(err, os.ErrNotExist) {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, unavailable("read session record", err)
	}
	if len(data) == 0 {
		return session.Session{}, false, apperrors.New(apperrors.StorageCorrupt, "session record is empty")
	}
	if f.key != nil {
		if data, err = unseal(data, f.key); err != nil {
			return session.Session{}, false, apperrors.Wrap(apperrors.StorageCorrupt, "unseal session record", err)
		}
	}
	return decodeRecord(data)
}

func (f *FileStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := f.fs.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return unavailable("remove session record", err)
	}
	return nil
}
