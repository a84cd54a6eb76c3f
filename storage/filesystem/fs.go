// Package filesystem implements storage engines on top of go-billy: the
// local disk by default, or any billy.Filesystem such as an in-memory one.
package filesystem

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/gear6io/fixturegen/storage"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// FileStorage writes through a billy.Filesystem.
type FileStorage struct {
	fs         billy.Filesystem
	engineType storage.EngineType
}

// NewFileStorage returns the local disk engine. Relative paths resolve
// against the working directory.
func NewFileStorage() *FileStorage {
	return NewWithFS(osfs.New(""), storage.FILESYSTEM)
}

// NewWithFS wraps an arbitrary billy filesystem as an engine of type t.
func NewWithFS(fs billy.Filesystem, t storage.EngineType) *FileStorage {
	return &FileStorage{fs: fs, engineType: t}
}

// GetStorageType returns the storage type identifier
func (s *FileStorage) GetStorageType() storage.EngineType {
	return s.engineType
}

func (s *FileStorage) clean(p string) string {
	if s.engineType == storage.FILESYSTEM {
		return filepath.Clean(p)
	}
	return path.Clean(p)
}

func (s *FileStorage) dir(p string) string {
	if s.engineType == storage.FILESYSTEM {
		return filepath.Dir(p)
	}
	return path.Dir(p)
}

// OpenForRead opens a file for streaming read
func (s *FileStorage) OpenForRead(ctx context.Context, p string) (io.ReadCloser, error) {
	f, err := s.fs.Open(s.clean(p))
	if err != nil {
		code := storage.StorageOpenFailed
		if os.IsNotExist(err) {
			code = storage.StorageNotFound
		}
		return nil, errors.New(code, "failed to open file", err).AddContext("path", p)
	}
	return f, nil
}

// OpenForWrite creates or truncates a file. Unlike billy's Create, the parent
// directory must already exist.
func (s *FileStorage) OpenForWrite(ctx context.Context, p string) (io.WriteCloser, error) {
	p = s.clean(p)

	if parent := s.dir(p); parent != "." && parent != "/" {
		info, err := s.fs.Stat(parent)
		if err != nil || !info.IsDir() {
			return nil, errors.New(storage.StorageParentMissing, "parent directory does not exist", err).
				AddContext("path", p).
				AddContext("parent", parent)
		}
	}

	f, err := s.fs.Create(p)
	if err != nil {
		return nil, errors.New(storage.StorageOpenFailed, "failed to create file", err).AddContext("path", p)
	}
	return f, nil
}

// MkdirAll creates dir and any missing parents
func (s *FileStorage) MkdirAll(ctx context.Context, dir string) error {
	dir = s.clean(dir)
	if dir == "." || dir == "" {
		return nil
	}
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return errors.New(storage.StorageDirectoryFailed, "failed to create directory", err).AddContext("path", dir)
	}
	return nil
}

// Exists reports whether a file or directory exists at p
func (s *FileStorage) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.fs.Stat(s.clean(p))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.New(storage.StorageOpenFailed, "failed to stat file", err).AddContext("path", p)
}

// Remove deletes a file
func (s *FileStorage) Remove(ctx context.Context, p string) error {
	if err := s.fs.Remove(s.clean(p)); err != nil {
		code := storage.StorageWriteFailed
		if os.IsNotExist(err) {
			code = storage.StorageNotFound
		}
		return errors.New(code, "failed to remove file", err).AddContext("path", p)
	}
	return nil
}
