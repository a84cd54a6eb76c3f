// Package storage defines where fixtures are written: a FileSystem interface,
// the engine types that implement it, and a registry that resolves a
// destination string to an engine and an engine-relative path.
package storage

import (
	"context"
	"io"
	"strings"

	"github.com/gear6io/fixturegen/pkg/errors"
)

// Package-specific error codes
var (
	StorageEngineNotFound    = errors.MustNewCode("storage.engine_not_found")
	StorageUnsupportedEngine = errors.MustNewCode("storage.unsupported_engine")
	StorageInvalidPath       = errors.MustNewCode("storage.invalid_path")
	StorageParentMissing     = errors.MustNewCode("storage.parent_missing")
	StorageOpenFailed        = errors.MustNewCode("storage.open_failed")
	StorageWriteFailed       = errors.MustNewCode("storage.write_failed")
	StorageDirectoryFailed   = errors.MustNewCode("storage.directory_failed")
	StorageNotFound          = errors.MustNewCode("storage.not_found")
)

// EngineType represents the type of storage engine
type EngineType string

const (
	// FILESYSTEM represents local filesystem storage
	FILESYSTEM EngineType = "FILESYSTEM"
	// MEMORY represents in-memory storage
	MEMORY EngineType = "MEMORY"
	// S3 represents S3-compatible object storage
	S3 EngineType = "S3"
)

// String returns the string representation of the engine type
func (e EngineType) String() string {
	return string(e)
}

// IsValid checks if the engine type is valid
func (e EngineType) IsValid() bool {
	switch e {
	case FILESYSTEM, MEMORY, S3:
		return true
	default:
		return false
	}
}

// ParseEngineType parses a string into an EngineType
func ParseEngineType(s string) (EngineType, error) {
	engineType := EngineType(strings.ToUpper(s))
	if !engineType.IsValid() {
		return "", errors.New(StorageUnsupportedEngine, "invalid engine type", nil).AddContext("engine", s)
	}
	return engineType, nil
}

// ListValidEngineTypes returns a list of all valid engine types
func ListValidEngineTypes() []EngineType {
	return []EngineType{FILESYSTEM, MEMORY, S3}
}

// FileSystem is a place fixtures can be written to and read back from.
// Writes become visible when the writer is closed.
type FileSystem interface {
	OpenForRead(ctx context.Context, path string) (io.ReadCloser, error)
	OpenForWrite(ctx context.Context, path string) (io.WriteCloser, error)

	// MkdirAll creates dir and its parents where the engine has directories.
	MkdirAll(ctx context.Context, dir string) error
	Exists(ctx context.Context, path string) (bool, error)
	Remove(ctx context.Context, path string) error

	GetStorageType() EngineType
}

var schemes = map[string]EngineType{
	"s3://":   S3,
	"mem://":  MEMORY,
	"file://": FILESYSTEM,
}

// ParseDestination splits a destination into its engine and engine path.
// "s3://bucket/key" and "mem://a/b" select those engines; anything else is a
// local path.
func ParseDestination(dest string) (EngineType, string, error) {
	if dest == "" {
		return "", "", errors.New(StorageInvalidPath, "empty destination", nil)
	}
	for prefix, engine := range schemes {
		if strings.HasPrefix(dest, prefix) {
			path := strings.TrimPrefix(dest, prefix)
			if path == "" {
				return "", "", errors.New(StorageInvalidPath, "destination has no path", nil).AddContext("destination", dest)
			}
			return engine, path, nil
		}
	}
	return FILESYSTEM, dest, nil
}
