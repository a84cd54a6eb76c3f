// Package memory provides an in-memory storage engine, used for dry runs and
// tests.
package memory

import (
	"github.com/gear6io/fixturegen/storage"
	"github.com/gear6io/fixturegen/storage/filesystem"
	"github.com/go-git/go-billy/v5/memfs"
)

// NewMemoryStorage returns an empty in-memory engine. Contents live as long
// as the returned value.
func NewMemoryStorage() *filesystem.FileStorage {
	return filesystem.NewWithFS(memfs.New(), storage.MEMORY)
}
