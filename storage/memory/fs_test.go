package memory

import (
	"context"
	"io"
	"testing"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/gear6io/fixturegen/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryStorage()
	assert.Equal(t, storage.MEMORY, fs.GetStorageType())

	require.NoError(t, fs.MkdirAll(ctx, "data"))

	w, err := fs.OpenForWrite(ctx, "data/test.xlsx")
	require.NoError(t, err)
	_, err = w.Write([]byte("PK"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ok, err := fs.Exists(ctx, "data/test.xlsx")
	require.NoError(t, err)
	assert.True(t, ok)

	r, err := fs.OpenForRead(ctx, "data/test.xlsx")
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "PK", string(data))
}

func TestMemoryStorageParentMissing(t *testing.T) {
	_, err := NewMemoryStorage().OpenForWrite(context.Background(), "nowhere/out.avro")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, storage.StorageParentMissing))
}

func TestMemoryStorageTopLevelFile(t *testing.T) {
	ctx := context.Background()
	fs := NewMemoryStorage()

	w, err := fs.OpenForWrite(ctx, "out.avro")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ok, err := fs.Exists(ctx, "out.avro")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStorageInstancesAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryStorage()
	b := NewMemoryStorage()

	w, err := a.OpenForWrite(ctx, "x")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ok, err := b.Exists(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)
}
