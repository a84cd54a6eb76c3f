package storage

import (
	"context"
	"io"
	"testing"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct{ t EngineType }

func (f fakeEngine) OpenForRead(context.Context, string) (io.ReadCloser, error)  { return nil, nil }
func (f fakeEngine) OpenForWrite(context.Context, string) (io.WriteCloser, error) { return nil, nil }
func (f fakeEngine) MkdirAll(context.Context, string) error                       { return nil }
func (f fakeEngine) Exists(context.Context, string) (bool, error)                 { return false, nil }
func (f fakeEngine) Remove(context.Context, string) error                         { return nil }
func (f fakeEngine) GetStorageType() EngineType                                   { return f.t }

func TestParseEngineType(t *testing.T) {
	for _, s := range []string{"filesystem", "MEMORY", "s3"} {
		_, err := ParseEngineType(s)
		assert.NoError(t, err, s)
	}

	_, err := ParseEngineType("gcs")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, StorageUnsupportedEngine))
}

func TestParseDestination(t *testing.T) {
	tests := []struct {
		dest   string
		engine EngineType
		path   string
	}{
		{"out.avro", FILESYSTEM, "out.avro"},
		{"data/test.xlsx", FILESYSTEM, "data/test.xlsx"},
		{"/tmp/x.parquet", FILESYSTEM, "/tmp/x.parquet"},
		{"file:///tmp/x.parquet", FILESYSTEM, "/tmp/x.parquet"},
		{"s3://bucket/key.avro", S3, "bucket/key.avro"},
		{"mem://data/test.xlsx", MEMORY, "data/test.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.dest, func(t *testing.T) {
			engine, path, err := ParseDestination(tt.dest)
			require.NoError(t, err)
			assert.Equal(t, tt.engine, engine)
			assert.Equal(t, tt.path, path)
		})
	}

	for _, bad := range []string{"", "s3://", "mem://"} {
		_, _, err := ParseDestination(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.HasCode(err, StorageInvalidPath))
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewStorageEngineRegistry(zerolog.Nop())
	r.RegisterEngine(fakeEngine{FILESYSTEM})
	r.RegisterEngine(fakeEngine{MEMORY})

	assert.Equal(t, []EngineType{FILESYSTEM, MEMORY}, r.ListEngines())
	assert.True(t, r.EngineExists(MEMORY))
	assert.False(t, r.EngineExists(S3))

	engine, path, err := r.Resolve("mem://a/b")
	require.NoError(t, err)
	assert.Equal(t, MEMORY, engine.GetStorageType())
	assert.Equal(t, "a/b", path)

	_, _, err = r.Resolve("s3://bucket/key")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, StorageEngineNotFound))
	assert.Equal(t, "s3://bucket/key", errors.GetContext(err)["destination"])
}
