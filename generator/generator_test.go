package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/formats"
	"github.com/gear6io/fixturegen/formats/avro"
	"github.com/gear6io/fixturegen/formats/parquet"
	"github.com/gear6io/fixturegen/formats/xlsx"
	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/gear6io/fixturegen/storage"
	"github.com/gear6io/fixturegen/storage/filesystem"
	"github.com/gear6io/fixturegen/storage/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngines(t *testing.T) *storage.StorageEngineRegistry {
	t.Helper()
	engines := storage.NewStorageEngineRegistry(zerolog.Nop())
	engines.RegisterEngine(filesystem.NewFileStorage())
	engines.RegisterEngine(memory.NewMemoryStorage())
	return engines
}

func fullRegistry() *formats.Registry {
	return formats.NewRegistry(
		avro.NewCodec(),
		xlsx.NewCodec(),
		parquet.NewCodec(parquet.DefaultWriterConfig()),
	)
}

func TestGenerateAvroFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.avro")
	g := New(fullRegistry(), newEngines(t))

	res, err := g.Generate(context.Background(), DefaultRequest(formats.Avro, dest))
	require.NoError(t, err)
	assert.False(t, res.Placeholder)
	assert.Equal(t, 2, res.Records)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	records, err := avro.NewCodec().Decode(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, fixtures.Record{"name": "John Doe", "age": int64(25), "email": "john@example.com"}, records[0])
	assert.Equal(t, fixtures.Record{"name": "Jane Smith", "age": int64(30), "email": "jane@example.com"}, records[1])
}

func TestGenerateExcelCreatesParent(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "data", "test.xlsx")
	g := New(fullRegistry(), newEngines(t))

	res, err := g.Generate(context.Background(), DefaultRequest(formats.XLSX, dest))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Records)

	f, err := os.Open(dest)
	require.NoError(t, err)
	defer f.Close()

	sheet, err := xlsx.ReadFirstSheet(f)
	require.NoError(t, err)
	assert.Equal(t, "TestData", sheet.Name)
	require.Len(t, sheet.Rows, 5)
	assert.Equal(t, []string{"name", "age", "department", "salary"}, sheet.Rows[0])
	assert.Equal(t, []string{"Bob", "35", "Marketing", "70000"}, sheet.Rows[4])
}

func TestGenerateWithoutParentFails(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "out.parquet")
	g := New(fullRegistry(), newEngines(t))

	_, err := g.Generate(context.Background(), DefaultRequest(formats.Parquet, dest))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, storage.StorageParentMissing))
}

func TestGenerateParquetInMemory(t *testing.T) {
	ctx := context.Background()
	g := New(fullRegistry(), newEngines(t))

	_, err := g.Generate(ctx, DefaultRequest(formats.Parquet, "mem://out.parquet"))
	require.NoError(t, err)

	inspected, err := g.Inspect(ctx, "mem://out.parquet")
	require.NoError(t, err)
	assert.Equal(t, formats.Parquet, inspected.Format)
	assert.False(t, inspected.Placeholder)
	require.Len(t, inspected.Records, 3)
	assert.Equal(t, "Bob Johnson", inspected.Records[2]["name"])
	assert.Equal(t, int64(35), inspected.Records[2]["age"])
}

func TestPlaceholderFallback(t *testing.T) {
	ctx := context.Background()
	engines := newEngines(t)
	g := New(formats.NewRegistry(), engines)

	tests := []struct {
		format formats.Format
		body   string
	}{
		{formats.Avro, "dummy avro file"},
		{formats.Parquet, "dummy parquet file"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			dest := "mem://fixtures/out." + tt.format.String()
			req := DefaultRequest(tt.format, dest)
			req.MkdirParent = true

			res, err := g.Generate(ctx, req)
			require.NoError(t, err)
			assert.True(t, res.Placeholder)
			assert.Zero(t, res.Records)

			mem, err := engines.GetEngine(storage.MEMORY)
			require.NoError(t, err)
			data, err := readAll(ctx, mem, "fixtures/out."+tt.format.String())
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(data))

			inspected, err := g.Inspect(ctx, dest)
			require.NoError(t, err)
			assert.True(t, inspected.Placeholder)
			assert.Equal(t, tt.format, inspected.Format)
		})
	}
}

func TestMissingExcelCodecIsError(t *testing.T) {
	g := New(formats.NewRegistry(), newEngines(t))

	_, err := g.Generate(context.Background(), DefaultRequest(formats.XLSX, "mem://test.xlsx"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, formats.FormatsCodecUnavailable))
}

func TestFallbackDisabled(t *testing.T) {
	g := New(formats.NewRegistry(), newEngines(t), WithFallback(false))

	_, err := g.Generate(context.Background(), DefaultRequest(formats.Avro, "mem://out.avro"))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, formats.FormatsCodecUnavailable))
}

func TestGenerateInvalidRequests(t *testing.T) {
	g := New(fullRegistry(), newEngines(t))
	ctx := context.Background()

	_, err := g.Generate(ctx, Request{Format: "csv", Dataset: fixtures.Users, Destination: "mem://x"})
	assert.True(t, errors.HasCode(err, formats.FormatsUnknownFormat))

	_, err = g.Generate(ctx, Request{Format: formats.Avro, Dataset: "nope", Destination: "mem://x"})
	assert.True(t, errors.HasCode(err, fixtures.FixturesUnknownDataset))

	_, err = g.Generate(ctx, Request{Format: formats.Avro, Dataset: fixtures.Users, Destination: "s3://bucket/x.avro"})
	assert.True(t, errors.HasCode(err, storage.StorageEngineNotFound))
}

func TestGenerateAnyDatasetAnyFormat(t *testing.T) {
	ctx := context.Background()
	g := New(fullRegistry(), newEngines(t))

	req := Request{Format: formats.Avro, Dataset: fixtures.Employees, Destination: "mem://employees.avro"}
	_, err := g.Generate(ctx, req)
	require.NoError(t, err)

	inspected, err := g.Inspect(ctx, "mem://employees.avro")
	require.NoError(t, err)
	require.Len(t, inspected.Records, 4)
	assert.Equal(t, "Diana", inspected.Records[2]["name"])
	assert.Equal(t, int64(85000), inspected.Records[2]["salary"])
}

func TestGenerateAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	g := New(fullRegistry(), newEngines(t))

	results, err := g.GenerateAll(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, name := range []string{"test.avro", "test.xlsx", "test.parquet"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.Equal(t, fixtures.Employees, results[1].Dataset)
}

func TestInspectMissing(t *testing.T) {
	g := New(fullRegistry(), newEngines(t))

	_, err := g.Inspect(context.Background(), "mem://nothing.avro")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, storage.StorageNotFound))
}

func TestJoinDestination(t *testing.T) {
	assert.Equal(t, "s3://bucket/fixtures/test.avro", joinDestination("s3://bucket/fixtures/", "test.avro"))
	assert.Equal(t, "test.avro", joinDestination("", "test.avro"))
	assert.Equal(t, filepath.Join("data", "test.avro"), joinDestination("data", "test.avro"))
}

func TestInspectDetails(t *testing.T) {
	ctx := context.Background()
	g := New(fullRegistry(), newEngines(t))

	_, err := g.Generate(ctx, DefaultRequest(formats.Avro, "mem://users.avro"))
	require.NoError(t, err)

	inspected, err := g.Inspect(ctx, "mem://users.avro")
	require.NoError(t, err)
	assert.Equal(t, "null", inspected.Details["codec"])
	assert.Contains(t, inspected.Details["schema"], `"email"`)
	assert.NotEmpty(t, inspected.Details["content_type"])
}
