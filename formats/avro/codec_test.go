package avro

import (
	"bytes"
	"context"
	"testing"

	"github.com/hamba/avro/v2/ocf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/formats"
)

func usersDataset(t *testing.T) *fixtures.Dataset {
	t.Helper()
	ds, err := fixtures.Lookup(fixtures.Users)
	require.NoError(t, err)
	return ds
}

func TestCodecMetadata(t *testing.T) {
	c := NewCodec()
	assert.Equal(t, formats.Avro, c.Format())
	assert.Equal(t, ".avro", c.FileExtension())
	assert.Equal(t, "application/avro", c.ContentType())
}

func TestSchema(t *testing.T) {
	schema, err := Schema(usersDataset(t))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "record",
		"name": "User",
		"fields": [
			{"name": "name", "type": "string"},
			{"name": "age", "type": "int"},
			{"name": "email", "type": "string"}
		]
	}`, schema.String())
}

func TestEncodeDecodeUsers(t *testing.T) {
	ctx := context.Background()
	c := NewCodec()

	var buf bytes.Buffer
	require.NoError(t, c.Encode(ctx, usersDataset(t), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("Obj\x01")))

	records, err := c.Decode(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, fixtures.Record{"name": "John Doe", "age": int64(25), "email": "john@example.com"}, records[0])
	assert.Equal(t, fixtures.Record{"name": "Jane Smith", "age": int64(30), "email": "jane@example.com"}, records[1])
}

func TestEncodeWithBlockCodecs(t *testing.T) {
	for _, name := range []string{"null", "deflate", "snappy", "zstd"} {
		t.Run(name, func(t *testing.T) {
			bc, err := ParseBlockCodec(name)
			require.NoError(t, err)

			c := NewCodec(WithBlockCodec(bc))
			var buf bytes.Buffer
			require.NoError(t, c.Encode(context.Background(), usersDataset(t), &buf))

			records, err := c.Decode(context.Background(), &buf)
			require.NoError(t, err)
			assert.Len(t, records, 2)
		})
	}

	_, err := ParseBlockCodec("lzma")
	assert.Error(t, err)
}

func TestEncodeLongColumns(t *testing.T) {
	ds, err := fixtures.Lookup(fixtures.Employees)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewCodec().Encode(context.Background(), ds, &buf))

	schema, err := SchemaOf(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Contains(t, schema, `"long"`)
	assert.Contains(t, schema, `"Employee"`)

	records, err := NewCodec().Decode(context.Background(), &buf)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, int64(85000), records[2]["salary"])
}

func TestDecodeInvalid(t *testing.T) {
	_, err := NewCodec().Decode(context.Background(), bytes.NewReader([]byte("invalid avro data")))
	assert.Error(t, err)

	_, err = NewCodec().Decode(context.Background(), bytes.NewReader([]byte("dummy avro file")))
	assert.Error(t, err)
}

func TestEncodeRejectsBadValues(t *testing.T) {
	ds := &fixtures.Dataset{
		Name:    "bad",
		Columns: []fixtures.Column{{Name: "age", Type: fixtures.Int32}},
		Rows:    [][]any{{"not a number"}},
	}
	err := NewCodec().Encode(context.Background(), ds, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestEncodeHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewCodec().Encode(ctx, usersDataset(t), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDescribe(t *testing.T) {
	ds, err := fixtures.Lookup(fixtures.Users)
	require.NoError(t, err)

	var buf bytes.Buffer
	c := NewCodec(WithBlockCodec(ocf.Deflate))
	require.NoError(t, c.Encode(context.Background(), ds, &buf))

	details, err := c.Describe(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "deflate", details["codec"])
	assert.Contains(t, details["schema"], `"User"`)

	_, err = c.Describe([]byte("dummy avro file"))
	assert.Error(t, err)
}
