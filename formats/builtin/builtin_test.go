//go:build !noavro && !noparquet && !noxlsx

package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gear6io/fixturegen/formats"
	"github.com/gear6io/fixturegen/pkg/errors"
)

func TestNewRegistryHasEveryFormat(t *testing.T) {
	r, err := NewRegistry(DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []formats.Format{formats.Avro, formats.Parquet, formats.XLSX}, r.Formats())
	assert.ElementsMatch(t, formats.ListFormats(), Compiled())
}

func TestNewRegistryRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		format string
	}{
		{"avro codec", Options{AvroBlockCodec: "lzma", ParquetCompression: "snappy"}, "avro"},
		{"parquet codec", Options{AvroBlockCodec: "null", ParquetCompression: "lzo"}, "parquet"},
		{"parquet level", Options{AvroBlockCodec: "null", ParquetCompression: "gzip", ParquetCompressionLevel: 42}, "parquet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, BuiltinCodecOptionsInvalid))
			assert.Equal(t, tt.format, errors.GetContext(err)["format"])
		})
	}
}

func TestEmptyParquetCompressionDefaults(t *testing.T) {
	_, err := NewRegistry(Options{})
	assert.NoError(t, err)
}
