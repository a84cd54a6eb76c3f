package parquet

import (
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	pq "github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"

	"github.com/gear6io/fixturegen/pkg/errors"
)

var (
	ParquetCompressionUnsupportedType = errors.MustNewCode("parquet.compression_unsupported_type")
	ParquetCompressionInvalidLevel    = errors.MustNewCode("parquet.compression_invalid_level")
)

// WriterConfig holds compression settings for Parquet writing
type WriterConfig struct {
	// Compression applies to every column without an override.
	Compression string
	// CompressionLevel of 0 keeps the codec default. It applies to every
	// column whose codec takes a level, overrides included.
	CompressionLevel int
	// ColumnCompression overrides Compression per column name.
	ColumnCompression map[string]string
}

// DefaultWriterConfig matches what pyarrow and most writers produce: snappy,
// default level.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{Compression: "snappy"}
}

// GetCompressionCodec converts a compression name to a Parquet codec
func GetCompressionCodec(compression string) (compress.Compression, error) {
	switch strings.ToLower(compression) {
	case "none", "uncompressed":
		return compress.Codecs.Uncompressed, nil
	case "snappy":
		return compress.Codecs.Snappy, nil
	case "gzip", "gz":
		return compress.Codecs.Gzip, nil
	case "brotli":
		return compress.Codecs.Brotli, nil
	case "lz4":
		return compress.Codecs.Lz4Raw, nil
	case "zstd":
		return compress.Codecs.Zstd, nil
	default:
		return compress.Codecs.Uncompressed, errors.New(ParquetCompressionUnsupportedType, "unsupported compression type", nil).AddContext("compression", compression)
	}
}

// Validate checks every codec name and the level against each codec in use.
func (c WriterConfig) Validate() error {
	if _, err := GetCompressionCodec(c.Compression); err != nil {
		return err
	}
	if c.CompressionLevel != 0 && !takesLevel(c.Compression) {
		return errors.New(ParquetCompressionInvalidLevel, "compression does not take a level", nil).
			AddContext("compression", c.Compression).
			AddContext("level", strconv.Itoa(c.CompressionLevel))
	}
	if err := validateCompressionLevel(c.Compression, c.CompressionLevel); err != nil {
		return err
	}
	for column, compression := range c.ColumnCompression {
		if _, err := GetCompressionCodec(compression); err != nil {
			return errors.AddContext(err, "column", column)
		}
		if err := validateCompressionLevel(compression, c.CompressionLevel); err != nil {
			return errors.AddContext(err, "column", column)
		}
	}
	return nil
}

func takesLevel(compression string) bool {
	switch strings.ToLower(compression) {
	case "gzip", "gz", "brotli", "zstd":
		return true
	}
	return false
}

// validateCompressionLevel range-checks level for codecs that take one.
func validateCompressionLevel(compression string, level int) error {
	if level == 0 {
		return nil
	}
	var lo, hi int
	switch strings.ToLower(compression) {
	case "gzip", "gz":
		lo, hi = 1, 9
	case "brotli":
		lo, hi = 1, 11
	case "zstd":
		lo, hi = 1, 22
	default:
		return nil
	}
	if level < lo || level > hi {
		return errors.Newf(ParquetCompressionInvalidLevel, "%s compression level must be between %d and %d", strings.ToLower(compression), lo, hi).
			AddContext("compression", compression).
			AddContext("level", strconv.Itoa(level))
	}
	return nil
}

// CompressionForColumn returns the compression name used for one column
func (c WriterConfig) CompressionForColumn(columnName string) string {
	if columnCompression, exists := c.ColumnCompression[columnName]; exists {
		return columnCompression
	}
	return c.Compression
}

// WriterProperties builds Parquet writer properties for schema. The level is
// set per column so codecs without levels never see one.
func (c WriterConfig) WriterProperties(schema *arrow.Schema) (*pq.WriterProperties, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	codec, _ := GetCompressionCodec(c.Compression)
	opts := []pq.WriterProperty{pq.WithCompression(codec)}

	for _, field := range schema.Fields() {
		name := c.CompressionForColumn(field.Name)
		if name != c.Compression {
			colCodec, _ := GetCompressionCodec(name)
			opts = append(opts, pq.WithCompressionFor(field.Name, colCodec))
		}
		if c.CompressionLevel != 0 && takesLevel(name) {
			opts = append(opts, pq.WithCompressionLevelFor(field.Name, c.CompressionLevel))
		}
	}

	return pq.NewWriterProperties(opts...), nil
}
