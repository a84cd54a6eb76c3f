// Package formats defines the codec contract shared by every fixture format
// and the registry the generators resolve codecs from.
package formats

import (
	"context"
	"io"
	"strings"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/pkg/errors"
)

// Package-specific error codes
var (
	FormatsUnknownFormat    = errors.MustNewCode("formats.unknown_format")
	FormatsCodecUnavailable = errors.MustNewCode("formats.codec_unavailable")
	FormatsEncodeFailed     = errors.MustNewCode("formats.encode_failed")
	FormatsDecodeFailed     = errors.MustNewCode("formats.decode_failed")
	FormatsUndetectable     = errors.MustNewCode("formats.undetectable")
)

// Format identifies a file format.
type Format string

const (
	Avro    Format = "avro"
	XLSX    Format = "xlsx"
	Parquet Format = "parquet"
)

// String returns the string representation of the format
func (f Format) String() string {
	return string(f)
}

// IsValid checks if the format is one we know about
func (f Format) IsValid() bool {
	switch f {
	case Avro, XLSX, Parquet:
		return true
	default:
		return false
	}
}

// ParseFormat parses a format name. "excel" and "xls" are accepted for XLSX.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avro":
		return Avro, nil
	case "xlsx", "excel", "xls":
		return XLSX, nil
	case "parquet", "pq":
		return Parquet, nil
	default:
		return "", errors.New(FormatsUnknownFormat, "unknown format", nil).AddContext("format", s)
	}
}

// ListFormats returns every known format
func ListFormats() []Format {
	return []Format{Avro, XLSX, Parquet}
}

// Codec writes a dataset in one format and reads it back.
type Codec interface {
	Format() Format
	FileExtension() string
	ContentType() string

	// Encode writes ds to w. It never closes w.
	Encode(ctx context.Context, ds *fixtures.Dataset, w io.Writer) error

	// Decode reads every record from r in file order. Integer values come
	// back as int64 and text as string.
	Decode(ctx context.Context, r io.Reader) ([]fixtures.Record, error)
}

// Describer is implemented by codecs that can summarize a file's metadata
// (schema, compression, row counts) without decoding every record.
type Describer interface {
	Describe(data []byte) (map[string]string, error)
}

// NoClose hides Close from writers handed to libraries that close their sink.
func NoClose(w io.Writer) io.Writer {
	return struct{ io.Writer }{w}
}
