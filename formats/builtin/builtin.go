// Package builtin assembles the codec registry for this binary. Each codec is
// compiled in unless its build tag (noavro, noparquet, noxlsx) is set, which
// is how a build without a format library is produced.
package builtin

import (
	"github.com/gear6io/fixturegen/formats"
	"github.com/gear6io/fixturegen/pkg/errors"
)

// Package-specific error codes
var (
	BuiltinCodecOptionsInvalid = errors.MustNewCode("builtin.codec_options_invalid")
)

// Options carries per-format encoding settings from configuration.
type Options struct {
	AvroBlockCodec           string
	ParquetCompression       string
	ParquetCompressionLevel  int
	ParquetColumnCompression map[string]string
}

// DefaultOptions leaves Avro blocks uncompressed and Parquet on snappy.
func DefaultOptions() Options {
	return Options{
		AvroBlockCodec:     "null",
		ParquetCompression: "snappy",
	}
}

type registrar struct {
	format formats.Format
	add    func(*formats.Registry, Options) error
}

// registrars is appended to from init functions of tag-guarded files.
var registrars []registrar

// NewRegistry returns a registry holding every codec compiled in.
func NewRegistry(opts Options) (*formats.Registry, error) {
	r := formats.NewRegistry()
	for _, reg := range registrars {
		if err := reg.add(r, opts); err != nil {
			return nil, errors.New(BuiltinCodecOptionsInvalid, "invalid codec options", err).
				AddContext("format", reg.format.String())
		}
	}
	return r, nil
}

// Compiled lists the formats compiled into this binary.
func Compiled() []formats.Format {
	out := make([]formats.Format, 0, len(registrars))
	for _, reg := range registrars {
		out = append(out, reg.format)
	}
	return out
}
