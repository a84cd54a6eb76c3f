// Package generator writes fixture datasets to storage destinations using
// the codec registry, falling back to placeholder files for formats whose
// codec is not compiled in.
package generator

import (
	"bytes"
	"context"
	"io"
	"path"
	"path/filepath"

	"github.com/gear6io/fixturegen/fixtures"
	"github.com/gear6io/fixturegen/formats"
	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/gear6io/fixturegen/storage"
	"github.com/rs/zerolog"
)

// Package-specific error codes
var (
	GeneratorInvalidRequest = errors.MustNewCode("generator.invalid_request")
	GeneratorWriteFailed    = errors.MustNewCode("generator.write_failed")
	GeneratorReadFailed     = errors.MustNewCode("generator.read_failed")
)

// Request describes one file to generate.
type Request struct {
	Format      formats.Format
	Dataset     string
	Destination string
	// MkdirParent creates the destination's parent directory first.
	MkdirParent bool
}

// Result reports what was written.
type Result struct {
	Destination string
	Format      formats.Format
	Dataset     string
	Placeholder bool
	Records     int
}

// Generator writes datasets through codecs to storage engines
type Generator struct {
	codecs   *formats.Registry
	engines  *storage.StorageEngineRegistry
	fallback bool
	logger   zerolog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithFallback controls whether a missing Avro or Parquet codec produces a
// placeholder file. It is on by default.
func WithFallback(enabled bool) Option {
	return func(g *Generator) { g.fallback = enabled }
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// New creates a generator over the given codecs and storage engines
func New(codecs *formats.Registry, engines *storage.StorageEngineRegistry, opts ...Option) *Generator {
	g := &Generator{
		codecs:   codecs,
		engines:  engines,
		fallback: true,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Codecs returns the codec registry
func (g *Generator) Codecs() *formats.Registry {
	return g.codecs
}

// Generate writes one dataset in one format to req.Destination.
func (g *Generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if !req.Format.IsValid() {
		return nil, errors.New(formats.FormatsUnknownFormat, "unknown format", nil).AddContext("format", req.Format.String())
	}

	ds, err := fixtures.Lookup(req.Dataset)
	if err != nil {
		return nil, err
	}

	fs, p, err := g.engines.Resolve(req.Destination)
	if err != nil {
		return nil, err
	}

	log := g.logger.With().
		Str("format", req.Format.String()).
		Str("dataset", ds.Name).
		Str("destination", req.Destination).
		Logger()

	if req.MkdirParent {
		if dir := parentDir(fs, p); dir != "" {
			if err := fs.MkdirAll(ctx, dir); err != nil {
				return nil, err
			}
		}
	}

	result := &Result{
		Destination: req.Destination,
		Format:      req.Format,
		Dataset:     ds.Name,
	}

	codec, err := g.codecs.Codec(req.Format)
	if err != nil {
		body, ok := formats.Placeholder(req.Format)
		if !g.fallback || !ok || !errors.HasCode(err, formats.FormatsCodecUnavailable) {
			return nil, err
		}

		log.Warn().Msg("codec not available, writing placeholder")
		if err := writeTo(ctx, fs, p, func(w io.Writer) error {
			_, err := w.Write([]byte(body))
			return err
		}); err != nil {
			return nil, errors.AddContext(err, "destination", req.Destination)
		}
		result.Placeholder = true
		return result, nil
	}

	log.Debug().Int("rows", len(ds.Rows)).Msg("encoding dataset")
	if err := writeTo(ctx, fs, p, func(w io.Writer) error {
		return codec.Encode(ctx, ds, w)
	}); err != nil {
		return nil, errors.AddContext(err, "destination", req.Destination)
	}

	result.Records = len(ds.Rows)
	log.Info().Int("records", result.Records).Msg("fixture written")
	return result, nil
}

// Inspection is the decoded content of a fixture file.
type Inspection struct {
	Source      string
	Format      formats.Format
	Placeholder bool
	Records     []fixtures.Record
	// Details holds codec-reported file metadata such as schema or compression.
	Details map[string]string
}

// Inspect reads a fixture back from a storage destination. Placeholder
// files are reported rather than decoded.
func (g *Generator) Inspect(ctx context.Context, source string) (*Inspection, error) {
	fs, p, err := g.engines.Resolve(source)
	if err != nil {
		return nil, err
	}

	data, err := readAll(ctx, fs, p)
	if err != nil {
		return nil, errors.AddContext(err, "source", source)
	}

	out := &Inspection{Source: source}
	if f, ok := formats.IsPlaceholder(data); ok {
		out.Format = f
		out.Placeholder = true
		return out, nil
	}

	f, err := formats.Detect(p, data)
	if err != nil {
		return nil, err
	}
	out.Format = f

	codec, err := g.codecs.Codec(f)
	if err != nil {
		return nil, err
	}

	records, err := codec.Decode(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, errors.New(formats.FormatsDecodeFailed, "failed to decode fixture", err).
			AddContext("source", source).
			AddContext("format", f.String())
	}
	out.Records = records

	out.Details = map[string]string{"content_type": codec.ContentType()}
	if d, ok := codec.(formats.Describer); ok {
		details, err := d.Describe(data)
		if err != nil {
			g.logger.Debug().Err(err).Str("source", source).Msg("describe failed")
		}
		for k, v := range details {
			out.Details[k] = v
		}
	}
	return out, nil
}

// parentDir returns the directory to create for p, or "" for the current one.
func parentDir(fs storage.FileSystem, p string) string {
	var dir string
	if fs.GetStorageType() == storage.FILESYSTEM {
		dir = filepath.Dir(p)
	} else {
		dir = path.Dir(p)
	}
	if dir == "." {
		return ""
	}
	return dir
}
