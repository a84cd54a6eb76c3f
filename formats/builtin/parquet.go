//go:build !noparquet

package builtin

import (
	"github.com/gear6io/fixturegen/formats"
	"github.com/gear6io/fixturegen/formats/parquet"
)

func init() {
	registrars = append(registrars, registrar{
		format: formats.Parquet,
		add: func(r *formats.Registry, opts Options) error {
			cfg := parquet.WriterConfig{
				Compression:       opts.ParquetCompression,
				CompressionLevel:  opts.ParquetCompressionLevel,
				ColumnCompression: opts.ParquetColumnCompression,
			}
			if cfg.Compression == "" {
				cfg.Compression = parquet.DefaultWriterConfig().Compression
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			r.Register(parquet.NewCodec(cfg))
			return nil
		},
	})
}
