//go:build !noavro

package builtin

import (
	"github.com/gear6io/fixturegen/formats"
	"github.com/gear6io/fixturegen/formats/avro"
)

func init() {
	registrars = append(registrars, registrar{
		format: formats.Avro,
		add: func(r *formats.Registry, opts Options) error {
			bc, err := avro.ParseBlockCodec(opts.AvroBlockCodec)
			if err != nil {
				return err
			}
			r.Register(avro.NewCodec(avro.WithBlockCodec(bc)))
			return nil
		},
	})
}
