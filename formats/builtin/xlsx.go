//go:build !noxlsx

package builtin

import (
	"github.com/gear6io/fixturegen/formats"
	"github.com/gear6io/fixturegen/formats/xlsx"
)

func init() {
	registrars = append(registrars, registrar{
		format: formats.XLSX,
		add: func(r *formats.Registry, _ Options) error {
			r.Register(xlsx.NewCodec())
			return nil
		},
	})
}
