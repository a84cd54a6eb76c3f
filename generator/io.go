package generator

import (
	"context"
	"io"

	"github.com/gear6io/fixturegen/pkg/errors"
	"github.com/gear6io/fixturegen/storage"
)

// writeTo opens p for writing, runs fn and closes the handle on every path.
// A close failure is reported when fn succeeded, since buffered engines
// flush on close.
func writeTo(ctx context.Context, fs storage.FileSystem, p string, fn func(io.Writer) error) (err error) {
	w, err := fs.OpenForWrite(ctx, p)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = errors.New(GeneratorWriteFailed, "failed to finalize output", cerr).AddContext("path", p)
		}
	}()

	if err := fn(w); err != nil {
		return errors.New(GeneratorWriteFailed, "failed to write output", err).AddContext("path", p)
	}
	return nil
}

func readAll(ctx context.Context, fs storage.FileSystem, p string) ([]byte, error) {
	r, err := fs.OpenForRead(ctx, p)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New(GeneratorReadFailed, "failed to read input", err).AddContext("path", p)
	}
	return data, nil
}
