package formats

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gear6io/fixturegen/pkg/errors"
)

var (
	avroMagic    = []byte{'O', 'b', 'j', 1}
	parquetMagic = []byte("PAR1")
	zipMagic     = []byte{'P', 'K', 3, 4}
)

// Detect identifies a format from the leading bytes of a file, falling back
// to the file extension of name.
func Detect(name string, head []byte) (Format, error) {
	switch {
	case bytes.HasPrefix(head, avroMagic):
		return Avro, nil
	case bytes.HasPrefix(head, parquetMagic):
		return Parquet, nil
	case bytes.HasPrefix(head, zipMagic):
		return XLSX, nil
	}

	if f, ok := IsPlaceholder(head); ok {
		return f, nil
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext != "" {
		if f, err := ParseFormat(ext); err == nil {
			return f, nil
		}
	}

	return "", errors.New(FormatsUndetectable, "cannot determine file format", nil).AddContext("name", name)
}

// ForPath guesses the format from a file name only.
func ForPath(name string) (Format, error) {
	return Detect(name, nil)
}
