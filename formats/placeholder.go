package formats

import "bytes"

// Placeholders are written instead of a real file when a codec is missing.
// They are deliberately not valid files of their format.
var placeholders = map[Format]string{
	Avro:    "dummy avro file",
	Parquet: "dummy parquet file",
}

// Placeholder returns the placeholder body for f. XLSX has none: a missing
// XLSX codec is always an error.
func Placeholder(f Format) (string, bool) {
	p, ok := placeholders[f]
	return p, ok
}

// IsPlaceholder reports whether data is exactly some format's placeholder,
// and which.
func IsPlaceholder(data []byte) (Format, bool) {
	for f, p := range placeholders {
		if bytes.Equal(data, []byte(p)) {
			return f, true
		}
	}
	return "", false
}
