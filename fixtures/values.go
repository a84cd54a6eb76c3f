package fixtures

import (
	"math"

	"github.com/gear6io/fixturegen/pkg/errors"
)

// AsString returns v if it is a string.
func AsString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.Newf(FixturesValueType, "expected string, got %T", v)
	}
	return s, nil
}

// AsInt64 widens any Go integer to int64.
func AsInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	default:
		return 0, errors.Newf(FixturesValueType, "expected integer, got %T", v)
	}
}

// AsInt32 converts any Go integer to int32, rejecting values that overflow.
func AsInt32(v any) (int32, error) {
	n, err := AsInt64(v)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errors.Newf(FixturesValueType, "value %d overflows int32", n)
	}
	return int32(n), nil
}
