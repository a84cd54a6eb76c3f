package utils

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyLock sync.Mutex
	entropy     = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a ULID identifying one generator invocation. IDs created
// within the same millisecond still sort in creation order.
func NewRunID() ulid.ULID {
	return NewRunIDAt(time.Now())
}

// NewRunIDAt returns a run ID stamped with t.
func NewRunIDAt(t time.Time) ulid.ULID {
	entropyLock.Lock()
	defer entropyLock.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), entropy)
}

// NewRunIDString is NewRunID in its canonical 26 character form.
func NewRunIDString() string {
	return NewRunID().String()
}

// RunStartedAt recovers the start time encoded in a run ID string.
func RunStartedAt(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
