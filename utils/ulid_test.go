package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewRunIDString()
		require.Len(t, id, 26)
		_, dup := seen[id]
		require.False(t, dup, "duplicate run id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewRunIDMonotonic(t *testing.T) {
	now := time.Now()
	a := NewRunIDAt(now)
	b := NewRunIDAt(now)

	assert.Equal(t, -1, a.Compare(b))
}

func TestRunStartedAt(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	id := NewRunIDAt(at).String()

	started, err := RunStartedAt(id)
	require.NoError(t, err)
	assert.True(t, started.Equal(at), "got %s", started)

	_, err = RunStartedAt("not-a-ulid")
	assert.Error(t, err)
}
