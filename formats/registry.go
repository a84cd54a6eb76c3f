package formats

import (
	"sort"
	"sync"

	"github.com/gear6io/fixturegen/pkg/errors"
)

// Registry maps formats to the codecs compiled into this binary.
type Registry struct {
	codecs map[Format]Codec
	mu     sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry(codecs ...Codec) *Registry {
	r := &Registry{codecs: make(map[Format]Codec)}
	for _, c := range codecs {
		r.Register(c)
	}
	return r
}

// Register adds or replaces the codec for c.Format().
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[c.Format()] = c
}

// Codec returns the codec for f. A known format without a codec yields
// FormatsCodecUnavailable; anything else FormatsUnknownFormat.
func (r *Registry) Codec(f Format) (Codec, error) {
	if !f.IsValid() {
		return nil, errors.New(FormatsUnknownFormat, "unknown format", nil).AddContext("format", f.String())
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codecs[f]
	if !ok {
		return nil, errors.New(FormatsCodecUnavailable, "codec not available in this build", nil).AddContext("format", f.String())
	}
	return c, nil
}

// Available reports whether a codec for f is registered.
func (r *Registry) Available(f Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.codecs[f]
	return ok
}

// Formats lists the formats with a registered codec, sorted.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Format, 0, len(r.codecs))
	for f := range r.codecs {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
