package encoder

import (
	"fmt"
	"strings"
)

// order is the display and lookup priority of formats.
var order = []Format{JPEG, PNG, GIF, ICO}

// Registry holds one encoder per output format. The zero value is an empty
// registry.
type Registry struct {
	encoders map[Format]Encoder
}

// NewRegistry creates a registry with every built-in encoder.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[Format]Encoder),
	}
	for _, enc := range []Encoder{
		&JPEGEncoder{},
		&PNGEncoder{},
		&GIFEncoder{},
		&ICOEncoder{},
	} {
		r.Register(enc)
	}
	return r
}

// Register adds or replaces the encoder for enc.Format().
func (r *Registry) Register(enc Encoder) {
	if r.encoders == nil {
		r.encoders = make(map[Format]Encoder)
	}
	r.encoders[enc.Format()] = enc
}

// Get returns the encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format Format) Encoder {
	return r.encoders[Format(strings.ToLower(string(format)))]
}

// Available returns all registered formats in priority order.
func (r *Registry) Available() []Format {
	var result []Format
	for _, f := range order {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	names := make([]string, len(avail))
	for i, f := range avail {
		names[i] = string(f)
	}
	return fmt.Sprintf("encoders: %s", strings.Join(names, ", "))
}
