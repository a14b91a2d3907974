// Package hdr models the per-bin header: a case-insensitive mapping of
// string keys to scalar values recorded by the instrument at acquisition time
package hdr

import (
	"sort"
	"strconv"
	"strings"

	perr "ifcb/internal/platform/errors"
)

// Header keys consumed elsewhere in the system. Lookups are case-insensitive,
// so these match however the instrument cased them
const (
	Temperature = "temperature"
	Humidity    = "humidity"
	RunTime     = "runTime"
	InhibitTime = "inhibitTime"
)

// Header is a read-only, case-insensitive view over header keys and values.
// The original key casing is preserved for iteration
type Header struct {
	actual map[string]string // lower key -> actual key
	vals   map[string]string // actual key -> raw value
}

// New builds a Header from a raw key/value mapping. On case-colliding keys
// the last one wins
func New(m map[string]string) Header {
	h := Header{
		actual: make(map[string]string, len(m)),
		vals:   make(map[string]string, len(m)),
	}
	for k, v := range m {
		h.actual[strings.ToLower(k)] = k
		h.vals[k] = v
	}
	return h
}

// Len returns the number of keys
func (h Header) Len() int { return len(h.actual) }

// Has reports whether a key is present (case-insensitive)
func (h Header) Has(key string) bool {
	_, ok := h.actual[strings.ToLower(key)]
	return ok
}

// Key returns the actual casing of a key as recorded by the instrument
func (h Header) Key(key string) (string, bool) {
	k, ok := h.actual[strings.ToLower(key)]
	return k, ok
}

// Get returns the raw value for a key (case-insensitive)
func (h Header) Get(key string) (string, bool) {
	k, ok := h.actual[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	return h.vals[k], true
}

// Float parses the value for a key as a float64
func (h Header) Float(key string) (float64, error) {
	s, ok := h.Get(key)
	if !ok {
		return 0, perr.NotFoundf("no header key %q", key)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeFormat, "header key %q", key)
	}
	return v, nil
}

// Keys returns the actual keys, sorted for deterministic iteration
func (h Header) Keys() []string {
	out := make([]string, 0, len(h.vals))
	for k := range h.vals {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Map returns a fresh plain map copy of the header
func (h Header) Map() map[string]string {
	out := make(map[string]string, len(h.vals))
	for k, v := range h.vals {
		out[k] = v
	}
	return out
}
