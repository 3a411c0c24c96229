// Package adapters normalizes heterogeneous scraped payloads into the
// canonical PlayerFields schema. Each upstream source gets exactly one
// adapter with a declared input contract; unmapped or missing fields
// become explicit nil/empty values.
package adapters

import (
	"strconv"
	"strings"

	"github.com/afriquesports/factsheet/internal/model"
)

// Adapter turns one source's raw field map into PlayerFields.
type Adapter interface {
	// Name returns the source tag the adapter handles.
	Name() string

	// Normalize maps a raw payload into the canonical schema. It must
	// tolerate any input shape and never panic.
	Normalize(raw map[string]any) model.PlayerFields
}

// Registry selects the adapter for a source tag, falling back to the
// generic adapter for unknown sources.
type Registry struct {
	bySource map[string]Adapter
	generic  Adapter
}

// NewRegistry creates a registry with the built-in adapters.
func NewRegistry() *Registry {
	r := &Registry{bySource: make(map[string]Adapter), generic: NewGenericAdapter()}
	r.Register(NewTransfermarktAdapter())
	r.Register(NewESPNAdapter())
	return r
}

// Register adds an adapter keyed by its source name.
func (r *Registry) Register(a Adapter) {
	r.bySource[a.Name()] = a
}

// ForSource returns the adapter for a source tag. Composite tags like
// "transfermarkt+espn" match on their first component.
func (r *Registry) ForSource(source string) Adapter {
	if a, ok := r.bySource[source]; ok {
		return a
	}
	if idx := strings.IndexByte(source, '+'); idx > 0 {
		if a, ok := r.bySource[source[:idx]]; ok {
			return a
		}
	}
	return r.generic
}

// Extraction helpers shared by adapters. All of them treat absent keys
// and wrong-typed values as missing.

func getString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func getInt(raw map[string]any, keys ...string) *int {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			i := int(n)
			return &i
		case int:
			i := n
			return &i
		case string:
			if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
				return &i
			}
		}
	}
	return nil
}

func getFloat(raw map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			f := n
			return &f
		case int:
			f := float64(n)
			return &f
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func getMap(raw map[string]any, key string) map[string]any {
	if v, ok := raw[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
