// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"sort"
	"sync"
)

// Backend is a named way of creating natives.
type Backend struct {
	Name string

	// Priority orders automatic selection, highest first.
	Priority int

	// New creates a native. A backend that cannot serve the given options,
	// such as "gpu" without a provider, returns an error and NewNative
	// moves on to the next one.
	New func(opts Options) (Native, error)
}

var backends struct {
	mu     sync.RWMutex
	byName map[string]Backend
}

// Register adds b, replacing any backend of the same name.
func Register(b Backend) {
	backends.mu.Lock()
	defer backends.mu.Unlock()
	if backends.byName == nil {
		backends.byName = make(map[string]Backend)
	}
	if _, ok := backends.byName[b.Name]; ok {
		Logger().Debug("surface: backend replaced", "name", b.Name)
	}
	backends.byName[b.Name] = b
}

// Backends returns the registered backends, highest priority first and
// ties by name.
func Backends() []Backend {
	backends.mu.RLock()
	list := make([]Backend, 0, len(backends.byName))
	for _, b := range backends.byName {
		list = append(list, b)
	}
	backends.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Priority != list[j].Priority {
			return list[i].Priority > list[j].Priority
		}
		return list[i].Name < list[j].Name
	})
	return list
}

// NewNative creates a native with the first backend, in priority order,
// that accepts the options.
func NewNative(width, height int, opts ...Option) (Native, error) {
	o := buildOptions(width, height, opts)
	var lastErr error
	for _, b := range Backends() {
		n, err := b.New(o)
		if err == nil {
			return n, nil
		}
		Logger().Debug("surface: backend skipped", "name", b.Name, "err", err)
		lastErr = err
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoBackendAvailable, lastErr)
	}
	return nil, ErrNoBackendAvailable
}

// NewNativeByName creates a native with the named backend.
func NewNativeByName(name string, width, height int, opts ...Option) (Native, error) {
	backends.mu.RLock()
	b, ok := backends.byName[name]
	backends.mu.RUnlock()
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	return b.New(buildOptions(width, height, opts))
}

func buildOptions(width, height int, opts []Option) Options {
	o := DefaultOptions(width, height)
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func init() {
	Register(Backend{Name: "gpu", Priority: 100, New: func(o Options) (Native, error) {
		return NewGPUNative(o.Provider, o.Width, o.Height)
	}})
	Register(Backend{Name: "gg", Priority: 10, New: func(o Options) (Native, error) {
		return NewGGNative(o.Width, o.Height)
	}})
	Register(Backend{Name: "record", New: func(o Options) (Native, error) {
		var caps Capabilities
		if o.Capabilities != nil {
			caps = *o.Capabilities
		}
		return NewRecorder(o.Width, o.Height, caps), nil
	}})
}
