package model

import (
	"fmt"
	"slices"
	"sync"
)

// Options customize a family when it is instantiated. Empty fields keep the
// family defaults.
type Options struct {
	ID   string
	Task string
}

// Tools are the fetch helpers handed to every factory.
type Tools struct {
	Downloader Downloader
	Exporter   Exporter
}

// Factory builds a model of one family.
type Factory func(opts Options, tools Tools) Model

// Registry stores model families by name.
type Registry struct {
	factories map[string]Factory
	tools     Tools
	mu        sync.RWMutex
}

// NewRegistry creates a new family registry sharing tools between factories.
func NewRegistry(tools Tools) *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		tools:     tools,
	}
}

// Register adds a family to the registry.
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}

	r.factories[name] = factory
	return nil
}

// New instantiates a model of the named family. A family flagged as a
// decoder must implement Decoder.
func (r *Registry) New(name string, opts Options) (Model, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	tools := r.tools
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFamily, name)
	}

	m := factory(opts, tools)
	if _, ok := m.(Decoder); m.IsDecoder() && !ok {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteDecoder, name)
	}

	return m, nil
}

// Names returns the registered family names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}
