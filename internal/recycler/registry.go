// Package recycler pools cell instances so a pane only holds as many cells
// as it can show at once.
package recycler

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrEmptyIdentifier is returned when registering under an empty reuse identifier
	ErrEmptyIdentifier = errors.New("reuse identifier must not be empty")
	// ErrUnregisteredIdentifier is returned when dequeuing an identifier with no factory
	ErrUnregisteredIdentifier = errors.New("no cell factory registered for reuse identifier")
)

// IdentifierError carries the identifier that failed to resolve
type IdentifierError struct {
	Identifier string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnregisteredIdentifier, e.Identifier)
}

// Unwrap lets errors.Is match ErrUnregisteredIdentifier
func (e *IdentifierError) Unwrap() error {
	return ErrUnregisteredIdentifier
}

// Cell is a reusable cell instance
type Cell interface {
	// PrepareForReuse clears overlay state such as selection.
	// Content is left for the data source to overwrite.
	PrepareForReuse()
}

// Selectable is implemented by cells that draw a selection overlay
type Selectable interface {
	SetSelected(selected bool)
}

// Factory constructs a new cell
type Factory func() Cell

// Registry maps reuse identifiers to cell factories. One registry is shared
// by every pane's recycler.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register associates a factory with an identifier, replacing any previous
// entry. A nil factory unregisters the identifier.
func (r *Registry) Register(identifier string, factory Factory) error {
	if identifier == "" {
		return ErrEmptyIdentifier
	}
	if factory == nil {
		delete(r.factories, identifier)
		return nil
	}
	r.factories[identifier] = factory
	return nil
}

// Lookup returns the factory registered for identifier
func (r *Registry) Lookup(identifier string) (Factory, bool) {
	f, ok := r.factories[identifier]
	return f, ok
}

// Identifiers returns the registered identifiers in sorted order
func (r *Registry) Identifiers() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
