// Package registry tracks named buffer owners so that health checks and
// teardown code can reach every live owner in the process.
package registry

import (
	"errors"
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/srediag/ownedbuf/pkg/ownedbuf"
)

// ErrNotFound is returned when the named owner is not registered.
var ErrNotFound = errors.New("registry: owner not found")

// Registry is a concurrent map of named owners.
type Registry struct {
	owners cmap.ConcurrentMap[string, *ownedbuf.Owner]
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{owners: cmap.New[*ownedbuf.Owner]()}
}

// Create allocates a new owner and registers it under name. The owner is
// closed again when the name is already taken.
func (r *Registry) Create(name string, size int, opts ...ownedbuf.Option) (*ownedbuf.Owner, error) {
	owner, err := ownedbuf.New(size, opts...)
	if err != nil {
		return nil, err
	}
	if !r.owners.SetIfAbsent(name, owner) {
		_ = owner.Close()
		return nil, fmt.Errorf("registry: owner %q already exists", name)
	}
	return owner, nil
}

// Get returns the named owner.
func (r *Registry) Get(name string) (*ownedbuf.Owner, bool) {
	return r.owners.Get(name)
}

// Names returns the registered owner names, in no particular order.
func (r *Registry) Names() []string { return r.owners.Keys() }

// Len returns the number of registered owners.
func (r *Registry) Len() int { return r.owners.Count() }

// TotalOutstanding sums the live exports over all registered owners.
func (r *Registry) TotalOutstanding() int {
	total := 0
	for t := range r.owners.IterBuffered() {
		total += t.Val.ExportStats().Outstanding()
	}
	return total
}

// Remove unregisters and closes the named owner. An owner with
// outstanding exports is refused up front: closing it would trip the
// leak panic, and a service-level remove should stay an ordinary error.
func (r *Registry) Remove(name string) error {
	owner, ok := r.owners.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if n := owner.ExportStats().Outstanding(); n > 0 {
		return fmt.Errorf("registry: owner %q still has %d outstanding exports", name, n)
	}
	r.owners.Remove(name)
	return owner.Close()
}

// CloseAll removes and closes every owner without outstanding exports and
// reports the first problem it saw. Owners that still have live exports
// stay registered.
func (r *Registry) CloseAll() error {
	var firstErr error
	for t := range r.owners.IterBuffered() {
		if n := t.Val.ExportStats().Outstanding(); n > 0 {
			if firstErr == nil {
				firstErr = fmt.Errorf("registry: owner %q still has %d outstanding exports", t.Key, n)
			}
			continue
		}
		r.owners.Remove(t.Key)
		if err := t.Val.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
