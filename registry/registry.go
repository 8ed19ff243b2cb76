/*
Package registry keeps the named forwarding stores a running process
manages, mapping each name to its own independent *trie.Trie.

It is a thin wrapper over treemap.TreeMap, which keeps names in sorted
order so Names can hand back a stable listing without a separate sort.
*/
package registry

import (
	"errors"

	"github.com/p-banach/telefony/treemap"
	"github.com/p-banach/telefony/trie"
)

// ErrNotFound is returned by Delete when name is not registered.
var ErrNotFound = errors.New("database not found")

// Registry maps database names to independent forwarding stores.
type Registry struct {
	stores *treemap.TreeMap
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{stores: treemap.New()}
}

// Select returns the store registered under name, creating and
// registering a fresh one if name is not yet known. Selecting an existing
// name returns that same store rather than erroring.
func (r *Registry) Select(name string) (*trie.Trie, error) {
	if t, ok := r.stores.Get(name); ok {
		return t, nil
	}
	t := trie.New()
	r.stores.Put(name, t)
	return t, nil
}

// Delete removes the store registered under name, returning it. It reports
// ErrNotFound if name is not registered.
func (r *Registry) Delete(name string) (*trie.Trie, error) {
	t, ok := r.stores.Remove(name)
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// Lookup returns the store registered under name without creating one.
func (r *Registry) Lookup(name string) (*trie.Trie, bool) {
	return r.stores.Get(name)
}

// Names returns every registered name in alphabet order.
func (r *Registry) Names() []string {
	return r.stores.Keys()
}

// Len returns the number of registered stores.
func (r *Registry) Len() int {
	return r.stores.Size()
}
