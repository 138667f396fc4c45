package signal

import "github.com/pkg/errors"

// ErrDiscoveredRegistry is returned by Register on a discovery-mode registry,
// whose kind set is fixed when it is constructed.
var ErrDiscoveredRegistry = errors.New("signal: registry was built by discovery, kinds cannot be added")

// Registry maps event kinds to live signals for one scope of the application.
// A registry is either curated (built from an explicit kind list, which may
// grow via Register) or discovered (snapshots every defined kind at
// construction); the mode is fixed for the registry's lifetime. Once a kind
// is registered its Signal identity is stable until the registry is discarded.
type Registry struct {
	discovered bool
	signals    map[Kind]*Signal
	order      []Kind
}

// NewRegistry creates a curated registry pre-registered with exactly the
// given kinds.
func NewRegistry(kinds ...Kind) *Registry {
	r := &Registry{signals: make(map[Kind]*Signal)}
	for _, k := range kinds {
		r.add(k)
	}
	return r
}

// DiscoverRegistry creates a discovery-mode registry holding every kind
// defined in the process catalog, excluding internal kinds.
func DiscoverRegistry() *Registry {
	r := &Registry{
		discovered: true,
		signals:    make(map[Kind]*Signal),
	}
	for _, k := range DefinedKinds() {
		r.add(k)
	}
	return r
}

// Register adds kind to a curated registry. Registering a kind that is
// already present is a no-op; the existing Signal is kept.
func (r *Registry) Register(kind Kind) error {
	if r.discovered {
		return ErrDiscoveredRegistry
	}
	if kind.IsZero() {
		return errors.New("signal: cannot register the zero Kind")
	}
	r.add(kind)
	return nil
}

func (r *Registry) add(kind Kind) {
	if _, ok := r.signals[kind]; ok {
		return
	}
	r.signals[kind] = New(kind)
	r.order = append(r.order, kind)
}

// Get returns the signal for kind. It never creates one.
func (r *Registry) Get(kind Kind) (*Signal, bool) {
	s, ok := r.signals[kind]
	return s, ok
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	return append([]Kind(nil), r.order...)
}
