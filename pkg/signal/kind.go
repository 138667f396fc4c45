package signal

import (
	"fmt"
	"reflect"
	"sync"
)

// Kind identifies a single signal: an interned name plus the positional
// parameter types every invocation must supply. Kinds are immutable and
// comparable; two calls to NewKind with the same name return the same Kind.
type Kind struct {
	d *kindDesc
}

type kindDesc struct {
	name     string
	params   []reflect.Type
	internal bool
}

// Type returns the reflect.Type for T, for building Kind parameter lists.
func Type[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

var catalog = struct {
	mu     sync.Mutex
	byName map[string]*kindDesc
	order  []*kindDesc
}{
	byName: make(map[string]*kindDesc),
}

// NewKind defines a signal kind in the process-wide catalog and returns it.
// Defining the same name again with an identical parameter list returns the
// already-interned Kind; defining it with a different parameter list panics,
// since kind shapes are fixed at definition time.
func NewKind(name string, params ...reflect.Type) Kind {
	return define(name, params, false)
}

// NewInternalKind defines a kind that is excluded from DefinedKinds and thus
// from discovery-mode registries. Hosts use it for framework-internal signals
// that should never be registered automatically.
func NewInternalKind(name string, params ...reflect.Type) Kind {
	return define(name, params, true)
}

func define(name string, params []reflect.Type, internal bool) Kind {
	if name == "" {
		panic("signal: kind name cannot be empty")
	}
	for i, p := range params {
		if p == nil {
			panic(fmt.Sprintf("signal: kind %q: parameter %d type is nil", name, i+1))
		}
	}
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	if d, ok := catalog.byName[name]; ok {
		if !sameShape(d, params, internal) {
			panic(fmt.Sprintf("signal: kind %q redefined with a different shape", name))
		}
		return Kind{d: d}
	}
	d := &kindDesc{name: name, params: append([]reflect.Type(nil), params...), internal: internal}
	catalog.byName[name] = d
	catalog.order = append(catalog.order, d)
	return Kind{d: d}
}

func sameShape(d *kindDesc, params []reflect.Type, internal bool) bool {
	if d.internal != internal || len(d.params) != len(params) {
		return false
	}
	for i, p := range params {
		if d.params[i] != p {
			return false
		}
	}
	return true
}

// LookupKind returns the kind defined under name, if any.
func LookupKind(name string) (Kind, bool) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	d, ok := catalog.byName[name]
	return Kind{d: d}, ok
}

// DefinedKinds returns every non-internal kind in definition order. This is
// the enumeration a discovery-mode registry snapshots.
func DefinedKinds() []Kind {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	kinds := make([]Kind, 0, len(catalog.order))
	for _, d := range catalog.order {
		if d.internal {
			continue
		}
		kinds = append(kinds, Kind{d: d})
	}
	return kinds
}

// Name returns the kind's interned name.
func (k Kind) Name() string {
	if k.d == nil {
		return ""
	}
	return k.d.name
}

// ParameterCount returns how many positional arguments an invocation requires.
func (k Kind) ParameterCount() int {
	if k.d == nil {
		return 0
	}
	return len(k.d.params)
}

// Parameter returns the declared type of the i-th (0-based) parameter.
func (k Kind) Parameter(i int) reflect.Type {
	return k.d.params[i]
}

// IsZero reports whether k is the zero Kind, i.e. not produced by NewKind.
func (k Kind) IsZero() bool {
	return k.d == nil
}

func (k Kind) String() string {
	if k.d == nil {
		return "<zero kind>"
	}
	return k.d.name
}
