// Package signal implements typed in-process signals: named event channels
// with a fixed positional parameter shape and an ordered set of bound
// listeners, plus the registry that maps event kinds to live signals.
package signal

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Cardinality controls how long a listener binding stays attached.
type Cardinality int

const (
	// Every fires the listener on every invocation until it is removed.
	Every Cardinality = iota
	// Once fires the listener on the first invocation only, then removes it.
	Once
)

// LivenessFunc answers whether a binding's owner is still valid. A nil
// LivenessFunc treats every owner as alive.
type LivenessFunc func(owner any) bool

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Binding associates one owner's callback with a signal.
type Binding struct {
	id     string
	owner  any
	fn     reflect.Value
	fnPtr  uintptr
	card   Cardinality
	hasErr bool
	remove bool
}

// ID returns the binding's unique identifier.
func (b *Binding) ID() string { return b.id }

// Owner returns the owner the binding was created for.
func (b *Binding) Owner() any { return b.owner }

// Cardinality returns the binding's cardinality.
func (b *Binding) Cardinality() Cardinality { return b.card }

// Signal is a single event channel. Listeners fire in the order they were
// added. Signals are not safe for concurrent use; all mutation and invocation
// is expected to happen on one logical thread of control.
type Signal struct {
	kind     Kind
	bindings []*Binding
	invoking bool
}

// New creates an empty signal for the given kind.
func New(kind Kind) *Signal {
	return &Signal{kind: kind}
}

// Kind returns the kind the signal was created for.
func (s *Signal) Kind() Kind { return s.kind }

// Len returns the number of live bindings.
func (s *Signal) Len() int {
	n := 0
	for _, b := range s.bindings {
		if !b.remove {
			n++
		}
	}
	return n
}

// AddListener appends a binding for fn on behalf of owner. The same
// (owner, fn) pair cannot be bound twice. fn must be a function; if its last
// result is an error, a non-nil value returned during an invocation aborts
// the remaining fan-out and surfaces to the invoker.
//
// Callback identity is the function's code pointer, so two closures
// instantiated from the same function literal count as the same callback:
// an owner binding both gets a DuplicateListenerError. Owners that need
// several listeners on one signal should use distinct methods or literals.
func (s *Signal) AddListener(owner any, fn any, card Cardinality) (*Binding, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, errors.Errorf("signal %q: listener must be a non-nil function, got %T", s.kind.Name(), fn)
	}
	ptr := fv.Pointer()
	for _, b := range s.bindings {
		if !b.remove && b.owner == owner && b.fnPtr == ptr {
			return nil, &DuplicateListenerError{Kind: s.kind.Name()}
		}
	}
	ft := fv.Type()
	b := &Binding{
		id:     uuid.NewString(),
		owner:  owner,
		fn:     fv,
		fnPtr:  ptr,
		card:   card,
		hasErr: ft.NumOut() > 0 && ft.Out(ft.NumOut()-1) == errorType,
	}
	s.bindings = append(s.bindings, b)
	return b, nil
}

// RemoveListener removes the first binding matching (owner, fn). Absent
// bindings are a no-op.
func (s *Signal) RemoveListener(owner any, fn any) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return
	}
	ptr := fv.Pointer()
	for _, b := range s.bindings {
		if !b.remove && b.owner == owner && b.fnPtr == ptr {
			s.RemoveBinding(b)
			return
		}
	}
}

// RemoveBinding detaches a binding previously returned by AddListener. While
// an invocation pass is walking the binding list the removal is deferred:
// the binding is marked and purged once the pass completes, so the walk never
// skips or repeats entries.
func (s *Signal) RemoveBinding(b *Binding) {
	if s.invoking {
		b.remove = true
		return
	}
	for i, cur := range s.bindings {
		if cur == b {
			s.bindings = append(s.bindings[:i], s.bindings[i+1:]...)
			return
		}
	}
}

// Invoke calls every live binding in order with args, which must already
// match the kind's parameter shape. Owners reported dead by alive are skipped
// and their bindings dropped; Once bindings are dropped after they fire.
// All removals collected during the pass are applied after it, even when a
// listener error aborts the fan-out.
func (s *Signal) Invoke(args []reflect.Value, alive LivenessFunc) error {
	s.invoking = true
	var invokeErr error
	for _, b := range s.bindings {
		if b.remove {
			continue
		}
		if alive != nil && !alive(b.owner) {
			b.remove = true
			continue
		}
		err := call(b, args)
		if b.card == Once {
			b.remove = true
		}
		if err != nil {
			invokeErr = err
			break
		}
	}
	s.invoking = false
	s.purge()
	return invokeErr
}

func call(b *Binding, args []reflect.Value) error {
	out := b.fn.Call(args)
	if b.hasErr {
		if last := out[len(out)-1]; !last.IsNil() {
			return last.Interface().(error)
		}
	}
	return nil
}

// purge drops every binding marked for removal, preserving order. The kept
// bindings go into a fresh slice so that a purge triggered by a nested
// invocation never shifts entries underneath an outer pass still walking the
// previous backing array.
func (s *Signal) purge() {
	kept := make([]*Binding, 0, len(s.bindings))
	for _, b := range s.bindings {
		if !b.remove {
			kept = append(kept, b)
		}
	}
	s.bindings = kept
}
