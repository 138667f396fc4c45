// Package dispatch provides the Dispatcher, the façade applications use to
// bind listener owners to signals, unbind them, and invoke signals by kind.
//
// The dispatcher, like the signals it manages, follows a single-threaded
// cooperative model: Bind, Unbind and Invoke must all be called from one
// logical thread of control.
package dispatch

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"signalkit/pkg/signal"
)

// Dispatcher owns the active registry, tracks which bindings were created on
// behalf of which owner, and serializes unbind requests that arrive while a
// dispatch is in flight.
type Dispatcher struct {
	log      zerolog.Logger
	alive    signal.LivenessFunc
	invoke   InvokeFunc
	registry *signal.Registry
	table    *bindingTable

	// shapes caches, per concrete owner type, the declaration shape that
	// already passed signature verification, so repeated instances of the
	// same type skip the reflect work.
	shapes map[reflect.Type][]signal.Kind

	dispatching bool
	deferred    []any
}

// New creates a Dispatcher with no active registry.
func New(opts ...Option) *Dispatcher {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	d := &Dispatcher{
		log:    c.logger,
		alive:  c.alive,
		table:  newBindingTable(),
		shapes: make(map[reflect.Type][]signal.Kind),
	}
	d.invoke = chain(func(sig *signal.Signal, args []reflect.Value) error {
		return sig.Invoke(args, d.alive)
	}, c.interceptors)
	return d
}

// SetRegistry installs r as the active registry; nil clears it. Any owners
// still bound against the previous registry are force-unbound first, so no
// binding can keep referencing a replaced registry's signals.
func (d *Dispatcher) SetRegistry(r *signal.Registry) {
	for _, owner := range d.table.owners() {
		d.unbindNow(owner)
	}
	d.registry = r
}

// Registry returns the active registry, which may be nil.
func (d *Dispatcher) Registry() *signal.Registry {
	return d.registry
}

// Signal returns the active registry's signal for kind, if any.
func (d *Dispatcher) Signal(kind signal.Kind) (*signal.Signal, bool) {
	if d.registry == nil {
		return nil, false
	}
	return d.registry.Get(kind)
}

// Bind attaches every binding owner declares to the matching signals of the
// active registry. On any failure nothing is kept: bindings already created
// for owner in this call are rolled back before the error is returned.
// Binding the same (owner, callback) pair twice fails with
// signal.DuplicateListenerError.
func (d *Dispatcher) Bind(owner Listener) error {
	if owner == nil {
		return errors.New("dispatch: cannot bind a nil owner")
	}
	specs := owner.SignalBindings()
	ot := reflect.TypeOf(owner)
	verified := d.verifiedShape(ot, specs)

	var added []tableEntry
	rollback := func() {
		for _, e := range added {
			e.sig.RemoveBinding(e.b)
		}
	}
	for _, spec := range specs {
		if spec.Kind.IsZero() {
			rollback()
			return errors.Errorf("dispatch: %T declares a binding with no kind", owner)
		}
		sig, ok := d.Signal(spec.Kind)
		if !ok {
			rollback()
			return &signal.UnregisteredError{Name: spec.Kind.Name()}
		}
		if !verified {
			if err := checkSignature(spec.Kind, spec.Fn); err != nil {
				rollback()
				return err
			}
		}
		b, err := sig.AddListener(owner, spec.Fn, spec.Cardinality)
		if err != nil {
			rollback()
			return errors.Wrapf(err, "binding %T", owner)
		}
		added = append(added, tableEntry{sig: sig, b: b})
	}
	if !verified {
		d.shapes[ot] = shapeOf(specs)
	}
	if len(added) == 0 {
		return nil
	}
	d.table.add(owner, added)
	d.log.Debug().
		Str("owner", ot.String()).
		Strs("bindings", bindingIDs(added)).
		Msg("owner bound")
	return nil
}

func bindingIDs(es []tableEntry) []string {
	ids := make([]string, len(es))
	for i, e := range es {
		ids[i] = e.b.ID()
	}
	return ids
}

// verifiedShape reports whether ot's declaration shape already passed
// signature verification. A declaration that no longer matches the cached
// shape falls back to full verification.
func (d *Dispatcher) verifiedShape(ot reflect.Type, specs []Binding) bool {
	cached, ok := d.shapes[ot]
	if !ok || len(cached) != len(specs) {
		return false
	}
	for i, spec := range specs {
		if cached[i] != spec.Kind {
			return false
		}
	}
	return true
}

func shapeOf(specs []Binding) []signal.Kind {
	kinds := make([]signal.Kind, len(specs))
	for i, spec := range specs {
		kinds[i] = spec.Kind
	}
	return kinds
}

// Unbind removes every binding recorded for owner. While a dispatch is in
// progress the request is queued and processed once the dispatch completes,
// so an unbind issued from inside a listener never disturbs the in-flight
// pass. Unbinding an owner with no bindings is a no-op.
func (d *Dispatcher) Unbind(owner any) {
	if d.dispatching {
		d.deferred = append(d.deferred, owner)
		return
	}
	d.unbindNow(owner)
}

func (d *Dispatcher) unbindNow(owner any) {
	es := d.table.take(owner)
	for _, e := range es {
		e.sig.RemoveBinding(e.b)
	}
	if len(es) > 0 {
		d.log.Debug().
			Str("owner", reflect.TypeOf(owner).String()).
			Strs("bindings", bindingIDs(es)).
			Msg("owner unbound")
	}
}

// Invoke dispatches kind to every bound, alive listener in registration
// order. Arguments are validated against the kind's parameter shape before
// any listener fires. A non-nil error returned by a listener aborts the
// remaining fan-out and is returned unchanged; dispatcher-originated
// failures are always one of the typed errors in package signal. Whether or
// not the pass failed, unbind requests deferred during it are drained before
// Invoke returns.
//
// Dispatch-in-progress is tracked by a single boolean, so a nested Invoke
// issued from inside a listener clears it when the inner call returns. Any
// unbinds deferred by the outer pass are then drained early, while the outer
// pass is still walking its own snapshot of the binding list: the affected
// owners are removed sooner than the outer pass's completion, never
// mid-entry.
func (d *Dispatcher) Invoke(kind signal.Kind, args ...any) error {
	sig, ok := d.Signal(kind)
	if !ok {
		return &signal.UnregisteredError{Name: kind.Name()}
	}
	vals, err := buildArgs(kind, args)
	if err != nil {
		return err
	}
	d.dispatching = true
	invokeErr := d.invoke(sig, vals)
	d.dispatching = false
	d.drainDeferred()
	return invokeErr
}

func (d *Dispatcher) drainDeferred() {
	for len(d.deferred) > 0 {
		owner := d.deferred[0]
		d.deferred = d.deferred[1:]
		d.unbindNow(owner)
	}
}
