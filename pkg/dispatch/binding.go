package dispatch

import "signalkit/pkg/signal"

// Binding declares one listener an owner wants attached: the kind to listen
// to, the callback to fire, and how long the binding lives. The zero
// Cardinality is signal.Every.
type Binding struct {
	Kind        signal.Kind
	Fn          any
	Cardinality signal.Cardinality
}

// Listener is the declaration contract owners implement to be bound by a
// Dispatcher. SignalBindings must be stable for a given concrete type: the
// same kinds, cardinalities and function signatures on every call, so the
// dispatcher can verify a type's shape once and reuse the result for every
// later instance. Owners must be comparable; in practice they are pointers.
type Listener interface {
	SignalBindings() []Binding
}

// tableEntry records one (signal, binding) pair created on behalf of an
// owner, so the owner's bindings can be located for bulk removal without
// walking every signal.
type tableEntry struct {
	sig *signal.Signal
	b   *signal.Binding
}

// bindingTable indexes live bindings by owner. It never extends an owner's
// lifetime in any semantic sense: aliveness is always answered by the
// dispatcher's liveness predicate, not by presence in the table.
type bindingTable struct {
	entries map[any][]tableEntry
	order   []any
}

func newBindingTable() *bindingTable {
	return &bindingTable{entries: make(map[any][]tableEntry)}
}

func (t *bindingTable) add(owner any, es []tableEntry) {
	if _, ok := t.entries[owner]; !ok {
		t.order = append(t.order, owner)
	}
	t.entries[owner] = append(t.entries[owner], es...)
}

// take removes and returns every entry recorded for owner.
func (t *bindingTable) take(owner any) []tableEntry {
	es, ok := t.entries[owner]
	if !ok {
		return nil
	}
	delete(t.entries, owner)
	for i, o := range t.order {
		if o == owner {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return es
}

func (t *bindingTable) has(owner any) bool {
	_, ok := t.entries[owner]
	return ok
}

// owners returns every owner with live bindings, oldest first.
func (t *bindingTable) owners() []any {
	return append([]any(nil), t.order...)
}
