package dispatch

import (
	"reflect"

	"github.com/pkg/errors"

	"signalkit/pkg/signal"
)

// buildArgs validates args against kind's parameter shape and converts them
// to the reflect values a Signal invocation needs. Ordinal positions in the
// returned errors are 1-based. A nil argument is accepted only for parameter
// types that can hold nil and becomes that type's zero value.
func buildArgs(kind signal.Kind, args []any) ([]reflect.Value, error) {
	want := kind.ParameterCount()
	if len(args) != want {
		return nil, &signal.ArityError{Kind: kind.Name(), Want: want, Got: len(args)}
	}
	vals := make([]reflect.Value, want)
	for i, arg := range args {
		pt := kind.Parameter(i)
		if arg == nil {
			if !nilable(pt.Kind()) {
				return nil, &signal.NilArgumentError{Kind: kind.Name(), Position: i + 1, Want: pt}
			}
			vals[i] = reflect.Zero(pt)
			continue
		}
		at := reflect.TypeOf(arg)
		if !at.AssignableTo(pt) {
			return nil, &signal.TypeError{Kind: kind.Name(), Position: i + 1, Want: pt, Got: at}
		}
		vals[i] = reflect.ValueOf(arg)
	}
	return vals, nil
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return true
	}
	return false
}

// checkSignature verifies that fn can serve as a listener for kind: it must
// be a non-variadic function whose parameter count matches the kind's, whose
// parameters can accept the kind's argument types, and whose results are
// either none or a single error.
func checkSignature(kind signal.Kind, fn any) error {
	ft := reflect.TypeOf(fn)
	if ft == nil || ft.Kind() != reflect.Func {
		return errors.Errorf("listener for signal %q must be a function, got %T", kind.Name(), fn)
	}
	if ft.IsVariadic() {
		return errors.Errorf("listener for signal %q cannot be variadic", kind.Name())
	}
	want := kind.ParameterCount()
	if ft.NumIn() != want {
		return &signal.SignatureError{Kind: kind.Name(), Want: want, Got: ft.NumIn()}
	}
	for i := 0; i < want; i++ {
		if !kind.Parameter(i).AssignableTo(ft.In(i)) {
			return &signal.SignatureError{
				Kind:     kind.Name(),
				Want:     want,
				Got:      want,
				Position: i + 1,
				WantType: kind.Parameter(i),
				GotType:  ft.In(i),
			}
		}
	}
	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) != errorType {
			return errors.Errorf("listener for signal %q may only return error, returns %s", kind.Name(), ft.Out(0))
		}
	default:
		return errors.Errorf("listener for signal %q may only return error, returns %d values", kind.Name(), ft.NumOut())
	}
	return nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
