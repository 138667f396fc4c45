package signal

import (
	"fmt"
	"reflect"
)

// UnregisteredError reports an invoke or bind against a kind that the active
// registry does not know about.
type UnregisteredError struct {
	Name string
}

func (e *UnregisteredError) Error() string {
	return fmt.Sprintf("signal %q is not registered", e.Name)
}

// ArityError reports an invocation with the wrong number of arguments.
type ArityError struct {
	Kind string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("signal %q expects %d arguments, got %d", e.Kind, e.Want, e.Got)
}

// TypeError reports an argument whose runtime type is not assignable to the
// declared parameter type. Position is 1-based.
type TypeError struct {
	Kind     string
	Position int
	Want     reflect.Type
	Got      reflect.Type
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("signal %q: argument %d: expected %s, got %s", e.Kind, e.Position, e.Want, e.Got)
}

// NilArgumentError reports a nil argument supplied for a parameter whose type
// cannot hold nil. Position is 1-based.
type NilArgumentError struct {
	Kind     string
	Position int
	Want     reflect.Type
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("signal %q: argument %d: nil is not a valid %s", e.Kind, e.Position, e.Want)
}

// DuplicateListenerError reports a second AddListener for an (owner, callback)
// pair already bound to the signal.
type DuplicateListenerError struct {
	Kind string
}

func (e *DuplicateListenerError) Error() string {
	return fmt.Sprintf("listener is already bound to signal %q", e.Kind)
}

// SignatureError reports a listener function whose declared parameters do not
// fit the signal's shape: either the counts disagree (Position == 0) or the
// parameter at the 1-based Position cannot accept the signal's argument type.
type SignatureError struct {
	Kind     string
	Want     int
	Got      int
	Position int
	WantType reflect.Type
	GotType  reflect.Type
}

func (e *SignatureError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("signal %q: listener parameter %d is %s, signal carries %s",
			e.Kind, e.Position, e.GotType, e.WantType)
	}
	return fmt.Sprintf("signal %q: listener declares %d parameters, signal carries %d",
		e.Kind, e.Got, e.Want)
}
