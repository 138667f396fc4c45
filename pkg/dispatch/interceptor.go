package dispatch

import (
	"reflect"

	"github.com/rs/zerolog"

	"signalkit/pkg/signal"
)

// InvokeFunc performs one dispatch: fanning args out to sig's listeners.
type InvokeFunc func(sig *signal.Signal, args []reflect.Value) error

// Interceptor decorates an InvokeFunc. Interceptors run after kind
// resolution and argument validation, so they only observe dispatches that
// will actually fan out.
type Interceptor func(next InvokeFunc) InvokeFunc

// chain composes interceptors around core, first interceptor outermost.
func chain(core InvokeFunc, interceptors []Interceptor) InvokeFunc {
	h := core
	for i := len(interceptors) - 1; i >= 0; i-- {
		h = interceptors[i](h)
	}
	return h
}

// LoggingInterceptor traces every dispatch to l at debug level: the kind,
// argument count, listener count and outcome.
func LoggingInterceptor(l zerolog.Logger) Interceptor {
	return func(next InvokeFunc) InvokeFunc {
		return func(sig *signal.Signal, args []reflect.Value) error {
			err := next(sig, args)
			l.Debug().
				Str("signal", sig.Kind().Name()).
				Int("args", len(args)).
				Int("listeners", sig.Len()).
				Err(err).
				Msg("dispatched")
			return err
		}
	}
}
