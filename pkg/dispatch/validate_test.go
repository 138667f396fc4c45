package dispatch

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signalkit/pkg/signal"
)

type reader interface {
	Read(p []byte) (int, error)
}

var (
	kindPair  = signal.NewKind("validate.pair", signal.Type[string](), signal.Type[int]())
	kindIface = signal.NewKind("validate.iface", signal.Type[reader]())
	kindEmpty = signal.NewKind("validate.empty")
)

func TestBuildArgs(t *testing.T) {
	t.Run("valid arguments", func(t *testing.T) {
		vals, err := buildArgs(kindPair, []any{"hi", 3})
		require.NoError(t, err)
		require.Len(t, vals, 2)
		assert.Equal(t, "hi", vals[0].Interface())
		assert.Equal(t, 3, vals[1].Interface())
	})

	t.Run("zero arity", func(t *testing.T) {
		vals, err := buildArgs(kindEmpty, nil)
		require.NoError(t, err)
		assert.Empty(t, vals)
	})

	t.Run("too few arguments", func(t *testing.T) {
		_, err := buildArgs(kindPair, []any{"hi"})
		var arity *signal.ArityError
		require.ErrorAs(t, err, &arity)
		assert.Equal(t, 2, arity.Want)
		assert.Equal(t, 1, arity.Got)
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, err := buildArgs(kindEmpty, []any{1})
		var arity *signal.ArityError
		require.ErrorAs(t, err, &arity)
		assert.Equal(t, 0, arity.Want)
		assert.Equal(t, 1, arity.Got)
	})

	t.Run("wrong type reports 1-based position", func(t *testing.T) {
		_, err := buildArgs(kindPair, []any{"hi", "three"})
		var te *signal.TypeError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, 2, te.Position)
		assert.Equal(t, reflect.TypeOf(0), te.Want)
		assert.Equal(t, reflect.TypeOf(""), te.Got)
	})

	t.Run("nil for a value parameter", func(t *testing.T) {
		_, err := buildArgs(kindPair, []any{nil, 3})
		var ne *signal.NilArgumentError
		require.ErrorAs(t, err, &ne)
		assert.Equal(t, 1, ne.Position)
	})

	t.Run("nil for an interface parameter", func(t *testing.T) {
		vals, err := buildArgs(kindIface, []any{nil})
		require.NoError(t, err)
		assert.True(t, vals[0].IsZero())
	})

	t.Run("concrete value for an interface parameter", func(t *testing.T) {
		_, err := buildArgs(kindIface, []any{42})
		var te *signal.TypeError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, 1, te.Position)
	})
}

func TestCheckSignature(t *testing.T) {
	t.Run("matching shape", func(t *testing.T) {
		assert.NoError(t, checkSignature(kindPair, func(s string, n int) {}))
		assert.NoError(t, checkSignature(kindPair, func(s string, n int) error { return nil }))
	})

	t.Run("wider parameter types are accepted", func(t *testing.T) {
		assert.NoError(t, checkSignature(kindPair, func(s any, n any) {}))
	})

	t.Run("parameter count mismatch", func(t *testing.T) {
		err := checkSignature(kindPair, func(s string) {})
		var se *signal.SignatureError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 2, se.Want)
		assert.Equal(t, 1, se.Got)
		assert.Equal(t, 0, se.Position)
	})

	t.Run("parameter type mismatch", func(t *testing.T) {
		err := checkSignature(kindPair, func(s string, n string) {})
		var se *signal.SignatureError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 2, se.Position)
	})

	t.Run("non-function", func(t *testing.T) {
		assert.Error(t, checkSignature(kindEmpty, 42))
		assert.Error(t, checkSignature(kindEmpty, nil))
	})

	t.Run("variadic listener", func(t *testing.T) {
		assert.Error(t, checkSignature(kindEmpty, func(extra ...int) {}))
	})

	t.Run("non-error results", func(t *testing.T) {
		assert.Error(t, checkSignature(kindEmpty, func() int { return 0 }))
		assert.Error(t, checkSignature(kindEmpty, func() (int, error) { return 0, nil }))
	})
}
