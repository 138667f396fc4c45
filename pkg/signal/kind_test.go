package signal

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKind(t *testing.T) {
	t.Run("interns by name", func(t *testing.T) {
		a := NewKind("kind.interned", Type[string]())
		b := NewKind("kind.interned", Type[string]())
		assert.Equal(t, a, b)
		assert.Equal(t, "kind.interned", a.Name())
		assert.Equal(t, 1, a.ParameterCount())
		assert.Equal(t, reflect.TypeOf(""), a.Parameter(0))
	})

	t.Run("redefining with a different shape panics", func(t *testing.T) {
		NewKind("kind.shape", Type[int]())
		assert.Panics(t, func() {
			NewKind("kind.shape", Type[string]())
		})
		assert.Panics(t, func() {
			NewKind("kind.shape")
		})
	})

	t.Run("empty name panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewKind("")
		})
	})

	t.Run("nil parameter type panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewKind("kind.nilparam", nil)
		})
	})
}

func TestLookupKind(t *testing.T) {
	k := NewKind("kind.lookup")
	got, ok := LookupKind("kind.lookup")
	require.True(t, ok)
	assert.Equal(t, k, got)

	_, ok = LookupKind("kind.never-defined")
	assert.False(t, ok)
}

func TestDefinedKindsExcludesInternal(t *testing.T) {
	public := NewKind("kind.public")
	internal := NewInternalKind("kind.internal")

	kinds := DefinedKinds()
	assert.Contains(t, kinds, public)
	assert.NotContains(t, kinds, internal)

	// Internal kinds stay resolvable by name, they are only hidden from
	// enumeration.
	_, ok := LookupKind("kind.internal")
	assert.True(t, ok)
}

func TestZeroKind(t *testing.T) {
	var k Kind
	assert.True(t, k.IsZero())
	assert.Equal(t, "", k.Name())
	assert.Equal(t, 0, k.ParameterCount())
	assert.False(t, NewKind("kind.nonzero").IsZero())
}

func TestType(t *testing.T) {
	assert.Equal(t, reflect.TypeOf(""), Type[string]())
	assert.Equal(t, reflect.TypeOf((*error)(nil)).Elem(), Type[error]())
	assert.Equal(t, reflect.TypeOf((*[]byte)(nil)).Elem(), Type[[]byte]())
}
