package growbuf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	t.Run("grows in increments", func(t *testing.T) {
		b := NewBytes(Options{Increment: 4})
		assert.Equal(t, 4, b.Cap())

		for _, c := range []byte("hello") {
			require.NoError(t, b.WriteByte(c))
		}

		assert.Equal(t, "hello", b.String())
		assert.Equal(t, 5, b.Len())
		assert.Equal(t, 8, b.Cap())
	})

	t.Run("unbounded", func(t *testing.T) {
		b := NewBytes(Options{Increment: 1})
		for i := 0; i < 10000; i++ {
			require.NoError(t, b.WriteByte('x'))
		}
		assert.Equal(t, 10000, b.Len())
	})

	t.Run("limit", func(t *testing.T) {
		b := NewBytes(Options{Increment: 2, Limit: 3})
		require.NoError(t, b.WriteByte('a'))
		require.NoError(t, b.WriteByte('b'))
		require.NoError(t, b.WriteByte('c'))
		assert.Equal(t, 3, b.Cap())

		err := b.WriteByte('d')
		assert.True(t, errors.Is(err, ErrExhausted))
		assert.Equal(t, "abc", b.String())
	})

	t.Run("zero increment", func(t *testing.T) {
		b := NewBytes(Options{})
		require.NoError(t, b.WriteByte('a'))
		require.NoError(t, b.WriteByte('b'))
		assert.Equal(t, "ab", b.String())
	})
}

func TestStrings(t *testing.T) {
	t.Run("grows in increments", func(t *testing.T) {
		s := NewStrings(Options{Increment: 2})
		for _, item := range []string{"a", "b", "c"} {
			require.NoError(t, s.Append(item))
		}

		assert.Equal(t, []string{"a", "b", "c"}, s.Slice())
		assert.Equal(t, 4, s.Cap())
	})

	t.Run("limit", func(t *testing.T) {
		s := NewStrings(Options{Increment: 64, Limit: 2})
		assert.Equal(t, 2, s.Cap())
		require.NoError(t, s.Append("a"))
		require.NoError(t, s.Append("b"))
		assert.Equal(t, ErrExhausted, s.Append("c"))
		assert.Equal(t, 2, s.Len())
	})
}
