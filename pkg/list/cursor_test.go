package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func next(t *testing.T, c *Cursor) string {
	t.Helper()
	v, ok := c.Next()
	require.True(t, ok)
	return v
}

func prev(t *testing.T, c *Cursor) string {
	t.Helper()
	v, ok := c.Prev()
	require.True(t, ok)
	return v
}

func Test_Cursor_sharedPosition(t *testing.T) {
	l := newList("a", "b", "c", "d", "e")
	c := l.Iter()

	require.Equal(t, "a", next(t, c))
	require.Equal(t, "b", next(t, c))
	require.Equal(t, "c", next(t, c))

	// Positioned at "d": stepping back yields "d" and then walks toward the
	// head. It never jumps to the tail.
	require.Equal(t, "d", prev(t, c))
	require.Equal(t, "c", prev(t, c))
	require.Equal(t, "b", next(t, c))
	require.Equal(t, "c", prev(t, c))
	require.Equal(t, "b", prev(t, c))
	require.Equal(t, "a", prev(t, c))

	_, ok := c.Prev()
	require.False(t, ok)
	require.Zero(t, totalPins(l))
}

func Test_Cursor_exhausted(t *testing.T) {
	l := newList("a", "b")
	c := l.Iter()
	require.Equal(t, []string{"a", "b"}, c.Collect())

	for i := 0; i < 3; i++ {
		_, ok := c.Next()
		require.False(t, ok)
		_, ok = c.Prev()
		require.False(t, ok)
	}
	require.Empty(t, c.Collect())
}

func Test_Cursor_backIterForward(t *testing.T) {
	l := newList("a", "b", "c")
	c := l.BackIter()
	require.Equal(t, "c", next(t, c))
	_, ok := c.Next()
	require.False(t, ok)
}

func Test_Cursor_seesLaterAppends(t *testing.T) {
	l := newList("a")
	c := l.Iter()
	l.Append("b")
	require.Equal(t, []string{"a", "b"}, c.Collect())
}

func Test_Cursor_pins(t *testing.T) {
	l := newList("a", "b", "c")
	c1, c2 := l.Iter(), l.Iter()
	require.Equal(t, 2, l.a.at(l.head).pins)

	next(t, c1)
	require.Equal(t, 1, l.a.at(l.head).pins)
	require.Equal(t, 2, totalPins(l))

	c1.Close()
	c2.Close()
	require.Zero(t, totalPins(l))

	// Owning cursors never pin.
	o := l.IntoIter()
	require.Equal(t, "a", next(t, o))
	for _, n := range o.a.nodes {
		require.Zero(t, n.pins)
	}
}
