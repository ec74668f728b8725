package list

// Cursor walks the node chain of a list from a starting node.
//
// Next and Prev move one shared position. Calling Prev after three calls to
// Next steps back from where the cursor is now; it does not start over from
// the tail. Once the position runs off either end the cursor is exhausted
// and both directions return ("", false) from then on.
type Cursor struct {
	a       *arena
	current link
	owned   bool
}

func newCursor(a *arena, at link, owned bool) *Cursor {
	c := &Cursor{a: a, owned: owned}
	c.moveTo(at)
	return c
}

func (c *Cursor) moveTo(n link) {
	if !c.owned {
		if c.current != nilLink {
			c.a.at(c.current).pins--
		}
		if n != nilLink {
			c.a.at(n).pins++
		}
	}
	c.current = n
}

// Next returns the value at the current position and moves toward the tail.
func (c *Cursor) Next() (string, bool) {
	return c.advance(true)
}

// Prev returns the value at the current position and moves toward the head.
func (c *Cursor) Prev() (string, bool) {
	return c.advance(false)
}

func (c *Cursor) advance(forward bool) (string, bool) {
	if c.current == nilLink {
		return "", false
	}
	n := c.a.at(c.current)
	v, to := n.value, n.next
	if !forward {
		to = n.prev
	}
	c.moveTo(to)
	return v, true
}

// Collect drains the cursor toward the tail.
func (c *Cursor) Collect() []string {
	var vs []string
	for {
		v, ok := c.Next()
		if !ok {
			return vs
		}
		vs = append(vs, v)
	}
}

// Close exhausts the cursor and releases the node it was positioned on.
// It is safe to call Close more than once.
func (c *Cursor) Close() {
	c.moveTo(nilLink)
}

// Owned reports whether the cursor took the node chain from its list.
func (c *Cursor) Owned() bool {
	return c.owned
}
