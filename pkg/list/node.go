package list

// link addresses a slot of the arena. The zero link is "no node".
type link uint32

const nilLink link = 0

// Node is one entry of the log. Its neighbors are arena slots, not pointers,
// so two adjacent nodes never own each other.
type Node struct {
	value      string
	next, prev link

	// Number of borrowing cursors currently positioned on this node.
	pins int
	live bool
}

// arena owns every node of a list. Slot 0 is reserved for nilLink.
type arena struct {
	nodes []Node
	free  []link
	reuse bool
}

func newArena(capacity int, reuse bool) *arena {
	if capacity < 0 {
		capacity = 0
	}
	return &arena{
		nodes: make([]Node, 1, capacity+1),
		reuse: reuse,
	}
}

func (a *arena) at(l link) *Node {
	return &a.nodes[l]
}

// alloc stores v in a free slot, or a new one, and reports whether the
// backing storage had to grow.
func (a *arena) alloc(v string) (l link, grown bool) {
	if n := len(a.free); n > 0 {
		l = a.free[n-1]
		a.free = a.free[:n-1]
		a.nodes[l] = Node{value: v, live: true}
		return l, false
	}

	c := cap(a.nodes)
	a.nodes = append(a.nodes, Node{value: v, live: true})
	return link(len(a.nodes) - 1), cap(a.nodes) != c
}

// release invalidates slot l and returns the payload it held.
func (a *arena) release(l link) string {
	n := &a.nodes[l]
	v := n.value
	*n = Node{}
	if a.reuse {
		a.free = append(a.free, l)
	}
	return v
}

// slots returns the number of usable slots, live or not.
func (a *arena) slots() int {
	return len(a.nodes) - 1
}
