// Package list implements a transaction log: an ordered, doubly linked
// container of strings with O(1) append at the tail, O(1) pop at the head,
// and cursors that walk the chain in both directions.
//
// Nodes are kept in an arena owned by the List and link to each other by
// slot index, so no node ever owns its neighbors.
//
// A List is not safe for concurrent use.
package list

import (
	"fmt"
	"iter"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/pmkol/txlog/mlog"
)

type Options struct {
	// Capacity preallocates node slots.
	Capacity int `yaml:"capacity"`

	// DisableSlotReuse keeps popped slots unused instead of handing them
	// to later appends.
	DisableSlotReuse bool `yaml:"disable_slot_reuse"`
}

type Option func(l *List)

func WithOptions(opts Options) Option {
	return func(l *List) {
		l.opts = opts
	}
}

func WithLogger(lg *zap.Logger) Option {
	return func(l *List) {
		l.logger = lg
	}
}

// List is a transaction log. The zero value is an empty list ready to use.
type List struct {
	opts   Options
	logger *zap.Logger

	a          *arena
	head, tail link
	length     int

	appends, pops uint64
	consumed      bool
}

// Stats is a snapshot of a list's counters.
type Stats struct {
	Length    int
	Appends   uint64
	Pops      uint64
	Slots     int
	FreeSlots int
}

func New(opts ...Option) *List {
	l := new(List)
	for _, opt := range opts {
		opt(l)
	}
	l.lazyInit()
	return l
}

func (l *List) lazyInit() {
	if l.consumed {
		panic(ErrListConsumed)
	}
	if l.logger == nil {
		l.logger = mlog.Nop()
	}
	if l.a == nil {
		l.a = newArena(l.opts.Capacity, !l.opts.DisableSlotReuse)
	}
}

func (l *List) Len() int {
	l.lazyInit()
	return l.length
}

// Append adds v at the tail.
func (l *List) Append(v string) {
	l.lazyInit()

	n, grown := l.a.alloc(v)
	if grown {
		l.logger.Debug("arena grown", zap.Int("slots", cap(l.a.nodes)-1), zap.Int("length", l.length))
	}

	if l.tail == nilLink {
		l.head = n
	} else {
		l.a.at(l.tail).next = n
		l.a.at(n).prev = l.tail
	}
	l.tail = n
	l.length++
	l.appends++
}

// Pop removes the head node and returns its value. ok is false if the list
// is empty.
//
// Pop panics with an *InvariantError if a borrowing cursor is positioned on
// the head node. The list is left unchanged in that case.
func (l *List) Pop() (v string, ok bool) {
	l.lazyInit()

	h := l.head
	if h == nilLink {
		return "", false
	}

	hn := l.a.at(h)
	if hn.pins > 0 {
		err := &InvariantError{Slot: int(h), Pins: hn.pins, Err: ErrNodeShared}
		l.logger.Error("cannot release head node", zap.Int("slot", int(h)), zap.Int("pins", hn.pins), zap.Error(err))
		panic(err)
	}

	if next := hn.next; next != nilLink {
		l.a.at(next).prev = nilLink
		l.head = next
	} else {
		l.head = nilLink
		l.tail = nilLink
	}
	l.length--
	l.pops++
	return l.a.release(h), true
}

// Front returns the value at the head without removing it.
func (l *List) Front() (string, bool) {
	l.lazyInit()
	if l.head == nilLink {
		return "", false
	}
	return l.a.at(l.head).value, true
}

// Back returns the value at the tail without removing it.
func (l *List) Back() (string, bool) {
	l.lazyInit()
	if l.tail == nilLink {
		return "", false
	}
	return l.a.at(l.tail).value, true
}

// Iter returns a borrowing cursor positioned at the head. The list stays
// usable and Iter may be called any number of times.
//
// The cursor pins the node it is positioned on until it moves past it, runs
// out, or is closed. A pinned node cannot be popped, so a caller that stops
// before the cursor runs out must call Close. All does that itself.
func (l *List) Iter() *Cursor {
	l.lazyInit()
	return newCursor(l.a, l.head, false)
}

// All returns the values from head to tail for use with range. Leaving the
// loop early releases the underlying cursor.
func (l *List) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		c := l.Iter()
		defer c.Close()
		for {
			v, ok := c.Next()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// IntoIter hands the node chain to a cursor positioned at the head. Any
// later call on l panics with ErrListConsumed.
func (l *List) IntoIter() *Cursor {
	return l.consume(false)
}

// BackIter hands the node chain to a cursor positioned at the tail, meant
// to be walked with Prev. Any later call on l panics with ErrListConsumed.
func (l *List) BackIter() *Cursor {
	return l.consume(true)
}

func (l *List) consume(fromTail bool) *Cursor {
	l.lazyInit()

	at := l.head
	if fromTail {
		at = l.tail
	}
	c := newCursor(l.a, at, true)

	l.a = nil
	l.head, l.tail = nilLink, nilLink
	l.length = 0
	l.consumed = true
	return c
}

// Clone returns an independent copy of l in a freshly packed arena.
func (l *List) Clone() *List {
	l.lazyInit()

	opts := l.opts
	if opts.Capacity < l.length {
		opts.Capacity = l.length
	}
	c := New(WithOptions(opts), WithLogger(l.logger))
	for n := l.head; n != nilLink; n = l.a.at(n).next {
		c.Append(l.a.at(n).value)
	}
	return c
}

// Stats may be called on a consumed list.
func (l *List) Stats() Stats {
	s := Stats{
		Length:  l.length,
		Appends: l.appends,
		Pops:    l.pops,
	}
	if l.a != nil {
		s.Slots = l.a.slots()
		s.FreeSlots = len(l.a.free)
	}
	return s
}

// Validate walks the whole chain and returns every broken structural
// invariant it finds, or nil.
func (l *List) Validate() error {
	if l.consumed {
		return ErrListConsumed
	}
	if l.a == nil {
		if l.head != nilLink || l.tail != nilLink || l.length != 0 {
			return fmt.Errorf("uninitialized list has head %d, tail %d, length %d", l.head, l.tail, l.length)
		}
		return nil
	}

	var err error
	emptyHead, emptyTail, zeroLen := l.head == nilLink, l.tail == nilLink, l.length == 0
	if emptyHead != emptyTail || emptyTail != zeroLen {
		err = multierr.Append(err, fmt.Errorf("head %d, tail %d and length %d disagree on emptiness", l.head, l.tail, l.length))
	}
	if l.head != nilLink && l.a.at(l.head).prev != nilLink {
		err = multierr.Append(err, fmt.Errorf("head %d has prev %d", l.head, l.a.at(l.head).prev))
	}
	if l.tail != nilLink && l.a.at(l.tail).next != nilLink {
		err = multierr.Append(err, fmt.Errorf("tail %d has next %d", l.tail, l.a.at(l.tail).next))
	}

	// A chain longer than the arena means a cycle.
	limit := l.a.slots()
	reached, last := 0, nilLink
	for n := l.head; n != nilLink; n = l.a.at(n).next {
		if reached > limit {
			err = multierr.Append(err, fmt.Errorf("chain from head %d does not terminate", l.head))
			return err
		}
		node := l.a.at(n)
		if !node.live {
			err = multierr.Append(err, fmt.Errorf("slot %d is linked but not live", n))
		}
		if m := node.next; m != nilLink && l.a.at(m).prev != n {
			err = multierr.Append(err, fmt.Errorf("slot %d links next %d but %d links prev %d", n, m, m, l.a.at(m).prev))
		}
		reached++
		last = n
	}
	if last != l.tail {
		err = multierr.Append(err, fmt.Errorf("chain ends at %d but tail is %d", last, l.tail))
	}
	if reached != l.length {
		err = multierr.Append(err, fmt.Errorf("length is %d but %d nodes are reachable", l.length, reached))
	}
	return err
}
