package list

import (
	"errors"
	"fmt"
)

var (
	// ErrListConsumed is the panic value of any call on a List whose node
	// chain was handed to an owning cursor by IntoIter or BackIter.
	ErrListConsumed = errors.New("txlog: list was consumed by an owning cursor")

	// ErrNodeShared reports that a node leaving the list is still referenced
	// from outside of it.
	ErrNodeShared = errors.New("node is still referenced")
)

// InvariantError is the panic value of Pop when the head node cannot be
// released because a borrowing cursor is positioned on it.
type InvariantError struct {
	Slot int
	Pins int
	Err  error
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("txlog: slot %d: %v by %d cursor(s)", e.Slot, e.Err, e.Pins)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
