package capture

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

// Handle is a two-state holder: pending until Fill, read-only afterward.
type Handle struct {
	filled bool
	typ    reflect.Type
	value  error
	stack  []byte
}

// ForLater returns a pending handle. Accessors panic until it is filled.
func ForLater() *Handle {
	return &Handle{}
}

// Fill records the verified error and captures the current stack. It may
// be called at most once, and never with nil.
func (h *Handle) Fill(err error) {
	if h.filled {
		panic("capture: handle was already filled")
	}
	if err == nil {
		panic("capture: cannot fill handle with a nil error")
	}
	h.typ = reflect.TypeOf(err)
	h.value = err
	h.stack = debug.Stack()
	h.filled = true
}

// Filled reports whether the scoped block has exited successfully.
func (h *Handle) Filled() bool {
	return h.filled
}

// Type returns the verified error's concrete type.
func (h *Handle) Type() reflect.Type {
	h.mustFilled("Type")
	return h.typ
}

// Value returns the verified error.
func (h *Handle) Value() error {
	h.mustFilled("Value")
	return h.value
}

// Stack returns the stack captured when the handle was filled.
func (h *Handle) Stack() []byte {
	h.mustFilled("Stack")
	return h.stack
}

func (h *Handle) mustFilled(accessor string) {
	if !h.filled {
		panic(fmt.Sprintf("capture: %s can only be used after the scoped block exits", accessor))
	}
}
