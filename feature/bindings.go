package feature

import (
	"fmt"
	"strings"
)

// Bindings hold the values variables have been bound to during a match attempt.
// Bindings are append-only: a variable, once bound, keeps its value until the
// binding is undone.
//
// Every binding is recorded on a trail. Mark returns the current length of the
// trail, and Undo reverts all bindings made after a mark. A backtracking matcher
// marks the bindings at every choice point.
type Bindings struct {
	values map[string]Value
	trail  []string
}

// NewBindings creates an empty set of bindings.
func NewBindings() *Bindings {
	return &Bindings{values: make(map[string]Value)}
}

// Lookup returns the value bound to a variable name.
func (b *Bindings) Lookup(name string) (Value, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[name]
	return v, ok
}

// Bind binds a variable to a value. Re-binding a variable is a programming error.
func (b *Bindings) Bind(name string, v Value) {
	if _, ok := b.values[name]; ok {
		panic(fmt.Sprintf("variable %s already bound", name))
	}
	b.values[name] = v
	b.trail = append(b.trail, name)
}

// Mark returns a mark for the current state of the bindings.
func (b *Bindings) Mark() int {
	if b == nil {
		return 0
	}
	return len(b.trail)
}

// Undo reverts all bindings made after mark.
func (b *Bindings) Undo(mark int) {
	if b == nil {
		return
	}
	for len(b.trail) > mark {
		name := b.trail[len(b.trail)-1]
		b.trail = b.trail[:len(b.trail)-1]
		delete(b.values, name)
	}
}

// Len returns the number of bound variables.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.trail)
}

// Clone copies the bindings. The copy starts with a trail containing all
// current bindings in binding order.
func (b *Bindings) Clone() *Bindings {
	c := NewBindings()
	if b == nil {
		return c
	}
	for _, name := range b.trail {
		c.Bind(name, b.values[name])
	}
	return c
}

// Names returns the bound variable names in binding order.
func (b *Bindings) Names() []string {
	if b == nil {
		return nil
	}
	names := make([]string, len(b.trail))
	copy(names, b.trail)
	return names
}

func (b *Bindings) String() string {
	if b.Len() == 0 {
		return "{}"
	}
	pairs := make([]string, 0, len(b.trail))
	for _, name := range b.trail {
		pairs = append(pairs, fmt.Sprintf("%s=%s", name, b.values[name]))
	}
	return "{" + strings.Join(pairs, " ") + "}"
}

// Dump writes the bindings to the trace at debug level.
func (b *Bindings) Dump() {
	tracer().Debugf("bindings %s", b.String())
}
