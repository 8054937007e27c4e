package pattern

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/morphon"
	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/shape"
	"github.com/npillmayer/schuko/gconf"
)

// mark is the content of a save slot.
type mark struct {
	at    shape.NodeID // cursor (opening slot) or last consumed node (closing slot)
	count int          // number of nodes consumed so far
	set   bool
}

// loopState is the content of a loop register.
type loopState struct {
	count int // iterations so far
	start int // nodes consumed when the current iteration started
}

// undo is a trail entry, holding the previous content of a slot or loop register.
type undo struct {
	slot int // slot number, or -1 for a loop register
	loop int
	m    mark
	l    loopState
}

// cursor is the part of the machine state saved at choice points.
type cursor struct {
	pc       int
	cur      shape.NodeID // next node to consume
	last     shape.NodeID // last node consumed
	consumed int
	depth    int
	lazy     bool
}

type choice struct {
	cursor
	trail    int // length of the undo trail
	bindings int // bindings mark
}

// vm executes a program on a shape, backtracking over choice points.
type vm struct {
	cursor
	prog     *program
	settings *Settings
	shape    *shape.Shape
	bindings *feature.Bindings
	start    shape.NodeID
	slots    []mark
	loops    []loopState
	trail    []undo
	stack    *arraystack.Stack
	base     int // bindings mark at start
}

func newVM(prog *program, settings *Settings, s *shape.Shape, b *feature.Bindings, start shape.NodeID) *vm {
	return &vm{
		cursor:   cursor{cur: start, last: shape.Nil},
		prog:     prog,
		settings: settings,
		shape:    s,
		bindings: b,
		start:    start,
		slots:    make([]mark, 2*(prog.groups+1)),
		loops:    make([]loopState, prog.loops),
		stack:    arraystack.New(),
		base:     b.Mark(),
	}
}

// run executes instructions until the program accepts or every alternative has
// failed. In the latter case the bindings are restored to their initial state.
func (v *vm) run() bool {
	for {
		if !v.exec() {
			if !v.backtrack() {
				return false
			}
			continue
		}
		if v.prog.insts[v.pc].op == opMatch {
			return true
		}
	}
}

// exec executes the instruction at pc. It returns false if the instruction
// fails.
func (v *vm) exec() bool {
	i := &v.prog.insts[v.pc]
	switch i.op {
	case opNode:
		if !v.consume(i.node) {
			return false
		}
	case opSplit:
		v.push(i.y)
		v.pc = i.x
		return true
	case opJump:
		v.pc = i.x
		return true
	case opSave:
		v.save(i.x)
	case opLoopInit:
		v.setLoop(i.x, loopState{start: -1})
	case opLoop:
		c := v.loops[i.x].count
		switch {
		case c < i.min:
			v.pc++
		case i.max != Unbounded && c >= i.max:
			v.pc = i.y
		case i.lazy:
			v.lazy = true
			v.push(v.pc + 1)
			v.pc = i.y
		default:
			v.push(i.y)
			v.pc++
		}
		return true
	case opLoopEnter:
		v.depth++
		if v.depth > v.settings.MaxDepth {
			if gconf.GetBool("panic-on-depth-exceeded") {
				panic(fmt.Sprintf("pattern %s: depth %d exceeded", v.settings.ID, v.settings.MaxDepth))
			}
			tracer().Debugf("depth %d exceeded", v.settings.MaxDepth)
			return false
		}
		l := v.loops[i.x]
		v.setLoop(i.x, loopState{count: l.count + 1, start: v.consumed})
	case opLoopCheck:
		l := v.loops[i.x]
		if l.start == v.consumed && l.count > i.min {
			return false // iteration did not consume anything
		}
		v.pc = i.y
		return true
	case opAssert:
		if !v.assert(v.prog.asserts[i.x]) {
			return false
		}
	case opMatch:
		return true
	}
	v.pc++
	return true
}

// consume matches the node at the cursor against a constraint.
func (v *vm) consume(c *constraint) bool {
	if v.shape.IsSentinel(v.cur) {
		return false
	}
	n := v.shape.Node(v.cur)
	if !v.settings.Filter(n) || n.IsDeleted() || !n.Type.Has(c.types) {
		return false
	}
	if !c.bundle.Unify(n.Features, v.settings.Defaults, v.bindings) {
		return false
	}
	v.last = v.cur
	v.cur = v.shape.Step(v.cur, v.prog.dir, v.settings.Filter)
	v.consumed++
	return true
}

// assert evaluates a context assertion at the cursor. Assertions are atomic: the
// first match of the sub-program decides. Bindings of a successful positive
// assertion are kept.
func (v *vm) assert(a *assertion) bool {
	var start shape.NodeID
	switch {
	case a.ahead && v.prog.dir == morphon.LeftToRight:
		start = v.cur
	case a.ahead:
		start = v.shape.Step(v.cur, morphon.LeftToRight, v.settings.Filter)
	case v.prog.dir == morphon.LeftToRight:
		start = v.shape.Step(v.cur, morphon.RightToLeft, v.settings.Filter)
	default:
		start = v.cur
	}
	sub := newVM(a.prog, v.settings, v.shape, v.bindings, start)
	ok := sub.run()
	if a.negated {
		if ok {
			v.bindings.Undo(sub.base)
		}
		return !ok
	}
	return ok
}

func (v *vm) push(pc int) {
	c := choice{cursor: v.cursor, trail: len(v.trail), bindings: v.bindings.Mark()}
	c.pc = pc
	v.stack.Push(c)
}

// backtrack restores the state of the most recent choice point. If there is
// none, the initial bindings are restored and backtrack returns false.
func (v *vm) backtrack() bool {
	top, ok := v.stack.Pop()
	if !ok {
		v.undoTrail(0)
		v.bindings.Undo(v.base)
		return false
	}
	c := top.(choice)
	v.cursor = c.cursor
	v.undoTrail(c.trail)
	v.bindings.Undo(c.bindings)
	return true
}

func (v *vm) save(slot int) {
	v.trail = append(v.trail, undo{slot: slot, m: v.slots[slot]})
	at := v.cur
	if slot%2 == 1 {
		at = v.last
	}
	v.slots[slot] = mark{at: at, count: v.consumed, set: true}
}

func (v *vm) setLoop(k int, l loopState) {
	v.trail = append(v.trail, undo{slot: -1, loop: k, l: v.loops[k]})
	v.loops[k] = l
}

func (v *vm) undoTrail(length int) {
	for len(v.trail) > length {
		u := v.trail[len(v.trail)-1]
		v.trail = v.trail[:len(v.trail)-1]
		if u.slot >= 0 {
			v.slots[u.slot] = u.m
		} else {
			v.loops[u.loop] = u.l
		}
	}
}

// result creates a match from the current state. It must be called in the
// accepting state only.
func (v *vm) result() *Match {
	regs := newRegisters()
	for g := 0; g <= v.prog.groups; g++ {
		opening, closing := v.slots[2*g], v.slots[2*g+1]
		if !opening.set || !closing.set {
			continue
		}
		regs.set(g, regGap, opening.at)
		if closing.count > opening.count {
			first, last := opening.at, closing.at
			if v.prog.dir == morphon.RightToLeft {
				first, last = last, first
			}
			regs.set(g, regStart, first)
			regs.set(g, regEnd, last)
		}
	}
	return &Match{
		ID:        v.settings.ID,
		Registers: regs,
		Output:    v.shape,
		Bindings:  v.bindings.Clone(),
		Priority:  v.settings.Priority,
		Lazy:      v.lazy,
		Start:     v.start,
		Next:      v.cur,
		Depth:     v.depth,
	}
}
