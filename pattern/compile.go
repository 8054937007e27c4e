package pattern

import (
	"errors"
	"fmt"

	"github.com/npillmayer/morphon"
	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/shape"
)

// ErrInvalidPattern is returned for malformed pattern expressions.
var ErrInvalidPattern = errors.New("invalid pattern")

type opcode uint8

const (
	opNode      opcode = iota // consume one node satisfying a constraint
	opSplit                   // continue at x, push a choice point for y
	opJump                    // continue at x
	opSave                    // record the position for save slot x
	opLoopInit                // reset the counter of loop x
	opLoop                    // decide between another iteration of loop x and exit (y)
	opLoopEnter               // start an iteration of loop x
	opLoopCheck               // end an iteration of loop x, continue at y
	opAssert                  // evaluate assertion x
	opMatch                   // accept
)

var opnames = [...]string{"node", "split", "jump", "save", "loopinit", "loop",
	"enter", "check", "assert", "match"}

func (op opcode) String() string {
	return opnames[op]
}

// inst is an instruction of a compiled pattern.
type inst struct {
	op       opcode
	x, y     int
	min, max int
	lazy     bool
	node     *constraint
}

func (i inst) String() string {
	switch i.op {
	case opNode:
		return fmt.Sprintf("%-8s %s %s", i.op, i.node.types, i.node.bundle)
	case opLoop:
		return fmt.Sprintf("%-8s %d exit=%d {%d,%d} lazy=%v", i.op, i.x, i.y, i.min, i.max, i.lazy)
	case opMatch:
		return i.op.String()
	}
	return fmt.Sprintf("%-8s %d %d", i.op, i.x, i.y)
}

type constraint struct {
	types  shape.NodeType
	bundle feature.Bundle
}

type assertion struct {
	prog    *program
	ahead   bool
	negated bool
}

// program is a compiled pattern for one direction of matching.
type program struct {
	insts   []inst
	dir     morphon.Direction
	loops   int          // number of loop registers
	groups  int          // highest group number
	asserts []*assertion // sub-programs for context assertions
}

// compile translates a pattern expression into a program. Group 0, spanning the
// whole match, is added by compile.
func compile(e *Expr, dir morphon.Direction) (*program, error) {
	c := &compiler{prog: &program{dir: dir, groups: e.MaxGroup()}}
	c.emit(inst{op: opSave, x: 0})
	if err := c.compile(e); err != nil {
		return nil, err
	}
	c.emit(inst{op: opSave, x: 1})
	c.emit(inst{op: opMatch})
	return c.prog, nil
}

type compiler struct {
	prog *program
}

func (c *compiler) emit(i inst) int {
	c.prog.insts = append(c.prog.insts, i)
	return len(c.prog.insts) - 1
}

func (c *compiler) pc() int {
	return len(c.prog.insts)
}

func (c *compiler) compile(e *Expr) error {
	if e == nil {
		return fmt.Errorf("%w: nil expression", ErrInvalidPattern)
	}
	switch e.kind {
	case nodeExpr:
		if e.types == 0 {
			return fmt.Errorf("%w: constraint without node type", ErrInvalidPattern)
		}
		c.emit(inst{op: opNode, node: &constraint{types: e.types, bundle: e.bundle}})
	case seqExpr:
		for i := range e.children {
			ch := e.children[i]
			if c.prog.dir == morphon.RightToLeft {
				ch = e.children[len(e.children)-1-i]
			}
			if err := c.compile(ch); err != nil {
				return err
			}
		}
	case altExpr:
		return c.compileAlt(e.children)
	case repeatExpr:
		return c.compileRepeat(e)
	case groupExpr:
		if e.group < 1 {
			return fmt.Errorf("%w: group number %d, must be positive", ErrInvalidPattern, e.group)
		}
		c.emit(inst{op: opSave, x: 2 * e.group})
		if err := c.compile(e.children[0]); err != nil {
			return err
		}
		c.emit(inst{op: opSave, x: 2*e.group + 1})
	case assertExpr:
		dir := morphon.RightToLeft
		if e.ahead {
			dir = morphon.LeftToRight
		}
		sub, err := compile(e.children[0], dir)
		if err != nil {
			return err
		}
		c.prog.asserts = append(c.prog.asserts, &assertion{prog: sub, ahead: e.ahead, negated: e.negated})
		c.emit(inst{op: opAssert, x: len(c.prog.asserts) - 1})
	default:
		panic(fmt.Sprintf("unknown expression kind %d", e.kind))
	}
	return nil
}

// compileAlt emits a chain of splits, one per alternative but the last:
//
//	      split L1, next
//	L1:   child 1
//	      jump end
//	next: …
//	end:
func (c *compiler) compileAlt(children []*Expr) error {
	if len(children) == 0 {
		return fmt.Errorf("%w: empty alternation", ErrInvalidPattern)
	}
	var jumps []int
	for i, ch := range children {
		split := -1
		if i < len(children)-1 {
			split = c.emit(inst{op: opSplit})
			c.prog.insts[split].x = c.pc()
		}
		if err := c.compile(ch); err != nil {
			return err
		}
		if split >= 0 {
			jumps = append(jumps, c.emit(inst{op: opJump}))
			c.prog.insts[split].y = c.pc()
		}
	}
	for _, j := range jumps {
		c.prog.insts[j].x = c.pc()
	}
	return nil
}

// compileRepeat emits a counted loop:
//
//	      loopinit k
//	L:    loop k, body, exit
//	body: enter k
//	      child
//	      check k, L
//	exit:
func (c *compiler) compileRepeat(e *Expr) error {
	if e.min < 0 || (e.max != Unbounded && e.max < e.min) {
		return fmt.Errorf("%w: repetition bounds {%d,%d}", ErrInvalidPattern, e.min, e.max)
	}
	if e.max == 0 {
		return nil
	}
	k := c.prog.loops
	c.prog.loops++
	c.emit(inst{op: opLoopInit, x: k})
	loop := c.emit(inst{op: opLoop, x: k, min: e.min, max: e.max, lazy: e.lazy})
	c.emit(inst{op: opLoopEnter, x: k})
	if err := c.compile(e.children[0]); err != nil {
		return err
	}
	c.emit(inst{op: opLoopCheck, x: k, y: loop, min: e.min})
	c.prog.insts[loop].y = c.pc()
	return nil
}

// dump writes a program to the trace at debug level.
func (prog *program) dump() {
	tracer().Debugf("--- program (%s) ---------------------------", prog.dir)
	for pc, i := range prog.insts {
		tracer().Debugf("%3d  %s", pc, i)
	}
	for n, a := range prog.asserts {
		tracer().Debugf("assertion %d (ahead=%v, negated=%v):", n, a.ahead, a.negated)
		a.prog.dump()
	}
}
