package shapelang

import (
	"fmt"

	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/shape"
)

// Segment is an inventory entry: a symbol, the type of node it denotes and its
// features.
type Segment struct {
	Symbol   string
	Type     shape.NodeType
	Features feature.Bundle
}

func (seg *Segment) String() string {
	return fmt.Sprintf("<seg '%s' %s>", seg.Symbol, seg.Features)
}

// Inventory is a symbol table for segments. Inventories link back to a parent
// inventory, forming a tree; symbols not found in an inventory are searched for
// in its parent. This way a language may extend a common base inventory.
type Inventory struct {
	Name   string
	Parent *Inventory
	table  map[string]*Segment
}

// NewInventory creates an empty inventory.
func NewInventory(name string, parent *Inventory) *Inventory {
	return &Inventory{
		Name:   name,
		Parent: parent,
		table:  make(map[string]*Segment),
	}
}

func (inv *Inventory) String() string {
	return fmt.Sprintf("<inventory %s>", inv.Name)
}

// Define creates a new segment entry. The symbol may not be empty.
// Overwrites an existing entry with this symbol, if any.
// Returns the new entry and the previously stored entry (or nil).
func (inv *Inventory) Define(symbol string, features feature.Bundle) (*Segment, *Segment) {
	return inv.define(symbol, shape.Segment, features)
}

// DefineBoundary creates a new entry for a boundary symbol, e.g. "+" for a
// morpheme boundary.
func (inv *Inventory) DefineBoundary(symbol string, features feature.Bundle) (*Segment, *Segment) {
	return inv.define(symbol, shape.Boundary, features)
}

func (inv *Inventory) define(symbol string, typ shape.NodeType, features feature.Bundle) (*Segment, *Segment) {
	if len(symbol) == 0 {
		return nil, nil
	}
	seg := &Segment{Symbol: symbol, Type: typ, Features: features.Clone()}
	old := inv.table[symbol]
	inv.table[symbol] = seg
	return seg, old
}

// Resolve finds a segment. Returns the segment (or nil) and the inventory
// (of an inventory-tree-path) the segment was found in.
func (inv *Inventory) Resolve(symbol string) (*Segment, *Inventory) {
	for ; inv != nil; inv = inv.Parent {
		if seg, ok := inv.table[symbol]; ok {
			return seg, inv
		}
	}
	return nil, nil
}

// Size counts the entries of an inventory, not including its parents.
func (inv *Inventory) Size() int {
	return len(inv.table)
}

// Each iterates over each entry in the inventory, executing a mapper function.
func (inv *Inventory) Each(mapper func(string, *Segment)) {
	for k, v := range inv.table {
		mapper(k, v)
	}
}
