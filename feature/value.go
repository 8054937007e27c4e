package feature

import (
	"sort"
	"strings"
)

// Value is an opaque feature value.
//
// Unify is called on values appearing in patterns, with the value found on a node
// as argument. Equal is used to compare variable bindings.
type Value interface {
	Unify(Value) bool
	Equal(Value) bool
	String() string
}

// --- Symbols ---------------------------------------------------------------

// Symbol is an atomic feature value.
type Symbol string

// Binary feature values.
const (
	Plus  Symbol = "+"
	Minus Symbol = "-"
)

// Unify is part of interface Value.
func (s Symbol) Unify(other Value) bool {
	switch v := other.(type) {
	case Symbol:
		return s == v
	case SymbolSet:
		return v.Contains(s)
	}
	return false
}

// Equal is part of interface Value.
func (s Symbol) Equal(other Value) bool {
	v, ok := other.(Symbol)
	return ok && v == s
}

func (s Symbol) String() string {
	return string(s)
}

// Negate flips a binary value. Returns false for non-binary symbols.
func Negate(v Value) (Value, bool) {
	switch v {
	case Plus:
		return Minus, true
	case Minus:
		return Plus, true
	}
	return nil, false
}

// --- Symbol sets -----------------------------------------------------------

// SymbolSet is a disjunction of symbols. Create one with NewSymbolSet.
type SymbolSet []Symbol

// NewSymbolSet creates a sorted set of symbols without duplicates.
func NewSymbolSet(symbols ...Symbol) SymbolSet {
	set := make(SymbolSet, 0, len(symbols))
	for _, s := range symbols {
		if !set.Contains(s) {
			set = append(set, s)
		}
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}

// Contains checks for membership of a symbol.
func (set SymbolSet) Contains(s Symbol) bool {
	for _, m := range set {
		if m == s {
			return true
		}
	}
	return false
}

// Unify is part of interface Value. A set unifies with a symbol it contains and
// with every set it shares a member with.
func (set SymbolSet) Unify(other Value) bool {
	switch v := other.(type) {
	case Symbol:
		return set.Contains(v)
	case SymbolSet:
		for _, s := range v {
			if set.Contains(s) {
				return true
			}
		}
	}
	return false
}

// Equal is part of interface Value.
func (set SymbolSet) Equal(other Value) bool {
	v, ok := other.(SymbolSet)
	if !ok || len(v) != len(set) {
		return false
	}
	for i := range set {
		if set[i] != v[i] {
			return false
		}
	}
	return true
}

func (set SymbolSet) String() string {
	names := make([]string, len(set))
	for i, s := range set {
		names[i] = string(s)
	}
	return "{" + strings.Join(names, "|") + "}"
}

// --- Variables -------------------------------------------------------------

// Variable is a placeholder for a value, bound during matching. A negated
// variable stands for the opposite of a binary value the variable is bound to.
type Variable struct {
	Name    string
	Negated bool
}

// Var creates a variable.
func Var(name string) Variable {
	return Variable{Name: name}
}

// NegVar creates a negated variable.
func NegVar(name string) Variable {
	return Variable{Name: name, Negated: true}
}

// Unify is part of interface Value. Variables have to be resolved before
// unification, therefore an unresolved variable never unifies.
func (v Variable) Unify(Value) bool {
	return false
}

// Equal is part of interface Value.
func (v Variable) Equal(other Value) bool {
	o, ok := other.(Variable)
	return ok && o == v
}

func (v Variable) String() string {
	if v.Negated {
		return "-" + v.Name
	}
	return v.Name
}

// Resolve looks up the value of v in a set of bindings.
func (v Variable) Resolve(b *Bindings) (Value, bool) {
	val, ok := b.Lookup(v.Name)
	if !ok {
		return nil, false
	}
	if v.Negated {
		return Negate(val)
	}
	return val, true
}

// IsVariable returns the variable if v is one.
func IsVariable(v Value) (Variable, bool) {
	variable, ok := v.(Variable)
	return variable, ok
}
