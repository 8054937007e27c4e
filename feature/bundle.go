package feature

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Bundle is a feature bundle, mapping feature names to values.
type Bundle map[string]Value

// Names returns the feature names of a bundle in canonical (sorted) order.
func (b Bundle) Names() []string {
	names := maps.Keys(b)
	slices.Sort(names)
	return names
}

// Clone returns a shallow copy of b. Values are immutable, so this is safe.
func (b Bundle) Clone() Bundle {
	if b == nil {
		return nil
	}
	return maps.Clone(b)
}

// Merge returns a new bundle containing the features of b, overwritten by the
// features of other.
func (b Bundle) Merge(other Bundle) Bundle {
	merged := make(Bundle, len(b)+len(other))
	for k, v := range b {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Equal compares two bundles feature by feature.
func (b Bundle) Equal(other Bundle) bool {
	if len(b) != len(other) {
		return false
	}
	for k, v := range b {
		w, ok := other[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

// Variables returns the names of all variables used in a bundle, sorted.
func (b Bundle) Variables() []string {
	var vars []string
	for _, name := range b.Names() {
		if v, ok := IsVariable(b[name]); ok && !slices.Contains(vars, v.Name) {
			vars = append(vars, v.Name)
		}
	}
	return vars
}

// Resolve replaces all variables of b by their bound values. It returns false if
// a variable is unbound or a negated variable is bound to a non-binary value.
func (b Bundle) Resolve(bindings *Bindings) (Bundle, bool) {
	resolved := make(Bundle, len(b))
	for k, v := range b {
		if variable, ok := IsVariable(v); ok {
			if v, ok = variable.Resolve(bindings); !ok {
				return nil, false
			}
		}
		resolved[k] = v
	}
	return resolved, true
}

// Unify checks if a node's feature bundle satisfies the constraints in b.
// Every feature named in b has to be present on the node (or in defaults, if
// defaults are given) and unify with the constraint's value. Variables in b are
// bound to the node's value on first occurrence and compared for equality on
// re-use; new bindings are recorded in bindings. A node value which is itself a
// variable is underspecified: it unifies with any constraint and leaves pattern
// variables unbound.
//
// If unification fails, bindings made during this call are undone.
func (b Bundle) Unify(node Bundle, defaults Bundle, bindings *Bindings) bool {
	mark := bindings.Mark()
	for _, name := range b.Names() { // canonical order keeps bindings deterministic
		want := b[name]
		have, ok := node[name]
		if !ok && defaults != nil {
			have, ok = defaults[name]
		}
		if !ok || !unifyValue(want, have, bindings) {
			bindings.Undo(mark)
			return false
		}
	}
	return true
}

func unifyValue(want, have Value, bindings *Bindings) bool {
	if _, ok := IsVariable(have); ok {
		return true // underspecified node value, binds nothing
	}
	variable, isVar := IsVariable(want)
	if !isVar {
		return want.Unify(have)
	}
	if bound, ok := variable.Resolve(bindings); ok {
		return bound.Equal(have)
	}
	if _, ok := bindings.Lookup(variable.Name); ok {
		return false // bound to a non-binary value, but used negated
	}
	if variable.Negated {
		neg, ok := Negate(have)
		if !ok {
			return false
		}
		have = neg
	}
	bindings.Bind(variable.Name, have)
	return true
}

// String returns a canonical representation, e.g. "[+voice cons=+ place=labial]".
// Binary features are written with a prefixed sign.
func (b Bundle) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, name := range b.Names() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		v := b[name]
		if v == Plus || v == Minus {
			sb.WriteString(v.String() + name)
		} else {
			sb.WriteString(fmt.Sprintf("%s=%s", name, v))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}
