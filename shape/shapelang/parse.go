package shapelang

import (
	"fmt"

	"github.com/npillmayer/morphon/feature"
	"github.com/npillmayer/morphon/shape"
)

// Parse reads a shape in shape notation. Segment symbols are resolved with inv,
// which may be nil if the input uses bracketed feature lists only.
func Parse(input string, inv *Inventory) (*shape.Shape, error) {
	toks, err := scan(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, inv: inv}
	s := shape.New()
	for p.peek().kind != tokEOF {
		if err := p.element(s); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("parsed shape '%s'", s)
	return s, nil
}

// MustParse is like Parse, but panics on error. Intended for tests and fixtures.
func MustParse(input string, inv *Inventory) *shape.Shape {
	s, err := Parse(input, inv)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseBundle reads a bracketed feature list, e.g. "[+cons -voice place=labial]".
func ParseBundle(input string) (feature.Bundle, error) {
	toks, err := scan(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	b, err := p.features()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %s after feature list", t)
	}
	return b, nil
}

type parser struct {
	toks []token
	pos  int
	inv  *Inventory
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind int) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, fmt.Errorf("unexpected %s", t)
	}
	return t, nil
}

// element ::= '#' | ident features? | features
func (p *parser) element(s *shape.Shape) error {
	t := p.peek()
	switch t.kind {
	case '#':
		p.next()
		if seg, _ := p.inv.Resolve("#"); seg != nil {
			s.Append(seg.Type, "#", seg.Features)
		} else {
			s.Append(shape.Boundary, "#", nil)
		}
		return nil
	case '[':
		b, err := p.features()
		if err != nil {
			return err
		}
		s.Append(shape.Segment, "", b)
		return nil
	case tokIdent:
		p.next()
		seg, _ := p.inv.Resolve(t.lexeme)
		if seg == nil {
			return fmt.Errorf("unknown segment %s", t)
		}
		b := seg.Features
		if p.peek().kind == '[' {
			more, err := p.features()
			if err != nil {
				return err
			}
			b = b.Merge(more)
		}
		s.Append(seg.Type, seg.Symbol, b)
		return nil
	}
	return fmt.Errorf("unexpected %s", t)
}

// features ::= '[' feature* ']'
func (p *parser) features() (feature.Bundle, error) {
	if _, err := p.expect('['); err != nil {
		return nil, err
	}
	b := feature.Bundle{}
	for p.peek().kind != ']' {
		name, val, err := p.feature()
		if err != nil {
			return nil, err
		}
		b[name] = val
	}
	p.next()
	return b, nil
}

// feature ::= ('+'|'-') ident | ident '=' ident | ident
func (p *parser) feature() (string, feature.Value, error) {
	t := p.next()
	switch t.kind {
	case '+', '-':
		name, err := p.expect(tokIdent)
		if err != nil {
			return "", nil, err
		}
		if t.kind == '+' {
			return name.lexeme, feature.Plus, nil
		}
		return name.lexeme, feature.Minus, nil
	case tokIdent:
		if p.peek().kind != '=' {
			return t.lexeme, feature.Plus, nil
		}
		p.next()
		val, err := p.expect(tokIdent)
		if err != nil {
			return "", nil, err
		}
		return t.lexeme, feature.Symbol(val.lexeme), nil
	}
	return "", nil, fmt.Errorf("unexpected %s in feature list", t)
}
