package shapelang

import (
	"fmt"
	"strings"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token types. Literal one-char tokens use their character code.
const (
	tokEOF   = 0
	tokIdent = 1
)

// The tokens representing literal one-char lexemes
var literals = []string{"[", "]", "#", "+", "-", "="}

var (
	lexer     *lexmachine.Lexer
	lexerErr  error
	lexerOnce sync.Once // monitors one-time initialization
)

// token is a scanned lexeme together with its position in the input.
type token struct {
	kind   int
	lexeme string
	pos    int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s' at %d", t.lexeme, t.pos)
}

func compileLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		lx := lexmachine.NewLexer()
		lx.Add([]byte(`( |\,|\t|\n|\r)+`), skip)
		lx.Add([]byte(`([a-z]|[A-Z]|[0-9]|_|'|@|:)+`), makeToken(tokIdent))
		for _, lit := range literals {
			lx.Add([]byte(`\`+lit), makeToken(int(lit[0])))
		}
		if lexerErr = lx.Compile(); lexerErr != nil {
			tracer().Errorf("error compiling DFA: %v", lexerErr)
			return
		}
		lexer = lx
	})
	return lexer, lexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// scan splits an input string into tokens. The returned token list is always
// terminated by an EOF token.
func scan(input string) ([]token, error) {
	lx, err := compileLexer()
	if err != nil {
		return nil, err
	}
	s, err := lx.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	var toks []token
	for tok, err, eof := s.Next(); !eof; tok, err, eof = s.Next() {
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				rest := strings.SplitN(string(ui.Text[ui.StartTC:]), " ", 2)[0]
				return nil, fmt.Errorf("unexpected input '%s' at %d", rest, ui.StartTC)
			}
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		toks = append(toks, token{kind: t.Type, lexeme: string(t.Lexeme), pos: t.TC})
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}
