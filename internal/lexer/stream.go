package lexer

import "github.com/as2js-go/as2js/internal/token"

// ungetCapacity is the minimum depth spec §4.1 requires ("a small unget
// buffer (stack of at least 4 tokens)") so the parser can speculate
// across short phrases like `(Void)`, `x :`, `id ::`, and `super()` vs
// `super.m()`.
const ungetCapacity = 4

// Stream wraps a Lexer with an unget stack, giving the parser the
// restartable token source spec §4.1 specifies as the lexer/parser
// contract.
type Stream struct {
	lex    *Lexer
	unget  []token.Token // stack; back() is next to be replayed
}

// NewStream creates a Stream over the given source.
func NewStream(filename, input string) *Stream {
	return &Stream{lex: New(filename, input)}
}

// Next returns the next token, replaying ungot tokens (most recently
// ungot first) before resuming the underlying scan.
func (s *Stream) Next() token.Token {
	if n := len(s.unget); n > 0 {
		t := s.unget[n-1]
		s.unget = s.unget[:n-1]
		return t
	}
	return s.lex.Next()
}

// Unget pushes a token back onto the stream so the next Next() call
// replays it. Panics if more than ungetCapacity tokens are ungot at
// once, since that would indicate a parser bug rather than legitimate
// speculation.
func (s *Stream) Unget(t token.Token) {
	if len(s.unget) >= ungetCapacity {
		panic("lexer: unget buffer exceeded capacity")
	}
	s.unget = append(s.unget, t)
}

// Peek returns the next token without consuming it.
func (s *Stream) Peek() token.Token {
	t := s.Next()
	s.Unget(t)
	return t
}

// PeekN returns the nth token ahead (0 = next token) without consuming
// any of them, used for the short speculative phrases spec §4.1 calls
// out explicitly.
func (s *Stream) PeekN(n int) token.Token {
	if n >= ungetCapacity {
		panic("lexer: PeekN exceeds unget buffer capacity")
	}
	toks := make([]token.Token, n+1)
	for i := range toks {
		toks[i] = s.Next()
	}
	for i := len(toks) - 1; i >= 0; i-- {
		s.Unget(toks[i])
	}
	return toks[n]
}
