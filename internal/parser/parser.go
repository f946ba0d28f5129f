// Package parser is the recursive-descent front end (spec §4.2): it
// consumes a token stream from internal/lexer and produces a raw
// internal/ast tree. It never panics on malformed input -- syntax
// errors are emitted through internal/messages and the parser
// recovers by skipping to the next synchronization token.
package parser

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/lexer"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/options"
	"github.com/as2js-go/as2js/internal/token"
)

// Parser holds the token stream, the active pragma set, and the
// diagnostics sink. One Parser instance parses exactly one source
// file into one PROGRAM node.
type Parser struct {
	stream  *lexer.Stream
	msgs    *messages.Manager
	opts    *options.Options
	cur     token.Token
	labels  map[string]bool
	errors  int
}

// New creates a Parser over filename/input, sharing msgs for
// diagnostics and opts for the dialect gates (spec §4.2 "Output: ...
// side-effect: may mutate options via pragmas").
func New(filename, input string, msgs *messages.Manager, opts *options.Options) *Parser {
	p := &Parser{
		stream: lexer.NewStream(filename, input),
		msgs:   msgs,
		opts:   opts,
	}
	p.advance()
	return p
}

// ErrorCount returns the number of syntax errors emitted so far.
func (p *Parser) ErrorCount() int { return p.errors }

func (p *Parser) advance() {
	p.cur = p.stream.Next()
}

func (p *Parser) peek() token.Token { return p.stream.Peek() }

func (p *Parser) peekN(n int) token.Token { return p.stream.PeekN(n) }

func (p *Parser) is(t token.Type) bool { return p.cur.Type == t }

func (p *Parser) isAny(types ...token.Type) bool {
	for _, t := range types {
		if p.cur.Type == t {
			return true
		}
	}
	return false
}

// accept advances and returns true if the current token matches t.
func (p *Parser) accept(t token.Type) bool {
	if p.cur.Type != t {
		return false
	}
	p.advance()
	return true
}

// expect requires the current token to be t and advances past it. On
// a mismatch it emits a diagnostic and leaves the current token in
// place; parseDirectiveList's no-progress check skips a token that
// nothing consumes.
func (p *Parser) expect(t token.Type) bool {
	if p.cur.Type == t {
		p.advance()
		return true
	}
	p.errorf(messages.CodeMissingDelimiter, "expected %q, got %q", t.String(), p.cur.Type.String())
	return false
}

func (p *Parser) errorf(code messages.Code, format string, args ...any) {
	p.errors++
	p.msgs.Emit(messages.ERROR, code, p.cur.Pos, format, args...)
}

// syncPoints are the recognized error-recovery synchronization tokens
// (spec §4.2 contract: "skipping to the next synchronization point").
var syncPoints = map[token.Type]bool{
	token.SEMICOLON: true, token.LBRACE: true, token.RBRACE: true,
	token.RPAREN: true, token.RBRACKET: true, token.EOF: true,
}

// synchronize advances until a synchronization token is reached,
// consuming it if it is a closing delimiter so the caller can continue
// past the broken construct.
func (p *Parser) synchronize() {
	for !syncPoints[p.cur.Type] {
		p.advance()
	}
	if p.cur.Type != token.EOF {
		p.advance()
	}
}

// Parse parses one compilation unit into a PROGRAM node (spec §4.2
// Contract: "Output: a PROGRAM (or ROOT) node").
func Parse(filename, input string, msgs *messages.Manager, opts *options.Options) *ast.Node {
	p := New(filename, input, msgs, opts)
	return p.parseProgram()
}

func (p *Parser) parseProgram() *ast.Node {
	pos := p.cur.Pos
	program := ast.New(ast.PROGRAM, pos)
	list := p.parseDirectiveList(token.EOF)
	program.AddChild(list)
	return program
}

// parseDirectiveList parses directives until `until` is seen (without
// consuming it), wrapping them in a DIRECTIVE_LIST node. Labels
// declared directly in this list are collected per spec §4.3's "labels
// do not cross function/class/package/program boundaries".
func (p *Parser) parseDirectiveList(until token.Type) *ast.Node {
	list := ast.New(ast.DIRECTIVE_LIST, p.cur.Pos)
	savedLabels := p.labels
	p.labels = make(map[string]bool)
	defer func() { p.labels = savedLabels }()

	for !p.is(until) && !p.is(token.EOF) {
		before := p.cur
		stmt := p.parseDirective()
		if stmt != nil {
			list.AddChild(stmt)
		}
		if p.cur == before {
			// No progress made; force advancement to avoid an infinite
			// loop on a token no production recognizes.
			p.errorf(messages.CodeUnexpectedToken, "unexpected token %q", p.cur.Type.String())
			p.advance()
		}
	}
	return list
}
