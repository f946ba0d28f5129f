package parser

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/token"
)

// attributeKeywords is the set of leading-position identifiers the
// parser accumulates into an ATTRIBUTES node before committing to a
// declaration (spec §4.2 "Attributes and declaration framing"). `true`
// and `false` lex as their own literal token types rather than
// IDENTIFIER, so they are matched separately in parseLeadingAttributes.
var attributeKeywords = map[string]ast.Attribute{
	"abstract":   ast.AttrAbstract,
	"extern":     ast.AttrExtern,
	"final":      ast.AttrFinal,
	"identifier": ast.AttrIdentifier,
	"native":     ast.AttrNative,
	"private":    ast.AttrPrivate,
	"protected":  ast.AttrProtected,
	"public":     ast.AttrPublic,
	"static":     ast.AttrStatic,
	"transient":  ast.AttrTransient,
	"volatile":   ast.AttrVolatile,
}

// attrKeyword reports the attribute bit and spelling for the current
// token, across both IDENTIFIER-spelled keywords and the TRUE/FALSE
// literal tokens (which the lexer never emits as IDENTIFIER).
func (p *Parser) attrKeyword() (bit ast.Attribute, spelling string, ok bool) {
	switch p.cur.Type {
	case token.IDENTIFIER:
		bit, ok = attributeKeywords[p.cur.Literal]
		return bit, p.cur.Literal, ok
	case token.TRUE:
		return ast.AttrTrue, "true", true
	case token.FALSE:
		return ast.AttrFalse, "false", true
	default:
		return 0, "", false
	}
}

// parseLeadingAttributes accumulates attribute keywords into an
// ATTRIBUTES node, tracking the original token for each so it can be
// replayed verbatim if attachOrUngetAttributes decides the run was not
// actually a declaration's attributes. Returns nil if none were found.
func (p *Parser) parseLeadingAttributes() *ast.Node {
	pos := p.cur.Pos
	var attrs *ast.Node
	var seen map[string]bool

	for {
		bit, spelling, ok := p.attrKeyword()
		if !ok {
			break
		}
		if attrs == nil {
			attrs = ast.New(ast.ATTRIBUTES, pos)
			seen = make(map[string]bool)
		}
		if seen[spelling] {
			p.errorf(messages.CodeInvalidAttributeCombination, "duplicate attribute %q", spelling)
		} else {
			seen[spelling] = true
			leaf := ast.New(ast.IDENTIFIER, p.cur.Pos)
			leaf.SetString(spelling)
			leaf.SetAttr(bit, true)
			attrs.AddChild(leaf)
		}
		p.advance()
	}
	return attrs
}

// declarationStarters are the tokens that may immediately follow a run
// of attribute keywords and still form a declaration the attributes
// attach to.
var declarationStarters = map[token.Type]bool{
	token.VAR: true, token.CONST: true, token.FUNCTION: true, token.CLASS: true,
	token.INTERFACE: true, token.ENUM: true, token.PACKAGE: true, token.IDENTIFIER: true,
	token.GET: true, token.SET: true,
}

// attrTokenType maps an accumulated attribute leaf back to the token
// type it was lexed as, so attachOrUngetAttributes can push back an
// equivalent token rather than always assuming IDENTIFIER (`true` and
// `false` must come back as their own literal token types).
func attrTokenType(leaf *ast.Node) token.Type {
	switch leaf.StringValue() {
	case "true":
		return token.TRUE
	case "false":
		return token.FALSE
	default:
		return token.IDENTIFIER
	}
}

// attachOrUngetAttributes implements the framing decision from spec
// §4.2: if the next token starts a declaration that accepts
// attributes, they are attached; otherwise the last accumulated
// attribute is ungot so it becomes the first identifier/literal of an
// expression/labeled-statement instead.
func (p *Parser) attachOrUngetAttributes(attrs *ast.Node) (remaining *ast.Node, ungotFirst string) {
	if attrs == nil {
		return nil, ""
	}
	if declarationStarters[p.cur.Type] {
		return attrs, ""
	}
	n := attrs.ChildCount()
	last := attrs.Child(n - 1)
	attrs.RemoveChildAt(n - 1)

	tok := token.Token{Type: attrTokenType(last), Literal: last.StringValue(), Pos: last.Pos}
	p.stream.Unget(p.cur)
	p.cur = tok

	if attrs.ChildCount() == 0 {
		return nil, last.StringValue()
	}
	return attrs, last.StringValue()
}
