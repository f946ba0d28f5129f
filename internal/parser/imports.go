package parser

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/token"
)

// parseImport implements spec §4.2 "Import": `import [implements]
// <dotted-path>[.*] [as <Identifier>] [, namespace|include|exclude
// <expr>]*`.
func (p *Parser) parseImport() *ast.Node {
	pos := p.cur.Pos
	p.advance()

	n := ast.New(ast.IMPORT, pos)
	if p.is(token.IMPLEMENTS) {
		n.SetFlag(ast.ImportFlagImplements, true)
		p.advance()
	}

	path := p.expectIdentName()
	for p.is(token.DOT) {
		if p.peek().Type == token.STAR {
			p.advance()
			p.advance()
			n.SetFlag(ast.ImportFlagWildcard, true)
			break
		}
		p.advance()
		path += "." + p.expectIdentName()
	}
	n.SetString(path)

	var sawInclude, sawExclude bool
	for p.accept(token.COMMA) {
		switch {
		case p.is(token.IDENTIFIER) && p.cur.Literal == "namespace":
			p.advance()
			ns := ast.New(ast.USE_NAMESPACE, p.cur.Pos)
			ns.AddChild(p.parseAssignment())
			n.AddChild(ns)
		case p.is(token.IDENTIFIER) && p.cur.Literal == "include":
			if sawExclude {
				p.errorf(messages.CodeBadPragmaArgument, "import cannot combine include and exclude")
			}
			sawInclude = true
			p.advance()
			inc := ast.New(ast.LIST, p.cur.Pos)
			inc.Operator = "include"
			inc.AddChild(p.parseAssignment())
			n.AddChild(inc)
		case p.is(token.IDENTIFIER) && p.cur.Literal == "exclude":
			if sawInclude {
				p.errorf(messages.CodeBadPragmaArgument, "import cannot combine include and exclude")
			}
			sawExclude = true
			p.advance()
			exc := ast.New(ast.LIST, p.cur.Pos)
			exc.Operator = "exclude"
			exc.AddChild(p.parseAssignment())
			n.AddChild(exc)
		default:
			p.errorf(messages.CodeUnexpectedToken, "expected namespace/include/exclude in import clause")
		}
	}

	if p.accept(token.AS) {
		if n.HasFlag(ast.ImportFlagWildcard) {
			p.errorf(messages.CodeBadPragmaArgument, "`.*` import cannot be combined with `as` renaming")
		}
		rename := ast.New(ast.IDENTIFIER, p.cur.Pos)
		rename.SetString(p.expectIdentName())
		n.AddChild(rename)
	}

	p.expect(token.SEMICOLON)
	return n
}

// parseUse dispatches the three `use` forms: `use namespace <expr>;`,
// `use <Id> as <range>;`, `use <Id> as mod <number>;` (spec §4.2
// "Numeric subrange types", §6.5).
func (p *Parser) parseUse() *ast.Node {
	pos := p.cur.Pos
	p.advance()

	if p.is(token.NAMESPACE) {
		p.advance()
		n := ast.New(ast.USE_NAMESPACE, pos)
		n.AddChild(p.parseExpression())
		p.expect(token.SEMICOLON)
		return n
	}

	name := p.expectIdentName()

	if !p.is(token.AS) {
		return p.parsePragma(pos, name)
	}
	p.advance()

	if p.is(token.MOD) {
		p.advance()
		n := ast.New(ast.MODULAR, pos)
		n.SetString(name)
		n.AddChild(p.parseAssignment())
		p.expect(token.SEMICOLON)
		return n
	}

	n := ast.New(ast.SUBRANGE, pos)
	n.SetString(name)
	low := p.parseAssignment()
	p.expect(token.RANGE)
	high := p.parseAssignment()
	n.AddChild(low)
	n.AddChild(high)

	if low.Kind.IsLiteral() && high.Kind.IsLiteral() && low.Kind != high.Kind {
		p.errorf(messages.CodeBadPragmaArgument, "subrange endpoints must share a kind (integer or floating)")
	}
	if low.Kind == ast.INTEGER && high.Kind == ast.INTEGER && low.IntValue() > high.IntValue() {
		p.msgs.Emit(messages.WARNING, messages.CodeBadPragmaArgument, pos, "inverted subrange %d..%d accepts only null", low.IntValue(), high.IntValue())
	}

	p.expect(token.SEMICOLON)
	return n
}
