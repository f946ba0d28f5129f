package parser

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/options"
	"github.com/as2js-go/as2js/internal/token"
)

func (p *Parser) parseStatement() *ast.Node {
	switch p.cur.Type {
	case token.LBRACE:
		p.advance()
		list := p.parseDirectiveList(token.RBRACE)
		p.expect(token.RBRACE)
		return list
	case token.IF:
		return p.parseIf()
	case token.FOR:
		return p.parseFor()
	case token.WHILE:
		return p.parseWhile()
	case token.DO:
		return p.parseDoWhile()
	case token.SWITCH:
		return p.parseSwitch()
	case token.TRY:
		return p.parseTry()
	case token.WITH:
		return p.parseWith()
	case token.SYNCHRONIZED:
		return p.parseSynchronized()
	case token.BREAK:
		return p.parseBreakContinue(ast.BREAK, token.BREAK)
	case token.CONTINUE:
		return p.parseBreakContinue(ast.CONTINUE, token.CONTINUE)
	case token.GOTO:
		return p.parseGoto()
	case token.RETURN:
		return p.parseReturn()
	case token.THROW:
		return p.parseThrow()
	case token.LABEL:
		return p.parseLabelDecl()
	case token.SEMICOLON:
		p.advance()
		return nil
	case token.IDENTIFIER:
		if p.peek().Type == token.COLON {
			return p.parseLabel()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() *ast.Node {
	expr := p.parseExpression()
	p.expect(token.SEMICOLON)
	return expr
}

// blockOrSingleStatement enforces spec §4.2 "extended_statements gates
// ... mandatory { } blocks for loops/if": when the pragma is on, a bare
// (non-brace) single statement body is rejected.
func (p *Parser) blockOrSingleStatement() *ast.Node {
	if !p.is(token.LBRACE) && p.opts.Get(options.ExtendedStatements) {
		p.errorf(messages.CodeMissingDelimiter, "extended_statements requires a braced block here")
	}
	return p.parseStatement()
}

func (p *Parser) parseIf() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)

	n := ast.New(ast.IF, pos)
	n.AddChild(cond)
	n.AddChild(p.blockOrSingleStatement())
	if p.accept(token.ELSE) {
		n.AddChild(p.blockOrSingleStatement())
	}
	return n
}

func (p *Parser) parseFor() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)

	n := ast.New(ast.FOR, pos)
	if p.is(token.VAR) {
		n.AddChild(p.parseVarDecl())
	} else {
		if !p.is(token.SEMICOLON) {
			n.AddChild(p.parseExpression())
		} else {
			n.AddChild(ast.New(ast.UNDEFINED, p.cur.Pos))
		}
		p.expect(token.SEMICOLON)
	}
	if !p.is(token.SEMICOLON) {
		n.AddChild(p.parseExpression())
	} else {
		n.AddChild(ast.New(ast.TRUE, p.cur.Pos))
	}
	p.expect(token.SEMICOLON)
	if !p.is(token.RPAREN) {
		n.AddChild(p.parseExpression())
	} else {
		n.AddChild(ast.New(ast.UNDEFINED, p.cur.Pos))
	}
	p.expect(token.RPAREN)
	n.AddChild(p.blockOrSingleStatement())
	return n
}

func (p *Parser) parseWhile() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	n := ast.New(ast.WHILE, pos)
	n.AddChild(cond)
	n.AddChild(p.blockOrSingleStatement())
	return n
}

func (p *Parser) parseDoWhile() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	n := ast.New(ast.DO, pos)
	n.AddChild(p.blockOrSingleStatement())
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	n.AddChild(p.parseExpression())
	p.expect(token.RPAREN)
	p.expect(token.SEMICOLON)
	return n
}

func (p *Parser) parseWith() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	if !p.opts.Get(options.AllowWith) {
		p.errorf(messages.CodeUnexpectedToken, "`with` requires the allow_with pragma")
	}
	p.expect(token.LPAREN)
	obj := p.parseExpression()
	p.expect(token.RPAREN)
	n := ast.New(ast.WITH, pos)
	n.AddChild(obj)
	n.AddChild(p.blockOrSingleStatement())
	return n
}

func (p *Parser) parseSynchronized() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	lock := p.parseExpression()
	p.expect(token.RPAREN)
	n := ast.New(ast.SYNCHRONIZED, pos)
	n.AddChild(lock)
	p.expect(token.LBRACE)
	n.AddChild(p.parseDirectiveList(token.RBRACE))
	p.expect(token.RBRACE)
	return n
}

// switchOperators are the comparison operators `switch() with (<op>)`
// may select (spec §4.2 "Switch").
var switchOperators = map[string]bool{
	"==": true, "===": true, "!=": true, "!==": true, "~~": true,
	"in": true, "is": true, "as": true, "instanceof": true,
	"<": true, "<=": true, ">": true, ">=": true, "default": true,
}

func (p *Parser) parseSwitch() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.LPAREN)
	n := ast.New(ast.SWITCH, pos)
	n.AddChild(p.parseExpression())
	p.expect(token.RPAREN)

	if p.is(token.WITH) {
		if !p.opts.Get(options.ExtendedStatements) {
			p.errorf(messages.CodeUnexpectedToken, "`switch() with (op)` requires the extended_statements pragma")
		}
		p.advance()
		p.expect(token.LPAREN)
		op := p.cur.Type.String()
		if !switchOperators[op] {
			p.errorf(messages.CodeUnexpectedToken, "%q is not a valid switch comparison operator", op)
		}
		n.Operator = op
		p.advance()
		p.expect(token.RPAREN)
	}

	p.expect(token.LBRACE)
	sawDefault := false
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		switch p.cur.Type {
		case token.CASE:
			n.AddChild(p.parseCase())
		case token.DEFAULT:
			if sawDefault {
				p.errorf(messages.CodeInvalidAttributeCombination, "switch may have at most one default")
			}
			sawDefault = true
			n.AddChild(p.parseDefault())
		default:
			p.errorf(messages.CodeUnexpectedToken, "expected case or default, got %q", p.cur.Type.String())
			p.synchronize()
		}
	}
	p.expect(token.RBRACE)
	return n
}

func (p *Parser) parseCase() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	n := ast.New(ast.CASE, pos)
	first := p.parseAssignment()
	if p.is(token.RANGE) {
		if !p.opts.Get(options.ExtendedStatements) {
			p.errorf(messages.CodeUnexpectedToken, "case ranges require the extended_statements pragma")
		}
		p.advance()
		r := ast.New(ast.RANGE, pos)
		r.AddChild(first)
		r.AddChild(p.parseAssignment())
		n.AddChild(r)
	} else {
		n.AddChild(first)
	}
	p.expect(token.COLON)
	body := ast.New(ast.DIRECTIVE_LIST, p.cur.Pos)
	for !p.isAny(token.CASE, token.DEFAULT, token.RBRACE, token.EOF) {
		if stmt := p.parseDirective(); stmt != nil {
			body.AddChild(stmt)
		}
	}
	n.AddChild(body)
	return n
}

func (p *Parser) parseDefault() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	p.expect(token.COLON)
	n := ast.New(ast.DEFAULT, pos)
	body := ast.New(ast.DIRECTIVE_LIST, p.cur.Pos)
	for !p.isAny(token.CASE, token.DEFAULT, token.RBRACE, token.EOF) {
		if stmt := p.parseDirective(); stmt != nil {
			body.AddChild(stmt)
		}
	}
	n.AddChild(body)
	return n
}

// parseTry implements spec §4.2 "Try/catch/finally": a `try` must be
// immediately followed by at least one `catch` or `finally`; only the
// last catch in the chain may be untyped.
func (p *Parser) parseTry() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	n := ast.New(ast.TRY, pos)
	p.expect(token.LBRACE)
	n.AddChild(p.parseDirectiveList(token.RBRACE))
	p.expect(token.RBRACE)

	sawUntyped := false
	sawClause := false
	for p.is(token.CATCH) {
		sawClause = true
		catch := p.parseCatch()
		param := catch.Child(0)
		isUntyped := param == nil || param.ChildCount() == 0
		if isUntyped {
			if sawUntyped {
				p.errorf(messages.CodeUnexpectedToken, "only the last catch clause may be untyped")
			}
			sawUntyped = true
		} else if sawUntyped {
			p.errorf(messages.CodeUnexpectedToken, "typed catch cannot follow an untyped catch")
		}
		n.AddChild(catch)
	}
	if p.is(token.FINALLY) {
		sawClause = true
		pos := p.cur.Pos
		p.advance()
		fin := ast.New(ast.FINALLY, pos)
		p.expect(token.LBRACE)
		fin.AddChild(p.parseDirectiveList(token.RBRACE))
		p.expect(token.RBRACE)
		n.AddChild(fin)
	}
	if !sawClause {
		p.errorf(messages.CodeMissingDelimiter, "try must be followed by at least one catch or finally")
	}
	return n
}

func (p *Parser) parseCatch() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	n := ast.New(ast.CATCH, pos)
	p.expect(token.LPAREN)

	name := p.expectIdentName()
	param := ast.New(ast.PARAM, pos)
	param.SetString(name)
	if p.accept(token.COLON) {
		typeNode := ast.New(ast.TYPE, p.cur.Pos)
		typeNode.AddChild(p.parsePostfix())
		param.AddChild(typeNode)
	}
	n.AddChild(param)
	p.expect(token.RPAREN)

	if p.is(token.IF) {
		p.advance()
		p.expect(token.LPAREN)
		guard := p.parseExpression()
		p.expect(token.RPAREN)
		n.Operator = "guarded"
		n.AddChild(guard)
	}

	p.expect(token.LBRACE)
	n.AddChild(p.parseDirectiveList(token.RBRACE))
	p.expect(token.RBRACE)
	return n
}

func (p *Parser) parseBreakContinue(kind ast.Kind, tt token.Type) *ast.Node {
	pos := p.cur.Pos
	p.advance()
	n := ast.New(kind, pos)
	if p.is(token.IDENTIFIER) {
		n.SetString(p.cur.Literal)
		p.advance()
	} else if p.is(token.DEFAULT) {
		n.SetString("default")
		p.advance()
	}
	p.expect(token.SEMICOLON)
	return n
}

func (p *Parser) parseGoto() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	n := ast.New(ast.GOTO, pos)
	n.SetString(p.expectIdentName())
	p.expect(token.SEMICOLON)
	return n
}

func (p *Parser) parseReturn() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	n := ast.New(ast.RETURN, pos)
	if !p.is(token.SEMICOLON) {
		n.AddChild(p.parseExpression())
	}
	p.expect(token.SEMICOLON)
	return n
}

func (p *Parser) parseThrow() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	n := ast.New(ast.THROW, pos)
	n.AddChild(p.parseExpression())
	p.expect(token.SEMICOLON)
	return n
}

func (p *Parser) parseLabelDecl() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	name := p.expectIdentName()
	p.expect(token.SEMICOLON)
	n := ast.New(ast.LABEL, pos)
	n.SetString(name)
	p.registerLabel(name)
	return n
}

func (p *Parser) parseLabel() *ast.Node {
	pos := p.cur.Pos
	name := p.cur.Literal
	p.advance()
	p.advance() // colon
	p.registerLabel(name)
	n := ast.New(ast.LABEL, pos)
	n.SetString(name)
	n.AddChild(p.parseStatement())
	return n
}

func (p *Parser) registerLabel(name string) {
	if p.labels == nil {
		p.labels = make(map[string]bool)
	}
	if p.labels[name] {
		p.errorf(messages.CodeDuplicateLabel, "duplicate label %q", name)
		return
	}
	p.labels[name] = true
}
