package parser

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/token"
)

// parseDirective parses one directive: a statement or declaration,
// including the leading-attribute framing decision (spec §4.2).
func (p *Parser) parseDirective() *ast.Node {
	attrs := p.parseLeadingAttributes()
	attrs, _ = p.attachOrUngetAttributes(attrs)

	decl := p.parseDirectiveBody()
	if decl != nil && attrs != nil {
		decl.AttributeNode = attrs
	}
	return decl
}

func (p *Parser) parseDirectiveBody() *ast.Node {
	switch p.cur.Type {
	case token.VAR, token.CONST:
		return p.parseVarDecl()
	case token.FUNCTION:
		return p.parseFunctionDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.INTERFACE:
		return p.parseInterfaceDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.PACKAGE:
		return p.parsePackageDecl()
	case token.PROGRAM:
		return p.parseProgramDecl()
	case token.IMPORT:
		return p.parseImport()
	case token.USE:
		return p.parseUse()
	case token.GET, token.SET:
		if p.peek().Type == token.IDENTIFIER {
			return p.parseFunctionDecl()
		}
		return p.parseStatement()
	default:
		return p.parseStatement()
	}
}

// parseVarDecl parses `var`/`const` declarations, including the
// multi-SET `PRIVATE`/`PUBLIC` promotion to VAR_ATTRIBUTES handled by
// the resolver (spec §4.3 "Variable processing"); the parser only
// needs to produce the SET children here.
func (p *Parser) parseVarDecl() *ast.Node {
	pos := p.cur.Pos
	isConst := p.cur.Type == token.CONST
	p.advance()

	v := ast.New(ast.VARIABLE, pos)
	v.SetFlag(ast.VariableFlagConst, isConst)

	name := p.expectIdentName()
	v.SetString(name)

	if p.accept(token.COLON) {
		typeNode := ast.New(ast.TYPE, p.cur.Pos)
		typeNode.AddChild(p.parsePostfix())
		v.AddChild(typeNode)
	}
	for p.is(token.ASSIGN) {
		setPos := p.cur.Pos
		p.advance()
		set := ast.New(ast.SET, setPos)
		set.AddChild(p.parseAssignment())
		v.AddChild(set)
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.SEMICOLON)
	return v
}

// parseParameters parses a `(` ... `)` parameter list (spec §4.2
// "Function parameter list").
func (p *Parser) parseParameters() *ast.Node {
	pos := p.cur.Pos
	p.expect(token.LPAREN)

	params := ast.New(ast.PARAMETERS, pos)

	if p.isVoidParamList() {
		p.advance()
		p.expect(token.RPAREN)
		return nil // caller sets FUNCTION_FLAG_NOPARAMS
	}
	if p.is(token.IDENTIFIER) && p.cur.Literal == "unprototyped" && p.peek().Type == token.RPAREN {
		p.advance()
		p.advance()
		param := ast.New(ast.PARAM, pos)
		param.SetFlag(ast.ParamFlagUnprototyped, true)
		params.AddChild(param)
		return params
	}

	for !p.is(token.RPAREN) && !p.is(token.EOF) {
		params.AddChild(p.parseParam())
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseParam() *ast.Node {
	pos := p.cur.Pos
	param := ast.New(ast.PARAM, pos)

loop:
	for {
		switch {
		case p.is(token.CONST):
			param.SetFlag(ast.ParamFlagConst, true)
			p.advance()
		case p.is(token.IN):
			param.SetFlag(ast.ParamFlagIn, true)
			p.advance()
		case p.is(token.IDENTIFIER) && p.cur.Literal == "out":
			param.SetFlag(ast.ParamFlagOut, true)
			p.advance()
		case p.is(token.IDENTIFIER) && p.cur.Literal == "named":
			param.SetFlag(ast.ParamFlagNamed, true)
			p.advance()
		case p.is(token.IDENTIFIER) && p.cur.Literal == "unchecked":
			param.SetFlag(ast.ParamFlagUnchecked, true)
			p.advance()
		default:
			break loop
		}
	}
	if p.accept(token.REST) {
		param.SetFlag(ast.ParamFlagRest, true)
	}
	if param.HasFlag(ast.ParamFlagOut) && param.HasFlag(ast.ParamFlagConst) {
		p.errorf(messages.CodeInvalidAttributeCombination, "parameter cannot be both out and const")
	}
	if param.HasFlag(ast.ParamFlagOut) && param.HasFlag(ast.ParamFlagRest) {
		p.errorf(messages.CodeInvalidAttributeCombination, "parameter cannot be both out and rest")
	}

	param.SetString(p.expectIdentName())

	if p.accept(token.COLON) {
		typeNode := ast.New(ast.TYPE, p.cur.Pos)
		typeNode.AddChild(p.parsePostfix())
		param.AddChild(typeNode)
	}
	if p.accept(token.ASSIGN) {
		if param.HasFlag(ast.ParamFlagRest) {
			p.errorf(messages.CodeBadPragmaArgument, "a rest parameter cannot have a default value")
		}
		set := ast.New(ast.SET, p.cur.Pos)
		set.AddChild(p.parseAssignment())
		param.AddChild(set)
	}
	return param
}

// functionNameAndOperator parses a function's name, recognizing the
// operator-overload forms from spec §4.2 ("Operator-overload function
// names"): `()` call operator, `[]` subscript, and bare operator
// tokens.
func (p *Parser) functionNameAndOperator() (name string, isOperator bool) {
	switch {
	case p.is(token.LPAREN) && p.peek().Type == token.RPAREN && p.peekN(1).Type == token.LPAREN:
		p.advance()
		p.advance()
		return "()", true
	case p.is(token.LBRACKET) && p.peek().Type == token.RBRACKET:
		p.advance()
		p.advance()
		return "[]", true
	case p.cur.Type.IsOperator():
		op := p.cur.Type.String()
		p.advance()
		return op, true
	default:
		return p.expectIdentName(), false
	}
}

func (p *Parser) parseFunctionDecl() *ast.Node {
	pos := p.cur.Pos
	isGetter := p.is(token.GET)
	isSetter := p.is(token.SET)
	if isGetter || isSetter {
		p.advance()
	} else {
		p.expect(token.FUNCTION)
		if p.isAny(token.GET, token.SET) && p.peek().Type == token.IDENTIFIER {
			isGetter = p.is(token.GET)
			isSetter = p.is(token.SET)
			p.advance()
		}
	}

	fn := ast.New(ast.FUNCTION, pos)
	name, isOperator := p.functionNameAndOperator()
	fn.SetString(name)
	fn.SetFlag(ast.FunctionFlagOperator, isOperator)
	if isOperator {
		fn.Operator = name
	}
	fn.SetFlag(ast.FunctionFlagGetter, isGetter)
	fn.SetFlag(ast.FunctionFlagSetter, isSetter)

	params := p.parseParameters()
	if params == nil {
		fn.SetFlag(ast.FunctionFlagNoParams, true)
	} else {
		fn.AddChild(params)
	}

	if p.accept(token.COLON) {
		typeNode := ast.New(ast.TYPE, p.cur.Pos)
		typeNode.AddChild(p.parsePostfix())
		fn.AddChild(typeNode)
	}

	p.parseContracts(fn)

	switch {
	case p.is(token.LBRACE):
		p.advance()
		fn.AddChild(p.parseDirectiveList(token.RBRACE))
		p.expect(token.RBRACE)
	case p.accept(token.SEMICOLON):
		// forward/native declaration, no body
	default:
		p.errorf(messages.CodeMissingDelimiter, "expected function body or %q", ";")
	}

	return fn
}

// parseContracts parses trailing `require`/`ensure` contract clauses
// (spec §4.2 "Contracts").
func (p *Parser) parseContracts(fn *ast.Node) {
	for p.isAny(token.REQUIRE, token.ENSURE) {
		isRequire := p.is(token.REQUIRE)
		kind := ast.ENSURE
		if isRequire {
			kind = ast.REQUIRE
		}
		pos := p.cur.Pos
		p.advance()
		clause := ast.New(kind, pos)
		clause.Operator = "and"

		p.expect(token.LBRACE)
		clause.AddChild(p.parseDirectiveList(token.RBRACE))
		p.expect(token.RBRACE)

		// `require ... else ...` chains additional clauses joined by
		// disjunction; `ensure ... then ...` chains joined by
		// conjunction (spec §4.2 "Contracts").
		for {
			more := false
			switch {
			case isRequire && p.is(token.ELSE):
				clause.Operator = "or"
				p.advance()
				more = true
			case !isRequire && p.is(token.IDENTIFIER) && p.cur.Literal == "then":
				clause.Operator = "and"
				p.advance()
				more = true
			}
			if !more {
				break
			}
			p.expect(token.LBRACE)
			clause.AddChild(p.parseDirectiveList(token.RBRACE))
			p.expect(token.RBRACE)
		}
		fn.AddChild(clause)
	}
}

func (p *Parser) parseClassDecl() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	cls := ast.New(ast.CLASS, pos)
	cls.SetString(p.expectIdentName())

	if p.is(token.COLON) {
		p.errorf(messages.CodeInvalidAttributeCombination, "access modifier not allowed between class name and base list")
		p.advance()
		if p.is(token.IDENTIFIER) && (p.cur.Literal == "public" || p.cur.Literal == "private" || p.cur.Literal == "protected") {
			p.advance()
		}
	}

	if p.accept(token.EXTENDS) {
		ext := ast.New(ast.EXTENDS, p.cur.Pos)
		ext.AddChild(p.parsePostfix())
		cls.AddChild(ext)
	}
	if p.accept(token.IMPLEMENTS) {
		impl := ast.New(ast.IMPLEMENTS, p.cur.Pos)
		for {
			impl.AddChild(p.parsePostfix())
			if !p.accept(token.COMMA) {
				break
			}
		}
		cls.AddChild(impl)
	}

	if p.accept(token.SEMICOLON) {
		return cls // forward declaration
	}
	p.expect(token.LBRACE)
	cls.AddChild(p.parseDirectiveList(token.RBRACE))
	p.expect(token.RBRACE)
	return cls
}

func (p *Parser) parseInterfaceDecl() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	iface := ast.New(ast.INTERFACE, pos)
	iface.SetString(p.expectIdentName())

	if p.accept(token.EXTENDS) {
		ext := ast.New(ast.EXTENDS, p.cur.Pos)
		for {
			ext.AddChild(p.parsePostfix())
			if !p.accept(token.COMMA) {
				break
			}
		}
		iface.AddChild(ext)
	}
	if p.accept(token.SEMICOLON) {
		return iface
	}
	p.expect(token.LBRACE)
	iface.AddChild(p.parseDirectiveList(token.RBRACE))
	p.expect(token.RBRACE)
	return iface
}

func (p *Parser) parseEnumDecl() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	e := ast.New(ast.ENUM, pos)

	if p.is(token.IDENTIFIER) {
		e.SetString(p.cur.Literal)
		p.advance()
	} else {
		p.errorf(messages.CodeUnnamedForwardEnum, "enum without a name must be a forward declaration")
	}

	if p.accept(token.SEMICOLON) {
		return e
	}
	p.expect(token.LBRACE)
	for !p.is(token.RBRACE) && !p.is(token.EOF) {
		vpos := p.cur.Pos
		v := ast.New(ast.VARIABLE, vpos)
		v.SetFlag(ast.VariableFlagConst, true)
		v.SetString(p.expectIdentName())
		if p.accept(token.ASSIGN) {
			set := ast.New(ast.SET, p.cur.Pos)
			set.AddChild(p.parseAssignment())
			v.AddChild(set)
		}
		e.AddChild(v)
		if !p.accept(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE)
	return e
}

func (p *Parser) parsePackageDecl() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	pkg := ast.New(ast.PACKAGE, pos)
	pkg.SetString(p.parseDottedName())
	p.expect(token.LBRACE)
	pkg.AddChild(p.parseDirectiveList(token.RBRACE))
	p.expect(token.RBRACE)
	return pkg
}

func (p *Parser) parseProgramDecl() *ast.Node {
	pos := p.cur.Pos
	p.advance()
	prog := ast.New(ast.PROGRAM, pos)
	if p.is(token.IDENTIFIER) {
		prog.SetString(p.cur.Literal)
		p.advance()
	}
	p.expect(token.LBRACE)
	prog.AddChild(p.parseDirectiveList(token.RBRACE))
	p.expect(token.RBRACE)
	return prog
}

func (p *Parser) parseDottedName() string {
	name := p.expectIdentName()
	for p.accept(token.DOT) {
		name += "." + p.expectIdentName()
	}
	return name
}
