package parser

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/options"
	"github.com/as2js-go/as2js/internal/token"
)

// pragmaNames maps the surface spelling recognized after `use` to a
// dialect flag (spec's GLOSSARY: "Pragma: a compile-time directive
// (`use <identifier>;`) that toggles a dialect flag").
var pragmaNames = map[string]options.Name{
	"extended_operators":        options.ExtendedOperators,
	"extended_statements":       options.ExtendedStatements,
	"allow_with":                options.AllowWith,
	"octal":                     options.Octal,
	"strict":                    options.Strict,
	"debug":                     options.Debug,
	"trace":                     options.Trace,
	"coverage":                  options.Coverage,
	"unsafe_math":               options.UnsafeMath,
	"extended_escape_sequences": options.ExtendedEscapeSequences,
}

// parsePragma parses `use <name>[(arg)][?];` (spec §4.2 "Pragmas take
// an optional scalar argument and an optional `?` (prima) form").
func (p *Parser) parsePragma(pos token.Position, name string) *ast.Node {
	n := ast.New(ast.PRAGMA, pos)
	n.SetString(name)

	var arg any = true
	if p.accept(token.LPAREN) {
		argExpr := p.parseAssignment()
		arg = pragmaArgValue(argExpr)
		p.expect(token.RPAREN)
	}

	isPrima := p.accept(token.QUESTION)
	p.expect(token.SEMICOLON)

	optName, ok := pragmaNames[name]
	if !ok {
		p.errorf(messages.CodeUnknownPragma, "unknown pragma %q", name)
		return n
	}

	if isPrima {
		if err := p.opts.Prima(optName, arg); err != nil {
			p.errorf(messages.CodePrimaMismatch, "%v", err)
		}
		return n
	}
	if err := p.opts.Set(optName, arg); err != nil {
		p.errorf(messages.CodeBadPragmaArgument, "%v", err)
	}
	return n
}

func pragmaArgValue(n *ast.Node) any {
	switch n.Kind {
	case ast.TRUE:
		return true
	case ast.FALSE:
		return false
	case ast.INTEGER:
		return n.IntValue()
	case ast.FLOATING_POINT:
		return n.FloatValue()
	case ast.STRING:
		return n.StringValue()
	default:
		return true
	}
}
