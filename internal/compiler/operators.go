package compiler

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
)

func (c *Compiler) emitNotAClass(site, typeExpr *ast.Node) {
	c.Msgs.Emit(messages.ERROR, messages.CodeNotAClass, site.Pos, "%q does not name a class", typeExprLabel(typeExpr))
}

func (c *Compiler) emitAbstractInstantiation(site, cls *ast.Node) {
	c.Msgs.Emit(messages.ERROR, messages.CodeAbstractInstantiation, site.Pos, "cannot instantiate abstract class %q", cls.StringValue())
}

func typeExprLabel(n *ast.Node) string {
	switch n.Kind {
	case ast.IDENTIFIER, ast.MEMBER:
		return n.StringValue()
	default:
		return n.Kind.String()
	}
}

// resolveOperator implements spec §4.3 "Operator resolution": when an
// operator's left operand resolves to a user-defined CLASS, scan that
// class (then its extends chain) for a same-named FUNCTION carrying
// FunctionFlagOperator with the matching unary/binary arity, and
// rewrite the operator node into a CALL of it -- unless the function
// is NATIVE, in which case the target machine already implements the
// operator directly and no rewrite is needed.
func (c *Compiler) resolveOperator(n *ast.Node, sc *lexScope) {
	if n.ChildCount() == 0 {
		return
	}
	lhs := n.Child(0)
	if lhs.TypeNode == nil || lhs.TypeNode.Kind != ast.CLASS {
		return
	}
	isUnary := n.ChildCount() == 1

	fn := c.findOperatorFunc(lhs.TypeNode, n.Operator, isUnary, make(map[*ast.Node]bool))
	if fn == nil || fn.HasAttr(ast.AttrNative) {
		return
	}

	args := ast.NewFromTemplate(n, ast.LIST)
	if !isUnary {
		args.AddChild(n.Child(1))
	}
	n.Children = nil
	n.AddChild(lhs)
	n.AddChild(args)
	n.Kind = ast.CALL
	n.Instance = fn
}

// findOperatorFunc searches cls's own member list, then recurses into
// its base classes (spec §4.3: "recurse into extends").
func (c *Compiler) findOperatorFunc(cls *ast.Node, op string, unary bool, visited map[*ast.Node]bool) *ast.Node {
	if visited[cls] {
		return nil
	}
	visited[cls] = true

	if body := findChildOfKind(cls, ast.DIRECTIVE_LIST); body != nil {
		for i := 0; i < body.ChildCount(); i++ {
			f := body.Child(i)
			if f.Kind != ast.FUNCTION || !f.HasFlag(ast.FunctionFlagOperator) || f.Operator != op {
				continue
			}
			arity := 0
			if params := findChildOfKind(f, ast.PARAMETERS); params != nil {
				arity = params.ChildCount()
			}
			if (unary && arity == 0) || (!unary && arity == 1) {
				return f
			}
		}
	}
	for _, base := range c.baseClasses(cls) {
		if found := c.findOperatorFunc(base, op, unary, visited); found != nil {
			return found
		}
	}
	return nil
}
