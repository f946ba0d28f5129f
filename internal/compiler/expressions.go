package compiler

import "github.com/as2js-go/as2js/internal/ast"

// resolveExpr dispatches on n.Kind the way spec §9's "Dynamic dispatch
// in expression visitation" describes: an exhaustive switch visiting
// every operand, performing whichever of the six in-place rewrites
// (spec §4.3) applies at that node, and leaving n's Instance/TypeNode
// set for anything that depends on the result later (operator
// resolution, overload selection, code generation downstream of this
// module).
func (c *Compiler) resolveExpr(n *ast.Node, sc *lexScope) {
	if n == nil {
		return
	}
	switch {
	case n.Kind.IsLiteral():
		return
	case n.Kind == ast.IDENTIFIER || n.Kind == ast.VIDENTIFIER:
		c.resolveIdentifierUse(n, sc)
	case n.Kind == ast.MEMBER:
		c.resolveMemberUse(n, sc)
	case n.Kind == ast.CALL:
		c.resolveCall(n, sc)
	case n.Kind == ast.NEW:
		c.resolveNew(n, sc)
	case n.Kind == ast.ASSIGNMENT:
		c.resolveAssignment(n, sc)
	case n.Kind == ast.TYPE:
		if n.ChildCount() > 0 {
			if resolved := c.resolveTypeExprToClasses(n.Child(0)); len(resolved) > 0 {
				n.Instance = resolved[0]
			}
		}
	case n.Kind.IsOperator():
		for i := 0; i < n.ChildCount(); i++ {
			c.resolveExpr(n.Child(i), sc)
		}
		c.resolveOperator(n, sc)
	default:
		for i := 0; i < n.ChildCount(); i++ {
			c.resolveExpr(n.Child(i), sc)
		}
	}
}

// resolveIdentifierUse resolves a bare-name read and applies rewrite 6
// (spec §4.3: a read of a const variable whose sole value is a literal
// is replaced at the use-site by a clone of that literal).
func (c *Compiler) resolveIdentifierUse(n *ast.Node, sc *lexScope) {
	if n.Instance != nil {
		return
	}
	target := c.resolveIdentifier(n, sc, n.StringValue())
	if target == nil {
		return
	}
	n.Instance = target
	if target.TypeNode != nil {
		n.TypeNode = target.TypeNode
	}
	if target.Kind == ast.VARIABLE && target.HasFlag(ast.VariableFlagConst) {
		if lit := constLiteralValue(target); lit != nil {
			replaceNode(n, lit.Clone())
		}
	}
}

// constLiteralValue returns v's sole literal value when v has exactly
// one SET child wrapping a literal, or nil otherwise.
func constLiteralValue(v *ast.Node) *ast.Node {
	_, sets := splitVariableChildren(v)
	if len(sets) != 1 || sets[0].ChildCount() != 1 {
		return nil
	}
	if e := sets[0].Child(0); e.Kind.IsLiteral() {
		return e
	}
	return nil
}

// replaceNode substitutes old for replacement in old.Parent's child
// list, used by the const-literal rewrite.
func replaceNode(old, replacement *ast.Node) {
	if old.Parent == nil {
		return
	}
	if idx := indexOfChild(old.Parent, old); idx >= 0 {
		old.Parent.SetChild(idx, replacement)
	}
}

// memberTypeContext returns the declaration whose members member
// lookup should search: the resolved CLASS/INTERFACE/PACKAGE/ENUM a
// subject expression names directly (e.g. a package or class used as
// its own value), or else the subject's inferred TypeNode.
func memberTypeContext(subject *ast.Node) *ast.Node {
	if subject.Instance != nil {
		switch subject.Instance.Kind {
		case ast.CLASS, ast.INTERFACE, ast.PACKAGE, ast.ENUM:
			return subject.Instance
		}
	}
	return subject.TypeNode
}

// resolveMemberUse resolves `a.b` (spec §4.3 "qualifier resolution")
// and applies rewrite 2 (getter-call) when b names a getter.
func (c *Compiler) resolveMemberUse(n *ast.Node, sc *lexScope) {
	subject := n.Child(0)
	c.resolveExpr(subject, sc)

	typeCtx := memberTypeContext(subject)
	if typeCtx == nil {
		return
	}
	target := c.resolveMemberInType(typeCtx, n.StringValue())
	if target == nil {
		return
	}
	n.Instance = target
	if target.TypeNode != nil {
		n.TypeNode = target.TypeNode
	}
	if target.Kind == ast.FUNCTION && target.HasFlag(ast.FunctionFlagGetter) {
		c.rewriteGetterCall(n, target)
	}
}

// resolveCall resolves the three CALL shapes the parser produces
// (spec §3.2): a subscript (Operator == "[]"), a delete/typeof unary
// form (Operator set, one child), or a normal call (callee + args
// LIST). When the callee names a class it applies rewrite 5, the
// Type(expr) -> expr AS Type conversion; rewrite 4 (new T(args)) is
// done by resolveNew.
func (c *Compiler) resolveCall(n *ast.Node, sc *lexScope) {
	if n.Operator == "[]" {
		c.resolveExpr(n.Child(0), sc)
		if n.ChildCount() > 1 {
			c.resolveExpr(n.Child(1), sc)
		}
		return
	}
	if n.Operator != "" {
		if n.ChildCount() > 0 {
			c.resolveExpr(n.Child(0), sc)
		}
		return
	}

	callee := n.Child(0)
	args := n.Child(1)
	if args == nil {
		args = ast.NewFromTemplate(n, ast.LIST)
		n.AddChild(args)
	}
	for i := 0; i < args.ChildCount(); i++ {
		a := args.Child(i)
		if a.Kind == ast.SET && a.ChildCount() > 0 {
			c.resolveExpr(a.Child(0), sc)
		} else {
			c.resolveExpr(a, sc)
		}
	}

	switch callee.Kind {
	case ast.IDENTIFIER:
		target := c.resolveIdentifier(callee, sc, callee.StringValue())
		if target == nil {
			return
		}
		callee.Instance = target
		switch target.Kind {
		case ast.CLASS, ast.INTERFACE:
			c.rewriteTypeConversion(n, target, args)
		case ast.FUNCTION:
			c.resolveOverloadedCall(n, callee, target, args, sc)
		}
	case ast.MEMBER:
		c.resolveExpr(callee, sc)
		if callee.Instance != nil && callee.Instance.Kind == ast.FUNCTION {
			c.resolveOverloadedCall(n, callee, callee.Instance, args, sc)
		}
	default:
		c.resolveExpr(callee, sc)
	}
}

// resolveAssignment resolves `lhs = rhs` (spec §4.3), applying rewrite
// 1 (bare-identifier assignment synthesizes a VARIABLE binding) and
// rewrite 3 (setter-call) as appropriate.
func (c *Compiler) resolveAssignment(n *ast.Node, sc *lexScope) {
	if n.ChildCount() < 2 {
		return
	}
	lhs, rhs := n.Child(0), n.Child(1)
	c.resolveExpr(rhs, sc)

	switch lhs.Kind {
	case ast.IDENTIFIER:
		target := c.resolveIdentifierQuiet(lhs, sc, lhs.StringValue())
		if target == nil {
			c.synthesizeVariable(lhs, sc)
			return
		}
		lhs.Instance = target
		if target.TypeNode != nil {
			lhs.TypeNode = target.TypeNode
		}
	case ast.MEMBER:
		subject := lhs.Child(0)
		c.resolveExpr(subject, sc)
		typeCtx := memberTypeContext(subject)
		if typeCtx == nil {
			return
		}
		target := c.resolveMemberInType(typeCtx, lhs.StringValue())
		if target == nil {
			return
		}
		lhs.Instance = target
		if target.Kind == ast.FUNCTION && target.HasFlag(ast.FunctionFlagSetter) {
			c.rewriteSetterCall(n, lhs, target, rhs)
		}
	default:
		c.resolveExpr(lhs, sc)
	}
}

// synthesizeVariable implements rewrite 1 (spec §4.3): an assignment
// to a name with no existing binding declares it, hoisted to the
// nearest enclosing DIRECTIVE_LIST flagged NEW_VARIABLES (spec's
// NEW_VARIABLES propagation) rather than spliced physically into the
// tree, per this resolver's Variables-map design.
func (c *Compiler) synthesizeVariable(ident *ast.Node, sc *lexScope) {
	hoist := hoistTarget(ident)
	if hoist == nil {
		return
	}
	v := ast.NewFromTemplate(ident, ast.VARIABLE)
	v.SetString(ident.StringValue())
	v.SetFlag(ast.VariableFlagDefined, true)
	v.SetFlag(ast.VariableFlagCompiled, true)
	v.SetFlag(ast.VariableFlagInUse, true)
	if hoist.Variables == nil {
		hoist.Variables = make(map[string]*ast.Node)
	}
	hoist.Variables[ident.StringValue()] = v
	ident.Instance = v
}

// hoistTarget walks up from n to the nearest enclosing DIRECTIVE_LIST
// carrying DirectiveListFlagNewVariables, falling back to the
// enclosing PROGRAM's top-level list.
func hoistTarget(n *ast.Node) *ast.Node {
	var fallback *ast.Node
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind != ast.DIRECTIVE_LIST {
			continue
		}
		if fallback == nil {
			fallback = p
		}
		if p.HasFlag(ast.DirectiveListFlagNewVariables) {
			return p
		}
	}
	return fallback
}
