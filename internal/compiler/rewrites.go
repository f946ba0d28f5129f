package compiler

import "github.com/as2js-go/as2js/internal/ast"

// rewriteGetterCall implements spec §4.3 rewrite 2: a MEMBER resolving
// to a getter FUNCTION becomes a zero-argument CALL of that getter,
// in place -- the node keeps its subject child and member-name
// payload (useful for diagnostics) but its Kind and arity now read as
// a call.
func (c *Compiler) rewriteGetterCall(member, getter *ast.Node) {
	subject := member.Child(0)
	args := ast.NewFromTemplate(member, ast.LIST)
	member.Children = nil
	member.AddChild(subject)
	member.AddChild(args)
	member.Kind = ast.CALL
	member.Instance = getter
}

// rewriteSetterCall implements spec §4.3 rewrite 3: `a.b = v` resolving
// to a setter FUNCTION is rewritten in place to the one-argument call
// `a.<-b(v)` -- the ASSIGNMENT node itself becomes the CALL, since the
// whole assignment expression's value is now the setter's return.
func (c *Compiler) rewriteSetterCall(assign, member, setter, rhs *ast.Node) {
	subject := member.Child(0)
	args := ast.NewFromTemplate(assign, ast.LIST)
	args.AddChild(rhs)
	assign.Children = nil
	assign.AddChild(subject)
	assign.AddChild(args)
	assign.Kind = ast.CALL
	assign.SetString("<-" + member.StringValue())
	assign.Instance = setter
}

// rewriteTypeConversion implements spec §4.3 rewrite 5: a call whose
// callee names a CLASS/INTERFACE is a type conversion, `Type(expr)`,
// rewritten to `expr AS Type` in place. A conversion takes exactly one
// argument; anything else is left as the CALL it was parsed as, with
// no diagnostic.
func (c *Compiler) rewriteTypeConversion(call, cls, args *ast.Node) {
	if args.ChildCount() != 1 {
		return
	}
	expr := args.Child(0)
	callee := call.Child(0)

	typeNode := ast.NewFromTemplate(call, ast.TYPE)
	typeNode.AddChild(callee)
	typeNode.Instance = cls

	call.Children = nil
	call.AddChild(expr)
	call.AddChild(typeNode)
	call.Kind = ast.AS
	call.TypeNode = cls
}

// resolveNew implements spec §4.3 rewrite 4: `new T(args)` is
// flattened from NEW{ CALL{ T, args } } (or NEW{ T } for the no-parens
// form) into NEW{ TYPE{T}, args }, with an abstractness check against
// the resolved class.
func (c *Compiler) resolveNew(n *ast.Node, sc *lexScope) {
	child0 := n.Child(0)
	var typeExpr, argsList *ast.Node
	if child0.Kind == ast.CALL && child0.Operator == "" {
		typeExpr = child0.Child(0)
		argsList = child0.Child(1)
	} else {
		typeExpr = child0
	}
	if argsList == nil {
		argsList = ast.NewFromTemplate(n, ast.LIST)
	}

	resolved := c.resolveTypeExprToClasses(typeExpr)
	for i := 0; i < argsList.ChildCount(); i++ {
		c.resolveExpr(argsList.Child(i), sc)
	}
	if len(resolved) == 0 {
		c.emitNotAClass(n, typeExpr)
		return
	}
	cls := resolved[0]
	if cls.HasAttr(ast.AttrAbstract) {
		c.emitAbstractInstantiation(n, cls)
	}

	typeNode := ast.NewFromTemplate(n, ast.TYPE)
	typeNode.AddChild(typeExpr)
	typeNode.Instance = cls

	n.Children = nil
	n.AddChild(typeNode)
	n.AddChild(argsList)
	n.Instance = cls
	n.TypeNode = cls
}
