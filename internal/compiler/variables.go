package compiler

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/optimizer"
)

// processVariable implements spec §4.3 "Variable processing" for a
// VARIABLE node (the parser's single representation of both `var` and
// `const`, distinguished by VariableFlagConst). It is idempotent:
// VariableFlagCompiled guards re-entry the way VariableFlagDefined
// guards prepareAttributes.
func (c *Compiler) processVariable(v *ast.Node) *ast.Node {
	if v.HasFlag(ast.VariableFlagCompiled) {
		return v
	}
	v.SetFlag(ast.VariableFlagDefined, true)

	c.prepareAttributes(v)

	sc := newScope()
	typ, sets := splitVariableChildren(v)

	if typ != nil {
		if resolved := c.resolveTypeExprToClasses(typ.Child(0)); len(resolved) > 0 {
			v.TypeNode = resolved[0]
		}
	}

	for _, set := range sets {
		if set.ChildCount() > 0 {
			c.resolveExpr(set.Child(0), sc)
		}
	}

	// An untyped variable with a single initializer takes that
	// expression's resolved type (e.g. `var a = new A();`).
	if v.TypeNode == nil && len(sets) == 1 && sets[0].ChildCount() > 0 {
		v.TypeNode = sets[0].Child(0).TypeNode
	}

	// Fold a const's sole initializer to a literal before anything reads
	// it, so a non-leaf but compile-time-constant expression (`const N =
	// 3 + 4`) still satisfies constLiteralValue's leaf-only check at the
	// use-site rewrite (spec §1 "constant folding of const variables",
	// spec §4.3 rewrite 6).
	if v.HasFlag(ast.VariableFlagConst) && len(sets) == 1 && sets[0].ChildCount() == 1 {
		if folded := optimizer.Fold(sets[0].Child(0)); folded != sets[0].Child(0) {
			sets[0].SetChild(0, folded)
		}
	}

	// Multi-value PRIVATE/PUBLIC variables are this language's named
	// bitmask constants (spec §4.3): the declaration packs several
	// flag values under one name, which only makes sense for an
	// immutable binding.
	if len(sets) > 1 && (v.HasAttr(ast.AttrPrivate) || v.HasAttr(ast.AttrPublic)) {
		if !v.HasFlag(ast.VariableFlagConst) {
			c.Msgs.Emit(messages.ERROR, messages.CodeInvalidAttributeCombination, v.Pos,
				"variable %q: multiple values are only allowed on a const attribute variable", v.StringValue())
		}
	}

	v.SetFlag(ast.VariableFlagCompiled, true)
	return v
}

// splitVariableChildren separates a VARIABLE's optional leading TYPE
// child from its trailing SET children (spec §3.2 AST shapes).
func splitVariableChildren(v *ast.Node) (typ *ast.Node, sets []*ast.Node) {
	for i := 0; i < v.ChildCount(); i++ {
		child := v.Child(i)
		switch child.Kind {
		case ast.TYPE:
			typ = child
		case ast.SET:
			sets = append(sets, child)
		}
	}
	return
}
