// Package optimizer is the constant-folding black box the compiler
// calls into when it needs to reduce a subtree to a literal value. Spec
// §1 scopes the optimizer out of the front-end core proper ("the
// optimizer (invoked as a black box that may rewrite a subtree in
// place)"); this package is the minimal surface spec §9 specifies for
// it: "an interface evaluate_to_bool(node) -> Option<bool> provided by
// the optimizer."
package optimizer

import "github.com/as2js-go/as2js/internal/ast"

// EvaluateToBool attempts to reduce node to a boolean constant. It
// understands literal true/false/null/undefined and the handful of
// operators attribute expressions realistically use (logical
// and/or/not, equality, integer + - * /) over already-literal
// operands; an INTEGER counts as true when non-zero. It
// returns ok=false when node does not fold to a compile-time constant,
// in which case the caller (attribute resolution, spec §4.3) must
// treat the attribute as dynamic.
func EvaluateToBool(node *ast.Node) (value bool, ok bool) {
	folded := Fold(node)
	switch folded.Kind {
	case ast.TRUE:
		return true, true
	case ast.FALSE:
		return false, true
	case ast.INTEGER:
		return folded.IntValue() != 0, true
	case ast.NULL, ast.UNDEFINED:
		return false, true
	default:
		return false, false
	}
}

// Fold reduces node to a literal leaf when every operand is already a
// compile-time constant, returning node itself unchanged otherwise.
// Only the subset of operators that attribute expressions and `const`
// folding (spec §4.3) need is implemented.
func Fold(node *ast.Node) *ast.Node {
	if node == nil {
		return node
	}
	switch node.Kind {
	case ast.INTEGER, ast.FLOATING_POINT, ast.STRING, ast.TRUE, ast.FALSE, ast.NULL, ast.UNDEFINED:
		return node
	case ast.LOGICAL_NOT:
		if node.ChildCount() != 1 {
			return node
		}
		operand := Fold(node.Child(0))
		if b, ok := literalBool(operand); ok {
			return boolLiteral(node, !b)
		}
		return node
	case ast.LOGICAL_AND, ast.LOGICAL_OR:
		if node.ChildCount() != 2 {
			return node
		}
		left := Fold(node.Child(0))
		right := Fold(node.Child(1))
		lb, lok := literalBool(left)
		rb, rok := literalBool(right)
		if !lok || !rok {
			return node
		}
		if node.Kind == ast.LOGICAL_AND {
			return boolLiteral(node, lb && rb)
		}
		return boolLiteral(node, lb || rb)
	case ast.EQUAL, ast.STRICT_EQUAL, ast.NOT_EQUAL, ast.STRICT_NOT_EQUAL:
		if node.ChildCount() != 2 {
			return node
		}
		left := Fold(node.Child(0))
		right := Fold(node.Child(1))
		if left.Kind != right.Kind || !left.Kind.IsLiteral() {
			return node
		}
		eq := literalsEqual(left, right)
		if node.Kind == ast.NOT_EQUAL || node.Kind == ast.STRICT_NOT_EQUAL {
			eq = !eq
		}
		return boolLiteral(node, eq)
	case ast.ADD, ast.SUBTRACT, ast.MULTIPLY, ast.DIVIDE:
		if node.ChildCount() != 2 {
			return node
		}
		left := Fold(node.Child(0))
		right := Fold(node.Child(1))
		if left.Kind == ast.INTEGER && right.Kind == ast.INTEGER {
			return intArith(node, left.IntValue(), right.IntValue())
		}
		return node
	default:
		return node
	}
}

func literalBool(n *ast.Node) (bool, bool) {
	switch n.Kind {
	case ast.TRUE:
		return true, true
	case ast.FALSE:
		return false, true
	case ast.INTEGER:
		return n.IntValue() != 0, true
	}
	return false, false
}

func literalsEqual(a, b *ast.Node) bool {
	switch a.Kind {
	case ast.INTEGER:
		return a.IntValue() == b.IntValue()
	case ast.FLOATING_POINT:
		return a.FloatValue() == b.FloatValue()
	case ast.STRING:
		return a.StringValue() == b.StringValue()
	case ast.TRUE, ast.FALSE, ast.NULL, ast.UNDEFINED:
		return true
	default:
		return false
	}
}

func boolLiteral(template *ast.Node, v bool) *ast.Node {
	if v {
		return ast.NewFromTemplate(template, ast.TRUE)
	}
	return ast.NewFromTemplate(template, ast.FALSE)
}

func intArith(template *ast.Node, l, r int64) *ast.Node {
	out := ast.NewFromTemplate(template, ast.INTEGER)
	switch template.Kind {
	case ast.ADD:
		out.SetInt(l + r)
	case ast.SUBTRACT:
		out.SetInt(l - r)
	case ast.MULTIPLY:
		out.SetInt(l * r)
	case ast.DIVIDE:
		if r == 0 {
			return template
		}
		out.SetInt(l / r)
	}
	return out
}
