package optimizer

import (
	"testing"

	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/token"
)

func intLit(v int64) *ast.Node {
	n := ast.New(ast.INTEGER, token.Position{})
	n.SetInt(v)
	return n
}

func TestEvaluateToBoolLiteral(t *testing.T) {
	n := ast.New(ast.TRUE, token.Position{})
	v, ok := EvaluateToBool(n)
	if !ok || !v {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestEvaluateToBoolNonConstant(t *testing.T) {
	n := ast.New(ast.IDENTIFIER, token.Position{})
	_, ok := EvaluateToBool(n)
	if ok {
		t.Fatal("expected identifier to not fold to a constant")
	}
}

func TestFoldLogicalAnd(t *testing.T) {
	n := ast.New(ast.LOGICAL_AND, token.Position{})
	n.AddChild(ast.New(ast.TRUE, token.Position{}))
	n.AddChild(ast.New(ast.FALSE, token.Position{}))

	folded := Fold(n)
	if folded.Kind != ast.FALSE {
		t.Fatalf("expected FALSE, got %v", folded.Kind)
	}
}

func TestFoldArithmetic(t *testing.T) {
	n := ast.New(ast.ADD, token.Position{})
	n.AddChild(intLit(3))
	n.AddChild(intLit(4))

	folded := Fold(n)
	if folded.Kind != ast.INTEGER || folded.IntValue() != 7 {
		t.Fatalf("got %v", folded)
	}
}

func TestFoldEquality(t *testing.T) {
	n := ast.New(ast.EQUAL, token.Position{})
	n.AddChild(intLit(3))
	n.AddChild(intLit(3))

	folded := Fold(n)
	if folded.Kind != ast.TRUE {
		t.Fatalf("expected TRUE, got %v", folded.Kind)
	}
}
