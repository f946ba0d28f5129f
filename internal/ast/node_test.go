package ast

import (
	"testing"

	"github.com/as2js-go/as2js/internal/token"
)

func TestAddChildSetsParent(t *testing.T) {
	root := New(DIRECTIVE_LIST, token.Position{Line: 1, Column: 1})
	child := New(INTEGER, token.Position{Line: 1, Column: 1})
	root.AddChild(child)

	if child.Parent != root {
		t.Fatalf("child.Parent = %v, want root", child.Parent)
	}
	if root.ChildCount() != 1 || root.Child(0) != child {
		t.Fatalf("child not recorded on parent")
	}
}

func TestFlagsAreIndependentOfAttributes(t *testing.T) {
	n := New(FUNCTION, token.Position{})
	n.SetFlag(FunctionFlagGetter, true)
	n.SetAttr(AttrPublic, true)

	if !n.HasFlag(FunctionFlagGetter) {
		t.Fatal("expected getter flag set")
	}
	if n.HasFlag(FunctionFlagSetter) {
		t.Fatal("setter flag should not be set")
	}
	if !n.HasAttr(AttrPublic) {
		t.Fatal("expected public attribute set")
	}

	n.SetFlag(FunctionFlagGetter, false)
	if n.HasFlag(FunctionFlagGetter) {
		t.Fatal("expected getter flag cleared")
	}
	if !n.HasAttr(AttrPublic) {
		t.Fatal("clearing a flag should not clear an attribute")
	}
}

func TestCloneLeafNode(t *testing.T) {
	lit := New(INTEGER, token.Position{Line: 3, Column: 4})
	lit.SetInt(7)

	clone := lit.Clone()
	if clone == lit {
		t.Fatal("Clone must return a distinct node")
	}
	if clone.IntValue() != 7 || clone.Kind != INTEGER {
		t.Fatalf("clone payload mismatch: %+v", clone)
	}
	if clone.Parent != nil {
		t.Fatal("clone should have no parent")
	}
}

func TestCloneRejectsNonLeaf(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic cloning a node with children")
		}
	}()
	n := New(LIST, token.Position{})
	n.AddChild(New(INTEGER, token.Position{}))
	n.Clone()
}

func TestProgramWalksToEnclosingProgram(t *testing.T) {
	program := New(PROGRAM, token.Position{})
	list := New(DIRECTIVE_LIST, token.Position{})
	fn := New(FUNCTION, token.Position{})
	program.AddChild(list)
	list.AddChild(fn)

	if fn.Program() != program {
		t.Fatalf("expected fn.Program() to find enclosing PROGRAM")
	}
}

func TestResolvingGuardDetectsCycle(t *testing.T) {
	n := New(VARIABLE, token.Position{})
	if !n.BeginResolving() {
		t.Fatal("first BeginResolving should succeed")
	}
	if n.BeginResolving() {
		t.Fatal("second BeginResolving should detect the cycle")
	}
	n.EndResolving()
	if !n.BeginResolving() {
		t.Fatal("BeginResolving should succeed again after EndResolving")
	}
}

func TestNewFromTemplateCopiesPosition(t *testing.T) {
	template := New(IDENTIFIER, token.Position{Filename: "a.as", Line: 5, Column: 9})
	rewritten := NewFromTemplate(template, CALL)

	if rewritten.Pos != template.Pos {
		t.Fatalf("expected position copied from template, got %+v", rewritten.Pos)
	}
	if rewritten.Kind != CALL {
		t.Fatalf("expected CALL kind, got %v", rewritten.Kind)
	}
}
