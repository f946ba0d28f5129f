package compiler

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
)

// newVariablesParents are the declaration kinds whose trailing
// DIRECTIVE_LIST body hoists bare-assignment variable synthesis to
// itself rather than to some more deeply nested block (spec §4.3
// "NEW_VARIABLES propagation": a list owned directly by one of these
// gets DirectiveListFlagNewVariables; a list owned by a control-flow
// construct -- IF/FOR/WHILE/etc. -- does not, so its variables hoist
// further out). The parser never sets this flag itself; the resolver
// derives it from the list's parent Kind the first time it visits the
// list.
func newVariablesParent(k ast.Kind) bool {
	switch k {
	case ast.PROGRAM, ast.PACKAGE, ast.CLASS, ast.INTERFACE, ast.FUNCTION:
		return true
	default:
		return false
	}
}

// configureListFlag sets DirectiveListFlagNewVariables on list the
// first time it is visited, based on its parent's Kind.
func configureListFlag(list *ast.Node) {
	if list.Parent != nil && newVariablesParent(list.Parent.Kind) {
		list.SetFlag(ast.DirectiveListFlagNewVariables, true)
	}
}

// visitDirectiveList implements spec §4.3 "Directive list visitation":
// it walks list's children in order, dispatching each to
// visitDirective, and tracks the end_list sentinel -- once a
// terminator statement is visited, any following statement (other
// than a CASE/DEFAULT label, which unconditionally resets
// reachability) is diagnosed as inaccessible. It returns whether list
// itself ends in a terminator, so a caller that is itself a bare
// nested block can propagate that status to its own enclosing list
// (spec: "a block whose last statement was one").
func (c *Compiler) visitDirectiveList(list *ast.Node, sc *lexScope) bool {
	configureListFlag(list)
	if list.Labels == nil {
		c.collectLabels(list)
	}

	// sc is threaded into nested DIRECTIVE_LIST visits unchanged (e.g. a
	// SYNCHRONIZED or control-flow body below), so on exit this list must
	// only undo the namespaces it pushed itself, not ones a still-open
	// enclosing list pushed (spec §4.3 "Pops namespace entries pushed
	// during the list's visit").
	mark := len(sc.namespaces)

	endList := false
	for i := 0; i < list.ChildCount(); i++ {
		child := list.Child(i)
		if child.Kind == ast.UNKNOWN {
			continue
		}
		if child.Kind == ast.CASE || child.Kind == ast.DEFAULT {
			endList = false
		} else if endList {
			c.Msgs.Emit(messages.ERROR, messages.CodeInaccessibleStatement, child.Pos, "statement is never reached")
		}

		if child.Kind == ast.USE_NAMESPACE {
			sc.pushNamespace(child)
			c.resolveExpr(child, sc)
			continue
		}

		endList = c.visitDirective(child, sc)
	}

	for len(sc.namespaces) > mark {
		sc.popNamespace()
	}
	return endList
}

// visitDirective dispatches a single statement/declaration by Kind and
// reports whether it is itself a terminator (for end_list tracking).
func (c *Compiler) visitDirective(n *ast.Node, sc *lexScope) bool {
	switch n.Kind {
	case ast.VARIABLE:
		c.processVariable(n)
		return false

	case ast.FUNCTION:
		c.visitFunction(n, sc)
		return false

	case ast.CLASS, ast.INTERFACE:
		c.visitClassLike(n, sc)
		return false

	case ast.ENUM:
		c.visitEnum(n, sc)
		return false

	case ast.PACKAGE:
		c.visitPackage(n, sc)
		return false

	case ast.IMPORT:
		c.visitImport(n, sc)
		return false

	case ast.DIRECTIVE_LIST:
		return c.visitDirectiveList(n, sc)

	case ast.IF:
		c.resolveExpr(n.Child(0), sc)
		c.visitDirective(n.Child(1), sc)
		if n.ChildCount() > 2 {
			c.visitDirective(n.Child(2), sc)
		}
		return false

	case ast.WHILE:
		c.resolveExpr(n.Child(0), sc)
		c.visitDirective(n.Child(1), sc)
		return false

	case ast.DO:
		c.visitDirective(n.Child(0), sc)
		c.resolveExpr(n.Child(1), sc)
		return false

	case ast.FOR:
		c.resolveExpr(n.Child(0), sc)
		c.resolveExpr(n.Child(1), sc)
		c.resolveExpr(n.Child(2), sc)
		c.visitDirective(n.Child(3), sc)
		return false

	case ast.WITH:
		c.resolveExpr(n.Child(0), sc)
		c.visitDirective(n.Child(1), sc)
		return false

	case ast.SYNCHRONIZED:
		c.resolveExpr(n.Child(0), sc)
		c.visitDirectiveList(n.Child(1), sc)
		return false

	case ast.SWITCH:
		c.visitSwitch(n, sc)
		return false

	case ast.TRY:
		c.visitTry(n, sc)
		return false

	case ast.LABEL:
		if n.ChildCount() > 0 {
			c.visitDirective(n.Child(0), sc)
		}
		return false

	case ast.RETURN:
		if n.ChildCount() > 0 {
			c.resolveExpr(n.Child(0), sc)
		}
		return true

	case ast.THROW:
		c.resolveExpr(n.Child(0), sc)
		return true

	case ast.BREAK, ast.CONTINUE:
		c.resolveJumpTarget(n)
		return true

	case ast.GOTO:
		c.resolveJumpTarget(n)
		return true

	case ast.USE:
		return false

	case ast.PRAGMA:
		return false

	default:
		c.resolveExpr(n, sc)
		return false
	}
}

// resolveJumpTarget verifies a BREAK/CONTINUE/GOTO's label argument
// (when present) names a LABEL reachable within the enclosing PROGRAM
// (spec §3.2 invariants: "labels do not cross function/class/package/
// program boundaries").
func (c *Compiler) resolveJumpTarget(n *ast.Node) {
	if n.PayloadKind() != ast.PayloadString || n.StringValue() == "" || n.StringValue() == "default" {
		return
	}
	name := n.StringValue()
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == ast.DIRECTIVE_LIST && p.Labels != nil {
			if label, ok := p.Labels[name]; ok {
				n.GotoEnter = label
				return
			}
		}
		if newVariablesParent(p.Kind) {
			break
		}
	}
	c.Msgs.Emit(messages.ERROR, messages.CodeMissingLabel, n.Pos, "label %q is not defined", name)
}
