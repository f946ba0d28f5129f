package compiler

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/resources"
)

// visitFunction prepares a FUNCTION's attributes, resolves its
// PARAMETERS defaults/types and return TYPE, then visits its body
// (absent for a forward or native declaration) in its own scope.
func (c *Compiler) visitFunction(fn *ast.Node, sc *lexScope) {
	c.prepareAttributes(fn)

	if params := findChildOfKind(fn, ast.PARAMETERS); params != nil {
		for i := 0; i < params.ChildCount(); i++ {
			c.visitParam(params.Child(i), sc)
		}
	}
	if rt := findChildOfKind(fn, ast.TYPE); rt != nil {
		c.resolveExpr(rt, sc)
	}
	for i := 0; i < fn.ChildCount(); i++ {
		if child := fn.Child(i); child.Kind == ast.REQUIRE || child.Kind == ast.ENSURE {
			for j := 0; j < child.ChildCount(); j++ {
				c.resolveExpr(child.Child(j), sc)
			}
		}
	}

	if functionHasBody(fn) {
		c.visitDirectiveList(fn.Child(fn.ChildCount()-1), sc)
	}
}

// visitParam resolves a PARAM's optional TYPE child and default value.
func (c *Compiler) visitParam(p *ast.Node, sc *lexScope) {
	if t := findChildOfKind(p, ast.TYPE); t != nil {
		c.resolveExpr(t, sc)
	}
	if set := findChildOfKind(p, ast.SET); set != nil {
		for i := 0; i < set.ChildCount(); i++ {
			c.resolveExpr(set.Child(i), sc)
		}
	}
}

// visitClassLike prepares a CLASS/INTERFACE's attributes, resolves its
// EXTENDS/IMPLEMENTS base references, then visits its member body
// (absent for a forward declaration).
func (c *Compiler) visitClassLike(cls *ast.Node, sc *lexScope) {
	c.prepareAttributes(cls)
	c.packagesByName[cls.StringValue()] = cls

	for i := 0; i < cls.ChildCount(); i++ {
		child := cls.Child(i)
		if child.Kind != ast.EXTENDS && child.Kind != ast.IMPLEMENTS {
			continue
		}
		for j := 0; j < child.ChildCount(); j++ {
			c.resolveTypeExprToClasses(child.Child(j))
		}
	}

	if body := findChildOfKind(cls, ast.DIRECTIVE_LIST); body != nil {
		c.visitDirectiveList(body, sc)
	}
}

// visitEnum prepares an ENUM's attributes and resolves each variant's
// default-value expression (spec §4.3 "Variable processing" applied to
// an ENUM's VARIABLE children).
func (c *Compiler) visitEnum(en *ast.Node, sc *lexScope) {
	c.prepareAttributes(en)
	if en.ChildCount() == 0 && en.StringValue() == "" {
		c.Msgs.Emit(messages.ERROR, messages.CodeUnnamedForwardEnum, en.Pos, "forward enum declaration requires a name")
	}
	for i := 0; i < en.ChildCount(); i++ {
		if v := en.Child(i); v.Kind == ast.VARIABLE {
			c.processVariable(v)
		}
	}
}

// visitPackage prepares a PACKAGE's attributes, indexes it by name,
// and visits its braced body.
func (c *Compiler) visitPackage(pkg *ast.Node, sc *lexScope) {
	c.prepareAttributes(pkg)
	if name := pkg.StringValue(); name != "" {
		c.packagesByName[name] = pkg
	}
	if body := findChildOfKind(pkg, ast.DIRECTIVE_LIST); body != nil {
		c.visitDirectiveList(body, sc)
	}
}

// visitImport implements the shallow half of spec §4.3 "Module
// loading": resolving the dotted path to a loaded PACKAGE (on disk or
// via find_external_package) and, for the `import a.b.c as d` rename
// form, binding d in the importing list's Variables table.
func (c *Compiler) visitImport(imp *ast.Node, sc *lexScope) {
	path := imp.StringValue()
	pkg, err := c.findExternalPackage(path)
	if err != nil {
		if fe, ok := err.(*resources.FatalError); ok {
			c.Msgs.Emit(messages.FATAL, messages.CodeModuleNotFound, imp.Pos, "%s", fe.Error())
		}
		return
	}
	if pkg == nil {
		c.Msgs.Emit(messages.ERROR, messages.CodeModuleNotFound, imp.Pos, "cannot find module %q", path)
		return
	}
	imp.Instance = pkg
	c.packagesByName[path] = pkg

	if imp.ChildCount() > 0 {
		if rename := imp.Child(imp.ChildCount() - 1); rename.Kind == ast.IDENTIFIER {
			if list := imp.Parent; list != nil && list.Kind == ast.DIRECTIVE_LIST {
				if list.Variables == nil {
					list.Variables = make(map[string]*ast.Node)
				}
				list.Variables[rename.StringValue()] = pkg
			}
		}
	}
}

// visitSwitch resolves the switch expression and each CASE/DEFAULT
// body in turn (spec §3.2 AST shapes: CASE/DEFAULT bodies are built
// outside parseDirectiveList, but still visited as an ordinary
// directive list here).
func (c *Compiler) visitSwitch(sw *ast.Node, sc *lexScope) {
	c.resolveExpr(sw.Child(0), sc)
	for i := 1; i < sw.ChildCount(); i++ {
		clause := sw.Child(i)
		switch clause.Kind {
		case ast.CASE:
			if expr := clause.Child(0); expr.Kind == ast.RANGE {
				c.resolveExpr(expr.Child(0), sc)
				c.resolveExpr(expr.Child(1), sc)
			} else {
				c.resolveExpr(expr, sc)
			}
			if clause.ChildCount() > 1 {
				c.visitDirectiveList(clause.Child(1), sc)
			}
		case ast.DEFAULT:
			if clause.ChildCount() > 0 {
				c.visitDirectiveList(clause.Child(0), sc)
			}
		}
	}
}

// visitTry resolves the try body, each CATCH clause (including its
// optional guard expression), and the optional FINALLY clause (spec
// §3.2 AST shapes: "the body is ALWAYS the LAST child" of CATCH).
func (c *Compiler) visitTry(t *ast.Node, sc *lexScope) {
	c.visitDirectiveList(t.Child(0), sc)
	for i := 1; i < t.ChildCount(); i++ {
		clause := t.Child(i)
		switch clause.Kind {
		case ast.CATCH:
			c.visitCatch(clause, sc)
		case ast.FINALLY:
			if clause.ChildCount() > 0 {
				c.visitDirectiveList(clause.Child(0), sc)
			}
		}
	}
}

func (c *Compiler) visitCatch(catch *ast.Node, sc *lexScope) {
	param := catch.Child(0)
	if param != nil {
		if t := findChildOfKind(param, ast.TYPE); t != nil {
			c.resolveExpr(t, sc)
		}
	}
	body := catch.Child(catch.ChildCount() - 1)
	if catch.Operator == "guarded" && catch.ChildCount() > 2 {
		c.resolveExpr(catch.Child(1), sc)
	}
	if body != nil && body.Kind == ast.DIRECTIVE_LIST {
		c.visitDirectiveList(body, sc)
	}
}
