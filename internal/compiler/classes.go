package compiler

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/token"
)

// isDerivedFrom reports whether d is b itself or derives from b,
// transitively, through EXTENDS/IMPLEMENTS (spec §4.3 "Class
// derivation").
func (c *Compiler) isDerivedFrom(d, b *ast.Node) bool {
	return c.findClass(d, b, make(map[*ast.Node]bool)) >= 0
}

// findClass scores how far b sits above d in the derivation chain: 0
// if d == b, 1 for a direct base, 2 for a base's base, and so on; -1
// if b is not an ancestor of d at all (spec §4.3 "Class derivation",
// used by overload resolution's PARAM_MATCH depths and by
// select_best_func's derivation-order tiebreak -- see overload.go).
func (c *Compiler) findClass(d, b *ast.Node, visited map[*ast.Node]bool) int {
	if d == b {
		return 0
	}
	if visited[d] {
		return -1
	}
	visited[d] = true

	best := -1
	for _, base := range c.baseClasses(d) {
		if depth := c.findClass(base, b, visited); depth >= 0 {
			if best == -1 || depth+1 < best {
				best = depth + 1
			}
		}
	}
	return best
}

// builtinSupertype records the one-hop implicit hierarchy spec §4.3
// rule 5 assumes exists for the primitive literal type names
// (Boolean/Integer/Number/String all derive from Object), since no
// example program declares these classes itself -- resolveTypeExprToClasses
// falls back to builtinClassByName for these names when ordinary
// lexical resolution finds no user-declared class of that name.
var builtinSupertype = map[string]string{
	"Boolean": "Object",
	"Integer": "Object",
	"Number":  "Object",
	"String":  "Object",
}

// builtinClass returns the singleton synthetic CLASS node standing in
// for name ("Object" or a key of builtinSupertype), creating it on
// first use. These never appear in a parsed tree -- they exist only so
// scoreCandidate/findClass have something to compare a literal
// argument's type against.
func (c *Compiler) builtinClass(name string) *ast.Node {
	if c.builtins == nil {
		c.builtins = make(map[string]*ast.Node)
	}
	if cls, ok := c.builtins[name]; ok {
		return cls
	}
	cls := ast.New(ast.CLASS, token.Position{})
	cls.SetString(name)
	c.builtins[name] = cls
	return cls
}

// builtinClassByName returns the builtin class named name, or nil if
// name isn't one of the primitive type names rule 5 assumes exist.
func (c *Compiler) builtinClassByName(name string) *ast.Node {
	if name != "Object" {
		if _, ok := builtinSupertype[name]; !ok {
			return nil
		}
	}
	return c.builtinClass(name)
}

// isBuiltinClass reports whether n is one of builtinClass's synthetic
// singletons, distinguishing it from a same-named user-declared class
// (resolveTypeExprToClasses always prefers a real lexical match first).
func (c *Compiler) isBuiltinClass(n *ast.Node) bool {
	return c.builtins != nil && c.builtins[n.StringValue()] == n
}
