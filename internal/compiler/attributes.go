package compiler

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/optimizer"
)

// attrKeywords mirrors the parser's attributeKeywords table (spec §4.2
// "Attributes and declaration framing"): the fixed set of bare
// identifier spellings recognized as attribute keywords. The
// resolver needs its own copy because a leaf's spelling, not its
// already-set bit, is what prepare_attributes reads back here --
// keeping the two tables separate (rather than exporting the parser's)
// matches spec §1's layering: the parser never depends on the
// compiler, and the compiler must not reach into parser internals.
var attrKeywords = map[string]ast.Attribute{
	"abstract":   ast.AttrAbstract,
	"extern":     ast.AttrExtern,
	"final":      ast.AttrFinal,
	"identifier": ast.AttrIdentifier,
	"native":     ast.AttrNative,
	"private":    ast.AttrPrivate,
	"protected":  ast.AttrProtected,
	"public":     ast.AttrPublic,
	"static":     ast.AttrStatic,
	"transient":  ast.AttrTransient,
	"volatile":   ast.AttrVolatile,
}

// attributeContainers are the declaration kinds prepareAttributes walks
// up to when looking for an inheritance source (spec §4.3 "Inherit from
// the nearest ancestor that is not PROGRAM/PACKAGE/CLASS/INTERFACE/
// FUNCTION" -- read as: walk past plain block wrappers (DIRECTIVE_LIST
// and the control-flow nodes that carry one) until reaching one of
// these named declaration containers).
func isAttributeContainer(k ast.Kind) bool {
	switch k {
	case ast.PROGRAM, ast.PACKAGE, ast.CLASS, ast.INTERFACE, ast.FUNCTION:
		return true
	default:
		return false
	}
}

// attributeSource returns n's nearest enclosing declaration container,
// or nil at the root of the tree.
func attributeSource(n *ast.Node) *ast.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if isAttributeContainer(p.Kind) {
			return p
		}
	}
	return nil
}

// prepareAttributes implements spec §4.3 "Attribute resolution": on
// first visit of a declaration it translates the sibling ATTRIBUTES
// node into boolean flags on n itself, then inherits the attributes
// spec lists from the nearest enclosing declaration. AttrDefined is
// repurposed as the "already prepared" idempotency guard (spec §4.3
// Contract: "Idempotent on a successful tree").
func (c *Compiler) prepareAttributes(n *ast.Node) {
	if n.HasAttr(ast.AttrDefined) {
		return
	}
	n.SetAttr(ast.AttrDefined, true)

	if n.AttributeNode != nil {
		for i := 0; i < n.AttributeNode.ChildCount(); i++ {
			leaf := n.AttributeNode.Child(i)
			switch {
			case leaf.HasAttr(ast.AttrTrue):
				n.SetAttr(ast.AttrTrue, true)
			case leaf.HasAttr(ast.AttrFalse):
				n.SetAttr(ast.AttrFalse, true)
			default:
				if bit, ok := attrKeywords[leaf.StringValue()]; ok {
					n.SetAttr(bit, true)
				} else {
					c.resolveDynamicAttribute(n, leaf)
				}
			}
		}
	}

	if src := attributeSource(n); src != nil {
		c.prepareAttributes(src)
		c.inheritAttributes(n, src)
	}

	if n.HasAttr(ast.AttrFalse) {
		n.SetAttr(ast.AttrTrue, false) // FALSE takes priority over TRUE
	}

	if n.Kind == ast.FUNCTION && n.HasAttr(ast.AttrNative) && functionHasBody(n) {
		c.Msgs.Emit(messages.ERROR, messages.CodeNativeWithBody, n.Pos, "native function %q cannot have a body", n.StringValue())
		n.SetAttr(ast.AttrNative, false)
	}
}

func (c *Compiler) inheritAttributes(n, src *ast.Node) {
	if n.Attrs()&ast.AttrAccessMask == 0 {
		n.SetAttrs(n.Attrs() | src.Attrs()&ast.AttrAccessMask)
	}
	if n.Attrs()&ast.AttrDispatchMask == 0 {
		n.SetAttrs(n.Attrs() | src.Attrs()&ast.AttrDispatchMask)
	}
	if !n.HasAttr(ast.AttrFinal) && src.HasAttr(ast.AttrFinal) {
		n.SetAttr(ast.AttrFinal, true)
	}
	for _, bit := range [...]ast.Attribute{ast.AttrNative, ast.AttrEnumerable, ast.AttrDynamic} {
		if !n.HasAttr(bit) && src.HasAttr(bit) {
			n.SetAttr(bit, true)
		}
	}
}

// resolveDynamicAttribute handles an attribute-list entry whose
// spelling is not one of the fixed keywords (spec §4.3: "dynamic
// attribute names resolve to VAR_ATTRIBUTES constants"). The current
// parser grammar (§4.2) only ever accumulates fixed keywords or bare
// true/false into an ATTRIBUTES node, so this path is not reachable
// from any program the parser can produce today; it exists so a future
// grammar extension (a named constant used as an attribute) has
// somewhere to resolve to without a compiler change, the same
// forward-compatible wiring the teacher leaves in its own attribute
// table for attribute names it doesn't yet parse.
func (c *Compiler) resolveDynamicAttribute(n, leaf *ast.Node) {
	if !leaf.BeginResolving() {
		c.Msgs.Emit(messages.ERROR, messages.CodeCircularAttributeVariable, leaf.Pos, "attribute %q is circular", leaf.StringValue())
		return
	}
	defer leaf.EndResolving()

	target := c.resolveIdentifier(leaf, newScope(), leaf.StringValue())
	if target == nil || target.Kind != ast.VARIABLE {
		c.Msgs.Emit(messages.ERROR, messages.CodeNameNotFound, leaf.Pos, "unknown attribute %q", leaf.StringValue())
		return
	}
	target.SetFlag(ast.VariableFlagAttrs, true)
	defer target.SetFlag(ast.VariableFlagAttrs, false)

	c.processVariable(target)
	if target.ChildCount() == 0 {
		return
	}
	set := target.Child(target.ChildCount() - 1)
	if set.Kind != ast.SET || set.ChildCount() == 0 {
		return
	}
	if b, ok := optimizer.EvaluateToBool(set.Child(0)); ok {
		n.SetAttr(ast.AttrTrue, b)
		n.SetAttr(ast.AttrFalse, !b)
	}
}

// functionHasBody reports whether fn's last child is the DIRECTIVE_LIST
// body the parser attaches after any PARAMETERS/TYPE/contract children
// (spec §4.2 "function body"); a forward or native declaration has no
// such trailing child.
func functionHasBody(fn *ast.Node) bool {
	n := fn.ChildCount()
	return n > 0 && fn.Child(n-1).Kind == ast.DIRECTIVE_LIST
}
