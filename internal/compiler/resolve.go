package compiler

import (
	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
)

// resolveCtx threads the one piece of state resolve_name accumulates
// across an entire outward scope walk: the first candidate that
// matched by name but was rejected on visibility grounds, reported
// only if nothing else ever matches (spec §4.3 "Name resolution",
// visibility: "error flag accumulated and reported if nothing else
// matched").
type resolveCtx struct {
	name    string
	blocked *ast.Node
}

// resolveIdentifier implements resolve_name for a single (non-overload)
// use-site: the lexical scope walk from useSite outward to the
// enclosing PROGRAM, then across the module roots (spec §4.3).
func (c *Compiler) resolveIdentifier(useSite *ast.Node, sc *lexScope, name string) *ast.Node {
	rc := &resolveCtx{name: name}
	if found := c.resolveOutward(useSite, sc, rc); found != nil {
		return found
	}
	if found := c.resolveInNamespaces(sc, name); found != nil {
		return found
	}
	if found := c.resolveModuleRoots(name); found != nil {
		return found
	}
	if rc.blocked != nil {
		c.Msgs.Emit(messages.ERROR, messages.CodeVisibilityViolation, useSite.Pos, "%q is not accessible from here", name)
		return nil
	}
	c.Msgs.Emit(messages.ERROR, messages.CodeNameNotFound, useSite.Pos, "%q is not defined", name)
	return nil
}

// resolveOutward walks from branch (a descendant of the next ancestor
// to examine) up through the tree, checking one scope-kind per level.
func (c *Compiler) resolveOutward(branch *ast.Node, sc *lexScope, rc *resolveCtx) *ast.Node {
	cur := branch
	for p := branch.Parent; p != nil; p = p.Parent {
		if found := c.resolveInScope(p, cur, sc, rc); found != nil {
			if !c.checkVisible(branch, found, rc) {
				cur = p
				continue
			}
			return found
		}
		cur = p
	}
	return nil
}

// checkVisible applies spec §4.3's visibility rules, recording a
// rejected-but-matching candidate on rc instead of erroring
// immediately, since an outer scope may still hold a visible match of
// the same name.
func (c *Compiler) checkVisible(useSite, decl *ast.Node, rc *resolveCtx) bool {
	switch {
	case decl.HasAttr(ast.AttrPrivate):
		if !sameContainer(useSite, decl, ast.CLASS, ast.INTERFACE, ast.PACKAGE) {
			if rc.blocked == nil {
				rc.blocked = decl
			}
			return false
		}
	case decl.HasAttr(ast.AttrProtected):
		useClass := nearestOfKinds(useSite, ast.CLASS)
		declClass := nearestOfKinds(decl, ast.CLASS)
		if useClass == nil || declClass == nil || !c.isDerivedFrom(useClass, declClass) {
			if rc.blocked == nil {
				rc.blocked = decl
			}
			return false
		}
	case decl.HasAttr(ast.AttrInternal):
		if !sameContainer(useSite, decl, ast.PACKAGE) {
			if rc.blocked == nil {
				rc.blocked = decl
			}
			return false
		}
	}
	return true
}

// nearestOfKinds returns n's nearest ancestor (including n itself)
// whose Kind is one of kinds.
func nearestOfKinds(n *ast.Node, kinds ...ast.Kind) *ast.Node {
	for p := n; p != nil; p = p.Parent {
		for _, k := range kinds {
			if p.Kind == k {
				return p
			}
		}
	}
	return nil
}

// sameContainer reports whether useSite and decl share the same
// nearest enclosing container of one of the given kinds.
func sameContainer(useSite, decl *ast.Node, kinds ...ast.Kind) bool {
	a := nearestOfKinds(useSite, kinds...)
	b := nearestOfKinds(decl, kinds...)
	return a != nil && a == b
}

// resolveInScope checks exactly one ancestor's scope-kind rules (spec
// §4.3 "For each scope kind"). branch is the child of p the walk came
// from (used for backward/forward ordering); it may equal p itself
// only at the very first call, which never happens here since p is
// always useSite's parent or higher.
func (c *Compiler) resolveInScope(p, branch *ast.Node, sc *lexScope, rc *resolveCtx) *ast.Node {
	switch p.Kind {
	case ast.DIRECTIVE_LIST:
		return c.resolveInDirectiveList(p, branch, rc.name)
	case ast.PARAMETERS:
		return c.resolveInParameters(p, branch, rc.name, false)
	case ast.FUNCTION:
		if params := findChildOfKind(p, ast.PARAMETERS); params != nil {
			if found := c.resolveInParameters(params, nil, rc.name, true); found != nil {
				return found
			}
		}
		return nil
	case ast.FOR:
		init := p.Child(0)
		if init != nil && init.Kind == ast.VARIABLE && init.StringValue() == rc.name {
			return init
		}
		return nil
	case ast.WITH:
		obj := p.Child(0)
		if obj == nil || obj.TypeNode == nil {
			return nil
		}
		if found := c.resolveMemberInType(obj.TypeNode, rc.name); found != nil {
			branch.SetFlag(ast.IdentifierFlagWith, true)
			return found
		}
		return nil
	case ast.CATCH:
		param := p.Child(0)
		if param != nil && param.StringValue() == rc.name {
			return param
		}
		return nil
	case ast.ENUM:
		if p.StringValue() == rc.name {
			p.SetFlag(ast.EnumFlagInUse, true)
			return p
		}
		for i := 0; i < p.ChildCount(); i++ {
			v := p.Child(i)
			if v.Kind == ast.VARIABLE && v.StringValue() == rc.name {
				p.SetFlag(ast.EnumFlagInUse, true)
				v.SetFlag(ast.VariableFlagInUse, true)
				return v
			}
		}
		return nil
	case ast.CLASS, ast.INTERFACE:
		// A name used inside p's own EXTENDS/IMPLEMENTS clause names a
		// base type, never one of p's own members or bases -- searching
		// p here would recurse into baseClasses(p), which resolves this
		// very same identifier again. Let the walk continue outward
		// instead, where the base name is an ordinary sibling
		// declaration.
		if branch.Kind == ast.EXTENDS || branch.Kind == ast.IMPLEMENTS {
			return nil
		}
		return c.resolveInClass(p, rc.name, make(map[*ast.Node]bool))
	case ast.PACKAGE:
		if found := c.resolveInPackageBody(p, rc.name); found != nil {
			p.SetFlag(ast.PackageFlagReferenced, true)
			return found
		}
		return nil
	default:
		return nil
	}
}

func findChildOfKind(n *ast.Node, k ast.Kind) *ast.Node {
	for i := 0; i < n.ChildCount(); i++ {
		if n.Child(i).Kind == k {
			return n.Child(i)
		}
	}
	return nil
}

func indexOfChild(parent, child *ast.Node) int {
	for i := 0; i < parent.ChildCount(); i++ {
		if parent.Child(i) == child {
			return i
		}
	}
	return -1
}

func isDeclKind(k ast.Kind) bool {
	switch k {
	case ast.VARIABLE, ast.FUNCTION, ast.CLASS, ast.INTERFACE, ast.ENUM, ast.PACKAGE:
		return true
	default:
		return false
	}
}

// resolveInDirectiveList implements the DIRECTIVE_LIST scope rule:
// backward scan from the use-site, then forward scan (spec §4.3: "to
// permit mutual recursion").
func (c *Compiler) resolveInDirectiveList(list, branch *ast.Node, name string) *ast.Node {
	idx := indexOfChild(list, branch)
	if idx < 0 {
		idx = list.ChildCount()
	}
	for i := idx - 1; i >= 0; i-- {
		if found := matchDecl(list.Child(i), name); found != nil {
			return found
		}
	}
	for i := idx + 1; i < list.ChildCount(); i++ {
		if found := matchDecl(list.Child(i), name); found != nil {
			return found
		}
	}
	if list.Variables != nil {
		if v, ok := list.Variables[name]; ok {
			return v
		}
	}
	return nil
}

func matchDecl(n *ast.Node, name string) *ast.Node {
	if n != nil && isDeclKind(n.Kind) && n.StringValue() == name {
		return n
	}
	return nil
}

// resolveInParameters implements the PARAMETERS scope rule. full=true
// scans the entire list (spec §4.3 "FUNCTION: scan its PARAMETERS
// child"); otherwise it scans backward-only up to (not including)
// branch, matching "PARAMETERS: backward scan only" for a default
// expression referencing an earlier parameter.
func (c *Compiler) resolveInParameters(params, branch *ast.Node, name string, full bool) *ast.Node {
	limit := params.ChildCount()
	if !full {
		limit = indexOfChild(params, branch)
		if limit < 0 {
			limit = params.ChildCount()
		}
	}
	for i := 0; i < limit; i++ {
		if p := params.Child(i); p.StringValue() == name {
			return p
		}
	}
	return nil
}

// resolveInClass searches a CLASS/INTERFACE's own members then its
// extends/implements chain recursively (spec §4.3). visited guards
// against a malformed (cyclic) extends chain turning into infinite
// recursion.
func (c *Compiler) resolveInClass(cls *ast.Node, name string, visited map[*ast.Node]bool) *ast.Node {
	if visited[cls] {
		return nil
	}
	visited[cls] = true

	if body := findChildOfKind(cls, ast.DIRECTIVE_LIST); body != nil {
		for i := 0; i < body.ChildCount(); i++ {
			if found := matchDecl(body.Child(i), name); found != nil {
				return found
			}
		}
	}
	for _, base := range c.baseClasses(cls) {
		if found := c.resolveInClass(base, name, visited); found != nil {
			return found
		}
	}
	return nil
}

// baseClasses resolves a CLASS/INTERFACE's EXTENDS/IMPLEMENTS children
// to the CLASS/INTERFACE nodes they name, including the LIST form
// `implements A, B`.
func (c *Compiler) baseClasses(cls *ast.Node) []*ast.Node {
	if c.isBuiltinClass(cls) {
		if base, ok := builtinSupertype[cls.StringValue()]; ok {
			return []*ast.Node{c.builtinClass(base)}
		}
		return nil
	}
	var out []*ast.Node
	for i := 0; i < cls.ChildCount(); i++ {
		child := cls.Child(i)
		switch child.Kind {
		case ast.EXTENDS, ast.IMPLEMENTS:
			for j := 0; j < child.ChildCount(); j++ {
				out = append(out, c.resolveTypeExprToClasses(child.Child(j))...)
			}
		}
	}
	return out
}

// resolveTypeExprToClasses resolves a type-position expression (an
// IDENTIFIER, a MEMBER qualifier chain, or a LIST of either) to the
// CLASS/INTERFACE declarations it names.
func (c *Compiler) resolveTypeExprToClasses(expr *ast.Node) []*ast.Node {
	switch expr.Kind {
	case ast.LIST:
		var out []*ast.Node
		for i := 0; i < expr.ChildCount(); i++ {
			out = append(out, c.resolveTypeExprToClasses(expr.Child(i))...)
		}
		return out
	case ast.IDENTIFIER:
		if target := c.resolveIdentifierQuiet(expr, newScope(), expr.StringValue()); target != nil && (target.Kind == ast.CLASS || target.Kind == ast.INTERFACE) {
			expr.Instance = target
			return []*ast.Node{target}
		}
		if cls := c.builtinClassByName(expr.StringValue()); cls != nil {
			expr.Instance = cls
			return []*ast.Node{cls}
		}
		return nil
	case ast.MEMBER:
		subject := expr.Child(0)
		subClasses := c.resolveTypeExprToClasses(subject)
		for _, sc := range subClasses {
			if found := c.resolveInClass(sc, expr.StringValue(), make(map[*ast.Node]bool)); found != nil && (found.Kind == ast.CLASS || found.Kind == ast.INTERFACE) {
				expr.Instance = found
				return []*ast.Node{found}
			}
		}
		return nil
	default:
		return nil
	}
}

// resolveIdentifierQuiet resolves name without emitting a diagnostic on
// failure, used by type-position lookups that would otherwise double
// report once the caller does its own error handling.
func (c *Compiler) resolveIdentifierQuiet(useSite *ast.Node, sc *lexScope, name string) *ast.Node {
	rc := &resolveCtx{name: name}
	if found := c.resolveOutward(useSite, sc, rc); found != nil {
		return found
	}
	if found := c.resolveInNamespaces(sc, name); found != nil {
		return found
	}
	return c.resolveModuleRoots(name)
}

// resolveInNamespaces searches the PACKAGE (or other member container)
// named by each `use namespace <expr>;` currently in effect, innermost
// first (spec §4.2 "use namespace"), giving it priority over the
// implicit module roots but not over an ordinary lexical match.
func (c *Compiler) resolveInNamespaces(sc *lexScope, name string) *ast.Node {
	for i := len(sc.namespaces) - 1; i >= 0; i-- {
		ns := sc.namespaces[i]
		if ns.ChildCount() == 0 {
			continue
		}
		expr := ns.Child(0)
		target := memberTypeContext(expr)
		if target == nil {
			continue
		}
		if found := c.resolveMemberInType(target, name); found != nil {
			return found
		}
	}
	return nil
}

// resolveInPackageBody searches a PACKAGE's member list, mirroring
// check_import/find_package_item (spec §4.3).
func (c *Compiler) resolveInPackageBody(pkg *ast.Node, name string) *ast.Node {
	body := findChildOfKind(pkg, ast.DIRECTIVE_LIST)
	if body == nil {
		return nil
	}
	for i := 0; i < body.ChildCount(); i++ {
		if found := matchDecl(body.Child(i), name); found != nil {
			return found
		}
	}
	return nil
}

// resolveMemberInType resolves name as a member of typeNode (a
// CLASS/INTERFACE/ENUM/PACKAGE declaration), used both by qualifier
// resolution (`a.b`) and by WITH's bound-object lookup.
func (c *Compiler) resolveMemberInType(typeNode *ast.Node, name string) *ast.Node {
	switch typeNode.Kind {
	case ast.CLASS, ast.INTERFACE:
		return c.resolveInClass(typeNode, name, make(map[*ast.Node]bool))
	case ast.PACKAGE:
		return c.resolveInPackageBody(typeNode, name)
	case ast.ENUM:
		for i := 0; i < typeNode.ChildCount(); i++ {
			if v := typeNode.Child(i); v.Kind == ast.VARIABLE && v.StringValue() == name {
				return v
			}
		}
		return nil
	default:
		return nil
	}
}

// resolveModuleRoots is the fallback search "across the three implicit
// module roots (global, system, native)" (spec §4.3). Each root is
// modeled as a package name in the Database; find_external_package
// (modules.go) loads the owning file on demand.
func (c *Compiler) resolveModuleRoots(name string) *ast.Node {
	for _, root := range [...]string{"global", "system", "native"} {
		pkg, _ := c.findExternalPackage(root)
		if pkg != nil {
			if found := c.resolveInPackageBody(pkg, name); found != nil {
				return found
			}
		}
	}
	return nil
}
