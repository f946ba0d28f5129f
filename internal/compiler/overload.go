package compiler

import (
	"github.com/mitchellh/hashstructure/v2"

	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
)

// resolveOverloadedCall implements spec §4.3 "Function overload
// resolution" for a call whose callee already resolved to one
// FUNCTION declaration (first): it collects every sibling overload of
// the same name, runs select_best_func, and binds call to the winner,
// padding its argument list with defaults (call_add_missing_params).
func (c *Compiler) resolveOverloadedCall(call, callee, first, args *ast.Node, sc *lexScope) {
	candidates := c.collectOverloads(first)
	best := c.selectBestFunc(call, candidates, args)
	if best == nil {
		return
	}
	call.Instance = best
	if best.TypeNode != nil {
		call.TypeNode = best.TypeNode
	} else if rt := findChildOfKind(best, ast.TYPE); rt != nil && rt.ChildCount() > 0 {
		if resolved := c.resolveTypeExprToClasses(rt.Child(0)); len(resolved) > 0 {
			call.TypeNode = resolved[0]
		}
	}
	c.callAddMissingParams(best, args)
}

// collectOverloads gathers every FUNCTION sibling of first sharing its
// name, within the DIRECTIVE_LIST or class/interface body that
// declares it (spec §4.3: "scan DIRECTIVE_LIST for same-named
// FUNCTION").
func (c *Compiler) collectOverloads(first *ast.Node) []*ast.Node {
	parent := first.Parent
	if parent == nil {
		return []*ast.Node{first}
	}
	var out []*ast.Node
	for i := 0; i < parent.ChildCount(); i++ {
		f := parent.Child(i)
		if f.Kind == ast.FUNCTION && f.StringValue() == first.StringValue() {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		out = []*ast.Node{first}
	}
	return out
}

// selectBestFunc scores every candidate against the supplied arguments
// (spec §4.3 rules 1-5) and returns the closest match. Candidates that
// tie on that score fall back to derivation ordering (rule 6: "the
// match declared in the more derived class wins"); a tie that
// derivation can't resolve is an ambiguous-overload error, and no
// feasible candidate at all is a not-found error. Results are
// memoized per call-site signature for the lifetime of the Compiler
// (SPEC_FULL.md §3, hashstructure wiring).
func (c *Compiler) selectBestFunc(call *ast.Node, candidates []*ast.Node, args *ast.Node) *ast.Node {
	key, cacheable := c.overloadCacheKey(candidates, args)
	if cacheable {
		if cached, ok := c.overloadCache[key]; ok {
			return cached
		}
	}

	type scored struct {
		fn  *ast.Node
		key int
	}
	var feasible []scored
	for _, fn := range candidates {
		if pm, ok := c.scoreCandidate(fn, args); ok {
			feasible = append(feasible, scored{fn, pm.key()})
		}
	}

	if len(feasible) == 0 {
		c.Msgs.Emit(messages.ERROR, messages.CodeNameNotFound, call.Pos,
			"no overload of %q accepts these arguments", candidates[0].StringValue())
		return nil
	}

	best := feasible[0].key
	for _, s := range feasible[1:] {
		if s.key < best {
			best = s.key
		}
	}

	var tied []*ast.Node
	for _, s := range feasible {
		if s.key == best {
			tied = append(tied, s.fn)
		}
	}

	winner := tied[0]
	if len(tied) > 1 {
		winner = c.breakTieByDerivation(tied)
		if winner == nil {
			c.Msgs.Emit(messages.ERROR, messages.CodeAmbiguousOverload, call.Pos,
				"call to %q matches more than one overload", candidates[0].StringValue())
			return nil
		}
	}

	if cacheable {
		c.overloadCache[key] = winner
	}
	return winner
}

// breakTieByDerivation applies spec §4.3 rule 6's fallback: among a
// set of equally-scored candidates, the one declared in the most
// derived class wins. Returns nil if no single candidate's enclosing
// class derives from every other candidate's (the tie is genuinely
// unresolvable -- e.g. two overloads declared in the same class, or in
// classes neither of which derives from the other).
func (c *Compiler) breakTieByDerivation(tied []*ast.Node) *ast.Node {
	classOf := make([]*ast.Node, len(tied))
	for i, fn := range tied {
		classOf[i] = nearestOfKinds(fn, ast.CLASS, ast.INTERFACE)
	}
	for i, fn := range tied {
		ci := classOf[i]
		if ci == nil {
			continue
		}
		mostDerived := true
		for j := range tied {
			if i == j {
				continue
			}
			cj := classOf[j]
			if cj == nil || ci == cj || !c.isDerivedFrom(ci, cj) {
				mostDerived = false
				break
			}
		}
		if mostDerived {
			return fn
		}
	}
	return nil
}

// overloadCacheKey hashes the set of candidate declaration positions
// together with the actual argument count and each argument's inferred
// class, a stable-enough signature for one compilation session since
// the candidate set for a given call-site name never changes
// mid-compile.
func (c *Compiler) overloadCacheKey(candidates []*ast.Node, args *ast.Node) (uint64, bool) {
	type sig struct {
		Name      string
		Positions []string
		ArgCount  int
		ArgTypes  []string
	}
	s := sig{Name: candidates[0].StringValue(), ArgCount: args.ChildCount()}
	for _, fn := range candidates {
		s.Positions = append(s.Positions, fn.Pos.String())
	}
	for i := 0; i < args.ChildCount(); i++ {
		t := ""
		if cls := c.argumentClass(args.Child(i)); cls != nil {
			t = cls.StringValue() + "@" + cls.Pos.String()
		}
		s.ArgTypes = append(s.ArgTypes, t)
	}
	h, err := hashstructure.Hash(s, hashstructure.FormatV2, nil)
	if err != nil {
		return 0, false
	}
	return h, true
}

// lowestDepth is the PARAM_MATCH depth assigned when a position can't
// be meaningfully type-compared: an untyped formal parameter, a formal
// typed Object against a non-Object actual, or an actual whose type
// this resolver can't determine (spec §4.3 rule 2/5:
// "PARAM_MATCH_FLAG_UNPROTOTYPED... lowest priority", "Object matches
// anything... at lowest priority").
const lowestDepth = 1 << 16

// arityWeight scales the arity/REST/unprototyped component of
// paramMatch.key so it always dominates the summed type depths: spec
// §4.3 orders arity coverage and the unprototyped fallback ahead of
// type-depth closeness, and this keeps that ordering intact even when
// every argument position lands on lowestDepth.
const arityWeight = 1 << 32

// paramMatch is this resolver's PARAM_MATCH (spec §4.3 rule 1): arity
// records the existing arity/REST/unprototyped distance, and depths
// holds one type-compatibility depth per positionally-matched
// argument. key collapses both into the single totally-ordered score
// selectBestFunc compares directly; ties on key fall back to
// breakTieByDerivation (rule 6), which is a deliberate simplification
// of the spec's pairwise-per-position comparison -- see DESIGN.md.
type paramMatch struct {
	arity  int
	depths []int
}

func (pm paramMatch) key() int {
	k := pm.arity * arityWeight
	for _, d := range pm.depths {
		k += d
	}
	return k
}

// scoreCandidate builds fn's paramMatch against the actual arguments
// supplied. Candidates that cannot possibly accept the arguments (too
// many actuals without a REST parameter, a missing actual with no
// default, or an actual whose class doesn't derive from a typed
// formal's class) are rejected outright (spec §4.3 rules 1-5:
// "missing-actuals coverage" and "the actual's class must equal or
// derive from the formal's class").
func (c *Compiler) scoreCandidate(fn *ast.Node, args *ast.Node) (pm paramMatch, ok bool) {
	params := findChildOfKind(fn, ast.PARAMETERS)
	paramCount, hasRest, unprototyped := 0, false, false
	if params != nil {
		paramCount = params.ChildCount()
		if paramCount > 0 {
			last := params.Child(paramCount - 1)
			hasRest = last.HasFlag(ast.ParamFlagRest)
		}
		for i := 0; i < paramCount; i++ {
			if params.Child(i).HasFlag(ast.ParamMatchFlagUnprototyped) || params.Child(i).HasFlag(ast.ParamFlagUnprototyped) {
				unprototyped = true
			}
		}
	}

	argCount := 0
	if args != nil {
		argCount = args.ChildCount()
	}

	if argCount > paramCount && !hasRest {
		return paramMatch{}, false
	}
	if argCount < paramCount {
		for i := argCount; i < paramCount; i++ {
			p := params.Child(i)
			if p.HasFlag(ast.ParamFlagRest) {
				continue
			}
			if !hasDefault(p) && !p.HasFlag(ast.ParamFlagUnchecked) {
				return paramMatch{}, false
			}
		}
	}

	arity := paramCount - argCount
	if arity < 0 {
		arity = -arity
	}
	if hasRest {
		arity += 100
	}
	if unprototyped {
		arity += 1000
	}

	matched := argCount
	if paramCount < matched {
		matched = paramCount
	}
	depths := make([]int, matched)
	for i := 0; i < matched; i++ {
		depth, compatible := c.paramMatchDepth(params.Child(i), args.Child(i))
		if !compatible {
			return paramMatch{}, false
		}
		depths[i] = depth
	}

	return paramMatch{arity: arity, depths: depths}, true
}

// paramMatchDepth computes one PARAM_MATCH position's depth (spec
// §4.3 rules 1/5). Returns ok=false only when both sides have a known,
// concrete class and the actual does not equal or derive from the
// formal -- that position can never match, so the whole candidate is
// rejected. Everything unresolvable resolves to lowestDepth rather
// than rejection: an untyped formal accepts anything (rule 2's
// fallback), and an actual whose type this resolver doesn't infer
// (e.g. the result of an arbitrary call) can't be asserted incompatible
// either.
func (c *Compiler) paramMatchDepth(param, arg *ast.Node) (depth int, ok bool) {
	formal := c.paramFormalClass(param)
	actual := c.argumentClass(arg)
	if formal == nil || actual == nil {
		return lowestDepth, true
	}
	if c.isBuiltinClass(formal) && formal.StringValue() == "Object" {
		if actual == formal {
			return 1, true
		}
		return lowestDepth, true
	}
	d := c.findClass(actual, formal, make(map[*ast.Node]bool))
	if d < 0 {
		return 0, false
	}
	return d + 1, true
}

// paramFormalClass returns the CLASS/INTERFACE a PARAM's TYPE child
// resolved to, or nil if the parameter is untyped.
func (c *Compiler) paramFormalClass(param *ast.Node) *ast.Node {
	t := findChildOfKind(param, ast.TYPE)
	if t == nil {
		return nil
	}
	return t.Instance
}

// argumentClass infers the class an actual argument expression's value
// would belong to: its already-resolved TypeNode, the CLASS/INTERFACE
// it names directly, or -- for a literal -- the corresponding builtin
// primitive class (spec §4.3 rule 5).
func (c *Compiler) argumentClass(arg *ast.Node) *ast.Node {
	if arg == nil {
		return nil
	}
	if arg.TypeNode != nil {
		return arg.TypeNode
	}
	if arg.Instance != nil {
		switch arg.Instance.Kind {
		case ast.CLASS, ast.INTERFACE:
			return arg.Instance
		}
	}
	if name := literalBuiltinType(arg.Kind); name != "" {
		return c.builtinClassByName(name)
	}
	return nil
}

// literalBuiltinType maps a literal node's Kind to the builtin
// primitive class name an argument of that shape matches (spec §4.3
// rule 5).
func literalBuiltinType(k ast.Kind) string {
	switch k {
	case ast.INTEGER:
		return "Integer"
	case ast.FLOATING_POINT:
		return "Number"
	case ast.STRING:
		return "String"
	case ast.TRUE, ast.FALSE:
		return "Boolean"
	default:
		return ""
	}
}

// callAddMissingParams appends a default value (or UNDEFINED when none
// is declared) for every trailing parameter the actual argument list
// left uncovered (spec §4.3 "call_add_missing_params").
func (c *Compiler) callAddMissingParams(fn, args *ast.Node) {
	params := findChildOfKind(fn, ast.PARAMETERS)
	if params == nil {
		return
	}
	for i := args.ChildCount(); i < params.ChildCount(); i++ {
		p := params.Child(i)
		if p.HasFlag(ast.ParamFlagRest) {
			break
		}
		if def := paramDefault(p); def != nil {
			args.AddChild(deepClone(def))
		} else {
			args.AddChild(ast.NewFromTemplate(args, ast.UNDEFINED))
		}
	}
}

func paramDefault(p *ast.Node) *ast.Node {
	if set := findChildOfKind(p, ast.SET); set != nil && set.ChildCount() > 0 {
		return set.Child(0)
	}
	return nil
}

func hasDefault(p *ast.Node) bool { return paramDefault(p) != nil }

// deepClone copies an expression subtree recursively. ast.Node.Clone
// only supports leaf nodes, which a default-value expression need not
// be (e.g. `x: Int = 1 + 2`); callAddMissingParams needs a copy that
// can be grafted into a fresh argument list without disturbing the
// PARAM's own default, so it walks the whole subtree instead.
func deepClone(n *ast.Node) *ast.Node {
	if n == nil {
		return nil
	}
	c := ast.New(n.Kind, n.Pos)
	switch n.PayloadKind() {
	case ast.PayloadInt:
		c.SetInt(n.IntValue())
	case ast.PayloadFloat:
		c.SetFloat(n.FloatValue())
	case ast.PayloadString:
		c.SetString(n.StringValue())
	}
	c.Operator = n.Operator
	c.IsPostfix = n.IsPostfix
	c.CompoundOp = n.CompoundOp
	c.SetAttrs(n.Attrs())
	c.Instance = n.Instance
	c.TypeNode = n.TypeNode
	for i := 0; i < n.ChildCount(); i++ {
		c.AddChild(deepClone(n.Child(i)))
	}
	return c
}
