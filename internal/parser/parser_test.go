package parser

import (
	"testing"

	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/options"
)

// parse is the shared test harness: it parses src with a fresh Manager
// and Options (extended dialect gates off, matching the baseline), and
// returns the PROGRAM node's single DIRECTIVE_LIST child alongside the
// Manager for error-count assertions.
func parse(t *testing.T, src string) (*ast.Node, *messages.Manager) {
	t.Helper()
	mgr := messages.NewManager()
	mgr.SetSink(func(messages.Message) {}) // keep test output quiet
	opts := options.New()
	prog := Parse("test.as", src, mgr, opts)
	if prog.Kind != ast.PROGRAM {
		t.Fatalf("Parse root kind = %s, want PROGRAM", prog.Kind)
	}
	return prog.Child(0), mgr
}

func parseWithOpts(t *testing.T, src string, opts *options.Options) (*ast.Node, *messages.Manager) {
	t.Helper()
	mgr := messages.NewManager()
	mgr.SetSink(func(messages.Message) {})
	prog := Parse("test.as", src, mgr, opts)
	return prog.Child(0), mgr
}

func firstStmt(list *ast.Node) *ast.Node {
	if list.ChildCount() == 0 {
		return nil
	}
	return list.Child(0)
}

func TestParseEmptyProgram(t *testing.T) {
	list, mgr := parse(t, "")
	if list.ChildCount() != 0 {
		t.Fatalf("expected no directives, got %d", list.ChildCount())
	}
	if mgr.Errors() != 0 {
		t.Fatalf("expected no errors, got %d", mgr.Errors())
	}
}

func TestParseVarDecl(t *testing.T) {
	list, mgr := parse(t, "var x = 1;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	v := firstStmt(list)
	if v.Kind != ast.VARIABLE {
		t.Fatalf("kind = %s, want VARIABLE", v.Kind)
	}
	if v.StringValue() != "x" {
		t.Fatalf("name = %q, want x", v.StringValue())
	}
	if v.HasFlag(ast.VariableFlagConst) {
		t.Fatal("var must not carry VariableFlagConst")
	}
	if v.ChildCount() != 1 || v.Child(0).Kind != ast.SET {
		t.Fatalf("expected a single SET child, got %d children", v.ChildCount())
	}
}

func TestParseConstDeclMultiple(t *testing.T) {
	list, mgr := parse(t, "const a = 1, = 2;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	v := firstStmt(list)
	if !v.HasFlag(ast.VariableFlagConst) {
		t.Fatal("const must carry VariableFlagConst")
	}
	if v.ChildCount() != 2 {
		t.Fatalf("expected two SET children, got %d", v.ChildCount())
	}
}

func TestParseVarWithType(t *testing.T) {
	list, _ := parse(t, "var x: Number = 1;")
	v := firstStmt(list)
	if v.ChildCount() != 2 {
		t.Fatalf("expected TYPE + SET children, got %d", v.ChildCount())
	}
	if v.Child(0).Kind != ast.TYPE {
		t.Fatalf("first child kind = %s, want TYPE", v.Child(0).Kind)
	}
}

// --- expression precedence ---

func TestPrecedenceAdditiveOverMultiplicative(t *testing.T) {
	list, mgr := parse(t, "1 + 2 * 3;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	expr := firstStmt(list)
	if expr.Kind != ast.ADD {
		t.Fatalf("root kind = %s, want ADD", expr.Kind)
	}
	if expr.Child(1).Kind != ast.MULTIPLY {
		t.Fatalf("rhs kind = %s, want MULTIPLY", expr.Child(1).Kind)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	opts := options.New()
	_ = opts.Set(options.ExtendedOperators, true)
	list, mgr := parseWithOpts(t, "2 ** 3 ** 2;", opts)
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	expr := firstStmt(list)
	if expr.Kind != ast.POWER {
		t.Fatalf("root kind = %s, want POWER", expr.Kind)
	}
	if expr.Child(0).Kind != ast.INTEGER || expr.Child(0).IntValue() != 2 {
		t.Fatalf("lhs should be literal 2")
	}
	if expr.Child(1).Kind != ast.POWER {
		t.Fatalf("rhs should itself be POWER (right-associative), got %s", expr.Child(1).Kind)
	}
}

func TestCommaListWraps(t *testing.T) {
	list, _ := parse(t, "a, b, c;")
	expr := firstStmt(list)
	if expr.Kind != ast.LIST {
		t.Fatalf("kind = %s, want LIST", expr.Kind)
	}
	if expr.ChildCount() != 3 {
		t.Fatalf("expected 3 elements, got %d", expr.ChildCount())
	}
}

func TestConditionalExpression(t *testing.T) {
	list, mgr := parse(t, "a ? b : c;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	expr := firstStmt(list)
	if expr.Kind != ast.CONDITIONAL || expr.ChildCount() != 3 {
		t.Fatalf("expected CONDITIONAL with 3 children, got %s/%d", expr.Kind, expr.ChildCount())
	}
}

func TestCompoundAssignmentRecordsOriginalSpelling(t *testing.T) {
	list, mgr := parse(t, "a += 1;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	expr := firstStmt(list)
	if expr.Kind != ast.ASSIGNMENT {
		t.Fatalf("kind = %s, want ASSIGNMENT", expr.Kind)
	}
	if expr.CompoundOp == nil || *expr.CompoundOp == "" {
		t.Fatal("expected CompoundOp to record the += spelling")
	}
}

func TestPlainAssignmentHasNoCompoundOp(t *testing.T) {
	list, _ := parse(t, "a = 1;")
	expr := firstStmt(list)
	if expr.CompoundOp != nil {
		t.Fatalf("plain = should not set CompoundOp, got %v", *expr.CompoundOp)
	}
}

func TestUnaryDeleteAndTypeofLowerToCall(t *testing.T) {
	list, _ := parse(t, "delete a.b;")
	expr := firstStmt(list)
	if expr.Kind != ast.CALL || expr.Operator != "delete" {
		t.Fatalf("expected CALL(op=delete), got %s op=%q", expr.Kind, expr.Operator)
	}
}

func TestPostfixMemberCallAndSubscript(t *testing.T) {
	list, mgr := parse(t, "a.b(1)[2];")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	expr := firstStmt(list)
	if expr.Kind != ast.CALL || expr.Operator != "[]" {
		t.Fatalf("outer kind = %s op=%q, want CALL([])", expr.Kind, expr.Operator)
	}
	call := expr.Child(0)
	if call.Kind != ast.CALL || call.Operator != "" {
		t.Fatalf("inner kind = %s op=%q, want plain CALL", call.Kind, call.Operator)
	}
	member := call.Child(0)
	if member.Kind != ast.MEMBER || member.StringValue() != "b" {
		t.Fatalf("member = %s %q, want MEMBER(\"b\")", member.Kind, member.StringValue())
	}
}

func TestPostIncrementAndPreIncrementDistinguished(t *testing.T) {
	list, _ := parse(t, "a++; ++a;")
	post := list.Child(0)
	pre := list.Child(1)
	if post.Kind != ast.POST_INCREMENT || !post.IsPostfix {
		t.Fatalf("expected POST_INCREMENT with IsPostfix, got %s postfix=%v", post.Kind, post.IsPostfix)
	}
	if pre.Kind != ast.PRE_INCREMENT || pre.IsPostfix {
		t.Fatalf("expected PRE_INCREMENT without IsPostfix, got %s postfix=%v", pre.Kind, pre.IsPostfix)
	}
}

func TestNewExpression(t *testing.T) {
	list, mgr := parse(t, "new Foo(1, 2);")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	expr := firstStmt(list)
	if expr.Kind != ast.NEW {
		t.Fatalf("kind = %s, want NEW", expr.Kind)
	}
	if expr.Child(0).Kind != ast.CALL {
		t.Fatalf("callee kind = %s, want CALL", expr.Child(0).Kind)
	}
}

func TestArrayLiteral(t *testing.T) {
	list, _ := parse(t, "[1, 2, 3];")
	expr := firstStmt(list)
	if expr.Kind != ast.LIST || expr.ChildCount() != 3 {
		t.Fatalf("expected LIST of 3, got %s/%d", expr.Kind, expr.ChildCount())
	}
}

func TestNamedArgument(t *testing.T) {
	list, mgr := parse(t, "f(x: 1);")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	call := firstStmt(list)
	args := call.Child(1)
	if args.ChildCount() != 1 || args.Child(0).Kind != ast.SET || args.Child(0).StringValue() != "x" {
		t.Fatalf("expected a named SET(\"x\") argument")
	}
}

// --- dialect gates ---

func TestExtendedOperatorRejectedWhenPragmaOff(t *testing.T) {
	_, mgr := parse(t, "2 ** 3;")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for ** without extended_operators")
	}
}

func TestExtendedOperatorAcceptedWhenPragmaOn(t *testing.T) {
	opts := options.New()
	_ = opts.Set(options.ExtendedOperators, true)
	list, mgr := parseWithOpts(t, "2 <? 3;", opts)
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	if firstStmt(list).Kind != ast.MINIMUM {
		t.Fatalf("kind = %s, want MINIMUM", firstStmt(list).Kind)
	}
}

func TestWithRejectedWhenAllowWithOff(t *testing.T) {
	opts := options.New()
	_ = opts.Set(options.AllowWith, false)
	_, mgr := parseWithOpts(t, "with (a) { b; }", opts)
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for `with` when allow_with is off")
	}
}

func TestCaseRangeRejectedWithoutExtendedStatements(t *testing.T) {
	src := "switch (a) { case 1..2: break; }"
	_, mgr := parse(t, src)
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for case range without extended_statements")
	}
}

func TestCaseRangeAcceptedWithExtendedStatements(t *testing.T) {
	opts := options.New()
	_ = opts.Set(options.ExtendedStatements, true)
	src := "switch (a) { case 1..2: break; }"
	list, mgr := parseWithOpts(t, src, opts)
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	sw := firstStmt(list)
	kase := sw.Child(1)
	if kase.Child(0).Kind != ast.RANGE {
		t.Fatalf("expected RANGE child, got %s", kase.Child(0).Kind)
	}
}

func TestMandatoryBracesUnderExtendedStatements(t *testing.T) {
	opts := options.New()
	_ = opts.Set(options.ExtendedStatements, true)
	_, mgr := parseWithOpts(t, "if (a) b;", opts)
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for a braceless if body under extended_statements")
	}
}

func TestBarePowerFallsThroughWithoutGate(t *testing.T) {
	// Without extended_operators, `**` should not be consumed as POWER;
	// the parser rejects it via gateExtendedOperator and leaves the
	// left operand as the whole expression.
	list, mgr := parse(t, "a ** b;")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error")
	}
	expr := firstStmt(list)
	if expr.Kind != ast.IDENTIFIER {
		t.Fatalf("expected the bare lhs identifier back, got %s", expr.Kind)
	}
}

// --- attribute framing ---

func TestLeadingAttributesAttachToFunction(t *testing.T) {
	list, mgr := parse(t, "public static function f() {}")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fn := firstStmt(list)
	if fn.Kind != ast.FUNCTION {
		t.Fatalf("kind = %s, want FUNCTION", fn.Kind)
	}
	if fn.AttributeNode == nil {
		t.Fatal("expected AttributeNode to be attached")
	}
	if fn.AttributeNode.ChildCount() != 2 {
		t.Fatalf("expected 2 attribute children, got %d", fn.AttributeNode.ChildCount())
	}
}

func TestLeadingAttributeUngetsWhenNoDeclarationFollows(t *testing.T) {
	// `native` is an attribute keyword, but `native + 1;` is an
	// expression statement, not a declaration -- the parser should
	// unget it back into the expression rather than swallowing it into
	// ATTRIBUTES.
	list, mgr := parse(t, "native + 1;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	expr := firstStmt(list)
	if expr.Kind != ast.ADD {
		t.Fatalf("kind = %s, want ADD", expr.Kind)
	}
	lhs := expr.Child(0)
	if lhs.Kind != ast.IDENTIFIER || lhs.StringValue() != "native" {
		t.Fatalf("expected lhs identifier %q, got %s %q", "native", lhs.Kind, lhs.StringValue())
	}
}

func TestLeadingBooleanAttributeUngetsAsLiteral(t *testing.T) {
	// `true`/`false` lex as their own literal token kind rather than
	// IDENTIFIER, so an unget must restore that literal kind, not turn
	// it into an identifier named "true".
	list, mgr := parse(t, "true + 1;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	expr := firstStmt(list)
	if expr.Kind != ast.ADD {
		t.Fatalf("kind = %s, want ADD", expr.Kind)
	}
	if expr.Child(0).Kind != ast.TRUE {
		t.Fatalf("expected lhs literal TRUE, got %s", expr.Child(0).Kind)
	}
}

func TestDuplicateAttributeIsError(t *testing.T) {
	_, mgr := parse(t, "public public function f() {}")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for a duplicate attribute")
	}
}

// --- function declarations ---

func TestFunctionWithParamsAndReturnType(t *testing.T) {
	list, mgr := parse(t, "function add(a: Number, b: Number): Number { return a + b; }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fn := firstStmt(list)
	if fn.Kind != ast.FUNCTION || fn.StringValue() != "add" {
		t.Fatalf("kind/name = %s/%q", fn.Kind, fn.StringValue())
	}
	if fn.ChildCount() != 3 { // PARAMETERS, TYPE, DIRECTIVE_LIST
		t.Fatalf("expected 3 children, got %d", fn.ChildCount())
	}
	params := fn.Child(0)
	if params.Kind != ast.PARAMETERS || params.ChildCount() != 2 {
		t.Fatalf("expected 2 params, got %d", params.ChildCount())
	}
}

func TestFunctionVoidParamsSetsNoParamsFlag(t *testing.T) {
	list, _ := parse(t, "function f(void) {}")
	fn := firstStmt(list)
	if !fn.HasFlag(ast.FunctionFlagNoParams) {
		t.Fatal("expected FunctionFlagNoParams to be set")
	}
}

func TestFunctionForwardDeclarationHasNoBody(t *testing.T) {
	list, mgr := parse(t, "function f();")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fn := firstStmt(list)
	if fn.ChildCount() != 1 { // only PARAMETERS
		t.Fatalf("expected forward decl with no body, got %d children", fn.ChildCount())
	}
}

func TestGetterAndSetterDeclarations(t *testing.T) {
	list, mgr := parse(t, "get x(): Number { return 1; } set x(v: Number) {}")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	getter := list.Child(0)
	setter := list.Child(1)
	if !getter.HasFlag(ast.FunctionFlagGetter) {
		t.Fatal("expected FunctionFlagGetter")
	}
	if !setter.HasFlag(ast.FunctionFlagSetter) {
		t.Fatal("expected FunctionFlagSetter")
	}
}

func TestBareGetSetAsIdentifiers(t *testing.T) {
	// `get` not followed by an identifier-looking function head should
	// fall back to ordinary statement/expression parsing.
	list, mgr := parse(t, "get = 1;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	expr := firstStmt(list)
	if expr.Kind != ast.ASSIGNMENT {
		t.Fatalf("kind = %s, want ASSIGNMENT", expr.Kind)
	}
	lhs := expr.Child(0)
	if lhs.Kind != ast.IDENTIFIER || lhs.StringValue() != "get" {
		t.Fatalf("expected lhs identifier %q, got %s %q", "get", lhs.Kind, lhs.StringValue())
	}
}

func TestOperatorOverloadCallFunctionName(t *testing.T) {
	list, mgr := parse(t, "function ()() {}")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fn := firstStmt(list)
	if fn.StringValue() != "()" || !fn.HasFlag(ast.FunctionFlagOperator) {
		t.Fatalf("expected operator function \"()\", got %q operator=%v", fn.StringValue(), fn.HasFlag(ast.FunctionFlagOperator))
	}
}

func TestOperatorOverloadSubscriptFunctionName(t *testing.T) {
	list, mgr := parse(t, "function [](i: Number) {}")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fn := firstStmt(list)
	if fn.StringValue() != "[]" || !fn.HasFlag(ast.FunctionFlagOperator) {
		t.Fatalf("expected operator function \"[]\", got %q", fn.StringValue())
	}
}

func TestOperatorOverloadBareOperatorName(t *testing.T) {
	list, mgr := parse(t, "function +(rhs: Number) {}")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fn := firstStmt(list)
	if fn.StringValue() != "+" || !fn.HasFlag(ast.FunctionFlagOperator) {
		t.Fatalf("expected operator function \"+\", got %q", fn.StringValue())
	}
}

func TestParamFlagsAndRest(t *testing.T) {
	list, mgr := parse(t, "function f(const a: Number, out b: Number, ...rest) {}")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fn := firstStmt(list)
	params := fn.Child(0)
	a, b, rest := params.Child(0), params.Child(1), params.Child(2)
	if !a.HasFlag(ast.ParamFlagConst) {
		t.Fatal("expected ParamFlagConst on a")
	}
	if !b.HasFlag(ast.ParamFlagOut) {
		t.Fatal("expected ParamFlagOut on b")
	}
	if !rest.HasFlag(ast.ParamFlagRest) || rest.StringValue() != "rest" {
		t.Fatalf("expected rest param, got flags=%v name=%q", rest.HasFlag(ast.ParamFlagRest), rest.StringValue())
	}
}

func TestOutConstParamIsError(t *testing.T) {
	_, mgr := parse(t, "function f(out const a: Number) {}")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for out+const parameter")
	}
}

func TestRestParamWithDefaultIsError(t *testing.T) {
	_, mgr := parse(t, "function f(...rest = 1) {}")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for a rest parameter with a default value")
	}
}

func TestUnprototypedParamList(t *testing.T) {
	list, mgr := parse(t, "function f(unprototyped) {}")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fn := firstStmt(list)
	params := fn.Child(0)
	if params.ChildCount() != 1 || !params.Child(0).HasFlag(ast.ParamFlagUnprototyped) {
		t.Fatal("expected a single unprototyped PARAM")
	}
}

func TestContracts(t *testing.T) {
	src := `function f(a: Number): Number
		require { a > 0; } else { a == 0; }
		ensure { result > 0; } then { result == 0; }
		{ return a; }`
	list, mgr := parse(t, src)
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fn := firstStmt(list)
	var req, ens *ast.Node
	for i := 0; i < fn.ChildCount(); i++ {
		switch fn.Child(i).Kind {
		case ast.REQUIRE:
			req = fn.Child(i)
		case ast.ENSURE:
			ens = fn.Child(i)
		}
	}
	if req == nil || req.Operator != "or" {
		t.Fatalf("expected REQUIRE joined by or, got %v", req)
	}
	if ens == nil || ens.Operator != "and" {
		t.Fatalf("expected ENSURE joined by and, got %v", ens)
	}
}

// --- class / interface / enum / package / program ---

func TestClassWithExtendsAndImplements(t *testing.T) {
	list, mgr := parse(t, "class Dog extends Animal implements Named, Sized {}")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	cls := firstStmt(list)
	if cls.Kind != ast.CLASS || cls.StringValue() != "Dog" {
		t.Fatalf("kind/name = %s/%q", cls.Kind, cls.StringValue())
	}
	var extends, implements *ast.Node
	for i := 0; i < cls.ChildCount(); i++ {
		switch cls.Child(i).Kind {
		case ast.EXTENDS:
			extends = cls.Child(i)
		case ast.IMPLEMENTS:
			implements = cls.Child(i)
		}
	}
	if extends == nil {
		t.Fatal("expected EXTENDS child")
	}
	if implements == nil || implements.ChildCount() != 2 {
		t.Fatal("expected IMPLEMENTS child with 2 entries")
	}
}

func TestClassForwardDeclaration(t *testing.T) {
	list, mgr := parse(t, "class Dog;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	cls := firstStmt(list)
	if cls.ChildCount() != 0 {
		t.Fatalf("expected a bodyless forward declaration, got %d children", cls.ChildCount())
	}
}

func TestClassRejectsAccessModifierAfterName(t *testing.T) {
	_, mgr := parse(t, "class Dog: public {}")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for `: public` after the class name")
	}
}

func TestInterfaceDecl(t *testing.T) {
	list, mgr := parse(t, "interface Named extends Base {}")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	iface := firstStmt(list)
	if iface.Kind != ast.INTERFACE || iface.StringValue() != "Named" {
		t.Fatalf("kind/name = %s/%q", iface.Kind, iface.StringValue())
	}
}

func TestEnumDecl(t *testing.T) {
	list, mgr := parse(t, "enum Color { RED, GREEN = 5, BLUE }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	e := firstStmt(list)
	if e.Kind != ast.ENUM || e.ChildCount() != 3 {
		t.Fatalf("kind/count = %s/%d", e.Kind, e.ChildCount())
	}
	if e.Child(1).ChildCount() != 1 {
		t.Fatal("expected GREEN to carry an initializer SET child")
	}
}

func TestUnnamedForwardEnumIsError(t *testing.T) {
	_, mgr := parse(t, "enum;")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for an unnamed enum")
	}
}

func TestPackageDecl(t *testing.T) {
	list, mgr := parse(t, "package foo.bar { class Baz {} }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	pkg := firstStmt(list)
	if pkg.Kind != ast.PACKAGE || pkg.StringValue() != "foo.bar" {
		t.Fatalf("kind/name = %s/%q", pkg.Kind, pkg.StringValue())
	}
}

func TestProgramDecl(t *testing.T) {
	list, mgr := parse(t, "program Main { var x = 1; }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	inner := firstStmt(list)
	if inner.Kind != ast.PROGRAM || inner.StringValue() != "Main" {
		t.Fatalf("kind/name = %s/%q", inner.Kind, inner.StringValue())
	}
}

// --- import / use / pragma ---

func TestImportWildcard(t *testing.T) {
	list, mgr := parse(t, "import foo.bar.*;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	imp := firstStmt(list)
	if imp.Kind != ast.IMPORT || imp.StringValue() != "foo.bar" {
		t.Fatalf("kind/path = %s/%q", imp.Kind, imp.StringValue())
	}
	if !imp.HasFlag(ast.ImportFlagWildcard) {
		t.Fatal("expected ImportFlagWildcard")
	}
}

func TestImportWildcardWithAsIsError(t *testing.T) {
	_, mgr := parse(t, "import foo.* as Renamed;")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error combining `.*` with `as`")
	}
}

func TestImportIncludeExcludeMutualExclusion(t *testing.T) {
	_, mgr := parse(t, "import foo, include a, exclude b;")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error combining include and exclude")
	}
}

func TestUsePragmaForm(t *testing.T) {
	list, mgr := parse(t, "use strict;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	n := firstStmt(list)
	if n.Kind != ast.PRAGMA || n.StringValue() != "strict" {
		t.Fatalf("kind/name = %s/%q", n.Kind, n.StringValue())
	}
}

func TestUsePragmaActuallyMutatesOptions(t *testing.T) {
	mgr := messages.NewManager()
	mgr.SetSink(func(messages.Message) {})
	opts := options.New()
	Parse("test.as", "use strict;", mgr, opts)
	if !opts.Get(options.Strict) {
		t.Fatal("expected `use strict;` to set the strict option")
	}
}

func TestUseUnknownPragmaIsError(t *testing.T) {
	_, mgr := parse(t, "use not_a_real_pragma;")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for an unrecognized pragma name")
	}
}

func TestUseNamespace(t *testing.T) {
	list, mgr := parse(t, "use namespace foo;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	n := firstStmt(list)
	if n.Kind != ast.USE_NAMESPACE {
		t.Fatalf("kind = %s, want USE_NAMESPACE", n.Kind)
	}
}

func TestUseModular(t *testing.T) {
	list, mgr := parse(t, "use Byte as mod 256;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	n := firstStmt(list)
	if n.Kind != ast.MODULAR || n.StringValue() != "Byte" {
		t.Fatalf("kind/name = %s/%q", n.Kind, n.StringValue())
	}
}

func TestUseSubrange(t *testing.T) {
	list, mgr := parse(t, "use Percentage as 0..100;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	n := firstStmt(list)
	if n.Kind != ast.SUBRANGE || n.StringValue() != "Percentage" {
		t.Fatalf("kind/name = %s/%q", n.Kind, n.StringValue())
	}
}

func TestUseSubrangeInvertedWarns(t *testing.T) {
	mgr := messages.NewManager()
	var warned bool
	mgr.SetSink(func(m messages.Message) {
		if m.Level == messages.WARNING {
			warned = true
		}
	})
	opts := options.New()
	Parse("test.as", "use Bad as 100..0;", mgr, opts)
	if !warned {
		t.Fatal("expected a warning for an inverted subrange")
	}
}

// --- statements ---

func TestIfElse(t *testing.T) {
	list, mgr := parse(t, "if (a) { b; } else { c; }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	ifNode := firstStmt(list)
	if ifNode.Kind != ast.IF || ifNode.ChildCount() != 3 {
		t.Fatalf("kind/count = %s/%d", ifNode.Kind, ifNode.ChildCount())
	}
}

func TestForLoopDefaults(t *testing.T) {
	list, mgr := parse(t, "for (;;) { a; }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	forNode := firstStmt(list)
	if forNode.Kind != ast.FOR || forNode.ChildCount() != 4 {
		t.Fatalf("kind/count = %s/%d", forNode.Kind, forNode.ChildCount())
	}
	if forNode.Child(1).Kind != ast.TRUE {
		t.Fatalf("expected default condition TRUE, got %s", forNode.Child(1).Kind)
	}
}

func TestForWithVarInit(t *testing.T) {
	list, mgr := parse(t, "for (var i = 0; i < 10; i++) { a; }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	forNode := firstStmt(list)
	if forNode.Child(0).Kind != ast.VARIABLE {
		t.Fatalf("init kind = %s, want VARIABLE", forNode.Child(0).Kind)
	}
}

func TestWhileAndDoWhile(t *testing.T) {
	list, mgr := parse(t, "while (a) { b; } do { b; } while (a);")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	w := list.Child(0)
	d := list.Child(1)
	if w.Kind != ast.WHILE {
		t.Fatalf("kind = %s, want WHILE", w.Kind)
	}
	if d.Kind != ast.DO {
		t.Fatalf("kind = %s, want DO", d.Kind)
	}
}

func TestSynchronized(t *testing.T) {
	list, mgr := parse(t, "synchronized (lock) { a; }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	n := firstStmt(list)
	if n.Kind != ast.SYNCHRONIZED {
		t.Fatalf("kind = %s, want SYNCHRONIZED", n.Kind)
	}
}

func TestSwitchWithMultipleCasesAndDefault(t *testing.T) {
	src := "switch (a) { case 1: b; break; case 2: c; break; default: d; }"
	list, mgr := parse(t, src)
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	sw := firstStmt(list)
	if sw.Kind != ast.SWITCH || sw.ChildCount() != 4 { // selector + 2 cases + default
		t.Fatalf("kind/count = %s/%d", sw.Kind, sw.ChildCount())
	}
}

func TestSwitchDuplicateDefaultIsError(t *testing.T) {
	src := "switch (a) { default: b; default: c; }"
	_, mgr := parse(t, src)
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for a second default clause")
	}
}

func TestSwitchWithOperatorRequiresExtendedStatements(t *testing.T) {
	_, mgr := parse(t, "switch (a) with (is) { default: b; }")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for switch-with without extended_statements")
	}
}

func TestSwitchWithOperatorAccepted(t *testing.T) {
	opts := options.New()
	_ = opts.Set(options.ExtendedStatements, true)
	list, mgr := parseWithOpts(t, "switch (a) with (is) { default: b; }", opts)
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	sw := firstStmt(list)
	if sw.Operator != "is" {
		t.Fatalf("operator = %q, want is", sw.Operator)
	}
}

func TestTryCatchFinally(t *testing.T) {
	src := "try { a; } catch (e: Error) { b; } finally { c; }"
	list, mgr := parse(t, src)
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	tryNode := firstStmt(list)
	if tryNode.Kind != ast.TRY || tryNode.ChildCount() != 3 { // body + catch + finally
		t.Fatalf("kind/count = %s/%d", tryNode.Kind, tryNode.ChildCount())
	}
	if tryNode.Child(2).Kind != ast.FINALLY {
		t.Fatalf("expected FINALLY, got %s", tryNode.Child(2).Kind)
	}
}

func TestTryWithoutCatchOrFinallyIsError(t *testing.T) {
	_, mgr := parse(t, "try { a; }")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for a try with no catch/finally")
	}
}

func TestTryTypedCatchAfterUntypedIsError(t *testing.T) {
	src := "try { a; } catch (e) { b; } catch (f: Error) { c; }"
	_, mgr := parse(t, src)
	if mgr.Errors() == 0 {
		t.Fatal("expected an error: typed catch cannot follow an untyped catch")
	}
}

func TestTryMultipleUntypedCatchesIsError(t *testing.T) {
	src := "try { a; } catch (e) { b; } catch (f) { c; }"
	_, mgr := parse(t, src)
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for a second untyped catch")
	}
}

func TestCatchGuardClause(t *testing.T) {
	src := "try { a; } catch (e: Error) if (e.code == 1) { b; }"
	list, mgr := parse(t, src)
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	tryNode := firstStmt(list)
	catch := tryNode.Child(1)
	if catch.Operator != "guarded" {
		t.Fatalf("operator = %q, want guarded", catch.Operator)
	}
}

func TestBreakContinueWithLabel(t *testing.T) {
	list, mgr := parse(t, "outer: while (a) { break outer; continue outer; }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	label := firstStmt(list)
	if label.Kind != ast.LABEL || label.StringValue() != "outer" {
		t.Fatalf("kind/name = %s/%q", label.Kind, label.StringValue())
	}
	whileBody := label.Child(0).Child(1)
	brk := whileBody.Child(0)
	cont := whileBody.Child(1)
	if brk.Kind != ast.BREAK || brk.StringValue() != "outer" {
		t.Fatalf("break = %s/%q", brk.Kind, brk.StringValue())
	}
	if cont.Kind != ast.CONTINUE || cont.StringValue() != "outer" {
		t.Fatalf("continue = %s/%q", cont.Kind, cont.StringValue())
	}
}

func TestDuplicateLabelIsError(t *testing.T) {
	_, mgr := parse(t, "a: { } a: { }")
	if mgr.Errors() == 0 {
		t.Fatal("expected an error for a duplicate label")
	}
}

func TestGotoStatement(t *testing.T) {
	list, mgr := parse(t, "lbl: a; goto lbl;")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	gotoNode := list.Child(1)
	if gotoNode.Kind != ast.GOTO || gotoNode.StringValue() != "lbl" {
		t.Fatalf("kind/name = %s/%q", gotoNode.Kind, gotoNode.StringValue())
	}
}

func TestReturnWithAndWithoutValue(t *testing.T) {
	list, mgr := parse(t, "function f() { return 1; } function g() { return; }")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	fBody := list.Child(0).Child(0)
	gBody := list.Child(1).Child(0)
	if fBody.Child(0).Kind != ast.RETURN || fBody.Child(0).ChildCount() != 1 {
		t.Fatal("expected `return 1;` to carry a value")
	}
	if gBody.Child(0).Kind != ast.RETURN || gBody.Child(0).ChildCount() != 0 {
		t.Fatal("expected bare `return;` to carry no value")
	}
}

func TestThrowStatement(t *testing.T) {
	list, mgr := parse(t, "throw new Error(\"x\");")
	if mgr.Errors() != 0 {
		t.Fatalf("unexpected errors: %d", mgr.Errors())
	}
	n := firstStmt(list)
	if n.Kind != ast.THROW || n.Child(0).Kind != ast.NEW {
		t.Fatalf("kind = %s, child = %s", n.Kind, n.Child(0).Kind)
	}
}

// --- error recovery ---

func TestSyntaxErrorRecoversAndContinuesParsing(t *testing.T) {
	// A stray `)` mid-statement should be reported and recovered from,
	// and the following directive still parses.
	list, mgr := parse(t, "var x = );\nvar y = 2;")
	if mgr.Errors() == 0 {
		t.Fatal("expected at least one error")
	}
	last := list.Child(list.ChildCount() - 1)
	if last.Kind != ast.VARIABLE || last.StringValue() != "y" {
		t.Fatalf("expected recovery to reach `var y`, got %s/%q", last.Kind, last.StringValue())
	}
}

func TestMissingSemicolonIsReportedNotPanicked(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("parser panicked: %v", r)
		}
	}()
	_, mgr := parse(t, "var x = 1")
	if mgr.Errors() == 0 {
		t.Fatal("expected a missing-semicolon error")
	}
}
