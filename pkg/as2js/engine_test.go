package as2js

import (
	"testing"

	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/resources"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(WithResources(&resources.Resources{}))
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}
	return e
}

func TestParseValidSourceReturnsProgram(t *testing.T) {
	e := newTestEngine(t)
	prog, diags, err := e.Parse("test.as", `
		var x = 42;
		function add(a, b) { return a + b; }
	`)
	if err != nil {
		t.Fatalf("Parse returned unexpected error: %v", err)
	}
	if prog == nil || prog.Kind != ast.PROGRAM {
		t.Fatalf("expected a PROGRAM node, got %#v", prog)
	}
	for _, d := range diags {
		if d.IsError() {
			t.Errorf("unexpected diagnostic: %s", d)
		}
	}
}

func TestParseSyntaxErrorSurfacesAsDiagnostic(t *testing.T) {
	e := newTestEngine(t)
	_, diags, err := e.Parse("test.as", `var x = ;`)
	if err != nil {
		t.Fatalf("Parse should report syntax errors as diagnostics, not a Go error: %v", err)
	}
	found := false
	for _, d := range diags {
		if d.IsError() {
			found = true
		}
	}
	if !found {
		t.Fatal("expected at least one error-level diagnostic for invalid syntax")
	}
}

func TestCompileValidSourceResolvesCleanly(t *testing.T) {
	e := newTestEngine(t)
	prog, cerr := e.Compile("test.as", `
		class Greeter {
			function greet() {}
		}
		function f() {
			var g = new Greeter();
			g.greet();
		}
	`)
	if cerr != nil {
		t.Fatalf("Compile returned unexpected error: %v", cerr)
	}
	if prog == nil {
		t.Fatal("expected a resolved PROGRAM")
	}
}

func TestCompileUnresolvedNameReportsResolvingStage(t *testing.T) {
	e := newTestEngine(t)
	_, cerr := e.Compile("test.as", `function f() { return nowhere; }`)
	if cerr == nil {
		t.Fatal("expected a CompileError for an unresolved identifier")
	}
	if cerr.Stage != "resolving" {
		t.Fatalf("expected stage %q, got %q", "resolving", cerr.Stage)
	}
	if len(cerr.Errors()) == 0 {
		t.Fatal("expected at least one error-level diagnostic")
	}
}

func TestCompileSyntaxErrorReportsParsingStage(t *testing.T) {
	e := newTestEngine(t)
	_, cerr := e.Compile("test.as", `var x = ;`)
	if cerr == nil {
		t.Fatal("expected a CompileError for invalid syntax")
	}
	if cerr.Stage != "parsing" {
		t.Fatalf("expected stage %q, got %q", "parsing", cerr.Stage)
	}
}

func TestCompileFileReportsReadingStageOnMissingFile(t *testing.T) {
	e := newTestEngine(t)
	_, cerr := e.CompileFile("/nonexistent/path/does-not-exist.as")
	if cerr == nil {
		t.Fatal("expected a CompileError for a missing file")
	}
	if cerr.Stage != "reading" {
		t.Fatalf("expected stage %q, got %q", "reading", cerr.Stage)
	}
}
