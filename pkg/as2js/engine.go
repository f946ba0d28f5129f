// Package as2js is the public facade over the parser and semantic
// resolver: construct an Engine, then Parse or Compile source text
// against it. It never executes the resulting tree (spec §1
// Non-goals: "runtime execution").
package as2js

import (
	"os"

	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/compiler"
	"github.com/as2js-go/as2js/internal/database"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/options"
	"github.com/as2js-go/as2js/internal/parser"
	"github.com/as2js-go/as2js/internal/resources"
)

// Engine bundles the configuration a compile run needs: resolved
// resources (`.rc`, spec §4.5), an optional package database (spec
// §4.4), and the dialect pragma set (spec §4.2). It is not safe for
// concurrent use (spec §5: "concurrent compile runs must not share a
// compiler instance") -- create one Engine per goroutine.
type Engine struct {
	res  *resources.Resources
	db   *database.Database
	opts *options.Options

	retriever compiler.InputRetriever
}

// EngineOption configures a new Engine.
type EngineOption func(*Engine)

// WithResources overrides the `.rc`-derived configuration an Engine
// would otherwise load from disk via resources.Load.
func WithResources(res *resources.Resources) EngineOption {
	return func(e *Engine) { e.res = res }
}

// WithDatabase attaches a package database, enabling find_external_package
// lookups (spec §4.3 "Module loading").
func WithDatabase(db *database.Database) EngineOption {
	return func(e *Engine) { e.db = db }
}

// WithOptions overrides the dialect pragma defaults (spec §4.2
// "Dialect gates").
func WithOptions(opts *options.Options) EngineOption {
	return func(e *Engine) { e.opts = opts }
}

// WithInputRetriever installs a module source hook (spec §4.3 "Module
// loading"), consulted before the on-disk loader.
func WithInputRetriever(r compiler.InputRetriever) EngineOption {
	return func(e *Engine) { e.retriever = r }
}

// New builds an Engine. With no options it loads `.rc` from the
// documented search path (spec §4.5), accepting the baseline defaults
// if none is found, and starts with no package database.
func New(opts ...EngineOption) (*Engine, error) {
	e := &Engine{opts: options.New()}
	for _, o := range opts {
		o(e)
	}
	if e.res == nil {
		res, err := resources.Load(true)
		if err != nil {
			return nil, err
		}
		e.res = res
	}
	return e, nil
}

// Parse runs the lexer and parser only (spec §4.2), returning the
// PROGRAM root and any diagnostics raised along the way. It never
// returns a non-nil error for ordinary syntax errors -- those surface
// as ERROR-level Diagnostics in the returned slice, matching the
// Manager's sink-based reporting (spec §4.6); the error return is
// reserved for Result-construction failures, which do not currently
// occur.
func (e *Engine) Parse(filename, source string) (*ast.Node, []Diagnostic, error) {
	mgr := messages.NewManager()
	mgr.SetSource(filename, source)
	var diags []Diagnostic
	mgr.SetSink(func(m messages.Message) { diags = append(diags, newDiagnostic(m)) })

	prog := parser.Parse(filename, source, mgr, e.opts)
	return prog, diags, nil
}

// Compile parses filename/source and runs the semantic resolver over
// the result (spec §4.3 full pipeline). If parsing or resolution
// raised any ERROR/FATAL diagnostic, it returns a *CompileError
// alongside the partially-resolved tree; the tree is still returned
// since a caller may want to inspect what did resolve.
func (e *Engine) Compile(filename, source string) (*ast.Node, *CompileError) {
	mgr := messages.NewManager()
	mgr.SetSource(filename, source)
	var diags []Diagnostic
	mgr.SetSink(func(m messages.Message) { diags = append(diags, newDiagnostic(m)) })

	prog := parser.Parse(filename, source, mgr, e.opts)
	if mgr.Errors() > 0 {
		return prog, &CompileError{Stage: "parsing", Diagnostics: diags}
	}

	c := compiler.New(mgr, e.opts, e.db, e.res)
	if e.retriever != nil {
		c.SetInputRetriever(e.retriever)
	}
	c.Compile(prog)
	if mgr.Errors() > 0 {
		return prog, &CompileError{Stage: "resolving", Diagnostics: diags}
	}
	return prog, nil
}

// CompileFile reads filename off disk and compiles it.
func (e *Engine) CompileFile(filename string) (*ast.Node, *CompileError) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &CompileError{Stage: "reading", Diagnostics: []Diagnostic{{
			Message:  err.Error(),
			Severity: SeverityError,
		}}}
	}
	return e.Compile(filename, string(data))
}
