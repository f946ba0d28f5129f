// Package compiler implements the semantic resolver (spec §4.3): it
// walks a parsed PROGRAM tree, resolves names against lexical scope,
// selects function overloads, resolves operator overloading, performs
// the six in-place AST rewrites, and loads modules referenced by
// `import` or by an unresolved identifier. It never mutates the parsed
// grammar shape beyond those rewrites -- everything else it learns is
// recorded in the Node cross-reference slots and auxiliary tables spec
// §3.2 already reserves for this purpose (Instance, TypeNode,
// Variables, Labels).
package compiler

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/as2js-go/as2js/internal/ast"
	"github.com/as2js-go/as2js/internal/database"
	"github.com/as2js-go/as2js/internal/messages"
	"github.com/as2js-go/as2js/internal/options"
	"github.com/as2js-go/as2js/internal/resources"
)

// InputRetriever supplies source text for a module path, letting a host
// application intercept module loading (spec §4.3 "Module loading":
// "either calls an injected input_retriever or opens the file on
// disk"). It returns the source and true if it recognizes filename, or
// false to fall through to the on-disk loader.
type InputRetriever func(filename string) (source string, ok bool, err error)

// Compiler is the semantic resolver. One instance accumulates a module
// cache and an overload-resolution cache across however many PROGRAMs
// it is asked to Compile, mirroring the teacher's single long-lived
// Analyzer -- concurrent compile runs must not share an instance (spec
// §5).
type Compiler struct {
	Msgs *messages.Manager
	Opts *options.Options
	DB   *database.Database
	Res  *resources.Resources
	Log  *logrus.Logger

	retriever InputRetriever

	// modules caches every PROGRAM loaded by filename (spec §4.3
	// "find_module... consults the cache").
	modules map[string]*ast.Node
	loading map[string]bool // cycle guard while a module is being parsed

	// overloadCache memoizes select_best_func results per call-site
	// signature hash within this compilation session (SPEC_FULL.md §3,
	// hashstructure wiring).
	overloadCache map[uint64]*ast.Node

	// packagesByName indexes CLASS/PACKAGE declarations visited so far
	// by dotted package name, used by find_external_package and by
	// resolve_name's PACKAGE case.
	packagesByName map[string]*ast.Node

	// builtins caches the synthetic Object/Boolean/Integer/Number/String
	// CLASS singletons overload resolution's type matching falls back to
	// (spec §4.3 rule 5; see classes.go builtinClass).
	builtins map[string]*ast.Node
}

// New creates a Compiler. db and res may be nil; a nil db disables
// find_external_package, and a nil res disables on-disk module
// loading (internal-packages globbing).
func New(msgs *messages.Manager, opts *options.Options, db *database.Database, res *resources.Resources) *Compiler {
	return &Compiler{
		Msgs:           msgs,
		Opts:           opts,
		DB:             db,
		Res:            res,
		Log:            logrus.StandardLogger(),
		modules:        make(map[string]*ast.Node),
		loading:        make(map[string]bool),
		overloadCache:  make(map[uint64]*ast.Node),
		packagesByName: make(map[string]*ast.Node),
	}
}

// SetInputRetriever installs a hook consulted before the on-disk loader
// (spec §4.3 "Module loading").
func (c *Compiler) SetInputRetriever(r InputRetriever) { c.retriever = r }

// InternalError marks an assertion-grade invariant violation (spec
// §4.3 "Failure semantics": "Assertion-grade invariants... throw an
// internal-error condition"). Compile recovers it at the top level and
// reports it as a CodeInternalInvariant diagnostic instead of crashing
// the process.
type InternalError struct{ Message string }

func (e *InternalError) Error() string { return e.Message }

// invariant panics with an InternalError if cond is false. It is the
// resolver's equivalent of the teacher's assert()-and-crash checks on
// conditions that a correctly-parsed tree can never violate.
func (c *Compiler) invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(&InternalError{Message: fmt.Sprintf(format, args...)})
	}
}

// Compile runs the full per-PROGRAM pipeline (spec §4.3 "Pipeline per
// PROGRAM") and returns the number of errors this call emitted (not
// the Manager's running total, since one Manager may outlive several
// Compile calls).
func (c *Compiler) Compile(program *ast.Node) (errCount int) {
	before := c.Msgs.Errors()
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InternalError); ok {
				c.Msgs.Emit(messages.ERROR, messages.CodeInternalInvariant, program.Pos, "%s", ie.Message)
			} else {
				panic(r)
			}
		}
		errCount = c.Msgs.Errors() - before
	}()

	c.invariant(program.Kind == ast.PROGRAM, "Compile called on a %s, not PROGRAM", program.Kind)

	sc := newScope()
	list := program.Child(0)
	c.invariant(list != nil && list.Kind == ast.DIRECTIVE_LIST, "PROGRAM has no DIRECTIVE_LIST child")

	c.pruneDisabled(list)
	c.visitDirectiveList(list, sc)
	return
}

// pruneDisabled implements pipeline step 2: any direct child whose
// attributes evaluate AttrFalse is conditionally compiled out -- its
// Kind is flipped to UNKNOWN so every later pass (including a second
// Compile of the same tree, spec's idempotency requirement) skips it
// without re-running prepare_attributes against a node that no longer
// means anything.
func (c *Compiler) pruneDisabled(list *ast.Node) {
	for i := 0; i < list.ChildCount(); i++ {
		child := list.Child(i)
		if child.Kind == ast.UNKNOWN {
			continue
		}
		c.prepareAttributes(child)
		if child.HasAttr(ast.AttrFalse) {
			child.Kind = ast.UNKNOWN
		}
	}
}

// collectLabels implements pipeline step 3: labels declared directly
// in list are recorded on list.Labels before any directive in that
// list is visited, so forward goto/break/continue references resolve
// regardless of textual order (spec §3.2 invariants: "labels do not
// cross function/class/package/program boundaries"). visitDirectiveList
// calls this for every DIRECTIVE_LIST it visits, not just the
// program's top-level one, since a label may be declared in any
// nested block.
func (c *Compiler) collectLabels(list *ast.Node) {
	for i := 0; i < list.ChildCount(); i++ {
		child := list.Child(i)
		if child.Kind != ast.LABEL {
			continue
		}
		name := child.StringValue()
		if list.Labels == nil {
			list.Labels = make(map[string]*ast.Node)
		}
		if _, dup := list.Labels[name]; dup {
			c.Msgs.Emit(messages.ERROR, messages.CodeDuplicateLabel, child.Pos, "duplicate label %q", name)
			continue
		}
		list.Labels[name] = child
	}
}
