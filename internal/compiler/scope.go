package compiler

import "github.com/as2js-go/as2js/internal/ast"

// lexScope is the "fresh SCOPE holding live use namespace bindings" the
// pipeline allocates per PROGRAM (spec §4.3). It is threaded through
// the recursive visitor rather than stored on the Compiler, since
// nested module loads (spec "Module loading") each get their own. WITH
// bindings need no equivalent stack: resolveOutward's ancestor walk
// already passes through every enclosing WITH node directly.
type lexScope struct {
	namespaces []*ast.Node // USE_NAMESPACE nodes currently in effect, innermost last
}

func newScope() *lexScope { return &lexScope{} }

func (s *lexScope) pushNamespace(n *ast.Node) { s.namespaces = append(s.namespaces, n) }

func (s *lexScope) popNamespace() {
	if len(s.namespaces) > 0 {
		s.namespaces = s.namespaces[:len(s.namespaces)-1]
	}
}
