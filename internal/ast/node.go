package ast

import (
	"fmt"
	"strings"

	"github.com/as2js-go/as2js/internal/token"
)

// PayloadKind discriminates which scalar field of a Node's payload is
// meaningful, per spec §3.2 ("a payload variant keyed by kind: integer
// value, IEEE-754 double, UTF-8 string, or none").
type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadInt
	PayloadFloat
	PayloadString
)

// Node is the single polymorphic AST/IR record type described by spec
// §3.2. Children are owned; Parent, Instance, TypeNode, AttributeNode,
// GotoEnter, and GotoExit are non-owning cross-references into the same
// forest of loaded programs (spec §9, "cyclic cross-refs").
type Node struct {
	Kind Kind
	Pos  token.Position

	payloadKind PayloadKind
	intValue    int64
	floatValue  float64
	stringValue string

	// Operator is the canonical spelling for operator-kind nodes and
	// for FUNCTION nodes declaring an operator overload (spec §4.2,
	// "Operator-overload function names").
	Operator string

	// IsPostfix distinguishes PRE_INCREMENT/PRE_DECREMENT from
	// POST_INCREMENT/POST_DECREMENT at the same Kind pair boundary.
	IsPostfix bool

	// CompoundOp records the original compound-assignment spelling
	// (e.g. "+=") when a parser desugars `a += b` into an ASSIGNMENT
	// node wrapping `a + b`; nil for plain `=`.
	CompoundOp *string

	Children []*Node
	Parent   *Node // non-owning

	flags Flag
	attrs Attribute

	// Cross-reference slots filled in by the compiler (spec §3.2).
	Instance      *Node // the declaration a use-site resolves to
	TypeNode      *Node // the declaring class/interface/primitive type
	AttributeNode *Node // sibling ATTRIBUTES node attached to a declaration
	GotoEnter     *Node // break/continue/goto target pair
	GotoExit      *Node

	// Variables/Labels are the auxiliary per-scope tables accumulated
	// during analysis (spec §3.2), lazily allocated.
	Variables map[string]*Node
	Labels    map[string]*Node

	// resolving guards cycle detection during attribute evaluation and
	// forward-reference resolution (spec §9, "currently resolving"
	// guard flag).
	resolving bool
}

// New creates a bare Node of the given kind and position.
func New(kind Kind, pos token.Position) *Node {
	return &Node{Kind: kind, Pos: pos}
}

// NewFromTemplate creates a Node using another node's position as a
// template, the way the resolver synthesizes rewrite nodes (spec §3.2,
// "Lifecycle": "created... by resolver when synthesizing rewrites
// (using the parent node's position as the template)").
func NewFromTemplate(template *Node, kind Kind) *Node {
	return &Node{Kind: kind, Pos: template.Pos}
}

// AddChild appends child to n's child list and sets child's Parent
// back-reference.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// SetChild replaces the i-th child in place, updating the parent
// back-reference, used by rewrites that flatten or substitute a single
// child (e.g. the `new T(args)` flattening in spec §4.3).
func (n *Node) SetChild(i int, child *Node) {
	if child != nil {
		child.Parent = n
	}
	n.Children[i] = child
}

// Child returns the i-th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.Children) }

// RemoveChildAt removes the i-th child, preserving order.
func (n *Node) RemoveChildAt(i int) {
	if i < 0 || i >= len(n.Children) {
		return
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
}

// IsResolving reports whether n is currently being resolved, used by
// the cycle guard described in spec §9 ("Forward references inside
// directive lists").
func (n *Node) IsResolving() bool { return n.resolving }

// BeginResolving marks n as in-progress; returns false if n was already
// being resolved (a cycle).
func (n *Node) BeginResolving() bool {
	if n.resolving {
		return false
	}
	n.resolving = true
	return true
}

// EndResolving clears the in-progress guard.
func (n *Node) EndResolving() { n.resolving = false }

// --- payload accessors ---

func (n *Node) PayloadKind() PayloadKind { return n.payloadKind }

func (n *Node) SetInt(v int64) {
	n.payloadKind = PayloadInt
	n.intValue = v
}

func (n *Node) IntValue() int64 { return n.intValue }

func (n *Node) SetFloat(v float64) {
	n.payloadKind = PayloadFloat
	n.floatValue = v
}

func (n *Node) FloatValue() float64 { return n.floatValue }

func (n *Node) SetString(v string) {
	n.payloadKind = PayloadString
	n.stringValue = v
}

func (n *Node) StringValue() string { return n.stringValue }

// Program walks Parent links to find the nearest enclosing PROGRAM
// node, the unit of label/goto scoping (spec §3.2 invariants).
func (n *Node) Program() *Node {
	for p := n; p != nil; p = p.Parent {
		if p.Kind == PROGRAM {
			return p
		}
	}
	return nil
}

// EnclosingOfKind walks Parent links to find the nearest ancestor
// (starting at n's parent) with the given kind.
func (n *Node) EnclosingOfKind(kind Kind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// Clone returns a shallow structural copy of a literal leaf node
// (Kind, Pos, payload, Operator) with no children and no parent,
// suitable for the constant-folding rewrite in spec §4.3 ("a clone of
// that literal at the use-site"). It panics if n has children, since
// only leaf literals are meant to be cloned this way.
func (n *Node) Clone() *Node {
	if len(n.Children) != 0 {
		panic("ast: Clone only supports leaf nodes")
	}
	return &Node{
		Kind:        n.Kind,
		Pos:         n.Pos,
		payloadKind: n.payloadKind,
		intValue:    n.intValue,
		floatValue:  n.floatValue,
		stringValue: n.stringValue,
		Operator:    n.Operator,
	}
}

// String renders a debug tree, not a source pretty-printer (spec §1
// explicitly excludes source-to-source pretty printing as a
// Non-goal).
func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.Kind.String())
	switch n.payloadKind {
	case PayloadInt:
		fmt.Fprintf(sb, "(%d)", n.intValue)
	case PayloadFloat:
		fmt.Fprintf(sb, "(%g)", n.floatValue)
	case PayloadString:
		fmt.Fprintf(sb, "(%q)", n.stringValue)
	}
	if n.Operator != "" {
		fmt.Fprintf(sb, " op=%s", n.Operator)
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		c.dump(sb, depth+1)
	}
}
