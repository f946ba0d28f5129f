package ast

// Flag is a kind-specific boolean marker on a Node (spec §3.2, "a set
// of boolean flags"). All flags share one bitset even though each is
// only meaningful on certain kinds -- the same pattern the spec
// describes for the source compiler, where flags are namespaced only
// by convention (e.g. FUNCTION_FLAG_GETTER is only ever set on a
// FUNCTION node).
type Flag uint64

const (
	FunctionFlagGetter Flag = 1 << iota
	FunctionFlagSetter
	FunctionFlagOperator
	FunctionFlagNoParams
	FunctionFlagConstructor
	FunctionFlagAbstract

	VariableFlagConst
	VariableFlagDefined
	VariableFlagCompiled
	VariableFlagInUse
	VariableFlagAttrs // cycle-detection guard while evaluating an attribute expression

	ParamFlagRest
	ParamFlagConst
	ParamFlagIn
	ParamFlagOut
	ParamFlagNamed
	ParamFlagUnchecked
	ParamFlagUnprototyped

	DirectiveListFlagNewVariables

	PackageFlagReferenced

	IdentifierFlagTyped
	IdentifierFlagWith

	EnumFlagInUse

	ParamMatchFlagUnprototyped

	ImportFlagImplements
	ImportFlagWildcard
)

// Set sets (or clears) f on the node's flag bitset.
func (n *Node) SetFlag(f Flag, on bool) {
	if on {
		n.flags |= f
	} else {
		n.flags &^= f
	}
}

// HasFlag reports whether f is set.
func (n *Node) HasFlag(f Flag) bool {
	return n.flags&f != 0
}
