// Package ast defines the single polymorphic Node type that represents
// every tree produced by the parser and mutated by the compiler.
//
// Unlike a typical Go AST (one struct type per production, dispatched
// through an interface), as2js follows the source compiler's own
// representation: one Node type carrying a discriminating Kind, an
// optional scalar payload, an owned child list, and a handful of
// non-owning cross-reference slots the resolver fills in. This keeps
// the resolver's exhaustive-switch-on-Kind style honest (see
// internal/compiler) and matches spec §3.2 and the re-architecture
// guidance in spec §9: "Deep inheritance of Node... represent as a
// tagged-variant record".
package ast
