package taproot

import "github.com/jward/taproot/ast"

// DefinitionKind classifies what is known about a definition's value.
type DefinitionKind int

const (
	// Concrete definitions have a characterizable right-hand side: no
	// value at all, an immutable literal, or a function.
	Concrete DefinitionKind = iota
	// Stub definitions are extern-only placeholders with no body, such
	// as a bare "Foo.bar;" declaration.
	Stub
	// Unknown definitions have a right-hand side too complex to
	// characterize; side effects and value must be assumed arbitrary.
	Unknown
)

func (k DefinitionKind) String() string {
	switch k {
	case Concrete:
		return "concrete"
	case Stub:
		return "stub"
	case Unknown:
		return "unknown"
	}
	return "invalid"
}

// Definition is one syntactic binding site for a name. It is immutable
// once constructed and corresponds to exactly one left-hand-side node.
type Definition struct {
	kind   DefinitionKind
	lvalue *ast.Node
	rvalue *ast.Node
	extern bool
}

func (d *Definition) Kind() DefinitionKind { return d.kind }

// LValue returns the left-hand-side node — the name, property access,
// or member-function node being bound.
func (d *Definition) LValue() *ast.Node { return d.lvalue }

// RValue returns the bound value expression, or nil when the definition
// has none (declarations without initializers, stubs, unknowns).
func (d *Definition) RValue() *ast.Node { return d.rvalue }

// IsExtern reports whether the definition came from a declaration-only
// extern input.
func (d *Definition) IsExtern() bool { return d.extern }

// SimplifiedName returns the string key this definition is indexed
// under, or "" when the left-hand side has no derivable name.
func (d *Definition) SimplifiedName() string { return SimplifiedName(d.lvalue) }

// SimplifiedName derives the over-approximating index key for a node: a
// plain identifier keys as its own text, while any property access or
// member function keys as "this."+property — the receiver is discarded
// so every object shares one property namespace. All other shapes have
// no key and are not indexed.
func SimplifiedName(n *ast.Node) string {
	switch n.Kind {
	case ast.KindName:
		return n.Value
	case ast.KindGetProp, ast.KindMemberFunctionDef:
		return "this." + n.Value
	}
	return ""
}

// DefinitionSite pairs a definition with where and how it was found.
// Sites are created once at discovery and removed only by stub pruning
// or incremental rebuild; the index owns them exclusively.
type DefinitionSite struct {
	// Node is the definition site — the left-hand-side node the
	// extraction fired on.
	Node *ast.Node

	Definition *Definition

	// Module is the input file the site belongs to.
	Module string

	// InGlobalScope reports whether the site has no enclosing function.
	InGlobalScope bool

	// InExterns reports whether the site came from an extern input.
	InExterns bool
}
