package taproot

import (
	"errors"

	"github.com/jward/taproot/ast"
	"github.com/jward/taproot/traverse"
)

var (
	// ErrAlreadyInitialized is returned by a second Initialize call.
	ErrAlreadyInitialized = errors.New("taproot: definition index already initialized")
	// ErrNotInitialized is returned by queries and rebuilds before
	// Initialize has run.
	ErrNotInitialized = errors.New("taproot: definition index not initialized")
)

// Provider is a conservative, whole-program, name-based definition
// index. It treats all variable writes as happening in the global scope
// and all objects as capable of sharing the same set of properties, so
// a lookup returns every definition that could plausibly produce the
// value at a use site — a superset, never an exact answer.
//
// A Provider serves exactly one compilation unit, is built once via
// Initialize, and is kept current through RebuildScopeRoots as the
// caller rewrites the tree. It is single-writer and unlocked: the
// caller must not overlap a rebuild with a query.
type Provider struct {
	// The four containers stay mutually consistent: every site indexed
	// by scope root has exactly one entry by node and one (name,
	// definition) pair by name. definitionNodes is a superset — pruned
	// stubs stay in it so their sites never read as uses.
	byName           map[string][]*Definition
	sitesByNode      map[*ast.Node]*DefinitionSite
	sitesByScopeRoot map[*ast.Node][]*DefinitionSite
	definitionNodes  map[*ast.Node]struct{}

	allowComplexFunctionDefs bool
	initialized              bool
}

// NewProvider creates an empty, uninitialized index.
// allowComplexFunctionDefs additionally accepts a conditional of two
// function literals as a known function value.
func NewProvider(allowComplexFunctionDefs bool) *Provider {
	return &Provider{
		byName:                   make(map[string][]*Definition),
		sitesByNode:              make(map[*ast.Node]*DefinitionSite),
		sitesByScopeRoot:         make(map[*ast.Node][]*DefinitionSite),
		definitionNodes:          make(map[*ast.Node]struct{}),
		allowComplexFunctionDefs: allowComplexFunctionDefs,
	}
}

// Initialize builds the index: the extern inputs are gathered first,
// untyped extern stubs are pruned, then the implementation inputs are
// gathered. Callable exactly once; a second call fails with
// ErrAlreadyInitialized and leaves the index untouched.
func (p *Provider) Initialize(externRoots, sourceRoots []*ast.Node) error {
	if p.initialized {
		return ErrAlreadyInitialized
	}
	p.initialized = true

	for _, root := range externRoots {
		traverse.Traverse(root, &gatherer{p: p, inExterns: true})
	}
	p.dropUntypedExterns()
	for _, root := range sourceRoots {
		traverse.Traverse(root, &gatherer{p: p})
	}
	return nil
}

// RebuildScopeRoots re-indexes the given scope roots after the caller
// rewrote them. Every site under a deleted or changed root is cascade-
// removed from all four containers first; only then are the changed
// roots re-traversed, so stale and fresh entries never coexist. Deleted
// roots are not re-traversed.
//
// The extern stub pruner does not run again here; an edit that
// reintroduces an untyped stub next to a typed extern keeps both. This
// mirrors the one-shot pruning of the full build and is a documented
// limitation, not an oversight.
func (p *Provider) RebuildScopeRoots(changed, deleted []*ast.Node) error {
	if !p.initialized {
		return ErrNotInitialized
	}

	roots := make([]*ast.Node, 0, len(deleted)+len(changed))
	roots = append(roots, deleted...)
	roots = append(roots, changed...)
	for _, root := range roots {
		sites := p.sitesByScopeRoot[root]
		delete(p.sitesByScopeRoot, root)
		for _, site := range sites {
			def := site.Definition
			delete(p.definitionNodes, def.LValue())
			p.removeByName(def.SimplifiedName(), def)
			delete(p.sitesByNode, site.Node)
		}
	}

	traverse.TraverseScopeRoots(changed, &gatherer{p: p})
	return nil
}
