package taproot

import (
	"slices"

	"github.com/jward/taproot/ast"
)

// dropUntypedExterns removes extern stub definitions that are shadowed
// by a typed declaration of the same qualified name. Extern files mix
// untyped placeholders ("Foo.bar;") with annotated declarations of the
// same name; left in the index, the placeholder reads as a definition
// with unbounded side effects and poisons purity analysis.
//
// Runs exactly once, between the extern pass and the implementation
// pass. A pruned stub leaves byName, sitesByNode and sitesByScopeRoot
// but deliberately stays in definitionNodes: its site must still be
// treated as a definition, never as a use.
func (p *Provider) dropUntypedExterns() {
	for name, defs := range p.byName {
		// Snapshot: removals mutate the live slice.
		for _, def := range slices.Clone(defs) {
			if def.Kind() != Stub {
				continue
			}
			lvalue := def.LValue()
			if lvalue.JSDoc.ContainsDeclaration() {
				continue
			}

			for _, other := range p.byName[name] {
				if other == def {
					continue
				}
				if ast.MatchesQualifiedName(lvalue, other.LValue()) {
					p.removeByName(name, def)
					// A stub's site is keyed by its name node.
					site := p.sitesByNode[lvalue]
					delete(p.sitesByNode, lvalue)
					p.removeFromScopeRoot(ast.EnclosingScopeRoot(lvalue), site)
					break
				}
			}
		}
	}
}
