package taproot

import (
	"fmt"
	"slices"

	"github.com/jward/taproot/ast"
)

// DefinitionsReferencedAt returns every definition that could produce
// the value observed at a use site. The use site must be a plain name
// or a property access. The result is a superset of the true
// possibilities — callers must never treat it as exact — and is empty
// when the node is itself a definition site, since a definition never
// references itself.
//
// Accesses of the call-forwarding properties "apply" and "call" are
// unwrapped to their receiver before lookup: f.apply resolves to
// whatever f resolves to.
func (p *Provider) DefinitionsReferencedAt(useSite *ast.Node) ([]*Definition, error) {
	if !p.initialized {
		return nil, ErrNotInitialized
	}
	if useSite == nil || (useSite.Kind != ast.KindName && useSite.Kind != ast.KindGetProp) {
		return nil, fmt.Errorf("taproot: use site must be a name or property access, got %v", useSite)
	}

	if _, isDefinition := p.definitionNodes[useSite]; isDefinition {
		return nil, nil
	}

	if useSite.Kind == ast.KindGetProp && (useSite.Value == "apply" || useSite.Value == "call") {
		useSite = useSite.FirstChild()
		if useSite == nil {
			return nil, nil
		}
	}

	name := SimplifiedName(useSite)
	if name == "" {
		return nil, nil
	}
	return slices.Clone(p.byName[name]), nil
}

// AllDefinitionSites returns every currently indexed definition site,
// in no particular order.
func (p *Provider) AllDefinitionSites() ([]*DefinitionSite, error) {
	if !p.initialized {
		return nil, ErrNotInitialized
	}
	sites := make([]*DefinitionSite, 0, len(p.sitesByNode))
	for _, site := range p.sitesByNode {
		sites = append(sites, site)
	}
	return sites, nil
}

// DefinitionSiteForFunction returns the site a function definition is
// indexed under, or nil for a function bound to no name.
func (p *Provider) DefinitionSiteForFunction(fn *ast.Node) (*DefinitionSite, error) {
	if !p.initialized {
		return nil, ErrNotInitialized
	}
	if fn == nil || fn.Kind != ast.KindFunction {
		return nil, fmt.Errorf("taproot: not a function node: %v", fn)
	}
	nameNode := ast.NameNode(fn)
	if nameNode == nil {
		return nil, nil
	}
	return p.sitesByNode[nameNode], nil
}
