package taproot

import (
	"github.com/jward/taproot/ast"
	"github.com/jward/taproot/traverse"
)

// addDefinition registers one discovered definition in all four
// containers. The site node is the node extraction fired on, which is
// always the definition's left-hand side.
func (p *Provider) addDefinition(name string, def *Definition, siteNode *ast.Node, tc *traverse.Context) {
	p.definitionNodes[def.LValue()] = struct{}{}
	p.byName[name] = append(p.byName[name], def)

	site := &DefinitionSite{
		Node:          siteNode,
		Definition:    def,
		Module:        tc.Module(),
		InGlobalScope: tc.InGlobalScope(),
		InExterns:     def.IsExtern(),
	}
	p.sitesByNode[siteNode] = site
	scopeRoot := ast.EnclosingScopeRoot(siteNode)
	p.sitesByScopeRoot[scopeRoot] = append(p.sitesByScopeRoot[scopeRoot], site)
}

// removeByName removes one (name, definition) pair, matching the
// definition by identity. Other definitions under the same name are
// untouched.
func (p *Provider) removeByName(name string, def *Definition) {
	defs := p.byName[name]
	for i, d := range defs {
		if d == def {
			defs = append(defs[:i], defs[i+1:]...)
			break
		}
	}
	if len(defs) == 0 {
		delete(p.byName, name)
	} else {
		p.byName[name] = defs
	}
}

// removeFromScopeRoot removes one site from its scope root's bucket.
func (p *Provider) removeFromScopeRoot(root *ast.Node, site *DefinitionSite) {
	sites := p.sitesByScopeRoot[root]
	for i, s := range sites {
		if s == site {
			sites = append(sites[:i], sites[i+1:]...)
			break
		}
	}
	if len(sites) == 0 {
		delete(p.sitesByScopeRoot, root)
	} else {
		p.sitesByScopeRoot[root] = sites
	}
}
