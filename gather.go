package taproot

import (
	"github.com/jward/taproot/ast"
	"github.com/jward/taproot/traverse"
)

// gatherer is the traversal callback that discovers and classifies
// definitions. One gatherer runs per pass: externs first, then
// implementation code. In incremental mode the extern flag follows each
// scope root.
type gatherer struct {
	p         *Provider
	inExterns bool
}

// EnterScopeRoot keys the extern flag off the root during incremental
// re-traversal, where extern and implementation roots can be mixed in
// one call.
func (g *gatherer) EnterScopeRoot(root *ast.Node) {
	g.inExterns = root.FromExterns
}

// Enter prunes extern subtrees that never contain reachable
// definitions: documentation function types (their first child is not a
// plain name) and everything under a function except its name, since
// extern parameter names are placeholders no reference can reach.
func (g *gatherer) Enter(tc *traverse.Context, n, parent *ast.Node) bool {
	if g.inExterns {
		if n.Kind == ast.KindFunction {
			if first := n.FirstChild(); first == nil || first.Kind != ast.KindName {
				return false
			}
		}
		if parent != nil && parent.Kind == ast.KindFunction && n != parent.FirstChild() {
			return false
		}
	}
	return true
}

func (g *gatherer) Visit(tc *traverse.Context, n, parent *ast.Node) {
	if g.inExterns {
		g.visitExterns(tc, n)
	} else {
		g.visitCode(tc, n)
	}
}

func (g *gatherer) visitExterns(tc *traverse.Context, n *ast.Node) {
	if n.JSDoc != nil {
		// Type annotations can reference other extern names; walk the
		// annotation's type expressions so those references are visited.
		for _, typeRoot := range n.JSDoc.TypeRoots() {
			tc.Traverse(typeRoot)
		}
	}

	def := ExtractDefinition(n, true)
	if def == nil {
		return
	}
	name := def.SimplifiedName()
	if name == "" {
		return
	}
	if rv := def.RValue(); rv != nil && !ast.IsImmutableValue(rv) && rv.Kind != ast.KindFunction {
		// Unhandled complex expression.
		def = &Definition{kind: Unknown, lvalue: def.LValue(), extern: true}
	}
	g.p.addDefinition(name, def, n, tc)
}

func (g *gatherer) visitCode(tc *traverse.Context, n *ast.Node) {
	def := ExtractDefinition(n, false)
	if def == nil {
		return
	}
	name := def.SimplifiedName()
	if name == "" {
		return
	}
	if rv := def.RValue(); rv != nil && !ast.IsImmutableValue(rv) && !g.isKnownFunctionDefinition(rv) {
		def = &Definition{kind: Unknown, lvalue: def.LValue(), extern: false}
	}
	g.p.addDefinition(name, def, n, tc)
}

// isKnownFunctionDefinition reports whether the value is certainly a
// function: a function literal, or — when complex function definitions
// are allowed — a conditional whose branches both are.
func (g *gatherer) isKnownFunctionDefinition(n *ast.Node) bool {
	switch n.Kind {
	case ast.KindFunction:
		return true
	case ast.KindHook:
		return g.p.allowComplexFunctionDefs &&
			len(n.Children) == 3 &&
			g.isKnownFunctionDefinition(n.Children[1]) &&
			g.isKnownFunctionDefinition(n.Children[2])
	}
	return false
}
