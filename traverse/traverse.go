// Package traverse drives depth-first walks over taproot syntax trees.
//
// The walk uses an explicit stack rather than recursion so degenerate,
// deeply nested inputs cannot overflow the call stack. Callbacks get a
// pre-order Enter hook that may prune a subtree and a post-order Visit
// hook; the Context reports the module being walked and whether the
// current node sits in global scope.
package traverse

import "github.com/jward/taproot/ast"

// Callback receives traversal events.
type Callback interface {
	// Enter is called before a node's subtree; returning false skips the
	// node entirely, including its Visit.
	Enter(tc *Context, n, parent *ast.Node) bool
	// Visit is called after a node's children have been traversed.
	Visit(tc *Context, n, parent *ast.Node)
}

// ScopeRootCallback additionally observes scope-root boundaries during
// incremental traversal.
type ScopeRootCallback interface {
	Callback
	// EnterScopeRoot is called once per root before it is walked.
	EnterScopeRoot(root *ast.Node)
}

// Context carries per-walk state and is handed to every callback.
type Context struct {
	module string
	depth  int // enclosing function count at the node being visited
	cb     Callback

	// restrictRoot, when set, stops the walk at nested function nodes:
	// they are separate scope roots and own their own definitions.
	restrictRoot *ast.Node
}

// Module returns the module identifier of the tree being walked — the
// input file the current root came from.
func (tc *Context) Module() string { return tc.module }

// InGlobalScope reports whether the node currently being entered or
// visited has no enclosing function. A function node itself — and its
// name — belongs to the scope that contains it.
func (tc *Context) InGlobalScope() bool { return tc.depth == 0 }

// Traverse walks a detached subtree (such as a documentation type
// expression) with the same callback and module, mid-walk.
func (tc *Context) Traverse(root *ast.Node) {
	if root != nil {
		tc.walk(root, root.Parent)
	}
}

// Traverse walks one input root. The root's file is the module id.
func Traverse(root *ast.Node, cb Callback) {
	tc := &Context{module: root.File, cb: cb}
	tc.walk(root, nil)
}

// TraverseScopeRoots walks an explicit list of scope roots for
// incremental re-indexing. Each root is announced via EnterScopeRoot,
// and nested functions inside a root are not descended into — a nested
// function is its own scope root and is re-indexed only if listed.
func TraverseScopeRoots(roots []*ast.Node, cb ScopeRootCallback) {
	for _, root := range roots {
		cb.EnterScopeRoot(root)
		tc := &Context{module: root.File, cb: cb, restrictRoot: root}
		tc.walk(root, root.Parent)
	}
}

// frame is one explicit-stack entry. depth is the number of functions
// enclosing n; a function's name child keeps the outer depth while its
// parameters and body take the inner one.
type frame struct {
	n, parent *ast.Node
	depth     int
	entered   bool
}

func (tc *Context) walk(root, parent *ast.Node) {
	base := tc.depth
	stack := []frame{{n: root, parent: parent, depth: base}}
	for len(stack) > 0 {
		top := len(stack) - 1
		f := stack[top]

		if !f.entered {
			if tc.restrictRoot != nil && f.n.Kind == ast.KindFunction && f.n != tc.restrictRoot {
				stack = stack[:top]
				continue
			}
			tc.depth = f.depth
			if !tc.cb.Enter(tc, f.n, f.parent) {
				stack = stack[:top]
				continue
			}
			stack[top].entered = true
			for i := len(f.n.Children) - 1; i >= 0; i-- {
				child := f.n.Children[i]
				depth := f.depth
				if f.n.Kind == ast.KindFunction && i > 0 {
					// Parameters and body are inside the function; the
					// name child (index 0) stays in the enclosing scope.
					depth++
				}
				stack = append(stack, frame{n: child, parent: f.n, depth: depth})
			}
			continue
		}

		stack = stack[:top]
		tc.depth = f.depth
		tc.cb.Visit(tc, f.n, f.parent)
	}
	tc.depth = base
}
