package taproot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/taproot/ast"
)

func functionNamed(t *testing.T, root *ast.Node, name string) *ast.Node {
	t.Helper()
	fn := findNode(root, func(n *ast.Node) bool {
		return n.Kind == ast.KindFunction && n.FirstChild() != nil && n.FirstChild().Value == name
	})
	require.NotNil(t, fn, "no function %q", name)
	return fn
}

func TestRebuild_UnchangedRootIsANoOpInEffect(t *testing.T) {
	p, root := initProvider(t, "", "var a = 1;\nfunction f(p) { var inner = 2; }", false)
	fn := functionNamed(t, root, "f")

	before := totalDefs(p)
	require.NoError(t, p.RebuildScopeRoots([]*ast.Node{fn}, nil))

	assert.Equal(t, before, totalDefs(p))
	assert.Len(t, p.byName["inner"], 1)
	assert.Len(t, p.byName["p"], 1)
	assert.Len(t, p.byName["f"], 1)
	assert.Len(t, p.sitesByNode, totalDefs(p))
	assert.Len(t, p.definitionNodes, totalDefs(p))
}

func TestRebuild_DeletedRootCascades(t *testing.T) {
	p, root := initProvider(t, "", "var a = 1;\nfunction f(p) { var inner = 2; }", false)
	fn := functionNamed(t, root, "f")

	require.NoError(t, p.RebuildScopeRoots(nil, []*ast.Node{fn}))

	// Everything scoped to the function is gone, including its name.
	assert.Empty(t, p.byName["f"])
	assert.Empty(t, p.byName["p"])
	assert.Empty(t, p.byName["inner"])
	// The file-level definition survives.
	assert.Len(t, p.byName["a"], 1)

	assert.Len(t, p.sitesByNode, 1)
	assert.Len(t, p.definitionNodes, 1)
	assert.NotContains(t, p.sitesByScopeRoot, fn)
}

func TestRebuild_ChangedRootPicksUpEdits(t *testing.T) {
	p, root := initProvider(t, "", "function f() { var old = 1; }", false)
	fn := functionNamed(t, root, "f")
	require.Len(t, p.byName["old"], 1)

	// Rewrite the function body in place: var old -> var fresh.
	decl := nameUse(t, root, "old", ast.KindVar)
	decl.Value = "fresh"

	require.NoError(t, p.RebuildScopeRoots([]*ast.Node{fn}, nil))

	assert.Empty(t, p.byName["old"])
	require.Len(t, p.byName["fresh"], 1)
	assert.Equal(t, Concrete, p.byName["fresh"][0].Kind())
}

func TestRebuild_DoesNotDescendIntoNestedFunctions(t *testing.T) {
	p, root := initProvider(t, "", "var a = 1;\nfunction f() { var q = 5; }", false)
	require.Len(t, p.byName["q"], 1)
	qDef := p.byName["q"][0]

	// Rebuilding the file root must not re-register definitions owned by
	// the nested function's scope.
	require.NoError(t, p.RebuildScopeRoots([]*ast.Node{root}, nil))

	require.Len(t, p.byName["q"], 1)
	assert.Same(t, qDef, p.byName["q"][0])
	assert.Len(t, p.byName["a"], 1)
	assert.Len(t, p.byName["f"], 1)
}

func TestRebuild_RepeatedRebuildIsStable(t *testing.T) {
	p, root := initProvider(t, "", "x = compute();", false)
	require.Len(t, p.byName["x"], 1)
	require.Equal(t, Unknown, p.byName["x"][0].Kind())

	for i := 0; i < 3; i++ {
		require.NoError(t, p.RebuildScopeRoots([]*ast.Node{root}, nil))
	}

	require.Len(t, p.byName["x"], 1)
	assert.Equal(t, Unknown, p.byName["x"][0].Kind())
	assert.Len(t, p.sitesByNode, 1)
	assert.Len(t, p.definitionNodes, 1)
}

func TestRebuild_MixedExternAndSourceRoots(t *testing.T) {
	externs := parseJS(t, "var console;", "externs.js", true)
	src := parseJS(t, "var a = 1;", "src.js", false)
	p := NewProvider(false)
	require.NoError(t, p.Initialize([]*ast.Node{externs}, []*ast.Node{src}))

	require.NoError(t, p.RebuildScopeRoots([]*ast.Node{externs, src}, nil))

	require.Len(t, p.byName["console"], 1)
	assert.True(t, p.byName["console"][0].IsExtern())
	require.Len(t, p.byName["a"], 1)
	assert.False(t, p.byName["a"][0].IsExtern())
}

func TestRebuild_DeletedRootsAreNotRetraversed(t *testing.T) {
	p, root := initProvider(t, "", "function f() { var inner = 1; }\nfunction g() { var other = 2; }", false)
	f := functionNamed(t, root, "f")
	g := functionNamed(t, root, "g")

	require.NoError(t, p.RebuildScopeRoots([]*ast.Node{g}, []*ast.Node{f}))

	assert.Empty(t, p.byName["inner"])
	require.Len(t, p.byName["other"], 1)
}
