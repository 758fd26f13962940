package taproot

import (
	"fmt"
	"testing"

	"github.com/jward/taproot/ast"
)

// syntheticRoot builds a file with n top-level functions, each defining
// a parameter and a local.
func syntheticRoot(n int) *ast.Node {
	root := ast.New(ast.KindRoot, "")
	root.File = "bench.js"
	for i := 0; i < n; i++ {
		local := ast.New(ast.KindName, fmt.Sprintf("local%d", i), ast.New(ast.KindNumber, "1"))
		fn := ast.New(ast.KindFunction, "",
			ast.New(ast.KindName, fmt.Sprintf("fn%d", i)),
			ast.New(ast.KindParamList, "", ast.New(ast.KindName, fmt.Sprintf("p%d", i))),
			ast.New(ast.KindBlock, "", ast.New(ast.KindVar, "", local)))
		root.AddChild(fn)
	}
	return root
}

func BenchmarkInitialize(b *testing.B) {
	root := syntheticRoot(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := NewProvider(false)
		if err := p.Initialize(nil, []*ast.Node{root}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDefinitionsReferencedAt(b *testing.B) {
	root := syntheticRoot(1000)
	p := NewProvider(false)
	if err := p.Initialize(nil, []*ast.Node{root}); err != nil {
		b.Fatal(err)
	}
	use := ast.New(ast.KindName, "fn500")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.DefinitionsReferencedAt(use); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRebuildScopeRoots(b *testing.B) {
	root := syntheticRoot(1000)
	p := NewProvider(false)
	if err := p.Initialize(nil, []*ast.Node{root}); err != nil {
		b.Fatal(err)
	}
	changed := []*ast.Node{root.Children[500]}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := p.RebuildScopeRoots(changed, nil); err != nil {
			b.Fatal(err)
		}
	}
}
