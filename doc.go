// Package taproot builds a conservative, whole-program, name-based
// definition index over JavaScript syntax trees.
//
// Given a program — extern declaration files plus implementation files —
// taproot maps every syntactically derivable name (a plain identifier,
// or any property access collapsed to "this.property") to the set of
// binding sites that could produce the value observed at a use of that
// name. Optimization passes query the index to answer "what might this
// reference evaluate to?" without type information, accepting false
// positives in exchange for never missing a candidate.
//
// # Usage
//
// Parse inputs, build a [Provider], then query it:
//
//	externs, err := ast.ParseFiles(ctx, externPaths, true)
//	sources, err := ast.ParseFiles(ctx, sourcePaths, false)
//
//	p := taproot.NewProvider(false)
//	if err := p.Initialize(externs, sources); err != nil { ... }
//
//	defs, err := p.DefinitionsReferencedAt(useSite)
//
// After rewriting parts of the tree, re-index just the scopes that
// changed instead of re-scanning the program:
//
//	err := p.RebuildScopeRoots(changedRoots, deletedRoots)
//
// The Provider is single-threaded and unlocked: one driving pass
// alternates rewrites, rebuilds and queries, never overlapping them.
package taproot
