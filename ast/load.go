package ast

import (
	"context"
	"os"

	"golang.org/x/sync/errgroup"
)

// ParseFiles reads and parses a set of files concurrently, returning
// roots in input order. Parsing is the only concurrent phase in
// taproot; the index itself is single-threaded, so all trees are handed
// over before any indexing starts.
func ParseFiles(ctx context.Context, paths []string, fromExterns bool) ([]*Node, error) {
	roots := make([]*Node, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			root, err := Parse(ctx, src, path, fromExterns)
			if err != nil {
				return err
			}
			roots[i] = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return roots, nil
}
