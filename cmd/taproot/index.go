package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/jward/taproot"
	"github.com/jward/taproot/ast"
	"github.com/jward/taproot/internal/store"
)

var (
	flagConfig       string
	flagExterns      []string
	flagSources      []string
	flagForce        bool
	flagComplexFuncs bool
)

var indexCmd = &cobra.Command{
	Use:   "index [path]",
	Short: "Build the definition index and dump it to the database",
	Long:  "Parses extern and implementation JavaScript files, builds the name-based definition index, and writes every definition site to the SQLite database. An unchanged input set skips the dump.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&flagConfig, "config", "", "config file (default: taproot.toml in the target directory)")
	indexCmd.Flags().StringSliceVar(&flagExterns, "externs", nil, "extern file globs (overrides config)")
	indexCmd.Flags().StringSliceVar(&flagSources, "sources", nil, "source file globs (overrides config)")
	indexCmd.Flags().BoolVar(&flagForce, "force", false, "rebuild even when inputs are unchanged")
	indexCmd.Flags().BoolVar(&flagComplexFuncs, "complex-funcs", false, "treat a conditional of two functions as a known function")
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()

	targetDir := "."
	if len(args) == 1 {
		targetDir = args[0]
	}

	cfg, err := loadConfig(targetDir, flagConfig)
	if err != nil {
		return err
	}
	if len(flagExterns) > 0 {
		cfg.Externs = flagExterns
	}
	if len(flagSources) > 0 {
		cfg.Sources = flagSources
	}
	if flagComplexFuncs {
		cfg.ComplexFunctionDefs = true
	}

	externPaths, err := expandGlobs(targetDir, cfg.Externs)
	if err != nil {
		return err
	}
	sourcePaths, err := expandGlobs(targetDir, cfg.Sources)
	if err != nil {
		return err
	}
	// A file matched by both pattern sets is an extern.
	sourcePaths = subtract(sourcePaths, externPaths)

	if len(externPaths)+len(sourcePaths) == 0 {
		return fmt.Errorf("no input files match under %s", targetDir)
	}

	hashes, err := hashFiles(append(append([]string{}, externPaths...), sourcePaths...))
	if err != nil {
		return err
	}
	inputsHash := store.HashInputs(hashes)

	dbPath := resolveDBPath(targetDir, cfg)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dbPath), err)
	}
	s, err := store.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Migrate(); err != nil {
		return err
	}

	if !flagForce {
		stored, err := s.GetMetadata("inputs_hash")
		if err != nil {
			return err
		}
		if stored == inputsHash {
			fmt.Fprintf(os.Stderr, "Up to date: %s\n", dbPath)
			return nil
		}
	}

	ctx := context.Background()
	externRoots, err := ast.ParseFiles(ctx, externPaths, true)
	if err != nil {
		return fmt.Errorf("parse externs: %w", err)
	}
	sourceRoots, err := ast.ParseFiles(ctx, sourcePaths, false)
	if err != nil {
		return fmt.Errorf("parse sources: %w", err)
	}

	provider := taproot.NewProvider(cfg.ComplexFunctionDefs)
	if err := provider.Initialize(externRoots, sourceRoots); err != nil {
		return err
	}
	sites, err := provider.AllDefinitionSites()
	if err != nil {
		return err
	}

	if err := dump(s, externPaths, sourcePaths, hashes, sites); err != nil {
		return err
	}
	if err := s.SetMetadata("inputs_hash", inputsHash); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Indexed %d files, %d definition sites in %s → %s\n",
		len(externPaths)+len(sourcePaths), len(sites), time.Since(start).Round(time.Millisecond), dbPath)
	return nil
}

// dump replaces the store's contents with the current index.
func dump(s *store.Store, externPaths, sourcePaths []string, hashes map[string]string, sites []*taproot.DefinitionSite) error {
	if err := s.Clear(); err != nil {
		return err
	}

	fileIDs := make(map[string]int64, len(externPaths)+len(sourcePaths))
	insert := func(paths []string, extern bool) error {
		for _, path := range paths {
			id, err := s.InsertFile(&store.File{
				Path:        path,
				IsExtern:    extern,
				Hash:        hashes[path],
				LastIndexed: time.Now(),
			})
			if err != nil {
				return err
			}
			fileIDs[path] = id
		}
		return nil
	}
	if err := insert(externPaths, true); err != nil {
		return err
	}
	if err := insert(sourcePaths, false); err != nil {
		return err
	}

	rows := make([]*store.Definition, 0, len(sites))
	for _, site := range sites {
		fileID, ok := fileIDs[site.Node.File]
		if !ok {
			// Documentation type nodes carry no file; skip them.
			continue
		}
		rows = append(rows, &store.Definition{
			FileID:        fileID,
			Name:          site.Definition.SimplifiedName(),
			Kind:          site.Definition.Kind().String(),
			IsExtern:      site.InExterns,
			InGlobalScope: site.InGlobalScope,
			File:          site.Node.File,
			Line:          site.Node.Line,
			Col:           site.Node.Col,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return a.Name < b.Name
	})
	return s.InsertDefinitions(rows)
}

// expandGlobs resolves doublestar patterns relative to dir, skipping
// node_modules. Plain paths pass through unchanged.
func expandGlobs(dir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			if strings.Contains(m, "node_modules"+string(filepath.Separator)) {
				continue
			}
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func subtract(paths, remove []string) []string {
	removeSet := make(map[string]bool, len(remove))
	for _, p := range remove {
		removeSet[p] = true
	}
	var out []string
	for _, p := range paths {
		if !removeSet[p] {
			out = append(out, p)
		}
	}
	return out
}

func hashFiles(paths []string) (map[string]string, error) {
	hashes := make(map[string]string, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		hashes[path] = store.HashBytes(content)
	}
	return hashes, nil
}

func resolveDBPath(targetDir string, cfg config) string {
	if flagDB != "" {
		return flagDB
	}
	if filepath.IsAbs(cfg.DB) {
		return cfg.DB
	}
	return filepath.Join(targetDir, cfg.DB)
}
