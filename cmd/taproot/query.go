package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jward/taproot/internal/store"
)

var defsCmd = &cobra.Command{
	Use:   "defs <name> [path]",
	Short: "List candidate definitions for a simplified name",
	Long:  "Looks up a simplified name — an identifier, or this.<property> for any property access — in the dumped index and prints every candidate definition site.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(args[1:])
		if err != nil {
			return err
		}
		defer s.Close()

		defs, err := s.DefinitionsByName(args[0])
		if err != nil {
			return err
		}
		return outputDefinitions(os.Stdout, flagFormat, defs)
	},
}

var sitesCmd = &cobra.Command{
	Use:   "sites [path]",
	Short: "List every indexed definition site",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(args)
		if err != nil {
			return err
		}
		defer s.Close()

		defs, err := s.AllDefinitions()
		if err != nil {
			return err
		}
		return outputDefinitions(os.Stdout, flagFormat, defs)
	},
}

// openStore opens the dump database for the optional target directory
// argument, failing when no index has been built yet.
func openStore(args []string) (*store.Store, error) {
	targetDir := "."
	if len(args) == 1 {
		targetDir = args[0]
	}

	cfg, err := loadConfig(targetDir, "")
	if err != nil {
		return nil, err
	}
	dbPath := resolveDBPath(targetDir, cfg)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("no index at %s — run \"taproot index %s\" first", dbPath, filepath.Clean(targetDir))
	}
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
