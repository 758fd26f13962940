package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagDB     string
	flagFormat string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "taproot",
	Short:         "Conservative name-based definition index for JavaScript",
	Long:          "Taproot parses extern and implementation JavaScript files, builds a whole-program name-based definition index, and dumps it to a SQLite database for inspection and queries.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
	// No Run — prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database path (default: .taproot/index.db under the target directory)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "auto", "output format: auto|json|text")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(defsCmd)
	rootCmd.AddCommand(sitesCmd)
}
