package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codecleaner",
		Short: "Strip comments from source trees without touching string literals",
		Long: `codecleaner removes comments from source files across a directory tree.

A single-pass scanner recognises line comments, block comments and markup
comments per language while leaving string literals intact. Cleaned files can
be syntax-checked before they replace the original, backed up to <file>.bak,
or previewed with --dry-run.

Exit Codes:
  0  - Success (per-file failures are reported, not fatal)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or options
  12 - User denied in-place rewrite
  14 - Target path not found`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("help", false, "Help for codecleaner")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")

	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newLanguagesCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
