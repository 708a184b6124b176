// Package cli provides the command-line interface for locstamp.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"locstamp/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Usage faults already printed the usage text to stdout.
		if !errors.Is(err, commands.ErrUsage) {
			// Print error to stderr (SilenceErrors prevents Cobra from doing this)
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// NewRootCommand creates the root cobra command.
// The root command itself performs the rewrite; validate and version are
// subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := commands.NewRewriteCommand()
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	// Add subcommands
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
