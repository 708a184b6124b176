package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"locstamp/pkg/config"
	"locstamp/pkg/table"
)

// ValidateOptions holds command-line options for the validate command.
type ValidateOptions struct {
	Config string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <csv-file>",
		Short: "Validate a line count CSV file",
		Long: `Validate a line count CSV file without rewriting anything.

Checks:
  - File readability
  - Per-row shape (directory, count) with warnings for skipped rows
  - That at least one usable entry was loaded
  - Config file validity when --config is given`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Optional YAML config file")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	csvPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	out := cmd.OutOrStdout()

	cfg, err := config.Resolve(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "Validating %s...\n", csvPath)

	tbl, err := table.Load(ctx, csvPath,
		table.WithComma(cfg.CSV.CommaRune()),
		table.WithWarnings(cmd.ErrOrStderr()),
	)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if tbl.Len() == 0 {
		return fmt.Errorf("validation failed: no usable line counts in %s", csvPath)
	}

	fmt.Fprintf(out, "\nTable valid!\n")
	fmt.Fprintf(out, "  Entries: %d\n", tbl.Len())
	if opts.Config != "" {
		fmt.Fprintf(out, "  Config:  %s\n", opts.Config)
	}

	return nil
}
