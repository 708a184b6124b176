package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"locstamp/pkg/config"
	"locstamp/pkg/output"
	"locstamp/pkg/rewriter"
	"locstamp/pkg/table"
	"locstamp/pkg/webhook"
)

// ErrUsage indicates the command was invoked with the wrong arguments.
// The usage text has already been printed when this is returned.
var ErrUsage = errors.New("invalid arguments")

// RewriteOptions holds command-line options for the rewrite run.
type RewriteOptions struct {
	Config  string
	Output  string
	Verbose bool
	Quiet   bool

	// Webhook options
	WebhookURL   string
	WebhookToken string
}

// NewRewriteCommand creates the root rewrite command.
func NewRewriteCommand() *cobra.Command {
	opts := &RewriteOptions{}

	cmd := &cobra.Command{
		Use:   "locstamp <input-file> <output-file> <csv-file>",
		Short: "Append line counts to quoted directory strings",
		Long: `locstamp reads a CSV of directory paths and line counts, then rewrites a
template file by appending each directory's count to its quoted string.

A line like:

    foo = "bar"  # comment

with a CSV row "bar,42" becomes:

    foo = "bar, 42"  # comment

Directories mapped to N/A in the CSV are rendered with the literal N/A;
directories absent from the CSV are rendered as Not Found. Lines that do not
match the label = "directory" pattern pass through unchanged.

Exit codes:
  0 - Rewrite completed
  1 - Usage, configuration, or runtime error`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
				return ErrUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Optional YAML config file")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Summary format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show table and timing details in the summary")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "One-line summary only")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint to POST the JSON report to")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")

	return cmd
}

func runRewrite(cmd *cobra.Command, args []string, opts *RewriteOptions) error {
	inputPath, outputPath, csvPath := args[0], args[1], args[2]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Resolve(ctx, opts.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	start := time.Now()

	// Load the lookup table
	tbl, err := table.Load(ctx, csvPath,
		table.WithComma(cfg.CSV.CommaRune()),
		table.WithWarnings(cmd.ErrOrStderr()),
	)
	if err != nil {
		return fmt.Errorf("loading line counts: %w", err)
	}

	// An empty table is treated the same as a missing file: nothing to
	// rewrite with, so the run aborts before touching the output.
	if tbl.Len() == 0 {
		return fmt.Errorf("no usable line counts in %s", csvPath)
	}

	// Create rewriter
	rw, err := rewriter.New(tbl,
		rewriter.WithPattern(cfg.CompiledPattern()),
		rewriter.WithSentinels(cfg.Render.NotFoundText, cfg.Render.NotApplicableText),
	)
	if err != nil {
		return fmt.Errorf("creating rewriter: %w", err)
	}

	// Run the rewrite
	stats, err := rw.Run(ctx, inputPath, outputPath)
	if err != nil {
		return err
	}

	// Create report
	report := output.NewReport(stats, output.Metadata{
		InputFile:   inputPath,
		OutputFile:  outputPath,
		CSVFile:     csvPath,
		ConfigFile:  opts.Config,
		RewrittenAt: time.Now(),
		Duration:    time.Since(start),
	}, tbl.Len())

	// Create formatter
	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	// Output summary
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting summary: %w", err)
	}

	// Send webhook (errors logged but don't fail the run)
	sendWebhook(ctx, opts, report, cmd.OutOrStdout(), cmd.ErrOrStderr())

	return nil
}

func createFormatter(opts *RewriteOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

// sendWebhook posts the report to the configured endpoint, if any.
// The success confirmation goes to stdout; only delivery failures go to the
// diagnostic stream, and they don't fail the run.
func sendWebhook(ctx context.Context, opts *RewriteOptions, report *output.Report, out, errw io.Writer) {
	if opts.WebhookURL == "" {
		return
	}

	client := webhook.NewClient()
	resp := client.Send(ctx, report, webhook.SendOptions{
		URL:   opts.WebhookURL,
		Token: opts.WebhookToken,
	})

	if resp.Success() {
		fmt.Fprintf(out, "Webhook %s: sent (%d, %s)\n", opts.WebhookURL, resp.StatusCode, resp.Duration)
	} else {
		fmt.Fprintf(errw, "Webhook %s: failed (%v)\n", opts.WebhookURL, resp.Error)
	}
}
