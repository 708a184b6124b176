package output

import (
	"context"
	"fmt"
	"io"
	"time"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "locstamp: %d lines processed, %d rewritten, %d not found\n",
		report.Summary.LinesProcessed,
		report.Summary.LinesMatched,
		report.Summary.NotFound)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintf(w, "Rewrote %s -> %s\n", report.Metadata.InputFile, report.Metadata.OutputFile)
	fmt.Fprintf(w, "  Lines processed: %d\n", report.Summary.LinesProcessed)
	fmt.Fprintf(w, "  Lines rewritten: %d\n", report.Summary.LinesMatched)

	if report.Summary.Counted > 0 {
		fmt.Fprintf(w, "    With count:    %d\n", report.Summary.Counted)
	}
	if report.Summary.NotApplicable > 0 {
		fmt.Fprintf(w, "    N/A:           %d\n", report.Summary.NotApplicable)
	}
	if report.Summary.NotFound > 0 {
		fmt.Fprintf(w, "    Not found:     %d\n", report.Summary.NotFound)
	}

	if f.opts.Verbose {
		fmt.Fprintf(w, "  Table entries:   %d (%s)\n", report.Summary.TableEntries, report.Metadata.CSVFile)
		if report.Metadata.ConfigFile != "" {
			fmt.Fprintf(w, "  Config:          %s\n", report.Metadata.ConfigFile)
		}
		fmt.Fprintf(w, "  Duration:        %s\n", report.Metadata.Duration.Round(time.Millisecond))
	}

	return nil
}
