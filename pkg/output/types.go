// Package output provides formatting and report generation for rewrite runs.
package output

import (
	"time"

	"locstamp/pkg/rewriter"
)

// Report is the complete run output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics for one run.
type Summary struct {
	// LinesProcessed is the total number of input lines read.
	LinesProcessed int

	// LinesMatched is the number of lines that matched the pattern.
	LinesMatched int

	// Counted is the number of lines rewritten with a line count.
	Counted int

	// NotApplicable is the number of lines rewritten with the
	// not-applicable sentinel.
	NotApplicable int

	// NotFound is the number of matched lines with no table entry.
	NotFound int

	// TableEntries is the number of entries in the lookup table.
	TableEntries int
}

// Metadata provides context about the run.
type Metadata struct {
	// InputFile is the path to the template file that was read.
	InputFile string

	// OutputFile is the path the rewritten text was written to.
	OutputFile string

	// CSVFile is the path to the line count table.
	CSVFile string

	// ConfigFile is the configuration file used, empty for defaults.
	ConfigFile string

	// RewrittenAt is when the run completed.
	RewrittenAt time.Time

	// Duration is how long the run took.
	Duration time.Duration
}

// NewReport creates a Report from rewrite statistics.
func NewReport(stats *rewriter.Stats, meta Metadata, tableEntries int) *Report {
	return &Report{
		Summary: Summary{
			LinesProcessed: stats.LinesProcessed,
			LinesMatched:   stats.LinesMatched,
			Counted:        stats.Counted,
			NotApplicable:  stats.NotApplicable,
			NotFound:       stats.NotFound,
			TableEntries:   tableEntries,
		},
		Metadata: meta,
	}
}

// HasMisses returns true if any matched directory had no table entry.
func (r *Report) HasMisses() bool {
	return r.Summary.NotFound > 0
}
