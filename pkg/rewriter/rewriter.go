// Package rewriter streams a template file and appends line counts to quoted
// directory strings.
package rewriter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"locstamp/pkg/table"
)

// DefaultPattern matches lines of the form `label = "directory"rest`.
// The three capture groups are the label, the quoted directory, and the
// trailing content after the closing quote.
const DefaultPattern = `^(.*?)\s*=\s*"([^"]*)"(.*)$`

// Default sentinel texts rendered into rewritten lines.
const (
	DefaultNotFoundText      = "Not Found"
	DefaultNotApplicableText = "N/A"
)

// Stats summarizes one rewrite run.
type Stats struct {
	// LinesProcessed is the total number of input lines read.
	LinesProcessed int

	// LinesMatched is the number of lines that matched the pattern.
	LinesMatched int

	// Counted is the number of matched lines rewritten with a line count.
	Counted int

	// NotApplicable is the number of matched lines rewritten with the
	// not-applicable sentinel.
	NotApplicable int

	// NotFound is the number of matched lines whose directory had no
	// table entry.
	NotFound int
}

// Rewriter applies a line count table to template lines.
type Rewriter struct {
	table    *table.Table
	pattern  *regexp.Regexp
	notFound string
	notAppl  string
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithPattern overrides the line-matching pattern. The pattern must have
// exactly three capture groups: label, quoted directory, trailing content.
func WithPattern(re *regexp.Regexp) Option {
	return func(r *Rewriter) {
		r.pattern = re
	}
}

// WithSentinels overrides the text rendered for missing and not-applicable
// line counts.
func WithSentinels(notFound, notApplicable string) Option {
	return func(r *Rewriter) {
		r.notFound = notFound
		r.notAppl = notApplicable
	}
}

// New creates a Rewriter over the given table.
func New(tbl *table.Table, opts ...Option) (*Rewriter, error) {
	r := &Rewriter{
		table:    tbl,
		pattern:  regexp.MustCompile(DefaultPattern),
		notFound: DefaultNotFoundText,
		notAppl:  DefaultNotApplicableText,
	}
	for _, opt := range opts {
		opt(r)
	}

	if n := r.pattern.NumSubexp(); n != 3 {
		return nil, fmt.Errorf("pattern must have exactly 3 capture groups, got %d", n)
	}

	return r, nil
}

// Run rewrites inputPath into outputPath, creating or truncating the output
// file. On error the output file may be left incomplete; rerunning with the
// same inputs is idempotent.
func (r *Rewriter) Run(ctx context.Context, inputPath, outputPath string) (*Stats, error) {
	in, err := os.Open(inputPath) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}

	stats, err := r.Rewrite(ctx, in, out)
	if err != nil {
		_ = out.Close()
		return nil, err
	}

	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("closing output file: %w", err)
	}

	return stats, nil
}

// Rewrite streams lines from in to out, rewriting each matched line.
// Every emitted line ends with a single newline regardless of the original
// terminator.
func (r *Rewriter) Rewrite(ctx context.Context, in io.Reader, out io.Writer) (*Stats, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size

	writer := bufio.NewWriter(out)
	stats := &Stats{}

	for scanner.Scan() {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		stats.LinesProcessed++
		if _, err := writer.WriteString(r.rewriteLine(scanner.Text(), stats)); err != nil {
			return nil, fmt.Errorf("writing output: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if err := writer.Flush(); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}

	return stats, nil
}

// rewriteLine returns the output for one input line, newline included.
func (r *Rewriter) rewriteLine(line string, stats *Stats) string {
	m := r.pattern.FindStringSubmatch(line)
	if m == nil {
		return line + "\n"
	}
	stats.LinesMatched++

	label := m[1]
	directory := strings.TrimSpace(m[2])
	rest := m[3]

	count, ok := r.table.Lookup(directory)
	switch {
	case !ok:
		stats.NotFound++
		return fmt.Sprintf("%s = \"%s, %s\"%s\n", label, directory, r.notFound, rest)
	case count.IsNotApplicable():
		stats.NotApplicable++
		return fmt.Sprintf("%s = \"%s, %s\"%s\n", label, directory, r.notAppl, rest)
	default:
		stats.Counted++
		return fmt.Sprintf("%s = \"%s, %d\"%s\n", label, directory, count, rest)
	}
}
