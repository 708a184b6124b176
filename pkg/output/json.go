package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter renders run reports as indented JSON, suitable for piping
// into other tools or posting to a webhook endpoint.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as JSON. In quiet mode only the aggregate
// Summary is emitted; the full report additionally carries run metadata
// (file paths, config, timing).
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	var payload any = report
	if f.opts.Quiet {
		payload = report.Summary
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
