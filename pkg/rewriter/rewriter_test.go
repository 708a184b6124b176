package rewriter

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"locstamp/pkg/table"
)

func testTable() *table.Table {
	return table.New(map[string]table.Count{
		"bar":       42,
		"src/core":  100,
		"generated": table.NotApplicable,
	})
}

func rewrite(t *testing.T, r *Rewriter, input string) (string, *Stats) {
	t.Helper()
	var out bytes.Buffer
	stats, err := r.Rewrite(context.Background(), strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("Rewrite() error = %v", err)
	}
	return out.String(), stats
}

func TestRewrite_AppendsCount(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, stats := rewrite(t, r, `foo = "bar"  # comment`+"\n")
	want := `foo = "bar, 42"  # comment` + "\n"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
	if stats.Counted != 1 {
		t.Errorf("Counted = %d, want 1", stats.Counted)
	}
}

func TestRewrite_NotFound(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, stats := rewrite(t, r, `x = "missing"`+"\n")
	want := `x = "missing, Not Found"` + "\n"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
	if stats.NotFound != 1 {
		t.Errorf("NotFound = %d, want 1", stats.NotFound)
	}
}

func TestRewrite_NotApplicable(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, stats := rewrite(t, r, `gen = "generated"`+"\n")
	want := `gen = "generated, N/A"` + "\n"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
	if stats.NotApplicable != 1 {
		t.Errorf("NotApplicable = %d, want 1", stats.NotApplicable)
	}
}

func TestRewrite_PassThrough(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, stats := rewrite(t, r, "# just a comment\n")
	if got != "# just a comment\n" {
		t.Errorf("Rewrite() = %q, want pass-through", got)
	}
	if stats.LinesMatched != 0 {
		t.Errorf("LinesMatched = %d, want 0", stats.LinesMatched)
	}
}

func TestRewrite_TrimsDirectory(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, _ := rewrite(t, r, `foo = " bar "`+"\n")
	want := `foo = "bar, 42"` + "\n"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestRewrite_NormalizesNewlines(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// No trailing newline on input; every written line gets one.
	got, _ := rewrite(t, r, "# one\n# two")
	if got != "# one\n# two\n" {
		t.Errorf("Rewrite() = %q, want trailing newline appended", got)
	}
}

func TestRewrite_MixedLines(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	input := strings.Join([]string{
		`# header`,
		`core = "src/core"`,
		`gen = "generated"  # tool output`,
		`x = "missing"`,
		``,
	}, "\n")

	got, stats := rewrite(t, r, input)
	want := strings.Join([]string{
		`# header`,
		`core = "src/core, 100"`,
		`gen = "generated, N/A"  # tool output`,
		`x = "missing, Not Found"`,
		``,
	}, "\n")
	if got != want {
		t.Errorf("Rewrite() =\n%s\nwant\n%s", got, want)
	}

	if stats.LinesProcessed != 4 {
		t.Errorf("LinesProcessed = %d, want 4", stats.LinesProcessed)
	}
	if stats.LinesMatched != 3 {
		t.Errorf("LinesMatched = %d, want 3", stats.LinesMatched)
	}
}

func TestRewrite_Idempotent(t *testing.T) {
	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	input := `foo = "bar"` + "\n# comment\n"
	first, _ := rewrite(t, r, input)
	second, _ := rewrite(t, r, input)
	if first != second {
		t.Errorf("Rewrite() not idempotent: %q vs %q", first, second)
	}
}

func TestRewrite_CustomSentinels(t *testing.T) {
	r, err := New(testTable(), WithSentinels("missing", "skipped"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, _ := rewrite(t, r, `x = "nowhere"`+"\n"+`g = "generated"`+"\n")
	want := `x = "nowhere, missing"` + "\n" + `g = "generated, skipped"` + "\n"
	if got != want {
		t.Errorf("Rewrite() = %q, want %q", got, want)
	}
}

func TestNew_RejectsBadPattern(t *testing.T) {
	re := regexp.MustCompile(`^(.*)$`) // only one capture group
	if _, err := New(testTable(), WithPattern(re)); err == nil {
		t.Error("New() expected error for pattern with wrong group count")
	}
}

func TestRun_FileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "template.txt")
	outputPath := filepath.Join(dir, "out.txt")

	input := `foo = "bar"  # comment` + "\n# passthrough\n"
	if err := os.WriteFile(inputPath, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}

	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	stats, err := r.Run(context.Background(), inputPath, outputPath)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.LinesProcessed != 2 {
		t.Errorf("LinesProcessed = %d, want 2", stats.LinesProcessed)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Reading output: %v", err)
	}
	want := `foo = "bar, 42"  # comment` + "\n# passthrough\n"
	if string(data) != want {
		t.Errorf("Output = %q, want %q", string(data), want)
	}
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()

	r, err := New(testTable())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = r.Run(context.Background(), filepath.Join(dir, "missing.txt"), filepath.Join(dir, "out.txt"))
	if err == nil {
		t.Error("Run() expected error for missing input file")
	}
}
