// locstamp - line count stamping tool
//
// locstamp reads a CSV mapping of directory paths to line counts and rewrites
// a template file, appending each directory's count to its quoted string.
package main

import (
	"os"

	"locstamp/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
