package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
)

var rawOutput = flag.Bool("raw", false, "Print markdown as is, without terminal styling.")

// printMarkdown prints a markdown document, styled for the terminal when
// stdout is one.
func printMarkdown(doc string) {
	if *rawOutput || stdout != os.Stdout || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprint(stdout, doc)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err == nil {
		var out string
		if out, err = r.Render(doc); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	fmt.Fprint(stdout, doc)
}
