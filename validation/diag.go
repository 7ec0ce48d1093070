package validation

import (
	"fmt"
	"io"

	"github.com/sat-clique/garrett/gates"
)

// writeInvalidGate renders an invalid gate for human inspection: a line
// naming the output literal, then one clause per line. The format is
// informative only and is never re-ingested.
func writeInvalidGate(w io.Writer, g *gates.Gate) {
	fmt.Fprintf(w, "Validation failed for gate with output variable %s\nClauses:\n", g.Output)
	for _, c := range g.Clauses {
		fmt.Fprintln(w, c.String())
	}
}
