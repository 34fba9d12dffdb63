package parser_test

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/kr/text"

	"ccfront/internal/ir"
)

// dumpCFG renders a function's reachable block graph as a structural diff
// aid for test failure messages, using kr/pretty instead of a bespoke %#v
// dump; kr/text wraps it to a reasonable terminal width so a wide CFG
// doesn't spill past the test runner's gutter.
func dumpCFG(fn *ir.Func) string {
	lines := make([]string, 0, len(fn.Blocks()))
	for _, b := range ir.Reachable(fn.Entry) {
		lines = append(lines, fmt.Sprintf("%# v", pretty.Formatter(b)))
	}
	return text.Indent(fmt.Sprintf("%v", lines), "  ")
}
