// Package textir is the textual three-address-IR pretty-printer: an
// output_block collaborator that walks the reachable block graph from a
// function's entry and prints one line per IR op.
package textir

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"ccfront/internal/ir"
	"ccfront/internal/symtab"
	"ccfront/internal/types"
)

// Printer implements parser.Emitter.
type Printer struct {
	w io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// OutputBlock prunes orphan blocks (internal/ir.Prune) then prints every
// reachable block of fn, one label and its op sequence at a time. A blank
// line (an empty puts("")) separates emitted functions.
func (p *Printer) OutputBlock(fn *ir.Func) {
	dropped := ir.Prune(fn)
	reach := ir.Reachable(fn.Entry)

	name := "<anon>"
	if fn.Name != nil {
		name = *fn.Name
	}
	fmt.Fprintf(p.w, "function %s:\n", name)

	labels := labelBlocks(reach)
	for _, b := range reach {
		fmt.Fprintf(p.w, "%s:\n", labels[b])
		for _, op := range b.Ops {
			fmt.Fprintf(p.w, "  %s\n", formatOp(op))
		}
		if b.Expr != nil {
			fmt.Fprintf(p.w, "  expr %s\n", symName(b.Expr))
		}
		switch {
		case b.Jump[0] == nil && b.Jump[1] == nil:
			fmt.Fprintf(p.w, "  ret\n")
		case b.Jump[1] == nil:
			fmt.Fprintf(p.w, "  jmp %s\n", labels[b.Jump[0]])
		default:
			fmt.Fprintf(p.w, "  br %s, %s\n", labels[b.Jump[0]], labels[b.Jump[1]])
		}
	}
	if len(dropped) > 0 {
		fmt.Fprintf(p.w, "  ; %d orphan block(s) pruned\n", len(dropped))
	}
	fmt.Fprintln(p.w)
}

func labelBlocks(blocks []*ir.Block) map[*ir.Block]string {
	labels := make(map[*ir.Block]string, len(blocks))
	for i, b := range blocks {
		if b.Label != nil {
			labels[b] = *b.Label
			continue
		}
		labels[b] = fmt.Sprintf("L%d_%s", i, b.DebugID.String()[:8])
	}
	return labels
}

func symName(s *symtab.Symbol) string {
	if s == nil {
		return "<nil>"
	}
	if s.Name != nil {
		return *s.Name
	}
	if s.IsImmediate {
		if s.StrVal != nil {
			return fmt.Sprintf("%q", *s.StrVal)
		}
		return fmt.Sprintf("%d", s.IntVal)
	}
	return "t$" + s.DebugID.String()[:8]
}

func formatOp(op ir.Operation) string {
	switch op.Op {
	case ir.Assign:
		return fmt.Sprintf("%s = %s", symName(op.A), symName(op.B))
	case ir.Deref:
		return fmt.Sprintf("%s = *%s", symName(op.A), symName(op.B))
	default:
		return fmt.Sprintf("%s = %s %s %s", symName(op.A), symName(op.B), op.Op, symName(op.C))
	}
}

// DumpTypes prints every file-scope symbol's type tree, humanizing sizes —
// the -dump-types companion to OutputBlock described in SPEC_FULL.md §4.
func DumpTypes(w io.Writer, syms []*symtab.Symbol) {
	for _, s := range syms {
		if s.Name == nil {
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", *s.Name, describeType(s.Type))
	}
}

func describeType(t *types.Node) string {
	if t == nil {
		return "<untyped>"
	}
	switch t.Kind {
	case types.Pointer:
		return "pointer to " + describeType(t.Next)
	case types.Array:
		return fmt.Sprintf("array[%d] of %s (%s)", t.Length, describeType(t.Next), humanize.Bytes(uint64(t.Size)))
	case types.Function:
		return fmt.Sprintf("function(%d args) -> %s", t.NArgs, describeType(t.Next))
	default:
		return fmt.Sprintf("%s (%s)", t.Kind, humanize.Bytes(uint64(t.Size)))
	}
}
