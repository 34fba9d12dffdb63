package textir_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ccfront/internal/emit/textir"
	"ccfront/internal/intern"
	"ccfront/internal/ir"
	"ccfront/internal/lexer"
	"ccfront/internal/parser"
	"ccfront/internal/symtab"
	"ccfront/internal/types"
)

type capture struct{ fn *ir.Func }

func (c *capture) OutputBlock(fn *ir.Func) { c.fn = fn }

func compileOne(t *testing.T, src string) *ir.Func {
	t.Helper()
	scan := lexer.New(src, intern.New())
	syms := symtab.New()
	rec := &capture{}
	p := parser.New(scan, syms, rec)
	err := p.Compile()
	require.Nil(t, err)
	require.NotNil(t, rec.fn)
	return rec.fn
}

func TestOutputBlockPrintsLabelAndOps(t *testing.T) {
	fn := compileOne(t, "int foo(int a, int b) { a = a + b; return a; }")

	var buf bytes.Buffer
	textir.New(&buf).OutputBlock(fn)
	out := buf.String()

	require.Contains(t, out, "function foo:")
	require.Contains(t, out, "+")
	require.Contains(t, out, "=")
	require.True(t, strings.HasSuffix(out, "\n\n"), "a blank line separates emitted functions")
}

func TestOutputBlockNotesPrunedOrphans(t *testing.T) {
	fn := compileOne(t, "int f() { if (1) { return 2; } else { return 3; } }")

	var buf bytes.Buffer
	textir.New(&buf).OutputBlock(fn)
	out := buf.String()

	require.Contains(t, out, "orphan block")
}

func TestDumpTypesHumanizesSizes(t *testing.T) {
	sym := &symtab.Symbol{}
	name := "x"
	sym.Name = &name
	sym.Type = types.NewArray(3, types.NewArray(2, types.Init(types.Int64T)))

	var buf bytes.Buffer
	textir.DumpTypes(&buf, []*symtab.Symbol{sym})
	out := buf.String()

	require.Contains(t, out, "x:")
	require.Contains(t, out, "array[3]")
	require.Contains(t, out, "B")
}
