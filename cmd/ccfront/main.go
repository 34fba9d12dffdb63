// Command ccfront is the CLI entry point: a single compile() call that
// reads until EOF from the lexer and writes textual IR to standard output,
// flag-free in its core contract. The ambient CLI shape (hand-rolled
// os.Args parsing, no flag framework) keeps the entry point a thin wrapper
// around the library packages.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"ccfront/internal/ccerrors"
	"ccfront/internal/emit/llvmir"
	"ccfront/internal/emit/textir"
	"ccfront/internal/intern"
	"ccfront/internal/lexer"
	"ccfront/internal/parser"
	"ccfront/internal/symtab"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		input     io.Reader = os.Stdin
		out                 = os.Stdout
		emitKind            = "ir"
		dumpTypes           = false
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version", "-v":
			fmt.Println("ccfront " + version)
			return 0
		case "-dump-types":
			dumpTypes = true
		case "-emit":
			i++
			if i < len(args) {
				emitKind = args[i]
			}
		case "-o":
			i++
			if i < len(args) {
				f, err := os.Create(args[i])
				if err != nil {
					reportIOError(err)
					return 1
				}
				defer f.Close()
				out = f
			}
		default:
			f, err := os.Open(args[i])
			if err != nil {
				reportIOError(err)
				return 1
			}
			defer f.Close()
			input = f
		}
	}

	src, err := io.ReadAll(input)
	if err != nil {
		reportIOError(err)
		return 1
	}

	interns := intern.New()
	scan := lexer.New(string(src), interns)
	syms := symtab.New()

	var emitter parser.Emitter
	switch emitKind {
	case "llvm":
		emitter = llvmir.New(out)
	default:
		emitter = textir.New(out)
	}

	p := parser.New(scan, syms, emitter)
	if cerr := p.Compile(); cerr != nil {
		reportCompileError(cerr)
		return 1
	}
	if dumpTypes {
		textir.DumpTypes(out, syms.FileScopeSymbols())
	}
	return 0
}

func reportCompileError(err *ccerrors.CompileError) {
	prefix := err.Kind
	if isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "\x1b[31m%s\x1b[0m: %s (line %d)\n", prefix, err.Message, err.Line)
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func reportIOError(err error) {
	fmt.Fprintf(os.Stderr, "ccfront: %v\n", err)
}
