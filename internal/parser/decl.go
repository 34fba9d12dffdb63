package parser

import (
	"ccfront/internal/ccerrors"
	"ccfront/internal/ir"
	"ccfront/internal/lexer"
	"ccfront/internal/types"
)

// Compile pushes file scope, then repeatedly calls declaration until the
// token stream reports EOF after a peek, handing any produced function to
// the Emitter.
func (p *Parser) Compile() *ccerrors.CompileError {
	p.syms.PushScope()
	for !p.isAtEnd() {
		fn, err := p.declaration(nil)
		if err != nil {
			return err
		}
		if fn != nil {
			p.out.OutputBlock(fn)
		}
	}
	return nil
}

// declaration parses declaration-specifiers then one or more declarators,
// dispatching on what follows each declarator. It returns a non-nil
// *ir.Func only when the declarator introduced a function
// definition. cur is the enclosing statement's current block, used to
// lower a non-file-scope initializer's IR; it is nil at file scope, where
// there is no enclosing CFG and initializers must be constant expressions.
func (p *Parser) declaration(cur *ir.Block) (*ir.Func, *ccerrors.CompileError) {
	spec, err := p.declarationSpecifiers()
	if err != nil {
		return nil, err
	}

	for {
		name, typ, err := p.declarator(spec.base)
		if err != nil {
			return nil, err
		}
		if name == nil {
			return nil, ccerrors.Syntax(p.line(), "expected identifier in declarator")
		}

		switch p.peek() {
		case lexer.Kind(";"):
			p.readtoken()
			p.syms.Add(name, typ)
			return nil, nil

		case lexer.Kind("="):
			p.readtoken()
			sym := p.syms.Add(name, typ)
			// File-scope initializers must be constant expressions; the
			// decoded value isn't retained on the symbol — only the
			// constant-ness is checked here.
			if p.syms.Depth() == 0 {
				val, _, err := p.constantExpression()
				if err != nil {
					return nil, err
				}
				if !val.IsImmediate {
					return nil, ccerrors.Constant(p.line(), "file-scope initializer must be a constant expression")
				}
			} else {
				val, err := p.assignmentExpression(cur)
				if err != nil {
					return nil, err
				}
				ir.Append(cur, ir.Operation{Op: ir.Assign, A: sym, B: val})
			}
			if p.peek() == lexer.Kind(",") {
				p.readtoken()
				continue
			}
			if _, err := p.consume(lexer.Kind(";")); err != nil {
				return nil, err
			}
			return nil, nil

		case lexer.Kind("{"):
			fn, err := p.functionDefinition(name, typ)
			if err != nil {
				return nil, err
			}
			return fn, nil

		case lexer.Kind(","):
			p.syms.Add(name, typ)
			p.readtoken()
			continue

		default:
			tok := p.peekToken()
			return nil, ccerrors.Syntax(tok.Line, "unexpected token %q after declarator", tok.Text())
		}
	}
}

// functionDefinition lowers `{ ... }` following a FUNCTION declarator. Only
// valid when the declarator yielded a Function type and the symbol sits at
// depth 0 (no nested functions).
func (p *Parser) functionDefinition(name *string, typ *types.Node) (*ir.Func, *ccerrors.CompileError) {
	if typ.Kind != types.Function {
		return nil, ccerrors.Shape(p.line(), "function body follows a non-function declarator")
	}
	if p.syms.Depth() != 0 {
		return nil, ccerrors.Shape(p.line(), "nested function definitions are not supported")
	}

	sym := p.syms.Add(name, typ)

	entry := ir.NewBlock(name)
	fn := ir.NewFunc(name, entry)
	p.curFunc = fn
	defer func() { p.curFunc = nil }()

	p.syms.PushScope()
	for i, argType := range typ.Args {
		pname := typ.Params[i]
		if pname == nil {
			p.syms.PopScope()
			return nil, ccerrors.Shape(p.line(), "parameter name required in function definition")
		}
		p.syms.Add(pname, argType)
	}

	_, err := p.block(entry)
	p.syms.PopScope()
	if err != nil {
		return nil, err
	}

	_ = sym
	return fn, nil
}
