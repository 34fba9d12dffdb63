package parser

import (
	"ccfront/internal/ccerrors"
	"ccfront/internal/ir"
	"ccfront/internal/lexer"
	"ccfront/internal/symtab"
	"ccfront/internal/types"
)

// Expressions lower into the current block b and return the symbol naming
// the result. The precedence hierarchy, innermost to
// outermost: primary -> postfix -> unary -> cast -> multiplicative ->
// additive -> shift -> relational -> equality -> bitwise-AND ->
// bitwise-OR(+XOR) -> logical -> conditional -> assignment -> expression
// (sequencing, not implemented).

// expression is the outermost production (no comma operator).
func (p *Parser) expression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.assignmentExpression(b)
}

// constantExpression evaluates e into a throwaway block not wired into any
// function's CFG — array dimensions and file-scope initializers each need
// a constant expression evaluated at parse time, with no CFG home of
// their own.
func (p *Parser) constantExpression() (*symtab.Symbol, *ir.Block, *ccerrors.CompileError) {
	throwaway := ir.NewBlock(nil)
	sym, err := p.assignmentExpression(throwaway)
	return sym, throwaway, err
}

// assignmentExpression: l = r is right-associative by recursion; IR_ASSIGN
// is emitted with l as the expression's value. L-value checking is out of
// scope.
func (p *Parser) assignmentExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	left, err := p.conditionalExpression(b)
	if err != nil {
		return nil, err
	}
	if p.peek() == lexer.Kind("=") {
		p.readtoken()
		right, err := p.assignmentExpression(b)
		if err != nil {
			return nil, err
		}
		ir.Append(b, ir.Operation{Op: ir.Assign, A: left, B: right})
		return left, nil
	}
	return left, nil
}

// conditionalExpression (? :): parsed but not lowered into control flow —
// both branches are evaluated into the current block.
func (p *Parser) conditionalExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	cond, err := p.logicalOrExpression(b)
	if err != nil {
		return nil, err
	}
	if p.peek() == lexer.Kind("?") {
		p.readtoken()
		then, err := p.expression(b)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.Kind(":")); err != nil {
			return nil, err
		}
		els, err := p.conditionalExpression(b)
		if err != nil {
			return nil, err
		}
		_ = cond
		_ = then
		return els, nil
	}
	return cond, nil
}

// binaryLevel is the shared shape of every left-associative binary
// precedence level: parse the next-tighter level, then while an operator
// at this level is next, emit res = mktemp(combine(l,r)); (op, res, l, r);
// l = res.
func (p *Parser) binaryLevel(b *ir.Block, next func(*ir.Block) (*symtab.Symbol, *ccerrors.CompileError), ops map[lexer.Kind]ir.Op) (*symtab.Symbol, *ccerrors.CompileError) {
	left, err := next(b)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.peek()]
		if !ok {
			return left, nil
		}
		p.readtoken()
		right, err := next(b)
		if err != nil {
			return nil, err
		}
		res := p.syms.MkTemp(types.Combine(left.Type, right.Type))
		ir.Append(b, ir.Operation{Op: op, A: res, B: left, C: right})
		left = res
	}
}

func (p *Parser) logicalOrExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.binaryLevel(b, p.logicalAndExpression, map[lexer.Kind]ir.Op{
		lexer.KindLogicalOr: ir.LogicalOr,
	})
}

func (p *Parser) logicalAndExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.binaryLevel(b, p.bitwiseOrExpression, map[lexer.Kind]ir.Op{
		lexer.KindLogicalAnd: ir.LogicalAnd,
	})
}

func (p *Parser) bitwiseOrExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.binaryLevel(b, p.bitwiseAndExpression, map[lexer.Kind]ir.Op{
		lexer.Kind("|"): ir.BitwiseOr,
		lexer.Kind("^"): ir.BitwiseXor,
	})
}

func (p *Parser) bitwiseAndExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.binaryLevel(b, p.equalityExpression, map[lexer.Kind]ir.Op{
		lexer.Kind("&"): ir.BitwiseAnd,
	})
}

// equalityExpression, relationalExpression, shiftExpression: comparisons
// and shifts have no dedicated IR opcode in the fixed op set, so they
// pass through to the next tighter level unchanged rather than inventing
// opcodes the collaborator never sees.
func (p *Parser) equalityExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.relationalExpression(b)
}

func (p *Parser) relationalExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.shiftExpression(b)
}

func (p *Parser) shiftExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.additiveExpression(b)
}

func (p *Parser) additiveExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.binaryLevel(b, p.multiplicativeExpression, map[lexer.Kind]ir.Op{
		lexer.Kind("+"): ir.Add,
		lexer.Kind("-"): ir.Sub,
	})
}

func (p *Parser) multiplicativeExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.binaryLevel(b, p.castExpression, map[lexer.Kind]ir.Op{
		lexer.Kind("*"): ir.Mul,
		lexer.Kind("/"): ir.Div,
		lexer.Kind("%"): ir.Mod,
	})
}

// castExpression: explicit `( type-name ) cast-expression` disambiguation
// is not implemented — a parenthesized cast is indistinguishable here from
// a parenthesized sub-expression, so `(int)x` reaches `primaryExpression`
// as `( expr )`, where the `int` keyword token fails with a SyntaxError
// ("expected expression"). This function always passes straight through
// to unary.
func (p *Parser) castExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	return p.unaryExpression(b)
}

// unaryExpression: `*e` dereferences; `&e`, `!e`, `~e` parse and evaluate
// their operand but (no separate unary IR opcodes beyond IR_DEREF exist)
// fold through to the operand's lowering. `-e` folds through too, except
// that a negated integer immediate is constant-folded in place (rather
// than discarding the sign): array dimensions and file-scope initializers
// are constant expressions that must reduce to an INT64_T immediate
// symbol, and a `-` that silently dropped its sign would make
// `int a[-1];` pass the "length <= 0 is fatal" check it's meant to
// exercise.
func (p *Parser) unaryExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	switch p.peek() {
	case lexer.Kind("*"):
		p.readtoken()
		operand, err := p.castExpression(b)
		if err != nil {
			return nil, err
		}
		pointee, ok := types.Deref(operand.Type)
		if !ok {
			return nil, ccerrors.Type(p.line(), "dereference of non-pointer type")
		}
		res := p.syms.MkTemp(pointee)
		ir.Append(b, ir.Operation{Op: ir.Deref, A: res, B: operand})
		return res, nil
	case lexer.Kind("-"):
		p.readtoken()
		operand, err := p.castExpression(b)
		if err != nil {
			return nil, err
		}
		if operand.IsImmediate && operand.Type != nil && operand.Type.Kind == types.Int64T {
			return p.syms.MkImmediateLong(-operand.IntVal), nil
		}
		return operand, nil
	case lexer.Kind("&"), lexer.Kind("!"), lexer.Kind("~"):
		p.readtoken()
		return p.castExpression(b)
	default:
		return p.postfixExpression(b)
	}
}

// postfixExpression handles `a[i]` indexing. Calls `(...)` and member
// access `.` are grammar-present but semantics are deferred: they parse
// their operands and arguments but do not emit IR beyond evaluating
// them, since no call/struct-access opcode is in the fixed IR set.
func (p *Parser) postfixExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	root, err := p.primaryExpression(b)
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek() {
		case lexer.Kind("["):
			p.readtoken()
			idx, err := p.expression(b)
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.Kind("]")); err != nil {
				return nil, err
			}
			root, err = p.indexInto(b, root, idx)
			if err != nil {
				return nil, err
			}
		case lexer.Kind("("):
			p.readtoken()
			if p.peek() != lexer.Kind(")") {
				for {
					if _, err := p.expression(b); err != nil {
						return nil, err
					}
					if p.peek() == lexer.Kind(",") {
						p.readtoken()
						continue
					}
					break
				}
			}
			if _, err := p.consume(lexer.Kind(")")); err != nil {
				return nil, err
			}
			// call semantics deferred; value is the callee itself
		case lexer.Kind("."):
			p.readtoken()
			if _, err := p.consume(lexer.KindIdentifier); err != nil {
				return nil, err
			}
			// member-access semantics deferred
		default:
			return root, nil
		}
	}
}

// indexInto lowers one level of `a[i]`: t1 = i * sizeof(element(a)),
// t2 = a + t1. If the element type is still Array, t2 (a fresh temporary)
// takes the dereferenced type and is returned as the new root
// (array-of-array decays one rank, no load); the root symbol's own type is
// left unchanged. Otherwise a fresh temporary of the pointee type is produced
// via IR_DEREF. The root may be a declared Pointer or a declared Array
// (Deref below accepts both — a real array indexed directly must decay
// the same as a pointer would, or a plain `int a[3]; a[1]` could never
// be indexed at all).
func (p *Parser) indexInto(b *ir.Block, root, idx *symtab.Symbol) (*symtab.Symbol, *ccerrors.CompileError) {
	elem, ok := types.Deref(root.Type)
	if !ok {
		return nil, ccerrors.Type(p.line(), "subscript of non-pointer, non-array type")
	}

	size := p.syms.MkImmediateLong(elem.Size)
	offset := p.syms.MkTemp(types.Init(types.Int64T))
	ir.Append(b, ir.Operation{Op: ir.Mul, A: offset, B: idx, C: size})

	addr := p.syms.MkTemp(root.Type)
	ir.Append(b, ir.Operation{Op: ir.Add, A: addr, B: root, C: offset})

	if elem.Kind == types.Array {
		// addr is a fresh temp (just minted above); rewriting its type in
		// place is safe — it hasn't been observed anywhere else yet.
		addr.Type = elem
		return addr, nil
	}

	result := p.syms.MkTemp(elem)
	ir.Append(b, ir.Operation{Op: ir.Deref, A: result, B: addr})
	return result, nil
}

// primaryExpression: IDENTIFIER -> symbol lookup (fatal if undefined),
// INTEGER -> sym_mkimmediate, `( expr )` -> inner result.
func (p *Parser) primaryExpression(b *ir.Block) (*symtab.Symbol, *ccerrors.CompileError) {
	tok := p.peekToken()
	switch tok.Kind {
	case lexer.KindIdentifier:
		p.readtoken()
		sym := p.syms.Lookup(tok.Lexeme)
		if sym == nil {
			return nil, ccerrors.Name(tok.Line, "use of undeclared identifier %q", tok.Text())
		}
		return sym, nil
	case lexer.KindInteger:
		p.readtoken()
		sym, err := p.syms.MkImmediate(types.Int64T, tok.Lexeme, tok.Line)
		if err != nil {
			return nil, err
		}
		return sym, nil
	case lexer.KindString:
		p.readtoken()
		sym := p.syms.MkTemp(types.NewPointer(types.Init(types.CharT)))
		sym.IsImmediate = true
		sym.StrVal = tok.Lexeme
		return sym, nil
	case lexer.Kind("("):
		p.readtoken()
		inner, err := p.expression(b)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.Kind(")")); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, ccerrors.Syntax(tok.Line, "expected expression, got %s %q", tok.Kind, tok.Text())
	}
}
