package parser

import (
	"ccfront/internal/ccerrors"
	"ccfront/internal/lexer"
	"ccfront/internal/types"
)

// declSpecifiers is the result of declarationSpecifiers: a base type plus
// the qualifier flags accumulated across the specifier run.
type declSpecifiers struct {
	base  *types.Node
	flags types.Qualifier
}

// declarationSpecifiers consumes a run of type-specifier, qualifier, and
// storage-class keywords. Storage class keywords are accepted and
// discarded. A missing type specifier is fatal (ShapeError).
func (p *Parser) declarationSpecifiers() (declSpecifiers, *ccerrors.CompileError) {
	var (
		haveChar, haveInt, haveDouble, haveVoid bool
		flags                                   types.Qualifier
	)
	line := p.line()
	for {
		switch p.peek() {
		case lexer.KindAuto, lexer.KindRegister, lexer.KindStatic, lexer.KindExtern, lexer.KindTypedef:
			p.readtoken() // storage class: accepted, discarded
		case lexer.KindConst:
			p.readtoken()
			flags |= types.ConstQ
		case lexer.KindVolatile:
			p.readtoken()
			flags |= types.VolatileQ
		case lexer.KindChar:
			p.readtoken()
			haveChar = true
		case lexer.KindShort, lexer.KindInt, lexer.KindLong, lexer.KindSigned, lexer.KindUnsigned:
			p.readtoken()
			haveInt = true
		case lexer.KindFloat, lexer.KindDouble:
			p.readtoken()
			haveDouble = true
		case lexer.KindVoid:
			p.readtoken()
			haveVoid = true
		default:
			goto done
		}
	}
done:
	var kind types.Kind
	switch {
	case haveChar:
		kind = types.CharT
	case haveDouble:
		kind = types.DoubleT
	case haveInt:
		kind = types.Int64T
	case haveVoid:
		kind = types.VoidT
	default:
		return declSpecifiers{}, ccerrors.Shape(line, "missing type specifier")
	}
	base := types.Init(kind)
	base.Flags = flags
	return declSpecifiers{base: base, flags: flags}, nil
}

// hole is a unique per-call placeholder node used while resolving a
// parenthesized sub-declarator (see directDeclarator below): its type
// chain is built against the hole, then the hole is substituted for the
// real suffixed base once it's known. This is the classic technique for
// declarators whose parenthesization reorders pointer/array precedence
// (e.g. `int (*x)[3]`, pointer to array, vs `int *x[3]`, array of pointer).
func newHole() *types.Node {
	return &types.Node{Kind: types.Kind(-1)}
}

// substituteHole returns a copy of t with every occurrence of hole in its
// Next chain replaced by real. Type nodes are otherwise treated as
// immutable once exposed to the parser's caller; this walk only ever
// touches nodes built moments earlier inside one declarator.
func substituteHole(t, hole, real *types.Node) *types.Node {
	if t == hole {
		return real
	}
	if t == nil || t.Next == nil {
		return t
	}
	cp := *t
	cp.Next = substituteHole(t.Next, hole, real)
	return &cp
}

// declarator peels '*' tokens left-to-right, each wrapping base in a fresh
// Pointer node. A pointer consumes any trailing CONST/VOLATILE qualifiers
// into its own flags, then delegates to directDeclarator.
func (p *Parser) declarator(base *types.Node) (*string, *types.Node, *ccerrors.CompileError) {
	for p.peek() == lexer.Kind("*") {
		p.readtoken()
		ptr := types.NewPointer(base)
		for {
			switch p.peek() {
			case lexer.KindConst:
				p.readtoken()
				ptr.Flags |= types.ConstQ
			case lexer.KindVolatile:
				p.readtoken()
				ptr.Flags |= types.VolatileQ
			default:
				goto nextStar
			}
		}
	nextStar:
		base = ptr
	}
	return p.directDeclarator(base)
}

// directDeclarator handles an IDENTIFIER or a parenthesized sub-declarator,
// then iterates [] and () suffixes.
func (p *Parser) directDeclarator(base *types.Node) (*string, *types.Node, *ccerrors.CompileError) {
	var (
		name        *string
		hole, inner *types.Node
	)

	switch p.peek() {
	case lexer.KindIdentifier:
		tok := p.readtoken()
		name = tok.Lexeme
	case lexer.Kind("("):
		p.readtoken()
		hole = newHole()
		n, innerType, err := p.declarator(hole)
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.consume(lexer.Kind(")")); err != nil {
			return nil, nil, err
		}
		name = n
		inner = innerType
	default:
		// No identifier and no grouping paren: an abstract declarator.
		// Only valid where a name may legitimately be absent — a
		// parameter-list prototype entry, where parameter names may be
		// null. The caller (parameterList) is the only place that
		// accepts a nil name; functionDefinition rejects it. Anything
		// else that isn't a valid declarator terminator is still a
		// syntax error.
		switch p.peek() {
		case lexer.Kind(","), lexer.Kind(")"), lexer.Kind("["):
			// leave name nil, fall through to suffix handling below.
		default:
			tok := p.peekToken()
			return nil, nil, ccerrors.Syntax(tok.Line, "expected identifier or '(' in declarator, got %q", tok.Text())
		}
	}

	suffixed, err := p.declaratorSuffixes(base)
	if err != nil {
		return nil, nil, err
	}

	if hole != nil {
		return name, substituteHole(inner, hole, suffixed), nil
	}
	return name, suffixed, nil
}

// declaratorSuffixes iterates consecutive [] and () suffixes applied to
// base, left to right.
func (p *Parser) declaratorSuffixes(base *types.Node) (*types.Node, *ccerrors.CompileError) {
	for {
		switch p.peek() {
		case lexer.Kind("["):
			t, err := p.arraySuffix(base)
			if err != nil {
				return nil, err
			}
			base = t
		case lexer.Kind("("):
			p.readtoken()
			fn, err := p.parameterList(base)
			if err != nil {
				return nil, err
			}
			base = fn
			if _, err := p.consume(lexer.Kind(")")); err != nil {
				return nil, err
			}
		default:
			return base, nil
		}
	}
}

// arraySuffix recursively consumes all consecutive []  groups, then unwinds,
// wrapping base types outside-in so that T x[a][b] yields
// ARRAY(a, ARRAY(b, T)).
func (p *Parser) arraySuffix(base *types.Node) (*types.Node, *ccerrors.CompileError) {
	if _, err := p.consume(lexer.Kind("[")); err != nil {
		return nil, err
	}

	var length int64 = 0
	if p.peek() != lexer.Kind("]") {
		sym, _, err := p.constantExpression()
		if err != nil {
			return nil, err
		}
		if sym.Type == nil || sym.Type.Kind != types.Int64T || !sym.IsImmediate {
			return nil, ccerrors.Constant(p.line(), "array dimension must be a compile-time integer constant")
		}
		length = sym.IntVal
		if length <= 0 {
			return nil, ccerrors.Constant(p.line(), "array dimension must be > 0, got %d", length)
		}
	}
	if _, err := p.consume(lexer.Kind("]")); err != nil {
		return nil, err
	}

	var inner *types.Node
	if p.peek() == lexer.Kind("[") {
		t, err := p.arraySuffix(base)
		if err != nil {
			return nil, err
		}
		inner = t
	} else {
		inner = base
	}
	return types.NewArray(length, inner), nil
}

// parameterList builds a Function node whose Next is the return type base.
// Parameters are (type, name) pairs; a trailing ", ..." records a variadic
// marker. An empty parameter list is allowed; a trailing comma before ')'
// is fatal.
func (p *Parser) parameterList(base *types.Node) (*types.Node, *ccerrors.CompileError) {
	var (
		args     []*types.Node
		params   []*string
		variadic bool
	)

	if p.peek() == lexer.Kind(")") {
		return types.NewFunction(base, args, params, variadic), nil
	}

	for {
		if p.peek() == lexer.KindDots {
			p.readtoken()
			variadic = true
			if p.peek() == lexer.Kind(",") {
				return nil, ccerrors.Shape(p.line(), "trailing comma after '...' in parameter list")
			}
			break
		}

		spec, err := p.declarationSpecifiers()
		if err != nil {
			return nil, err
		}
		name, typ, err := p.declarator(spec.base)
		if err != nil {
			return nil, err
		}
		args = append(args, typ)
		params = append(params, name)

		if p.peek() == lexer.Kind(",") {
			p.readtoken()
			if p.peek() == lexer.Kind(")") {
				return nil, ccerrors.Shape(p.line(), "trailing comma in parameter list")
			}
			continue
		}
		break
	}

	return types.NewFunction(base, args, params, variadic), nil
}
