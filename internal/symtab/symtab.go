// Package symtab is the scoped symbol table: nested scopes, unique
// identifiers, temporary generation, and immediate constants.
//
// Symbols are identified by pointer identity and live in a
// translation-unit-level arena for as long as the compile runs; popping a
// scope only removes lookup visibility from the per-frame htab.Table,
// never the arena entries — the same scope-vs-storage split a NaN-boxed
// register VM uses to separate a Value's tag from the heap-allocated
// Object it may point to.
package symtab

import (
	"strconv"

	"github.com/google/uuid"

	"ccfront/internal/ccerrors"
	"ccfront/internal/htab"
	"ccfront/internal/types"
)

// Symbol is one record: name (nullable, for temporaries), type, the scope
// depth it was bound at, and immediate-constant payload if any.
type Symbol struct {
	Name        *string
	Type        *types.Node
	Depth       int
	IsImmediate bool

	// Immediate payload (only meaningful when IsImmediate).
	IntVal int64
	StrVal *string

	// DebugID is a stable label for diagnostics/emitters; it is NOT the
	// identity a Symbol is compared by — that remains the *Symbol pointer
	// itself.
	DebugID uuid.UUID
}

// frame is one scope's lookup bindings.
type frame struct {
	bindings *htab.Table[*string, *Symbol]
}

// Table is the scoped symbol table. Depth 0 is file scope.
type Table struct {
	frames []*frame
	arena  []*Symbol // every symbol ever created, for translation-unit lifetime
}

func New() *Table {
	t := &Table{}
	return t
}

// Depth returns the current scope depth (0 = file scope, or -1 if no scope
// has been pushed yet).
func (t *Table) Depth() int { return len(t.frames) - 1 }

// PushScope appends a new, empty scope frame.
func (t *Table) PushScope() {
	t.frames = append(t.frames, &frame{
		bindings: htab.New[*string, *Symbol](htab.HashString),
	})
}

// PopScope removes the top frame's lookup bindings. Symbol records created
// within it remain addressable via any IR operation that already
// references them.
func (t *Table) PopScope() {
	if len(t.frames) == 0 {
		return
	}
	t.frames = t.frames[:len(t.frames)-1]
}

func (t *Table) newSymbol(name *string, typ *types.Node) *Symbol {
	s := &Symbol{Name: name, Type: typ, Depth: t.Depth(), DebugID: uuid.New()}
	t.arena = append(t.arena, s)
	return s
}

// Add binds name at the current depth. If name is already bound at the
// current depth, the existing binding is returned (redeclaration of the
// same object); if bound only at an outer depth, it is shadowed.
func (t *Table) Add(name *string, typ *types.Node) *Symbol {
	cur := t.frames[len(t.frames)-1]
	if existing, ok := cur.bindings.Lookup(name); ok {
		return existing
	}
	s := t.newSymbol(name, typ)
	cur.bindings.Insert(name, s)
	return s
}

// Lookup searches innermost-first; nil if nothing matches.
func (t *Table) Lookup(name *string) *Symbol {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if s, ok := t.frames[i].bindings.Lookup(name); ok {
			return s
		}
	}
	return nil
}

// FileScopeSymbols returns every named symbol bound at file scope (depth
// 0), in creation order. File scope is never popped over the life of a
// compile, so this is simply every arena entry at that depth.
func (t *Table) FileScopeSymbols() []*Symbol {
	var out []*Symbol
	for _, s := range t.arena {
		if s.Depth == 0 && s.Name != nil {
			out = append(out, s)
		}
	}
	return out
}

// MkTemp allocates a nameless symbol; it never appears in lookup.
func (t *Table) MkTemp(typ *types.Node) *Symbol {
	return t.newSymbol(nil, typ)
}

// MkImmediate builds a scalar immediate from a textual literal.
// types.Int64T decodes the decimal text into IntVal; types.CharT takes the
// lexeme's first byte as IntVal; any other kind keeps the lexeme in StrVal
// and carries no decoded value.
func (t *Table) MkImmediate(kind types.Kind, lexeme *string, line int) (*Symbol, *ccerrors.CompileError) {
	typ := types.Init(kind)
	s := t.newSymbol(nil, typ)
	s.IsImmediate = true
	switch kind {
	case types.Int64T:
		v, err := strconv.ParseInt(lexeme2(lexeme), 10, 64)
		if err != nil {
			return nil, ccerrors.Constant(line, "invalid integer literal %q", lexeme2(lexeme))
		}
		s.IntVal = v
	case types.CharT:
		// a single-character immediate; decode its first byte
		txt := lexeme2(lexeme)
		if len(txt) > 0 {
			s.IntVal = int64(txt[0])
		}
	default:
		s.StrVal = lexeme
	}
	return s, nil
}

// MkImmediateLong builds an Int64T immediate from a native value — used by
// the parser when it synthesizes a constant (e.g. sizeof results) rather
// than decoding one from token text.
func (t *Table) MkImmediateLong(v int64) *Symbol {
	s := t.newSymbol(nil, types.Init(types.Int64T))
	s.IsImmediate = true
	s.IntVal = v
	return s
}

func lexeme2(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
