// Package ir is the basic-block/IR builder: block allocation, linear
// three-address operations, and branch edges. The parser sets jumps
// directly — there is no higher-level "branch" API.
package ir

import (
	"ccfront/internal/symtab"

	"github.com/google/uuid"
)

// Op is the fixed three-address opcode set.
type Op int

const (
	Assign Op = iota
	Deref
	LogicalAnd
	LogicalOr
	BitwiseOr
	BitwiseXor
	BitwiseAnd
	Add
	Sub
	Mul
	Div
	Mod
)

func (o Op) String() string {
	switch o {
	case Assign:
		return "="
	case Deref:
		return "*"
	case LogicalAnd:
		return "&&"
	case LogicalOr:
		return "||"
	case BitwiseOr:
		return "|"
	case BitwiseXor:
		return "^"
	case BitwiseAnd:
		return "&"
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	default:
		return "?"
	}
}

// Operation is the fixed (op, a, b, c) record. IR_ASSIGN uses (A <- B);
// IR_DEREF uses (A <- *B); binary ops use (A <- B op C), with C unused
// (nil) for Assign and Deref.
type Operation struct {
	Op Op
	A  *symtab.Symbol
	B  *symtab.Symbol
	C  *symtab.Symbol
}

// Block is a basic block: an optional label (present only for blocks that
// begin a function), a linear op sequence, an optional condition/return
// expr, and up to two outgoing jump edges.
//
//   - both Jump nil: terminal (orphan, or a function's final return).
//   - Jump[0] set, Jump[1] nil: unconditional branch to Jump[0].
//   - both set: conditional on Expr — zero goes to Jump[0], non-zero to Jump[1].
type Block struct {
	Label *string
	Ops   []Operation
	Expr  *symtab.Symbol
	Jump  [2]*Block

	DebugID uuid.UUID
}

// NewBlock allocates a block with an empty op list and no jumps.
func NewBlock(label *string) *Block {
	return &Block{Label: label, DebugID: uuid.New()}
}

// Append pushes op onto block's tail.
func Append(b *Block, op Operation) {
	b.Ops = append(b.Ops, op)
}

// Func owns every block allocated while lowering one function definition —
// an arena, so a later pass (Prune) can enumerate every block ever created,
// reachable or not, without walking Go's GC graph.
type Func struct {
	Name  *string
	Entry *Block
	arena []*Block
}

func NewFunc(name *string, entry *Block) *Func {
	return &Func{Name: name, Entry: entry, arena: []*Block{entry}}
}

// Track records a block as belonging to this function's arena. The parser
// calls this for every block it allocates while lowering the function
// (entry included, done by NewFunc).
func (f *Func) Track(b *Block) { f.arena = append(f.arena, b) }

// Blocks returns every block ever allocated for this function, reachable or
// not.
func (f *Func) Blocks() []*Block { return f.arena }

// Reachable walks the jump graph from entry and returns the blocks found,
// in visitation order (entry first).
func Reachable(entry *Block) []*Block {
	seen := map[*Block]bool{}
	var order []*Block
	var walk func(b *Block)
	walk = func(b *Block) {
		if b == nil || seen[b] {
			return
		}
		seen[b] = true
		order = append(order, b)
		walk(b.Jump[0])
		walk(b.Jump[1])
	}
	walk(entry)
	return order
}

// Prune returns the blocks in f's arena that are not reachable from the
// function's entry. It does not mutate the graph; callers that want the
// orphans gone simply skip them when emitting.
func Prune(f *Func) []*Block {
	reach := map[*Block]bool{}
	for _, b := range Reachable(f.Entry) {
		reach[b] = true
	}
	var dropped []*Block
	for _, b := range f.arena {
		if !reach[b] {
			dropped = append(dropped, b)
		}
	}
	return dropped
}
