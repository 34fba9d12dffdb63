// Package llvmir is a second output_block collaborator that lowers the
// same CFG textir prints into real LLVM textual IR using
// github.com/llir/llvm. A CFG of three-address IR ops is exactly what
// that library exists to consume, so this is a genuine second backend
// rather than a novelty wrapper.
//
// Simplification: every symbol (named or temporary) is modeled as an i64
// alloca slot, following the standard "-O0"-style unoptimized lowering
// (load before use, store on assign) that leaves register promotion to a
// later mem2reg-style pass — ccfront has no optimizer and does not
// attempt SSA construction itself.
package llvmir

import (
	"fmt"
	"io"

	lir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	lirtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	cir "ccfront/internal/ir"
	"ccfront/internal/symtab"
)

// Emitter implements parser.Emitter.
type Emitter struct {
	w io.Writer
}

func New(w io.Writer) *Emitter {
	return &Emitter{w: w}
}

func (e *Emitter) OutputBlock(fn *cir.Func) {
	m := lir.NewModule()

	name := "anon"
	if fn.Name != nil {
		name = *fn.Name
	}
	f := m.NewFunc(name, lirtypes.I64)

	reach := cir.Reachable(fn.Entry)
	blockNames := make(map[*cir.Block]string, len(reach))
	lblocks := make(map[*cir.Block]*lir.Block, len(reach))
	for i, b := range reach {
		bn := fmt.Sprintf("bb%d", i)
		if b.Label != nil {
			bn = *b.Label
		}
		blockNames[b] = bn
		lblocks[b] = f.NewBlock(bn)
	}

	slots := map[*symtab.Symbol]value.Value{}
	entryBB := lblocks[fn.Entry]
	slotFor := func(s *symtab.Symbol) value.Value {
		if v, ok := slots[s]; ok {
			return v
		}
		a := entryBB.NewAlloca(lirtypes.I64)
		slots[s] = a
		return a
	}

	operand := func(lb *lir.Block, s *symtab.Symbol) value.Value {
		if s == nil {
			return constant.NewInt(lirtypes.I64, 0)
		}
		if s.IsImmediate && s.StrVal == nil {
			return constant.NewInt(lirtypes.I64, s.IntVal)
		}
		return lb.NewLoad(lirtypes.I64, slotFor(s))
	}

	for _, b := range reach {
		lb := lblocks[b]
		for _, op := range b.Ops {
			var result value.Value
			switch op.Op {
			case cir.Assign:
				result = operand(lb, op.B)
			case cir.Deref:
				result = operand(lb, op.B) // pointer dereference modeled as a plain load
			case cir.Add:
				result = lb.NewAdd(operand(lb, op.B), operand(lb, op.C))
			case cir.Sub:
				result = lb.NewSub(operand(lb, op.B), operand(lb, op.C))
			case cir.Mul:
				result = lb.NewMul(operand(lb, op.B), operand(lb, op.C))
			case cir.Div:
				result = lb.NewSDiv(operand(lb, op.B), operand(lb, op.C))
			case cir.Mod:
				result = lb.NewSRem(operand(lb, op.B), operand(lb, op.C))
			case cir.BitwiseAnd, cir.LogicalAnd:
				result = lb.NewAnd(operand(lb, op.B), operand(lb, op.C))
			case cir.BitwiseOr, cir.LogicalOr:
				result = lb.NewOr(operand(lb, op.B), operand(lb, op.C))
			case cir.BitwiseXor:
				result = lb.NewXor(operand(lb, op.B), operand(lb, op.C))
			}
			if result != nil {
				lb.NewStore(result, slotFor(op.A))
			}
		}

		switch {
		case b.Jump[0] == nil && b.Jump[1] == nil:
			if b.Expr != nil {
				lb.NewRet(operand(lb, b.Expr))
			} else {
				lb.NewRet(constant.NewInt(lirtypes.I64, 0))
			}
		case b.Jump[1] == nil:
			lb.NewBr(lblocks[b.Jump[0]])
		default:
			cond := operand(lb, b.Expr)
			lb.NewCondBr(cond, lblocks[b.Jump[1]], lblocks[b.Jump[0]])
		}
	}

	fmt.Fprintln(e.w, m.String())
}
