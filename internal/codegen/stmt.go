package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// emitBlock emits every statement of b in source order into fg's current
// block, per the "within a module, statement emission follows source
// order" ordering guarantee (§5).
func emitBlock(fg *funcGen, b *ast.Block) {
	for _, s := range b.Stmts {
		if fg.cur == nil || fg.cur.Term != nil {
			return // control already left the block (e.g. after a return)
		}
		emitStmt(fg, s)
	}
}

func emitStmt(fg *funcGen, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		emitBlock(fg, n)
	case *ast.ExprStmt:
		lowerExpr(fg, n.X)
	case *ast.ReturnStmt:
		emitReturn(fg, n)
	case *ast.IfStmt:
		emitIf(fg, n)
	case *ast.ForStmt:
		emitFor(fg, n)
	case *ast.VarDecl:
		emitLocalVarDecl(fg, n)
	default:
		fg.ctx.Diag.Reportf(diag.StageCodegen, "unsupported statement %T", s)
	}
}

// emitLocalVarDecl allocates stack storage for a local `let`/`const`
// binding and stores its initializer, if any.
func emitLocalVarDecl(fg *funcGen, v *ast.VarDecl) {
	var elemType = irTypeOf(fg.ctx, v.Type)
	var init ir.Value
	if v.Initializer != nil {
		init = lowerExpr(fg, v.Initializer)
		if v.Type == nil {
			elemType = init.Type()
		}
	}
	alloca := fg.cur.NewAlloca(elemType)
	if init != nil {
		init = convertTo(fg, init, elemType)
		fg.cur.NewStore(init, alloca)
	}
	ptrElem := elemType
	fg.locals[v.Name] = &LLVMSymbol{Name: v.Name, Value: alloca, Type: alloca.Type(), ElementType: ptrElem}
}

func emitReturn(fg *funcGen, r *ast.ReturnStmt) {
	if r.Value == nil {
		fg.cur.NewRet(nil)
		return
	}
	val := lowerExpr(fg, r.Value)
	retType := fg.f.Sig.RetType
	fg.cur.NewRet(convertTo(fg, val, retType))
}

func emitIf(fg *funcGen, s *ast.IfStmt) {
	cond := lowerExpr(fg, s.Cond)
	cond = toBool(fg, cond)

	thenBlock := fg.f.NewBlock("")
	followBlock := fg.f.NewBlock("")
	elseBlock := followBlock
	if s.Else != nil {
		elseBlock = fg.f.NewBlock("")
	}
	fg.cur.NewCondBr(cond, thenBlock, elseBlock)

	fg.cur = thenBlock
	emitStmt(fg, s.Then)
	if fg.cur.Term == nil {
		fg.cur.NewBr(followBlock)
	}

	if s.Else != nil {
		fg.cur = elseBlock
		emitStmt(fg, s.Else)
		if fg.cur.Term == nil {
			fg.cur.NewBr(followBlock)
		}
	}

	fg.cur = followBlock
}

func emitFor(fg *funcGen, s *ast.ForStmt) {
	if s.Init != nil {
		emitStmt(fg, s.Init)
	}
	condBlock := fg.f.NewBlock("")
	bodyBlock := fg.f.NewBlock("")
	followBlock := fg.f.NewBlock("")

	fg.cur.NewBr(condBlock)
	fg.cur = condBlock
	if s.Cond != nil {
		cond := toBool(fg, lowerExpr(fg, s.Cond))
		fg.cur.NewCondBr(cond, bodyBlock, followBlock)
	} else {
		fg.cur.NewBr(bodyBlock)
	}

	fg.cur = bodyBlock
	emitStmt(fg, s.Body)
	if fg.cur.Term == nil {
		if s.Post != nil {
			emitStmt(fg, s.Post)
		}
		fg.cur.NewBr(condBlock)
	}

	fg.cur = followBlock
}

// toBool coerces an integer value to i1 for use as a branch condition.
func toBool(fg *funcGen, v ir.Value) ir.Value {
	if v.Type() == fg.ctx.Common.I1 {
		return v
	}
	if it, ok := v.Type().(*types.IntType); ok {
		return fg.cur.NewICmp(enum.IPredNE, v, constant.NewInt(it, 0))
	}
	ft := v.Type().(*types.FloatType)
	return fg.cur.NewFCmp(enum.FPredONE, v, constant.NewFloat(ft, 0))
}
