package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// lowerDerefUse lowers `*expr` as a read: evaluate the pointer, then load
// through it using the element_type tracked for the operand (§4.5, §9).
func lowerDerefUse(fg *funcGen, d *ast.Deref) ir.Value {
	ptr, elemType := lowerLValuePointer(fg, d.Operand)
	if elemType == nil {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "cannot infer pointee type for dereference")
		elemType = fg.ctx.Common.I64
	}
	return fg.cur.NewLoad(elemType, ptr)
}

// lowerAddr lowers `&expr`: the address of an lvalue, without loading.
func lowerAddr(fg *funcGen, a *ast.Addr) ir.Value {
	return lowerAddrOf(fg, a.Operand)
}

// lowerAddrOf returns the address of an lvalue expression (identifier,
// member, index, or deref) without producing a load.
func lowerAddrOf(fg *funcGen, e ast.Expr) ir.Value {
	switch n := e.(type) {
	case *ast.Identifier:
		sym := fg.lookupSymbol(n.Name)
		if sym == nil {
			fg.ctx.Diag.Reportf(diag.StageCodegen, "undefined symbol %q", n.Name)
			return fg.cur.NewAlloca(fg.ctx.Common.I64)
		}
		return sym.Value
	case *ast.Member:
		return fieldAddr(fg, n)
	case *ast.Index:
		return indexAddr(fg, n)
	case *ast.Deref:
		ptr, _ := lowerLValuePointer(fg, n.Operand)
		return ptr
	}
	fg.ctx.Diag.Reportf(diag.StageCodegen, "'&' requires an lvalue operand, got %T", e)
	return fg.cur.NewAlloca(fg.ctx.Common.I64)
}

// lowerLValuePointer evaluates e as a pointer value together with its
// tracked pointee element type, for use by deref/index.
func lowerLValuePointer(fg *funcGen, e ast.Expr) (ir.Value, types.Type) {
	if id, ok := e.(*ast.Identifier); ok {
		sym := fg.lookupSymbol(id.Name)
		if sym == nil {
			fg.ctx.Diag.Reportf(diag.StageCodegen, "undefined symbol %q", id.Name)
			return fg.cur.NewAlloca(fg.ctx.Common.I64), fg.ctx.Common.I64
		}
		ptrVal := fg.loadSymbol(sym)
		return ptrVal, sym.ElementType
	}
	v := lowerExprUse(fg, e)
	if pt, ok := v.Type().(*types.PointerType); ok {
		return v, pt.ElemType
	}
	return v, nil
}

// lowerIndexUse lowers `object[index]` as a read (§4.5, §4.6 object shape
// "index expression"): compute the element address via GEP, then load.
func lowerIndexUse(fg *funcGen, idx *ast.Index) ir.Value {
	addr, elemType := indexAddrWithType(fg, idx)
	return fg.cur.NewLoad(elemType, addr)
}

func indexAddr(fg *funcGen, idx *ast.Index) ir.Value {
	addr, _ := indexAddrWithType(fg, idx)
	return addr
}

// indexAddrWithType computes the element address and type for
// `object[index]`. When the base is a fixed-size array (alloca'd
// [N]T, not a pointer), indexing uses a two-index GEP; when it is a
// pointer, a single-index GEP over the pointee, per §4.5's array-vs-
// pointer indexing distinction.
func indexAddrWithType(fg *funcGen, idx *ast.Index) (ir.Value, types.Type) {
	idxVal := lowerExprUse(fg, idx.Idx)

	if id, ok := idx.Object.(*ast.Identifier); ok {
		sym := fg.lookupSymbol(id.Name)
		if sym != nil {
			if at, ok := sym.ElementType.(*types.ArrayType); ok {
				addr := fg.cur.NewGetElementPtr(at, sym.Value, fg.ctx.Common.I64Zero, idxVal)
				return addr, at.ElemType
			}
			ptrVal := fg.loadSymbol(sym)
			addr := fg.cur.NewGetElementPtr(sym.ElementType, ptrVal, idxVal)
			return addr, sym.ElementType
		}
	}

	// An array-typed struct field decays to its element pointer on read
	// (§4.6/§4.5(c)): `obj.arr[i]` indexes off the field's own GEP address
	// with a two-index GEP, the same shape as the array-local branch above,
	// rather than falling through to the pointer-only path below.
	if mem, ok := idx.Object.(*ast.Member); ok {
		fieldAddrVal, ft := fieldAddrAndType(fg, mem)
		if at, ok := ft.(*types.ArrayType); ok {
			addr := fg.cur.NewGetElementPtr(at, fieldAddrVal, fg.ctx.Common.I64Zero, idxVal)
			return addr, at.ElemType
		}
	}

	base := lowerExprUse(fg, idx.Object)
	pt, ok := base.Type().(*types.PointerType)
	if !ok {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "indexing requires a pointer or array, got %s", base.Type())
		return fg.cur.NewAlloca(fg.ctx.Common.I64), fg.ctx.Common.I64
	}
	if at, ok := pt.ElemType.(*types.ArrayType); ok {
		addr := fg.cur.NewGetElementPtr(at, base, fg.ctx.Common.I64Zero, idxVal)
		return addr, at.ElemType
	}
	addr := fg.cur.NewGetElementPtr(pt.ElemType, base, idxVal)
	return addr, pt.ElemType
}
