package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
)

// lazyDeclareFunc returns the unit-local external declaration for a libc
// function, declaring it on first use (§4.5's "lazily declared" malloc,
// free, printf, scanf, system, syscall).
func lazyDeclareFunc(fg *funcGen, name string, ret types.Type, paramTypes []types.Type) *ir.Func {
	if sym, ok := fg.unit.Symbols[name]; ok {
		return sym.Value.(*ir.Func)
	}
	params := make([]*ir.Param, len(paramTypes))
	for i, pt := range paramTypes {
		params[i] = ir.NewParam("", pt)
	}
	f := fg.unit.Module.NewFunc(name, ret, params...)
	f.Linkage = ir.LinkageExternal
	fg.unit.Symbols[name] = &LLVMSymbol{Name: name, Value: f, IsFunction: true}
	return f
}

// lazyDeclareVariadic is lazyDeclareFunc for a C variadic signature
// (printf, scanf, syscall).
func lazyDeclareVariadic(fg *funcGen, name string, ret types.Type, paramTypes []types.Type) *ir.Func {
	f := lazyDeclareFunc(fg, name, ret, paramTypes)
	f.Sig.Variadic = true
	return f
}

// lowerAlloc lowers `alloc(n)` to a call to a lazily declared
// `malloc(i64) -> i8*`.
func lowerAlloc(fg *funcGen, a *ast.Alloc) ir.Value {
	n := lowerExprUse(fg, a.Size)
	mallocFn := lazyDeclareFunc(fg, "malloc", fg.ctx.Common.I8Ptr, []types.Type{fg.ctx.Common.I64})
	return fg.cur.NewCall(mallocFn, convertTo(fg, n, fg.ctx.Common.I64))
}

// lowerFree lowers `free(p)` to a call to a lazily declared
// `free(i8*) -> void`, casting p to i8* first.
func lowerFree(fg *funcGen, fr *ast.Free) ir.Value {
	p := lowerExprUse(fg, fr.Ptr)
	freeFn := lazyDeclareFunc(fg, "free", fg.ctx.Common.Void, []types.Type{fg.ctx.Common.I8Ptr})
	fg.cur.NewCall(freeFn, convertTo(fg, p, fg.ctx.Common.I8Ptr))
	return constant.NewNull(fg.ctx.Common.I8Ptr)
}

// scanfSpec picks the scanf format string and destination buffer type for
// T, per §4.5's fixed table.
func scanfSpec(fg *funcGen, tn ast.TypeNode) (string, types.Type) {
	if bt, ok := tn.(*ast.BasicType); ok {
		switch bt.Name {
		case "char", "byte", "int8", "uint8":
			return "%c", fg.ctx.Common.I8
		case "int32", "uint32":
			return "%d", fg.ctx.Common.I32
		case "int", "int64", "uint64", "uint":
			return "%lld", fg.ctx.Common.I64
		case "float", "float32":
			return "%f", fg.ctx.Common.F32
		case "double", "float64":
			return "%lf", fg.ctx.Common.F64
		case "string":
			return "%255s", types.NewArray(256, fg.ctx.Common.I8)
		}
	}
	return "%lld", fg.ctx.Common.I64
}

// lowerInput lowers `input<T>(msg?)`: an optional printf of msg, followed
// by a scanf into a stack buffer sized and formatted for T (§4.5).
func lowerInput(fg *funcGen, in *ast.Input) ir.Value {
	if in.Msg != nil {
		msgVal := lowerExprUse(fg, in.Msg)
		printfFn := lazyDeclareVariadic(fg, "printf", fg.ctx.Common.I32, []types.Type{fg.ctx.Common.I8Ptr})
		fg.cur.NewCall(printfFn, msgVal)
	}

	spec, bufType := scanfSpec(fg, in.Type)
	fmtPtr := internString(fg, spec)
	scanfFn := lazyDeclareVariadic(fg, "scanf", fg.ctx.Common.I32, []types.Type{fg.ctx.Common.I8Ptr})
	buf := fg.cur.NewAlloca(bufType)
	fg.cur.NewCall(scanfFn, fmtPtr, buf)

	if at, ok := bufType.(*types.ArrayType); ok {
		return fg.cur.NewGetElementPtr(at, buf, fg.ctx.Common.I64Zero, fg.ctx.Common.I64Zero)
	}
	return fg.cur.NewLoad(bufType, buf)
}

// lowerSystem lowers `system(cmd)` to a call to the lazily declared libc
// `system(i8*) -> i32`.
func lowerSystem(fg *funcGen, s *ast.System) ir.Value {
	cmd := lowerExprUse(fg, s.Command)
	systemFn := lazyDeclareFunc(fg, "system", fg.ctx.Common.I32, []types.Type{fg.ctx.Common.I8Ptr})
	return fg.cur.NewCall(systemFn, convertTo(fg, cmd, fg.ctx.Common.I8Ptr))
}

// lowerSyscall lowers `syscall(num, args...)`. The source ABI diverges by
// platform — x86-64 Linux wants inline assembly pinning `rax, rdi, rsi,
// rdx, r10, r8, r9`, Apple-arm64 rewrites the common cases to libc calls
// and otherwise falls through to libc `syscall` — but llir's stable public
// API exposes no inline-assembly constructor to target safely, so every
// platform is lowered uniformly through the libc `syscall(long, ...)`
// variadic entry point (the same path the source already uses for its
// Apple-arm64 fallback case).
func lowerSyscall(fg *funcGen, sc *ast.Syscall) ir.Value {
	syscallFn := lazyDeclareVariadic(fg, "syscall", fg.ctx.Common.I64, []types.Type{fg.ctx.Common.I64})
	args := lowerExprs(fg, sc.Args)
	if len(args) > 0 {
		args[0] = convertTo(fg, args[0], fg.ctx.Common.I64)
	}
	return fg.cur.NewCall(syscallFn, args...)
}

// sizeOfIRType computes the structural size in bytes of t, per §4.5:
// primitive widths are fixed, pointers are 8, arrays multiply element size
// by length, and structs use alignment-aware field layout.
func sizeOfIRType(ctx *Context, t types.Type) int64 {
	switch v := t.(type) {
	case *types.IntType:
		return int64((v.BitSize + 7) / 8)
	case *types.FloatType:
		if v.Kind == types.FloatKindDouble {
			return 8
		}
		return 4
	case *types.PointerType:
		return 8
	case *types.ArrayType:
		return int64(v.Len) * sizeOfIRType(ctx, v.ElemType)
	case *types.StructType:
		if info, ok := structInfoFor(ctx, v); ok {
			return structSizeOf(ctx, info)
		}
		return structLiteralSizeOf(ctx, v)
	case *types.VoidType:
		return 0
	}
	return 8
}

// structSizeOf lays out info's fields per §4.5: each field aligned to
// min(natural alignment, 8), offsets packed accordingly, and the final
// size rounded up to the largest field alignment.
func structSizeOf(ctx *Context, info *StructInfo) int64 {
	return layoutSize(ctx, info.FieldTypes)
}

func structLiteralSizeOf(ctx *Context, st *types.StructType) int64 {
	return layoutSize(ctx, st.Fields)
}

func layoutSize(ctx *Context, fields []types.Type) int64 {
	var offset, maxAlign int64 = 0, 1
	for _, ft := range fields {
		sz := sizeOfIRType(ctx, ft)
		align := sz
		if align > 8 {
			align = 8
		}
		if align < 1 {
			align = 1
		}
		if align > maxAlign {
			maxAlign = align
		}
		if offset%align != 0 {
			offset += align - offset%align
		}
		offset += sz
	}
	if offset%maxAlign != 0 {
		offset += maxAlign - offset%maxAlign
	}
	return offset
}

// lowerSizeOf lowers `sizeof<T>` and `sizeof(expr)` to a compile-time i64
// constant (§4.5). For the expression form, the operand is still lowered
// to recover its structural IR type; the typechecker has ensured this
// carries no required side effect by the time codegen runs.
func lowerSizeOf(fg *funcGen, s *ast.SizeOf) ir.Value {
	var t types.Type
	if s.IsType {
		t = irTypeOf(fg.ctx, s.Object.(ast.TypeNode))
	} else {
		v := lowerExprUse(fg, s.Object.(ast.Expr))
		t = v.Type()
	}
	return constant.NewInt(fg.ctx.Common.I64, sizeOfIRType(fg.ctx, t))
}
