package codegen

import (
	"github.com/llir/llvm/ir/types"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// irTypeOf lowers a source type node to its LLVM IR type, using ctx.Common
// for every primitive rather than recreating types at each call site
// (§4.3). Struct/enum names resolve against the context's in-progress
// struct table; a name that is not yet known falls through to an opaque
// i64, matching the "last resort" heuristic-avoidance stance of §9 (the
// typechecker is expected to have already rejected truly unknown types
// before codegen runs).
func irTypeOf(ctx *Context, t ast.TypeNode) types.Type {
	if t == nil {
		return ctx.Common.Void
	}
	switch n := t.(type) {
	case *ast.BasicType:
		return irBasicType(ctx, n.Name)
	case *ast.PointerType:
		return types.NewPointer(irTypeOf(ctx, n.Pointee))
	case *ast.ArrayType:
		return types.NewArray(uint64(n.Size), irTypeOf(ctx, n.Element))
	case *ast.FunctionType:
		params := make([]types.Type, len(n.ParamTypes))
		for i, p := range n.ParamTypes {
			params[i] = irTypeOf(ctx, p)
		}
		return types.NewPointer(types.NewFunc(irTypeOf(ctx, n.ReturnType), params...))
	case *ast.ResolutionType:
		name := n.Parts[len(n.Parts)-1]
		return structOrEnumType(ctx, name)
	case *ast.StructTypeRef:
		return structOrEnumType(ctx, n.Name)
	}
	ctx.Diag.Reportf(diag.StageCodegen, "unrecognized type node %T", t)
	return ctx.Common.I64
}

func structOrEnumType(ctx *Context, name string) types.Type {
	if info, ok := ctx.structs[name]; ok {
		return info.LLVMType
	}
	if info, ok := ctx.CachedStruct(name); ok {
		return info.LLVMType
	}
	// Enums lower to a plain i64; their members are i64-constant globals
	// (§4.9), so a bare enum type name is just that integer width.
	return ctx.Common.I64
}

func irBasicType(ctx *Context, name string) types.Type {
	switch name {
	case "bool":
		return ctx.Common.I1
	case "char", "byte", "int8", "uint8":
		return ctx.Common.I8
	case "int16", "uint16":
		return ctx.Common.I16
	case "int32", "uint32":
		return ctx.Common.I32
	case "int", "int64", "uint64", "uint":
		return ctx.Common.I64
	case "float", "float32":
		return ctx.Common.F32
	case "double", "float64":
		return ctx.Common.F64
	case "string":
		return ctx.Common.I8Ptr
	case "void", "":
		return ctx.Common.Void
	}
	// Nominal struct/enum name not yet resolvable as a primitive.
	return structOrEnumType(ctx, name)
}

// isIntType reports whether t is one of the integer primitive types.
func isIntType(ctx *Context, t types.Type) bool {
	switch t {
	case ctx.Common.I1, ctx.Common.I8, ctx.Common.I16, ctx.Common.I32, ctx.Common.I64:
		return true
	}
	_, ok := t.(*types.IntType)
	return ok
}

// isFloatType reports whether t is one of the floating-point primitive
// types.
func isFloatType(ctx *Context, t types.Type) bool {
	switch t {
	case ctx.Common.F32, ctx.Common.F64:
		return true
	}
	_, ok := t.(*types.FloatType)
	return ok
}
