package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// funcGen holds the per-function emission state: the function being built,
// the current basic block, and the local-variable symbol table. It mirrors
// the teacher's funcGen/fgen split (one generator per function body).
type funcGen struct {
	ctx    *Context
	unit   *ModuleUnit
	f      *ir.Func
	cur    *ir.Block
	locals map[string]*LLVMSymbol
}

func newFuncGen(ctx *Context, unit *ModuleUnit) *funcGen {
	return &funcGen{ctx: ctx, unit: unit, locals: make(map[string]*LLVMSymbol)}
}

func (fg *funcGen) errorf(format string, args ...interface{}) {
	fg.ctx.Diag.Reportf(diag.StageCodegen, format, args...)
}

// emitTopLevelStmt dispatches a module-body statement (everything except
// `@use`, already filtered by the caller) to its declaration handler.
func emitTopLevelStmt(fg *funcGen, stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.Function:
		declareAndEmitFunction(fg, n, "")
	case *ast.Struct:
		declareStruct(fg, n)
	case *ast.Enum:
		declareEnum(fg, n)
	case *ast.VarDecl:
		declareGlobalVar(fg, n)
	default:
		fg.ctx.Diag.Reportf(diag.StageCodegen, "unsupported top-level statement %T", stmt)
	}
}

// functionIRType builds the LLVM function signature for fn, inserting a
// leading `*Struct` receiver parameter named `self` ahead of fn.Params
// when receiverStruct is non-empty; lowerMethodCall supplies `&obj` for it
// at call sites.
func functionIRType(ctx *Context, fn *ast.Function, receiverStruct string) (*types.FuncType, []*ir.Param) {
	retType := irTypeOf(ctx, fn.ReturnType)
	var params []*ir.Param
	if receiverStruct != "" {
		var elemType types.Type = ctx.Common.I8 // kept when the struct is in neither cache
		if info, ok := ctx.CachedStruct(receiverStruct); ok {
			elemType = info.LLVMType
		} else if info, ok := ctx.structs[receiverStruct]; ok {
			elemType = info.LLVMType
		}
		params = append(params, ir.NewParam("self", types.NewPointer(elemType)))
	}
	for _, p := range fn.Params {
		params = append(params, ir.NewParam(p.Name, irTypeOf(ctx, p.Type)))
	}
	paramTypes := make([]types.Type, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}
	return types.NewFunc(retType, paramTypes...), params
}

// mangleMethodName mirrors the teacher's "T.M" receiver-mangling
// convention (lower/index.go in the example pack), generalized to this
// language's `Struct.method` naming.
func mangleMethodName(receiverStruct, name string) string {
	if receiverStruct == "" {
		return name
	}
	return receiverStruct + "." + name
}

// functionLinkage implements §4.4/original_source's get_function_linkage:
// `main` is always externally linked regardless of its is_public flag; all
// other functions follow is_public.
func functionLinkage(name string, isPublic bool) ir.Linkage {
	if name == "main" {
		return ir.LinkageExternal
	}
	if isPublic {
		return ir.LinkageExternal
	}
	return ir.LinkageInternal
}
