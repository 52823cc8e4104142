package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// declareAndEmitFunction lowers one Function node into an *ir.Func in the
// current module, then emits its body (if any — external declarations
// produced by cross-module import never reach this path).
func declareAndEmitFunction(fg *funcGen, fn *ast.Function, receiverStruct string) *ir.Func {
	irName := mangleMethodName(receiverStruct, fn.Name)
	sig, params := functionIRType(fg.ctx, fn, receiverStruct)

	f := fg.unit.Module.NewFunc(irName, sig.RetType, params...)
	f.Linkage = functionLinkage(fn.Name, fn.IsPublic)

	fg.unit.Symbols[irName] = &LLVMSymbol{Name: irName, Value: f, Type: sig, IsFunction: true, IsPublic: fn.IsPublic}

	if fn.Body == nil {
		return f
	}

	inner := newFuncGen(fg.ctx, fg.unit)
	inner.f = f
	inner.cur = f.NewBlock("entry")
	for _, p := range params {
		alloca := inner.cur.NewAlloca(p.Type)
		inner.cur.NewStore(p, alloca)
		inner.locals[p.Name] = &LLVMSymbol{Name: p.Name, Value: alloca, Type: types.NewPointer(p.Type), ElementType: p.Type}
	}
	emitBlock(inner, fn.Body)
	ensureTerminator(inner, sig.RetType)
	return f
}

// ensureTerminator appends an implicit return to the current block if
// control can fall off the end of a function body without one.
func ensureTerminator(fg *funcGen, retType types.Type) {
	if fg.cur == nil || fg.cur.Term != nil {
		return
	}
	if retType == fg.ctx.Common.Void {
		fg.cur.NewRet(nil)
		return
	}
	fg.cur.NewRet(constant.NewInt(types.I64, 0))
}

// declareStruct builds the nominal LLVM struct type and StructInfo for a
// struct declaration, then emits its methods as functions taking a `self`
// receiver pointer (§4.6).
func declareStruct(fg *funcGen, st *ast.Struct) {
	info := &StructInfo{Name: st.Name, Methods: make(map[string]*ir.Func)}

	var fieldTypes []types.Type
	addField := func(fd *ast.FieldDecl, public bool) {
		if fd.Function != nil {
			return // methods are not struct fields
		}
		info.FieldNames = append(info.FieldNames, fd.Name)
		ft := irTypeOf(fg.ctx, fd.Type)
		info.FieldTypes = append(info.FieldTypes, ft)
		info.FieldIsPublic = append(info.FieldIsPublic, public)
		switch tn := fd.Type.(type) {
		case *ast.PointerType:
			info.FieldElementType = append(info.FieldElementType, irTypeOf(fg.ctx, tn.Pointee))
		case *ast.ArrayType:
			info.FieldElementType = append(info.FieldElementType, irTypeOf(fg.ctx, tn.Element))
		default:
			info.FieldElementType = append(info.FieldElementType, nil)
		}
		fieldTypes = append(fieldTypes, ft)
	}

	for _, fd := range st.PublicMembers {
		addField(fd, true)
	}
	for _, fd := range st.PrivateMembers {
		addField(fd, false)
	}

	info.LLVMType = types.NewStruct(fieldTypes...)
	info.LLVMType.TypeName = st.Name
	fg.unit.Module.NewTypeDef(st.Name, info.LLVMType)
	fg.ctx.structs[st.Name] = info

	for _, fd := range append(append([]*ast.FieldDecl{}, st.PublicMembers...), st.PrivateMembers...) {
		if fd.Function == nil {
			continue
		}
		f := declareAndEmitFunction(fg, fd.Function, st.Name)
		info.Methods[fd.Function.Name] = f
	}
}

// declareEnum lowers an enum to a sequence of i64-constant globals named
// "Enum.Member", classified as enum constants per the Invariants in §3
// ("a symbol whose value is a global variable and whose initializer is a
// compile-time integer constant is classified as an enum constant").
func declareEnum(fg *funcGen, en *ast.Enum) {
	next := int64(0)
	for _, m := range en.Members {
		val := next
		if m.Value != nil {
			val = *m.Value
		}
		next = val + 1

		name := en.Name + "." + m.Name
		g := fg.unit.Module.NewGlobalDef(name, constant.NewInt(types.I64, val))
		g.Immutable = true
		g.Linkage = functionLinkage(name, en.IsPublic)
		fg.unit.Symbols[name] = &LLVMSymbol{Name: name, Value: g, Type: types.NewPointer(types.I64), ElementType: types.I64, IsPublic: en.IsPublic}
	}
}

// declareGlobalVar lowers a top-level `let`/`const` binding to an IR
// global. Only a literal initializer (see lowerConstantInit) becomes the
// global's constant initializer; any other initializer, or none, is
// reported as an error and the global is zero-initialized.
func declareGlobalVar(fg *funcGen, v *ast.VarDecl) {
	ft := irTypeOf(fg.ctx, v.Type)
	init := lowerConstantInit(fg, v.Initializer, ft)
	if init == nil {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "global %q requires a compile-time constant initializer", v.Name)
		init = constant.NewZeroInitializer(ft)
	}
	g := fg.unit.Module.NewGlobalDef(v.Name, init)
	g.Immutable = !v.IsMutable
	g.Linkage = functionLinkage(v.Name, v.IsPublic)
	fg.unit.Symbols[v.Name] = &LLVMSymbol{Name: v.Name, Value: g, Type: types.NewPointer(ft), ElementType: ft, IsPublic: v.IsPublic}
}

// declareExternalFor clones sym into dst's module as an external
// declaration with matching type and calling convention, per §4.4 Pass 2
// and §4.7. Per-parameter alignment attributes are not copied, for
// struct-returning functions as for any other.
func declareExternalFor(dst *ModuleUnit, sym *LLVMSymbol) *LLVMSymbol {
	if sym.IsFunction {
		srcFunc := sym.Value.(*ir.Func)
		decl := dst.Module.NewFunc(srcFunc.Name(), srcFunc.Sig.RetType, cloneParams(srcFunc.Params)...)
		decl.CallingConv = srcFunc.CallingConv
		// Struct-returning functions propagate calling convention across
		// modules above; per-parameter alignment attributes (copied by
		// original_source's generate_external_declarations for struct
		// returns) have no stable per-Param equivalent in llir's API surface
		// and are left to the backend's own ABI lowering.
		return &LLVMSymbol{Name: sym.Name, Value: decl, Type: sym.Type, ElementType: sym.ElementType, IsFunction: true, IsPublic: true}
	}
	g := dst.Module.NewGlobalDecl(sym.Name, sym.ElementType)
	return &LLVMSymbol{Name: sym.Name, Value: g, Type: sym.Type, ElementType: sym.ElementType, IsPublic: true}
}

func cloneParams(params []*ir.Param) []*ir.Param {
	out := make([]*ir.Param, len(params))
	for i, p := range params {
		out[i] = ir.NewParam(p.Name(), p.Type())
	}
	return out
}
