package codegen

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// lowerExpr dispatches an expression node to its codegen handler. It is
// the single entry point expression codegen is reached through, mirroring
// the teacher's lower/expr.go dispatch shape.
func lowerExpr(fg *funcGen, e ast.Expr) ir.Value {
	switch n := e.(type) {
	case *ast.Literal:
		return lowerLiteral(fg, n)
	case *ast.Identifier:
		return lowerIdentUse(fg, n)
	case *ast.Binary:
		return lowerBinary(fg, n)
	case *ast.Unary:
		return lowerUnary(fg, n)
	case *ast.Call:
		return lowerCall(fg, n)
	case *ast.Member:
		return lowerMemberUse(fg, n)
	case *ast.Index:
		return lowerIndexUse(fg, n)
	case *ast.Assignment:
		return lowerAssignment(fg, n)
	case *ast.Cast:
		return lowerCast(fg, n)
	case *ast.Deref:
		return lowerDerefUse(fg, n)
	case *ast.Addr:
		return lowerAddr(fg, n)
	case *ast.Array:
		return lowerArray(fg, n)
	case *ast.SizeOf:
		return lowerSizeOf(fg, n)
	case *ast.Alloc:
		return lowerAlloc(fg, n)
	case *ast.Free:
		return lowerFree(fg, n)
	case *ast.Input:
		return lowerInput(fg, n)
	case *ast.System:
		return lowerSystem(fg, n)
	case *ast.Syscall:
		return lowerSyscall(fg, n)
	case *ast.Range:
		return lowerRange(fg, n)
	}
	fg.ctx.Diag.Reportf(diag.StageCodegen, "unsupported expression %T", e)
	return constant.NewInt(fg.ctx.Common.I64, 0)
}

// lowerLiteral lowers a constant literal. Escape sequences in strings and
// chars were already expanded by the lexer (§4.5); here we only intern the
// result.
func lowerLiteral(fg *funcGen, lit *ast.Literal) ir.Value {
	switch lit.Kind {
	case ast.LitInt:
		v, err := strconv.ParseInt(lit.Value, 10, 64)
		if err != nil {
			fg.ctx.Diag.Reportf(diag.StageCodegen, "invalid integer literal %q", lit.Value)
		}
		return constant.NewInt(fg.ctx.Common.I64, v)
	case ast.LitFloat:
		v, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			fg.ctx.Diag.Reportf(diag.StageCodegen, "invalid float literal %q", lit.Value)
		}
		return constant.NewFloat(fg.ctx.Common.F64, v)
	case ast.LitBool:
		if lit.Value == "true" {
			return constant.NewInt(fg.ctx.Common.I1, 1)
		}
		return constant.NewInt(fg.ctx.Common.I1, 0)
	case ast.LitChar:
		r := []rune(lit.Value)
		var b int64
		if len(r) > 0 {
			b = int64(r[0])
		}
		return constant.NewInt(fg.ctx.Common.I8, b)
	case ast.LitString:
		return internString(fg, lit.Value)
	case ast.LitNull:
		return constant.NewNull(fg.ctx.Common.I8Ptr)
	}
	return constant.NewInt(fg.ctx.Common.I64, 0)
}

var stringLiteralCounter int

// internString creates a private, constant, unnamed-addr global holding
// the string bytes and returns its address as i8* via a GEP, per §4.5.
func internString(fg *funcGen, s string) ir.Value {
	stringLiteralCounter++
	data := constant.NewCharArrayFromString(s + "\x00")
	g := fg.unit.Module.NewGlobalDef("", data)
	g.Linkage = enum.LinkagePrivate
	g.Immutable = true
	g.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	zero := fg.ctx.Common.I64Zero
	return constant.NewGetElementPtr(data.Typ, g, zero, zero)
}

// lowerIdentUse resolves a bare identifier through lookupSymbol: a local,
// then the current module's own symbol table (imported declarations
// included); an identifier found in neither is reported as undefined.
// Values stored behind an alloca/global are auto-loaded, mirroring the
// teacher's lowerExprUse.
func lowerIdentUse(fg *funcGen, id *ast.Identifier) ir.Value {
	sym := fg.lookupSymbol(id.Name)
	if sym == nil {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "undefined symbol %q", id.Name)
		return constant.NewInt(fg.ctx.Common.I64, 0)
	}
	return fg.loadSymbol(sym)
}

// lookupSymbol finds a symbol by name: locals first, then the current
// unit's symbol table.
func (fg *funcGen) lookupSymbol(name string) *LLVMSymbol {
	if s, ok := fg.locals[name]; ok {
		return s
	}
	if s, ok := fg.unit.Symbols[name]; ok {
		return s
	}
	return nil
}

// loadSymbol auto-loads a pointer-valued (alloca/global) symbol's current
// value, or returns a function/constant symbol's value directly.
func (fg *funcGen) loadSymbol(sym *LLVMSymbol) ir.Value {
	if sym.IsFunction {
		return sym.Value
	}
	if _, isPtr := sym.Value.Type().(*types.PointerType); isPtr && sym.ElementType != nil {
		return fg.cur.NewLoad(sym.ElementType, sym.Value)
	}
	return sym.Value
}

// lowerExprUse evaluates e for its value, the same as lowerExpr; kept as a
// distinct name at call sites that specifically need the auto-loaded
// r-value (binary/call arguments), matching the teacher's naming.
func lowerExprUse(fg *funcGen, e ast.Expr) ir.Value { return lowerExpr(fg, e) }

func lowerExprs(fg *funcGen, es []ast.Expr) []ir.Value {
	out := make([]ir.Value, len(es))
	for i, e := range es {
		out[i] = lowerExprUse(fg, e)
	}
	return out
}

// promoteOperands applies the float/int and float-width promotion rule
// from §4.5: if exactly one operand is float, convert the other via
// signed int-to-float; if both are float but differ in width, extend the
// narrower.
func promoteOperands(fg *funcGen, l, r ir.Value) (ir.Value, ir.Value) {
	lf := isFloatType(fg.ctx, l.Type())
	rf := isFloatType(fg.ctx, r.Type())
	switch {
	case lf && !rf:
		r = fg.cur.NewSIToFP(r, l.Type())
	case rf && !lf:
		l = fg.cur.NewSIToFP(l, r.Type())
	case lf && rf:
		if widthOf(l.Type()) < widthOf(r.Type()) {
			l = fg.cur.NewFPExt(l, r.Type())
		} else if widthOf(r.Type()) < widthOf(l.Type()) {
			r = fg.cur.NewFPExt(r, l.Type())
		}
	}
	return l, r
}

func widthOf(t types.Type) int {
	if t, ok := t.(*types.FloatType); ok {
		if t.Kind == types.FloatKindDouble {
			return 64
		}
		return 32
	}
	return 0
}

// lowerBinary dispatches to one of the four operator families of §4.5.
func lowerBinary(fg *funcGen, b *ast.Binary) ir.Value {
	if b.Op == ast.OpRange {
		return lowerRangeOp(fg, b)
	}

	l := lowerExprUse(fg, b.Left)
	r := lowerExprUse(fg, b.Right)

	switch b.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return lowerArithmetic(fg, b.Op, l, r)
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return lowerComparison(fg, b.Op, l, r)
	case ast.OpAnd, ast.OpOr:
		return lowerLogical(fg, b.Op, l, r)
	case ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		return lowerBitwise(fg, b.Op, l, r)
	}
	fg.ctx.Diag.Reportf(diag.StageCodegen, "unknown binary operator %v", b.Op)
	return l
}

func lowerArithmetic(fg *funcGen, op ast.BinaryOp, l, r ir.Value) ir.Value {
	l, r = promoteOperands(fg, l, r)
	isFloat := isFloatType(fg.ctx, l.Type())
	switch op {
	case ast.OpAdd:
		if isFloat {
			return fg.cur.NewFAdd(l, r)
		}
		return fg.cur.NewAdd(l, r)
	case ast.OpSub:
		if isFloat {
			return fg.cur.NewFSub(l, r)
		}
		return fg.cur.NewSub(l, r)
	case ast.OpMul:
		if isFloat {
			return fg.cur.NewFMul(l, r)
		}
		return fg.cur.NewMul(l, r)
	case ast.OpDiv:
		if isFloat {
			return fg.cur.NewFDiv(l, r)
		}
		return fg.cur.NewSDiv(l, r)
	case ast.OpMod:
		if isFloat {
			return lowerFloatMod(fg, l, r)
		}
		return fg.cur.NewSRem(l, r)
	}
	panic("unreachable")
}

// lowerFloatMod lowers float `%` to `a - b*floor(a/b)` using a lazily
// declared llvm.floor intrinsic, per §4.5 and original_source's
// BINOP_MOD handling.
func lowerFloatMod(fg *funcGen, l, r ir.Value) ir.Value {
	quotient := fg.cur.NewFDiv(l, r)
	floorFn := floorIntrinsic(fg, l.Type().(*types.FloatType))
	floored := fg.cur.NewCall(floorFn, quotient)
	return fg.cur.NewFSub(l, fg.cur.NewFMul(r, floored))
}

func floorIntrinsic(fg *funcGen, ft *types.FloatType) *ir.Func {
	name := "llvm.floor.f32"
	if ft.Kind == types.FloatKindDouble {
		name = "llvm.floor.f64"
	}
	if sym, ok := fg.unit.Symbols[name]; ok {
		return sym.Value.(*ir.Func)
	}
	f := fg.unit.Module.NewFunc(name, ft, ir.NewParam("", ft))
	fg.unit.Symbols[name] = &LLVMSymbol{Name: name, Value: f, IsFunction: true}
	return f
}

func lowerComparison(fg *funcGen, op ast.BinaryOp, l, r ir.Value) ir.Value {
	l, r = promoteOperands(fg, l, r)
	if isFloatType(fg.ctx, l.Type()) {
		return fg.cur.NewFCmp(floatPred(op), l, r)
	}
	return fg.cur.NewICmp(intPred(op), l, r)
}

func floatPred(op ast.BinaryOp) enum.FPred {
	switch op {
	case ast.OpEq:
		return enum.FPredOEQ
	case ast.OpNeq:
		return enum.FPredONE
	case ast.OpLt:
		return enum.FPredOLT
	case ast.OpLte:
		return enum.FPredOLE
	case ast.OpGt:
		return enum.FPredOGT
	case ast.OpGte:
		return enum.FPredOGE
	}
	return enum.FPredOEQ
}

func intPred(op ast.BinaryOp) enum.IPred {
	switch op {
	case ast.OpEq:
		return enum.IPredEQ
	case ast.OpNeq:
		return enum.IPredNE
	case ast.OpLt:
		return enum.IPredSLT
	case ast.OpLte:
		return enum.IPredSLE
	case ast.OpGt:
		return enum.IPredSGT
	case ast.OpGte:
		return enum.IPredSGE
	}
	return enum.IPredEQ
}

// lowerLogical implements `&& ||`, defined only on booleans/integers; a
// float operand is a hard error per §4.5.
func lowerLogical(fg *funcGen, op ast.BinaryOp, l, r ir.Value) ir.Value {
	if isFloatType(fg.ctx, l.Type()) || isFloatType(fg.ctx, r.Type()) {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "logical operator requires boolean/integer operands, got float")
		return constant.NewInt(fg.ctx.Common.I1, 0)
	}
	lb := toBool(fg, l)
	rb := toBool(fg, r)
	if op == ast.OpAnd {
		return fg.cur.NewAnd(lb, rb)
	}
	return fg.cur.NewOr(lb, rb)
}

// lowerBitwise implements `& | ^ << >>`, integer-only; right-shift is
// arithmetic (sign-extending), per §4.5.
func lowerBitwise(fg *funcGen, op ast.BinaryOp, l, r ir.Value) ir.Value {
	if isFloatType(fg.ctx, l.Type()) || isFloatType(fg.ctx, r.Type()) {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "bitwise operator requires integer operands, got float")
		return constant.NewInt(fg.ctx.Common.I64, 0)
	}
	switch op {
	case ast.OpBitAnd:
		return fg.cur.NewAnd(l, r)
	case ast.OpBitOr:
		return fg.cur.NewOr(l, r)
	case ast.OpBitXor:
		return fg.cur.NewXor(l, r)
	case ast.OpShl:
		return fg.cur.NewShl(l, r)
	case ast.OpShr:
		return fg.cur.NewAShr(l, r)
	}
	panic("unreachable")
}

// lowerRangeOp and lowerRange both implement `a..b`: a two-field struct
// {start, end} of the operand type, allocated and loaded, per §4.5.
func lowerRangeOp(fg *funcGen, b *ast.Binary) ir.Value {
	return lowerRangeValue(fg, b.Left, b.Right)
}

func lowerRange(fg *funcGen, r *ast.Range) ir.Value {
	return lowerRangeValue(fg, r.Start, r.End)
}

func lowerRangeValue(fg *funcGen, startE, endE ast.Expr) ir.Value {
	start := lowerExprUse(fg, startE)
	end := lowerExprUse(fg, endE)
	return buildRangeStruct(fg, start, end)
}

// buildRangeStruct allocates, populates, and loads a `{start, end}` range
// struct from already-lowered operand values.
func buildRangeStruct(fg *funcGen, start, end ir.Value) ir.Value {
	st := types.NewStruct(start.Type(), end.Type())
	alloca := fg.cur.NewAlloca(st)
	fg.cur.NewStore(start, fg.cur.NewGetElementPtr(st, alloca, fg.ctx.Common.I32Zero, fg.ctx.Common.I32Zero))
	fg.cur.NewStore(end, fg.cur.NewGetElementPtr(st, alloca, fg.ctx.Common.I32Zero, fg.ctx.Common.I32One))
	return fg.cur.NewLoad(st, alloca)
}

// rangeStart and rangeEnd pull the two fields back out of a `{start, end}`
// range struct value produced by lowerRangeValue.
func rangeStart(fg *funcGen, rangeVal ir.Value) ir.Value {
	return fg.cur.NewExtractValue(rangeVal, 0)
}

func rangeEnd(fg *funcGen, rangeVal ir.Value) ir.Value {
	return fg.cur.NewExtractValue(rangeVal, 1)
}

// rangeContains implements `range_contains`: value >= start && value <= end
// (both bounds inclusive), grounded on
// original_source/src/llvm/expr/expr.c's range_contains.
func rangeContains(fg *funcGen, rangeVal, value ir.Value) ir.Value {
	start := rangeStart(fg, rangeVal)
	end := rangeEnd(fg, rangeVal)
	geStart := fg.cur.NewICmp(enum.IPredSGE, value, start)
	leEnd := fg.cur.NewICmp(enum.IPredSLE, value, end)
	return fg.cur.NewAnd(geStart, leEnd)
}

// rangeLength implements `range_length`: (end - start) + 1, the inclusive
// element count of a range, grounded on the same source function.
func rangeLength(fg *funcGen, rangeVal ir.Value) ir.Value {
	start := rangeStart(fg, rangeVal)
	end := rangeEnd(fg, rangeVal)
	diff := fg.cur.NewSub(end, start)
	one := constant.NewInt(diff.Type().(*types.IntType), 1)
	return fg.cur.NewAdd(diff, one)
}

// lowerUnary implements `- ! ~` and pre/post `++`/`--`.
func lowerUnary(fg *funcGen, u *ast.Unary) ir.Value {
	switch u.Op {
	case ast.OpNeg:
		v := lowerExprUse(fg, u.Operand)
		if isFloatType(fg.ctx, v.Type()) {
			return fg.cur.NewFNeg(v)
		}
		return fg.cur.NewSub(zeroLike(fg, v.Type()), v)
	case ast.OpNot:
		v := lowerExprUse(fg, u.Operand)
		if !isIntType(fg.ctx, v.Type()) {
			fg.ctx.Diag.Reportf(diag.StageCodegen, "'!' requires an integer operand")
		}
		return fg.cur.NewXor(toBool(fg, v), constant.NewInt(fg.ctx.Common.I1, 1))
	case ast.OpBitNot:
		v := lowerExprUse(fg, u.Operand)
		if !isIntType(fg.ctx, v.Type()) {
			fg.ctx.Diag.Reportf(diag.StageCodegen, "'~' requires an integer operand")
		}
		return fg.cur.NewXor(v, allOnes(v.Type().(*types.IntType)))
	case ast.OpPreInc, ast.OpPreDec, ast.OpPostInc, ast.OpPostDec:
		return lowerIncDec(fg, u)
	}
	panic("unreachable")
}

func zeroLike(fg *funcGen, t types.Type) ir.Value {
	if it, ok := t.(*types.IntType); ok {
		return constant.NewInt(it, 0)
	}
	return constant.NewInt(fg.ctx.Common.I64, 0)
}

func allOnes(t *types.IntType) *constant.Int {
	return constant.NewInt(t, -1)
}

// lowerIncDec requires an lvalue identifier operand: load the symbol,
// add/subtract 1, store back, and return either the original or the
// updated value per pre/post, per §4.5.
func lowerIncDec(fg *funcGen, u *ast.Unary) ir.Value {
	id, ok := u.Operand.(*ast.Identifier)
	if !ok {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "'++'/'--' require an identifier operand")
		return constant.NewInt(fg.ctx.Common.I64, 0)
	}
	sym := fg.lookupSymbol(id.Name)
	if sym == nil {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "undefined symbol %q", id.Name)
		return constant.NewInt(fg.ctx.Common.I64, 0)
	}
	old := fg.loadSymbol(sym)
	one := constant.NewInt(old.Type().(*types.IntType), 1)
	var updated ir.Value
	if u.Op == ast.OpPreInc || u.Op == ast.OpPostInc {
		updated = fg.cur.NewAdd(old, one)
	} else {
		updated = fg.cur.NewSub(old, one)
	}
	fg.cur.NewStore(updated, sym.Value)
	if u.Op == ast.OpPreInc || u.Op == ast.OpPreDec {
		return updated
	}
	return old
}

// lowerCall lowers a function call. A non-compile-time member callee
// `obj.method(args)` goes to lowerMethodCall, which prepends `&obj` as the
// first argument itself (sema injects no receiver); `Mod::func(args)` goes
// to lowerCompileTimeCall; a bare name is looked up first in the current
// module, then across all other units (§4.5, §4.7).
func lowerCall(fg *funcGen, c *ast.Call) ir.Value {
	if m, ok := c.Callee.(*ast.Member); ok && !m.IsCompileTime {
		return lowerMethodCall(fg, m, c.Args)
	}
	if m, ok := c.Callee.(*ast.Member); ok && m.IsCompileTime {
		return lowerCompileTimeCall(fg, m, c.Args)
	}
	if id, ok := c.Callee.(*ast.Identifier); ok {
		return lowerDirectCall(fg, id.Name, c.Args)
	}
	fg.ctx.Diag.Reportf(diag.StageCodegen, "unsupported call target %T", c.Callee)
	return constant.NewInt(fg.ctx.Common.I64, 0)
}

func lowerDirectCall(fg *funcGen, name string, args []ast.Expr) ir.Value {
	sym := fg.lookupSymbol(name)
	if sym == nil {
		sym = resolveAcrossUnits(fg, name)
	}
	if sym == nil || !sym.IsFunction {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "call to undefined function %q", name)
		return constant.NewInt(fg.ctx.Common.I64, 0)
	}
	f := sym.Value.(*ir.Func)
	argVals := lowerExprs(fg, args)
	return callAndHandleVoid(fg, f, argVals)
}

// lowerMethodCall handles `obj.method(args)`: the receiver is recovered
// directly from m.Object and prepended here as `&obj`; args is the
// call's own argument list, untouched by the receiver.
func lowerMethodCall(fg *funcGen, m *ast.Member, args []ast.Expr) ir.Value {
	receiver := lowerAddrOf(fg, m.Object)
	sym := fg.lookupSymbol(m.MemberName)
	if sym == nil {
		sym = resolveAcrossUnits(fg, m.MemberName)
	}
	if sym == nil || !sym.IsFunction {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "call to undefined method %q", m.MemberName)
		return constant.NewInt(fg.ctx.Common.I64, 0)
	}
	f := sym.Value.(*ir.Func)
	argVals := append([]ir.Value{receiver}, lowerExprs(fg, args)...)
	return callAndHandleVoid(fg, f, argVals)
}

// lowerCompileTimeCall handles `Mod::func(args)` — see §4.9: `Alias::sym`
// looks up `alias.sym` in the current unit.
func lowerCompileTimeCall(fg *funcGen, m *ast.Member, args []ast.Expr) ir.Value {
	alias := ""
	if id, ok := m.Object.(*ast.Identifier); ok {
		alias = id.Name
	}
	qualified := alias + "." + m.MemberName
	sym, ok := fg.unit.Symbols[qualified]
	if !ok {
		fg.ctx.Diag.Reportf(diag.StageCodegen, "compile-time call to unresolved symbol %q", qualified)
		return constant.NewInt(fg.ctx.Common.I64, 0)
	}
	f := sym.Value.(*ir.Func)
	return callAndHandleVoid(fg, f, lowerExprs(fg, args))
}

func callAndHandleVoid(fg *funcGen, f *ir.Func, args []ir.Value) ir.Value {
	call := fg.cur.NewCall(f, args...)
	if f.Sig.RetType == fg.ctx.Common.Void {
		return constant.NewNull(fg.ctx.Common.I8Ptr)
	}
	return call
}

// resolveAcrossUnits implements §4.7: scan every other unit's symbol table
// by raw name, and on a hit, create a local external declaration with
// cloned type and calling convention.
func resolveAcrossUnits(fg *funcGen, name string) *LLVMSymbol {
	for _, u := range fg.ctx.Units {
		if u == fg.unit {
			continue
		}
		if sym, ok := u.Symbols[name]; ok && sym.IsPublic {
			imported := declareExternalFor(fg.unit, sym)
			fg.unit.Symbols[name] = imported
			return imported
		}
	}
	return nil
}

// lowerMemberUse handles `obj.member` and `obj::member` read access
// (§4.6, §4.9). Method values referenced without a call (unusual but
// structurally possible) resolve to the function symbol directly.
func lowerMemberUse(fg *funcGen, m *ast.Member) ir.Value {
	if m.IsCompileTime {
		return lowerCompileTimeMemberUse(fg, m)
	}
	return loadStructField(fg, m)
}

// lowerCompileTimeMemberUse resolves `Mod::Type::Member` as an enum
// constant, searching the source module, then current, then all others
// for a symbol named "Type.Member" classified as an enum constant, per
// §4.9.
func lowerCompileTimeMemberUse(fg *funcGen, m *ast.Member) ir.Value {
	// `Mod::Type::Member` parses as Member{Object: Member{Object: Mod,
	// MemberName: Type, IsCompileTime: true}, MemberName: Member}.
	if inner, ok := m.Object.(*ast.Member); ok && inner.IsCompileTime {
		modAlias, _ := inner.Object.(*ast.Identifier)
		qualified := inner.MemberName + "." + m.MemberName
		if modAlias != nil {
			if u, ok := fg.ctx.UnitByName(modAlias.Name); ok {
				if sym, ok := u.Symbols[qualified]; ok {
					return fg.loadSymbol(sym)
				}
			}
		}
		if sym, ok := fg.unit.Symbols[qualified]; ok {
			return fg.loadSymbol(sym)
		}
		for _, u := range fg.ctx.Units {
			if sym, ok := u.Symbols[qualified]; ok && sym.IsPublic {
				return fg.loadSymbol(sym)
			}
		}
		fg.ctx.Diag.Reportf(diag.StageCodegen, "unresolved enum constant %q", qualified)
		return constant.NewInt(fg.ctx.Common.I64, 0)
	}

	// `Alias::sym` looks up `alias.sym` in the current unit.
	alias, _ := m.Object.(*ast.Identifier)
	if alias != nil {
		qualified := alias.Name + "." + m.MemberName
		if sym, ok := fg.unit.Symbols[qualified]; ok {
			return fg.loadSymbol(sym)
		}
	}
	fg.ctx.Diag.Reportf(diag.StageCodegen, "unresolved compile-time reference")
	return constant.NewInt(fg.ctx.Common.I64, 0)
}

// lowerCast lowers kind-by-kind per §4.5: float<->int, int width changes,
// float width changes, pointer<->pointer, int<->pointer, fallback bitcast.
func lowerCast(fg *funcGen, c *ast.Cast) ir.Value {
	v := lowerExprUse(fg, c.Castee)
	target := irTypeOf(fg.ctx, c.Type)
	result := convertTo(fg, v, target)

	// When the castee is an identifier, update its element_type so later
	// indexing picks up the new pointee type, per §4.5's assignment-target
	// rule extended to casts assigned through `let`.
	if id, ok := c.Castee.(*ast.Identifier); ok {
		if sym := fg.lookupSymbol(id.Name); sym != nil {
			if pt, ok := target.(*types.PointerType); ok {
				sym.ElementType = pt.ElemType
			}
		}
	}
	return result
}

// convertTo converts v to target following §4.5's cast rules.
func convertTo(fg *funcGen, v ir.Value, target types.Type) ir.Value {
	src := v.Type()
	if typesEqual(src, target) {
		return v
	}
	srcFloat, dstFloat := isFloatType(fg.ctx, src), isFloatType(fg.ctx, target)
	srcInt, dstInt := isIntType(fg.ctx, src), isIntType(fg.ctx, target)
	_, srcPtr := src.(*types.PointerType)
	_, dstPtr := target.(*types.PointerType)

	switch {
	case srcFloat && dstInt:
		return fg.cur.NewFPToSI(v, target)
	case srcInt && dstFloat:
		return fg.cur.NewSIToFP(v, target)
	case srcInt && dstInt:
		sw, dw := src.(*types.IntType).BitSize, target.(*types.IntType).BitSize
		if dw > sw {
			return fg.cur.NewSExt(v, target)
		} else if dw < sw {
			return fg.cur.NewTrunc(v, target)
		}
		return v
	case srcFloat && dstFloat:
		sw, dw := widthOf(src), widthOf(target)
		if dw > sw {
			return fg.cur.NewFPExt(v, target)
		} else if dw < sw {
			return fg.cur.NewFPTrunc(v, target)
		}
		return v
	case srcPtr && dstPtr:
		return fg.cur.NewBitCast(v, target)
	case srcInt && dstPtr:
		return fg.cur.NewIntToPtr(v, target)
	case srcPtr && dstInt:
		return fg.cur.NewPtrToInt(v, target)
	}
	return fg.cur.NewBitCast(v, target)
}

func typesEqual(a, b types.Type) bool {
	return a.String() == b.String()
}

// lowerConstantInit lowers a constant-foldable expression for a global
// initializer, returning nil when e is not a compile-time constant.
func lowerConstantInit(fg *funcGen, e ast.Expr, target types.Type) constant.Constant {
	lit, ok := e.(*ast.Literal)
	if !ok {
		return nil
	}
	switch lit.Kind {
	case ast.LitInt:
		v, _ := strconv.ParseInt(lit.Value, 10, 64)
		it, ok := target.(*types.IntType)
		if !ok {
			it = fg.ctx.Common.I64
		}
		return constant.NewInt(it, v)
	case ast.LitFloat:
		v, _ := strconv.ParseFloat(lit.Value, 64)
		ft, ok := target.(*types.FloatType)
		if !ok {
			ft = fg.ctx.Common.F64
		}
		return constant.NewFloat(ft, v)
	case ast.LitBool:
		if lit.Value == "true" {
			return constant.NewInt(fg.ctx.Common.I1, 1)
		}
		return constant.NewInt(fg.ctx.Common.I1, 0)
	case ast.LitString:
		return constant.NewCharArrayFromString(lit.Value + "\x00")
	}
	return nil
}

// lowerArray lowers an array literal. Every-element-constant literals
// become a constant array; otherwise an alloca with per-element stores.
// trailing padding per target_size is zero-filled, per §4.5.
func lowerArray(fg *funcGen, a *ast.Array) ir.Value {
	n := len(a.Elements)
	total := n
	if a.TargetSize > total {
		total = a.TargetSize
	}
	if total == 0 {
		total = 1
	}

	allConst := true
	vals := make([]ir.Value, 0, total)
	for _, el := range a.Elements {
		v := lowerExprUse(fg, el)
		vals = append(vals, v)
		if _, ok := v.(constant.Constant); !ok {
			allConst = false
		}
	}

	arrType := types.NewArray(uint64(total), pickElemType(vals, fg))

	if allConst {
		consts := make([]constant.Constant, total)
		for i := 0; i < total; i++ {
			if i < len(vals) {
				consts[i] = vals[i].(constant.Constant)
			} else {
				consts[i] = constant.NewZeroInitializer(arrType.ElemType)
			}
		}
		return constant.NewArray(arrType, consts...)
	}

	alloca := fg.cur.NewAlloca(arrType)
	for i, v := range vals {
		idx := constant.NewInt(fg.ctx.Common.I64, int64(i))
		gep := fg.cur.NewGetElementPtr(arrType, alloca, fg.ctx.Common.I64Zero, idx)
		fg.cur.NewStore(v, gep)
	}
	return fg.cur.NewLoad(arrType, alloca)
}

func pickElemType(vals []ir.Value, fg *funcGen) types.Type {
	if len(vals) == 0 {
		return fg.ctx.Common.I64
	}
	return vals[0].Type()
}

// lowerDerefUse, lowerAddr, lowerAddrOf and lowerIndexUse are in pointer.go.
// lowerAssignment and loadStructField/storeStructField are in struct.go.
// lowerSizeOf, lowerAlloc, lowerFree, lowerInput, lowerSystem and
// lowerSyscall are in intrinsics.go.
