package ast

import "github.com/Luma-Programming-Language/Luma/internal/token"

// LiteralKind distinguishes the payload shape of a Literal expression.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitChar
	LitString
	LitNull
)

// Literal is a constant value written directly in source.
type Literal struct {
	exprBase
	Kind  LiteralKind
	Value string // raw lexeme; codegen parses per Kind
}

func (*Literal) isExpr() {}

// NewLiteral allocates a Literal expression.
func (a *Arena) NewLiteral(pos token.Position, kind LiteralKind, value string) *Literal {
	n := &Literal{exprBase: exprBase{base: base{pos}}, Kind: kind, Value: value}
	a.track(n)
	return n
}

// Identifier is a bare name reference.
type Identifier struct {
	exprBase
	Name string
}

func (*Identifier) isExpr() {}

// NewIdentifier allocates an Identifier expression.
func (a *Arena) NewIdentifier(pos token.Position, name string) *Identifier {
	n := &Identifier{exprBase: exprBase{base: base{pos}}, Name: name}
	a.track(n)
	return n
}

// BinaryOp enumerates the binary operators.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpRange
)

// Binary is a binary-operator expression.
type Binary struct {
	exprBase
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (*Binary) isExpr() {}

// NewBinary allocates a Binary expression.
func (a *Arena) NewBinary(pos token.Position, op BinaryOp, left, right Expr) *Binary {
	n := &Binary{exprBase: exprBase{base: base{pos}}, Op: op, Left: left, Right: right}
	a.track(n)
	return n
}

// UnaryOp enumerates the unary and increment/decrement operators.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpNot
	OpBitNot
	OpPreInc
	OpPreDec
	OpPostInc
	OpPostDec
)

// Unary is a unary-operator expression, including pre/post inc/dec which
// require an lvalue identifier operand.
type Unary struct {
	exprBase
	Op      UnaryOp
	Operand Expr
}

func (*Unary) isExpr() {}

// NewUnary allocates a Unary expression.
func (a *Arena) NewUnary(pos token.Position, op UnaryOp, operand Expr) *Unary {
	n := &Unary{exprBase: exprBase{base: base{pos}}, Op: op, Operand: operand}
	a.track(n)
	return n
}

// Call is a function or method call expression.
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func (*Call) isExpr() {}

// NewCall allocates a Call expression.
func (a *Arena) NewCall(pos token.Position, callee Expr, args []Expr) *Call {
	n := &Call{exprBase: exprBase{base: base{pos}}, Callee: callee, Args: args}
	a.track(n)
	return n
}

// Member is `object.member` (runtime access) or `object::member` when
// IsCompileTime is set (module/enum namespace access, §4.9).
type Member struct {
	exprBase
	Object        Expr
	MemberName    string
	IsCompileTime bool
}

func (*Member) isExpr() {}

// NewMember allocates a Member expression.
func (a *Arena) NewMember(pos token.Position, object Expr, member string, compileTime bool) *Member {
	n := &Member{exprBase: exprBase{base: base{pos}}, Object: object, MemberName: member, IsCompileTime: compileTime}
	a.track(n)
	return n
}

// Index is `object[index]`.
type Index struct {
	exprBase
	Object Expr
	Idx    Expr
}

func (*Index) isExpr() {}

// NewIndex allocates an Index expression.
func (a *Arena) NewIndex(pos token.Position, object, idx Expr) *Index {
	n := &Index{exprBase: exprBase{base: base{pos}}, Object: object, Idx: idx}
	a.track(n)
	return n
}

// Assignment is `target = value`. The compound forms `+=` / `-=` are not
// parsed into an Assignment: the lexer emits PlusEq/MinusEq tokens for
// them, but the parser has no rule for those tokens.
type Assignment struct {
	exprBase
	Target Expr
	Value  Expr
}

func (*Assignment) isExpr() {}

// NewAssignment allocates an Assignment expression.
func (a *Arena) NewAssignment(pos token.Position, target, value Expr) *Assignment {
	n := &Assignment{exprBase: exprBase{base: base{pos}}, Target: target, Value: value}
	a.track(n)
	return n
}

// Cast is `cast<Type>(castee)`.
type Cast struct {
	exprBase
	Type   TypeNode
	Castee Expr
}

func (*Cast) isExpr() {}

// NewCast allocates a Cast expression.
func (a *Arena) NewCast(pos token.Position, typ TypeNode, castee Expr) *Cast {
	n := &Cast{exprBase: exprBase{base: base{pos}}, Type: typ, Castee: castee}
	a.track(n)
	return n
}

// Deref is `*expr`.
type Deref struct {
	exprBase
	Operand Expr
}

func (*Deref) isExpr() {}

// NewDeref allocates a Deref expression.
func (a *Arena) NewDeref(pos token.Position, operand Expr) *Deref {
	n := &Deref{exprBase: exprBase{base: base{pos}}, Operand: operand}
	a.track(n)
	return n
}

// Addr is `&expr`.
type Addr struct {
	exprBase
	Operand Expr
}

func (*Addr) isExpr() {}

// NewAddr allocates an Addr expression.
func (a *Arena) NewAddr(pos token.Position, operand Expr) *Addr {
	n := &Addr{exprBase: exprBase{base: base{pos}}, Operand: operand}
	a.track(n)
	return n
}

// Array is an array literal `[e0, e1, ...]`, optionally padded to
// TargetSize elements.
type Array struct {
	exprBase
	Elements   []Expr
	TargetSize int // 0 means "use len(Elements)"
}

func (*Array) isExpr() {}

// NewArray allocates an Array literal expression.
func (a *Arena) NewArray(pos token.Position, elements []Expr, targetSize int) *Array {
	n := &Array{exprBase: exprBase{base: base{pos}}, Elements: elements, TargetSize: targetSize}
	a.track(n)
	return n
}

// SizeOf is `sizeof<T>` (IsType) or `sizeof(expr)`.
type SizeOf struct {
	exprBase
	Object   Node // TypeNode when IsType, Expr otherwise
	IsType   bool
}

func (*SizeOf) isExpr() {}

// NewSizeOfType allocates a `sizeof<T>` expression.
func (a *Arena) NewSizeOfType(pos token.Position, typ TypeNode) *SizeOf {
	n := &SizeOf{exprBase: exprBase{base: base{pos}}, Object: typ, IsType: true}
	a.track(n)
	return n
}

// NewSizeOfExpr allocates a `sizeof(expr)` expression.
func (a *Arena) NewSizeOfExpr(pos token.Position, expr Expr) *SizeOf {
	n := &SizeOf{exprBase: exprBase{base: base{pos}}, Object: expr, IsType: false}
	a.track(n)
	return n
}

// Alloc is `alloc(size)`.
type Alloc struct {
	exprBase
	Size Expr
}

func (*Alloc) isExpr() {}

// NewAlloc allocates an Alloc expression.
func (a *Arena) NewAlloc(pos token.Position, size Expr) *Alloc {
	n := &Alloc{exprBase: exprBase{base: base{pos}}, Size: size}
	a.track(n)
	return n
}

// Free is `free(ptr)`.
type Free struct {
	exprBase
	Ptr Expr
}

func (*Free) isExpr() {}

// NewFree allocates a Free expression.
func (a *Arena) NewFree(pos token.Position, ptr Expr) *Free {
	n := &Free{exprBase: exprBase{base: base{pos}}, Ptr: ptr}
	a.track(n)
	return n
}

// Input is `input<T>(msg?)`.
type Input struct {
	exprBase
	Type TypeNode
	Msg  Expr // nil when no prompt message was given
}

func (*Input) isExpr() {}

// NewInput allocates an Input expression.
func (a *Arena) NewInput(pos token.Position, typ TypeNode, msg Expr) *Input {
	n := &Input{exprBase: exprBase{base: base{pos}}, Type: typ, Msg: msg}
	a.track(n)
	return n
}

// System is `system(cmd)`.
type System struct {
	exprBase
	Command Expr
}

func (*System) isExpr() {}

// NewSystem allocates a System expression.
func (a *Arena) NewSystem(pos token.Position, cmd Expr) *System {
	n := &System{exprBase: exprBase{base: base{pos}}, Command: cmd}
	a.track(n)
	return n
}

// Syscall is `syscall(num, args...)`.
type Syscall struct {
	exprBase
	Args  []Expr
	Count int
}

func (*Syscall) isExpr() {}

// NewSyscall allocates a Syscall expression.
func (a *Arena) NewSyscall(pos token.Position, args []Expr) *Syscall {
	n := &Syscall{exprBase: exprBase{base: base{pos}}, Args: args, Count: len(args)}
	a.track(n)
	return n
}

// Range is `a..b`, an inclusive-start range literal.
type Range struct {
	exprBase
	Start Expr
	End   Expr
}

func (*Range) isExpr() {}

// NewRange allocates a Range expression.
func (a *Arena) NewRange(pos token.Position, start, end Expr) *Range {
	n := &Range{exprBase: exprBase{base: base{pos}}, Start: start, End: end}
	a.track(n)
	return n
}
