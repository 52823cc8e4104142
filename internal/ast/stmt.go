package ast

import "github.com/Luma-Programming-Language/Luma/internal/token"

// Program is the root node: the full set of modules being compiled.
type Program struct {
	base
	Modules []*Module
}

func (*Program) isStmt() {}

// NewProgram allocates a Program node.
func (a *Arena) NewProgram(pos token.Position, modules []*Module) *Program {
	n := &Program{base: base{pos}, Modules: modules}
	a.track(n)
	return n
}

// Param is a function parameter: a name paired with its declared type.
type Param struct {
	Name string
	Type TypeNode
}

// Function is a top-level or struct-method function definition.
type Function struct {
	base
	Name             string
	Params           []Param
	ReturnType       TypeNode
	Body             *Block // nil for declarations without bodies
	IsPublic         bool
	TakesOwnership   bool
	ReturnsOwnership bool
	Doc              string
	// ReceiverStruct is non-empty when this function is a struct method
	// (declared inside a struct's member list); codegen mangles the LLVM
	// name to "<Struct>.<Name>" and prepends the receiver parameter.
	ReceiverStruct string
}

func (*Function) isStmt() {}

// NewFunction allocates a Function node.
func (a *Arena) NewFunction(pos token.Position, f Function) *Function {
	fn := f
	fn.base = base{pos}
	a.track(&fn)
	return &fn
}

// FieldDecl is a struct field declaration, or a method declaration when
// Function is non-nil.
type FieldDecl struct {
	base
	Name     string
	Type     TypeNode
	Function *Function
	Doc      string
	IsPublic bool
}

func (*FieldDecl) isStmt() {}

// NewFieldDecl allocates a FieldDecl node.
func (a *Arena) NewFieldDecl(pos token.Position, name string, typ TypeNode, fn *Function, doc string, public bool) *FieldDecl {
	n := &FieldDecl{base: base{pos}, Name: name, Type: typ, Function: fn, Doc: doc, IsPublic: public}
	a.track(n)
	return n
}

// Struct is a nominal struct type definition with public/private field
// partitions.
type Struct struct {
	base
	Name            string
	PublicMembers   []*FieldDecl
	PrivateMembers  []*FieldDecl
	Doc             string
	IsPublic        bool
}

func (*Struct) isStmt() {}

// NewStruct allocates a Struct node.
func (a *Arena) NewStruct(pos token.Position, name string, pub, priv []*FieldDecl, doc string, isPublic bool) *Struct {
	n := &Struct{base: base{pos}, Name: name, PublicMembers: pub, PrivateMembers: priv, Doc: doc, IsPublic: isPublic}
	a.track(n)
	return n
}

// EnumMember is one `name` (and optional explicit value) inside an enum.
type EnumMember struct {
	Name  string
	Value *int64 // nil means "auto: previous + 1, or 0 for the first"
}

// Enum is an integer-constant enum type definition.
type Enum struct {
	base
	Name     string
	Members  []EnumMember
	IsPublic bool
}

func (*Enum) isStmt() {}

// NewEnum allocates an Enum node.
func (a *Arena) NewEnum(pos token.Position, name string, members []EnumMember, isPublic bool) *Enum {
	n := &Enum{base: base{pos}, Name: name, Members: members, IsPublic: isPublic}
	a.track(n)
	return n
}

// VarDecl is a top-level or local `let`/`const` binding.
type VarDecl struct {
	base
	Name        string
	Type        TypeNode
	Initializer Expr
	IsMutable   bool
	IsPublic    bool
	Doc         string
}

func (*VarDecl) isStmt() {}

// NewVarDecl allocates a VarDecl node.
func (a *Arena) NewVarDecl(pos token.Position, v VarDecl) *VarDecl {
	decl := v
	decl.base = base{pos}
	a.track(&decl)
	return &decl
}

// Block is a `{ ... }` statement sequence.
type Block struct {
	base
	Stmts []Stmt
}

func (*Block) isStmt() {}

// NewBlock allocates a Block node.
func (a *Arena) NewBlock(pos token.Position, stmts []Stmt) *Block {
	n := &Block{base: base{pos}, Stmts: stmts}
	a.track(n)
	return n
}

// ExprStmt is an expression evaluated for its side effects.
type ExprStmt struct {
	base
	X Expr
}

func (*ExprStmt) isStmt() {}

// NewExprStmt allocates an ExprStmt node.
func (a *Arena) NewExprStmt(pos token.Position, x Expr) *ExprStmt {
	n := &ExprStmt{base: base{pos}, X: x}
	a.track(n)
	return n
}

// ReturnStmt is `return expr?;`.
type ReturnStmt struct {
	base
	Value Expr // nil for a bare `return;`
}

func (*ReturnStmt) isStmt() {}

// NewReturnStmt allocates a ReturnStmt node.
func (a *Arena) NewReturnStmt(pos token.Position, value Expr) *ReturnStmt {
	n := &ReturnStmt{base: base{pos}, Value: value}
	a.track(n)
	return n
}

// IfStmt is `if (cond) then else else?`.
type IfStmt struct {
	base
	Cond Expr
	Then *Block
	Else Stmt // *Block or *IfStmt (else-if chain), nil if absent
}

func (*IfStmt) isStmt() {}

// NewIfStmt allocates an IfStmt node.
func (a *Arena) NewIfStmt(pos token.Position, cond Expr, then *Block, els Stmt) *IfStmt {
	n := &IfStmt{base: base{pos}, Cond: cond, Then: then, Else: els}
	a.track(n)
	return n
}

// ForStmt is a C-style `for (init; cond; post) body` loop.
type ForStmt struct {
	base
	Init Stmt // VarDecl or ExprStmt, may be nil
	Cond Expr // may be nil (infinite loop)
	Post Stmt // ExprStmt, may be nil
	Body *Block
}

func (*ForStmt) isStmt() {}

// NewForStmt allocates a ForStmt node.
func (a *Arena) NewForStmt(pos token.Position, init Stmt, cond Expr, post Stmt, body *Block) *ForStmt {
	n := &ForStmt{base: base{pos}, Init: init, Cond: cond, Post: post, Body: body}
	a.track(n)
	return n
}
