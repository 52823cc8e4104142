// Package sema implements the compiler's typechecker: it seeds a root
// Scope per module, declares every top-level and nested binding, and
// resolves identifier references against those scopes (§4.2 step 6). It is
// deliberately minimal — the source gives codegen the final word on most
// semantic error classes (private-field access, undefined cross-module
// symbols, module/variable name clashes), so this package only needs to
// catch the errors a real front end must catch before codegen ever runs:
// unresolved names, duplicate declarations in one scope, and assignment to
// an immutable binding. Expression types themselves are left for codegen
// to infer structurally from the lowered IR values (§4.5, §4.6).
package sema

import (
	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// Checker holds the whole-program state needed to resolve names across
// module boundaries: every module indexed by name, so a `@use`'d module's
// public symbols are visible without re-parsing anything.
type Checker struct {
	diag    *diag.Reporter
	arena   *ast.Arena
	modules map[string]*ast.Module
}

// Check runs semantic analysis over prog, reporting diagnostics to
// reporter. The driver checks reporter.HasErrors() after this returns and
// aborts the build before codegen if anything was reported (§4.2, §7).
// arena is the same arena the parser allocated prog's nodes from; sema
// uses it to allocate the synthetic struct/enum type-reference nodes a
// declared binding's Symbol.Type points at.
func Check(reporter *diag.Reporter, arena *ast.Arena, prog *ast.Program) {
	c := &Checker{diag: reporter, arena: arena, modules: make(map[string]*ast.Module)}
	for _, m := range prog.Modules {
		if _, exists := c.modules[m.Name]; exists {
			c.diag.Reportf(diag.StageTypecheck, "duplicate module definition %q", m.Name)
			continue
		}
		c.modules[m.Name] = m
	}
	if c.diag.HasErrors() {
		return
	}
	// Seed every module's scope before checking any body: a module used by
	// another may appear later in prog.Modules, and cross-module name
	// resolution (resolveName) needs every used module's top-level scope
	// populated regardless of declaration order.
	for _, m := range prog.Modules {
		c.seedModule(m)
	}
	for _, m := range prog.Modules {
		c.checkModule(m)
	}
}

// seedModule creates m's root scope and declares every top-level binding
// into it, without descending into function bodies.
func (c *Checker) seedModule(m *ast.Module) {
	m.Scope = ast.NewScope(nil)
	for _, stmt := range m.Body {
		c.declareTopLevel(m, stmt)
	}
}

// checkModule validates m's `@use` targets and walks every function body
// to resolve nested names.
func (c *Checker) checkModule(m *ast.Module) {
	// Every @use target must name a known module. Nothing is declared for
	// the use itself: checkExpr skips the object of a compile-time
	// `alias::member` reference and resolveName accepts a bare alias;
	// codegen is the stage that actually resolves them (§4.7, §4.9).
	for _, use := range m.Uses() {
		if _, ok := c.modules[use.ModuleName]; !ok {
			c.diag.Reportf(diag.StageTypecheck, "module %q uses undefined module %q (%s)", m.Name, use.ModuleName, use.Pos())
		}
	}

	for _, stmt := range m.Body {
		c.checkTopLevel(m, stmt)
	}
}

func (c *Checker) declareTopLevel(m *ast.Module, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Function:
		c.declare(m.Scope, &ast.Symbol{Name: s.Name, Type: s.ReturnType, IsPublic: s.IsPublic, IsMutable: false, Pos: s.Pos()})
	case *ast.Struct:
		// Field and method names live in the struct's own member namespace
		// (StructInfo.FieldNames in codegen), not the module scope.
		c.declare(m.Scope, &ast.Symbol{Name: s.Name, Type: c.arena.NewStructTypeRef(s.Pos(), s.Name), IsPublic: s.IsPublic, IsMutable: false, Pos: s.Pos()})
	case *ast.Enum:
		c.declare(m.Scope, &ast.Symbol{Name: s.Name, Type: c.arena.NewStructTypeRef(s.Pos(), s.Name), IsPublic: s.IsPublic, IsMutable: false, Pos: s.Pos()})
		for _, mem := range s.Members {
			c.declare(m.Scope, &ast.Symbol{Name: s.Name + "." + mem.Name, Type: c.arena.NewStructTypeRef(s.Pos(), s.Name), IsPublic: s.IsPublic, IsMutable: false, Pos: s.Pos()})
		}
	case *ast.VarDecl:
		c.declare(m.Scope, &ast.Symbol{Name: s.Name, Type: s.Type, IsPublic: s.IsPublic, IsMutable: s.IsMutable, Pos: s.Pos()})
	}
}

func (c *Checker) declare(scope *ast.Scope, sym *ast.Symbol) {
	if !scope.Declare(sym) {
		c.diag.Reportf(diag.StageTypecheck, "%q is already declared in this scope (%s)", sym.Name, sym.Pos)
	}
}

func (c *Checker) checkTopLevel(m *ast.Module, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Function:
		c.checkFunction(m, s)
	case *ast.Struct:
		for _, f := range append(append([]*ast.FieldDecl{}, s.PublicMembers...), s.PrivateMembers...) {
			if f.Function != nil {
				c.checkFunction(m, f.Function)
			}
		}
	case *ast.VarDecl:
		if s.Initializer != nil {
			c.checkExpr(m, m.Scope, s.Initializer)
		}
	}
}

// checkFunction seeds a child scope with the parameters — for a method,
// `self: *Struct` is already present in fn.Params the same way any other
// parameter is (the language has no implicit receiver, see the Point
// example in §8) — then walks the body.
func (c *Checker) checkFunction(m *ast.Module, fn *ast.Function) {
	scope := ast.NewScope(m.Scope)
	for _, p := range fn.Params {
		c.declare(scope, &ast.Symbol{Name: p.Name, Type: p.Type, IsMutable: true, Pos: fn.Pos()})
	}
	if fn.Body != nil {
		c.checkBlock(m, scope, fn.Body)
	}
}

func (c *Checker) checkBlock(m *ast.Module, parent *ast.Scope, b *ast.Block) {
	scope := ast.NewScope(parent)
	for _, stmt := range b.Stmts {
		c.checkStmt(m, scope, stmt)
	}
}

func (c *Checker) checkStmt(m *ast.Module, scope *ast.Scope, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if s.Initializer != nil {
			c.checkExpr(m, scope, s.Initializer)
		}
		c.declare(scope, &ast.Symbol{Name: s.Name, Type: s.Type, IsMutable: s.IsMutable, Pos: s.Pos()})
	case *ast.ExprStmt:
		c.checkExpr(m, scope, s.X)
	case *ast.ReturnStmt:
		if s.Value != nil {
			c.checkExpr(m, scope, s.Value)
		}
	case *ast.IfStmt:
		c.checkExpr(m, scope, s.Cond)
		c.checkBlock(m, scope, s.Then)
		switch e := s.Else.(type) {
		case *ast.Block:
			c.checkBlock(m, scope, e)
		case *ast.IfStmt:
			c.checkStmt(m, scope, e)
		}
	case *ast.ForStmt:
		forScope := ast.NewScope(scope)
		if s.Init != nil {
			c.checkStmt(m, forScope, s.Init)
		}
		if s.Cond != nil {
			c.checkExpr(m, forScope, s.Cond)
		}
		if s.Post != nil {
			c.checkStmt(m, forScope, s.Post)
		}
		c.checkBlock(m, forScope, s.Body)
	case *ast.Block:
		c.checkBlock(m, scope, s)
	}
}
