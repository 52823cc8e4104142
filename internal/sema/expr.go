package sema

import (
	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// checkExpr recurses through e resolving every identifier reference
// against scope, and flags assignment to an immutable binding. It does
// not attempt full type inference; codegen tolerates an unannotated
// expression by falling back to structural inference from the lowered IR
// values themselves (§4.5, §4.6).
func (c *Checker) checkExpr(m *ast.Module, scope *ast.Scope, e ast.Expr) {
	switch n := e.(type) {
	case *ast.Literal:
		// no name to resolve
	case *ast.Identifier:
		c.resolveName(m, scope, n.Name, n.Pos())
	case *ast.Binary:
		c.checkExpr(m, scope, n.Left)
		c.checkExpr(m, scope, n.Right)
	case *ast.Unary:
		c.checkExpr(m, scope, n.Operand)
		if id, ok := n.Operand.(*ast.Identifier); ok {
			c.checkMutableTarget(m, scope, id)
		}
	case *ast.Call:
		if mem, ok := n.Callee.(*ast.Member); ok {
			if !mem.IsCompileTime {
				c.checkExpr(m, scope, mem.Object)
			}
		} else {
			c.checkExpr(m, scope, n.Callee)
		}
		for _, a := range n.Args {
			c.checkExpr(m, scope, a)
		}
	case *ast.Member:
		if n.IsCompileTime {
			// `Mod::sym` / `Mod::Type::Member` — the object is a module or
			// type alias, not a value; codegen resolves it (§4.9).
			return
		}
		c.checkExpr(m, scope, n.Object)
	case *ast.Index:
		c.checkExpr(m, scope, n.Object)
		c.checkExpr(m, scope, n.Idx)
	case *ast.Assignment:
		c.checkExpr(m, scope, n.Value)
		c.checkExpr(m, scope, n.Target)
		if id, ok := n.Target.(*ast.Identifier); ok {
			c.checkMutableTarget(m, scope, id)
		}
	case *ast.Cast:
		c.checkExpr(m, scope, n.Castee)
	case *ast.Deref:
		c.checkExpr(m, scope, n.Operand)
	case *ast.Addr:
		c.checkExpr(m, scope, n.Operand)
	case *ast.Array:
		for _, el := range n.Elements {
			c.checkExpr(m, scope, el)
		}
	case *ast.SizeOf:
		if !n.IsType {
			c.checkExpr(m, scope, n.Object.(ast.Expr))
		}
	case *ast.Alloc:
		c.checkExpr(m, scope, n.Size)
	case *ast.Free:
		c.checkExpr(m, scope, n.Ptr)
	case *ast.Input:
		if n.Msg != nil {
			c.checkExpr(m, scope, n.Msg)
		}
	case *ast.System:
		c.checkExpr(m, scope, n.Command)
	case *ast.Syscall:
		for _, a := range n.Args {
			c.checkExpr(m, scope, a)
		}
	case *ast.Range:
		c.checkExpr(m, scope, n.Start)
		c.checkExpr(m, scope, n.End)
	}
}

// resolveName looks name up in scope (which chains up to the module's
// root scope), falling back to the public top-level names of every
// `@use`'d module, looked up by their raw name; a bare `@use` alias is
// also accepted. Anything else is reported as undefined.
func (c *Checker) resolveName(m *ast.Module, scope *ast.Scope, name string, pos interface{ String() string }) {
	if _, ok := scope.Lookup(name); ok {
		return
	}
	for _, use := range m.Uses() {
		if use.Alias != "" && use.Alias == name {
			return // bare module alias used as a value is a codegen-time error (§4.9's "did you mean" hint), not sema's job
		}
		src, ok := c.modules[use.ModuleName]
		if !ok {
			continue
		}
		if sym, ok := src.Scope.LookupLocal(name); ok && sym.IsPublic {
			return
		}
	}
	c.diag.Reportf(diag.StageTypecheck, "undefined symbol %q (%s)", name, pos.String())
}

// checkMutableTarget reports an error when id names an immutable binding
// being written to.
func (c *Checker) checkMutableTarget(m *ast.Module, scope *ast.Scope, id *ast.Identifier) {
	sym, ok := scope.Lookup(id.Name)
	if !ok || sym.IsMutable {
		return
	}
	c.diag.Reportf(diag.StageTypecheck, "cannot assign to immutable binding %q (%s)", id.Name, id.Pos())
}
