package ast

import "github.com/Luma-Programming-Language/Luma/internal/token"

// Use is an `@use "path" [as alias]` import directive.
type Use struct {
	base
	ModuleName string // the raw path string, before resolution
	Alias      string // empty when no `as alias` clause was given
}

func (*Use) isPreproc() {}

// NewUse allocates a Use node.
func (a *Arena) NewUse(pos token.Position, modulePath, alias string) *Use {
	n := &Use{base: base{pos}, ModuleName: modulePath, Alias: alias}
	a.track(n)
	return n
}

// Module is the single top-level declaration every source file contains:
// `@module "name"` followed by a sequence of `@use` directives and
// top-level statements.
type Module struct {
	base
	Name       string
	DocComment string
	Body       []Stmt // Use nodes interleaved with Function/Struct/Enum/VarDecl
	FilePath   string // canonicalized absolute path
	Tokens     []token.Token
	Position   int // index of this module within the enclosing Program

	// Scope is filled in by semantic analysis; codegen reads it read-only.
	Scope *Scope
}

func (*Module) isPreproc() {}

// Uses returns the @use directives among Body, in source order.
func (m *Module) Uses() []*Use {
	var uses []*Use
	for _, s := range m.Body {
		if u, ok := s.(*useStmt); ok {
			uses = append(uses, u.Use)
		}
	}
	return uses
}

// useStmt adapts a *Use (a Preproc node) to satisfy Stmt, since a Module's
// Body is a flat statement sequence per the data model even though `@use`
// is categorized as a Preprocessor node kind.
type useStmt struct {
	base
	Use *Use
}

func (*useStmt) isStmt() {}

// NewUseStmt wraps a Use node so it can appear in a Module's Body.
func (a *Arena) NewUseStmt(u *Use) Stmt {
	n := &useStmt{base: base{u.Pos()}, Use: u}
	a.track(n)
	return n
}

// AsUse reports whether s is a wrapped Use statement, returning the Use if so.
func AsUse(s Stmt) (*Use, bool) {
	if u, ok := s.(*useStmt); ok {
		return u.Use, true
	}
	return nil, false
}

// NewModule allocates a Module node.
func (a *Arena) NewModule(pos token.Position, name string, body []Stmt, filePath string, tokens []token.Token, index int) *Module {
	n := &Module{
		base:     base{pos},
		Name:     name,
		Body:     body,
		FilePath: filePath,
		Tokens:   tokens,
		Position: index,
	}
	a.track(n)
	return n
}
