// Package ast defines the arena-allocated, tagged node universe produced by
// the parser and consumed by semantic analysis and code generation.
//
// Nodes are immutable after construction except for the handful of fields
// explicitly called out as typechecker annotations (Scope on Module,
// ResolvedType on expressions). Node identity is the Go pointer handed back
// by the owning Arena; arenas never free individual nodes, only the whole
// batch at teardown.
package ast

import "github.com/Luma-Programming-Language/Luma/internal/token"

// Node is the common interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	isNode()
}

type base struct {
	Position token.Position
}

func (b *base) Pos() token.Position { return b.Position }
func (*base) isNode()               {}

// Preproc nodes: @module / @use.
type Preproc interface {
	Node
	isPreproc()
}

// Stmt nodes: top-level and block-level statements.
type Stmt interface {
	Node
	isStmt()
}

// Expr nodes: anything that produces a value.
type Expr interface {
	Node
	isExpr()
	// resolvedType holds a type attached through SetResolvedType, if any.
	// Neither sema nor codegen sets or reads it; codegen works from the
	// lowered IR values' own types.
	resolvedType() *TypeNode
	setResolvedType(*TypeNode)
}

// TypeNode nodes: Basic, Pointer, Array, Function, Resolution, StructRef.
type TypeNode interface {
	Node
	isType()
}

type exprBase struct {
	base
	Resolved *TypeNode
}

func (e *exprBase) resolvedType() *TypeNode     { return e.Resolved }
func (e *exprBase) setResolvedType(t *TypeNode) { e.Resolved = t }

// SetResolvedType records a resolved type for expr. Safe to call on any
// Expr; ResolvedType reads it back.
func SetResolvedType(e Expr, t TypeNode) { e.setResolvedType(&t) }

// ResolvedType returns the typechecker-assigned type of e, if any.
func ResolvedType(e Expr) (TypeNode, bool) {
	if t := e.resolvedType(); t != nil {
		return *t, true
	}
	return nil, false
}

// Arena owns every node allocated through it. Nodes are never individually
// freed; Release drops the arena's references so the whole batch can be
// collected together, mirroring the bump-allocator lifecycle described by
// the spec's source language.
type Arena struct {
	nodes []Node
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) track(n Node) Node {
	a.nodes = append(a.nodes, n)
	return n
}

// Len reports how many nodes have been allocated from the arena so far.
func (a *Arena) Len() int { return len(a.nodes) }

// Release drops the arena's bookkeeping slice. Nodes already handed out
// remain valid as long as the caller holds references to them; this only
// frees the arena's own accounting, matching the "freed once after the
// final stage" lifecycle in the data model.
func (a *Arena) Release() {
	a.nodes = nil
}
