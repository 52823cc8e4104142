package sema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
	"github.com/Luma-Programming-Language/Luma/internal/parser"
)

func parseModule(t *testing.T, arena *ast.Arena, name, src string) *ast.Module {
	t.Helper()
	mod, errs := parser.ParseFile(arena, name, src, 0)
	require.Empty(t, errs)
	return mod
}

func TestCheckHelloWorldHasNoErrors(t *testing.T) {
	arena := ast.NewArena()
	mod := parseModule(t, arena, "main.lm", `@module "main"
const main -> fn() int { outputln("hi"); return 0; };`)

	reporter := diag.New()
	Check(reporter, arena, &ast.Program{Modules: []*ast.Module{mod}})
	require.False(t, reporter.HasErrors(), reporter.All())
}

func TestCheckCrossModuleCallResolvesUsedModulePublicSymbol(t *testing.T) {
	arena := ast.NewArena()
	util := parseModule(t, arena, "util.lm", `@module "util"
pub const add -> fn(a: int, b: int) int { return a + b; };`)
	main := parseModule(t, arena, "main.lm", `@module "main"
@use "util"
const main -> fn() int { return util::add(2, 3); };`)

	reporter := diag.New()
	Check(reporter, arena, &ast.Program{Modules: []*ast.Module{main, util}})
	require.False(t, reporter.HasErrors(), reporter.All())
}

func TestCheckUndefinedSymbolReported(t *testing.T) {
	arena := ast.NewArena()
	mod := parseModule(t, arena, "main.lm", `@module "main"
const main -> fn() int { return nope; };`)

	reporter := diag.New()
	Check(reporter, arena, &ast.Program{Modules: []*ast.Module{mod}})
	require.True(t, reporter.HasErrors())
}

func TestCheckAssignToImmutableBindingReported(t *testing.T) {
	arena := ast.NewArena()
	mod := parseModule(t, arena, "main.lm", `@module "main"
const main -> fn() int { const x: int = 1; x = 2; return x; };`)

	reporter := diag.New()
	Check(reporter, arena, &ast.Program{Modules: []*ast.Module{mod}})
	require.True(t, reporter.HasErrors())
}

func TestCheckMethodSelfParameterResolvesWithoutImplicitInjection(t *testing.T) {
	arena := ast.NewArena()
	mod := parseModule(t, arena, "main.lm", `@module "main"
pub const Point -> struct { pub: x: int, y: int, distance: fn(self: *Point) int { return self.x + self.y; } };
const main -> fn() int { return 0; };`)

	reporter := diag.New()
	Check(reporter, arena, &ast.Program{Modules: []*ast.Module{mod}})
	require.False(t, reporter.HasErrors(), reporter.All())
}

func TestCheckDuplicateModuleNameReported(t *testing.T) {
	arena := ast.NewArena()
	a := parseModule(t, arena, "a.lm", `@module "dup"
const f -> fn() int { return 0; };`)
	b := parseModule(t, arena, "b.lm", `@module "dup"
const g -> fn() int { return 1; };`)

	reporter := diag.New()
	Check(reporter, arena, &ast.Program{Modules: []*ast.Module{a, b}})
	require.True(t, reporter.HasErrors())
}

func TestCheckUndefinedUsedModuleReported(t *testing.T) {
	arena := ast.NewArena()
	mod := parseModule(t, arena, "main.lm", `@module "main"
@use "missing"
const main -> fn() int { return 0; };`)

	reporter := diag.New()
	Check(reporter, arena, &ast.Program{Modules: []*ast.Module{mod}})
	require.True(t, reporter.HasErrors())
}
