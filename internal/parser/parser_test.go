package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
)

func TestParseHelloWorldModule(t *testing.T) {
	src := `@module "main"
const main -> fn() int { outputln("hi"); return 0; };`

	arena := ast.NewArena()
	mod, errs := ParseFile(arena, "main.lm", src, 0)
	require.Empty(t, errs)
	require.Equal(t, "main", mod.Name)
	require.Len(t, mod.Body, 1)

	fn, ok := mod.Body[0].(*ast.Function)
	require.True(t, ok)
	require.Equal(t, "main", fn.Name)
	require.Len(t, fn.Body.Stmts, 2)
}

func TestParseUseAndCrossModuleCall(t *testing.T) {
	src := `@module "main"
@use "util"
const main -> fn() int { return util::add(2, 3); };`

	arena := ast.NewArena()
	mod, errs := ParseFile(arena, "main.lm", src, 0)
	require.Empty(t, errs)

	uses := mod.Uses()
	require.Len(t, uses, 1)
	require.Equal(t, "util", uses[0].ModuleName)

	fn := mod.Body[1].(*ast.Function)
	ret := fn.Body.Stmts[0].(*ast.ReturnStmt)
	call := ret.Value.(*ast.Call)
	member := call.Callee.(*ast.Member)
	require.True(t, member.IsCompileTime)
	require.Equal(t, "add", member.MemberName)
}

func TestParsePublicEnum(t *testing.T) {
	src := `@module "colors"
pub const Color -> enum { RED, GREEN, BLUE };`

	arena := ast.NewArena()
	mod, errs := ParseFile(arena, "colors.lm", src, 0)
	require.Empty(t, errs)

	enum := mod.Body[0].(*ast.Enum)
	require.True(t, enum.IsPublic)
	require.Len(t, enum.Members, 3)
	require.Equal(t, "GREEN", enum.Members[1].Name)
}

func TestParseStructWithPublicPrivatePartitionsAndMethod(t *testing.T) {
	src := `@module "main"
pub const Point -> struct {
  pub: x: int, y: int, distance: fn(self: *Point) int { return self.x + self.y; }
};`

	arena := ast.NewArena()
	mod, errs := ParseFile(arena, "main.lm", src, 0)
	require.Empty(t, errs)

	st := mod.Body[0].(*ast.Struct)
	require.True(t, st.IsPublic)
	require.Len(t, st.PublicMembers, 3)
	require.Empty(t, st.PrivateMembers)

	method := st.PublicMembers[2]
	require.NotNil(t, method.Function)
	require.Equal(t, "distance", method.Function.Name)
}

func TestParsePointerCastSizeofAndIndexAssignment(t *testing.T) {
	src := `@module "main"
const main -> fn() int {
  let p: *int = cast<*int>(alloc(8 * sizeof<int>));
  p[0] = 42;
  return p[0] + p[1];
};`

	arena := ast.NewArena()
	_, errs := ParseFile(arena, "main.lm", src, 0)
	require.Empty(t, errs)
}

func TestParseOwnershipMarkers(t *testing.T) {
	src := `@module "main"
const main -> fn() int #takes_ownership #returns_ownership { return 0; };`

	arena := ast.NewArena()
	mod, errs := ParseFile(arena, "main.lm", src, 0)
	require.Empty(t, errs)
	fn := mod.Body[0].(*ast.Function)
	require.True(t, fn.TakesOwnership)
	require.True(t, fn.ReturnsOwnership)
}

func TestParseRangeLiteral(t *testing.T) {
	src := `@module "main"
const main -> fn() int { let r = 1..10; return 0; };`
	arena := ast.NewArena()
	_, errs := ParseFile(arena, "main.lm", src, 0)
	require.Empty(t, errs)
}
