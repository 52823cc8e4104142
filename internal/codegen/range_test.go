package codegen

import (
	"testing"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/require"

	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// newTestFuncGen builds a minimal funcGen with one block, enough to lower
// range expressions and their helpers in isolation.
func newTestFuncGen(t *testing.T) *funcGen {
	t.Helper()
	ctx := NewContext(diag.New())
	m := ir.NewModule()
	f := m.NewFunc("test", types.I64)
	fg := newFuncGen(ctx, &ModuleUnit{Name: "test", Module: m})
	fg.f = f
	fg.cur = f.NewBlock("entry")
	return fg
}

func TestRangeContainsChecksBothBoundsInclusive(t *testing.T) {
	fg := newTestFuncGen(t)
	start := constant.NewInt(types.I64, 1)
	end := constant.NewInt(types.I64, 10)
	rangeVal := buildRangeStruct(fg, start, end)

	value := constant.NewInt(types.I64, 5)
	got := rangeContains(fg, rangeVal, value)
	require.Equal(t, types.I1, got.Type())

	and, ok := got.(*ir.InstAnd)
	require.True(t, ok)
	ge, ok := and.X.(*ir.InstICmp)
	require.True(t, ok)
	require.Equal(t, "sge", ge.Pred.String())
	le, ok := and.Y.(*ir.InstICmp)
	require.True(t, ok)
	require.Equal(t, "sle", le.Pred.String())
}

func TestRangeLengthIsInclusive(t *testing.T) {
	fg := newTestFuncGen(t)
	start := constant.NewInt(types.I64, 1)
	end := constant.NewInt(types.I64, 10)
	rangeVal := buildRangeStruct(fg, start, end)

	got := rangeLength(fg, rangeVal)
	require.Equal(t, types.I64, got.Type())

	add, ok := got.(*ir.InstAdd)
	require.True(t, ok)
	diff, ok := add.X.(*ir.InstSub)
	require.True(t, ok)

	endExtract, ok := diff.X.(*ir.InstExtractValue)
	require.True(t, ok)
	require.Equal(t, []uint64{1}, endExtract.Indices)
	startExtract, ok := diff.Y.(*ir.InstExtractValue)
	require.True(t, ok)
	require.Equal(t, []uint64{0}, startExtract.Indices)

	require.Equal(t, constant.NewInt(types.I64, 1), add.Y)
}
