package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

func TestClampOptLevel(t *testing.T) {
	require.Equal(t, 0, clampOptLevel(-1))
	require.Equal(t, 0, clampOptLevel(0))
	require.Equal(t, 2, clampOptLevel(2))
	require.Equal(t, 3, clampOptLevel(3))
	require.Equal(t, 3, clampOptLevel(99))
}

func TestEmitObjectsCreatesOutputDirWithNoUnits(t *testing.T) {
	reporter := diag.New()
	ctx := NewContext(reporter)
	outDir := filepath.Join(t.TempDir(), "out")

	objs, err := EmitObjects(ctx, outDir, 4, 0)
	require.NoError(t, err)
	require.Empty(t, objs)

	fi, statErr := os.Stat(outDir)
	require.NoError(t, statErr)
	require.True(t, fi.IsDir())
}
