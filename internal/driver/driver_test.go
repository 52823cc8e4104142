package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/config"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

func writeFile(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestBuildProgramDiscoversUsedModulesOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.lm", `@module "util"
pub const add -> fn(a: int, b: int) int { return a + b; };`)
	main := writeFile(t, dir, "main.lm", `@module "main"
@use "util"
const main -> fn() int { return util::add(2, 3); };`)

	arena := ast.NewArena()
	reporter := diag.New()
	cfg := &config.BuildConfig{FilePath: main}

	prog, err := buildProgram(arena, reporter, cfg)
	require.NoError(t, err)
	require.False(t, reporter.HasErrors(), reporter.All())
	require.Len(t, prog.Modules, 2)

	names := map[string]bool{}
	for _, m := range prog.Modules {
		names[m.Name] = true
	}
	require.True(t, names["main"])
	require.True(t, names["util"])
}

func TestBuildProgramReportsUnresolvedUse(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.lm", `@module "main"
@use "missing"
const main -> fn() int { return 0; };`)

	arena := ast.NewArena()
	reporter := diag.New()
	cfg := &config.BuildConfig{FilePath: main}

	_, err := buildProgram(arena, reporter, cfg)
	require.NoError(t, err)
	require.True(t, reporter.HasErrors())
}
