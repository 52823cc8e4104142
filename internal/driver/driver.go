// Package driver orchestrates the compiler's pipeline stages (§4.2):
// resolve and parse the module graph, typecheck, generate code, emit
// objects, and link — stopping at the first stage that reports an error.
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mewkiz/pkg/term"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/codegen"
	"github.com/Luma-Programming-Language/Luma/internal/config"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
	"github.com/Luma-Programming-Language/Luma/internal/parser"
	"github.com/Luma-Programming-Language/Luma/internal/resolve"
	"github.com/Luma-Programming-Language/Luma/internal/sema"
)

// dbg is a logger which logs pipeline progress with a "luma:" prefix to
// standard error, the same "term"-prefixed debug logger shape the
// teacher's toyc driver uses.
var dbg = logrus.New()

func init() {
	dbg.Out = os.Stderr
	dbg.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
}

// Result is the outcome of a successful build.
type Result struct {
	ExePath string
	ObjPaths []string
}

// Run drives the full pipeline for cfg, returning the produced executable
// path or an error; when a stage has recorded diagnostics, the error lists
// all of them.
func Run(cfg *config.BuildConfig) (*Result, error) {
	reporter := diag.New()

	dbg.Println(term.MagentaBold("luma:") + " resolving module graph")
	arena := ast.NewArena()
	prog, err := buildProgram(arena, reporter, cfg)
	if err != nil {
		return nil, err
	}
	if reporter.HasErrors() {
		return nil, reportErr(reporter)
	}

	dbg.Println(term.MagentaBold("luma:") + " typechecking")
	sema.Check(reporter, arena, prog)
	if reporter.HasErrors() {
		return nil, reportErr(reporter)
	}

	dbg.Println(term.MagentaBold("luma:") + " generating code")
	ctx := codegen.NewContext(reporter)
	codegen.EmitProgram(ctx, prog)
	if reporter.HasErrors() {
		return nil, reportErr(reporter)
	}

	dbg.Println(term.MagentaBold("luma:") + " emitting objects")
	threads := config.CompileThreadCount()
	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}
	objs, err := codegen.EmitObjects(ctx, outDir, threads, cfg.OptLevel)
	if err != nil {
		return nil, err
	}
	if reporter.HasErrors() {
		return nil, reportErr(reporter)
	}

	exeName := cfg.Name
	if exeName == "" {
		exeName = "a.out"
	}
	exePath := filepath.Join(outDir, exeName)

	dbg.Println(term.MagentaBold("luma:") + " linking " + exePath)
	if err := codegen.LinkObjects(objs, exePath, cfg.OptLevel); err != nil {
		return nil, err
	}

	if !cfg.Save {
		for _, obj := range objs {
			os.Remove(obj)
			os.Remove(trimExt(obj) + ".ll")
		}
	}

	return &Result{ExePath: exePath, ObjPaths: objs}, nil
}

func trimExt(path string) string {
	return path[:len(path)-len(filepath.Ext(path))]
}

// buildProgram resolves and parses cfg's entry file plus the transitive
// closure of its `@use` graph, mirroring §4.1: files are visited at most
// once, keyed by their canonicalized absolute path.
func buildProgram(arena *ast.Arena, reporter *diag.Reporter, cfg *config.BuildConfig) (*ast.Program, error) {
	entry := cfg.FilePath
	if entry == "" && len(cfg.Files) > 0 {
		entry = cfg.Files[0]
	}
	entryDir, err := filepath.Abs(filepath.Dir(entry))
	if err != nil {
		return nil, errors.Wrapf(err, "resolving entry directory for %q", entry)
	}
	// A bare `@use "util"` is resolved relative to the project's own source
	// directory, in addition to the usual stdlib roots (§4.1 rule 2).
	res := resolve.New(append([]string{entryDir}, resolve.DefaultStdlibRoots()...)...)
	seen := make(map[string]bool) // absolute file path -> already parsed
	var modules []*ast.Module

	var visit func(path string) error
	visit = func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return errors.Wrapf(err, "resolving path %q", path)
		}
		if seen[abs] {
			return nil
		}
		seen[abs] = true

		src, err := os.ReadFile(abs)
		if err != nil {
			return errors.Wrapf(err, "reading %q", abs)
		}
		dbg.Println(term.MagentaBold("luma:") + " parsing " + abs)
		mod, errs := parser.ParseFile(arena, abs, string(src), len(modules))
		for _, e := range errs {
			reporter.Report(diag.StageParse, e)
		}
		if mod == nil {
			return nil
		}
		modules = append(modules, mod)

		for _, use := range mod.Uses() {
			target, err := res.Resolve(use.ModuleName)
			if err != nil {
				reporter.Report(diag.StageResolve, errors.Wrapf(err, "module %q", mod.Name))
				continue
			}
			if err := visit(target); err != nil {
				return err
			}
		}
		return nil
	}

	entries := cfg.Files
	if len(entries) == 0 && cfg.FilePath != "" {
		entries = []string{cfg.FilePath}
	}
	for _, f := range entries {
		if err := visit(f); err != nil {
			return nil, err
		}
	}

	if len(modules) == 0 {
		return nil, errors.New("no modules parsed successfully")
	}
	return arena.NewProgram(modules[0].Pos(), modules), nil
}

func reportErr(reporter *diag.Reporter) error {
	diags := reporter.All()
	msgs := make([]string, len(diags))
	for i, d := range diags {
		msgs[i] = d.String()
	}
	return errors.Errorf("build failed:\n%s", joinLines(msgs))
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("  %s", l)
	}
	return out
}
