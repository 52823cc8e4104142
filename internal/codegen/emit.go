package codegen

import (
	"github.com/rickypai/natsort"

	"github.com/Luma-Programming-Language/Luma/internal/ast"
	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// EmitProgram runs the three-pass multi-module emission algorithm of §4.4
// over prog, returning the populated Context. Errors are reported to
// ctx.Diag; the caller should check ctx.Diag.HasErrors() before proceeding
// to object emission.
func EmitProgram(ctx *Context, prog *ast.Program) {
	declareUnits(ctx, prog)
	if ctx.Diag.HasErrors() {
		return
	}
	processUses(ctx, prog)
	if ctx.Diag.HasErrors() {
		return
	}
	emitBodiesInDependencyOrder(ctx, prog)
	ctx.preprocessCaches()
}

// declareUnits is Pass 1: create an empty IR module unit per source module,
// rejecting duplicate module names.
func declareUnits(ctx *Context, prog *ast.Program) {
	names := make(map[string]bool)
	// Sorted iteration (natsort, as the teacher's lowering pass does for
	// deterministic output) keeps unit creation order stable across runs.
	sorted := make([]*ast.Module, len(prog.Modules))
	copy(sorted, prog.Modules)
	sortModulesByName(sorted)

	for _, m := range sorted {
		if names[m.Name] {
			ctx.Diag.Reportf(diag.StageCodegen, "duplicate module definition %q (%s)", m.Name, m.Pos())
			continue
		}
		names[m.Name] = true
		u := newModuleUnit(m.Name, m)
		ctx.Units = append(ctx.Units, u)
		ctx.byName[m.Name] = u
	}
}

func sortModulesByName(mods []*ast.Module) {
	names := make([]string, len(mods))
	byName := make(map[string]*ast.Module, len(mods))
	for i, m := range mods {
		names[i] = m.Name
		byName[m.Name] = m
	}
	natsort.Strings(names)
	for i, n := range names {
		mods[i] = byName[n]
	}
}

// processUses is Pass 2: for each module, for each @use child, import the
// source module's public symbols under either the raw name or
// "alias.name" (§4.4).
func processUses(ctx *Context, prog *ast.Program) {
	for _, u := range ctx.Units {
		for _, use := range u.SourceMod.Uses() {
			src, ok := ctx.byName[use.ModuleName]
			if !ok {
				ctx.Diag.Reportf(diag.StageCodegen, "module %q uses undefined module %q", u.Name, use.ModuleName)
				continue
			}
			importPublicSymbols(ctx, u, src, use.Alias)
		}
	}
}

// importPublicSymbols imports every public symbol of src into dst, per
// §4.4 Pass 2 / §4.7: functions get a cloned external declaration with
// matching type and calling convention; variables get an external global.
func importPublicSymbols(ctx *Context, dst, src *ModuleUnit, alias string) {
	for name, sym := range src.Symbols {
		if !sym.IsPublic {
			continue
		}
		imported := declareExternalFor(dst, sym)
		dst.Symbols[name] = imported
		if alias != "" {
			dst.Symbols[alias+"."+name] = imported
		}
	}
}

// emitBodiesInDependencyOrder is Pass 3: a depth-first post-order walk over
// the @use graph (children before parents), emitting each module's
// non-`use` statements exactly once. Cyclic imports are rejected outright
// (§4.4, §9 "Import cycles"): a revisited in-progress node is a cycle, and
// is reported as a codegen-logic error naming the full chain rather than
// silently truncated, since §8's topological emission-order invariant
// would otherwise be violated by whichever partial order a silent
// short-circuit happened to produce.
func emitBodiesInDependencyOrder(ctx *Context, prog *ast.Program) {
	visiting := make(map[string]bool)
	var path []string
	var visit func(u *ModuleUnit)
	visit = func(u *ModuleUnit) {
		if u.processed {
			return
		}
		if visiting[u.Name] {
			ctx.Diag.Reportf(diag.StageCodegen, "import cycle detected: %s -> %s", joinModulePath(path), u.Name)
			return
		}
		visiting[u.Name] = true
		path = append(path, u.Name)
		for _, use := range u.SourceMod.Uses() {
			if dep, ok := ctx.byName[use.ModuleName]; ok {
				visit(dep)
			}
		}
		path = path[:len(path)-1]
		visiting[u.Name] = false

		ctx.current = u
		fg := newFuncGen(ctx, u)
		for _, stmt := range u.SourceMod.Body {
			if _, isUse := ast.AsUse(stmt); isUse {
				continue
			}
			emitTopLevelStmt(fg, stmt)
		}
		u.processed = true
	}

	for _, u := range ctx.Units {
		visit(u)
	}
}

func joinModulePath(path []string) string {
	out := path[0]
	for _, p := range path[1:] {
		out += " -> " + p
	}
	return out
}
