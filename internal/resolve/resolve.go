// Package resolve turns `@use` path strings into concrete source file
// paths, per the three-rule order in the module path grammar.
package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound is returned when a module path could not be located on any
// standard-library root or as given.
var ErrNotFound = errors.New("module not found")

// Resolver resolves `@use` path strings against a set of standard-library
// search roots.
type Resolver struct {
	stdlibRoots []string
}

// New returns a Resolver searching the given standard-library roots, in
// order. If none are given, "std" relative to the working directory and
// the LUMA_STDLIB environment variable (if set) are used.
func New(stdlibRoots ...string) *Resolver {
	if len(stdlibRoots) == 0 {
		stdlibRoots = defaultStdlibRoots()
	}
	return &Resolver{stdlibRoots: stdlibRoots}
}

// DefaultStdlibRoots returns the roots New() falls back to when called with
// no explicit roots, exported so callers (e.g. the driver) can prepend a
// project-specific root while still keeping the usual stdlib search path.
func DefaultStdlibRoots() []string {
	return defaultStdlibRoots()
}

func defaultStdlibRoots() []string {
	var roots []string
	if env := os.Getenv("LUMA_STDLIB"); env != "" {
		for _, p := range filepath.SplitList(env) {
			if p != "" {
				roots = append(roots, p)
			}
		}
	}
	roots = append(roots, "std")
	if exe, err := os.Executable(); err == nil {
		roots = append(roots, filepath.Join(filepath.Dir(exe), "std"))
	}
	return roots
}

// Roots returns the configured standard-library search roots, for
// diagnostics.
func (r *Resolver) Roots() []string { return r.stdlibRoots }

// Resolve implements the exact 3-rule order from §4.1:
//  1. `std/...` (either separator) is searched against the stdlib roots.
//  2. a bare identifier with no separator is retried as `std/<name>`.
//  3. anything else is returned as given.
func (r *Resolver) Resolve(importPath string) (string, error) {
	normalized := filepath.ToSlash(importPath)

	if strings.HasPrefix(normalized, "std/") {
		rel := strings.TrimPrefix(normalized, "std/")
		if path, ok := r.searchStdlib(rel); ok {
			return path, nil
		}
		return "", errors.Wrapf(ErrNotFound, "%q not found under any of %v", importPath, r.stdlibRoots)
	}

	if !strings.ContainsAny(normalized, "/\\") {
		if _, err := os.Stat(withExt(importPath)); err == nil {
			return withExt(importPath), nil
		}
		if path, ok := r.searchStdlib(normalized); ok {
			return path, nil
		}
		return "", errors.Wrapf(ErrNotFound, "%q not found as given or under %v", importPath, r.stdlibRoots)
	}

	return withExt(importPath), nil
}

func (r *Resolver) searchStdlib(rel string) (string, bool) {
	for _, root := range r.stdlibRoots {
		candidate := filepath.Join(root, withExt(rel))
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

func withExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".lm"
	}
	return path
}
