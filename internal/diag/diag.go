// Package diag implements the compiler's shared, append-only error
// reporter. Stages append to it as they run; the driver polls it between
// stages and stops the build on the first non-empty report.
package diag

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"

	"github.com/Luma-Programming-Language/Luma/internal/token"
)

// Stage names a pipeline stage, used to prefix reported diagnostics.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
	StageTypecheck Stage = "typecheck"
	StageCodegen Stage = "codegen"
	StageBackend Stage = "backend"
	StageLink    Stage = "link"
)

// Diagnostic is one reported error, tied to the stage that raised it and,
// where applicable, a source position.
type Diagnostic struct {
	Stage Stage
	Pos   *token.Position
	Err   error
}

func (d *Diagnostic) String() string {
	if d.Pos != nil {
		return fmt.Sprintf("%s: %s: %v", d.Stage, d.Pos, d.Err)
	}
	return fmt.Sprintf("%s: %v", d.Stage, d.Err)
}

// Reporter is the process-global, append-only diagnostic sink. It is safe
// for concurrent use so that parallel object emission (§4.8) can report
// per-unit failures without a data race.
type Reporter struct {
	mu   sync.Mutex
	diags []Diagnostic
}

// New returns an empty Reporter.
func New() *Reporter {
	return &Reporter{}
}

// Report records a diagnostic at the given stage with no associated
// position.
func (r *Reporter) Report(stage Stage, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = append(r.diags, Diagnostic{Stage: stage, Err: err})
}

// Reportf is a convenience wrapper building the error via errors.Errorf,
// which retains a stack trace the way the rest of the module's error
// values do.
func (r *Reporter) Reportf(stage Stage, format string, args ...interface{}) {
	r.Report(stage, errors.Errorf(format, args...))
}

// ReportAt records a diagnostic tied to a source position.
func (r *Reporter) ReportAt(stage Stage, pos token.Position, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := pos
	r.diags = append(r.diags, Diagnostic{Stage: stage, Pos: &p, Err: err})
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.diags) > 0
}

// All returns a snapshot of every diagnostic reported so far, in report
// order.
func (r *Reporter) All() []Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

// Clear drops every recorded diagnostic. Nothing in the pipeline calls it:
// the driver keeps every diagnostic of a build until the Reporter is
// discarded.
func (r *Reporter) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diags = nil
}
