package codegen

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"github.com/pkg/errors"

	"github.com/Luma-Programming-Language/Luma/internal/diag"
)

// installCrashHandlers arms SIGSEGV/SIGILL handlers for the duration of
// emission (§4.8, §9 "Fatal-runtime"): malformed IR can crash the backend
// tool invoked below, and the source prints a diagnostic and exits 1
// rather than leaving a bare signal-death exit code. The returned func
// disarms the handler; callers defer it immediately.
func installCrashHandlers() func() {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGSEGV, syscall.SIGILL)
	done := make(chan struct{})
	go func() {
		select {
		case sig := <-ch:
			fmt.Fprintf(os.Stderr, "luma: fatal signal during object emission: %v\n", sig)
			os.Exit(1)
		case <-done:
		}
	}()
	return func() {
		close(done)
		signal.Stop(ch)
	}
}

// EmitObjects runs §4.8's object-emission stage: every unit's module is
// written out as textual LLVM IR and handed to the external `llc` backend
// to lower into a native object file at CodeGenLevelNone ("-O0"),
// RelocPIC ("-relocation-model=pic"), and CodeModelSmall
// ("-code-model=small"), matching the target-machine configuration the
// source builds directly against the IR library's C API. llir/llvm is a
// pure-Go IR builder with no target-machine/object-writer of its own, so
// the one faithful way to reach that exact configuration without
// fabricating an API this library does not expose is to shell out to the
// LLVM tool that owns it, the same way the source shells out to the
// platform linker in the very next step.
//
// Units are compiled by a worker pool sized by config.CompileThreadCount
// (the caller passes threads), matching §4.8's parallel compile step.
// Returns the object file paths in unit order. If any unit fails, each
// failure is recorded in ctx.Diag and a generic "object emission failed"
// error is returned.
func EmitObjects(ctx *Context, outDir string, threads int, optLevel int) ([]string, error) {
	disarm := installCrashHandlers()
	defer disarm()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %q", outDir)
	}
	if threads < 1 {
		threads = 1
	}
	if threads > len(ctx.Units) && len(ctx.Units) > 0 {
		threads = len(ctx.Units)
	}

	objs := make([]string, len(ctx.Units))
	jobs := make(chan int, len(ctx.Units))
	for i := range ctx.Units {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				u := ctx.Units[i]
				obj, err := emitUnitObject(u, outDir, optLevel)
				if err != nil {
					ctx.Diag.Report(diag.StageBackend, errors.Wrapf(err, "emitting object for module %q", u.Name))
					continue
				}
				objs[i] = obj
			}
		}()
	}
	wg.Wait()

	if ctx.Diag.HasErrors() {
		return nil, errors.New("object emission failed")
	}
	return objs, nil
}

// emitUnitObject writes u's module to <outDir>/<name>.ll, then invokes
// `llc` to produce <outDir>/<name>.o.
func emitUnitObject(u *ModuleUnit, outDir string, optLevel int) (string, error) {
	llPath := filepath.Join(outDir, u.Name+".ll")
	objPath := filepath.Join(outDir, u.Name+".o")

	f, err := os.Create(llPath)
	if err != nil {
		return "", errors.Wrapf(err, "creating %q", llPath)
	}
	_, writeErr := u.Module.WriteTo(f)
	closeErr := f.Close()
	if writeErr != nil {
		return "", errors.Wrapf(writeErr, "writing IR for module %q", u.Name)
	}
	if closeErr != nil {
		return "", errors.Wrapf(closeErr, "closing %q", llPath)
	}

	args := []string{
		"-filetype=obj",
		fmt.Sprintf("-O%d", clampOptLevel(optLevel)),
		"-relocation-model=pic",
		"-code-model=small",
		"-o", objPath,
		llPath,
	}
	cmd := exec.Command("llc", args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "llc failed for module %q", u.Name)
	}
	return objPath, nil
}

func clampOptLevel(n int) int {
	if n < 0 {
		return 0
	}
	if n > 3 {
		return 3
	}
	return n
}

// LinkObjects invokes the system C compiler driver as a linker (§4.8):
// on Darwin, `cc -O<n> -Wl,-dead_strip -o <exe> <objs...>` (falling back
// to `gcc` on failure), followed by `strip -x <exe>`; on every other
// platform, `cc -O<n> -pie -o <exe> <objs...>` (falling back to
// `gcc -no-pie`). A non-zero exit from both compiler drivers is a link
// failure.
func LinkObjects(objs []string, exePath string, optLevel int) error {
	n := clampOptLevel(optLevel)
	opt := fmt.Sprintf("-O%d", n)

	var primary, fallback []string
	if runtime.GOOS == "darwin" {
		primary = append([]string{"cc", opt, "-Wl,-dead_strip", "-o", exePath}, objs...)
		fallback = append([]string{"gcc", opt, "-Wl,-dead_strip", "-o", exePath}, objs...)
	} else {
		primary = append([]string{"cc", opt, "-pie", "-o", exePath}, objs...)
		fallback = append([]string{"gcc", opt, "-no-pie", "-o", exePath}, objs...)
	}

	if err := runLinker(primary); err != nil {
		if fbErr := runLinker(fallback); fbErr != nil {
			return errors.Wrapf(fbErr, "linking %q (cc failed: %v)", exePath, err)
		}
	}

	if runtime.GOOS == "darwin" {
		strip := exec.Command("strip", "-x", exePath)
		strip.Stderr = os.Stderr
		if err := strip.Run(); err != nil {
			return errors.Wrapf(err, "stripping %q", exePath)
		}
	}
	return nil
}

func runLinker(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stdout
	return cmd.Run()
}
