// Command lumac is the Luma compiler's CLI front end: it assembles a
// BuildConfig from flags (and an optional luma.yaml project file) and
// drives the pipeline in internal/driver.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/Luma-Programming-Language/Luma/internal/config"
	"github.com/Luma-Programming-Language/Luma/internal/driver"
)

var (
	green = color.New(color.FgGreen, color.Bold).SprintFunc()
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
)

func main() {
	var (
		name     = flag.String("o", "", "output executable name")
		document = flag.Bool("document", false, "report that the documentation generator is not implemented and exit")
		threads  = flag.Int("threads", 0, "override LUMA_COMPILE_THREADS for this build")
		save     = flag.Bool("save", false, "keep intermediate .ll and .o files")
		optLevel = flag.Int("O", 0, "optimization level (0-3)")
		project  = flag.String("project", "luma.yaml", "path to a project file, if present")
	)
	flag.Usage = printHelp
	flag.Parse()

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(1)
	}

	cfg := &config.BuildConfig{
		FilePath:   flag.Arg(0),
		Files:      flag.Args(),
		Name:       *name,
		Save:       *save,
		OptLevel:   *optLevel,
		IsDocument: *document,
	}
	if proj, err := config.LoadProject(*project); err == nil {
		config.ApplyProject(cfg, proj)
	}
	if cfg.Name == "" {
		cfg.Name = "a.out"
	}

	if *threads > 0 {
		os.Setenv("LUMA_COMPILE_THREADS", fmt.Sprintf("%d", *threads))
	}

	if cfg.IsDocument {
		// The documentation generator is out of scope for this core (§1,
		// see DESIGN.md's Open Question decision); report the fact and stop
		// rather than silently doing nothing.
		fmt.Fprintln(os.Stderr, "lumac: --document is not implemented in this build")
		os.Exit(1)
	}

	start := time.Now()
	res, err := driver.Run(cfg)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("Build failed:"), err)
		os.Exit(1)
	}

	fmt.Printf("%s Written to '%s' (%s)\n", green("Build succeeded!"), res.ExePath, formatElapsed(elapsed))
}

func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func printHelp() {
	fmt.Fprintln(os.Stderr, `usage: lumac [flags] <file.lm> [more files...]

flags:
  -o <name>        output executable name
  -O <0-3>         optimization level
  -threads <n>     override compile thread count
  -save            keep intermediate .ll/.o files
  -document        report that the doc generator is not implemented; exit 1
  -project <path>  project file to load (default luma.yaml)`)
}
