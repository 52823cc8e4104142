// Package config defines the compiler's build configuration and the
// optional project file that seeds it.
package config

import (
	"os"
	"runtime"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultCompileThreads is used when neither LUMA_COMPILE_THREADS nor a
	// detectable CPU count is available.
	DefaultCompileThreads = 4
	// MaxCompileThreads bounds LUMA_COMPILE_THREADS regardless of the value
	// requested.
	MaxCompileThreads = 64
)

// BuildConfig mirrors the CLI surface described in §6: what to build, where
// to write it, and under what options.
type BuildConfig struct {
	FilePath    string   `yaml:"-"`
	Name        string   `yaml:"name"`
	Files       []string `yaml:"files"`
	Save        bool     `yaml:"-"`
	OptLevel    int      `yaml:"opt_level"`
	IsDocument  bool     `yaml:"-"`
	OutputDir   string   `yaml:"output_dir"`
}

// Project is the optional `luma.yaml` project file. When present it seeds
// defaults that CLI flags may override.
type Project struct {
	Name      string   `yaml:"name"`
	Files     []string `yaml:"files"`
	OptLevel  int      `yaml:"opt_level"`
	OutputDir string   `yaml:"output_dir"`
}

// LoadProject reads and parses a luma.yaml project file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading project file %q", path)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, "parsing project file %q", path)
	}
	return &p, nil
}

// ApplyProject fills unset BuildConfig fields from a Project, leaving any
// field the caller already set (non-zero) untouched.
func ApplyProject(cfg *BuildConfig, p *Project) {
	if cfg.Name == "" {
		cfg.Name = p.Name
	}
	if len(cfg.Files) == 0 {
		cfg.Files = p.Files
	}
	if cfg.OptLevel == 0 {
		cfg.OptLevel = p.OptLevel
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = p.OutputDir
	}
}

// CompileThreadCount resolves the object-emission worker count per §4.8:
// LUMA_COMPILE_THREADS (bounded to 1..MaxCompileThreads), else the detected
// CPU count, else DefaultCompileThreads.
func CompileThreadCount() int {
	if env := os.Getenv("LUMA_COMPILE_THREADS"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n >= 1 {
			if n > MaxCompileThreads {
				return MaxCompileThreads
			}
			return n
		}
	}
	if n := runtime.NumCPU(); n > 0 {
		if n > MaxCompileThreads {
			return MaxCompileThreads
		}
		return n
	}
	return DefaultCompileThreads
}
