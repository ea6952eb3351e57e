// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine locates and drives a LaTeX engine for typesetting the
// generated documents. See docs/ARCHITECTURE.md § Typesetting.
package engine

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/pdiddy/review-forms/pkg/types"
)

const (
	binPDFLaTeX = "pdflatex"
	binXeLaTeX  = "xelatex"
	binLuaLaTeX = "lualatex"
)

// Engine runs typesetting passes of a specific LaTeX binary.
type Engine interface {
	// Name returns the engine binary name ("pdflatex", "xelatex", ...).
	Name() string

	// Available reports whether the engine binary exists on PATH and
	// responds to a version query.
	Available() bool

	// Run executes a single pass over texFile inside dir and returns the
	// combined engine output.
	Run(ctx context.Context, dir, texFile string) ([]byte, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunDir(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunDir(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// engine implements Engine for a specific binary. All supported engines
// share the same invocation; they differ only in binary name.
type engine struct {
	bin  string
	exec executor
}

func (e *engine) Name() string { return e.bin }

func (e *engine) Available() bool {
	if _, err := e.exec.LookPath(e.bin); err != nil {
		return false
	}
	return e.exec.RunSilent(e.bin, "--version") == nil
}

func (e *engine) Run(ctx context.Context, dir, texFile string) ([]byte, error) {
	return e.exec.RunDir(ctx, dir, e.bin, "-interaction=nonstopmode", texFile)
}

func newEngine(bin string, exec executor) *engine {
	return &engine{bin: bin, exec: exec}
}

var defaultExec = &osExecutor{}

// ForName returns an operational engine for the configured name, detecting
// one when the name is EngineAuto or empty. Any other name is treated as a
// binary to look up on PATH, so unpackaged engines still work.
func ForName(name types.EngineName) (Engine, error) {
	return forName(name, defaultExec)
}

func forName(name types.EngineName, exec executor) (Engine, error) {
	if name == types.EngineAuto || name == "" {
		return detectEngine(exec)
	}

	e := newEngine(string(name), exec)
	if !e.Available() {
		return nil, fmt.Errorf("latex engine %s not found or not operational", name)
	}
	return e, nil
}

// DetectEngine tries pdflatex first, then xelatex, then lualatex. Returns an
// error if no engine is available.
func DetectEngine() (Engine, error) {
	return detectEngine(defaultExec)
}

func detectEngine(exec executor) (Engine, error) {
	for _, bin := range []string{binPDFLaTeX, binXeLaTeX, binLuaLaTeX} {
		e := newEngine(bin, exec)
		if e.Available() {
			return e, nil
		}
	}

	return nil, fmt.Errorf(
		"no latex engine available: none of %s, %s, %s found or operational (install TeX Live or MiKTeX)",
		binPDFLaTeX, binXeLaTeX, binLuaLaTeX,
	)
}
