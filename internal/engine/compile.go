// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/review-forms/pkg/types"
)

const (
	// DefaultPasses is the number of passes per document. Form field layout
	// settles on the second pass.
	DefaultPasses = 2

	// DefaultTimeout bounds a single pass.
	DefaultTimeout = 30 * time.Second
)

// Compiler drives an Engine for a fixed number of passes over one source
// file. Engines under nonstopmode exit non-zero on errors they recovered
// from, so success is judged by the PDF a run leaves behind, not by the
// process status.
type Compiler struct {
	engine  Engine
	passes  int
	timeout time.Duration
}

// NewCompiler builds a Compiler from cfg, falling back to the defaults for
// unset pass count and timeout.
func NewCompiler(engine Engine, cfg types.EngineConfig) *Compiler {
	passes := cfg.Passes
	if passes < 1 {
		passes = DefaultPasses
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Compiler{engine: engine, passes: passes, timeout: timeout}
}

// Compile typesets texPath and leaves the PDF at pdfPath. Auxiliary files
// from the run are removed on success; the source file is left in place
// either way, so failed runs can be diagnosed by hand.
func (c *Compiler) Compile(ctx context.Context, texPath, pdfPath string) error {
	dir := filepath.Dir(texPath)
	base := filepath.Base(texPath)
	generated := filepath.Join(dir, strings.TrimSuffix(base, ".tex")+".pdf")

	var lastOut []byte
	for pass := 1; pass <= c.passes; pass++ {
		passCtx, cancel := context.WithTimeout(ctx, c.timeout)
		out, err := c.engine.Run(passCtx, dir, base)
		cancel()

		if passCtx.Err() != nil {
			return fmt.Errorf("%s pass %d/%d on %s: %w", c.engine.Name(), pass, c.passes, base, passCtx.Err())
		}
		if err != nil && len(out) == 0 {
			// No engine output at all means the process never ran.
			return fmt.Errorf("%s pass %d/%d on %s: %w", c.engine.Name(), pass, c.passes, base, err)
		}
		lastOut = out
	}

	if _, err := os.Stat(generated); err != nil {
		if hint := errorLine(lastOut); hint != "" {
			return fmt.Errorf("%s produced no PDF for %s: %s", c.engine.Name(), base, hint)
		}
		return fmt.Errorf("%s produced no PDF for %s", c.engine.Name(), base)
	}

	cleanAux(dir, base)

	if generated != pdfPath {
		if err := os.Rename(generated, pdfPath); err != nil {
			return fmt.Errorf("moving %s to %s: %w", generated, pdfPath, err)
		}
	}
	return nil
}

// errorLine extracts the first TeX error line from engine output.
func errorLine(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		if strings.HasPrefix(line, "!") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// cleanAux removes the byproducts a run leaves next to the source file.
func cleanAux(dir, texBase string) {
	stem := strings.TrimSuffix(texBase, ".tex")
	for _, ext := range []string{".aux", ".log", ".out"} {
		_ = os.Remove(filepath.Join(dir, stem+ext))
	}
}
