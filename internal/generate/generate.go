// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate orchestrates content loading, projection, and typesetting
// for the review artifacts: both meeting scripts and the skills rating
// sheet. See docs/ARCHITECTURE.md § Generation.
package generate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/review-forms/internal/content"
	"github.com/pdiddy/review-forms/internal/latex"
	"github.com/pdiddy/review-forms/pkg/types"
)

const (
	// ScriptSource is the content file feeding both meeting scripts.
	ScriptSource = "script.md"
	// SkillsSource is the content file feeding the rating sheet.
	SkillsSource = "skills.md"
)

// Compiler typesets one source file into a PDF. engine.Compiler implements
// this; tests substitute fakes.
type Compiler interface {
	Compile(ctx context.Context, texPath, pdfPath string) error
}

// BatchResult holds the outcome of one generation run.
type BatchResult struct {
	Built  int
	Failed int
}

// Total returns the total number of artifacts processed.
func (r BatchResult) Total() int {
	return r.Built + r.Failed
}

// HasFailures reports whether any artifact failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// artifact binds an output name to its source file and projection.
type artifact struct {
	name   string
	source string
	render func(d *types.Document) latex.Rendered
}

func artifacts() []artifact {
	return []artifact{
		{
			name:   "script_mentee",
			source: ScriptSource,
			render: func(d *types.Document) latex.Rendered { return latex.Script(d, types.RoleMentee) },
		},
		{
			name:   "script_mentor",
			source: ScriptSource,
			render: func(d *types.Document) latex.Rendered { return latex.Script(d, types.RoleMentor) },
		},
		{
			name:   "skill_assessment",
			source: SkillsSource,
			render: latex.Assessment,
		},
	}
}

// sourceDoc pairs a parsed content file with its frontmatter and load error.
// Each source is read once even when two artifacts share it.
type sourceDoc struct {
	doc  *types.Document
	meta types.ContentMeta
	err  error
}

func loadSources(contentDir string) map[string]sourceDoc {
	out := make(map[string]sourceDoc, 2)
	for _, source := range []string{ScriptSource, SkillsSource} {
		doc, meta, err := content.LoadFile(filepath.Join(contentDir, source))
		out[source] = sourceDoc{doc: doc, meta: meta, err: err}
	}
	return out
}

// Run generates every artifact, printing per-artifact status to w and
// returning the records alongside a summary. A failed artifact never stops
// the batch: a missing source fails only the artifacts fed by it, and a
// failed compile leaves its .tex file behind for diagnosis.
func Run(ctx context.Context, cfg types.GenerateConfig, c Compiler, w io.Writer) ([]types.ArtifactRecord, BatchResult) {
	var result BatchResult
	records := make([]types.ArtifactRecord, 0, 3)

	docs := loadSources(cfg.ContentDir)

	for _, a := range artifacts() {
		rec, ok := buildArtifact(ctx, cfg, c, a, docs[a.source], w)
		records = append(records, rec)
		if ok {
			result.Built++
		} else {
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\nGeneration summary: %d built, %d failed (total: %d)\n",
		result.Built, result.Failed, result.Total())
	return records, result
}

// buildArtifact renders and typesets one artifact. The boolean reports
// whether the PDF was produced.
func buildArtifact(ctx context.Context, cfg types.GenerateConfig, c Compiler, a artifact, src sourceDoc, w io.Writer) (types.ArtifactRecord, bool) {
	rec := types.ArtifactRecord{
		Name:        a.name,
		Source:      a.source,
		Program:     src.meta.Program,
		Year:        src.meta.Year,
		Status:      types.ArtifactFailed,
		GeneratedAt: time.Now().UTC(),
	}

	if src.err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", a.name, src.err)
		return rec, false
	}

	rendered := a.render(src.doc)
	rec.Fields = rendered.Fields

	if len(rendered.Unknown) > 0 {
		if cfg.Strict {
			fmt.Fprintf(w, "failed:  %s (unrecognized role heading %q)\n", a.name, rendered.Unknown[0])
			return rec, false
		}
		for _, token := range rendered.Unknown {
			fmt.Fprintf(w, "warning: %s: role heading %q not recognized, group dropped\n", a.name, token)
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", a.name, err)
		return rec, false
	}

	texPath := filepath.Join(cfg.OutputDir, a.name+".tex")
	pdfPath := filepath.Join(cfg.OutputDir, a.name+".pdf")

	if err := os.WriteFile(texPath, []byte(rendered.Text), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", a.name, err)
		return rec, false
	}

	if err := c.Compile(ctx, texPath, pdfPath); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", a.name, err)
		fmt.Fprintf(w, "         source kept at %s\n", texPath)
		return rec, false
	}

	if !cfg.KeepTex {
		_ = os.Remove(texPath)
	}

	rec.Status = types.ArtifactBuilt
	rec.PDFPath = pdfPath
	fmt.Fprintf(w, "built:   %s (%d fields)\n", filepath.Base(pdfPath), len(rec.Fields))
	return rec, true
}
