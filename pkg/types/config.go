package types

import "time"

// EngineName identifies a LaTeX engine binary.
type EngineName string

const (
	EnginePDFLaTeX EngineName = "pdflatex"
	EngineXeLaTeX  EngineName = "xelatex"
	EngineLuaLaTeX EngineName = "lualatex"

	// EngineAuto selects the first available engine at run time.
	EngineAuto EngineName = "auto"
)

// EngineConfig holds settings for the document compilation step.
type EngineConfig struct {
	// Engine selects the LaTeX binary: pdflatex, xelatex, lualatex, or auto.
	Engine EngineName `json:"engine" yaml:"engine"`

	// Passes is the number of compiler passes per document (default 2; the
	// form layout settles on the second pass).
	Passes int `json:"passes" yaml:"passes"`

	// Timeout bounds a single compiler pass (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// GenerateConfig holds settings for a document generation run.
type GenerateConfig struct {
	EngineConfig `yaml:",inline"`

	// ContentDir is the directory holding the markdown content files
	// (script.md, skills.md).
	ContentDir string `json:"content_dir" yaml:"content_dir"`

	// OutputDir is the directory for generated PDFs, retained .tex files,
	// and the field manifest database.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// KeepTex retains the intermediate .tex files after a successful
	// compile. Failed compiles always retain them for diagnosis.
	KeepTex bool `json:"keep_tex" yaml:"keep_tex"`

	// Strict fails an artifact whose content addresses a subsection to an
	// unrecognized role token instead of silently dropping the group.
	Strict bool `json:"strict" yaml:"strict"`
}
