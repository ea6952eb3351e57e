// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FieldKind distinguishes the interactive field types the projectors emit.
type FieldKind string

const (
	// FieldText is a multiline free-text box answered with prose.
	FieldText FieldKind = "text"

	// FieldCheckbox is a binary marker used for rating scales and targets.
	FieldCheckbox FieldKind = "checkbox"
)

// FormField describes one named interactive field in a rendered document.
// External form-filling tooling addresses fields by Name, so names are stable
// for a given content file and rendering mode and unique within one document.
type FormField struct {
	// Name is the field identifier embedded in the document markup.
	Name string `json:"name" yaml:"name"`

	// Kind is the field type: text or checkbox.
	Kind FieldKind `json:"kind" yaml:"kind"`

	// Prompt is the question or item text the field belongs to.
	Prompt string `json:"prompt" yaml:"prompt"`

	// Holder names the role expected to fill the field. Empty for assessment
	// markers, which belong to whoever completes the sheet.
	Holder Role `json:"holder,omitempty" yaml:"holder,omitempty"`
}

// ArtifactStatus records the outcome of building one output document.
type ArtifactStatus string

const (
	ArtifactBuilt  ArtifactStatus = "built"
	ArtifactFailed ArtifactStatus = "failed"
)

// ArtifactRecord is the manifest entry for one generated document: where it
// came from, where it landed, and the fields it exposes.
type ArtifactRecord struct {
	// Name is the artifact's base name (e.g. "script_mentee").
	Name string `json:"name" yaml:"name"`

	// Source is the content file the artifact was rendered from.
	Source string `json:"source" yaml:"source"`

	// Program and Year echo the source file's frontmatter, when present.
	Program string `json:"program,omitempty" yaml:"program,omitempty"`
	Year    string `json:"year,omitempty" yaml:"year,omitempty"`

	// PDFPath is the output document's path.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// Status is built or failed.
	Status ArtifactStatus `json:"status" yaml:"status"`

	// GeneratedAt is when the artifact was rendered.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Fields lists the artifact's interactive fields in document order.
	Fields []FormField `json:"fields" yaml:"fields"`
}
