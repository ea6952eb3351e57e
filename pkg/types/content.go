// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the review-forms pipeline:
// the parsed content model consumed by the projectors, the form-field
// inventory recorded in the manifest, and per-stage configuration.
//
// See docs/ARCHITECTURE.md § Content Schema, § Data Structures.
package types

import "strings"

// Role identifies a meeting participant. Content files address subsections to
// a role; the script projector renders one document from each role's side.
type Role string

const (
	RoleMentee Role = "Mentee"
	RoleMentor Role = "Mentor"
)

// SharedToken is the subsection heading whose questions both participants
// answer separately.
const SharedToken = "Both"

// ActionSuffix marks a heading or bullet as an instruction to carry out
// rather than a question to answer. It is stripped before display.
const ActionSuffix = "*"

// Other returns the complementary role: the person on the far side of the
// meeting table.
func (r Role) Other() Role {
	if r == RoleMentee {
		return RoleMentor
	}
	return RoleMentee
}

// Valid reports whether r is one of the two recognized participant roles.
func (r Role) Valid() bool {
	return r == RoleMentee || r == RoleMentor
}

// KnownHeading reports whether a role heading's base token, the heading
// minus trailing stars, addresses a recognized role or both participants.
// Case matters: "mentee" is not a known heading.
func KnownHeading(header string) bool {
	base := strings.TrimSpace(strings.TrimRight(header, ActionSuffix))
	return Role(base).Valid() || base == SharedToken
}

// Document is the parsed model of one content file. It is built once per
// parse and never mutated afterwards; projectors may consume the same
// Document any number of times.
type Document struct {
	// Title is the text of the top-level heading. When the content file
	// carries several, the last one wins; when it carries none, Title is empty.
	Title string `json:"title" yaml:"title"`

	// Sections lists the document's sections in source order.
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section groups content under one second-level heading. Items holds bullets
// that appear directly under the header with no role heading in between (the
// flat skills schema); Subsections holds bullets grouped under role headings
// (the script schema). Authored content populates one or the other.
type Section struct {
	// Header is the section heading text.
	Header string `json:"header" yaml:"header"`

	// Subsections lists role-addressed bullet groups in source order.
	Subsections []Subsection `json:"subsections" yaml:"subsections"`

	// Items lists bullets attached directly to the section in source order.
	Items []string `json:"items" yaml:"items"`
}

// Subsection is a group of bullets addressed to a role. Header is the token
// exactly as authored: Mentee, Mentor, or Both, optionally suffixed * to mark
// the whole group as instructions. Unrecognized tokens are stored as-is and
// left to the projector to handle.
type Subsection struct {
	// Header is the role token as authored, including any trailing *.
	Header string `json:"header" yaml:"header"`

	// Items lists the group's bullet texts in source order. A trailing * on
	// an individual item marks that item alone as an instruction.
	Items []string `json:"items" yaml:"items"`
}

// ContentMeta holds the optional YAML frontmatter of a content file. It is
// informational: the preview and the manifest surface it, the typeset output
// never depends on it.
type ContentMeta struct {
	// Program names the mentoring program the materials belong to.
	Program string `json:"program,omitempty" yaml:"program,omitempty"`

	// Year is the review period the materials cover (e.g. "2025-2026").
	Year string `json:"year,omitempty" yaml:"year,omitempty"`

	// Custom carries any further frontmatter keys untouched.
	Custom map[string]any `json:"custom,omitempty" yaml:",inline"`
}
