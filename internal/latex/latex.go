// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package latex projects the parsed content model into LaTeX documents with
// fillable form fields. Two projections exist: Script renders the meeting
// script from one participant's side, Assessment renders the flat skills
// rating sheet. Both are pure functions of their inputs; field names come
// from a per-call counter, so repeated renders of the same document are
// byte-for-byte reproducible and never share state.
//
// See docs/ARCHITECTURE.md § Typesetting.
package latex

import (
	"fmt"
	"strings"

	"github.com/pdiddy/review-forms/pkg/types"
)

// Rendered is the result of one projection.
type Rendered struct {
	// Text is the complete LaTeX source.
	Text string

	// Fields lists the document's interactive fields in order of appearance.
	// Names are unique within one Rendered.
	Fields []types.FormField

	// Unknown lists role tokens the projection did not recognize, first
	// occurrence first. Their subsections render as nothing; callers decide
	// whether that is worth failing over.
	Unknown []string
}

// doc accumulates LaTeX source. Content lines and the blank separator lines
// between paragraphs are written explicitly, matching the layout the engine
// is fed.
type doc struct {
	b strings.Builder
}

func (d *doc) raw(s string) {
	d.b.WriteString(s)
}

func (d *doc) line(s string) {
	d.b.WriteString(s)
	d.b.WriteByte('\n')
}

func (d *doc) linef(format string, a ...any) {
	fmt.Fprintf(&d.b, format, a...)
	d.b.WriteByte('\n')
}

func (d *doc) blank() {
	d.b.WriteByte('\n')
}

// gap emits a vertical space followed by a paragraph break.
func (d *doc) gap(size string) {
	d.line(`\vspace{` + size + `}`)
	d.blank()
}

func (d *doc) String() string {
	return d.b.String()
}

// groupKind classifies one subsection for script rendering. The projector
// computes it once per subsection and dispatches on it.
type groupKind int

const (
	// groupUnknown marks an unrecognized role token; the group renders as
	// nothing and the token is reported through Rendered.Unknown.
	groupUnknown groupKind = iota

	// groupAction marks a starred heading; every item is an instruction.
	groupAction

	// groupShared marks a Both heading; each participant answers separately.
	groupShared

	// groupOwn marks the reading role's own questions.
	groupOwn

	// groupOther marks the other participant's questions, shown for reference.
	groupOther
)

// classify maps a subsection heading to its rendering kind for the given
// reader role. The base token (heading minus trailing stars) decides
// recognition; the star decides whether a recognized group is instructions.
func classify(header string, role types.Role) groupKind {
	starred := strings.HasSuffix(header, types.ActionSuffix)
	base := strings.TrimSpace(strings.TrimRight(header, types.ActionSuffix))

	switch {
	case !types.KnownHeading(header):
		return groupUnknown
	case starred:
		return groupAction
	case base == types.SharedToken:
		return groupShared
	case types.Role(base) == role:
		return groupOwn
	default:
		return groupOther
	}
}

// splitItem separates an item's display text from its action marker.
func splitItem(item string) (text string, action bool) {
	action = strings.HasSuffix(item, types.ActionSuffix)
	text = strings.TrimSpace(strings.TrimRight(item, types.ActionSuffix))
	return text, action
}

// fieldTally hands out sequential field names for one projection and records
// the inventory as it goes. The zero value starts the sequence at field1.
type fieldTally struct {
	n      int
	fields []types.FormField
}

func (t *fieldTally) textField(prompt string, holder types.Role) string {
	t.n++
	name := fmt.Sprintf("field%d", t.n)
	t.fields = append(t.fields, types.FormField{
		Name:   name,
		Kind:   types.FieldText,
		Prompt: prompt,
		Holder: holder,
	})
	return name
}
