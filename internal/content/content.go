// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content parses review content files into the shared document model.
// The schema is three levels deep and strictly line-oriented: one title
// heading, section headings, role subheadings, and bullet items. Every other
// line is ignored, so authors can keep notes or prose in a content file
// without affecting generation.
//
// See docs/ARCHITECTURE.md § Content Schema.
package content

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/pdiddy/review-forms/pkg/types"
)

const (
	titlePrefix      = "# "
	sectionPrefix    = "## "
	subsectionPrefix = "### "
	bulletPrefix     = "- "
)

// Parse scans text and builds the document model. It never fails: lines that
// match no schema prefix are skipped, a repeated title heading overwrites the
// previous one, and an empty input yields an empty document.
//
// Bullets attach to the innermost open container: the current subsection if
// one is open, else the current section, else they are dropped. A role
// subheading outside any section is ignored. Source order is preserved
// throughout.
func Parse(text string) *types.Document {
	doc := &types.Document{}

	var section *types.Section
	var subsection *types.Subsection

	flushSubsection := func() {
		if subsection != nil && section != nil {
			section.Subsections = append(section.Subsections, *subsection)
		}
		subsection = nil
	}
	flushSection := func() {
		flushSubsection()
		if section != nil {
			doc.Sections = append(doc.Sections, *section)
		}
		section = nil
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimRight(line, " \t\r")

		switch {
		case strings.HasPrefix(line, titlePrefix):
			doc.Title = strings.TrimSpace(line[len(titlePrefix):])

		case strings.HasPrefix(line, sectionPrefix):
			flushSection()
			section = &types.Section{Header: strings.TrimSpace(line[len(sectionPrefix):])}

		case strings.HasPrefix(line, subsectionPrefix):
			if section == nil {
				continue
			}
			flushSubsection()
			subsection = &types.Subsection{Header: strings.TrimSpace(line[len(subsectionPrefix):])}

		case strings.HasPrefix(line, bulletPrefix):
			item := strings.TrimSpace(line[len(bulletPrefix):])
			switch {
			case subsection != nil:
				subsection.Items = append(subsection.Items, item)
			case section != nil:
				section.Items = append(section.Items, item)
			}
		}
	}

	flushSection()
	return doc
}

// metaEnvelope is the frontmatter shape accepted on content files. Unknown
// keys collect in Custom rather than failing the load.
type metaEnvelope struct {
	Program string         `yaml:"program"`
	Year    string         `yaml:"year"`
	Custom  map[string]any `yaml:",inline"`
}

// LoadFile reads a content file, strips any YAML frontmatter into the
// returned metadata, and parses the remaining body. Frontmatter that fails to
// parse is treated as body text (the line scan skips it anyway), so a
// malformed header never blocks generation.
func LoadFile(path string) (*types.Document, types.ContentMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.ContentMeta{}, fmt.Errorf("reading content %s: %w", path, err)
	}

	var env metaEnvelope
	body, err := frontmatter.Parse(bytes.NewReader(data), &env)
	if err != nil {
		return Parse(string(data)), types.ContentMeta{}, nil
	}

	meta := types.ContentMeta{
		Program: env.Program,
		Year:    env.Year,
		Custom:  env.Custom,
	}
	return Parse(string(body)), meta, nil
}
