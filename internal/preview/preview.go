// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders content files to standalone HTML pages for review
// in a browser before any typesetting run. Each page shows the schema
// outline the generator will see next to the markdown body, which makes
// mistyped role headings visible early. See docs/ARCHITECTURE.md § Preview.
package preview

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/pdiddy/review-forms/internal/content"
	"github.com/pdiddy/review-forms/pkg/types"
)

// renderer is the shared goldmark engine: GitHub-flavored markdown with
// stable heading anchors. goldmark engines are stateless and safe to share.
var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

const pageHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
.outline { background: #f6f6f6; border: 1px solid #ddd; padding: 0.5rem 1.5rem; }
.outline .warn { color: #b00020; font-weight: bold; }
.meta { color: #666; }
</style>
</head>
<body>
`

// Page is one rendered preview.
type Page struct {
	// HTML is the standalone page.
	HTML []byte

	// Unknown lists unrecognized role headings found in the content, first
	// occurrence first.
	Unknown []string
}

// Render reads the content file at path and builds its preview page:
// frontmatter metadata, the schema outline, then the rendered body.
func Render(path string) (Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Page{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var meta types.ContentMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		// Not every content file carries frontmatter; treat the whole file
		// as body.
		meta = types.ContentMeta{}
		body = data
	}

	doc := content.Parse(string(body))

	var out bytes.Buffer
	out.WriteString(pageHead)
	fmt.Fprintf(&out, "<h1>%s</h1>\n", html.EscapeString(filepath.Base(path)))
	writeMeta(&out, meta)
	writeOutline(&out, doc)

	out.WriteString("<hr>\n<div class=\"body\">\n")
	if err := renderer.Convert(body, &out); err != nil {
		return Page{}, fmt.Errorf("rendering %s: %w", path, err)
	}
	out.WriteString("</div>\n</body>\n</html>\n")

	return Page{HTML: out.Bytes(), Unknown: unknownRoles(doc)}, nil
}

// unknownRoles returns the unrecognized role headings in doc, first
// occurrence first.
func unknownRoles(doc *types.Document) []string {
	var unknown []string
	seen := make(map[string]bool)
	for _, sec := range doc.Sections {
		for _, sub := range sec.Subsections {
			if types.KnownHeading(sub.Header) || seen[sub.Header] {
				continue
			}
			seen[sub.Header] = true
			unknown = append(unknown, sub.Header)
		}
	}
	return unknown
}

func writeMeta(out *bytes.Buffer, meta types.ContentMeta) {
	if meta.Program == "" && meta.Year == "" {
		return
	}
	out.WriteString(`<p class="meta">`)
	if meta.Program != "" {
		out.WriteString(html.EscapeString(meta.Program))
	}
	if meta.Year != "" {
		if meta.Program != "" {
			out.WriteString(", ")
		}
		out.WriteString(html.EscapeString(meta.Year))
	}
	out.WriteString("</p>\n")
}

func writeOutline(out *bytes.Buffer, doc *types.Document) {
	out.WriteString("<div class=\"outline\">\n<h2>Schema outline</h2>\n")
	if doc.Title != "" {
		fmt.Fprintf(out, "<p>Title: %s</p>\n", html.EscapeString(doc.Title))
	}
	out.WriteString("<ul>\n")
	for _, sec := range doc.Sections {
		fmt.Fprintf(out, "<li>%s", html.EscapeString(sec.Header))
		if len(sec.Items) > 0 {
			fmt.Fprintf(out, ": %d items", len(sec.Items))
		}
		if len(sec.Subsections) > 0 {
			out.WriteString("\n<ul>\n")
			for _, sub := range sec.Subsections {
				note := headingNote(sub.Header)
				class := ""
				if note == noteUnrecognized {
					class = ` class="warn"`
				}
				fmt.Fprintf(out, "<li%s>%s: %d items (%s)</li>\n",
					class, html.EscapeString(sub.Header), len(sub.Items), note)
			}
			out.WriteString("</ul>\n")
		}
		out.WriteString("</li>\n")
	}
	out.WriteString("</ul>\n</div>\n")
}

const noteUnrecognized = "unrecognized role, will be dropped"

// headingNote labels a role heading the way the script projection will treat
// it.
func headingNote(header string) string {
	switch {
	case !types.KnownHeading(header):
		return noteUnrecognized
	case strings.HasSuffix(header, types.ActionSuffix):
		return "action block"
	case strings.TrimSpace(header) == types.SharedToken:
		return "answered by both"
	default:
		return "answered by " + strings.ToLower(strings.TrimSpace(header))
	}
}
