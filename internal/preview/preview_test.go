// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/review-forms/internal/content"
	"github.com/pdiddy/review-forms/pkg/types"
)

func writeContent(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestRender(t *testing.T) {
	path := writeContent(t, "script.md", `---
program: Mentoring 2026
year: 2025-2026
---
# Year Review
## Looking back
### Mentee
- What went well?
### Both*
- Compare notes*
### Facilitator
- F1
## Wrap up
- Loose bullet
`)

	got, err := Render(path)
	require.NoError(t, err)
	page := string(got.HTML)

	assert.Contains(t, page, "<h1>script.md</h1>")
	assert.Contains(t, page, "Mentoring 2026, 2025-2026")
	assert.Contains(t, page, "Title: Year Review")
	assert.Equal(t, []string{"Facilitator"}, got.Unknown)

	// The outline labels each group the way the scripts will treat it.
	assert.Contains(t, page, "Mentee: 1 items (answered by mentee)")
	assert.Contains(t, page, "Both*: 1 items (action block)")
	assert.Contains(t, page, `<li class="warn">Facilitator: 1 items (unrecognized role, will be dropped)</li>`)
	assert.Contains(t, page, "Wrap up: 1 items")

	// The body is rendered markdown, without the frontmatter block.
	assert.Contains(t, page, "<h2 id=\"looking-back\">Looking back</h2>")
	assert.Contains(t, page, "<li>What went well?</li>")
	assert.NotContains(t, page, "program: Mentoring 2026")
}

func TestRenderWithoutFrontmatter(t *testing.T) {
	path := writeContent(t, "skills.md", "# Skills\n## Technical\n- Coding\n")

	got, err := Render(path)
	require.NoError(t, err)
	page := string(got.HTML)

	assert.NotContains(t, page, `class="meta"`)
	assert.Contains(t, page, "Title: Skills")
	assert.Contains(t, page, "Technical: 1 items")
	assert.Empty(t, got.Unknown)
}

func TestRenderEscapesHTML(t *testing.T) {
	path := writeContent(t, "script.md", "# R&D <review>\n## Goals <b>\n### Mentee\n- Q1\n")

	got, err := Render(path)
	require.NoError(t, err)
	page := string(got.HTML)

	assert.Contains(t, page, "Title: R&amp;D &lt;review&gt;")
	assert.Contains(t, page, "Goals &lt;b&gt;")
	assert.False(t, strings.Contains(page, "<review>"), "raw heading HTML must not leak into the outline")
}

func TestRenderMissingFile(t *testing.T) {
	_, err := Render(filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.md")
}

func TestUnknownRoles(t *testing.T) {
	doc := content.Parse("# T\n## A\n### Facilitator\n- x\n### Mentee\n- y\n## B\n### Facilitator\n- z\n### Lead*\n- w\n")

	assert.Equal(t, []string{"Facilitator", "Lead*"}, unknownRoles(doc))
	assert.Empty(t, unknownRoles(&types.Document{}))
}
