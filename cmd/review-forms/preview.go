// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-forms/internal/generate"
	"github.com/pdiddy/review-forms/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the content files to HTML for review in a browser",
	Long: `Preview renders script.md and skills.md to standalone HTML pages under
the output directory. Each page shows the schema outline the generator
will see alongside the formatted content, and flags unrecognized role
headings so they can be fixed before a generate run.

No LaTeX engine is needed; preview works anywhere.`,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	contentDir := stringSetting(cmd, "content-dir")
	outputDir := stringSetting(cmd, "output-dir")

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outputDir, err)
	}

	var failed int
	for _, source := range []string{generate.ScriptSource, generate.SkillsSource} {
		page, err := preview.Render(filepath.Join(contentDir, source))
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", source, err)
			failed++
			continue
		}

		for _, token := range page.Unknown {
			fmt.Fprintf(os.Stderr, "warning: %s: role heading %q not recognized\n", source, token)
		}

		name := "preview_" + strings.TrimSuffix(source, ".md") + ".html"
		outPath := filepath.Join(outputDir, name)
		if err := os.WriteFile(outPath, page.HTML, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", source, err)
			failed++
			continue
		}
		fmt.Printf("wrote:   %s\n", outPath)
	}

	if failed > 0 {
		return fmt.Errorf("%d preview(s) failed", failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
