// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-forms/internal/engine"
	"github.com/pdiddy/review-forms/internal/generate"
	"github.com/pdiddy/review-forms/internal/manifest"
	"github.com/pdiddy/review-forms/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Typeset the review PDFs and record their field manifest",
	Long: `Generate renders script.md into one meeting script per participant and
skills.md into the skills rating sheet, typesets each with a LaTeX engine,
and records every document's form fields in the manifest database under
the output directory.

A failing document does not stop the others: its LaTeX source is kept in
the output directory for diagnosis and the command exits non-zero after
the batch completes.`,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := generateConfig(cmd)

	eng, err := engine.ForName(cfg.Engine)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Using engine: %s\n", eng.Name())

	compiler := engine.NewCompiler(eng, cfg.EngineConfig)
	records, result := generate.Run(context.Background(), cfg, compiler, os.Stdout)

	store, err := manifest.Open(cfg.OutputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RecordAll(context.Background(), records); err != nil {
		return err
	}

	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed", result.Failed)
	}
	return nil
}

func generateConfig(cmd *cobra.Command) types.GenerateConfig {
	return types.GenerateConfig{
		EngineConfig: types.EngineConfig{
			Engine:  types.EngineName(stringSetting(cmd, "engine")),
			Passes:  intSetting(cmd, "passes"),
			Timeout: durationSetting(cmd, "timeout"),
		},
		ContentDir: stringSetting(cmd, "content-dir"),
		OutputDir:  stringSetting(cmd, "output-dir"),
		KeepTex:    boolSetting(cmd, "keep-tex"),
		Strict:     boolSetting(cmd, "strict"),
	}
}

func init() {
	generateCmd.Flags().String("engine", "auto", "LaTeX engine: pdflatex, xelatex, lualatex, or auto")
	generateCmd.Flags().Int("passes", engine.DefaultPasses, "compiler passes per document")
	generateCmd.Flags().Duration("timeout", engine.DefaultTimeout, "time limit per compiler pass")
	generateCmd.Flags().Bool("keep-tex", false, "keep intermediate .tex files after a successful build")
	generateCmd.Flags().Bool("strict", false, "fail documents whose content uses unrecognized role headings")

	rootCmd.AddCommand(generateCmd)
}
