// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-forms/internal/manifest"
	"github.com/pdiddy/review-forms/pkg/types"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Inspect the form field manifest of generated documents",
	Long: `Fields reads the manifest database that generate maintains under the
output directory. Use subcommands to list the recorded documents and their
form fields, or export the manifest for tooling that fills or reads the
PDFs programmatically.`,
}

// --- list subcommand ---

var fieldsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded documents and their form fields",
	Long: `List shows every recorded document with its fields in document order.
With a filter flag set it prints the matching fields as a flat table
instead, across all documents.`,
	RunE: runFieldsList,
}

func runFieldsList(cmd *cobra.Command, args []string) error {
	store, err := manifest.Open(stringSetting(cmd, "output-dir"))
	if err != nil {
		return err
	}
	defer store.Close()

	jsonOutput, _ := cmd.Flags().GetBool("json")

	opts := fieldQueryOpts(cmd)
	if !opts.IsEmpty() {
		entries, err := store.Query(context.Background(), opts)
		if err != nil {
			return err
		}
		return formatEntries(entries, jsonOutput)
	}

	recs, err := store.Artifacts(context.Background())
	if err != nil {
		return err
	}
	return formatArtifacts(recs, jsonOutput)
}

func formatArtifacts(recs []types.ArtifactRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Println("No documents recorded. Run generate first.")
		return nil
	}

	for _, rec := range recs {
		fmt.Fprintf(os.Stdout, "%s  [%s]  %s  (%d fields, generated %s)\n",
			rec.Name, rec.Status, rec.Source, len(rec.Fields),
			rec.GeneratedAt.Format(time.RFC3339))

		for i, f := range rec.Fields {
			holder := string(f.Holder)
			if holder == "" {
				holder = "-"
			}
			prompt := f.Prompt
			if len(prompt) > 50 {
				prompt = prompt[:47] + "..."
			}
			fmt.Fprintf(os.Stdout, "  %3d  %-16s  %-9s  %-7s  %s\n",
				i+1, f.Name, f.Kind, holder, prompt)
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func formatEntries(entries []manifest.FieldEntry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No fields match.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-18s  %-4s  %-16s  %-9s  %-7s  %s\n",
		"Document", "Pos", "Name", "Kind", "Holder", "Prompt")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, e := range entries {
		holder := e.Holder
		if holder == "" {
			holder = "-"
		}
		prompt := e.Prompt
		if len(prompt) > 50 {
			prompt = prompt[:47] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-18s  %-4d  %-16s  %-9s  %-7s  %s\n",
			e.Artifact, e.Position, e.Name, e.Kind, holder, prompt)
	}

	fmt.Fprintf(os.Stdout, "\n%d fields\n", len(entries))
	return nil
}

// --- export subcommand ---

var fieldsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the field manifest to YAML or JSON",
	Long: `Export writes the manifest (or a filtered subset) to fields.yaml or
fields.json in the output directory. Supports the same filter flags as
list for partial exports.`,
	RunE: runFieldsExport,
}

func runFieldsExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	outputDir := stringSetting(cmd, "output-dir")
	store, err := manifest.Open(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := fieldQueryOpts(cmd)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(outputDir, "fields.yaml"))
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(outputDir, "fields.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func fieldQueryOpts(cmd *cobra.Command) manifest.QueryOptions {
	artifact, _ := cmd.Flags().GetString("document")
	holder, _ := cmd.Flags().GetString("holder")
	kind, _ := cmd.Flags().GetString("kind")

	return manifest.QueryOptions{
		Artifact: artifact,
		Holder:   types.Role(holder),
		Kind:     types.FieldKind(kind),
	}
}

func init() {
	// List flags.
	fieldsListCmd.Flags().String("document", "", "filter by document name (e.g. script_mentee)")
	fieldsListCmd.Flags().String("holder", "", "filter by holder role: Mentee or Mentor")
	fieldsListCmd.Flags().String("kind", "", "filter by field kind: text or checkbox")
	fieldsListCmd.Flags().Bool("json", false, "output as JSON")

	// Export flags.
	fieldsExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	fieldsExportCmd.Flags().String("document", "", "filter by document name for partial export")
	fieldsExportCmd.Flags().String("holder", "", "filter by holder role for partial export")
	fieldsExportCmd.Flags().String("kind", "", "filter by field kind for partial export")

	// Wire subcommands.
	fieldsCmd.AddCommand(fieldsListCmd)
	fieldsCmd.AddCommand(fieldsExportCmd)

	rootCmd.AddCommand(fieldsCmd)
}
