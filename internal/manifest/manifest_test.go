package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/review-forms/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func sampleRecords() []types.ArtifactRecord {
	ts := time.Date(2026, 1, 12, 9, 30, 0, 0, time.UTC)
	return []types.ArtifactRecord{
		{
			Name:        "script_mentee",
			Source:      "script.md",
			Program:     "Mentoring 2026",
			Year:        "2025-2026",
			PDFPath:     "outputs/script_mentee.pdf",
			Status:      types.ArtifactBuilt,
			GeneratedAt: ts,
			Fields: []types.FormField{
				{Name: "field1", Kind: types.FieldText, Prompt: "What went well?", Holder: types.RoleMentee},
				{Name: "field2", Kind: types.FieldText, Prompt: "Any blockers?", Holder: types.RoleMentee},
				{Name: "field3", Kind: types.FieldText, Prompt: "Any blockers?", Holder: types.RoleMentor},
			},
		},
		{
			Name:        "skill_assessment",
			Source:      "skills.md",
			PDFPath:     "outputs/skill_assessment.pdf",
			Status:      types.ArtifactBuilt,
			GeneratedAt: ts,
			Fields: []types.FormField{
				{Name: "skill1_1", Kind: types.FieldCheckbox, Prompt: "Coding"},
				{Name: "skill1target", Kind: types.FieldCheckbox, Prompt: "Coding"},
			},
		},
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := testStore(t)

	if _, err := os.Stat(filepath.Join(dir, dbFile)); err != nil {
		t.Fatalf("database file missing: %v", err)
	}

	// Reopening an existing database must not disturb the schema.
	again, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	again.Close()
}

func TestRecordAndArtifacts(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.RecordAll(ctx, sampleRecords()); err != nil {
		t.Fatal(err)
	}

	recs, err := store.Artifacts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d artifacts, want 2", len(recs))
	}

	script := recs[0]
	if script.Name != "script_mentee" {
		t.Errorf("first artifact = %q, want script_mentee (name order)", script.Name)
	}
	if script.Source != "script.md" || script.PDFPath != "outputs/script_mentee.pdf" {
		t.Errorf("artifact metadata did not round-trip: %+v", script)
	}
	if script.Program != "Mentoring 2026" || script.Year != "2025-2026" {
		t.Errorf("frontmatter metadata did not round-trip: %+v", script)
	}
	if script.Status != types.ArtifactBuilt {
		t.Errorf("status = %q, want built", script.Status)
	}
	want := time.Date(2026, 1, 12, 9, 30, 0, 0, time.UTC)
	if !script.GeneratedAt.Equal(want) {
		t.Errorf("generated_at = %v, want %v", script.GeneratedAt, want)
	}

	if len(script.Fields) != 3 {
		t.Fatalf("got %d fields, want 3", len(script.Fields))
	}
	for i, wantName := range []string{"field1", "field2", "field3"} {
		if script.Fields[i].Name != wantName {
			t.Errorf("field %d = %q, want %q (document order)", i, script.Fields[i].Name, wantName)
		}
	}
	if script.Fields[2].Holder != types.RoleMentor {
		t.Errorf("field3 holder = %q, want mentor", script.Fields[2].Holder)
	}
	if script.Fields[0].Kind != types.FieldText {
		t.Errorf("field1 kind = %q, want text", script.Fields[0].Kind)
	}

	sheet := recs[1]
	if sheet.Name != "skill_assessment" || len(sheet.Fields) != 2 {
		t.Errorf("unexpected second artifact: %+v", sheet)
	}
	if sheet.Fields[0].Kind != types.FieldCheckbox {
		t.Errorf("marker kind = %q, want checkbox", sheet.Fields[0].Kind)
	}
}

// A rerun replaces the artifact's rows instead of accumulating duplicates.
func TestRecordReplacesEarlierRun(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	first := sampleRecords()[0]
	if err := store.Record(ctx, first); err != nil {
		t.Fatal(err)
	}

	rerun := types.ArtifactRecord{
		Name:        first.Name,
		Source:      first.Source,
		Status:      types.ArtifactFailed,
		GeneratedAt: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
		Fields: []types.FormField{
			{Name: "field1", Kind: types.FieldText, Prompt: "Only question left", Holder: types.RoleMentee},
		},
	}
	if err := store.Record(ctx, rerun); err != nil {
		t.Fatal(err)
	}

	recs, err := store.Artifacts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d artifacts, want 1", len(recs))
	}
	if recs[0].Status != types.ArtifactFailed {
		t.Errorf("status = %q, want failed", recs[0].Status)
	}
	if len(recs[0].Fields) != 1 {
		t.Errorf("got %d fields, want 1: the rerun owns the inventory", len(recs[0].Fields))
	}
	if recs[0].Fields[0].Prompt != "Only question left" {
		t.Errorf("prompt = %q", recs[0].Fields[0].Prompt)
	}
}

func TestQueryFilters(t *testing.T) {
	store, _ := testStore(t)
	ctx := context.Background()

	if err := store.RecordAll(ctx, sampleRecords()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		opts      QueryOptions
		wantNames []string
	}{
		{
			name:      "no filters returns everything in artifact order",
			opts:      QueryOptions{},
			wantNames: []string{"field1", "field2", "field3", "skill1_1", "skill1target"},
		},
		{
			name:      "filter by artifact",
			opts:      QueryOptions{Artifact: "skill_assessment"},
			wantNames: []string{"skill1_1", "skill1target"},
		},
		{
			name:      "filter by holder",
			opts:      QueryOptions{Holder: types.RoleMentor},
			wantNames: []string{"field3"},
		},
		{
			name:      "filter by kind",
			opts:      QueryOptions{Kind: types.FieldCheckbox},
			wantNames: []string{"skill1_1", "skill1target"},
		},
		{
			name:      "filters combine",
			opts:      QueryOptions{Artifact: "script_mentee", Holder: types.RoleMentee},
			wantNames: []string{"field1", "field2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.Query(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != len(tt.wantNames) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if entries[i].Name != want {
					t.Errorf("entry %d = %q, want %q", i, entries[i].Name, want)
				}
			}
		})
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	if !(QueryOptions{}).IsEmpty() {
		t.Error("zero options should be empty")
	}
	if (QueryOptions{Holder: types.RoleMentee}).IsEmpty() {
		t.Error("options with a holder filter should not be empty")
	}
	if (QueryOptions{Kind: types.FieldText}).IsEmpty() {
		t.Error("options with a kind filter should not be empty")
	}
}

func TestExport(t *testing.T) {
	store, dir := testStore(t)
	ctx := context.Background()

	if err := store.RecordAll(ctx, sampleRecords()); err != nil {
		t.Fatal(err)
	}

	if err := store.ExportYAML(ctx, QueryOptions{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "fields.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	var yamlEntries []FieldEntry
	if err := yaml.Unmarshal(data, &yamlEntries); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	if len(yamlEntries) != 5 {
		t.Fatalf("got %d YAML entries, want 5", len(yamlEntries))
	}
	if yamlEntries[0].Artifact != "script_mentee" || yamlEntries[0].Name != "field1" {
		t.Errorf("unexpected first entry: %+v", yamlEntries[0])
	}

	if err := store.ExportJSON(ctx, QueryOptions{Artifact: "skill_assessment"}); err != nil {
		t.Fatal(err)
	}
	data, err = os.ReadFile(filepath.Join(dir, "fields.json"))
	if err != nil {
		t.Fatal(err)
	}
	var jsonEntries []FieldEntry
	if err := json.Unmarshal(data, &jsonEntries); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(jsonEntries) != 2 {
		t.Fatalf("got %d JSON entries, want 2", len(jsonEntries))
	}
	if jsonEntries[0].Holder != "" {
		t.Errorf("markers have no holder, got %q", jsonEntries[0].Holder)
	}
}
