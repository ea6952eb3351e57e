// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/review-forms/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runDirFunc    func(ctx context.Context, dir, name string, args ...string) ([]byte, error)
	runDirCalls   []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunDir(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	m.runDirCalls = append(m.runDirCalls, name+" "+strings.Join(args, " "))
	if m.runDirFunc != nil {
		return m.runDirFunc(ctx, dir, name, args...)
	}
	return nil, nil
}

// operational returns a mock where each listed binary is on PATH and answers
// its version query.
func operational(bins ...string) *mockExecutor {
	m := &mockExecutor{
		availableBins: map[string]bool{},
		runnableCmds:  map[string]bool{},
	}
	for _, bin := range bins {
		m.availableBins[bin] = true
		m.runnableCmds[bin+" --version"] = true
	}
	return m
}

func TestDetectEngine(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name:     "pdflatex available",
			exec:     operational("pdflatex"),
			wantName: "pdflatex",
		},
		{
			name:     "xelatex fallback when pdflatex missing",
			exec:     operational("xelatex"),
			wantName: "xelatex",
		},
		{
			name:     "lualatex is the last fallback",
			exec:     operational("lualatex"),
			wantName: "lualatex",
		},
		{
			name:    "no engine available",
			exec:    operational(),
			wantErr: true,
		},
		{
			name: "pdflatex on PATH but version query fails, xelatex works",
			exec: func() *mockExecutor {
				m := operational("xelatex")
				m.availableBins["pdflatex"] = true
				return m
			}(),
			wantName: "xelatex",
		},
		{
			name:     "all available, pdflatex preferred",
			exec:     operational("pdflatex", "xelatex", "lualatex"),
			wantName: "pdflatex",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := detectEngine(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no latex engine available") {
					t.Errorf("error should mention no engine available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eng.Name() != tt.wantName {
				t.Errorf("got engine %q, want %q", eng.Name(), tt.wantName)
			}
		})
	}
}

func TestForName(t *testing.T) {
	tests := []struct {
		name     string
		engine   types.EngineName
		exec     *mockExecutor
		wantName string
		wantErr  string
	}{
		{
			name:     "explicit engine",
			engine:   types.EngineXeLaTeX,
			exec:     operational("pdflatex", "xelatex"),
			wantName: "xelatex",
		},
		{
			name:    "explicit engine not operational",
			engine:  types.EngineLuaLaTeX,
			exec:    operational("pdflatex"),
			wantErr: "lualatex not found",
		},
		{
			name:     "auto detects",
			engine:   types.EngineAuto,
			exec:     operational("xelatex"),
			wantName: "xelatex",
		},
		{
			name:     "empty name detects",
			engine:   "",
			exec:     operational("pdflatex"),
			wantName: "pdflatex",
		},
		{
			name:     "unpackaged binary name is looked up as-is",
			engine:   "tectonic",
			exec:     operational("tectonic"),
			wantName: "tectonic",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := forName(tt.engine, tt.exec)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %v should contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if eng.Name() != tt.wantName {
				t.Errorf("got engine %q, want %q", eng.Name(), tt.wantName)
			}
		})
	}
}

func TestEngineInvocation(t *testing.T) {
	exec := operational("pdflatex")
	eng := newEngine("pdflatex", exec)

	if _, err := eng.Run(context.Background(), "/tmp/out", "script_mentee.tex"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "pdflatex -interaction=nonstopmode script_mentee.tex"
	if len(exec.runDirCalls) != 1 || exec.runDirCalls[0] != want {
		t.Errorf("got calls %v, want [%q]", exec.runDirCalls, want)
	}
}
