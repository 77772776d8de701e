package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go-photo-critique/pkg/models"
)

func TestPrintCmd_Presets(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"print", "3000", "2000"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rep models.PrintReadinessReport
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if rep.Pixels.WidthPx != 3000 || rep.Pixels.HeightPx != 2000 {
		t.Errorf("expected pixels echoed, got %+v", rep.Pixels)
	}
	if len(rep.Targets) != 4 {
		t.Errorf("expected 4 preset targets, got %d", len(rep.Targets))
	}
	if _, ok := rep.Targets["max_print_at_300ppi"]; !ok {
		t.Error("expected max_print_at_300ppi target")
	}
	if rep.EffectivePPI != nil || rep.Quality != nil {
		t.Error("expected no target-size section without print flags")
	}
}

func TestPrintCmd_WithTarget(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"print", "3000", "2000", "--print-width", "10", "--print-height", "6.6667"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var rep models.PrintReadinessReport
	if err := json.Unmarshal(buf.Bytes(), &rep); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if rep.EffectivePPI == nil {
		t.Fatal("expected effective PPI section")
	}
	if rep.EffectivePPI.PPIMin != 300.0 {
		t.Errorf("expected minimum PPI 300, got %f", rep.EffectivePPI.PPIMin)
	}
	if rep.Quality == nil || rep.Quality.Tier != "excellent" {
		t.Errorf("expected excellent tier, got %+v", rep.Quality)
	}
}

func TestPrintCmd_InvalidArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"non-numeric width", []string{"print", "abc", "2000"}, "invalid width_px"},
		{"non-numeric height", []string{"print", "3000", "xyz"}, "invalid height_px"},
		{"zero width", []string{"print", "0", "2000"}, "pixel dimensions"},
		{"negative height", []string{"print", "3000", "-5"}, "pixel dimensions"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd := NewRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
