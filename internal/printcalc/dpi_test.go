package printcalc

import (
	"math"
	"testing"

	apperrors "go-photo-critique/internal/errors"
	"go-photo-critique/pkg/models"
)

func TestMaxPrintSize(t *testing.T) {
	size, err := MaxPrintSize(3000, 2000, 300)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if size.MaxWidthIn != 10.0 {
		t.Errorf("Expected max width 10.00, got %f", size.MaxWidthIn)
	}
	if size.MaxHeightIn != 6.67 {
		t.Errorf("Expected max height 6.67, got %f", size.MaxHeightIn)
	}
	if size.TargetPPI != 300 {
		t.Errorf("Expected target PPI 300, got %f", size.TargetPPI)
	}
}

func TestMaxPrintSize_InvalidPPI(t *testing.T) {
	for _, ppi := range []float64{0, -300} {
		_, err := MaxPrintSize(3000, 2000, ppi)
		if err == nil {
			t.Fatalf("Expected error for target PPI %f", ppi)
		}
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("Expected validation error, got %v", err)
		}
	}
}

func TestEffectivePPI(t *testing.T) {
	eff, err := EffectivePPI(3000, 2000, models.PrintSizeInches{WidthIn: 10, HeightIn: 6.67})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if eff.PPIWidth != 300.0 {
		t.Errorf("Expected width PPI 300, got %f", eff.PPIWidth)
	}
	if math.Abs(eff.PPIHeight-299.85) > 0.001 {
		t.Errorf("Expected height PPI 299.85, got %f", eff.PPIHeight)
	}
	if math.Abs(eff.PPIMin-299.85) > 0.001 {
		t.Errorf("Expected min PPI 299.85, got %f", eff.PPIMin)
	}
}

func TestEffectivePPI_InvalidSize(t *testing.T) {
	cases := []models.PrintSizeInches{
		{WidthIn: 0, HeightIn: 6},
		{WidthIn: 10, HeightIn: 0},
		{WidthIn: -10, HeightIn: 6},
	}

	for _, size := range cases {
		_, err := EffectivePPI(3000, 2000, size)
		if err == nil {
			t.Fatalf("Expected error for size %+v", size)
		}
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("Expected validation error, got %v", err)
		}
	}
}

func TestQualityTier(t *testing.T) {
	testCases := []struct {
		ppiMin          float64
		expectedTier    string
		expectedMessage string
	}{
		{350, "excellent", "Excellent for high-quality prints (300+ PPI)."},
		{300, "excellent", "Excellent for high-quality prints (300+ PPI)."},
		{299.99, "very_good", "Very good print quality (240+ PPI)."},
		{240, "very_good", "Very good print quality (240+ PPI)."},
		{239.99, "good", "Good print quality for most uses (200+ PPI)."},
		{200, "good", "Good print quality for most uses (200+ PPI)."},
		{199.99, "fair", "Fair quality; best for larger viewing distance (150+ PPI)."},
		{150, "fair", "Fair quality; best for larger viewing distance (150+ PPI)."},
		{149.99, "low", "Low PPI; print may look soft/pixelated."},
		{72, "low", "Low PPI; print may look soft/pixelated."},
	}

	for _, tc := range testCases {
		quality := QualityTier(tc.ppiMin)
		if quality.Tier != tc.expectedTier {
			t.Errorf("PPI %f: expected tier %q, got %q", tc.ppiMin, tc.expectedTier, quality.Tier)
		}
		if quality.Message != tc.expectedMessage {
			t.Errorf("PPI %f: expected message %q, got %q", tc.ppiMin, tc.expectedMessage, quality.Message)
		}
	}
}

func TestRecommendations(t *testing.T) {
	report, err := Recommendations(3000, 2000, 0, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Pixels.WidthPx != 3000 || report.Pixels.HeightPx != 2000 {
		t.Errorf("Unexpected pixel dimensions: %+v", report.Pixels)
	}
	if len(report.Targets) != 4 {
		t.Fatalf("Expected 4 preset targets, got %d", len(report.Targets))
	}

	expected := map[string]models.MaxPrintSize{
		"max_print_at_300ppi": {MaxWidthIn: 10.0, MaxHeightIn: 6.67, TargetPPI: 300},
		"max_print_at_240ppi": {MaxWidthIn: 12.5, MaxHeightIn: 8.33, TargetPPI: 240},
		"max_print_at_200ppi": {MaxWidthIn: 15.0, MaxHeightIn: 10.0, TargetPPI: 200},
		"max_print_at_150ppi": {MaxWidthIn: 20.0, MaxHeightIn: 13.33, TargetPPI: 150},
	}
	for key, want := range expected {
		got, ok := report.Targets[key]
		if !ok {
			t.Errorf("Missing preset %q", key)
			continue
		}
		if got != want {
			t.Errorf("Preset %q: expected %+v, got %+v", key, want, got)
		}
	}

	if report.TargetPrintSize != nil || report.EffectivePPI != nil || report.Quality != nil {
		t.Error("Expected no target-size section without a requested print size")
	}
}

func TestRecommendations_WithTarget(t *testing.T) {
	report, err := Recommendations(3000, 2000, 10, 6.6667)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.TargetPrintSize == nil || report.EffectivePPI == nil || report.Quality == nil {
		t.Fatal("Expected target-size section to be populated")
	}
	if report.TargetPrintSize.WidthIn != 10 || report.TargetPrintSize.HeightIn != 6.6667 {
		t.Errorf("Unexpected echoed print size: %+v", report.TargetPrintSize)
	}
	// 2000 / 6.6667 rounds to exactly 300.00, which reads as excellent.
	if report.EffectivePPI.PPIMin != 300.0 {
		t.Errorf("Expected min PPI 300, got %f", report.EffectivePPI.PPIMin)
	}
	if report.Quality.Tier != "excellent" {
		t.Errorf("Expected tier excellent, got %q", report.Quality.Tier)
	}
}

func TestRecommendations_TierUsesRoundedPPI(t *testing.T) {
	// 2000 / 6.67 = 299.85, just under the excellent threshold.
	report, err := Recommendations(3000, 2000, 10, 6.67)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if math.Abs(report.EffectivePPI.PPIMin-299.85) > 0.001 {
		t.Errorf("Expected min PPI 299.85, got %f", report.EffectivePPI.PPIMin)
	}
	if report.Quality.Tier != "very_good" {
		t.Errorf("Expected tier very_good, got %q", report.Quality.Tier)
	}
}

func TestRecommendations_PartialTarget(t *testing.T) {
	report, err := Recommendations(3000, 2000, 10, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.TargetPrintSize != nil || report.EffectivePPI != nil || report.Quality != nil {
		t.Error("Expected no target-size section when one dimension is missing")
	}
}

func TestRecommendations_NegativeTarget(t *testing.T) {
	_, err := Recommendations(3000, 2000, -10, 6.67)
	if err == nil {
		t.Fatal("Expected error for negative print size")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected validation error, got %v", err)
	}
}

func TestRecommendations_InvalidPixels(t *testing.T) {
	for _, dims := range [][2]int{{0, 2000}, {3000, 0}, {-1, 2000}} {
		_, err := Recommendations(dims[0], dims[1], 0, 0)
		if err == nil {
			t.Fatalf("Expected error for dimensions %v", dims)
		}
		if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			t.Errorf("Expected validation error, got %v", err)
		}
	}
}

func TestRecommendations_InverseConsistency(t *testing.T) {
	// Printing at the computed maximum size for a preset should land the
	// effective PPI back near that preset, within rounding of the inches.
	report, err := Recommendations(3000, 2000, 0, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for key, size := range report.Targets {
		eff, err := EffectivePPI(3000, 2000, models.PrintSizeInches{
			WidthIn:  size.MaxWidthIn,
			HeightIn: size.MaxHeightIn,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", key, err)
		}
		if math.Abs(eff.PPIMin-size.TargetPPI) > 0.5 {
			t.Errorf("%s: expected min PPI near %f, got %f", key, size.TargetPPI, eff.PPIMin)
		}
	}
}
