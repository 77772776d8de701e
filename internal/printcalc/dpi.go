// Package printcalc computes print-readiness guidance from pixel
// dimensions. Strictly speaking the unit is PPI (pixels per inch), but most
// users say DPI.
package printcalc

import (
	"fmt"
	"math"

	apperrors "go-photo-critique/internal/errors"
	"go-photo-critique/pkg/models"
)

// presetPPIs are the common print targets every report includes.
var presetPPIs = []float64{300, 240, 200, 150}

// MaxPrintSize computes the largest print the pixel dimensions support at
// the given target PPI.
func MaxPrintSize(widthPx, heightPx int, targetPPI float64) (models.MaxPrintSize, error) {
	if targetPPI <= 0 {
		return models.MaxPrintSize{}, apperrors.NewValidationError("target_ppi must be positive", nil)
	}
	return models.MaxPrintSize{
		MaxWidthIn:  roundTo(float64(widthPx)/targetPPI, 2),
		MaxHeightIn: roundTo(float64(heightPx)/targetPPI, 2),
		TargetPPI:   targetPPI,
	}, nil
}

// EffectivePPI computes the pixel density a print of the given size would
// produce, with PPIMin as the conservative minimum of the two axes.
func EffectivePPI(widthPx, heightPx int, size models.PrintSizeInches) (models.EffectivePPI, error) {
	if size.WidthIn <= 0 || size.HeightIn <= 0 {
		return models.EffectivePPI{}, apperrors.NewValidationError("print size must be positive inches", nil)
	}
	ppiW := float64(widthPx) / size.WidthIn
	ppiH := float64(heightPx) / size.HeightIn
	return models.EffectivePPI{
		PPIWidth:  roundTo(ppiW, 2),
		PPIHeight: roundTo(ppiH, 2),
		PPIMin:    roundTo(math.Min(ppiW, ppiH), 2),
	}, nil
}

// QualityTier maps a conservative minimum PPI onto a human-friendly tier.
func QualityTier(ppiMin float64) models.PrintQuality {
	switch {
	case ppiMin >= 300:
		return models.PrintQuality{Tier: "excellent", Message: "Excellent for high-quality prints (300+ PPI)."}
	case ppiMin >= 240:
		return models.PrintQuality{Tier: "very_good", Message: "Very good print quality (240+ PPI)."}
	case ppiMin >= 200:
		return models.PrintQuality{Tier: "good", Message: "Good print quality for most uses (200+ PPI)."}
	case ppiMin >= 150:
		return models.PrintQuality{Tier: "fair", Message: "Fair quality; best for larger viewing distance (150+ PPI)."}
	default:
		return models.PrintQuality{Tier: "low", Message: "Low PPI; print may look soft/pixelated."}
	}
}

// Recommendations builds the full print-readiness report: maximum print
// sizes for the common PPI presets, plus effective PPI and a quality tier
// when a target print size is supplied. A zero target dimension means no
// target was requested; the tier is derived from the rounded minimum PPI.
func Recommendations(widthPx, heightPx int, targetWidthIn, targetHeightIn float64) (*models.PrintReadinessReport, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return nil, apperrors.NewValidationError("pixel dimensions must be positive integers", nil)
	}

	targets := make(map[string]models.MaxPrintSize, len(presetPPIs))
	for _, ppi := range presetPPIs {
		size, err := MaxPrintSize(widthPx, heightPx, ppi)
		if err != nil {
			return nil, err
		}
		targets[fmt.Sprintf("max_print_at_%dppi", int(ppi))] = size
	}

	report := &models.PrintReadinessReport{
		Pixels:  models.PixelDimensions{WidthPx: widthPx, HeightPx: heightPx},
		Targets: targets,
	}

	if targetWidthIn != 0 && targetHeightIn != 0 {
		size := models.PrintSizeInches{WidthIn: targetWidthIn, HeightIn: targetHeightIn}
		eff, err := EffectivePPI(widthPx, heightPx, size)
		if err != nil {
			return nil, err
		}
		quality := QualityTier(eff.PPIMin)
		report.TargetPrintSize = &size
		report.EffectivePPI = &eff
		report.Quality = &quality
	}

	return report, nil
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
