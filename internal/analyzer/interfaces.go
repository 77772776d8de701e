package analyzer

import (
	"image"

	"go-photo-critique/pkg/models"
)

// ExposureAnalyzer derives brightness-histogram statistics and an exposure
// score from a decoded image.
type ExposureAnalyzer interface {
	Analyze(img image.Image) models.ExposureResult
}

// SharpnessAnalyzer derives a Laplacian edge-energy statistic and a
// sharpness score from a decoded image.
type SharpnessAnalyzer interface {
	Analyze(img image.Image) models.SharpnessResult
}

// ColorAnalyzer derives saturation and white-balance statistics and a color
// score from a decoded image.
type ColorAnalyzer interface {
	Analyze(img image.Image) models.ColorResult
}
