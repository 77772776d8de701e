// Package scoring blends per-metric scores into one overall photo score.
package scoring

import (
	"math"

	"go-photo-critique/pkg/models"
)

// NeutralScore substitutes for a metric that could not be computed, so one
// failed analyzer neither sinks nor inflates the overall score.
const NeutralScore = 50.0

// minWeightSum guards the normalization against all-zero weights.
const minWeightSum = 0.0001

// DefaultWeights returns the standard metric weighting.
func DefaultWeights() models.ScoreWeights {
	return models.ScoreWeights{
		Exposure:  0.40,
		Sharpness: 0.35,
		Color:     0.25,
	}
}

// Aggregate blends the three metric scores into a weighted overall score and
// letter grade. Inputs are clamped to [0,100] first; nil weights select the
// defaults. The grade is derived from the unrounded overall value.
func Aggregate(exposure, sharpness, color float64, weights *models.ScoreWeights) models.AggregateScore {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}

	exposure = clampScore(exposure)
	sharpness = clampScore(sharpness)
	color = clampScore(color)

	weightSum := w.Exposure + w.Sharpness + w.Color
	if weightSum < minWeightSum {
		weightSum = minWeightSum
	}
	overall := (exposure*w.Exposure + sharpness*w.Sharpness + color*w.Color) / weightSum
	overall = clampScore(overall)

	return models.AggregateScore{
		Overall: roundTo(overall, 1),
		Grade:   gradeFor(overall),
		Weights: w,
		Subscores: models.Subscores{
			Exposure:  roundTo(exposure, 1),
			Sharpness: roundTo(sharpness, 1),
			Color:     roundTo(color, 1),
		},
		Explain: []string{
			"Overall score is a weighted blend of exposure, sharpness, and color.",
			"Each subscore is expected to be 0-100 from its own metric module.",
		},
	}
}

func gradeFor(score float64) string {
	switch {
	case score >= 93:
		return "A"
	case score >= 85:
		return "B"
	case score >= 75:
		return "C"
	case score >= 65:
		return "D"
	default:
		return "F"
	}
}

func clampScore(x float64) float64 {
	return math.Max(0, math.Min(100, x))
}

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
