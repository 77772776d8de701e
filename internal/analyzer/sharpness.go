package analyzer

import (
	"image"
	"math"

	"gonum.org/v1/gonum/stat"

	"go-photo-critique/pkg/models"
)

// laplacianKernel is the 3x3 edge operator applied to the luminance plane.
var laplacianKernel = [3][3]int{
	{-1, -1, -1},
	{-1, 8, -1},
	{-1, -1, -1},
}

type sharpnessAnalyzer struct {
	tunables SharpnessTunables
}

// NewSharpnessAnalyzer creates a sharpness analyzer with the given tunables.
func NewSharpnessAnalyzer(tunables SharpnessTunables) SharpnessAnalyzer {
	return &sharpnessAnalyzer{tunables: tunables}
}

// Analyze measures edge energy as the variance of the Laplacian-filtered
// luminance plane and maps it onto a 0-100 score through an exponential
// knee.
func (a *sharpnessAnalyzer) Analyze(img image.Image) models.SharpnessResult {
	if img == nil {
		return models.SharpnessResult{Error: "no image data"}
	}

	gray := downscaleGray(toGray(img), a.tunables.MaxDimension)
	samples := laplacianSamples(gray)
	if len(samples) == 0 {
		return models.SharpnessResult{Error: "image too small for edge analysis"}
	}

	stddev := stat.PopStdDev(samples, nil)
	variance := stddev * stddev

	t := a.tunables
	score := 100.0 * (1.0 - math.Exp(-variance/t.VarianceScale))

	notes := make([]string, 0, 2)
	switch {
	case variance < t.SoftVariance:
		notes = append(notes, "Image likely soft or slightly out of focus.")
	case variance < t.SharpVariance:
		notes = append(notes, "Sharpness looks decent for typical viewing sizes.")
	default:
		notes = append(notes, "Strong fine detail; image appears very sharp.")
	}
	if variance < t.LowEnergyVariance {
		score -= t.LowEnergyPenalty
		notes = append(notes, "Very low edge energy detected (possible motion blur or heavy noise reduction).")
	}
	score = clampFloat(score, 0, 100)

	return models.SharpnessResult{
		Available:         true,
		LaplacianStddev:   roundTo(stddev, 3),
		LaplacianVariance: roundTo(variance, 3),
		Score:             roundTo(score, 1),
		Notes:             notes,
	}
}

// laplacianSamples convolves the kernel over the interior of gray, clamping
// each response to [0,255]. Border pixels are skipped, so images narrower
// than 3 px in either dimension yield no samples.
func laplacianSamples(gray *image.Gray) []float64 {
	bounds := gray.Bounds()
	if bounds.Dx() < 3 || bounds.Dy() < 3 {
		return nil
	}
	samples := make([]float64, 0, (bounds.Dx()-2)*(bounds.Dy()-2))
	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			sum := 0
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sum += laplacianKernel[ky+1][kx+1] * int(gray.GrayAt(x+kx, y+ky).Y)
				}
			}
			if sum < 0 {
				sum = 0
			} else if sum > 255 {
				sum = 255
			}
			samples = append(samples, float64(sum))
		}
	}
	return samples
}
