package analyzer

import (
	"image"
	"math"

	"go-photo-critique/pkg/models"
)

type colorAnalyzer struct {
	tunables ColorTunables
}

// NewColorAnalyzer creates a color analyzer with the given tunables.
func NewColorAnalyzer(tunables ColorTunables) ColorAnalyzer {
	return &colorAnalyzer{tunables: tunables}
}

// Analyze measures channel balance and HSV saturation and scores how natural
// the palette looks. Warmth is the red-blue mean difference; the tint axis
// compares green against the red/blue average.
func (a *colorAnalyzer) Analyze(img image.Image) models.ColorResult {
	if img == nil {
		return models.ColorResult{Error: "no image data"}
	}

	rgba := downscaleRGBA(toRGBA(img), a.tunables.MaxDimension)
	bounds := rgba.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return models.ColorResult{Error: "image has no pixels"}
	}

	var sumR, sumG, sumB, satSum int
	var satHist [histogramBins]int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := rgba.RGBAAt(x, y)
			sumR += int(c.R)
			sumG += int(c.G)
			sumB += int(c.B)
			s := saturationByte(c.R, c.G, c.B)
			satHist[s]++
			satSum += int(s)
		}
	}

	meanR := float64(sumR) / float64(total)
	meanG := float64(sumG) / float64(total)
	meanB := float64(sumB) / float64(total)
	warmth := meanR - meanB
	greenMagenta := meanG - (meanR+meanB)/2.0

	satMean := float64(satSum) / float64(total) / 255.0
	satP95 := float64(percentileIndex(satHist[:], total, highlightPercentile)) / 255.0

	t := a.tunables
	score := 100.0
	if satMean < t.MutedSaturation {
		score -= (t.MutedSaturation - satMean) * t.MutedPenaltyScale
	} else if satMean > t.StrongSaturation {
		score -= (satMean - t.StrongSaturation) * t.StrongPenaltyScale
	}
	score -= math.Min(t.WarmthPenaltyMax, math.Abs(warmth)*t.WarmthPenaltyScale)
	score -= math.Min(t.TintPenaltyMax, math.Abs(greenMagenta)*t.TintPenaltyScale)
	if satP95 >= t.RichSatLow && satP95 <= t.RichSatHigh {
		score += t.RichSatBonus
	}
	score = clampFloat(score, 0, 100)

	notes := make([]string, 0, 3)
	switch {
	case satMean < t.VeryMutedSaturation:
		notes = append(notes, "Colors look very muted (low saturation).")
	case satMean < t.MutedSaturation:
		notes = append(notes, "Colors look slightly muted (cinematic/soft palette).")
	case satMean <= t.NaturalSaturation:
		notes = append(notes, "Saturation looks natural/healthy.")
	case satMean <= t.StrongNoteSaturation:
		notes = append(notes, "Saturation is strong; watch for oversaturation.")
	default:
		notes = append(notes, "Very strong saturation; risk of clipped/unnatural color.")
	}
	switch {
	case warmth > t.WarmCastThreshold:
		notes = append(notes, "Warm color cast detected (reds/yellows dominate).")
	case warmth < -t.WarmCastThreshold:
		notes = append(notes, "Cool color cast detected (blues dominate).")
	default:
		notes = append(notes, "White balance looks fairly neutral.")
	}
	if greenMagenta > t.TintCastThreshold {
		notes = append(notes, "Slight green cast detected (often from fluorescents/shade).")
	} else if greenMagenta < -t.TintCastThreshold {
		notes = append(notes, "Slight magenta cast detected (often from mixed lighting).")
	}

	return models.ColorResult{
		Available:      true,
		MeanRGB:        [3]float64{roundTo(meanR, 2), roundTo(meanG, 2), roundTo(meanB, 2)},
		SaturationMean: roundTo(satMean, 4),
		SaturationP95:  roundTo(satP95, 4),
		Warmth:         roundTo(warmth, 2),
		GreenMagenta:   roundTo(greenMagenta, 2),
		Score:          roundTo(score, 1),
		Notes:          notes,
	}
}

// saturationByte is the integer HSV saturation of an 8-bit RGB pixel:
// 255*(max-min)/max, zero for black.
func saturationByte(r, g, b uint8) uint8 {
	maxC := r
	if g > maxC {
		maxC = g
	}
	if b > maxC {
		maxC = b
	}
	minC := r
	if g < minC {
		minC = g
	}
	if b < minC {
		minC = b
	}
	if maxC == 0 {
		return 0
	}
	return uint8(255 * int(maxC-minC) / int(maxC))
}
