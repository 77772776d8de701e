package analyzer

import (
	"image"
	"math"

	"go-photo-critique/pkg/models"
)

type exposureAnalyzer struct {
	tunables ExposureTunables
}

// NewExposureAnalyzer creates an exposure analyzer with the given tunables.
func NewExposureAnalyzer(tunables ExposureTunables) ExposureAnalyzer {
	return &exposureAnalyzer{tunables: tunables}
}

// Analyze builds a 256-bin luminance histogram and scores overall
// brightness, clipping, and dynamic range. Exposure works on the full-size
// image; only percentile statistics are derived from the histogram.
func (a *exposureAnalyzer) Analyze(img image.Image) models.ExposureResult {
	if img == nil {
		return models.ExposureResult{Error: "no image data"}
	}

	gray := toGray(img)
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return models.ExposureResult{Error: "image has no pixels"}
	}

	var hist [histogramBins]int
	sum := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := gray.GrayAt(x, y).Y
			hist[v]++
			sum += int(v)
		}
	}

	mean := float64(sum) / float64(total)
	p05 := percentileIndex(hist[:], total, shadowPercentile)
	p95 := percentileIndex(hist[:], total, highlightPercentile)
	dynamicRange := float64(p95 - p05)

	clippedShadows := 0
	for _, count := range hist[:3] {
		clippedShadows += count
	}
	clippedHighlights := 0
	for _, count := range hist[253:] {
		clippedHighlights += count
	}
	shadowPct := 100.0 * float64(clippedShadows) / float64(total)
	highlightPct := 100.0 * float64(clippedHighlights) / float64(total)

	t := a.tunables
	score := 100.0
	if mean < t.IdealMeanLow {
		score -= math.Min(t.MeanPenaltyMax, (t.IdealMeanLow-mean)*t.MeanPenaltyScale)
	} else if mean > t.IdealMeanHigh {
		score -= math.Min(t.MeanPenaltyMax, (mean-t.IdealMeanHigh)*t.MeanPenaltyScale)
	}
	score -= math.Min(t.ClipPenaltyMax, highlightPct*t.ClipPenaltyScale)
	score -= math.Min(t.ClipPenaltyMax, shadowPct*t.ClipPenaltyScale)
	if dynamicRange < t.LowRange {
		score -= (t.LowRange - dynamicRange) * t.LowRangePenaltyScale
	} else if dynamicRange >= t.BonusRangeLow && dynamicRange <= t.BonusRangeHigh {
		score += t.RangeBonus
	}
	score = clampFloat(score, 0, 100)

	notes := make([]string, 0, 4)
	switch {
	case mean < t.IdealMeanLow:
		notes = append(notes, "Image looks underexposed (overall too dark).")
	case mean > t.IdealMeanHigh:
		notes = append(notes, "Image looks overexposed (overall too bright).")
	default:
		notes = append(notes, "Overall brightness looks reasonable.")
	}
	switch {
	case dynamicRange < t.LowRange:
		notes = append(notes, "Low dynamic range (may look flat or muddy).")
	case dynamicRange > t.HighRangeNote:
		notes = append(notes, "Very high dynamic range (could be harsh or high-contrast).")
	default:
		notes = append(notes, "Dynamic range looks healthy.")
	}
	if highlightPct > t.ClipNotePct {
		notes = append(notes, "Noticeable highlight clipping (blown whites).")
	}
	if shadowPct > t.ClipNotePct {
		notes = append(notes, "Noticeable shadow clipping (crushed blacks).")
	}

	return models.ExposureResult{
		Available:            true,
		BrightnessMean:       roundTo(mean, 2),
		BrightnessP05:        p05,
		BrightnessP95:        p95,
		DynamicRange:         roundTo(dynamicRange, 2),
		ClippedShadowsPct:    roundTo(shadowPct, 3),
		ClippedHighlightsPct: roundTo(highlightPct, 3),
		Score:                roundTo(score, 1),
		Notes:                notes,
	}
}
