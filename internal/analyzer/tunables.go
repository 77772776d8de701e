package analyzer

// The scoring constants below are tuned heuristics, not physical constants.
// They are carried as value structs so deployments can recalibrate them
// through the scoring config file without touching analyzer code.

// ExposureTunables controls the exposure score heuristic.
type ExposureTunables struct {
	// IdealMeanLow and IdealMeanHigh bound the luminance band that draws no
	// brightness penalty.
	IdealMeanLow  float64
	IdealMeanHigh float64
	// MeanPenaltyScale is the penalty per unit of distance from the ideal
	// band, capped at MeanPenaltyMax.
	MeanPenaltyScale float64
	MeanPenaltyMax   float64
	// ClipPenaltyScale is the penalty per clipped percent on either extreme,
	// capped at ClipPenaltyMax per side.
	ClipPenaltyScale float64
	ClipPenaltyMax   float64
	// ClipNotePct is the clipped percentage above which a clipping warning
	// note is emitted.
	ClipNotePct float64
	// LowRange is the dynamic range below which the flat-image penalty
	// applies at LowRangePenaltyScale per missing unit.
	LowRange             float64
	LowRangePenaltyScale float64
	// BonusRangeLow..BonusRangeHigh is the dynamic-range band rewarded with
	// RangeBonus.
	BonusRangeLow  float64
	BonusRangeHigh float64
	RangeBonus     float64
	// HighRangeNote is the dynamic range above which the very-high-contrast
	// note is emitted.
	HighRangeNote float64
}

// DefaultExposureTunables returns the calibrated exposure defaults.
func DefaultExposureTunables() ExposureTunables {
	return ExposureTunables{
		IdealMeanLow:         110.0,
		IdealMeanHigh:        145.0,
		MeanPenaltyScale:     0.5,
		MeanPenaltyMax:       35.0,
		ClipPenaltyScale:     4.0,
		ClipPenaltyMax:       30.0,
		ClipNotePct:          2.0,
		LowRange:             60.0,
		LowRangePenaltyScale: 0.25,
		BonusRangeLow:        80.0,
		BonusRangeHigh:       160.0,
		RangeBonus:           3.0,
		HighRangeNote:        170.0,
	}
}

// SharpnessTunables controls the sharpness score heuristic.
type SharpnessTunables struct {
	// MaxDimension caps the longer side before convolution.
	MaxDimension int
	// VarianceScale is the exponential knee of the variance-to-score curve.
	VarianceScale float64
	// SoftVariance and SharpVariance bound the soft / decent / very sharp
	// note bands.
	SoftVariance  float64
	SharpVariance float64
	// LowEnergyVariance is the variance below which LowEnergyPenalty is
	// subtracted and the motion-blur note emitted.
	LowEnergyVariance float64
	LowEnergyPenalty  float64
}

// DefaultSharpnessTunables returns the calibrated sharpness defaults.
func DefaultSharpnessTunables() SharpnessTunables {
	return SharpnessTunables{
		MaxDimension:      1600,
		VarianceScale:     180.0,
		SoftVariance:      60.0,
		SharpVariance:     180.0,
		LowEnergyVariance: 25.0,
		LowEnergyPenalty:  20.0,
	}
}

// ColorTunables controls the color score heuristic.
type ColorTunables struct {
	// MaxDimension caps the longer side before channel statistics.
	MaxDimension int
	// MutedSaturation and StrongSaturation bound the mean-saturation band
	// that draws no penalty; deviations scale by the matching penalty
	// scales.
	MutedSaturation    float64
	StrongSaturation   float64
	MutedPenaltyScale  float64
	StrongPenaltyScale float64
	// WarmthPenaltyScale applies per unit of red-blue imbalance, capped at
	// WarmthPenaltyMax. TintPenaltyScale does the same on the
	// green-magenta axis.
	WarmthPenaltyScale float64
	WarmthPenaltyMax   float64
	TintPenaltyScale   float64
	TintPenaltyMax     float64
	// RichSatLow..RichSatHigh is the 95th-percentile saturation band
	// rewarded with RichSatBonus.
	RichSatLow   float64
	RichSatHigh  float64
	RichSatBonus float64
	// Note-band thresholds for the saturation verdict.
	VeryMutedSaturation  float64
	NaturalSaturation    float64
	StrongNoteSaturation float64
	// WarmCastThreshold and TintCastThreshold gate the cast notes.
	WarmCastThreshold float64
	TintCastThreshold float64
}

// DefaultColorTunables returns the calibrated color defaults.
func DefaultColorTunables() ColorTunables {
	return ColorTunables{
		MaxDimension:         1400,
		MutedSaturation:      0.22,
		StrongSaturation:     0.55,
		MutedPenaltyScale:    220.0,
		StrongPenaltyScale:   180.0,
		WarmthPenaltyScale:   0.35,
		WarmthPenaltyMax:     18.0,
		TintPenaltyScale:     0.40,
		TintPenaltyMax:       12.0,
		RichSatLow:           0.35,
		RichSatHigh:          0.85,
		RichSatBonus:         3.0,
		VeryMutedSaturation:  0.12,
		NaturalSaturation:    0.45,
		StrongNoteSaturation: 0.60,
		WarmCastThreshold:    18.0,
		TintCastThreshold:    10.0,
	}
}
