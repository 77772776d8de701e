package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"go-photo-critique/internal/analyzer"
	"go-photo-critique/pkg/models"
)

// AppName is the directory name used under the XDG config root.
const AppName = "photo-critique"

// DefaultScoringFile is the scoring overrides file name inside the XDG
// config directory.
const DefaultScoringFile = "scoring.yaml"

// LocalScoringFile is the scoring overrides file name looked up in the
// working directory.
const LocalScoringFile = ".photo-critique.yaml"

// ErrScoringConfigNotFound is returned when the scoring overrides file does
// not exist.
var ErrScoringConfigNotFound = errors.New("scoring config file not found")

// ScoringFile holds optional overrides for score weights and analyzer
// tunables. All fields are pointers so an absent key leaves the calibrated
// default untouched; a zero in the file is an explicit zero.
type ScoringFile struct {
	Weights   *WeightsOverride   `yaml:"weights"`
	Exposure  *ExposureOverride  `yaml:"exposure"`
	Sharpness *SharpnessOverride `yaml:"sharpness"`
	Color     *ColorOverride     `yaml:"color"`
}

// WeightsOverride overrides the relative metric weights.
type WeightsOverride struct {
	Exposure  *float64 `yaml:"exposure"`
	Sharpness *float64 `yaml:"sharpness"`
	Color     *float64 `yaml:"color"`
}

// ExposureOverride overrides exposure scoring tunables.
type ExposureOverride struct {
	IdealMeanLow         *float64 `yaml:"ideal_mean_low"`
	IdealMeanHigh        *float64 `yaml:"ideal_mean_high"`
	MeanPenaltyScale     *float64 `yaml:"mean_penalty_scale"`
	MeanPenaltyMax       *float64 `yaml:"mean_penalty_max"`
	ClipPenaltyScale     *float64 `yaml:"clip_penalty_scale"`
	ClipPenaltyMax       *float64 `yaml:"clip_penalty_max"`
	ClipNotePct          *float64 `yaml:"clip_note_pct"`
	LowRange             *float64 `yaml:"low_range"`
	LowRangePenaltyScale *float64 `yaml:"low_range_penalty_scale"`
	BonusRangeLow        *float64 `yaml:"bonus_range_low"`
	BonusRangeHigh       *float64 `yaml:"bonus_range_high"`
	RangeBonus           *float64 `yaml:"range_bonus"`
	HighRangeNote        *float64 `yaml:"high_range_note"`
}

// SharpnessOverride overrides sharpness scoring tunables.
type SharpnessOverride struct {
	MaxDimension      *int     `yaml:"max_dimension"`
	VarianceScale     *float64 `yaml:"variance_scale"`
	SoftVariance      *float64 `yaml:"soft_variance"`
	SharpVariance     *float64 `yaml:"sharp_variance"`
	LowEnergyVariance *float64 `yaml:"low_energy_variance"`
	LowEnergyPenalty  *float64 `yaml:"low_energy_penalty"`
}

// ColorOverride overrides color scoring tunables.
type ColorOverride struct {
	MaxDimension         *int     `yaml:"max_dimension"`
	MutedSaturation      *float64 `yaml:"muted_saturation"`
	StrongSaturation     *float64 `yaml:"strong_saturation"`
	MutedPenaltyScale    *float64 `yaml:"muted_penalty_scale"`
	StrongPenaltyScale   *float64 `yaml:"strong_penalty_scale"`
	WarmthPenaltyScale   *float64 `yaml:"warmth_penalty_scale"`
	WarmthPenaltyMax     *float64 `yaml:"warmth_penalty_max"`
	TintPenaltyScale     *float64 `yaml:"tint_penalty_scale"`
	TintPenaltyMax       *float64 `yaml:"tint_penalty_max"`
	RichSatLow           *float64 `yaml:"rich_sat_low"`
	RichSatHigh          *float64 `yaml:"rich_sat_high"`
	RichSatBonus         *float64 `yaml:"rich_sat_bonus"`
	VeryMutedSaturation  *float64 `yaml:"very_muted_saturation"`
	NaturalSaturation    *float64 `yaml:"natural_saturation"`
	StrongNoteSaturation *float64 `yaml:"strong_note_saturation"`
	WarmCastThreshold    *float64 `yaml:"warm_cast_threshold"`
	TintCastThreshold    *float64 `yaml:"tint_cast_threshold"`
}

// LoadScoringFile loads scoring overrides from a YAML file.
// If the file does not exist, it returns ErrScoringConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadScoringFile(path string) (*ScoringFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrScoringConfigNotFound
		}
		return nil, err
	}

	var sf ScoringFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, err
	}

	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// FindScoringFile searches for the scoring overrides file in the following
// order:
// 1. If configPath is specified, use it directly
// 2. Look for .photo-critique.yaml in the current directory
// 3. Look for scoring.yaml in the XDG config directory
//
// Returns the path to the file if found, or empty string if not found.
func FindScoringFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, LocalScoringFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(xdg.ConfigHome, AppName, DefaultScoringFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// ResolveScoringFile loads the scoring overrides for an explicit path, or
// falls back to the working-directory and XDG locations when the path is
// empty. A missing file is only an error when the path was explicit; when
// the fallback search finds nothing, nil overrides are returned and the
// calibrated defaults stand.
func ResolveScoringFile(configPath string) (*ScoringFile, error) {
	if configPath == "" {
		configPath = FindScoringFile("")
		if configPath == "" {
			return nil, nil
		}
	}

	sf, err := LoadScoringFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("scoring config %s: %w", configPath, err)
	}
	return sf, nil
}

// Validate checks the overrides for values that would corrupt scoring.
func (f *ScoringFile) Validate() error {
	if f == nil {
		return nil
	}
	if f.Weights != nil {
		weights := map[string]*float64{
			"exposure":  f.Weights.Exposure,
			"sharpness": f.Weights.Sharpness,
			"color":     f.Weights.Color,
		}
		for name, w := range weights {
			if w != nil && *w < 0 {
				return fmt.Errorf("scoring weight %s must be non-negative (got %g)", name, *w)
			}
		}
	}
	if f.Sharpness != nil && f.Sharpness.MaxDimension != nil && *f.Sharpness.MaxDimension <= 0 {
		return fmt.Errorf("sharpness max_dimension must be positive (got %d)", *f.Sharpness.MaxDimension)
	}
	if f.Color != nil && f.Color.MaxDimension != nil && *f.Color.MaxDimension <= 0 {
		return fmt.Errorf("color max_dimension must be positive (got %d)", *f.Color.MaxDimension)
	}
	return nil
}

// ApplyWeights returns the weights with any file overrides applied.
func (f *ScoringFile) ApplyWeights(w models.ScoreWeights) models.ScoreWeights {
	if f == nil || f.Weights == nil {
		return w
	}
	overrideFloat(&w.Exposure, f.Weights.Exposure)
	overrideFloat(&w.Sharpness, f.Weights.Sharpness)
	overrideFloat(&w.Color, f.Weights.Color)
	return w
}

// ApplyExposure returns the exposure tunables with any file overrides
// applied.
func (f *ScoringFile) ApplyExposure(t analyzer.ExposureTunables) analyzer.ExposureTunables {
	if f == nil || f.Exposure == nil {
		return t
	}
	o := f.Exposure
	overrideFloat(&t.IdealMeanLow, o.IdealMeanLow)
	overrideFloat(&t.IdealMeanHigh, o.IdealMeanHigh)
	overrideFloat(&t.MeanPenaltyScale, o.MeanPenaltyScale)
	overrideFloat(&t.MeanPenaltyMax, o.MeanPenaltyMax)
	overrideFloat(&t.ClipPenaltyScale, o.ClipPenaltyScale)
	overrideFloat(&t.ClipPenaltyMax, o.ClipPenaltyMax)
	overrideFloat(&t.ClipNotePct, o.ClipNotePct)
	overrideFloat(&t.LowRange, o.LowRange)
	overrideFloat(&t.LowRangePenaltyScale, o.LowRangePenaltyScale)
	overrideFloat(&t.BonusRangeLow, o.BonusRangeLow)
	overrideFloat(&t.BonusRangeHigh, o.BonusRangeHigh)
	overrideFloat(&t.RangeBonus, o.RangeBonus)
	overrideFloat(&t.HighRangeNote, o.HighRangeNote)
	return t
}

// ApplySharpness returns the sharpness tunables with any file overrides
// applied.
func (f *ScoringFile) ApplySharpness(t analyzer.SharpnessTunables) analyzer.SharpnessTunables {
	if f == nil || f.Sharpness == nil {
		return t
	}
	o := f.Sharpness
	overrideInt(&t.MaxDimension, o.MaxDimension)
	overrideFloat(&t.VarianceScale, o.VarianceScale)
	overrideFloat(&t.SoftVariance, o.SoftVariance)
	overrideFloat(&t.SharpVariance, o.SharpVariance)
	overrideFloat(&t.LowEnergyVariance, o.LowEnergyVariance)
	overrideFloat(&t.LowEnergyPenalty, o.LowEnergyPenalty)
	return t
}

// ApplyColor returns the color tunables with any file overrides applied.
func (f *ScoringFile) ApplyColor(t analyzer.ColorTunables) analyzer.ColorTunables {
	if f == nil || f.Color == nil {
		return t
	}
	o := f.Color
	overrideInt(&t.MaxDimension, o.MaxDimension)
	overrideFloat(&t.MutedSaturation, o.MutedSaturation)
	overrideFloat(&t.StrongSaturation, o.StrongSaturation)
	overrideFloat(&t.MutedPenaltyScale, o.MutedPenaltyScale)
	overrideFloat(&t.StrongPenaltyScale, o.StrongPenaltyScale)
	overrideFloat(&t.WarmthPenaltyScale, o.WarmthPenaltyScale)
	overrideFloat(&t.WarmthPenaltyMax, o.WarmthPenaltyMax)
	overrideFloat(&t.TintPenaltyScale, o.TintPenaltyScale)
	overrideFloat(&t.TintPenaltyMax, o.TintPenaltyMax)
	overrideFloat(&t.RichSatLow, o.RichSatLow)
	overrideFloat(&t.RichSatHigh, o.RichSatHigh)
	overrideFloat(&t.RichSatBonus, o.RichSatBonus)
	overrideFloat(&t.VeryMutedSaturation, o.VeryMutedSaturation)
	overrideFloat(&t.NaturalSaturation, o.NaturalSaturation)
	overrideFloat(&t.StrongNoteSaturation, o.StrongNoteSaturation)
	overrideFloat(&t.WarmCastThreshold, o.WarmCastThreshold)
	overrideFloat(&t.TintCastThreshold, o.TintCastThreshold)
	return t
}

func overrideFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func overrideInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
