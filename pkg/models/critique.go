package models

// ExposureResult carries luminance-histogram statistics and the exposure
// score for a single image. When Available is false only Error is meaningful.
type ExposureResult struct {
	Available            bool     `json:"available"`
	Error                string   `json:"error,omitempty"`
	BrightnessMean       float64  `json:"brightness_mean_0_255"`
	BrightnessP05        int      `json:"brightness_p05_0_255"`
	BrightnessP95        int      `json:"brightness_p95_0_255"`
	DynamicRange         float64  `json:"dynamic_range_0_255"`
	ClippedShadowsPct    float64  `json:"clipped_shadows_pct"`
	ClippedHighlightsPct float64  `json:"clipped_highlights_pct"`
	Score                float64  `json:"score_0_100"`
	Notes                []string `json:"notes,omitempty"`
}

// SharpnessResult carries the Laplacian edge-energy statistics and the
// sharpness score.
type SharpnessResult struct {
	Available         bool     `json:"available"`
	Error             string   `json:"error,omitempty"`
	LaplacianStddev   float64  `json:"laplacian_stddev"`
	LaplacianVariance float64  `json:"laplacian_variance"`
	Score             float64  `json:"score_0_100"`
	Notes             []string `json:"notes,omitempty"`
}

// ColorResult carries saturation and white-balance statistics and the color
// score. MeanRGB is ordered R, G, B.
type ColorResult struct {
	Available      bool       `json:"available"`
	Error          string     `json:"error,omitempty"`
	MeanRGB        [3]float64 `json:"mean_rgb"`
	SaturationMean float64    `json:"saturation_mean_0_1"`
	SaturationP95  float64    `json:"saturation_p95_0_1"`
	Warmth         float64    `json:"warmth_r_minus_b"`
	GreenMagenta   float64    `json:"green_magenta_g_minus_avg_rb"`
	Score          float64    `json:"score_0_100"`
	Notes          []string   `json:"notes,omitempty"`
}

// ScoreWeights holds the relative weight of each metric in the overall
// score. Weights are non-negative and normalized by their sum.
type ScoreWeights struct {
	Exposure  float64 `json:"exposure" yaml:"exposure"`
	Sharpness float64 `json:"sharpness" yaml:"sharpness"`
	Color     float64 `json:"color" yaml:"color"`
}

// Subscores echoes the clamped per-metric inputs of an aggregate score.
type Subscores struct {
	Exposure  float64 `json:"exposure"`
	Sharpness float64 `json:"sharpness"`
	Color     float64 `json:"color"`
}

// AggregateScore is the weighted blend of the three metric scores plus a
// letter grade. Weights and subscores are echoed back so clients can audit
// how the overall value was derived.
type AggregateScore struct {
	Overall   float64      `json:"overall_0_100"`
	Grade     string       `json:"grade"`
	Weights   ScoreWeights `json:"weights"`
	Subscores Subscores    `json:"subscores_0_100"`
	Explain   []string     `json:"explain,omitempty"`
}

// CritiqueMetrics groups the three per-axis metric results.
type CritiqueMetrics struct {
	Exposure  ExposureResult  `json:"exposure"`
	Sharpness SharpnessResult `json:"sharpness"`
	Color     ColorResult     `json:"color"`
}

// ImageInfo describes the decoded image a critique was computed from.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format,omitempty"`
}

// CritiqueResponse is the full critique of one photo: EXIF summary, the
// three metric results, the aggregate score, and optionally a
// print-readiness report when the request named a target print size.
type CritiqueResponse struct {
	OK                bool                  `json:"ok"`
	ID                string                `json:"id"`
	Filename          string                `json:"filename,omitempty"`
	ImageURL          string                `json:"image_url,omitempty"`
	Timestamp         string                `json:"timestamp"`
	ProcessingTimeSec float64               `json:"processing_time_sec"`
	Image             *ImageInfo            `json:"image,omitempty"`
	Exif              ExifSummary           `json:"exif"`
	Metrics           CritiqueMetrics       `json:"metrics"`
	Score             AggregateScore        `json:"score"`
	Print             *PrintReadinessReport `json:"print,omitempty"`
}
