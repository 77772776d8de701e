package models

// PixelDimensions is the pixel size of the source image.
type PixelDimensions struct {
	WidthPx  int `json:"width_px"`
	HeightPx int `json:"height_px"`
}

// PrintSizeInches is a physical print size in inches.
type PrintSizeInches struct {
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
}

// MaxPrintSize is the largest print (in inches) the pixel dimensions
// support at a given target PPI.
type MaxPrintSize struct {
	MaxWidthIn  float64 `json:"max_width_in"`
	MaxHeightIn float64 `json:"max_height_in"`
	TargetPPI   float64 `json:"target_ppi"`
}

// EffectivePPI is the pixel density a given print size would produce.
// PPIMin is the conservative minimum of the two axes.
type EffectivePPI struct {
	PPIWidth  float64 `json:"ppi_width"`
	PPIHeight float64 `json:"ppi_height"`
	PPIMin    float64 `json:"ppi_min"`
}

// PrintQuality is a human-friendly tier for an effective PPI value.
type PrintQuality struct {
	Tier    string `json:"tier"`
	Message string `json:"message"`
}

// PrintReadinessReport maps fixed PPI presets to maximum print sizes and,
// when a target print size was supplied, reports the effective PPI and
// quality tier for that size.
type PrintReadinessReport struct {
	Pixels          PixelDimensions         `json:"pixels"`
	Targets         map[string]MaxPrintSize `json:"targets"`
	TargetPrintSize *PrintSizeInches        `json:"target_print_size_in,omitempty"`
	EffectivePPI    *EffectivePPI           `json:"effective_ppi,omitempty"`
	Quality         *PrintQuality           `json:"quality,omitempty"`
}
