package models

// ExifFields is the conservative EXIF summary surfaced to clients. Values
// are the formatted strings reported by the EXIF decoder; missing tags stay
// empty. Width and height come from the decoded image, so they are filled
// even when the file carries no EXIF block. GPS is reported as presence
// only.
type ExifFields struct {
	Make             string `json:"make,omitempty"`
	Model            string `json:"model,omitempty"`
	LensModel        string `json:"lens_model,omitempty"`
	DateTimeOriginal string `json:"datetime_original,omitempty"`
	ISO              string `json:"iso,omitempty"`
	FNumber          string `json:"f_number,omitempty"`
	ExposureTime     string `json:"exposure_time,omitempty"`
	FocalLength      string `json:"focal_length,omitempty"`
	WidthPx          int    `json:"width_px"`
	HeightPx         int    `json:"height_px"`
	HasGPS           bool   `json:"has_gps"`
}

// ExifSummary wraps ExifFields with availability flags: Available is false
// only when parsing failed outright; HasExif distinguishes files that simply
// carry no EXIF block.
type ExifSummary struct {
	Available bool        `json:"available"`
	Error     string      `json:"error,omitempty"`
	HasExif   bool        `json:"has_exif"`
	Summary   *ExifFields `json:"summary,omitempty"`
}
