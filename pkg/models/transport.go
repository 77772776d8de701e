package models

// CritiqueURLRequest asks the service to fetch an image by URL and critique
// it. The optional print dimensions add a print-readiness section to the
// response.
type CritiqueURLRequest struct {
	URL           string  `json:"url" binding:"required,url"`
	PrintWidthIn  float64 `json:"print_width_in,omitempty"`
	PrintHeightIn float64 `json:"print_height_in,omitempty"`
}

// ErrorResponse is the wire shape of a failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
