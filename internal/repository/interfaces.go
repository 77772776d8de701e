package repository

import "context"

// ImageRepository defines the interface for image data access operations
type ImageRepository interface {
	// FetchImage retrieves raw image bytes from a URL after validating it
	FetchImage(ctx context.Context, imageURL string) ([]byte, error)

	// ValidateImageURL validates if the provided URL is acceptable
	ValidateImageURL(imageURL string) error

	// GetImageMetadata fetches an image and reports its header information
	GetImageMetadata(ctx context.Context, imageURL string) (*ImageMetadata, error)
}

// ImageMetadata contains header information about a fetched image
type ImageMetadata struct {
	ContentLength int64
	Width         int
	Height        int
	Format        string
}
