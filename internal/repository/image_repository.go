package repository

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"go-photo-critique/internal/storage"
	"go-photo-critique/pkg/validation"
)

// FetcherImageRepository implements ImageRepository over a storage fetcher
type FetcherImageRepository struct {
	fetcher   storage.ImageFetcher
	validator *validation.URLValidator
}

// NewImageRepository creates an image repository over the given fetcher.
// A nil validator falls back to the default URL validator.
func NewImageRepository(fetcher storage.ImageFetcher, validator *validation.URLValidator) ImageRepository {
	if validator == nil {
		validator = validation.NewURLValidator()
	}
	return &FetcherImageRepository{
		fetcher:   fetcher,
		validator: validator,
	}
}

// FetchImage retrieves raw image bytes from a URL after validating it
func (r *FetcherImageRepository) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if err := r.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}
	return r.fetcher.FetchImage(ctx, imageURL)
}

// ValidateImageURL validates if the provided URL is acceptable
func (r *FetcherImageRepository) ValidateImageURL(imageURL string) error {
	if imageURL == "" {
		return ErrInvalidImageURL
	}
	return r.validator.ValidateImageURL(imageURL)
}

// GetImageMetadata fetches the image and reads its header without decoding
// the full pixel data
func (r *FetcherImageRepository) GetImageMetadata(ctx context.Context, imageURL string) (*ImageMetadata, error) {
	data, err := r.FetchImage(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	return &ImageMetadata{
		ContentLength: int64(len(data)),
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
	}, nil
}
