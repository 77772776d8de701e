package analyzer

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/gift"
)

// toGray converts an image to 8-bit grayscale using the standard library's
// luminance conversion.
func toGray(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// toRGBA converts an image to RGBA, returning the input unchanged when it
// already is one.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// fitWithin computes the target size that brings the longer side down to
// maxDim while preserving aspect ratio. Sizes already within the limit pass
// through unchanged; either axis is floored at one pixel.
func fitWithin(width, height, maxDim int) (int, int) {
	longer := width
	if height > longer {
		longer = height
	}
	if longer <= maxDim {
		return width, height
	}
	scale := float64(maxDim) / float64(longer)
	w := int(float64(width) * scale)
	h := int(float64(height) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// downscaleGray resizes gray so its longer side does not exceed maxDim,
// using box resampling.
func downscaleGray(gray *image.Gray, maxDim int) *image.Gray {
	bounds := gray.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), maxDim)
	if w == bounds.Dx() && h == bounds.Dy() {
		return gray
	}
	g := gift.New(gift.Resize(w, h, gift.BoxResampling))
	dst := image.NewGray(g.Bounds(bounds))
	g.Draw(dst, gray)
	return dst
}

// downscaleRGBA resizes rgba so its longer side does not exceed maxDim,
// using box resampling.
func downscaleRGBA(rgba *image.RGBA, maxDim int) *image.RGBA {
	bounds := rgba.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), maxDim)
	if w == bounds.Dx() && h == bounds.Dy() {
		return rgba
	}
	g := gift.New(gift.Resize(w, h, gift.BoxResampling))
	dst := image.NewRGBA(g.Bounds(bounds))
	g.Draw(dst, rgba)
	return dst
}

// clampFloat bounds x to [lo, hi].
func clampFloat(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// roundTo rounds x to the given number of decimal places.
func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
