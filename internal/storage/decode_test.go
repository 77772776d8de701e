package storage

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func TestDecodeImage_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}

	img, format, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if format != "png" {
		t.Errorf("Expected format png, got %q", format)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("Unexpected bounds: %v", img.Bounds())
	}
}

func TestDecodeImage_BMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}

	_, format, err := DecodeImage(&buf)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if format != "bmp" {
		t.Errorf("Expected format bmp, got %q", format)
	}
}

func TestDecodeImage_Garbage(t *testing.T) {
	_, _, err := DecodeImage(strings.NewReader("definitely not an image"))
	if err == nil {
		t.Fatal("Expected error for non-image bytes")
	}
	if !strings.Contains(err.Error(), "failed to decode image") {
		t.Errorf("Unexpected error: %v", err)
	}
}
