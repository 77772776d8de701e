// Package exifinfo extracts a small, conservative EXIF summary for client
// display. It degrades gracefully: files without an EXIF block are not an
// error, and parse failures never abort a critique.
package exifinfo

import (
	"errors"
	"fmt"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"go-photo-critique/pkg/models"
)

// ReadSummary scans raw image bytes for an EXIF block and returns the
// summary fields. Width and height come from the decoded image, so they are
// filled even when no EXIF block exists. GPS tags are reduced to a presence
// flag; coordinates are never surfaced.
func ReadSummary(data []byte, widthPx, heightPx int) models.ExifSummary {
	fields := &models.ExifFields{
		WidthPx:  widthPx,
		HeightPx: heightPx,
	}

	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return models.ExifSummary{Available: true, HasExif: false, Summary: fields}
		}
		return models.ExifSummary{Error: fmt.Sprintf("EXIF parse failed: %v", err)}
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return models.ExifSummary{Error: fmt.Sprintf("EXIF parse failed: %v", err)}
	}

	for _, entry := range entries {
		value := entry.Formatted

		if strings.HasPrefix(entry.IfdPath, "IFD/GPS") {
			fields.HasGPS = true
			continue
		}

		switch entry.TagName {
		case "Make":
			fields.Make = value
		case "Model":
			fields.Model = value
		case "LensModel":
			fields.LensModel = value
		case "DateTimeOriginal":
			fields.DateTimeOriginal = value
		case "ISOSpeedRatings", "PhotographicSensitivity":
			if fields.ISO == "" {
				fields.ISO = value
			}
		case "FNumber":
			fields.FNumber = value
		case "ExposureTime":
			fields.ExposureTime = value
		case "FocalLength":
			fields.FocalLength = value
		}
	}

	return models.ExifSummary{Available: true, HasExif: true, Summary: fields}
}
