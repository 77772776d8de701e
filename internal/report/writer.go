// Package report writes critique results in formats meant for humans and
// for tools. The CLI picks a writer from its --format flag; each writer
// renders the same CritiqueResponse.
package report

import (
	"io"

	"go-photo-critique/pkg/models"
)

// Writer defines the interface for critique report output.
type Writer interface {
	// Write outputs the critique to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(resp *models.CritiqueResponse) (int, error)
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
