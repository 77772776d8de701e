package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"go-photo-critique/internal/analyzer"
	"go-photo-critique/internal/config"
	"go-photo-critique/internal/factory"
	"go-photo-critique/internal/repository"
	"go-photo-critique/internal/scoring"
	"go-photo-critique/internal/service"
	"go-photo-critique/internal/storage"
	"go-photo-critique/pkg/models"
)

// fetchTimeout bounds remote image fetches started from the CLI.
const fetchTimeout = 30 * time.Second

// NewCritiqueCmd creates the critique command.
func NewCritiqueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "critique <image>",
		Short: "Critique a photo for exposure, sharpness, and color",
		Long: `Critique scores a photo on three axes (exposure, sharpness, color
balance), aggregates them into a graded overall score, and summarizes any
EXIF metadata the file carries.

The image argument is a local file path, or an http(s) URL to fetch.

Examples:
  # Critique a local file
  pcp critique vacation.jpg

  # Critique a remote image
  pcp critique https://example.com/photo.jpg

  # Include print-readiness for a 10x8 inch print
  pcp critique vacation.jpg --print-width 10 --print-height 8

  # Machine-readable output into a file
  pcp critique vacation.jpg --format json --output critique.json

  # Use custom scoring weights
  pcp critique vacation.jpg --config scoring.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runCritiqueCmd,
	}

	cmd.Flags().Float64("print-width", 0,
		"Target print width in inches (adds a print-readiness section)")
	cmd.Flags().Float64("print-height", 0,
		"Target print height in inches (adds a print-readiness section)")
	cmd.Flags().StringP("format", "f", "markdown",
		"Report format (json or markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file path (creates directories if needed)")
	cmd.Flags().StringP("config", "c", "",
		"Scoring config file path (default: .photo-critique.yaml in current directory)")

	return cmd
}

// runCritiqueCmd executes the critique command.
func runCritiqueCmd(cmd *cobra.Command, args []string) error {
	printWidth, err := cmd.Flags().GetFloat64("print-width")
	if err != nil {
		return err
	}
	printHeight, err := cmd.Flags().GetFloat64("print-height")
	if err != nil {
		return err
	}
	if printWidth < 0 || printHeight < 0 {
		return fmt.Errorf("print size must be positive inches (got %g x %g)", printWidth, printHeight)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	svc, err := buildCritiqueService(configPath)
	if err != nil {
		return err
	}

	opts := service.CritiqueOptions{
		PrintWidthIn:  printWidth,
		PrintHeightIn: printHeight,
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	target := args[0]
	var resp *models.CritiqueResponse
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		resp, err = svc.CritiqueURL(ctx, target, opts)
		if err != nil {
			return err
		}
	} else {
		data, err := os.ReadFile(target) //nolint:gosec // User-provided image path is intentional
		if err != nil {
			return fmt.Errorf("failed to read image %s: %w", target, err)
		}
		resp = svc.CritiqueUpload(ctx, data, filepath.Base(target), opts)
	}

	return writeReport(resp, format, outputPath)
}

// buildCritiqueService wires a critique service for one-shot CLI use.
// Remote targets are fetched over plain HTTP(S); no events are published.
func buildCritiqueService(configPath string) (service.CritiqueService, error) {
	overrides, err := config.ResolveScoringFile(configPath)
	if err != nil {
		return nil, err
	}

	imageRepository := repository.NewImageRepository(storage.NewHTTPImageFetcher(), nil)
	return service.NewCritiqueService(
		imageRepository,
		analyzer.NewExposureAnalyzer(overrides.ApplyExposure(analyzer.DefaultExposureTunables())),
		analyzer.NewSharpnessAnalyzer(overrides.ApplySharpness(analyzer.DefaultSharpnessTunables())),
		analyzer.NewColorAnalyzer(overrides.ApplyColor(analyzer.DefaultColorTunables())),
		overrides.ApplyWeights(scoring.DefaultWeights()),
		nil,
	), nil
}

// writeReport writes the critique in the requested format to stdout or a file.
func writeReport(resp *models.CritiqueResponse, format, outputPath string) error {
	var output *os.File
	if outputPath != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(outputPath)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	writer, err := factory.NewWriterFactory(true).CreateWriter(factory.Format(format), output)
	if err != nil {
		return err
	}

	_, err = writer.Write(resp)
	return err
}
