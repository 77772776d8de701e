package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"go-photo-critique/internal/printcalc"
)

// NewPrintCmd creates the print command.
func NewPrintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print <width_px> <height_px>",
		Short: "Compute print-readiness for pixel dimensions",
		Long: `Print computes how large an image with the given pixel dimensions can be
printed at the common quality presets (300, 240, 200, 150 PPI).

When a target print size is provided, the effective PPI of that print and
its quality tier are included.

Examples:
  # Maximum print sizes for a 24MP image
  pcp print 6000 4000

  # Effective PPI and quality tier for a 10x8 inch print
  pcp print 3000 2000 --print-width 10 --print-height 8`,
		Args: cobra.ExactArgs(2),
		RunE: runPrintCmd,
	}

	cmd.Flags().Float64("print-width", 0, "Target print width in inches")
	cmd.Flags().Float64("print-height", 0, "Target print height in inches")

	return cmd
}

// runPrintCmd executes the print command.
func runPrintCmd(cmd *cobra.Command, args []string) error {
	widthPx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid width_px %q: %w", args[0], err)
	}
	heightPx, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid height_px %q: %w", args[1], err)
	}

	printWidth, err := cmd.Flags().GetFloat64("print-width")
	if err != nil {
		return err
	}
	printHeight, err := cmd.Flags().GetFloat64("print-height")
	if err != nil {
		return err
	}

	rep, err := printcalc.Recommendations(widthPx, heightPx, printWidth, printHeight)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(rep)
}
