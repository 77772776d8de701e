// Package main provides the entry point for the pcp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-photo-critique/internal/logger"
)

// NewRootCmd creates the root command for pcp.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pcp",
		Short: "Photo critique and print-readiness scoring",
		Long: `pcp critiques photos for exposure, sharpness, and color balance,
aggregates the three metrics into a graded overall score, and estimates
how large an image can be printed at common quality levels.

Reports are written to stdout; logs go to stderr.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Reports own stdout; keep log lines off it
			logger.Logger.SetOutput(os.Stderr)
			if level, err := cmd.Flags().GetString("log-level"); err == nil {
				logger.SetLevel(level)
			}
		},
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	// Add subcommands
	cmd.AddCommand(NewCritiqueCmd())
	cmd.AddCommand(NewPrintCmd())
	cmd.AddCommand(NewHealthCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
