// Package main provides the entry point for the pcp CLI.
//
// pcp critiques photos for exposure, sharpness, and color balance, and
// computes print-readiness guidance for local files and remote URLs.
//
// Usage:
//
//	pcp critique <image>
//	pcp print <width_px> <height_px>
//
// See --help for all available options.
package main

// main is the entry point for pcp.
func main() {
	Execute()
}
