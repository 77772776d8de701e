package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// healthTimeout bounds the health probe round trip.
const healthTimeout = 10 * time.Second

// NewHealthCmd creates the health command.
func NewHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check a running critique API server",
		Long: `Health pings the /health endpoint of a running critique API server and
reports whether it is serving.

Examples:
  # Check the default local server
  pcp health

  # Check a remote deployment
  pcp health --addr https://critique.example.com`,
		RunE: runHealthCmd,
	}

	cmd.Flags().StringP("addr", "a", "http://localhost:8080",
		"Base URL of the API server")

	return cmd
}

// runHealthCmd executes the health command.
func runHealthCmd(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(addr, "/")+"/health", nil)
	if err != nil {
		return fmt.Errorf("invalid server address %s: %w", addr, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %s returned %s", addr, resp.Status)
	}

	var health struct {
		OK      bool   `json:"ok"`
		Service string `json:"service"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("health check failed: invalid response: %w", err)
	}
	if !health.OK {
		return fmt.Errorf("server at %s reports not ok", addr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is healthy (service %s, version %s)\n",
		addr, health.Service, health.Version)
	return nil
}
