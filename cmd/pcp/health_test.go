package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthCmd_Healthy(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"service":"photo-critique-api","version":"1.0.0"}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"health", "--addr", server.URL})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "is healthy") {
		t.Errorf("expected healthy output, got %q", output)
	}
	if !strings.Contains(output, "photo-critique-api") {
		t.Errorf("expected service name in output, got %q", output)
	}
}

func TestHealthCmd_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"health", "--addr", server.URL})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for failing server")
	}
	if !strings.Contains(err.Error(), "health check failed") {
		t.Errorf("expected health check error, got %v", err)
	}
}

func TestHealthCmd_NotOK(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":false,"service":"photo-critique-api"}`))
	}))
	defer server.Close()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"health", "--addr", server.URL})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for not-ok server")
	}
	if !strings.Contains(err.Error(), "reports not ok") {
		t.Errorf("expected not-ok error, got %v", err)
	}
}

func TestHealthCmd_Unreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	addr := server.URL
	server.Close()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"health", "--addr", addr})

	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
	if !strings.Contains(err.Error(), "health check failed") {
		t.Errorf("expected health check error, got %v", err)
	}
}
