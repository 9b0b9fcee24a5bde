package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	fcerrors "github.com/matzehuels/flowcanvas/pkg/errors"
)

func sandbox(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))
	return root
}

func TestRunVerbose(t *testing.T) {
	dir := sandbox(t)
	input := filepath.Join(dir, "flow.yaml")
	if err := os.WriteFile(input, []byte("steps:\n  - exec: make\n  - approval: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		args      []string
		wantDebug bool
	}{
		{"default", []string{"graph", input, "--no-cache"}, false},
		{"verbose", []string{"graph", input, "--no-cache", "-v"}, true},
		{"verbose long", []string{"--verbose", "graph", input, "--no-cache"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			if err := run(context.Background(), tt.args, &logs); err != nil {
				t.Fatalf("run(%v) = %v", tt.args, err)
			}
			gotDebug := strings.Contains(logs.String(), "DEBU")
			if gotDebug != tt.wantDebug {
				t.Errorf("debug output = %v, want %v\n%s", gotDebug, tt.wantDebug, logs.String())
			}
			if !strings.Contains(logs.String(), "Converted pipeline") {
				t.Errorf("missing progress line:\n%s", logs.String())
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		code fcerrors.Code
		want int
	}{
		{fcerrors.ErrCodeFileNotFound, 3},
		{fcerrors.ErrCodeInternal, 1},
		{fcerrors.ErrCodeInvalidDefinition, 2},
		{fcerrors.ErrCodeInvalidDirection, 2},
		{fcerrors.ErrCodeInvalidConfig, 2},
	}
	for _, tt := range tests {
		if got := exitCode(tt.code); got != tt.want {
			t.Errorf("exitCode(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}
