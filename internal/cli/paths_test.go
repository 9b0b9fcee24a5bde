package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowcanvas/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("cacheDir() = %q, should end with %q", dir, appName)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := &CLI{Config: config.Default()}
	c.Config.Cache.Dir = "/srv/flowcanvas-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/srv/flowcanvas-cache" {
		t.Errorf("cacheDir() = %q, want configured dir", dir)
	}
}

func TestDerivePath(t *testing.T) {
	tests := []struct {
		input, suffix, want string
	}{
		{"flow.yaml", ".graph.json", "flow.graph.json"},
		{"dir/flow.json", ".graph.json", "dir/flow.graph.json"},
		{"flow.graph.json", ".layout.json", "flow.layout.json"},
		{"flow.layout.json", ".definition.yaml", "flow.definition.yaml"},
		{"flow.graph.json", ".canvas.json", "flow.canvas.json"},
		{"noext", ".graph.json", "noext.graph.json"},
	}

	for _, tt := range tests {
		if got := derivePath(tt.input, tt.suffix); got != tt.want {
			t.Errorf("derivePath(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, input, format, want string
	}{
		{"", "flow.graph.json", "svg", "flow.svg"},
		{"", "flow.json", "png", "flow.png"},
		{"out.svg", "flow.graph.json", "svg", "out.svg"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.output, tt.input, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q) = %q, want %q", tt.output, tt.input, tt.format, got, tt.want)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"dot", "svg", "png"} {
		if err := validateFormat(f); err != nil {
			t.Errorf("validateFormat(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"", "pdf", "json"} {
		if err := validateFormat(f); err == nil {
			t.Errorf("validateFormat(%q) should fail", f)
		}
	}
}
