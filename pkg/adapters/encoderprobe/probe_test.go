package encoderprobe

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func fakeEncoder(t *testing.T, banner string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixture")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	script := "#!/bin/sh\necho \"" + banner + "\"\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProbeReadsVersionBanner(t *testing.T) {
	path := fakeEncoder(t, "ffmpeg version 6.1.1 Copyright (c) 2000-2023")
	r := probe("ffmpeg", path, findStub(path))
	if !r.Available() {
		t.Fatalf("probe failed: %v", r.Err)
	}
	if !strings.HasPrefix(r.Version, "ffmpeg version 6.1.1") {
		t.Errorf("Version = %q", r.Version)
	}
	if r.Path != path {
		t.Errorf("Path = %q, want %q", r.Path, path)
	}
}

func TestProbeMissingBinary(t *testing.T) {
	r := probe("ffmpeg", "/nonexistent/ffmpeg", findStub(""))
	if r.Available() {
		t.Fatal("expected failure for missing binary")
	}
	if r.Path != "" {
		t.Errorf("Path = %q, want empty", r.Path)
	}
}

func TestProbeAllCoversBothChains(t *testing.T) {
	reports := ProbeAll("/nonexistent/ffmpeg", "/nonexistent/magick")
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].Name != "ffmpeg" || reports[1].Name != "imagemagick" {
		t.Errorf("report names = %s, %s", reports[0].Name, reports[1].Name)
	}
	for _, r := range reports {
		if r.Available() {
			t.Errorf("%s should be unavailable with a bad override", r.Name)
		}
	}
}

// findStub returns a discovery function resolving to path, or failing
// when path is empty.
func findStub(path string) func(string) (string, error) {
	return func(override string) (string, error) {
		if path == "" {
			return "", os.ErrNotExist
		}
		return path, nil
	}
}
