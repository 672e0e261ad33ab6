package gifwriter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindFFmpegOverride(t *testing.T) {
	fake := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	path, err := FindFFmpeg(fake)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != fake {
		t.Errorf("path = %s, want %s", path, fake)
	}
}

func TestFindFFmpegOverrideMissing(t *testing.T) {
	_, err := FindFFmpeg("/nonexistent/ffmpeg")
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Fatalf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestFindFFmpegEnv(t *testing.T) {
	fake := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FFMPEG_BINARY", fake)
	path, err := FindFFmpeg("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != fake {
		t.Errorf("path = %s, want %s", path, fake)
	}
}

func TestFindFFmpegEnvMissing(t *testing.T) {
	t.Setenv("FFMPEG_BINARY", "/nonexistent/ffmpeg")
	_, err := FindFFmpeg("")
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Fatalf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestFindFFmpegOverrideBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	fromEnv := filepath.Join(dir, "env-ffmpeg")
	fromOverride := filepath.Join(dir, "override-ffmpeg")
	for _, p := range []string{fromEnv, fromOverride} {
		if err := os.WriteFile(p, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("FFMPEG_BINARY", fromEnv)
	path, err := FindFFmpeg(fromOverride)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != fromOverride {
		t.Errorf("override should win over env, got %s", path)
	}
}

func TestFindImageMagickOverrideMissing(t *testing.T) {
	_, err := FindImageMagick("/nonexistent/magick")
	if !errors.Is(err, ErrImageMagickNotFound) {
		t.Fatalf("expected ErrImageMagickNotFound, got %v", err)
	}
}
