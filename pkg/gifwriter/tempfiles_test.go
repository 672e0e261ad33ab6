package gifwriter

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/gifpipe/pkg/mocks"
	"github.com/user/gifpipe/pkg/ports"
)

func tempFrameFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*_GIFTEMP*.png"))
	if err != nil {
		t.Fatal(err)
	}
	return matches
}

func TestWriteGIFWithTempFilesCleansUpOnSuccess(t *testing.T) {
	tool := requireTool(t, "true")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.gif")

	clip := &mocks.Clip{DurationVal: 0.5, FPSVal: 10, Width: 4, Height: 4}
	var calls int
	progress := func(done, total int) {
		calls++
		if total != 6 {
			t.Errorf("total = %d, want 6", total)
		}
	}

	opts := Options{Program: ProgramImageMagick, MagickPath: tool, Fuzz: 1}
	if err := WriteGIFWithTempFiles(clip, out, opts, progress, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 6 {
		t.Errorf("progress called %d times, want 6", calls)
	}
	if left := tempFrameFiles(t, dir); len(left) != 0 {
		t.Errorf("temp frames left behind: %v", left)
	}
}

func TestWriteGIFWithTempFilesCleansUpOnFailure(t *testing.T) {
	tool := requireTool(t, "false")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.gif")

	clip := &mocks.Clip{DurationVal: 0.5, FPSVal: 10, Width: 4, Height: 4}
	opts := Options{Program: ProgramImageMagick, MagickPath: tool}

	err := WriteGIFWithTempFiles(clip, out, opts, nil, nil)
	var streamErr *StreamError
	if !errors.As(err, &streamErr) {
		t.Fatalf("expected StreamError from failed optimizer, got %v", err)
	}
	if left := tempFrameFiles(t, dir); len(left) != 0 {
		t.Errorf("temp frames left behind after failure: %v", left)
	}
}

func TestWriteGIFWithTempFilesFrameContents(t *testing.T) {
	// Capture the frames before the optimizer removes its input by making
	// the optimizer a no-op and inspecting mid-flight via the frame source.
	tool := requireTool(t, "true")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.gif")

	var seen []string
	clip := &mocks.Clip{
		DurationVal: 0.1,
		FPSVal:      10,
		Width:       3,
		Height:      2,
		AfterFrame: func(index int) {
			seen = tempFrameFiles(t, dir)
		},
	}
	opts := Options{Program: ProgramImageMagick, MagickPath: tool}
	if err := WriteGIFWithTempFiles(clip, out, opts, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// After the last frame callback, frames 1..2 existed on disk.
	if len(seen) != 2 {
		t.Fatalf("expected 2 frame files mid-flight, got %d", len(seen))
	}
	f, err := os.Open(seen[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("frame file is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("frame size = %dx%d, want 3x2", b.Dx(), b.Dy())
	}
}

func TestWriteGIFWithTempFilesUnknownProgram(t *testing.T) {
	clip := &mocks.Clip{DurationVal: 1, FPSVal: 10, Width: 4, Height: 4}
	err := WriteGIFWithTempFiles(clip, "out.gif", Options{Program: "gifsicle"}, nil, nil)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestFrameToNRGBAOpaque(t *testing.T) {
	frame := &ports.Frame{Width: 1, Height: 1, Channels: 3, Pix: []byte{1, 2, 3}}
	img, err := frameToNRGBA(frame, nil)
	if err != nil {
		t.Fatal(err)
	}
	if img.Pix[3] != 0xff {
		t.Errorf("alpha = %d, want 255", img.Pix[3])
	}
}
