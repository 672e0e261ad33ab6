package nativegif

import (
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/gifpipe/pkg/ports"
)

func solidFrame(w, h int, r, g, b byte) *ports.Frame {
	pix := make([]byte, w*h*3)
	for i := 0; i < w*h; i++ {
		pix[i*3+0] = r
		pix[i*3+1] = g
		pix[i*3+2] = b
	}
	return &ports.Frame{Width: w, Height: h, Channels: 3, Pix: pix}
}

func TestAppenderRoundTrip(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	a := New()
	err := a.Begin(ports.AppenderOptions{
		Path:        out,
		FPS:         10,
		PaletteSize: 16,
		LoopCount:   3,
	})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := a.Append(solidFrame(8, 6, byte(i*80), 0, 255)); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 3 {
		t.Errorf("decoded %d frames, want 3", len(g.Image))
	}
	if g.LoopCount != 3 {
		t.Errorf("LoopCount = %d, want 3", g.LoopCount)
	}
	for i, d := range g.Delay {
		if d != 10 {
			t.Errorf("frame %d delay = %d, want 10", i, d)
		}
	}
	if b := g.Image[0].Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("frame size = %dx%d, want 8x6", b.Dx(), b.Dy())
	}
}

func TestAppenderDelayRounding(t *testing.T) {
	tests := []struct {
		fps   float64
		delay int
	}{
		{10, 10},
		{30, 3},
		{24, 4},
		{100, 1},
	}
	for _, tt := range tests {
		a := New()
		if err := a.Begin(ports.AppenderOptions{Path: "x.gif", FPS: tt.fps}); err != nil {
			t.Fatalf("fps %g: %v", tt.fps, err)
		}
		if a.delay != tt.delay {
			t.Errorf("fps %g: delay = %d, want %d", tt.fps, a.delay, tt.delay)
		}
	}
}

func TestAppendBeforeBegin(t *testing.T) {
	a := New()
	if err := a.Append(solidFrame(2, 2, 0, 0, 0)); !errors.Is(err, ErrNotBegun) {
		t.Errorf("Append before Begin = %v, want ErrNotBegun", err)
	}
	if err := a.Close(); !errors.Is(err, ErrNotBegun) {
		t.Errorf("Close before Begin = %v, want ErrNotBegun", err)
	}
}

func TestBeginRejectsBadOptions(t *testing.T) {
	a := New()
	if err := a.Begin(ports.AppenderOptions{Path: "x.gif", FPS: 0}); err == nil {
		t.Error("expected error for zero frame rate")
	}
	if err := a.Begin(ports.AppenderOptions{Path: "x.gif", FPS: 10, PaletteSize: 1}); err == nil {
		t.Error("expected error for palette size below 2")
	}
	if err := a.Begin(ports.AppenderOptions{Path: "x.gif", FPS: 10, PaletteSize: 512}); err == nil {
		t.Error("expected error for palette size above 256")
	}
}

func TestCloseWithoutFrames(t *testing.T) {
	a := New()
	if err := a.Begin(ports.AppenderOptions{Path: "x.gif", FPS: 10}); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err == nil {
		t.Error("expected error when closing with no frames")
	}
}

func TestAppenderRGBAFrames(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	a := New()
	if err := a.Begin(ports.AppenderOptions{Path: out, FPS: 10}); err != nil {
		t.Fatal(err)
	}
	pix := make([]byte, 4*4*4)
	for i := range pix {
		pix[i] = 0x80
	}
	frame := &ports.Frame{Width: 4, Height: 4, Channels: 4, Pix: pix}
	if err := a.Append(frame); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
