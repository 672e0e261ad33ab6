// Package nativegif encodes animated GIFs in-process, without external
// encoder binaries. Each frame is quantized to its own palette with a
// median-cut quantizer and the animation is written with the standard
// library GIF encoder. This is the fallback backend for hosts where
// neither ffmpeg nor ImageMagick is installed; the piped pipeline remains
// the primary path.
package nativegif

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"math"
	"os"

	"github.com/soniakeys/quant/median"
	"github.com/user/gifpipe/pkg/ports"
)

// ErrNotBegun is returned when Append or Close is called before Begin.
var ErrNotBegun = errors.New("gif appender not started")

// Appender implements ports.FrameAppender. Frames are collected as
// paletted images and the file is written on Close; unlike the piped
// pipeline this keeps the quantized animation in memory, which is the
// accepted cost of the no-dependency path.
type Appender struct {
	path    string
	delay   int // 1/100 s per frame
	palette int
	loop    int
	frames  []*image.Paletted
	delays  []int
	begun   bool
}

// New creates an idle appender.
func New() *Appender {
	return &Appender{}
}

// Begin prepares the appender for a new animation.
func (a *Appender) Begin(opts ports.AppenderOptions) error {
	if opts.FPS <= 0 {
		return fmt.Errorf("frame rate must be positive, got %g", opts.FPS)
	}
	palette := opts.PaletteSize
	if palette <= 0 {
		palette = 256
	}
	if palette < 2 || palette > 256 {
		return fmt.Errorf("palette size must be 2..256, got %d", palette)
	}
	a.path = opts.Path
	a.delay = int(math.Round(100 / opts.FPS))
	a.palette = palette
	a.loop = opts.LoopCount
	a.frames = nil
	a.delays = nil
	a.begun = true
	return nil
}

// Append quantizes one frame and adds it to the animation.
func (a *Appender) Append(frame *ports.Frame) error {
	if !a.begun {
		return ErrNotBegun
	}
	img, err := frameImage(frame)
	if err != nil {
		return err
	}
	paletted := median.Quantizer(a.palette).Paletted(img)
	a.frames = append(a.frames, paletted)
	a.delays = append(a.delays, a.delay)
	return nil
}

// Close writes the destination file and resets the appender.
func (a *Appender) Close() error {
	if !a.begun {
		return ErrNotBegun
	}
	a.begun = false
	if len(a.frames) == 0 {
		return errors.New("no frames appended")
	}
	f, err := os.Create(a.path)
	if err != nil {
		return err
	}
	g := &gif.GIF{
		Image:     a.frames,
		Delay:     a.delays,
		LoopCount: a.loop,
	}
	if err := gif.EncodeAll(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func frameImage(frame *ports.Frame) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	n := frame.Width * frame.Height
	switch frame.Channels {
	case 3:
		for i := 0; i < n; i++ {
			img.Pix[i*4+0] = frame.Pix[i*3+0]
			img.Pix[i*4+1] = frame.Pix[i*3+1]
			img.Pix[i*4+2] = frame.Pix[i*3+2]
			img.Pix[i*4+3] = 0xff
		}
	case 4:
		copy(img.Pix, frame.Pix)
	default:
		return nil, fmt.Errorf("unsupported channel count %d", frame.Channels)
	}
	return img, nil
}

var _ ports.FrameAppender = (*Appender)(nil)
