// Package synthclip renders a procedural test-pattern clip: a colored
// ball bouncing over a dark background with a progress bar along the
// bottom edge. It backs the demo CLI command and the end-to-end tests, so
// exports can be exercised without any decoded video on disk.
package synthclip

import (
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/user/gifpipe/pkg/ports"
)

// Clip is a synthetic frame source.
type Clip struct {
	width    int
	height   int
	duration float64
	fps      float64
	withMask bool
}

// New creates a synthetic clip. Duration is in seconds. When withMask is
// true the clip exposes a circular opacity mask that follows the ball.
func New(width, height int, duration, fps float64, withMask bool) *Clip {
	return &Clip{
		width:    width,
		height:   height,
		duration: duration,
		fps:      fps,
		withMask: withMask,
	}
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 { return c.duration }

// FPS returns the clip's native frame rate.
func (c *Clip) FPS() float64 { return c.fps }

// Size returns the frame dimensions.
func (c *Clip) Size() (int, int) { return c.width, c.height }

// HasMask reports whether the clip carries an opacity mask.
func (c *Clip) HasMask() bool { return c.withMask }

// IterateFrames renders floor(duration*fps)+1 frames in timestamp order.
func (c *Clip) IterateFrames(fps float64, fn func(t float64, frame *ports.Frame) error) error {
	if fps <= 0 {
		fps = c.fps
	}
	total := int(c.duration*fps) + 1
	for i := 0; i < total; i++ {
		t := float64(i) / fps
		if err := fn(t, c.render(t)); err != nil {
			return err
		}
	}
	return nil
}

// MaskFrame returns a radial opacity falloff centered on the ball.
func (c *Clip) MaskFrame(t float64) ([]float64, error) {
	if !c.withMask {
		return nil, fmt.Errorf("synthetic clip has no mask")
	}
	cx, cy, r := c.ballAt(t)
	mask := make([]float64, c.width*c.height)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			v := 1.0 - d/(2*r)
			if v < 0 {
				v = 0
			}
			mask[y*c.width+x] = v
		}
	}
	return mask, nil
}

// ballAt returns the ball center and radius at timestamp t.
func (c *Clip) ballAt(t float64) (cx, cy, r float64) {
	phase := 0.0
	if c.duration > 0 {
		phase = t / c.duration
	}
	w := float64(c.width)
	h := float64(c.height)
	r = h / 6
	cx = r + (w-2*r)*phase
	cy = h/2 + (h/2-r)*0.6*math.Sin(2*math.Pi*2*phase)
	return cx, cy, r
}

// render draws one frame and packs it as 3-channel RGB.
func (c *Clip) render(t float64) *ports.Frame {
	dc := gg.NewContext(c.width, c.height)
	dc.SetRGB(0.10, 0.10, 0.16)
	dc.Clear()

	cx, cy, r := c.ballAt(t)
	dc.SetRGB(0.96, 0.62, 0.04)
	dc.DrawCircle(cx, cy, r)
	dc.Fill()

	// Progress bar along the bottom edge.
	phase := 0.0
	if c.duration > 0 {
		phase = t / c.duration
	}
	dc.SetRGB(0.30, 0.69, 0.31)
	dc.DrawRectangle(0, float64(c.height)-3, float64(c.width)*phase, 3)
	dc.Fill()

	img := dc.Image()
	pix := make([]byte, c.width*c.height*3)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			i := (y*c.width + x) * 3
			pix[i+0] = byte(r >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(b >> 8)
		}
	}
	return &ports.Frame{Width: c.width, Height: c.height, Channels: 3, Pix: pix}
}

var _ ports.Clip = (*Clip)(nil)
