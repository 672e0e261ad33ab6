// Package dirclip exposes a directory of numbered image files as a frame
// source. Frames are decoded lazily, one at a time, in filename order;
// PNG, JPEG and BMP inputs are supported. An alpha channel in the source
// images becomes the clip's opacity mask.
package dirclip

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/user/gifpipe/pkg/ports"
)

// Clip reads frames from a directory. Not safe for concurrent use; an
// export call iterates a clip from a single goroutine.
type Clip struct {
	files  []string
	fps    float64
	width  int
	height int
	alpha  bool

	// Single-entry decode cache: MaskFrame typically follows
	// IterateFrames for the same timestamp.
	lastIdx int
	lastImg *image.NRGBA
}

// New scans dir for image files and probes the first one for dimensions
// and alpha. fps is the rate the file sequence was captured at.
func New(dir string, fps float64) (*Clip, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %g", fps)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frame directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".bmp":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no image frames found in %s", dir)
	}
	sort.Strings(files)

	c := &Clip{files: files, fps: fps, lastIdx: -1}
	first, err := c.loadIndex(0)
	if err != nil {
		return nil, err
	}
	c.width = first.Rect.Dx()
	c.height = first.Rect.Dy()
	c.alpha = !isOpaque(first)
	return c, nil
}

// Duration spans the first to the last frame at the capture rate.
func (c *Clip) Duration() float64 { return float64(len(c.files)-1) / c.fps }

// FPS returns the capture rate.
func (c *Clip) FPS() float64 { return c.fps }

// Size returns the dimensions of the first frame. All frames are assumed
// to share them.
func (c *Clip) Size() (int, int) { return c.width, c.height }

// HasMask reports whether the first frame carries transparency.
func (c *Clip) HasMask() bool { return c.alpha }

// IterateFrames decodes and yields floor(duration*fps)+1 frames in
// timestamp order, resampling the file sequence when fps differs from
// the capture rate.
func (c *Clip) IterateFrames(fps float64, fn func(t float64, frame *ports.Frame) error) error {
	if fps <= 0 {
		fps = c.fps
	}
	total := int(c.Duration()*fps) + 1
	for i := 0; i < total; i++ {
		t := float64(i) / fps
		img, err := c.loadAt(t)
		if err != nil {
			return err
		}
		if err := fn(t, rgbFrame(img)); err != nil {
			return err
		}
	}
	return nil
}

// MaskFrame extracts the alpha channel at timestamp t, scaled to 0..1.
func (c *Clip) MaskFrame(t float64) ([]float64, error) {
	if !c.alpha {
		return nil, fmt.Errorf("frame sequence has no alpha channel")
	}
	img, err := c.loadAt(t)
	if err != nil {
		return nil, err
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	mask := make([]float64, w*h)
	for i := range mask {
		mask[i] = float64(img.Pix[i*4+3]) / 255
	}
	return mask, nil
}

func (c *Clip) loadAt(t float64) (*image.NRGBA, error) {
	idx := int(math.Round(t * c.fps))
	if idx >= len(c.files) {
		idx = len(c.files) - 1
	}
	return c.loadIndex(idx)
}

func (c *Clip) loadIndex(idx int) (*image.NRGBA, error) {
	if idx == c.lastIdx && c.lastImg != nil {
		return c.lastImg, nil
	}
	f, err := os.Open(c.files[idx])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.files[idx], err)
	}
	img := toNRGBA(src)
	c.lastIdx = idx
	c.lastImg = img
	return img, nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok && img.Rect.Min == (image.Point{}) {
		return img
	}
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			img.Set(x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return img
}

func isOpaque(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0xff {
			return false
		}
	}
	return true
}

func rgbFrame(img *image.NRGBA) *ports.Frame {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := make([]byte, w*h*3)
	for i := 0; i < w*h; i++ {
		pix[i*3+0] = img.Pix[i*4+0]
		pix[i*3+1] = img.Pix[i*4+1]
		pix[i*3+2] = img.Pix[i*4+2]
	}
	return &ports.Frame{Width: w, Height: h, Channels: 3, Pix: pix}
}

var _ ports.Clip = (*Clip)(nil)
