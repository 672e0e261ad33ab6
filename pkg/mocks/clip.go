// Package mocks provides hand-written test doubles for the ports.
package mocks

import (
	"github.com/user/gifpipe/pkg/ports"
)

// Clip is a scripted implementation of ports.Clip.
type Clip struct {
	DurationVal float64
	FPSVal      float64
	Width       int
	Height      int
	Mask        bool

	// FrameFunc produces the frame for a timestamp. When nil, a solid
	// 3-channel frame is produced whose first byte is the frame index.
	FrameFunc func(i int, t float64) *ports.Frame

	// MaskFunc produces the mask for a timestamp. When nil, a constant
	// 0.5 mask is produced.
	MaskFunc func(t float64) []float64

	// FailAt makes IterateFrames return Err before yielding the
	// FailAt-th frame (1-based). 0 means never fail.
	FailAt int
	Err    error

	// AfterFrame, when non-nil, runs after each frame is consumed.
	AfterFrame func(index int)

	// Recorded calls for verification
	IteratedFrames int
	MaskCalls      []float64
}

func (m *Clip) Duration() float64 { return m.DurationVal }
func (m *Clip) FPS() float64      { return m.FPSVal }
func (m *Clip) Size() (int, int)  { return m.Width, m.Height }
func (m *Clip) HasMask() bool     { return m.Mask }

func (m *Clip) IterateFrames(fps float64, fn func(t float64, frame *ports.Frame) error) error {
	if fps <= 0 {
		fps = m.FPSVal
	}
	total := int(m.DurationVal*fps) + 1
	for i := 0; i < total; i++ {
		if m.FailAt > 0 && i+1 == m.FailAt {
			return m.Err
		}
		t := float64(i) / fps
		frame := m.frame(i, t)
		m.IteratedFrames++
		if err := fn(t, frame); err != nil {
			return err
		}
		if m.AfterFrame != nil {
			m.AfterFrame(i)
		}
	}
	return nil
}

func (m *Clip) MaskFrame(t float64) ([]float64, error) {
	m.MaskCalls = append(m.MaskCalls, t)
	if m.MaskFunc != nil {
		return m.MaskFunc(t), nil
	}
	mask := make([]float64, m.Width*m.Height)
	for i := range mask {
		mask[i] = 0.5
	}
	return mask, nil
}

func (m *Clip) frame(i int, t float64) *ports.Frame {
	if m.FrameFunc != nil {
		return m.FrameFunc(i, t)
	}
	pix := make([]byte, m.Width*m.Height*3)
	for p := range pix {
		pix[p] = byte(i)
	}
	return &ports.Frame{Width: m.Width, Height: m.Height, Channels: 3, Pix: pix}
}

var _ ports.Clip = (*Clip)(nil)
