package gifwriter

import (
	"fmt"
	"io"
	"math"

	"github.com/user/gifpipe/pkg/ports"
)

// compositeAlpha merges a 3-channel frame and an opacity mask (0..1 per
// pixel) into an interleaved RGBA buffer. The mask is scaled to 0..255
// with rounding and becomes the fourth channel.
func compositeAlpha(frame *ports.Frame, mask []float64) ([]byte, error) {
	if frame.Channels != 3 {
		return nil, fmt.Errorf("compositing expects a 3-channel frame, got %d channels", frame.Channels)
	}
	n := frame.Width * frame.Height
	if len(mask) != n {
		return nil, fmt.Errorf("mask has %d values, frame is %dx%d", len(mask), frame.Width, frame.Height)
	}
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		out[i*4+0] = frame.Pix[i*3+0]
		out[i*4+1] = frame.Pix[i*3+1]
		out[i*4+2] = frame.Pix[i*3+2]
		a := math.Round(mask[i] * 255)
		if a < 0 {
			a = 0
		} else if a > 255 {
			a = 255
		}
		out[i*4+3] = byte(a)
	}
	return out, nil
}

// streamFrames pulls frames from the clip in timestamp order, composites
// the mask when requested, and writes the raw bytes to the pipeline's
// entry sink. After each successful write the progress callback is
// invoked with (framesWritten, total); calls are never reordered, batched
// or skipped. A write failure aborts immediately; no frame is retried.
func streamFrames(clip ports.Clip, sink io.Writer, fps float64, withAlpha bool, total int, progress ports.Progress) error {
	written := 0
	return clip.IterateFrames(fps, func(t float64, frame *ports.Frame) error {
		buf := frame.Pix
		if withAlpha {
			mask, err := clip.MaskFrame(t)
			if err != nil {
				return fmt.Errorf("mask frame at %.3fs: %w", t, err)
			}
			buf, err = compositeAlpha(frame, mask)
			if err != nil {
				return err
			}
		}
		if _, err := sink.Write(buf); err != nil {
			return err
		}
		written++
		if progress != nil {
			progress(written, total)
		}
		return nil
	})
}
