package ports

// Frame is a single uncompressed video frame. Pix holds 8-bit samples in
// row-major order with no padding: Width*Height*Channels bytes. Channels is
// 3 for RGB and 4 for RGBA. Frames are transient: a frame source may reuse
// the backing buffer after the consumer returns.
type Frame struct {
	Width    int
	Height   int
	Channels int
	Pix      []byte
}

// Clip abstracts a frame source: something that can produce a frame for any
// timestamp within its duration, such as a decoded video or a procedural
// animation.
type Clip interface {
	// Duration returns the clip length in seconds.
	Duration() float64

	// FPS returns the clip's native frame rate.
	FPS() float64

	// Size returns the frame dimensions in pixels.
	Size() (width, height int)

	// HasMask reports whether the clip carries a per-pixel opacity mask.
	HasMask() bool

	// IterateFrames calls fn once per frame at the given rate, in strictly
	// increasing timestamp order starting at t=0. Iteration stops at the
	// first error returned by fn, which is passed through unchanged.
	IterateFrames(fps float64, fn func(t float64, frame *Frame) error) error

	// MaskFrame returns the opacity mask at timestamp t as Width*Height
	// values in the range 0..1, or an error when the clip has no mask.
	MaskFrame(t float64) ([]float64, error)
}
