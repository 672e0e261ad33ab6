package ports

// AppenderOptions configures an in-process GIF encoder.
type AppenderOptions struct {
	Path        string  // destination file
	FPS         float64 // frame rate; per-frame delay is derived as round(100/fps)
	PaletteSize int     // colors per frame palette, 2..256
	LoopCount   int     // 0 = loop forever
}

// FrameAppender abstracts a single-call GIF encoder backend: frames are
// appended one at a time, in order, and the file is finalized by Close.
// This is the non-piped fallback for environments without external encoders.
type FrameAppender interface {
	// Begin prepares the encoder for a new animation.
	Begin(opts AppenderOptions) error

	// Append adds one frame to the animation.
	Append(frame *Frame) error

	// Close finalizes the animation and writes the destination file.
	Close() error
}
