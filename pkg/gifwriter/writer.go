// Package gifwriter converts a lazy sequence of video frames into an
// animated GIF by streaming raw pixel data through a chain of external
// encoder processes (ffmpeg, ImageMagick) connected by OS pipes. The
// whole animation never resides in memory at once.
package gifwriter

import (
	"fmt"

	"github.com/user/gifpipe/pkg/ports"
)

// Options controls a GIF export.
type Options struct {
	Program  Program  // encoder chain; default ProgramImageMagick
	Optimize Optimize // ImageMagick layer optimization mode
	FPS      float64  // 0 = use the clip's native rate
	Loop     int      // 0 = loop forever
	Dispose  Disposal // 0 = DisposeBackground
	Fuzz     int      // ImageMagick color fuzz, percent
	Colors   int      // palette cap, 0 = none
	WithMask bool     // composite the clip mask as an alpha channel

	// Binary path overrides; discovery falls back to env and PATH.
	FFmpegPath string
	MagickPath string
}

// DefaultOptions mirrors the historical defaults of the format: the
// ImageMagick chain with transparency optimization, 1% fuzz, infinite
// loop, background disposal, mask compositing on.
func DefaultOptions() Options {
	return Options{
		Program:  ProgramImageMagick,
		Optimize: OptimizeTransparency,
		Fuzz:     1,
		Dispose:  DisposeBackground,
		WithMask: true,
	}
}

// WriteGIF exports the clip to filename through the piped encoder chain.
// The destination is overwritten unconditionally. The progress callback,
// when non-nil, is invoked once per frame in order with (done, total),
// total = floor(duration*fps)+1. All failures are fatal to this call; the
// pipeline is always torn down, success or failure, before WriteGIF
// returns. Partial output files are not removed.
func WriteGIF(clip ports.Clip, filename string, opts Options, progress ports.Progress, log ports.Logger) error {
	if log == nil {
		log = nopLogger{}
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = clip.FPS()
	}
	if fps <= 0 {
		return &ConfigError{Reason: "frame rate must be positive"}
	}
	width, height := clip.Size()
	withAlpha := opts.WithMask && clip.HasMask()
	// WithMask defaults to on, so a maskless clip is the common case and
	// only worth a debug note.
	if opts.WithMask && !clip.HasMask() {
		log.Debug("Clip has no mask, exporting opaque frames")
	}

	in := PlanInput{
		Filename:  filename,
		Width:     width,
		Height:    height,
		FPS:       fps,
		WithAlpha: withAlpha,
		Program:   opts.Program,
		Optimize:  opts.Optimize,
		Loop:      opts.Loop,
		Dispose:   opts.Dispose,
		Fuzz:      opts.Fuzz,
		Colors:    opts.Colors,
	}

	// Every chain starts with ffmpeg consuming raw frames; the
	// ImageMagick chain additionally needs the convert binary.
	switch opts.Program {
	case ProgramFFmpeg, ProgramImageMagick:
		path, err := FindFFmpeg(opts.FFmpegPath)
		if err != nil {
			return err
		}
		in.FFmpegPath = path
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown program %q", string(opts.Program))}
	}
	if opts.Program == ProgramImageMagick {
		path, err := FindImageMagick(opts.MagickPath)
		if err != nil {
			return err
		}
		in.MagickPath = path
	}

	plan, err := BuildPlan(in)
	if err != nil {
		return err
	}
	total := FrameCount(clip.Duration(), fps)

	log.Info("Building file %s", filename)
	pipeline, err := StartPipeline(plan, log)
	if err != nil {
		return err
	}
	defer pipeline.Finish()

	log.Debug("Generating GIF frames...")
	if err := streamFrames(clip, pipeline.Sink(), fps, withAlpha, total, progress); err != nil {
		return &StreamError{Filename: filename, Err: err, Hint: magickHint(opts.Program)}
	}

	if opts.Program == ProgramImageMagick {
		log.Debug("Optimizing the GIF with ImageMagick...")
	}
	pipeline.Finish()
	log.Info("File %s is ready", filename)
	return nil
}

// WriteGIFWithAppender exports the clip through an in-process single-call
// encoder backend instead of external processes: each frame is appended
// one at a time, in order. Progress semantics match WriteGIF. A nil
// appender fails before any work begins.
func WriteGIFWithAppender(clip ports.Clip, filename string, appender ports.FrameAppender, opts Options, progress ports.Progress, log ports.Logger) error {
	if appender == nil {
		return ErrAppenderUnavailable
	}
	if log == nil {
		log = nopLogger{}
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = clip.FPS()
	}
	if fps <= 0 {
		return &ConfigError{Reason: "frame rate must be positive"}
	}
	colors := opts.Colors
	if colors <= 0 {
		colors = 256
	}
	total := FrameCount(clip.Duration(), fps)

	log.Info("Building file %s", filename)
	if err := appender.Begin(ports.AppenderOptions{
		Path:        filename,
		FPS:         fps,
		PaletteSize: colors,
		LoopCount:   opts.Loop,
	}); err != nil {
		return err
	}

	written := 0
	err := clip.IterateFrames(fps, func(t float64, frame *ports.Frame) error {
		if err := appender.Append(frame); err != nil {
			return err
		}
		written++
		if progress != nil {
			progress(written, total)
		}
		return nil
	})
	if err != nil {
		appender.Close()
		return &StreamError{Filename: filename, Err: err}
	}
	if err := appender.Close(); err != nil {
		return &StreamError{Filename: filename, Err: err}
	}
	log.Info("File %s is ready", filename)
	return nil
}

func magickHint(p Program) string {
	if p == ProgramImageMagick {
		return "this can be due to ImageMagick not being installed, or its binary path being misconfigured"
	}
	return ""
}

// nopLogger lets the core run without a caller-provided logger.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Info(string, ...interface{})         {}
func (nopLogger) Warn(string, ...interface{})         {}
func (nopLogger) Error(string, ...interface{})        {}
func (l nopLogger) WithComponent(string) ports.Logger { return l }

var _ ports.Logger = nopLogger{}
