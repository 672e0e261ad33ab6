package gifwriter

import (
	"errors"
	"fmt"
)

// Sentinel errors for binary discovery and backend availability.
var (
	// ErrFFmpegNotFound means no usable ffmpeg binary was located.
	ErrFFmpegNotFound = errors.New("ffmpeg binary not found")
	// ErrImageMagickNotFound means no usable ImageMagick binary was located.
	ErrImageMagickNotFound = errors.New("imagemagick binary not found")
	// ErrAppenderUnavailable means no in-process encoder backend was
	// configured for the single-call export path.
	ErrAppenderUnavailable = errors.New("no frame appender configured")
)

// ConfigError reports an invalid option combination. It is returned before
// any external process is launched.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid gif options: " + e.Reason
}

// LaunchError reports that an external encoder process could not be
// started. Any stages launched earlier in the same pipeline have already
// been terminated and reaped when this error is returned.
type LaunchError struct {
	Stage int    // 1-based position in the pipeline
	Path  string // binary that failed to start
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("starting %s (stage %d): %v; the encoder binary may be missing or its path misconfigured",
		e.Path, e.Stage, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// StreamError reports a failed frame write. The usual cause is a
// downstream stage that already exited, which surfaces here as a broken
// pipe.
type StreamError struct {
	Filename string
	Err      error
	Hint     string
}

func (e *StreamError) Error() string {
	msg := fmt.Sprintf("building file %s failed: %v", e.Filename, e.Err)
	if e.Hint != "" {
		msg += "; " + e.Hint
	}
	return msg
}

func (e *StreamError) Unwrap() error { return e.Err }
