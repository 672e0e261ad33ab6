package gifwriter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Program selects the external encoder chain.
type Program string

const (
	// ProgramFFmpeg encodes the GIF with a single ffmpeg process.
	ProgramFFmpeg Program = "ffmpeg"
	// ProgramImageMagick chains ffmpeg (raw frames to a BMP stream) into
	// one or two ImageMagick processes.
	ProgramImageMagick Program = "imagemagick"
)

// Optimize is an ImageMagick layer optimization mode.
type Optimize string

const (
	OptimizeNone         Optimize = ""
	OptimizePlus         Optimize = "optimizeplus"
	OptimizeTransparency Optimize = "OptimizeTransparency"
)

// Disposal is the GIF frame disposal code passed to ImageMagick.
type Disposal int

const (
	// DisposeNone leaves the previous frame in place (code 1).
	DisposeNone Disposal = 1
	// DisposeBackground restores the background between frames (code 2).
	DisposeBackground Disposal = 2
)

// StreamMode describes how one end of a stage is connected.
type StreamMode int

const (
	// StreamNone leaves the stream unconnected (redirected to the null device).
	StreamNone StreamMode = iota
	// StreamPipe connects the stream to the adjacent stage, or to the
	// caller for the first stage's input.
	StreamPipe
	// StreamFile means the stage writes the destination file itself; the
	// path is part of the argument list.
	StreamFile
)

// StageSpec is a declarative description of one external encoder invocation.
// Building a spec performs no I/O; specs are immutable once built.
type StageSpec struct {
	Path   string
	Args   []string
	Input  StreamMode
	Output StreamMode
}

// PlanInput carries everything the builder needs to assemble an encoding
// plan. Binary paths must already be resolved; the builder never touches
// the filesystem.
type PlanInput struct {
	FFmpegPath string
	MagickPath string

	Filename  string
	Width     int
	Height    int
	FPS       float64
	WithAlpha bool

	Program  Program
	Optimize Optimize
	Loop     int
	Dispose  Disposal
	Fuzz     int // percent
	Colors   int // 0 = no palette cap
}

// ParseProgram parses a program name from configuration or CLI input.
func ParseProgram(s string) (Program, error) {
	switch strings.ToLower(s) {
	case "ffmpeg":
		return ProgramFFmpeg, nil
	case "imagemagick":
		return ProgramImageMagick, nil
	default:
		return "", &ConfigError{Reason: fmt.Sprintf("unknown program %q (want ffmpeg or imagemagick)", s)}
	}
}

// ParseOptimize parses an optimization mode from configuration or CLI input.
func ParseOptimize(s string) (Optimize, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return OptimizeNone, nil
	case "optimizeplus":
		return OptimizePlus, nil
	case "optimizetransparency":
		return OptimizeTransparency, nil
	default:
		return "", &ConfigError{Reason: fmt.Sprintf("unknown optimize mode %q (want none, optimizeplus or OptimizeTransparency)", s)}
	}
}

// FrameCount returns the number of frames an export produces:
// floor(duration*fps)+1. It is computed once, before streaming begins,
// and never recomputed from the actual iteration.
func FrameCount(duration, fps float64) int {
	return int(duration*fps) + 1
}

// BuildPlan assembles the ordered stage list for one export:
//
//	ffmpeg:                  raw frames --ffmpeg--> gif
//	imagemagick, no opt:     raw frames --ffmpeg--> bmp stream --convert--> gif
//	imagemagick, optimized:  raw frames --ffmpeg--> bmp stream --convert--> gif --convert--> optimized gif
func BuildPlan(in PlanInput) ([]StageSpec, error) {
	if in.FPS <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("frame rate must be positive, got %g", in.FPS)}
	}
	if in.Width <= 0 || in.Height <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("frame size must be positive, got %dx%d", in.Width, in.Height)}
	}
	switch in.Optimize {
	case OptimizeNone, OptimizePlus, OptimizeTransparency:
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown optimize mode %q", string(in.Optimize))}
	}
	dispose := in.Dispose
	if dispose == 0 {
		dispose = DisposeBackground
	}
	if dispose != DisposeNone && dispose != DisposeBackground {
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown disposal code %d", int(dispose))}
	}

	pixFmt := "rgb24"
	if in.WithAlpha {
		pixFmt = "rgba"
	}
	fps := fmt.Sprintf("%.02f", in.FPS)

	// Common front end: raw frames on stdin.
	rawIn := []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo",
		"-vcodec", "rawvideo",
		"-r", fps,
		"-s", fmt.Sprintf("%dx%d", in.Width, in.Height),
		"-pix_fmt", pixFmt,
		"-i", "-",
	}

	switch in.Program {
	case ProgramFFmpeg:
		args := append(append([]string{}, rawIn...),
			"-pix_fmt", pixFmt,
			"-r", fps,
			in.Filename,
		)
		return []StageSpec{{
			Path:   in.FFmpegPath,
			Args:   args,
			Input:  StreamPipe,
			Output: StreamFile,
		}}, nil

	case ProgramImageMagick:
		stage1 := StageSpec{
			Path: in.FFmpegPath,
			Args: append(append([]string{}, rawIn...),
				"-f", "image2pipe",
				"-vcodec", "bmp",
				"-",
			),
			Input:  StreamPipe,
			Output: StreamPipe,
		}

		// GIF time unit is 1/100 s.
		delay := int(math.Round(100.0 / in.FPS))
		convert := []string{
			"-delay", strconv.Itoa(delay),
			"-dispose", strconv.Itoa(int(dispose)),
			"-loop", strconv.Itoa(in.Loop),
			"-", "-coalesce",
		}

		if in.Optimize == OptimizeNone {
			stage2 := StageSpec{
				Path:   in.MagickPath,
				Args:   append(convert, in.Filename),
				Input:  StreamPipe,
				Output: StreamFile,
			}
			return []StageSpec{stage1, stage2}, nil
		}

		stage2 := StageSpec{
			Path:   in.MagickPath,
			Args:   append(convert, "gif:-"),
			Input:  StreamPipe,
			Output: StreamPipe,
		}
		stage3Args := []string{
			"-",
			"-layers", string(in.Optimize),
			"-fuzz", fmt.Sprintf("%d%%", in.Fuzz),
		}
		if in.Colors > 0 {
			stage3Args = append(stage3Args, "-colors", strconv.Itoa(in.Colors))
		}
		stage3 := StageSpec{
			Path:   in.MagickPath,
			Args:   append(stage3Args, in.Filename),
			Input:  StreamPipe,
			Output: StreamFile,
		}
		return []StageSpec{stage1, stage2, stage3}, nil

	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown program %q", string(in.Program))}
	}
}
