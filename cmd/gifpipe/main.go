// Package main provides the CLI entry point for gifpipe.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/gifpipe/pkg/adapters/dirclip"
	"github.com/user/gifpipe/pkg/adapters/encoderprobe"
	"github.com/user/gifpipe/pkg/adapters/logger"
	"github.com/user/gifpipe/pkg/adapters/nativegif"
	"github.com/user/gifpipe/pkg/adapters/synthclip"
	"github.com/user/gifpipe/pkg/adapters/termprogress"
	"github.com/user/gifpipe/pkg/config"
	"github.com/user/gifpipe/pkg/gifwriter"
	"github.com/user/gifpipe/pkg/ports"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Convert ConvertCmd `cmd:"" help:"Convert a directory of image frames into an animated GIF."`
	Demo    DemoCmd    `cmd:"" help:"Render a synthetic test clip and export it as an animated GIF."`
	Doctor  DoctorCmd  `cmd:"" help:"Check which external encoder binaries are available."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// ConvertCmd defines the convert subcommand.
type ConvertCmd struct {
	// Required arguments
	Dir    string `arg:"" help:"Directory containing numbered image frames (png, jpeg, bmp)."`
	Output string `short:"o" required:"" help:"Output GIF file path."`

	// Source
	FPS float64 `short:"r" default:"15" help:"Frame rate the image sequence was captured at."`

	// Encoder chain
	Program  string  `short:"p" default:"imagemagick" enum:"ffmpeg,imagemagick" help:"Encoder chain (ffmpeg or imagemagick)."`
	Optimize *string `help:"ImageMagick layer optimization (none, optimizeplus, OptimizeTransparency)."`

	// GIF parameters
	Loop    *int `help:"Loop count (0 = forever)."`
	Dispose *int `help:"Frame disposal code (1 = keep previous frame, 2 = restore background)."`
	Fuzz    *int `help:"ImageMagick color fuzz in percent."`
	Colors  *int `help:"Cap the palette at N colors."`
	NoMask  bool `help:"Ignore the alpha channel of the source frames."`

	// Export strategy
	TempFiles bool `help:"Write frames to temporary files instead of streaming through pipes."`
	Native    bool `help:"Encode in-process without external binaries (slower, all frames quantized in memory)."`

	// Binary paths
	FFmpegPath      string `help:"Path to the ffmpeg binary (falls back to FFMPEG_BINARY env, then PATH)."`
	ImageMagickPath string `help:"Path to the ImageMagick binary (falls back to IMAGEMAGICK_BINARY env, then PATH)."`

	// Configuration file
	Config string `short:"c" help:"YAML configuration file with export defaults."`

	// Logging options
	LogLevel   string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet      bool   `short:"Q" help:"Suppress all log output."`
	NoProgress bool   `help:"Disable the terminal progress bar."`
}

// DemoCmd defines the demo subcommand.
type DemoCmd struct {
	Output string `short:"o" required:"" help:"Output GIF file path."`

	Width    int     `short:"W" default:"256" help:"Frame width in pixels."`
	Height   int     `short:"H" default:"192" help:"Frame height in pixels."`
	Duration float64 `short:"d" default:"2" help:"Clip duration in seconds."`
	FPS      float64 `short:"r" default:"15" help:"Frame rate."`
	Mask     bool    `help:"Give the demo clip an opacity mask (forces RGBA streaming)."`

	Program  string `short:"p" default:"imagemagick" enum:"ffmpeg,imagemagick" help:"Encoder chain (ffmpeg or imagemagick)."`
	Optimize string `default:"OptimizeTransparency" help:"ImageMagick layer optimization (none, optimizeplus, OptimizeTransparency)."`
	Native   bool   `help:"Encode in-process without external binaries."`

	LogLevel   string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet      bool   `short:"Q" help:"Suppress all log output."`
	NoProgress bool   `help:"Disable the terminal progress bar."`
}

// DoctorCmd checks the host for usable encoder binaries.
type DoctorCmd struct {
	FFmpegPath      string `help:"Path to the ffmpeg binary (falls back to FFMPEG_BINARY env, then PATH)."`
	ImageMagickPath string `help:"Path to the ImageMagick binary (falls back to IMAGEMAGICK_BINARY env, then PATH)."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("gifpipe"),
		kong.Description("Stream video frames through external encoders into animated GIFs."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the convert command.
func (cmd *ConvertCmd) Run() error {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override the config file.
	cfg.Program = cmd.Program
	if cmd.Optimize != nil {
		cfg.Optimize = *cmd.Optimize
	}
	if cmd.Loop != nil {
		cfg.Loop = *cmd.Loop
	}
	if cmd.Dispose != nil {
		cfg.Dispose = *cmd.Dispose
	}
	if cmd.Fuzz != nil {
		cfg.Fuzz = *cmd.Fuzz
	}
	if cmd.Colors != nil {
		cfg.Colors = *cmd.Colors
	}
	if cmd.NoMask {
		cfg.NoMask = true
	}
	if cmd.FFmpegPath != "" {
		cfg.FFmpegPath = cmd.FFmpegPath
	}
	if cmd.ImageMagickPath != "" {
		cfg.ImageMagickPath = cmd.ImageMagickPath
	}

	opts, err := cfg.ToOptions()
	if err != nil {
		return err
	}

	log := newLogger(cmd.Quiet, cmd.LogLevel)
	clip, err := dirclip.New(cmd.Dir, cmd.FPS)
	if err != nil {
		return err
	}

	progress := newProgress(cmd.Quiet || cmd.NoProgress)

	log.Info("Converting %s to %s...", cmd.Dir, cmd.Output)
	switch {
	case cmd.Native:
		err = gifwriter.WriteGIFWithAppender(clip, cmd.Output, nativegif.New(), opts, progress, log)
	case cmd.TempFiles || cfg.TempFiles:
		err = gifwriter.WriteGIFWithTempFiles(clip, cmd.Output, opts, progress, log)
	default:
		err = gifwriter.WriteGIF(clip, cmd.Output, opts, progress, log)
	}
	if err != nil {
		return err
	}

	log.Info("Output saved to %s", cmd.Output)
	return nil
}

// Run executes the demo command.
func (cmd *DemoCmd) Run() error {
	optimize, err := gifwriter.ParseOptimize(cmd.Optimize)
	if err != nil {
		return err
	}
	program, err := gifwriter.ParseProgram(cmd.Program)
	if err != nil {
		return err
	}
	opts := gifwriter.DefaultOptions()
	opts.Optimize = optimize
	opts.Program = program

	log := newLogger(cmd.Quiet, cmd.LogLevel)
	clip := synthclip.New(cmd.Width, cmd.Height, cmd.Duration, cmd.FPS, cmd.Mask)
	progress := newProgress(cmd.Quiet || cmd.NoProgress)

	log.Info("Rendering %dx%d demo clip (%gs at %g fps)...", cmd.Width, cmd.Height, cmd.Duration, cmd.FPS)
	if cmd.Native {
		err = gifwriter.WriteGIFWithAppender(clip, cmd.Output, nativegif.New(), opts, progress, log)
	} else {
		err = gifwriter.WriteGIF(clip, cmd.Output, opts, progress, log)
	}
	if err != nil {
		return err
	}

	log.Info("Output saved to %s", cmd.Output)
	return nil
}

// Run executes the doctor command.
func (cmd *DoctorCmd) Run() error {
	var missing int
	for _, r := range encoderprobe.ProbeAll(cmd.FFmpegPath, cmd.ImageMagickPath) {
		if r.Available() {
			fmt.Println(l10n.F("%s: %s (%s)", r.Name, r.Path, r.Version))
			continue
		}
		missing++
		fmt.Println(l10n.F("%s: not found (%v)", r.Name, r.Err))
	}
	if missing == 2 {
		fmt.Println(l10n.T("No external encoder found; only the --native backend will work."))
	}
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("gifpipe version %s", version))
	return nil
}

func newLogger(quiet bool, level string) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

func newProgress(disabled bool) ports.Progress {
	if disabled {
		return nil
	}
	return termprogress.New("frames").Update
}
