package gifwriter

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/gifpipe/pkg/ports"
)

// WriteGIFWithTempFiles exports the clip by writing every frame to a
// numbered PNG file and invoking a single external optimizer over the
// whole set. Pure sequential I/O; useful on machines with little RAM.
// The temporary frame files are removed on both the success and the
// failure path. Progress semantics match WriteGIF.
func WriteGIFWithTempFiles(clip ports.Clip, filename string, opts Options, progress ports.Progress, log ports.Logger) error {
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
	switch opts.Optimize {
	case OptimizeNone, OptimizePlus, OptimizeTransparency:
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown optimize mode %q", string(opts.Optimize))}
	}
	dispose := opts.Dispose
	if dispose == 0 {
		dispose = DisposeBackground
	}

	var binPath string
	var err error
	switch opts.Program {
	case ProgramFFmpeg:
		binPath, err = FindFFmpeg(opts.FFmpegPath)
	case ProgramImageMagick:
		binPath, err = FindImageMagick(opts.MagickPath)
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown program %q", string(opts.Program))}
	}
	if err != nil {
		return err
	}

	withAlpha := opts.WithMask && clip.HasMask()
	total := FrameCount(clip.Duration(), fps)
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	log.Info("Building file %s", filename)
	log.Debug("Generating GIF frames...")

	var temps []string
	defer func() {
		for _, f := range temps {
			os.Remove(f)
		}
	}()

	written := 0
	err = clip.IterateFrames(fps, func(t float64, frame *ports.Frame) error {
		name := fmt.Sprintf("%s_GIFTEMP%04d.png", base, written+1)
		var mask []float64
		if withAlpha {
			var merr error
			mask, merr = clip.MaskFrame(t)
			if merr != nil {
				return fmt.Errorf("mask frame at %.3fs: %w", t, merr)
			}
		}
		if err := saveFramePNG(name, frame, mask); err != nil {
			return err
		}
		temps = append(temps, name)
		written++
		if progress != nil {
			progress(written, total)
		}
		return nil
	})
	if err != nil {
		return &StreamError{Filename: filename, Err: err}
	}

	var args []string
	switch opts.Program {
	case ProgramImageMagick:
		delay := int(100.0 / fps)
		args = []string{
			"-delay", strconv.Itoa(delay),
			"-dispose", strconv.Itoa(int(dispose)),
			"-loop", strconv.Itoa(opts.Loop),
			base + "_GIFTEMP*.png",
			"-coalesce",
		}
		if opts.Optimize != OptimizeNone {
			args = append(args, "-layers", string(opts.Optimize))
		}
		args = append(args, "-fuzz", fmt.Sprintf("%02d%%", opts.Fuzz))
		if opts.Colors > 0 {
			args = append(args, "-colors", strconv.Itoa(opts.Colors))
		}
		args = append(args, filename)
	case ProgramFFmpeg:
		fpsArg := strconv.FormatFloat(fps, 'f', -1, 64)
		args = []string{
			"-y",
			"-f", "image2",
			"-r", fpsArg,
			"-i", base + "_GIFTEMP%04d.png",
			"-r", fpsArg,
			filename,
		}
	}

	if opts.Program == ProgramImageMagick {
		log.Debug("Optimizing GIF with ImageMagick...")
	}
	if err := runCommand(binPath, args); err != nil {
		if le, ok := err.(*LaunchError); ok {
			return le
		}
		return &StreamError{Filename: filename, Err: err, Hint: magickHint(opts.Program)}
	}
	log.Info("File %s is ready", filename)
	return nil
}

// runCommand runs one external program to completion, retaining a bounded
// stderr excerpt for the error message.
func runCommand(path string, args []string) error {
	cmd := exec.Command(path, args...)
	stderr := boundedBuffer{limit: stderrLimit}
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return &LaunchError{Stage: 1, Path: path, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		if s := strings.TrimSpace(stderr.String()); s != "" {
			return fmt.Errorf("%s: %w: %s", filepath.Base(path), err, s)
		}
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// saveFramePNG writes one frame as a PNG file, compositing the mask as a
// straight alpha channel when present.
func saveFramePNG(name string, frame *ports.Frame, mask []float64) error {
	img, err := frameToNRGBA(frame, mask)
	if err != nil {
		return err
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// frameToNRGBA converts a frame into an image. A nil mask yields an
// opaque image; 4-channel frames keep their own alpha.
func frameToNRGBA(frame *ports.Frame, mask []float64) (*image.NRGBA, error) {
	var pix []byte
	switch {
	case mask != nil && frame.Channels == 3:
		var err error
		pix, err = compositeAlpha(frame, mask)
		if err != nil {
			return nil, err
		}
	case frame.Channels == 4:
		pix = frame.Pix
	case frame.Channels == 3:
		n := frame.Width * frame.Height
		pix = make([]byte, n*4)
		for i := 0; i < n; i++ {
			pix[i*4+0] = frame.Pix[i*3+0]
			pix[i*4+1] = frame.Pix[i*3+1]
			pix[i*4+2] = frame.Pix[i*3+2]
			pix[i*4+3] = 0xff
		}
	default:
		return nil, fmt.Errorf("unsupported channel count %d", frame.Channels)
	}
	img := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	copy(img.Pix, pix)
	return img, nil
}
