package gifwriter

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// FindFFmpeg locates the ffmpeg binary.
// Priority: 1) explicit override, 2) FFMPEG_BINARY env, 3) PATH, 4) common locations.
func FindFFmpeg(override string) (string, error) {
	names := []string{"ffmpeg"}
	if runtime.GOOS == "windows" {
		names = []string{"ffmpeg.exe"}
	}
	return findBinary(override, "FFMPEG_BINARY", names, commonFFmpegPaths(), ErrFFmpegNotFound)
}

// FindImageMagick locates the ImageMagick binary, preferring the v7
// "magick" tool over the legacy "convert".
// Priority: 1) explicit override, 2) IMAGEMAGICK_BINARY env, 3) PATH, 4) common locations.
func FindImageMagick(override string) (string, error) {
	names := []string{"magick", "convert"}
	if runtime.GOOS == "windows" {
		names = []string{"magick.exe"}
	}
	return findBinary(override, "IMAGEMAGICK_BINARY", names, commonMagickPaths(), ErrImageMagickNotFound)
}

func findBinary(override, envVar string, names, commonPaths []string, notFound error) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return override, nil
		}
		return "", fmt.Errorf("%w: configured path %s not found", notFound, override)
	}

	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", notFound, envVar, envPath)
	}

	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	for _, p := range commonPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", notFound
}

func commonFFmpegPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		return []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
}

func commonMagickPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\ImageMagick\magick.exe`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/magick",
			"/usr/local/bin/magick",
			"/usr/local/bin/convert",
		}
	default:
		return []string{
			"/usr/bin/magick",
			"/usr/bin/convert",
			"/usr/local/bin/convert",
		}
	}
}
