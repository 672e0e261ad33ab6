// Package encoderprobe inspects the external encoder binaries an export
// would use. It backs the doctor CLI command, so a misconfigured host can
// be diagnosed before a long export is started.
package encoderprobe

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/user/gifpipe/pkg/gifwriter"
)

// Report describes one encoder binary.
type Report struct {
	Name    string // ffmpeg or imagemagick
	Path    string // resolved binary path, empty when not found
	Version string // first line of the binary's version banner
	Err     error  // discovery or probe failure
}

// Available reports whether the binary was found and answered the probe.
func (r Report) Available() bool { return r.Err == nil }

// ProbeAll inspects both encoder chains with optional path overrides.
func ProbeAll(ffmpegPath, magickPath string) []Report {
	return []Report{
		probe("ffmpeg", ffmpegPath, gifwriter.FindFFmpeg),
		probe("imagemagick", magickPath, gifwriter.FindImageMagick),
	}
}

func probe(name, override string, find func(string) (string, error)) Report {
	r := Report{Name: name}
	path, err := find(override)
	if err != nil {
		r.Err = err
		return r
	}
	r.Path = path
	version, err := versionBanner(path)
	if err != nil {
		r.Err = fmt.Errorf("probe %s: %w", path, err)
		return r
	}
	r.Version = version
	return r
}

// versionBanner runs the binary with -version and returns the first
// non-empty output line. Both encoders print their banner on stdout.
func versionBanner(path string) (string, error) {
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		return "", err
	}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("no version banner")
}
