package gifwriter

import (
	"errors"
	"reflect"
	"testing"
)

func basePlanInput() PlanInput {
	return PlanInput{
		FFmpegPath: "/usr/bin/ffmpeg",
		MagickPath: "/usr/bin/convert",
		Filename:   "out.gif",
		Width:      64,
		Height:     48,
		FPS:        10,
		Program:    ProgramImageMagick,
	}
}

func TestBuildPlanFFmpeg(t *testing.T) {
	in := basePlanInput()
	in.Program = ProgramFFmpeg

	plan, err := BuildPlan(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("expected 1 stage, got %d", len(plan))
	}
	stage := plan[0]
	if stage.Input != StreamPipe || stage.Output != StreamFile {
		t.Errorf("expected pipe->file stage, got input=%d output=%d", stage.Input, stage.Output)
	}
	want := []string{
		"-y", "-loglevel", "error",
		"-f", "rawvideo",
		"-vcodec", "rawvideo",
		"-r", "10.00",
		"-s", "64x48",
		"-pix_fmt", "rgb24",
		"-i", "-",
		"-pix_fmt", "rgb24",
		"-r", "10.00",
		"out.gif",
	}
	if !reflect.DeepEqual(stage.Args, want) {
		t.Errorf("args mismatch:\n got %v\nwant %v", stage.Args, want)
	}
}

func TestBuildPlanFFmpegWithAlpha(t *testing.T) {
	in := basePlanInput()
	in.Program = ProgramFFmpeg
	in.WithAlpha = true

	plan, err := BuildPlan(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for _, a := range plan[0].Args {
		if a == "rgba" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("expected rgba pixel format on both sides, found %d occurrences", count)
	}
}

func TestBuildPlanImageMagickNoOptimize(t *testing.T) {
	in := basePlanInput()
	in.Optimize = OptimizeNone
	in.Loop = 3
	in.Dispose = DisposeNone

	plan, err := BuildPlan(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(plan))
	}

	stage1 := plan[0]
	if stage1.Path != "/usr/bin/ffmpeg" {
		t.Errorf("stage 1 path = %s", stage1.Path)
	}
	if stage1.Input != StreamPipe || stage1.Output != StreamPipe {
		t.Errorf("stage 1 should be pipe->pipe")
	}
	tail := stage1.Args[len(stage1.Args)-5:]
	if !reflect.DeepEqual(tail, []string{"-f", "image2pipe", "-vcodec", "bmp", "-"}) {
		t.Errorf("stage 1 should emit a BMP stream, args end with %v", tail)
	}

	stage2 := plan[1]
	want := []string{"-delay", "10", "-dispose", "1", "-loop", "3", "-", "-coalesce", "out.gif"}
	if !reflect.DeepEqual(stage2.Args, want) {
		t.Errorf("stage 2 args:\n got %v\nwant %v", stage2.Args, want)
	}
	if stage2.Input != StreamPipe || stage2.Output != StreamFile {
		t.Errorf("stage 2 should be pipe->file")
	}
}

func TestBuildPlanImageMagickOptimized(t *testing.T) {
	in := basePlanInput()
	in.Optimize = OptimizeTransparency
	in.Fuzz = 2
	in.Colors = 128

	plan, err := BuildPlan(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(plan))
	}

	stage2 := plan[1]
	if stage2.Output != StreamPipe {
		t.Errorf("stage 2 should pipe onward when optimizing")
	}
	if last := stage2.Args[len(stage2.Args)-1]; last != "gif:-" {
		t.Errorf("stage 2 should emit gif to stdout, last arg = %s", last)
	}

	stage3 := plan[2]
	want := []string{"-", "-layers", "OptimizeTransparency", "-fuzz", "2%", "-colors", "128", "out.gif"}
	if !reflect.DeepEqual(stage3.Args, want) {
		t.Errorf("stage 3 args:\n got %v\nwant %v", stage3.Args, want)
	}
	if stage3.Input != StreamPipe || stage3.Output != StreamFile {
		t.Errorf("stage 3 should be pipe->file")
	}
}

func TestBuildPlanNoColorCap(t *testing.T) {
	in := basePlanInput()
	in.Optimize = OptimizePlus

	plan, err := BuildPlan(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range plan[2].Args {
		if a == "-colors" {
			t.Errorf("no -colors flag expected when Colors is 0")
		}
	}
}

func TestBuildPlanDelayRounding(t *testing.T) {
	tests := []struct {
		fps   float64
		delay string
	}{
		{10, "10"},
		{30, "3"}, // round(100/30) = 3
		{24, "4"}, // round(100/24) = 4
		{15, "7"}, // round(100/15) = 7
	}
	for _, tt := range tests {
		in := basePlanInput()
		in.FPS = tt.fps
		in.Optimize = OptimizeNone
		plan, err := BuildPlan(in)
		if err != nil {
			t.Fatalf("fps %g: unexpected error: %v", tt.fps, err)
		}
		if got := plan[1].Args[1]; got != tt.delay {
			t.Errorf("fps %g: delay = %s, want %s", tt.fps, got, tt.delay)
		}
	}
}

func TestBuildPlanStageModeInvariant(t *testing.T) {
	// Stage i's output is a pipe iff stage i+1 exists with a pipe input,
	// and only the last stage writes the destination file.
	for _, opt := range []Optimize{OptimizeNone, OptimizePlus, OptimizeTransparency} {
		in := basePlanInput()
		in.Optimize = opt
		plan, err := BuildPlan(in)
		if err != nil {
			t.Fatalf("optimize %q: %v", opt, err)
		}
		for i, stage := range plan {
			last := i == len(plan)-1
			if last && stage.Output != StreamFile {
				t.Errorf("optimize %q: last stage output should be a file", opt)
			}
			if !last && (stage.Output != StreamPipe || plan[i+1].Input != StreamPipe) {
				t.Errorf("optimize %q: stage %d must pipe into stage %d", opt, i+1, i+2)
			}
		}
	}
}

func TestBuildPlanInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlanInput)
	}{
		{"unknown program", func(in *PlanInput) { in.Program = "gifsicle" }},
		{"unknown optimize", func(in *PlanInput) { in.Optimize = "OptimizeFrame" }},
		{"zero fps", func(in *PlanInput) { in.FPS = 0 }},
		{"negative size", func(in *PlanInput) { in.Width = -1 }},
		{"bad dispose", func(in *PlanInput) { in.Dispose = 5 }},
	}
	for _, tt := range tests {
		in := basePlanInput()
		tt.mutate(&in)
		_, err := BuildPlan(in)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%s: expected ConfigError, got %v", tt.name, err)
		}
	}
}

func TestParseProgram(t *testing.T) {
	if p, err := ParseProgram("FFmpeg"); err != nil || p != ProgramFFmpeg {
		t.Errorf("ParseProgram(FFmpeg) = %q, %v", p, err)
	}
	if _, err := ParseProgram("gifsicle"); err == nil {
		t.Error("expected error for unknown program")
	}
}

func TestParseOptimize(t *testing.T) {
	tests := []struct {
		in   string
		want Optimize
	}{
		{"", OptimizeNone},
		{"none", OptimizeNone},
		{"optimizeplus", OptimizePlus},
		{"OptimizeTransparency", OptimizeTransparency},
		{"optimizetransparency", OptimizeTransparency},
	}
	for _, tt := range tests {
		got, err := ParseOptimize(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseOptimize(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseOptimize("maximum"); err == nil {
		t.Error("expected error for unknown optimize mode")
	}
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		duration float64
		fps      float64
		want     int
	}{
		{2, 10, 21},
		{1, 30, 31},
		{0.5, 10, 6},
		{0, 10, 1},
	}
	for _, tt := range tests {
		if got := FrameCount(tt.duration, tt.fps); got != tt.want {
			t.Errorf("FrameCount(%g, %g) = %d, want %d", tt.duration, tt.fps, got, tt.want)
		}
	}
}
