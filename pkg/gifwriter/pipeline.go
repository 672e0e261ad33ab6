package gifwriter

import (
	"io"
	"os/exec"
	"strings"

	"github.com/user/gifpipe/pkg/ports"
)

// stderrLimit caps how much child stderr is retained per stage. The buffer
// is drained continuously by os/exec, so a chatty child never blocks on a
// full stderr pipe; only the retained excerpt is bounded.
const stderrLimit = 32 * 1024

// boundedBuffer keeps the first limit bytes written and silently drops the
// rest. It never returns an error so the stderr copier keeps draining.
type boundedBuffer struct {
	limit int
	buf   []byte
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if remain := b.limit - len(b.buf); remain > 0 {
		if len(p) > remain {
			b.buf = append(b.buf, p[:remain]...)
		} else {
			b.buf = append(b.buf, p...)
		}
	}
	return len(p), nil
}

func (b *boundedBuffer) String() string { return string(b.buf) }

// stage is one running encoder process.
type stage struct {
	spec   StageSpec
	cmd    *exec.Cmd
	stderr boundedBuffer
	err    error // result of Wait
}

// Pipeline owns an ordered chain of running encoder processes, with stage
// i's stdout wired to stage i+1's stdin. Only the first stage's stdin is
// visible to the caller, as the frame sink. A Pipeline belongs to a single
// export call and must not be reused after Finish.
type Pipeline struct {
	stages   []*stage
	entry    io.WriteCloser
	log      ports.Logger
	finished bool
}

// StartPipeline launches every stage in dependency order, so a downstream
// stage's input pipe exists before its upstream neighbor starts writing.
// If any stage fails to start, all previously started stages are
// terminated and reaped before the error is returned; no process is ever
// leaked.
func StartPipeline(specs []StageSpec, log ports.Logger) (*Pipeline, error) {
	if log == nil {
		log = nopLogger{}
	}
	p := &Pipeline{log: log}
	if err := p.start(specs); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) start(specs []StageSpec) error {
	var carry io.ReadCloser // stdout of the previous stage
	for i, spec := range specs {
		st := &stage{spec: spec}
		st.stderr.limit = stderrLimit
		st.cmd = exec.Command(spec.Path, spec.Args...)
		st.cmd.Stderr = &st.stderr

		switch {
		case i == 0 && spec.Input == StreamPipe:
			stdin, err := st.cmd.StdinPipe()
			if err != nil {
				p.abort()
				return &LaunchError{Stage: i + 1, Path: spec.Path, Err: err}
			}
			p.entry = stdin
		case i > 0 && spec.Input == StreamPipe:
			st.cmd.Stdin = carry
		}

		if spec.Output == StreamPipe {
			stdout, err := st.cmd.StdoutPipe()
			if err != nil {
				p.abort()
				return &LaunchError{Stage: i + 1, Path: spec.Path, Err: err}
			}
			carry = stdout
		}

		if err := st.cmd.Start(); err != nil {
			p.abort()
			return &LaunchError{Stage: i + 1, Path: spec.Path, Err: err}
		}
		p.stages = append(p.stages, st)
		p.log.Debug("Started stage %d/%d: %s", i+1, len(specs), spec.Path)
	}
	return nil
}

// Sink returns the writable entry of the first stage. Writes block when
// the downstream encoders fall behind; the OS pipe buffer provides the
// back-pressure.
func (p *Pipeline) Sink() io.Writer { return p.entry }

// Stages returns the number of running stages.
func (p *Pipeline) Stages() int { return len(p.stages) }

// Finish closes the entry stream, signalling end-of-input to the first
// encoder, then waits for every stage in order. It runs on both the
// success and the failure path and is safe to call more than once; every
// launched process reaches a terminal wait exactly once. Exit codes are
// not interpreted beyond "process ended": encoder failures surface as
// broken pipes during streaming, not here.
func (p *Pipeline) Finish() {
	if p.finished {
		return
	}
	p.finished = true
	if p.entry != nil {
		p.entry.Close()
		p.entry = nil
	}
	for i, st := range p.stages {
		st.err = st.cmd.Wait()
		if st.err != nil {
			p.log.Debug("Stage %d (%s) exited with error: %s", i+1, st.spec.Path, stageFailureDetail(st))
		}
	}
}

// abort kills and reaps every stage started so far. Used when a later
// stage fails to launch.
func (p *Pipeline) abort() {
	p.finished = true
	if p.entry != nil {
		p.entry.Close()
		p.entry = nil
	}
	for _, st := range p.stages {
		if st.cmd.Process != nil {
			st.cmd.Process.Kill()
		}
		st.err = st.cmd.Wait()
	}
}

func stageFailureDetail(st *stage) string {
	detail := st.err.Error()
	if s := strings.TrimSpace(st.stderr.String()); s != "" {
		detail += ": " + s
	}
	return detail
}
