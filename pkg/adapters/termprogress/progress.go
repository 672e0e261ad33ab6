// Package termprogress renders export progress on the terminal. It is a
// thin adapter behind the plain progress callback: exports behave
// identically whether or not a bar is attached.
package termprogress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const barWidth = 28

// Bar writes a single-line progress bar when the output is a terminal,
// and falls back to occasional plain lines otherwise. Not safe for
// concurrent use; the export loop is single-threaded.
type Bar struct {
	out      io.Writer
	tty      bool
	label    string
	lastDeci int // last rendered tenth, for the non-TTY fallback
}

// New creates a progress bar writing to stderr.
func New(label string) *Bar {
	return &Bar{
		out:      os.Stderr,
		tty:      isatty.IsTerminal(os.Stderr.Fd()),
		label:    label,
		lastDeci: -1,
	}
}

// NewWithWriter creates a bar with an explicit destination, used in tests.
func NewWithWriter(out io.Writer, tty bool, label string) *Bar {
	return &Bar{out: out, tty: tty, label: label, lastDeci: -1}
}

// Update implements the ports.Progress callback contract: done counts up
// from 1 to total, one call per frame.
func (b *Bar) Update(done, total int) {
	if total <= 0 {
		return
	}
	if b.tty {
		filled := done * barWidth / total
		fmt.Fprintf(b.out, "\r%s [%s%s] %d/%d",
			b.label,
			strings.Repeat("#", filled),
			strings.Repeat("-", barWidth-filled),
			done, total)
		if done >= total {
			fmt.Fprintln(b.out)
		}
		return
	}
	// Without a terminal, log once per tenth of the total.
	deci := done * 10 / total
	if deci > b.lastDeci {
		b.lastDeci = deci
		fmt.Fprintf(b.out, "%s %d/%d\n", b.label, done, total)
	}
}
