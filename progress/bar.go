// Package progress draws a single-line terminal progress bar on standard
// error, redrawn in place with a carriage return. Drawing is suppressed
// when stderr is not a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// A Bar renders like:
//
//	 [==========>                   ]   34%  validating gates
//
// Set moves it forward; Finish forces 100% and a trailing newline.
type Bar struct {
	w        io.Writer
	width    int
	label    string
	enabled  bool
	finished bool
	fill     func(a ...interface{}) string
}

// New returns a bar of the given width writing to standard error. The bar
// is disabled (all methods become no-ops) when standard error is not a
// terminal.
func New(width int, label string) *Bar {
	return &Bar{
		w:       os.Stderr,
		width:   width,
		label:   label,
		enabled: isatty.IsTerminal(os.Stderr.Fd()),
		fill:    color.New(color.FgGreen).SprintFunc(),
	}
}

// NewWriter returns an always-enabled bar writing to w. Used by tests and
// callers that redirect the bar.
func NewWriter(w io.Writer, width int, label string) *Bar {
	return &Bar{
		w:       w,
		width:   width,
		label:   label,
		enabled: true,
		fill:    func(a ...interface{}) string { return fmt.Sprint(a...) },
	}
}

// Set redraws the bar at the given fraction in [0, 1].
func (b *Bar) Set(fraction float64) {
	if !b.enabled || b.finished {
		return
	}
	b.redraw(fraction)
}

// SetLabel replaces the label shown after the percentage.
func (b *Bar) SetLabel(label string) {
	b.label = label
}

// Finish draws the bar at 100% and terminates the line. Finishing twice
// is harmless.
func (b *Bar) Finish() {
	if !b.enabled || b.finished {
		return
	}
	b.redraw(1.0)
	fmt.Fprintln(b.w)
	b.finished = true
}

func (b *Bar) redraw(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(b.width))
	var bar strings.Builder
	for i := 0; i < b.width; i++ {
		switch {
		case i < filled:
			bar.WriteByte('=')
		case i == filled:
			bar.WriteByte('>')
		default:
			bar.WriteByte(' ')
		}
	}
	fmt.Fprintf(b.w, "\r [%s]  %3d%%  %s", b.fill(bar.String()), int(fraction*100), b.label)
}
