// Package cli prints a running timer as plain terminal output: one line per
// session event, plus a status line redrawn in place when stdout is a TTY.
package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/wod-trainer/wodtimer/internal/event"
	"github.com/wod-trainer/wodtimer/internal/timer"
	"github.com/wod-trainer/wodtimer/internal/workout"
)

const (
	colorOrange  = 208 // countdown
	colorGreen   = 42  // GO, complete
	colorRed     = 196 // tabata
	colorCyan    = 117 // for time
	colorYellow  = 220 // emom
	colorDim     = 241 // rest, control events
	colorMagenta = 205 // amrap
	colorPink    = 212 // phase arrow
)

const barWidth = 20

// kindColor returns the accent color for a workout kind.
func kindColor(k workout.Kind) int {
	switch k {
	case workout.KindTabata:
		return colorRed
	case workout.KindEMOM:
		return colorYellow
	case workout.KindAMRAP:
		return colorMagenta
	case workout.KindForTime:
		return colorCyan
	default:
		return colorDim
	}
}

// Writer prints events to out and, in TTY mode, keeps a single status line
// under them. In non-TTY mode it prints plain text without ANSI escapes or
// status line.
type Writer struct {
	out    io.Writer
	isTTY  bool
	width  int
	bell   bool
	mu     sync.Mutex
	status string // last rendered status line, "" when none is shown
}

// NewWriter creates a Writer. If width is <= 0, defaults to 80.
func NewWriter(out io.Writer, isTTY bool, width int) *Writer {
	if width <= 0 {
		width = 80
	}
	return &Writer{out: out, isTTY: isTTY, width: width}
}

// SetBell enables the terminal bell on GO and at every phase start. The bell
// only rings in TTY mode.
func (w *Writer) SetBell(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bell = on
}

// WriteEvent prints a single event to the output stream.
func (w *Writer) WriteEvent(ev event.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseStatus()

	var line string
	switch ev.Kind {
	case event.KindStage:
		line = w.formatStage(ev)
	case event.KindPhase:
		line = w.formatPhase(ev)
	case event.KindComplete:
		line = w.formatComplete(ev.Text)
	default:
		line = w.formatControl(ev)
	}

	fmt.Fprintln(w.out, line)
	if w.bell && w.isTTY && rings(ev) {
		fmt.Fprint(w.out, bell)
	}
	w.redrawStatus()
}

func rings(ev event.Event) bool {
	return ev.Kind == event.KindPhase || (ev.Kind == event.KindStage && ev.Frame.Stage == timer.StageGo)
}

// UpdateStatus redraws the status line for the displayed frame. detail is
// appended for RUNNING frames, typically the phase position and label.
func (w *Writer) UpdateStatus(f timer.Frame, detail string) {
	if !w.isTTY {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseStatus()
	w.status = w.buildStatus(f, detail)
	w.redrawStatus()
}

// ClearStatus erases the status line.
func (w *Writer) ClearStatus() {
	if !w.isTTY {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.eraseStatus()
	w.status = ""
}

// eraseStatus clears the status line. Must be called with mu held.
func (w *Writer) eraseStatus() {
	if w.status == "" || !w.isTTY {
		return
	}
	fmt.Fprint(w.out, clearLine)
}

// redrawStatus prints the last status line without a trailing newline so the
// next update can overwrite it. Must be called with mu held.
func (w *Writer) redrawStatus() {
	if w.status == "" || !w.isTTY {
		return
	}
	fmt.Fprint(w.out, w.status)
}

// buildStatus composes the status line.
func (w *Writer) buildStatus(f timer.Frame, detail string) string {
	switch f.Stage {
	case timer.StagePlaceholder:
		return w.style(colorDim, "--:--")
	case timer.StagePreCountdown:
		return w.styleBold(colorOrange, fmt.Sprintf("get ready %d", f.SecondsInPhase))
	case timer.StageGo:
		return w.styleBold(colorGreen, "GO!")
	}

	color := kindColor(f.Kind)
	parts := []string{
		w.styleBold(color, timer.FormatTime(f.SecondsInPhase)),
		w.style(color, progressBar(f.Progress, min(barWidth, max(w.width-40, 5)))),
		w.style(colorDim, "total ") + timer.FormatTime(f.SecondsTotal),
	}
	if detail != "" {
		parts = append(parts, detail)
	}
	return strings.Join(parts, "  ")
}

// progressBar renders p in [0,1] as a fixed-width bar.
func progressBar(p float64, width int) string {
	filled := int(min(max(p, 0), 1) * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Formatting methods per event kind.

func (w *Writer) formatStage(ev event.Event) string {
	switch ev.Frame.Stage {
	case timer.StageGo:
		return w.styleBold(colorGreen, ev.Text)
	case timer.StagePreCountdown:
		return w.style(colorOrange, ev.Text)
	case timer.StageRunning:
		return w.styleBold(kindColor(ev.Frame.Kind), ev.Text)
	default:
		return w.style(colorDim, ev.Text)
	}
}

func (w *Writer) formatPhase(ev event.Event) string {
	return w.style(colorPink, "-> ") + w.styleBold(kindColor(ev.Frame.Kind), ev.Text)
}

func (w *Writer) formatComplete(text string) string {
	if w.isTTY {
		return fgBold(colorGreen, "✔ "+text)
	}
	return text
}

// formatControl brackets control events; a pause stands out in bold.
func (w *Writer) formatControl(ev event.Event) string {
	text := "[" + ev.Text + "]"
	if !w.isTTY {
		return text
	}
	if ev.Kind == event.KindPaused {
		return bold(text)
	}
	return dim(text)
}

// style wraps text with 256-color foreground in TTY mode, plain in non-TTY.
func (w *Writer) style(color int, text string) string {
	if w.isTTY {
		return fg(color, text)
	}
	return text
}

// styleBold wraps text with 256-color foreground and bold in TTY mode.
func (w *Writer) styleBold(color int, text string) string {
	if w.isTTY {
		return fgBold(color, text)
	}
	return text
}
