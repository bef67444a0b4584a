// Package tui renders transfer progress in place on the terminal. Because
// overwrite prompts interleave with transfers mid-batch, the renderer
// redraws a single line per event instead of running a full-screen event
// loop.
package tui

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/bubbles/progress"

	"ftool/internal/domain"
)

const clearLine = "\r\x1b[2K"

type Renderer struct {
	w      io.Writer
	bar    progress.Model
	active bool
}

func NewRenderer(w io.Writer) *Renderer {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
	)
	return &Renderer{w: w, bar: bar}
}

// Handle consumes one progress event. Events without a byte total are
// entry-level signals from the orchestrator; the rest carry chunk progress
// from the executor.
func (r *Renderer) Handle(ev domain.ProgressEvent) {
	name := filepath.Base(ev.CurrentPath)

	if ev.BytesTotal <= 0 {
		fmt.Fprintf(r.w, "%s%s %s",
			clearLine,
			counterStyle.Render(fmt.Sprintf("[%d/%d]", ev.EntryIndex, ev.TotalEntries)),
			fileStyle.Render(name))
		r.active = true
		return
	}

	pct := float64(ev.BytesDone) / float64(ev.BytesTotal)
	if pct > 1 {
		pct = 1
	}
	fmt.Fprintf(r.w, "%s%s %s %s %s",
		clearLine,
		counterStyle.Render(fmt.Sprintf("[%d/%d]", ev.EntryIndex, ev.TotalEntries)),
		r.bar.ViewAs(pct),
		fileStyle.Render(name),
		byteStyle.Render(formatBytes(ev.BytesDone)+"/"+formatBytes(ev.BytesTotal)))
	r.active = true
}

// Interrupt clears the in-place line so a status or prompt line can be
// printed without colliding with it.
func (r *Renderer) Interrupt() {
	if !r.active {
		return
	}
	fmt.Fprint(r.w, clearLine)
	r.active = false
}

// Close finishes the in-place line at the end of the batch.
func (r *Renderer) Close() {
	if !r.active {
		return
	}
	fmt.Fprintln(r.w)
	r.active = false
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
