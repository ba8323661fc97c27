package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/handiism/release-fetcher/internal/model"
)

// BarWidth is the number of cells of the progress bar.
const BarWidth = 50

// ProgressLine renders p as "[###...] NN% - speed" with a bar of width
// cells. The bar is clamped to full when a server sends more than
// announced; the percentage is not.
func ProgressLine(p model.Progress, width int) string {
	percent := p.Fraction() * 100

	filled := int(percent / (100 / float64(width)))
	filled = max(0, min(filled, width))

	return fmt.Sprintf("[%s%s] %d%% - %s",
		strings.Repeat("#", filled),
		strings.Repeat(".", width-filled),
		int(percent),
		Speed(p.Throughput()))
}

var speedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// TerminalBar is a download observer that redraws a single progress line.
//
// Example:
//
//	bar := format.NewTerminalBar(os.Stdout)
//	outcome := engine.Download(ctx, asset, path, bar)
//	bar.Flush()
type TerminalBar struct {
	w     io.Writer
	color bool
	bar   progress.Model
	drawn bool
}

// NewTerminalBar creates a TerminalBar writing to w. The coloured bar is used
// only when w is a terminal.
func NewTerminalBar(w io.Writer) *TerminalBar {
	return &TerminalBar{
		w:     w,
		color: isTerminal(w),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(BarWidth),
			progress.WithoutPercentage(),
		),
	}
}

// Observe implements the download observer interface.
func (b *TerminalBar) Observe(p model.Progress) {
	var line string
	if b.color {
		// Erase to end of line since the speed text varies in length.
		line = fmt.Sprintf("%s %3d%% %s\x1b[K",
			b.bar.ViewAs(min(p.Fraction(), 1)),
			int(p.Fraction()*100),
			speedStyle.Render(Speed(p.Throughput())))
	} else {
		line = ProgressLine(p, BarWidth)
	}

	fmt.Fprint(b.w, "\r"+line)
	b.drawn = true
}

// Flush ends the current progress line, if one was drawn.
func (b *TerminalBar) Flush() {
	if b.drawn {
		fmt.Fprintln(b.w)
		b.drawn = false
	}
}

type fder interface {
	Fd() uintptr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
