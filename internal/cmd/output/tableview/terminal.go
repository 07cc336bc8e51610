package tableview

import (
	"io"

	"github.com/amora/amoractl/internal/cmd/common"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// StackedBreakpoint is the terminal width below which LayoutAuto picks the
// stacked layout.
const StackedBreakpoint = 80

const (
	defaultWidth  = 120
	defaultHeight = 24
)

type fdProvider interface {
	Fd() uintptr
}

func resolveTerminal(out io.Writer) (width int, height int, isTTY bool) {
	width, height = defaultWidth, defaultHeight

	fd, ok := getFD(out)
	if !ok {
		return width, height, false
	}

	isTTY = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	if w, h, err := term.GetSize(int(fd)); err == nil && w > 0 {
		width, height = w, h
	}

	return width, height, isTTY
}

func getFD(w io.Writer) (uintptr, bool) {
	if fp, ok := w.(fdProvider); ok {
		fd := fp.Fd()
		if fd == ^uintptr(0) {
			return 0, false
		}
		return fd, true
	}
	return 0, false
}

// ChooseLayout resolves LayoutAuto against the available width. Forced
// layouts are returned unchanged.
func ChooseLayout(layout common.Layout, width int) common.Layout {
	if layout != common.LayoutAuto {
		return layout
	}
	if width > 0 && width < StackedBreakpoint {
		return common.LayoutStacked
	}
	return common.LayoutGrid
}
