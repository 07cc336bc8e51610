package tableview

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

const (
	noDataMessage  = "No data to display."
	labelSeparator = ": "
	minValueWidth  = 10
)

// RenderStacked writes p as one label: value card per row, separated by blank
// lines. Long values wrap under their label.
func RenderStacked(w io.Writer, p Projection, width int) error {
	cards := stackedCards(p, width, nil)
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, noDataMessage)
		return err
	}
	_, err := fmt.Fprintln(w, strings.Join(cards, "\n\n"))
	return err
}

// valueStyler decorates a wrapped value line of column col.
type valueStyler func(col int, line string) string

func stackedCards(p Projection, width int, style valueStyler) []string {
	cards := make([]string, len(p.Rows))
	for i := range p.Rows {
		cards[i] = strings.Join(cardLines(p, i, width, style), "\n")
	}
	return cards
}

func cardLines(p Projection, row int, width int, style valueStyler) []string {
	labelWidth := 0
	for _, h := range p.Headers {
		labelWidth = max(labelWidth, runewidth.StringWidth(h))
	}
	indent := strings.Repeat(" ", labelWidth+len(labelSeparator))

	valueWidth := 0
	if width > 0 {
		valueWidth = max(width-len(indent), minValueWidth)
	}

	cells := p.Rows[row].Cells
	lines := make([]string, 0, len(cells))
	for col, header := range p.Headers {
		label := header + labelSeparator + strings.Repeat(" ", labelWidth-runewidth.StringWidth(header))
		for j, part := range wrapValue(cells[col], valueWidth) {
			if style != nil {
				part = style(col, part)
			}
			prefix := indent
			if j == 0 {
				prefix = label
			}
			lines = append(lines, strings.TrimRight(prefix+part, " "))
		}
	}
	return lines
}

// wrapValue breaks value on word boundaries and truncates words longer than
// width. It always returns at least one line.
func wrapValue(value string, width int) []string {
	if width <= 0 {
		return []string{strings.ReplaceAll(value, "\n", " ")}
	}
	wrapped := strings.Split(wordwrap.String(value, width), "\n")
	for i, line := range wrapped {
		wrapped[i] = truncate.StringWithTail(line, uint(width), "…")
	}
	return wrapped
}
