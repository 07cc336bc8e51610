package tableview

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 60
	columnGap      = "  "
)

// RenderGrid writes p as an aligned table no wider than width. Cells that do
// not fit are truncated with an ellipsis.
func RenderGrid(w io.Writer, p Projection, width int) error {
	for _, line := range gridLines(p, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// gridLines returns the header line followed by one line per row.
func gridLines(p Projection, width int) []string {
	limit := 0
	if width > 0 {
		limit = width - runewidth.StringWidth(columnGap)*(len(p.Headers)-1)
	}
	widths, _ := calculateColumnWidths(p.Headers, p.Matrix(), limit)

	lines := make([]string, 0, len(p.Rows)+1)
	lines = append(lines, gridLine(p.Headers, widths))
	for _, row := range p.Rows {
		lines = append(lines, gridLine(row.Cells, widths))
	}
	return lines
}

func gridLine(cells []string, widths []int) string {
	var b strings.Builder
	for i, w := range widths {
		if i > 0 {
			b.WriteString(columnGap)
		}
		var cell string
		if i < len(cells) {
			cell = fitCell(cells[i], w)
		}
		b.WriteString(cell)
		if pad := w - runewidth.StringWidth(cell); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// fitCell flattens newlines and truncates s to width display cells.
func fitCell(s string, width int) string {
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// calculateColumnWidths sizes every column to its widest cell within
// [minColumnWidth, maxColumnWidth], then shrinks the widest columns until the
// total fits widthLimit. A widthLimit of zero disables shrinking.
func calculateColumnWidths(headers []string, rows [][]string, widthLimit int) ([]int, []int) {
	widths := make([]int, len(headers))
	minWidths := make([]int, len(headers))
	for i, header := range headers {
		headerWidth := runewidth.StringWidth(header)
		minWidth := clamp(headerWidth, minColumnWidth, maxColumnWidth)
		minWidths[i] = minWidth

		maxWidth := headerWidth
		for _, row := range rows {
			if i < len(row) {
				if w := runewidth.StringWidth(row[i]); w > maxWidth {
					maxWidth = w
				}
			}
		}
		widths[i] = max(clamp(maxWidth, minColumnWidth, maxColumnWidth), minWidth)
	}

	if widthLimit <= 0 {
		return widths, minWidths
	}

	total := sum(widths)
	for total > widthLimit {
		idx := widestColumnAboveMin(widths, minWidths)
		if idx == -1 {
			break
		}
		widths[idx]--
		total--
	}

	return widths, minWidths
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func widestColumnAboveMin(widths, minWidths []int) int {
	idx := -1
	maxWidth := math.MinInt
	for i, width := range widths {
		if width > maxWidth && width > minWidths[i] {
			maxWidth = width
			idx = i
		}
	}
	return idx
}

func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
