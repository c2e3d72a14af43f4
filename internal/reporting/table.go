package reporting

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// columnWidth is the display width of the widest cell.
func columnWidth(cells []string) int {
	w := 0
	for _, c := range cells {
		if cw := runewidth.StringWidth(c); cw > w {
			w = cw
		}
	}
	return w
}

// Preview collapses whitespace in text and cuts it to width display columns,
// ending with "…" when anything was dropped. A width below 1 disables cutting.
func Preview(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	if width < 1 || runewidth.StringWidth(flat) <= width {
		return flat
	}
	return runewidth.Truncate(flat, width, "…")
}

// writeTable renders rows under header, left-aligned, two spaces between columns.
func writeTable(b *strings.Builder, indent string, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i := range header {
		col := []string{header[i]}
		for _, r := range rows {
			col = append(col, r[i])
		}
		widths[i] = columnWidth(col)
	}

	line := func(cells []string) {
		b.WriteString(indent)
		for i, c := range cells {
			if i == len(cells)-1 {
				b.WriteString(c)
				break
			}
			b.WriteString(padRight(c, widths[i]))
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}

	line(header)
	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(widths) - 1)
	b.WriteString(indent + strings.Repeat("─", total) + "\n")
	for _, r := range rows {
		line(r)
	}
}
