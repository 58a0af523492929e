package main

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// writeTable writes rows as left-aligned columns padded to display width.
// Wide characters in titles count as two cells.
func writeTable(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if n := runewidth.StringWidth(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
	}

	line := func(cells []string) {
		var sb strings.Builder
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(cell)
			// No trailing padding after the last column.
			if i < len(widths)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)+2))
			}
		}
		sb.WriteString("\n")
		_, _ = io.WriteString(w, sb.String())
	}

	line(header)
	for _, row := range rows {
		line(row)
	}
}
