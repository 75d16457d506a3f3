package render

import (
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

const columnGap = "  "

type cell struct {
	text  string
	style color.Style
}

// table aligns cells by display width, so wide runes in carrier or plan
// names do not break the columns. Styles are applied after padding and
// columns that are empty throughout are dropped.
type table struct {
	headers []string
	rows    [][]cell
	plain   bool // no header line
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) addRow(row []cell) {
	t.rows = append(t.rows, row)
}

func (t *table) widths() []int {
	n := len(t.headers)
	for _, row := range t.rows {
		if len(row) > n {
			n = len(row)
		}
	}
	w := make([]int, n)
	if !t.plain {
		for i, h := range t.headers {
			w[i] = runewidth.StringWidth(h)
		}
	}
	for _, row := range t.rows {
		for i, c := range row {
			if cw := runewidth.StringWidth(c.text); cw > w[i] {
				w[i] = cw
			}
		}
	}
	return w
}

func (t *table) write(r *Renderer) {
	w := t.widths()

	if !t.plain {
		parts := make([]string, 0, len(w))
		for i := range w {
			if w[i] == 0 {
				continue
			}
			h := ""
			if i < len(t.headers) {
				h = t.headers[i]
			}
			parts = append(parts, r.paint(headerStyle, runewidth.FillRight(h, w[i])))
		}
		r.printf("%s\n", strings.TrimRight(strings.Join(parts, columnGap), " "))
	}

	for _, row := range t.rows {
		parts := make([]string, 0, len(w))
		for i := range w {
			if w[i] == 0 {
				continue
			}
			var c cell
			if i < len(row) {
				c = row[i]
			}
			padded := runewidth.FillRight(c.text, w[i])
			if c.style != nil && strings.TrimSpace(c.text) != "" {
				padded = r.paint(c.style, c.text) + strings.Repeat(" ", w[i]-runewidth.StringWidth(c.text))
			}
			parts = append(parts, padded)
		}
		r.printf("%s\n", strings.TrimRight(strings.Join(parts, columnGap), " "))
	}
}
