package cli

import (
	"regexp"
	"strings"
)

// Table is a simple column formatter with dynamic widths. Cells may contain
// ANSI escape sequences (colour chips); widths are computed on the visible
// text only.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2,
	}
}

// AddRow adds a row to the table, padded or truncated to the header count.
func (t *Table) AddRow(row []string) {
	normalized := make([]string, len(t.headers))
	copy(normalized, row)
	t.rows = append(t.rows, normalized)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := visibleLen(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	gap := strings.Repeat(" ", t.padding)
	var b strings.Builder

	parts := make([]string, len(t.headers))
	for i, h := range t.headers {
		parts[i] = padRight(h, widths[i])
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
	b.WriteString("\n")

	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	b.WriteString(strings.Join(parts, gap))
	b.WriteString("\n")

	for _, row := range t.rows {
		for i, cell := range row {
			parts[i] = padRight(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
		b.WriteString("\n")
	}

	return b.String()
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// visibleLen returns the cell width excluding ANSI escape sequences.
func visibleLen(s string) int {
	return len(ansiPattern.ReplaceAllString(s, ""))
}

// padRight pads a string with spaces on the right to the desired visible width.
func padRight(s string, width int) string {
	if l := visibleLen(s); l < width {
		return s + strings.Repeat(" ", width-l)
	}
	return s
}
