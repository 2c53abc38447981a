package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static rows under a header and divider.
type SimpleTable struct {
	Title   string
	Headers []string
	Rows    [][]string

	// Numeric marks columns that are right-aligned (counts, durations).
	Numeric map[int]bool
}

// NewSimpleTable creates an empty table.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{Title: title, Headers: headers, Numeric: map[int]bool{}}
}

// AddRow appends a row. Cells beyond the header count are dropped at render time.
func (t *SimpleTable) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// AlignRight right-aligns the given column indexes.
func (t *SimpleTable) AlignRight(cols ...int) *SimpleTable {
	for _, c := range cols {
		t.Numeric[c] = true
	}
	return t
}

// View renders the table. An empty table renders nothing.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}
	widths := t.columnWidths()
	sep := styles.Muted.Render(" | ")

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title) + "\n")
	}

	header := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = styles.Bold.Render(t.cell(h, i, widths[i]))
	}
	sb.WriteString(strings.Join(header, sep) + "\n")

	total := 3 * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	sb.WriteString(styles.RenderDivider(total) + "\n")

	for _, row := range t.Rows {
		n := min(len(row), len(widths))
		cells := make([]string, n)
		for i := 0; i < n; i++ {
			cells[i] = styles.Body.Render(t.cell(row[i], i, widths[i]))
		}
		sb.WriteString(strings.Join(cells, sep) + "\n")
	}
	return sb.String()
}

// columnWidths returns the widest display width per header column.
func (t *SimpleTable) columnWidths() []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

func (t *SimpleTable) cell(s string, col, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if t.Numeric[col] {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
