package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultTerminalWidth is used when the terminal width cannot be determined.
const DefaultTerminalWidth = 80

// columnGap separates table columns.
const columnGap = "  "

// Alignment defines text alignment in a column.
type Alignment int

// Alignment constants.
const (
	AlignLeft Alignment = iota
	AlignRight
)

// TableColumn defines a column in a table. A zero Width sizes the column
// from its content.
type TableColumn struct {
	Name     string
	Width    int
	MaxWidth int
	Align    Alignment
}

// Table renders aligned columns. Widths are measured in terminal cells, so
// accented names and wide runes line up.
type Table struct {
	styles  *TableStyles
	columns []TableColumn
	rows    [][]string
}

// NewTable creates a table with the given columns.
func NewTable(columns ...TableColumn) *Table {
	return &Table{
		styles:  NewTableStyles(),
		columns: columns,
	}
}

// NewTableFromHeaders creates a table with content-sized left-aligned columns.
func NewTableFromHeaders(headers ...string) *Table {
	cols := make([]TableColumn, len(headers))
	for i, h := range headers {
		cols[i] = TableColumn{Name: h}
	}
	return NewTable(cols...)
}

// AddRow appends a row. Missing cells render empty and extra cells are dropped.
// Cells may carry ANSI styling.
func (t *Table) AddRow(values ...string) {
	t.rows = append(t.rows, values)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Widths returns the rendered width of every column.
func (t *Table) Widths() []int {
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		if col.Width > 0 {
			widths[i] = col.Width
			continue
		}
		widths[i] = runewidth.StringWidth(col.Name)
		for _, row := range t.rows {
			if i < len(row) {
				widths[i] = max(widths[i], lipgloss.Width(row[i]))
			}
		}
		if col.MaxWidth > 0 {
			widths[i] = min(widths[i], col.MaxWidth)
		}
	}
	return widths
}

// Render writes the header and every row to w.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}
	widths := t.Widths()

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = t.styles.Header.Render(align(col.Name, widths[i], col.Align))
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(header, columnGap), " ")); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}

	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			cells[i] = t.styles.Cell.Render(align(value, widths[i], col.Align))
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, columnGap), " ")); err != nil {
			return fmt.Errorf("failed to write table row: %w", err)
		}
	}
	return nil
}

// align pads or truncates s to width terminal cells. Styled values are never
// truncated so escape sequences stay intact.
func align(s string, width int, a Alignment) string {
	visible := lipgloss.Width(s)
	if visible > width {
		if visible != runewidth.StringWidth(s) {
			return s
		}
		return runewidth.Truncate(s, width, "…")
	}
	pad := strings.Repeat(" ", width-visible)
	if a == AlignRight {
		return pad + s
	}
	return s + pad
}

// TerminalWidth returns the width of stdout, or DefaultTerminalWidth when
// stdout is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd()) //nolint:gosec // fd fits in int
	if !term.IsTerminal(fd) {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}
