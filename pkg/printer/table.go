package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	headerCaser = cases.Upper(language.Spanish)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// TablePrinter accumulates rows and renders them as a bordered table.
type TablePrinter struct {
	w       io.Writer
	headers []string
	rows    [][]string
}

func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{w: w}
}

// SetHeaders sets the column titles. They are rendered upper-cased.
func (t *TablePrinter) SetHeaders(headers ...string) {
	t.headers = make([]string, len(headers))
	for i, h := range headers {
		t.headers[i] = headerCaser.String(h)
	}
}

func (t *TablePrinter) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *TablePrinter) Render() error {
	if len(t.headers) == 0 {
		return fmt.Errorf("table has no headers")
	}
	for i, row := range t.rows {
		if len(row) != len(t.headers) {
			return fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(t.headers))
		}
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(t.w, tbl.Render())
	return err
}

// TruncateString shortens s to at most maxLen cells, ending with "...".
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(maxLen), "...")
}
