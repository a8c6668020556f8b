// ABOUTME: Borderless aligned table output using tablewriter
// ABOUTME: Header cells are bolded when color output is enabled

package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// TableFormatter writes aligned columns
type TableFormatter struct {
	w io.Writer
}

// NewTableFormatter creates a table formatter writing to w
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

// Format renders headers and rows
func (f *TableFormatter) Format(t *Table) error {
	if t == nil || len(t.Rows) == 0 {
		fmt.Fprintln(f.w, emptyMessage(t))
		return nil
	}

	table := tablewriter.NewWriter(f.w)
	table.SetHeader(t.Headers)
	f.configureTable(table, len(t.Headers))
	table.AppendBulk(t.Rows)
	table.Render()
	return nil
}

func (f *TableFormatter) configureTable(table *tablewriter.Table, columns int) {
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)

	if !color.NoColor && columns > 0 {
		colors := make([]tablewriter.Colors, columns)
		for i := range colors {
			colors[i] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiMagentaColor}
		}
		table.SetHeaderColor(colors...)
	}
}

func emptyMessage(t *Table) string {
	if t != nil && t.Empty != "" {
		return t.Empty
	}
	return "No data to display"
}
