// ABOUTME: Output formatting for CLI commands in table, text, JSON, or YAML
// ABOUTME: Commands describe results once as a Table and pick a format at print time

package format

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Table is a command result. Headers and Rows drive table and text
// output; Data is what JSON and YAML serialize.
type Table struct {
	Headers []string
	Rows    [][]string
	Data    any
	Empty   string
}

// Record builds a two-column field/value table for a single object
func Record(data any, fields ...[2]string) *Table {
	t := &Table{Headers: []string{"Field", "Value"}, Data: data}
	for _, f := range fields {
		t.Rows = append(t.Rows, []string{f[0], f[1]})
	}
	return t
}

// Formatter renders a Table
type Formatter interface {
	Format(t *Table) error
}

// GetFormatter returns a formatter writing to w
func GetFormatter(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", "table":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w, true), nil
	case "json-compact":
		return NewJSONFormatter(w, false), nil
	case "yaml":
		return NewYAMLFormatter(w), nil
	case "text":
		return NewTextFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Print formats t with the named format
func Print(w io.Writer, format string, t *Table) error {
	f, err := GetFormatter(format, w)
	if err != nil {
		return err
	}
	return f.Format(t)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, message+"\n", args...)
}

// PrintError prints an error message with the "Error:" prefix
func PrintError(w io.Writer, message string, args ...any) {
	color.New(color.FgRed).Fprintf(w, "Error: "+message+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, message+"\n", args...)
}

// PrintInfo prints an informational message
func PrintInfo(w io.Writer, message string, args ...any) {
	color.New(color.FgCyan).Fprintf(w, message+"\n", args...)
}
