// ABOUTME: Structured and plain-text formatters
// ABOUTME: JSON and YAML serialize Table.Data; text prints one field per line

package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// JSONFormatter serializes Table.Data as JSON
type JSONFormatter struct {
	w      io.Writer
	pretty bool
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(w io.Writer, pretty bool) *JSONFormatter {
	return &JSONFormatter{w: w, pretty: pretty}
}

// Format writes the data as JSON
func (f *JSONFormatter) Format(t *Table) error {
	var output []byte
	var err error

	data := dataOf(t)
	if f.pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(f.w, string(output))
	return nil
}

// YAMLFormatter serializes Table.Data as YAML
type YAMLFormatter struct {
	w io.Writer
}

// NewYAMLFormatter creates a YAML formatter
func NewYAMLFormatter(w io.Writer) *YAMLFormatter {
	return &YAMLFormatter{w: w}
}

// Format writes the data as YAML
func (f *YAMLFormatter) Format(t *Table) error {
	output, err := yaml.Marshal(dataOf(t))
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Fprint(f.w, string(output))
	return nil
}

// TextFormatter prints each row as "Header: value" lines
type TextFormatter struct {
	w io.Writer
}

// NewTextFormatter creates a text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{w: w}
}

// Format writes rows as blocks separated by blank lines. Two-column
// records print as a single block.
func (f *TextFormatter) Format(t *Table) error {
	if t == nil || len(t.Rows) == 0 {
		fmt.Fprintln(f.w, emptyMessage(t))
		return nil
	}

	if isRecord(t) {
		for _, row := range t.Rows {
			fmt.Fprintf(f.w, "%s: %s\n", row[0], row[1])
		}
		return nil
	}

	for i, row := range t.Rows {
		if i > 0 {
			fmt.Fprintln(f.w)
		}
		for j, cell := range row {
			if j < len(t.Headers) {
				fmt.Fprintf(f.w, "%s: %s\n", t.Headers[j], cell)
			}
		}
	}
	return nil
}

func isRecord(t *Table) bool {
	return len(t.Headers) == 2 && strings.EqualFold(t.Headers[0], "Field")
}

// dataOf returns what structured formats serialize, never nil for tables
func dataOf(t *Table) any {
	if t == nil {
		return []any{}
	}
	if t.Data != nil {
		return t.Data
	}
	rows := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]string, len(row))
		for j, cell := range row {
			if j < len(t.Headers) {
				m[t.Headers[j]] = cell
			}
		}
		rows = append(rows, m)
	}
	return rows
}
