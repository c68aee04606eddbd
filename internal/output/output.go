// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format is an output format selected with --output.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates s. "pretty" is accepted as a synonym for table and
// the empty string selects the default.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "table", "pretty":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid output format %q: must be table, json, or yaml", s)
	}
}

// Tabular is implemented by values that can be shown as a table row.
type Tabular interface {
	Headers() []string
	Row() []string
}

// List renders items. Table output always prints the header line, even for an
// empty list; JSON prints [] rather than null.
func List[T Tabular](w io.Writer, format Format, items []T) error {
	switch format {
	case FormatJSON:
		if items == nil {
			items = []T{}
		}
		return writeJSON(w, items)
	case FormatYAML:
		if items == nil {
			items = []T{}
		}
		return writeYAML(w, items)
	default:
		var zero T
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, it.Row())
		}
		return writeTable(w, zero.Headers(), rows)
	}
}

// Item renders a single value.
func Item(w io.Writer, format Format, item Tabular) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, item)
	case FormatYAML:
		return writeYAML(w, item)
	default:
		return writeTable(w, item.Headers(), [][]string{item.Row()})
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	// Convert through JSON to get consistent keys (json tags).
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var m any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Close()
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)

	upper := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(h)
	}
	fmt.Fprintln(tw, strings.Join(upper, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}
