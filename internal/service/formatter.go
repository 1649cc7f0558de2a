package service

import (
	"encoding/json"
	"fmt"
	"io"
)

// Formatter renders a RunReport to a writer. mc-analyzer supports two
// formats: "text" and "json".
type Formatter interface {
	Write(report RunReport, w io.Writer) error
}

// TextFormatter renders the per-file layout: a header, a pass/fail
// line, one diagnostic per line, then totals.
type TextFormatter struct{}

// NewTextFormatter returns the default human-readable formatter.
func NewTextFormatter() *TextFormatter { return &TextFormatter{} }

func (f *TextFormatter) Write(report RunReport, w io.Writer) error {
	for _, file := range report.Files {
		fmt.Fprintf(w, "=== Analyzing %s ===\n", file.Path)
		if file.Err != "" {
			fmt.Fprintf(w, "Error: %s\n", file.Err)
			continue
		}
		if len(file.Diagnostics) == 0 {
			fmt.Fprintln(w, "No errors found.")
			continue
		}
		fmt.Fprintln(w, "Errors found:")
		for _, d := range file.Diagnostics {
			fmt.Fprintln(w, d.String())
		}
	}
	fmt.Fprintf(w, "\nTotal: %d, Passed: %d, Failed: %d\n", report.Total, report.Passed, report.Failed)
	return nil
}

// JSONFormatter renders the RunReport as indented JSON, the
// machine-readable counterpart to TextFormatter.
type JSONFormatter struct{}

// NewJSONFormatter returns the machine-readable formatter.
func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

func (f *JSONFormatter) Write(report RunReport, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// ForFormat resolves a Formatter by the config.Config.Format string.
func ForFormat(format string) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTextFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
