package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// Format represents the output format for rendering a report.
type Format int

const (
	// FormatText renders diagnostics in a human-readable text format.
	FormatText Format = iota
	// FormatJSON renders diagnostics as a JSON document.
	FormatJSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name into a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("diag: unsupported format %q", name)
	}
}

// Reporter renders a report to an output writer.
type Reporter struct {
	writer io.Writer
	format Format
}

// NewReporter creates a new Reporter with the specified output writer and format.
func NewReporter(writer io.Writer, format Format) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Write renders the report. Diagnostics are grouped errors-first while
// keeping their recording order within each severity, so the output stays
// stable across runs of the same input.
func (r *Reporter) Write(report *Report) error {
	if report == nil || report.Len() == 0 {
		return nil
	}

	diagnostics := report.Diagnostics()
	sort.SliceStable(diagnostics, func(i, j int) bool {
		return diagnostics[i].Severity < diagnostics[j].Severity
	})

	switch r.format {
	case FormatText:
		return r.writeText(diagnostics)
	case FormatJSON:
		return r.writeJSON(diagnostics)
	default:
		return fmt.Errorf("diag: unsupported format: %s", r.format)
	}
}

func (r *Reporter) writeText(diagnostics []Diagnostic) error {
	for _, d := range diagnostics {
		if _, err := fmt.Fprintln(r.writer, d.String()); err != nil {
			return fmt.Errorf("diag: write text output: %w", err)
		}
	}
	return nil
}

func (r *Reporter) writeJSON(diagnostics []Diagnostic) error {
	output := struct {
		Diagnostics []Diagnostic `json:"diagnostics"`
	}{
		Diagnostics: diagnostics,
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("diag: encode JSON output: %w", err)
	}
	return nil
}
