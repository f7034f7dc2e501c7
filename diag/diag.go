// Package diag collects structured diagnostics produced while a domain
// blueprint is resolved. Resolution components record errors and warnings
// into a Report; CLI and reporting layers decide how a Report is displayed.
package diag

import "fmt"

// Code identifies the condition a diagnostic reports. Codes are
// string-based for debuggability and natural JSON serialization.
type Code string

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	// SeverityError indicates a structural problem that blocks generation.
	SeverityError Severity = iota
	// SeverityWarning indicates a suspect construct that does not block generation.
	SeverityWarning
	// SeverityInfo indicates supplementary information.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Diagnostic represents a single finding raised during resolution.
type Diagnostic struct {
	// Code identifies the condition that raised the diagnostic.
	Code Code `json:"code" yaml:"code"`
	// Severity indicates whether the finding blocks generation.
	Severity Severity `json:"severity" yaml:"severity"`
	// Aggregate names the aggregate the finding belongs to, when known.
	Aggregate string `json:"aggregate,omitempty" yaml:"aggregate,omitempty"`
	// Entity names the entity the finding belongs to, when known.
	Entity string `json:"entity,omitempty" yaml:"entity,omitempty"`
	// Message is a human-readable description of the finding.
	Message string `json:"message" yaml:"message"`
	// Context provides additional metadata keyed by attribute name.
	Context map[string]string `json:"context,omitempty" yaml:"context,omitempty"`
}

// String returns a formatted single-line representation of the diagnostic.
func (d Diagnostic) String() string {
	scope := d.Aggregate
	if d.Entity != "" {
		if scope != "" {
			scope += "/"
		}
		scope += d.Entity
	}
	if scope != "" {
		return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Code, scope, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Code, d.Message)
}

// New creates a diagnostic with the given code, severity, and message.
func New(code Code, severity Severity, message string) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: severity,
		Message:  message,
	}
}

// Errorf creates an error-severity diagnostic with a formatted message.
func Errorf(code Code, format string, args ...any) Diagnostic {
	return New(code, SeverityError, fmt.Sprintf(format, args...))
}

// Warnf creates a warning-severity diagnostic with a formatted message.
func Warnf(code Code, format string, args ...any) Diagnostic {
	return New(code, SeverityWarning, fmt.Sprintf(format, args...))
}

// WithAggregate sets the aggregate scope and returns the modified diagnostic.
func (d Diagnostic) WithAggregate(name string) Diagnostic {
	d.Aggregate = name
	return d
}

// WithEntity sets the entity scope and returns the modified diagnostic.
func (d Diagnostic) WithEntity(name string) Diagnostic {
	d.Entity = name
	return d
}

// WithContext adds a context attribute and returns the modified diagnostic.
func (d Diagnostic) WithContext(key, value string) Diagnostic {
	if d.Context == nil {
		d.Context = make(map[string]string)
	}
	d.Context[key] = value
	return d
}

// Report accumulates diagnostics in the order they were recorded. The
// recording order is deterministic for a given input, so a Report can be
// compared and rendered without further sorting.
type Report struct {
	diagnostics []Diagnostic
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{}
}

// Add appends a diagnostic to the report.
func (r *Report) Add(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

// Merge appends all diagnostics from other, preserving their order.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.diagnostics = append(r.diagnostics, other.diagnostics...)
}

// Diagnostics returns the recorded diagnostics in recording order.
func (r *Report) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(r.diagnostics))
	copy(out, r.diagnostics)
	return out
}

// Errors returns the error-severity diagnostics in recording order.
func (r *Report) Errors() []Diagnostic {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity diagnostics in recording order.
func (r *Report) Warnings() []Diagnostic {
	return r.filter(SeverityWarning)
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (r *Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

// Len returns the total number of recorded diagnostics.
func (r *Report) Len() int {
	return len(r.diagnostics)
}

func (r *Report) filter(severity Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.diagnostics {
		if d.Severity == severity {
			out = append(out, d)
		}
	}
	return out
}
