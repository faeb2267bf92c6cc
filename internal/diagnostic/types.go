package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"tablefn/internal/common"
)

// Diagnostics collects what a check of a table or a definition file found,
// split by severity. Each list keeps the order entries were reported in.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one finding.
type Diagnostic struct {
	Severity Severity
	// Code is a stable snake_case identifier, e.g. "conflict" or "unknown_type".
	Code    string
	Message string
	// Subject locates the finding: "rows.csv:3", "rows.csv:0 / rows.csv:1"
	// for a row pair, or a shape name for definition problems.
	Subject string
	// FieldPath is the dotted path of the field involved, if any.
	FieldPath string
}

// Severity orders findings: errors make a table or definition unusable,
// warnings and infos do not.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func push(list *[]Diagnostic, sev Severity, code, message, subject, fieldPath string) {
	*list = append(*list, Diagnostic{
		Severity:  sev,
		Code:      code,
		Message:   message,
		Subject:   subject,
		FieldPath: fieldPath,
	})
}

// AddError records a finding that makes the table or definition unusable.
func (d *Diagnostics) AddError(code, message, subject, fieldPath string) {
	push(&d.Errors, SeverityError, code, message, subject, fieldPath)
}

// AddWarning records a suspicious but harmless finding, like a duplicate row.
func (d *Diagnostics) AddWarning(code, message, subject, fieldPath string) {
	push(&d.Warnings, SeverityWarning, code, message, subject, fieldPath)
}

// AddInfo records a purely informational finding.
func (d *Diagnostics) AddInfo(code, message, subject, fieldPath string) {
	push(&d.Infos, SeverityInfo, code, message, subject, fieldPath)
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends other's findings after d's, severity by severity.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Error joins the error findings with "; ", or returns nil when there are none.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "[subject] path: [code] message", dropping empty parts.
func (d Diagnostic) String() string {
	var where []string
	if d.Subject != "" {
		where = append(where, "["+d.Subject+"]")
	}

	if d.FieldPath != "" {
		where = append(where, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(where) == 0 {
		return msg
	}

	return strings.Join(where, " ") + ": " + msg
}
