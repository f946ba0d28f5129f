package as2js

import (
	"fmt"
	"strings"

	"github.com/as2js-go/as2js/internal/messages"
)

// Severity mirrors messages.Level at the facade boundary, so callers
// outside internal/ never need to import the messages package directly
// just to branch on it.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

func newSeverity(l messages.Level) Severity {
	switch l {
	case messages.WARNING:
		return SeverityWarning
	case messages.FATAL:
		return SeverityFatal
	default:
		return SeverityError
	}
}

// Diagnostic is one message emitted during Parse or Compile, a
// facade-friendly copy of messages.Message (spec §4.6).
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Filename string
	Line     int
	Column   int
}

func newDiagnostic(m messages.Message) Diagnostic {
	return Diagnostic{
		Severity: newSeverity(m.Level),
		Code:     m.Code.String(),
		Message:  m.Text,
		Filename: m.Pos.Filename,
		Line:     m.Pos.Line,
		Column:   m.Pos.Column,
	}
}

// IsError reports whether d should block a successful compile.
func (d Diagnostic) IsError() bool { return d.Severity == SeverityError || d.Severity == SeverityFatal }

// IsWarning reports whether d is merely advisory.
func (d Diagnostic) IsWarning() bool { return d.Severity == SeverityWarning }

func (d Diagnostic) String() string {
	if d.Filename == "" {
		return fmt.Sprintf("%s:%s: %s", d.Severity, d.Code, d.Message)
	}
	return fmt.Sprintf("%s:%s: in %s(%d:%d): %s", d.Severity, d.Code, d.Filename, d.Line, d.Column, d.Message)
}

// CompileError reports that Parse or Compile's pipeline stopped with at
// least one ERROR/FATAL diagnostic. Stage names which pipeline step
// produced it ("parsing", "resolving", "reading"), mirroring the
// teacher's CompileError.Stage field.
type CompileError struct {
	Stage       string
	Diagnostics []Diagnostic
}

func (e *CompileError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed with %d diagnostic(s)", e.Stage, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		if d.IsError() {
			sb.WriteString("\n  ")
			sb.WriteString(d.String())
		}
	}
	return sb.String()
}

// Errors returns only the ERROR/FATAL diagnostics.
func (e *CompileError) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range e.Diagnostics {
		if d.IsError() {
			out = append(out, d)
		}
	}
	return out
}

// Warnings returns only the WARNING diagnostics.
func (e *CompileError) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range e.Diagnostics {
		if d.IsWarning() {
			out = append(out, d)
		}
	}
	return out
}
