package core

import (
	"fmt"
	"strings"
)

// DiagnosticKind classifies the problems a layout stage may run into.
type DiagnosticKind uint8

// Kinds of diagnostics. All of them are recoverable: layout continues with
// a best-effort result.
const (
	NoDiagnostic        DiagnosticKind = iota
	Overflow                           // content wider than its line or box
	UnsupportedProperty                // CSS property ignored
	DegradedShaping                    // script needs shaping we do not do
	FontFallback                       // glyph taken from a fallback font
	SkippedSubtree                     // malformed input region skipped
	InvalidValue                       // property value could not be parsed
)

func (k DiagnosticKind) String() string {
	switch k {
	case Overflow:
		return "overflow"
	case UnsupportedProperty:
		return "unsupported property"
	case DegradedShaping:
		return "degraded shaping"
	case FontFallback:
		return "font fallback"
	case SkippedSubtree:
		return "skipped subtree"
	case InvalidValue:
		return "invalid value"
	}
	return "diagnostic"
}

// Severity tells how bad a diagnostic is.
type Severity uint8

// Warnings leave the result intact, errors mean a part of the input did not
// make it into the result.
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
	}
	return "error"
}

// Location is a position in the input. Zero values mean "unknown".
// Line and Column are 1-based, Path is an element path like
// "html/body/div[2]/p".
type Location struct {
	Line, Column int
	Offset       int
	Path         string
}

// IsZero is true for an unknown location.
func (loc Location) IsZero() bool {
	return loc.Line == 0 && loc.Column == 0 && loc.Offset == 0 && loc.Path == ""
}

func (loc Location) String() string {
	var b strings.Builder
	if loc.Line > 0 {
		fmt.Fprintf(&b, "%d:%d", loc.Line, loc.Column)
	} else if loc.Offset > 0 {
		fmt.Fprintf(&b, "@%d", loc.Offset)
	}
	if loc.Path != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(loc.Path)
	}
	return b.String()
}

// Diagnostic is a single problem report.
type Diagnostic struct {
	Kind     DiagnosticKind
	Severity Severity
	Location Location
	Err      error
}

func (d Diagnostic) Error() string {
	var msg string
	if d.Err != nil {
		msg = UserMessage(d.Err)
	}
	if d.Location.IsZero() {
		return fmt.Sprintf("%s: %s: %s", d.Severity, d.Kind, msg)
	}
	return fmt.Sprintf("%s: %s at %s: %s", d.Severity, d.Kind, d.Location, msg)
}

func (d Diagnostic) Unwrap() error {
	return d.Err
}

// Diagnostics is the list of diagnostics returned alongside a layout result.
// The zero value is an empty list ready to use.
type Diagnostics []Diagnostic

// Add appends diagnostics, typically the ones of a sub-stage.
func (dl *Diagnostics) Add(ds ...Diagnostic) {
	*dl = append(*dl, ds...)
}

// Warnf records a warning of kind k.
func (dl *Diagnostics) Warnf(k DiagnosticKind, loc Location, format string, v ...interface{}) {
	err := Error(codeForKind(k), format, v...)
	tracer().Infof("%s: %s", k, UserMessage(err))
	*dl = append(*dl, Diagnostic{Kind: k, Severity: SeverityWarning, Location: loc, Err: err})
}

// Errorf records an error of kind k. Errors do not stop layout either.
func (dl *Diagnostics) Errorf(k DiagnosticKind, loc Location, format string, v ...interface{}) {
	err := Error(codeForKind(k), format, v...)
	tracer().Errorf("%s: %s", k, UserMessage(err))
	*dl = append(*dl, Diagnostic{Kind: k, Severity: SeverityError, Location: loc, Err: err})
}

// Count returns the number of diagnostics of kind k.
func (dl Diagnostics) Count(k DiagnosticKind) int {
	n := 0
	for _, d := range dl {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// OfKind returns the diagnostics of kind k.
func (dl Diagnostics) OfKind(k DiagnosticKind) Diagnostics {
	var r Diagnostics
	for _, d := range dl {
		if d.Kind == k {
			r = append(r, d)
		}
	}
	return r
}

// HasErrors is true if any diagnostic has error severity.
func (dl Diagnostics) HasErrors() bool {
	for _, d := range dl {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err returns the first error-severity diagnostic, or nil.
func (dl Diagnostics) Err() error {
	for _, d := range dl {
		if d.Severity == SeverityError {
			return d
		}
	}
	return nil
}

func codeForKind(k DiagnosticKind) int {
	switch k {
	case Overflow:
		return EOVERFLOW
	case UnsupportedProperty, DegradedShaping:
		return EUNSUPPORTED
	case FontFallback:
		return EMISSING
	case SkippedSubtree:
		return EPARSE
	case InvalidValue:
		return EINVALID
	}
	return EINTERNAL
}
