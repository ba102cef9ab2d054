package ot

import (
	"errors"
	"fmt"
)

// Kinds of fatal errors. Every error returned from parsing wraps exactly one of
// them, so clients may check with errors.Is.
var (
	ErrIO                = errors.New("font file cannot be read")
	ErrCapacity          = errors.New("font exceeds capacity")
	ErrMissingTable      = errors.New("required table missing")
	ErrUnsupportedFormat = errors.New("unsupported table format")
	ErrMalformedFont     = errors.New("malformed font data")
)

// ErrorSeverity represents the severity level of a font parsing error.
type ErrorSeverity int

const (
	// SeverityCritical indicates a severe error that makes the font unusable.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates a significant error which does not prevent usage.
	SeverityMajor
	// SeverityMinor indicates a minor issue that can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered during font parsing.
type FontError struct {
	Kind     error         // one of ErrIO, ErrCapacity, ErrMissingTable, …
	Table    Tag           // The font table where the error occurred (e.g., "cmap")
	Section  string        // Specific section within the table (e.g., "EncodingRecord")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Offset   uint32        // Byte offset in the font file where the error occurred (0 if unknown)
}

// Error implements the error interface.
func (e FontError) Error() string {
	table := e.Table.String()
	if e.Table == 0 {
		table = "font"
	}
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, table, e.Section, e.Issue)
}

// Unwrap returns the kind of the error.
func (e FontError) Unwrap() error {
	return e.Kind
}

// FontWarning represents a non-critical issue encountered during font parsing.
// Warnings indicate potential problems but do not prevent font usage.
type FontWarning struct {
	Table  Tag    // The font table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	table := w.Table.String()
	if w.Table == 0 {
		table = "font"
	}
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", table, w.Issue)
}

// errorCollector accumulates errors and warnings during font parsing.
type errorCollector struct {
	errors   []FontError
	warnings []FontWarning
}

// fail records a critical error of a given kind and returns it.
func (ec *errorCollector) fail(kind error, table Tag, section string, issue string, offset uint32) error {
	err := FontError{
		Kind:     kind,
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: SeverityCritical,
		Offset:   offset,
	}
	ec.errors = append(ec.errors, err)
	tracer().Errorf(err.Error())
	return err
}

// addWarning records a parsing warning.
func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	w := FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	}
	ec.warnings = append(ec.warnings, w)
	tracer().Infof(w.String())
}

// hasWarnings returns true if any warnings have been recorded.
func (ec *errorCollector) hasWarnings() bool {
	return len(ec.warnings) > 0
}
