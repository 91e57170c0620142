package errtree

import (
	"reflect"
	"strings"
)

// Noter is implemented by errors carrying supplementary notes. Notes are
// appended to the error message when rendering the text that patterns are
// matched against.
type Noter interface {
	Notes() []string
}

// FatalError marks error types whose failures must never be silently
// ignored. Groups expecting at least one fatal member are rendered as
// FatalErrorGroup in diagnostics.
type FatalError interface {
	error
	Fatal()
}

// Severity classifies error types for diagnostic rendering.
type Severity int

const (
	SeverityRecoverable Severity = iota
	SeverityFatal
)

var (
	errType   = reflect.TypeOf((*error)(nil)).Elem()
	fatalType = reflect.TypeOf((*FatalError)(nil)).Elem()
)

type group interface {
	Unwrap() []error
}

// IsGroup reports whether err is an error group, i.e. wraps an ordered
// collection of child errors.
func IsGroup(err error) bool {
	_, ok := err.(group)
	return ok
}

// Children returns the ordered child errors of a group, or nil for a leaf.
func Children(err error) []error {
	g, ok := err.(group)
	if !ok {
		return nil
	}
	return g.Unwrap()
}

// Flatten recursively replaces every group in errs with its own children,
// depth-first and order-preserving. Flattening an already flat sequence is
// a no-op, so the operation is idempotent.
func Flatten(errs []error) []error {
	res := make([]error, 0, len(errs))
	for _, err := range errs {
		if IsGroup(err) {
			res = append(res, Flatten(Children(err))...)
		} else {
			res = append(res, err)
		}
	}
	return res
}

// Render returns the text that patterns are matched against: the error
// message joined with any supplementary notes by newlines.
func Render(err error) string {
	if n, ok := err.(Noter); ok {
		if notes := n.Notes(); len(notes) > 0 {
			return strings.Join(append([]string{err.Error()}, notes...), "\n")
		}
	}
	return err.Error()
}

// SeverityOf returns the severity class of an error type.
func SeverityOf(t reflect.Type) Severity {
	if t.Implements(fatalType) {
		return SeverityFatal
	}
	return SeverityRecoverable
}

// IsErrorType reports whether t implements the error interface.
func IsErrorType(t reflect.Type) bool {
	return t != nil && t.Implements(errType)
}

// TypeName returns the quoted name of an error type as used in diagnostics.
func TypeName(t reflect.Type) string {
	return "'" + t.String() + "'"
}

// TypeNameOf returns the quoted name of err's concrete type.
func TypeNameOf(err error) string {
	return TypeName(reflect.TypeOf(err))
}
