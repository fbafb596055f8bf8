package errors

import (
	"fmt"
	"strings"
)

// Component indicates which part of the proxy reported the error
type Component string

const (
	ComponentAtoms   Component = "atoms"   // atom slot registry
	ComponentOutput  Component = "output"  // output channel manager
	ComponentReplica Component = "replica" // replica coordination
	ComponentEngine  Component = "engine"  // host engine capability
	ComponentProxy   Component = "proxy"   // proxy composition / lifecycle
	ComponentScript  Component = "script"  // scripting callbacks
)

// Kind categorizes the error and decides how callers react
type Kind string

const (
	// KindUnsupported marks an optional host capability that is not
	// implemented. Reported, never fatal; the caller degrades.
	KindUnsupported Kind = "unsupported"

	// KindInput marks a violated caller precondition (bad index, bad
	// selection). Treated as a fatal configuration problem.
	KindInput Kind = "input"

	// KindFile marks an I/O failure on an output channel. The caller
	// decides whether to abort the run.
	KindFile Kind = "file"

	// KindBug marks an internal contract violation such as a double
	// close. Always fatal: it is a defect in the calling code, not in
	// user input.
	KindBug Kind = "bug"
)

// Error is the structured error type used throughout the proxy
type Error struct {
	Value     any
	Cause     error
	Component Component
	Kind      Kind
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Component))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with an empty
// Component matches on Kind alone, so sentinel values like
// &Error{Kind: KindBug} select a whole category.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Component != "" && t.Component != e.Component {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(component Component, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Component: component,
			Kind:      kind,
		},
	}
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Unsupported creates an unsupported-capability error
func Unsupported(component Component, what string) *Error {
	return &Error{
		Component: component,
		Kind:      KindUnsupported,
		Detail:    fmt.Sprintf("%s is not supported by this host engine", what),
	}
}

// Input creates a caller-precondition error
func Input(component Component, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Component: component,
		Kind:      KindInput,
		Detail:    detail,
	}
}

// OutOfRange creates an index-out-of-range input error
func OutOfRange(component Component, index, length int) *Error {
	return &Error{
		Component: component,
		Kind:      KindInput,
		Detail:    fmt.Sprintf("index %d out of range (length %d)", index, length),
		Value:     index,
	}
}

// File creates an output channel I/O error
func File(component Component, name string, cause error) *Error {
	return &Error{
		Component: component,
		Kind:      KindFile,
		Detail:    fmt.Sprintf("cannot write to output %q", name),
		Cause:     cause,
	}
}

// Bug creates an internal contract-violation error
func Bug(component Component, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Component: component,
		Kind:      KindBug,
		Detail:    detail,
	}
}

// Kind predicates used by callers that only branch on category

// IsUnsupported reports whether err is an unsupported-capability error
func IsUnsupported(err error) bool {
	return isKind(err, KindUnsupported)
}

// IsInput reports whether err is a caller-precondition error
func IsInput(err error) bool {
	return isKind(err, KindInput)
}

// IsFile reports whether err is an output I/O error
func IsFile(err error) bool {
	return isKind(err, KindFile)
}

// IsBug reports whether err is an internal contract violation
func IsBug(err error) bool {
	return isKind(err, KindBug)
}

func isKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
