// Package errors provides structured error types for the colvars proxy.
//
// Errors are categorized by Component (which part of the proxy reported the
// failure) and Kind (how the caller must react). The four kinds have distinct
// control-flow consequences: unsupported capabilities are degraded around,
// input errors are fatal configuration problems, file errors let the caller
// decide whether to abort, and bug errors always indicate a defect in the
// calling code.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.ComponentAtoms, errors.KindInput).
//		Detail("atom %d was never requested", id).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfRange(errors.ComponentAtoms, index, length)
//	err := errors.Unsupported(errors.ComponentEngine, "frame tracking")
//
// All errors implement the standard error interface and support errors.Is/As.
// A target with an empty Component matches on Kind alone:
//
//	stderrors.Is(err, &errors.Error{Kind: errors.KindBug})
package errors
