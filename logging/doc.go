// Package logging defines the reporting sink contract between the colvars
// proxy and its embedding program.
//
// The proxy routes every loggable event through a single externally supplied
// Sink rather than writing to any output itself. The Sink distinguishes
// Log, Error, FatalError and Exit because they have different control-flow
// consequences for the host engine; see the Sink documentation.
//
// Adapters included:
//
//   - ZapSink wraps a *zap.Logger with optional fatal/exit hooks
//   - NopSink discards everything
//   - TestSink captures messages for assertions in tests
package logging
