package logging

// Sink receives every loggable event the proxy produces. The three error
// methods carry distinct control-flow consequences for the caller that owns
// the sink: Error means continue but flag, FatalError means abort the
// current run, and Exit means planned, non-error termination. The proxy
// itself never retries or aborts; those decisions belong to the sink's
// owner.
type Sink interface {
	// Log records an informational message.
	Log(msg string)

	// Error records a recoverable error condition.
	Error(msg string)

	// FatalError records an error condition that must abort the run.
	FatalError(msg string)

	// Exit records a planned termination.
	Exit(msg string)
}

// NopSink discards everything. Useful for tests and minimal setups.
type NopSink struct{}

func (NopSink) Log(string)        {}
func (NopSink) Error(string)      {}
func (NopSink) FatalError(string) {}
func (NopSink) Exit(string)       {}

// TestSink captures messages for inspection in tests.
type TestSink struct {
	Logs   []string
	Errors []string
	Fatals []string
	Exits  []string
}

func (s *TestSink) Log(msg string)        { s.Logs = append(s.Logs, msg) }
func (s *TestSink) Error(msg string)      { s.Errors = append(s.Errors, msg) }
func (s *TestSink) FatalError(msg string) { s.Fatals = append(s.Fatals, msg) }
func (s *TestSink) Exit(msg string)       { s.Exits = append(s.Exits, msg) }

// Reset clears all captured messages.
func (s *TestSink) Reset() {
	s.Logs = nil
	s.Errors = nil
	s.Fatals = nil
	s.Exits = nil
}
