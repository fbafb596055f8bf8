package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	fallback     *zap.Logger
	fallbackOnce sync.Once
)

// nop returns the shared no-op logger used when no logger is supplied.
func nop() *zap.Logger {
	fallbackOnce.Do(func() {
		fallback = zap.NewNop()
	})
	return fallback
}

// ZapSink routes proxy events to a zap logger. FatalError and Exit never
// terminate the process themselves; optional hooks let the embedding
// program decide (an MD engine typically aborts the step loop rather than
// calling os.Exit).
type ZapSink struct {
	logger  *zap.Logger
	onFatal func(msg string)
	onExit  func(msg string)
}

// ZapOption configures a ZapSink.
type ZapOption func(*ZapSink)

// WithOnFatal installs a hook invoked after a FatalError is logged.
func WithOnFatal(fn func(msg string)) ZapOption {
	return func(s *ZapSink) { s.onFatal = fn }
}

// WithOnExit installs a hook invoked after an Exit is logged.
func WithOnExit(fn func(msg string)) ZapOption {
	return func(s *ZapSink) { s.onExit = fn }
}

// NewZapSink wraps a zap logger as a Sink. A nil logger falls back to a
// no-op logger.
func NewZapSink(logger *zap.Logger, opts ...ZapOption) *ZapSink {
	if logger == nil {
		logger = nop()
	}
	s := &ZapSink{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ZapSink) Log(msg string) {
	s.logger.Info(msg)
}

func (s *ZapSink) Error(msg string) {
	s.logger.Error(msg)
}

func (s *ZapSink) FatalError(msg string) {
	s.logger.Error(msg, zap.Bool("fatal", true))
	if s.onFatal != nil {
		s.onFatal(msg)
	}
}

func (s *ZapSink) Exit(msg string) {
	s.logger.Info(msg, zap.Bool("exit", true))
	if s.onExit != nil {
		s.onExit(msg)
	}
}
