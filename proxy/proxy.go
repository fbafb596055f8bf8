package proxy

import (
	"github.com/google/uuid"

	"github.com/leelasd/colvars"
	"github.com/leelasd/colvars/atoms"
	"github.com/leelasd/colvars/errors"
	"github.com/leelasd/colvars/logging"
	"github.com/leelasd/colvars/output"
	"github.com/leelasd/colvars/replica"
)

// Proxy mediates between the collective-variable biasing module and one
// host engine. It owns the atom slot registry and the output channel
// bookkeeping; the host owns the true simulation state. A program may run
// several simulations at once by creating one proxy per instance; there is
// no ambient global state.
//
// All methods except the replica coordination calls are synchronous and
// must be serialized by the host within one replica.
type Proxy struct {
	engine   colvars.Engine
	sink     logging.Sink
	registry *atoms.Registry
	channels *output.Manager
	comm     replica.Comm
	runID    string

	inputPrefix         string
	outputPrefix        string
	restartOutputPrefix string

	energy float64
}

// Option configures a Proxy.
type Option func(*config)

type config struct {
	sink    logging.Sink
	comm    replica.Comm
	opener  output.Opener
	input   string
	output  string
	restart string
}

// WithSink routes the proxy's loggable events to sink instead of
// discarding them.
func WithSink(sink logging.Sink) Option {
	return func(c *config) { c.sink = sink }
}

// WithComm installs the replica coordination transport. Without it the
// proxy runs as a single replica.
func WithComm(comm replica.Comm) Option {
	return func(c *config) { c.comm = comm }
}

// WithOpener overrides how output channel names map to storage.
func WithOpener(opener output.Opener) Option {
	return func(c *config) { c.opener = opener }
}

// WithPrefixes sets the input, output and restart-output prefixes the
// biasing module prepends to the file names it derives.
func WithPrefixes(input, out, restartOutput string) Option {
	return func(c *config) {
		c.input = input
		c.output = out
		c.restart = restartOutput
	}
}

// New creates a proxy around a host engine.
func New(engine colvars.Engine, opts ...Option) (*Proxy, error) {
	if engine == nil {
		return nil, errors.Input(errors.ComponentProxy, "host engine is required")
	}

	cfg := config{
		sink: logging.NopSink{},
		comm: replica.Disabled{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.opener == nil {
		cfg.opener = output.FileOpener{Prefix: cfg.output}
	}

	p := &Proxy{
		engine:              engine,
		sink:                cfg.sink,
		registry:            atoms.NewRegistry(),
		channels:            output.NewManager(cfg.opener, cfg.sink),
		comm:                cfg.comm,
		runID:               uuid.NewString(),
		inputPrefix:         cfg.input,
		outputPrefix:        cfg.output,
		restartOutputPrefix: cfg.restart,
	}

	p.sink.Log("colvars proxy initialized, run " + p.runID)
	return p, nil
}

// RunID returns the unique identifier of this proxy instance.
func (p *Proxy) RunID() string { return p.runID }

// InputPrefix returns the prefix for input files (restarts excluded).
func (p *Proxy) InputPrefix() string { return p.inputPrefix }

// OutputPrefix returns the prefix for output files.
func (p *Proxy) OutputPrefix() string { return p.outputPrefix }

// RestartOutputPrefix returns the prefix for output restart files.
func (p *Proxy) RestartOutputPrefix() string { return p.restartOutputPrefix }

// BeginStep starts a new simulation step: pending colvar forces are zeroed
// exactly once, before any component contributes, and the energy
// accumulator is reset. The host calls this before refreshing the atom
// snapshot.
func (p *Proxy) BeginStep() {
	p.registry.ClearForces()
	p.energy = 0
}

// AddEnergy accumulates restraint energy for the current step.
func (p *Proxy) AddEnergy(e float64) {
	p.energy += e
}

// DrainEnergy returns the restraint energy accumulated this step and
// resets the accumulator. The host reads it once at step end.
func (p *Proxy) DrainEnergy() float64 {
	e := p.energy
	p.energy = 0
	return e
}

// Close closes all open output channels. Called at process teardown.
func (p *Proxy) Close() error {
	return p.channels.CloseAll()
}

// Log records an informational message through the reporting sink.
func (p *Proxy) Log(msg string) {
	p.sink.Log(msg)
}

// Error reports a recoverable error; the sink's owner decides whether to
// continue.
func (p *Proxy) Error(msg string) {
	p.sink.Error(msg)
}

// FatalError reports an error that must abort the current run.
func (p *Proxy) FatalError(msg string) {
	p.sink.FatalError(msg)
}

// Exit reports a planned, non-error termination.
func (p *Proxy) Exit(msg string) {
	p.sink.Exit(msg)
}
