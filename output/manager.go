package output

import (
	"io"
	"os"

	"github.com/leelasd/colvars/errors"
	"github.com/leelasd/colvars/logging"
)

// Opener maps a logical stream name to an open handle. The concrete host
// decides how a name maps to storage; it is not a filesystem path contract.
type Opener interface {
	Open(name string) (io.WriteCloser, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(name string) (io.WriteCloser, error)

func (f OpenerFunc) Open(name string) (io.WriteCloser, error) { return f(name) }

// FileOpener opens channels as files created under an optional prefix.
// This is the default host mapping.
type FileOpener struct {
	Prefix string
}

func (o FileOpener) Open(name string) (io.WriteCloser, error) {
	return os.Create(o.Prefix + name)
}

type channel struct {
	name   string
	handle io.WriteCloser
}

// Manager maps logical stream names to open handles, at most one handle
// per name at any time. Channels open lazily on first use. Bookkeeping is
// a linear scan over a small slice; simultaneously open channels number in
// the tens, not thousands.
//
// Not safe for concurrent use; the host serializes calls per replica.
type Manager struct {
	opener   Opener
	sink     logging.Sink
	channels []channel
}

// NewManager creates a manager that opens channels through opener and
// reports failures through sink. A nil sink discards reports.
func NewManager(opener Opener, sink logging.Sink) *Manager {
	if sink == nil {
		sink = logging.NopSink{}
	}
	return &Manager{
		opener: opener,
		sink:   sink,
	}
}

// Get returns the open handle for name, opening it on first use. An open
// failure is a file error, reported through the sink; the caller decides
// whether to abort the run.
func (m *Manager) Get(name string) (io.Writer, error) {
	for i := range m.channels {
		if m.channels[i].name == name {
			return m.channels[i].handle, nil
		}
	}

	handle, err := m.opener.Open(name)
	if err != nil {
		ferr := errors.File(errors.ComponentOutput, name, err)
		m.sink.Error(ferr.Error())
		return nil, ferr
	}

	m.channels = append(m.channels, channel{name: name, handle: handle})
	return handle, nil
}

// Close closes the channel with the given name and removes its bookkeeping
// entry. Closing a name that is not open is a bug error: it indicates a
// defect in the calling code, not a recoverable runtime condition.
func (m *Manager) Close(name string) error {
	for i := range m.channels {
		if m.channels[i].name == name {
			err := m.channels[i].handle.Close()
			m.channels = append(m.channels[:i], m.channels[i+1:]...)
			if err != nil {
				ferr := errors.New(errors.ComponentOutput, errors.KindFile).
					Detail("closing output %q", name).
					Cause(err).
					Build()
				m.sink.Error(ferr.Error())
				return ferr
			}
			return nil
		}
	}

	berr := errors.Bug(errors.ComponentOutput,
		"trying to close output %q that wasn't open", name)
	m.sink.Error(berr.Error())
	return berr
}

// CloseAll closes every open channel, keeping the first error. Used at
// process teardown.
func (m *Manager) CloseAll() error {
	var first error
	for i := range m.channels {
		if err := m.channels[i].handle.Close(); err != nil && first == nil {
			first = errors.New(errors.ComponentOutput, errors.KindFile).
				Detail("closing output %q", m.channels[i].name).
				Cause(err).
				Build()
		}
	}
	m.channels = m.channels[:0]
	return first
}

// Len returns the number of currently open channels.
func (m *Manager) Len() int {
	return len(m.channels)
}
