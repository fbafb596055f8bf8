package replica

import (
	"github.com/leelasd/colvars/errors"
)

// Comm is the coordination contract across a fixed set of peer simulation
// replicas. Implementations are provided by the concrete transport on the
// host side; this package only fixes the semantics.
//
// Send and Recv are point-to-point and blocking. A Recv from replica R
// observing a prior Send from R sees that message's full payload
// atomically. Barrier, Send and Recv are the only suspension points the
// proxy ever blocks in; timeout policy, if any, belongs to the transport.
type Comm interface {
	// Enabled reports whether multi-replica support is available and
	// active.
	Enabled() bool

	// Index returns this replica's 0-based index.
	Index() int

	// Count returns the total number of replicas, at least 1.
	Count() int

	// Barrier blocks until every replica has reached the barrier.
	Barrier() error

	// Send delivers msg to the destination replica, blocking until the
	// peer has received it.
	Send(msg []byte, dest int) error

	// Recv blocks until a message from the source replica arrives, copies
	// it into buf and returns the number of bytes copied. A message longer
	// than buf is an input error; truncation is never silent.
	Recv(buf []byte, src int) (int, error)
}

// Disabled is the Comm used when multi-replica support is off: one
// replica, index zero. Barrier is a no-op; Send and Recv report an
// unsupported operation rather than crashing.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) Index() int { return 0 }

func (Disabled) Count() int { return 1 }

func (Disabled) Barrier() error { return nil }

func (Disabled) Send(msg []byte, dest int) error {
	return errors.Unsupported(errors.ComponentReplica, "replica communication")
}

func (Disabled) Recv(buf []byte, src int) (int, error) {
	return 0, errors.Unsupported(errors.ComponentReplica, "replica communication")
}
