package replica

import (
	"sync"

	"github.com/leelasd/colvars/errors"
)

// LocalHub is an in-process reference implementation of the Comm contract:
// every replica is a goroutine in the same process. It exists for the
// testbed and for tests of replica-coordinated code; a production
// transport lives on the host side.
type LocalHub struct {
	n         int
	mailboxes [][]chan []byte // mailboxes[dest][src], unbuffered
	barrier   *barrier
}

// NewLocalHub creates a hub for n replicas.
func NewLocalHub(n int) *LocalHub {
	if n < 1 {
		n = 1
	}
	mailboxes := make([][]chan []byte, n)
	for dest := range mailboxes {
		mailboxes[dest] = make([]chan []byte, n)
		for src := range mailboxes[dest] {
			mailboxes[dest][src] = make(chan []byte)
		}
	}
	return &LocalHub{
		n:         n,
		mailboxes: mailboxes,
		barrier:   newBarrier(n),
	}
}

// Count returns the number of replicas in the hub.
func (h *LocalHub) Count() int { return h.n }

// Replica returns the Comm endpoint for replica index.
func (h *LocalHub) Replica(index int) Comm {
	if index < 0 || index >= h.n {
		panic("replica: index out of range")
	}
	return &localComm{hub: h, index: index}
}

type localComm struct {
	hub   *LocalHub
	index int
}

func (c *localComm) Enabled() bool { return true }

func (c *localComm) Index() int { return c.index }

func (c *localComm) Count() int { return c.hub.n }

func (c *localComm) Barrier() error {
	c.hub.barrier.await()
	return nil
}

func (c *localComm) Send(msg []byte, dest int) error {
	if dest < 0 || dest >= c.hub.n {
		return errors.OutOfRange(errors.ComponentReplica, dest, c.hub.n)
	}
	if dest == c.index {
		return errors.Input(errors.ComponentReplica, "replica %d sending to itself", dest)
	}
	// Copy so the sender can reuse its buffer immediately; the payload
	// crosses the channel whole, so the receiver never sees interleaving.
	payload := make([]byte, len(msg))
	copy(payload, msg)
	c.hub.mailboxes[dest][c.index] <- payload
	return nil
}

func (c *localComm) Recv(buf []byte, src int) (int, error) {
	if src < 0 || src >= c.hub.n {
		return 0, errors.OutOfRange(errors.ComponentReplica, src, c.hub.n)
	}
	if src == c.index {
		return 0, errors.Input(errors.ComponentReplica, "replica %d receiving from itself", src)
	}
	payload := <-c.hub.mailboxes[c.index][src]
	if len(payload) > len(buf) {
		return 0, errors.Input(errors.ComponentReplica,
			"message of %d bytes from replica %d exceeds buffer of %d",
			len(payload), src, len(buf))
	}
	copy(buf, payload)
	return len(payload), nil
}

// barrier is a reusable n-party barrier.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	n       int
	arrived int
	gen     int
}

func newBarrier(n int) *barrier {
	b := &barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *barrier) await() {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.gen
	b.arrived++
	if b.arrived == b.n {
		b.arrived = 0
		b.gen++
		b.cond.Broadcast()
		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
}
