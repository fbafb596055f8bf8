package proxy

import (
	"io"

	"github.com/leelasd/colvars"
	"github.com/leelasd/colvars/errors"
)

// OutputStream returns the open handle for the named output channel,
// opening it on first use.
func (p *Proxy) OutputStream(name string) (io.Writer, error) {
	return p.channels.Get(name)
}

// CloseOutputStream closes the named output channel. Closing a channel
// that is not open is a bug in the calling code.
func (p *Proxy) CloseOutputStream(name string) error {
	return p.channels.Close(name)
}

// BackupFile renames an output target before it is overwritten, on hosts
// that support backups.
func (p *Proxy) BackupFile(name string) error {
	if b, ok := p.engine.(colvars.Backupper); ok {
		return b.BackupFile(name)
	}
	return errors.Unsupported(errors.ComponentEngine, "backing up output files")
}

// Replica coordination. All calls delegate to the configured transport;
// with replica support disabled they follow the single-replica convention
// (index 0, count 1) and never crash.

// ReplicaEnabled reports whether multi-replica support is active.
func (p *Proxy) ReplicaEnabled() bool { return p.comm.Enabled() }

// ReplicaIndex returns this replica's 0-based index.
func (p *Proxy) ReplicaIndex() int { return p.comm.Index() }

// ReplicaCount returns the total number of replicas.
func (p *Proxy) ReplicaCount() int { return p.comm.Count() }

// ReplicaBarrier blocks until all replicas reach the barrier.
func (p *Proxy) ReplicaBarrier() error { return p.comm.Barrier() }

// ReplicaSend delivers msg to the destination replica.
func (p *Proxy) ReplicaSend(msg []byte, dest int) error { return p.comm.Send(msg, dest) }

// ReplicaRecv blocks until a message from the source replica arrives and
// copies it into buf.
func (p *Proxy) ReplicaRecv(buf []byte, src int) (int, error) { return p.comm.Recv(buf, src) }
