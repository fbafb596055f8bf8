// Package replica defines the coordination contract across a fixed set of
// peer simulation replicas: synchronous point-to-point messaging plus a
// barrier.
//
// The contract is abstract; concrete transports (MPI, sockets, files) live
// with the host engine. Two implementations ship here: Disabled, used when
// multi-replica support is off, and LocalHub, an in-process channel-based
// reference used by the testbed and by tests of replica-coordinated code.
package replica
