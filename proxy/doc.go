// Package proxy composes the atom registry, output channel manager and
// replica coordination into the single handle the biasing module talks to.
//
// One Proxy wraps one host engine. The engine fulfills the required
// colvars.Engine surface; optional capabilities (frame tracking, named
// atom lookup, velocities, periodic images, script callbacks, file
// backups) are discovered by interface upgrade on the same value, and the
// proxy degrades to a defined fallback when a capability is missing. This
// is the one-interface, many-host-adapters pattern: a concrete engine
// adapter satisfies exactly the capabilities its program has.
//
// # Step Protocol
//
// The host drives the proxy once per step:
//
//  1. BeginStep clears the force and energy accumulators.
//  2. SetAtomPosition / SetAtomTotalForce / SetAtomAppliedForce refresh
//     the snapshot for every registered atom.
//  3. The biasing module reads state and calls ApplyForce / AddEnergy.
//  4. DrainForces and DrainEnergy hand the accumulated results back to
//     the host, exactly once.
//
// Every failure is routed through the logging.Sink supplied at
// construction; the proxy never retries silently and never aborts on its
// own.
package proxy
