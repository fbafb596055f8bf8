// Package colvars provides the boundary layer between a collective-variable
// biasing module and a host molecular-simulation or analysis engine.
//
// The host engine owns the true simulation state; this library only caches a
// per-step snapshot of the atoms the biasing module asked for, accumulates
// the forces the module wants applied, and hands them back to the host once
// per step. It never computes bias potentials itself.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	colvars/             Root package with the Engine capability interfaces and Vec3
//	├── proxy/           The proxy itself: step lifecycle, capability dispatch
//	├── atoms/           Refcounted atom slot registry with force accumulation
//	├── output/          Named output channel manager
//	├── replica/         Replica coordination contract and local reference hub
//	├── errors/          Structured error types shared across packages
//	├── logging/         Reporting sink contract and zap adapter
//	└── testbed/         Synthetic host engine for integration testing
//
// # Quick Start
//
// Wrap a host engine and register atoms:
//
//	p, err := proxy.New(engine)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	idx, err := p.InitAtom(42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Each step the host refreshes the snapshot, the biasing module reads and
// contributes forces, and the host drains the result:
//
//	p.BeginStep()
//	p.SetAtomPosition(idx, pos)
//	p.SetAtomTotalForce(idx, total)
//
//	// biasing module:
//	f := p.AtomSystemForce(idx)
//	p.ApplyForce(idx, bias)
//
//	// host engine:
//	p.DrainForces(func(index, id int, f colvars.Vec3) {
//	    // add f to the real integrator state
//	})
//
// # Host Capabilities
//
// Engine is the minimal required surface. Optional capabilities (frame
// tracking, named atom lookup, velocities, file backup, script callbacks)
// are discovered by interface upgrade; the proxy reports an unsupported
// operation when the host does not implement one.
package colvars
