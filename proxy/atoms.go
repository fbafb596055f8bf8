package proxy

import (
	"github.com/leelasd/colvars"
	"github.com/leelasd/colvars/errors"
)

// InitAtom prepares an atom for collective-variable calculation, selected
// by its host-native id. A second request for the same id resolves to the
// same slot index with its reference count bumped; a distinct id gets a
// fresh, never-before-used index.
func (p *Proxy) InitAtom(id int) (int, error) {
	index, existing := p.registry.Request(id)
	if existing {
		p.registry.Retain(index)
	}
	return index, nil
}

// InitAtomNamed selects an atom by residue number, atom name and segment
// id. Hosts without name-based lookup make this an unsupported operation.
func (p *Proxy) InitAtomNamed(residue int, atomName, segmentID string) (int, error) {
	resolver, ok := p.engine.(colvars.NamedAtomResolver)
	if !ok {
		err := errors.Unsupported(errors.ComponentEngine, "initializing an atom by name and residue number")
		p.sink.Error(err.Error())
		return -1, err
	}

	id, err := resolver.ResolveAtom(residue, atomName, segmentID)
	if err != nil {
		ierr := errors.New(errors.ComponentEngine, errors.KindInput).
			Detail("no atom %q in residue %d of segment %q", atomName, residue, segmentID).
			Cause(err).
			Build()
		p.sink.Error(ierr.Error())
		return -1, ierr
	}
	return p.InitAtom(id)
}

// ClearAtom releases one reference to the atom slot at index, called when
// a collective-variable component is done with the atom. The slot itself
// stays in place so other indices remain valid.
func (p *Proxy) ClearAtom(index int) error {
	if err := p.registry.Release(index); err != nil {
		p.sink.Error(err.Error())
		return err
	}
	return nil
}

// AtomID returns the host-native id of the atom at index.
func (p *Proxy) AtomID(index int) int {
	return p.registry.ID(index)
}

// AtomMass returns the mass of the atom at index.
func (p *Proxy) AtomMass(index int) float64 {
	return p.registry.Mass(index)
}

// AtomPosition returns the cached position of the atom at index.
func (p *Proxy) AtomPosition(index int) colvars.Vec3 {
	return p.registry.Position(index)
}

// AtomSystemForce returns the force the atom feels from everything except
// this module's own contribution.
func (p *Proxy) AtomSystemForce(index int) colvars.Vec3 {
	return p.registry.SystemForce(index)
}

// ApplyForce accumulates a bias force onto the atom at index for this
// step. Contributions from independent components sum; none replaces
// another.
func (p *Proxy) ApplyForce(index int, force colvars.Vec3) {
	p.registry.AddForce(index, force)
}

// AtomVelocity returns the current velocity of the atom at index, when the
// host exposes velocities.
func (p *Proxy) AtomVelocity(index int) (colvars.Vec3, error) {
	reader, ok := p.engine.(colvars.VelocityReader)
	if !ok {
		err := errors.Unsupported(errors.ComponentEngine, "reading the current velocity of an atom")
		p.sink.Error(err.Error())
		return colvars.Vec3{}, err
	}
	return reader.AtomVelocity(p.registry.ID(index))
}

// Host-side step obligations: refresh the snapshot for every registered
// atom once per step before the biasing module queries it, then drain the
// accumulated forces once at step end.

// SetAtomMass updates the mass of the atom at index.
func (p *Proxy) SetAtomMass(index int, mass float64) {
	p.registry.SetMass(index, mass)
}

// SetAtomPosition refreshes the position of the atom at index.
func (p *Proxy) SetAtomPosition(index int, pos colvars.Vec3) {
	p.registry.SetPosition(index, pos)
}

// SetAtomTotalForce refreshes the raw host-computed force on the atom at
// index, before any bias contribution.
func (p *Proxy) SetAtomTotalForce(index int, f colvars.Vec3) {
	p.registry.SetTotalForce(index, f)
}

// SetAtomAppliedForce refreshes the external-potential force the host has
// already accounted for outside this module.
func (p *Proxy) SetAtomAppliedForce(index int, f colvars.Vec3) {
	p.registry.SetAppliedForce(index, f)
}

// EachAtom visits every live atom slot with its index and host-native id.
func (p *Proxy) EachAtom(fn func(index, id int) bool) {
	p.registry.Each(fn)
}

// DrainForces hands every live slot's accumulated colvar force to fn,
// exactly once per atom per step.
func (p *Proxy) DrainForces(fn func(index, id int, force colvars.Vec3)) {
	p.registry.Drain(fn)
}

// AtomCount returns the number of slots ever allocated, live or retired.
func (p *Proxy) AtomCount() int {
	return p.registry.Len()
}

// AtomRefCount returns the number of components holding the slot at index.
func (p *Proxy) AtomRefCount(index int) int {
	return p.registry.RefCount(index)
}
