package atoms

import (
	"fmt"

	"github.com/leelasd/colvars"
	"github.com/leelasd/colvars/errors"
)

// slot holds the cached per-step state of one tracked atom.
type slot struct {
	id           int
	refCount     int
	mass         float64
	position     colvars.Vec3
	totalForce   colvars.Vec3
	appliedForce colvars.Vec3
	pendingForce colvars.Vec3
}

// Registry deduplicates atom requests into stable index slots. Indices are
// valid for the lifetime of the registry: slots are never removed, only
// logically retired when their reference count reaches zero, because
// removal would invalidate every other index. Retired slots are not reused
// within a run.
//
// The registry is not safe for concurrent mutation; the host engine
// serializes all calls per replica.
type Registry struct {
	slots []slot
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		slots: make([]slot, 0, 64),
	}
}

// Request returns the index of the live slot tracking id, or allocates a
// new slot with reference count 1 and mass 1.0. It reports whether the
// slot already existed; when it did, the caller is responsible for bumping
// the count with Retain.
func (r *Registry) Request(id int) (index int, existing bool) {
	for i := range r.slots {
		if r.slots[i].refCount > 0 && r.slots[i].id == id {
			return i, true
		}
	}

	r.slots = append(r.slots, slot{
		id:       id,
		refCount: 1,
		mass:     1.0,
	})
	return len(r.slots) - 1, false
}

// Retain increments the reference count of a live slot. Called by the
// layer above when Request resolved to an existing slot.
func (r *Registry) Retain(index int) {
	r.check(index)
	r.slots[index].refCount++
}

// Release decrements the reference count of a slot. A slot at zero is
// logically retired but keeps its storage. Releasing an out-of-range index
// or an already retired slot is an input error: it means an atom is being
// disabled that was never requested.
func (r *Registry) Release(index int) error {
	if index < 0 || index >= len(r.slots) {
		return errors.OutOfRange(errors.ComponentAtoms, index, len(r.slots))
	}
	if r.slots[index].refCount == 0 {
		return errors.Input(errors.ComponentAtoms,
			"trying to disable atom %d that was not previously requested", r.slots[index].id)
	}
	r.slots[index].refCount--
	return nil
}

// Len returns the number of slots ever allocated, live or retired.
func (r *Registry) Len() int {
	return len(r.slots)
}

// ID returns the host-native id of the atom at index.
func (r *Registry) ID(index int) int {
	r.check(index)
	return r.slots[index].id
}

// RefCount returns the number of components holding the slot alive.
func (r *Registry) RefCount(index int) int {
	r.check(index)
	return r.slots[index].refCount
}

// Mass returns the mass of the atom at index.
func (r *Registry) Mass(index int) float64 {
	r.check(index)
	return r.slots[index].mass
}

// Position returns the cached position of the atom at index.
func (r *Registry) Position(index int) colvars.Vec3 {
	r.check(index)
	return r.slots[index].position
}

// TotalForce returns the cached total force on the atom at index.
func (r *Registry) TotalForce(index int) colvars.Vec3 {
	r.check(index)
	return r.slots[index].totalForce
}

// AppliedForce returns the cached external-potential force on the atom at
// index.
func (r *Registry) AppliedForce(index int) colvars.Vec3 {
	r.check(index)
	return r.slots[index].appliedForce
}

// SystemForce returns the force the atom feels from everything except this
// module's own contribution: total minus already-applied. Derived on read,
// never stored, so the module's pending forces can never feed back into it.
func (r *Registry) SystemForce(index int) colvars.Vec3 {
	r.check(index)
	return r.slots[index].totalForce.Sub(r.slots[index].appliedForce)
}

// PendingForce returns the force accumulated for the atom this step.
func (r *Registry) PendingForce(index int) colvars.Vec3 {
	r.check(index)
	return r.slots[index].pendingForce
}

// AddForce accumulates delta into the pending force at index. It never
// replaces: multiple independent components may act on the same atom
// within one step, and losing an earlier contribution would silently
// corrupt the bias.
func (r *Registry) AddForce(index int, delta colvars.Vec3) {
	r.check(index)
	r.slots[index].pendingForce = r.slots[index].pendingForce.Add(delta)
}

// Host-side refresh, called once per step before any component queries.

// SetMass updates the mass at index. Hosts may redefine masses mid-run.
func (r *Registry) SetMass(index int, mass float64) {
	r.check(index)
	r.slots[index].mass = mass
}

// SetPosition refreshes the cached position at index.
func (r *Registry) SetPosition(index int, pos colvars.Vec3) {
	r.check(index)
	r.slots[index].position = pos
}

// SetTotalForce refreshes the cached total force at index.
func (r *Registry) SetTotalForce(index int, f colvars.Vec3) {
	r.check(index)
	r.slots[index].totalForce = f
}

// SetAppliedForce refreshes the cached external-potential force at index.
func (r *Registry) SetAppliedForce(index int, f colvars.Vec3) {
	r.check(index)
	r.slots[index].appliedForce = f
}

// ClearForces zeroes every pending force. The host calls this exactly once
// per step, before any component contributes.
func (r *Registry) ClearForces() {
	for i := range r.slots {
		r.slots[i].pendingForce = colvars.Vec3{}
	}
}

// Drain calls fn for every live slot with its index, host-native id and
// pending force. The host uses it once at step end to read the accumulated
// forces back out.
func (r *Registry) Drain(fn func(index, id int, force colvars.Vec3)) {
	for i := range r.slots {
		if r.slots[i].refCount > 0 {
			fn(i, r.slots[i].id, r.slots[i].pendingForce)
		}
	}
}

// Each calls fn for every live slot with its index and host-native id,
// stopping early when fn returns false. Hosts use it to refresh the
// snapshot each step.
func (r *Registry) Each(fn func(index, id int) bool) {
	for i := range r.slots {
		if r.slots[i].refCount > 0 {
			if !fn(i, r.slots[i].id) {
				return
			}
		}
	}
}

// check panics on an out-of-range index. Index arithmetic on the hot path
// is a programming error in the biasing module, not a recoverable runtime
// condition.
func (r *Registry) check(index int) {
	if index < 0 || index >= len(r.slots) {
		panic(fmt.Sprintf("atoms: index %d out of range (length %d)", index, len(r.slots)))
	}
}
