// Package atoms implements the refcounted atom slot registry at the heart
// of the colvars proxy.
//
// Many independent collective-variable components may reference the same
// physical atom. The registry deduplicates their requests into stable
// integer indices, caches a per-step snapshot of each atom's state, and
// accumulates the forces every component wants applied so the host engine
// can read them out exactly once per atom per step.
//
// # Indices, not ids
//
// Host-native atom ids differ across engines: 0- or 1-based, sparse, or
// reused. Registry indices are the handle type exposed to the rest of the
// module because lookups must be O(1) on the per-step hot path.
//
// # Slot Lifecycle
//
//	index, existing := reg.Request(id)   // dedupe or allocate
//	if existing {
//	    reg.Retain(index)                // one more component holds it
//	}
//	...
//	reg.Release(index)                   // component done with the atom
//
// A slot whose reference count reaches zero is logically retired but its
// storage stays in place; removing it would invalidate every other index.
//
// # Step Protocol
//
// Once per step, in order: the host calls ClearForces and refreshes the
// snapshot with SetPosition/SetTotalForce/SetAppliedForce, components read
// state and call AddForce, and the host reads the sums back with Drain.
package atoms
