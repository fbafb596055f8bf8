package atoms

import (
	"testing"

	"github.com/leelasd/colvars"
	"github.com/leelasd/colvars/errors"
)

func TestRegistry_RequestDedupe(t *testing.T) {
	reg := NewRegistry()

	first, existing := reg.Request(42)
	if existing {
		t.Fatal("first request should allocate")
	}

	again, existing := reg.Request(42)
	if !existing {
		t.Fatal("second request for the same id should resolve to the live slot")
	}
	if again != first {
		t.Fatalf("expected index %d, got %d", first, again)
	}

	other, existing := reg.Request(43)
	if existing {
		t.Fatal("distinct id should allocate")
	}
	if other == first {
		t.Fatal("distinct id must get a fresh index")
	}
}

func TestRegistry_RequestScenario(t *testing.T) {
	// Register [7, 3, 7, 9] and expect indices [0, 1, 0, 2] with slot 0's
	// reference count at 2 after the third request.
	reg := NewRegistry()
	want := []int{0, 1, 0, 2}

	for i, id := range []int{7, 3, 7, 9} {
		index, existing := reg.Request(id)
		if existing {
			reg.Retain(index)
		}
		if index != want[i] {
			t.Fatalf("request %d (id %d): index %d, want %d", i, id, index, want[i])
		}
	}

	if got := reg.RefCount(0); got != 2 {
		t.Errorf("slot 0 refcount = %d, want 2", got)
	}
	if got := reg.RefCount(1); got != 1 {
		t.Errorf("slot 1 refcount = %d, want 1", got)
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
}

func TestRegistry_NewSlotDefaults(t *testing.T) {
	reg := NewRegistry()
	idx, _ := reg.Request(5)

	if got := reg.Mass(idx); got != 1.0 {
		t.Errorf("new slot mass = %v, want 1.0", got)
	}
	if !reg.Position(idx).IsZero() || !reg.TotalForce(idx).IsZero() ||
		!reg.AppliedForce(idx).IsZero() || !reg.PendingForce(idx).IsZero() {
		t.Error("new slot vectors should all be zero")
	}
	if got := reg.ID(idx); got != 5 {
		t.Errorf("ID = %d, want 5", got)
	}
}

func TestRegistry_Release(t *testing.T) {
	reg := NewRegistry()
	idx, _ := reg.Request(7)
	reg.Retain(idx)

	if err := reg.Release(idx); err != nil {
		t.Fatalf("first release: %v", err)
	}
	if err := reg.Release(idx); err != nil {
		t.Fatalf("second release: %v", err)
	}
	if got := reg.RefCount(idx); got != 0 {
		t.Fatalf("refcount = %d, want 0", got)
	}

	// Count never goes negative: releasing a retired slot is an input error.
	err := reg.Release(idx)
	if !errors.IsInput(err) {
		t.Errorf("release at zero: got %v, want input error", err)
	}
	if got := reg.RefCount(idx); got != 0 {
		t.Errorf("refcount after bad release = %d, want 0", got)
	}

	if err := reg.Release(99); !errors.IsInput(err) {
		t.Errorf("out-of-range release: got %v, want input error", err)
	}
	if err := reg.Release(-1); !errors.IsInput(err) {
		t.Errorf("negative release: got %v, want input error", err)
	}
}

func TestRegistry_RetiredSlotNotReused(t *testing.T) {
	reg := NewRegistry()
	idx, _ := reg.Request(7)
	if err := reg.Release(idx); err != nil {
		t.Fatal(err)
	}

	// Requesting the same id again must not resurrect the retired slot.
	fresh, existing := reg.Request(7)
	if existing {
		t.Fatal("retired slot must not satisfy a new request")
	}
	if fresh == idx {
		t.Fatal("retired slot index must not be reused within a run")
	}
}

func TestRegistry_AddForceAccumulates(t *testing.T) {
	reg := NewRegistry()
	idx, _ := reg.Request(1)

	reg.AddForce(idx, colvars.Vec3{1, 0, 0})
	reg.AddForce(idx, colvars.Vec3{0, 1, 0})

	if got := reg.PendingForce(idx); got != (colvars.Vec3{1, 1, 0}) {
		t.Fatalf("pending force = %v, want (1,1,0)", got)
	}

	reg.ClearForces()
	if got := reg.PendingForce(idx); !got.IsZero() {
		t.Fatalf("pending force after reset = %v, want zero", got)
	}

	// Reset must happen exactly once; a second clear on a fresh
	// contribution would lose it.
	reg.AddForce(idx, colvars.Vec3{0, 0, 2})
	if got := reg.PendingForce(idx); got != (colvars.Vec3{0, 0, 2}) {
		t.Fatalf("pending force after new contribution = %v, want (0,0,2)", got)
	}
}

func TestRegistry_SystemForce(t *testing.T) {
	reg := NewRegistry()
	idx, _ := reg.Request(1)

	reg.SetTotalForce(idx, colvars.Vec3{3, 2, 1})
	reg.SetAppliedForce(idx, colvars.Vec3{1, 1, 1})

	if got := reg.SystemForce(idx); got != (colvars.Vec3{2, 1, 0}) {
		t.Fatalf("system force = %v, want (2,1,0)", got)
	}

	// Pending colvar forces never leak into the system force.
	reg.AddForce(idx, colvars.Vec3{10, 10, 10})
	if got := reg.SystemForce(idx); got != (colvars.Vec3{2, 1, 0}) {
		t.Fatalf("system force after AddForce = %v, want (2,1,0)", got)
	}
}

func TestRegistry_HostRefresh(t *testing.T) {
	reg := NewRegistry()
	idx, _ := reg.Request(1)

	reg.SetPosition(idx, colvars.Vec3{1, 2, 3})
	reg.SetMass(idx, 12.011)

	if got := reg.Position(idx); got != (colvars.Vec3{1, 2, 3}) {
		t.Errorf("position = %v", got)
	}
	if got := reg.Mass(idx); got != 12.011 {
		t.Errorf("mass = %v", got)
	}
}

func TestRegistry_DrainSkipsRetired(t *testing.T) {
	reg := NewRegistry()
	a, _ := reg.Request(1)
	b, _ := reg.Request(2)

	reg.AddForce(a, colvars.Vec3{1, 0, 0})
	reg.AddForce(b, colvars.Vec3{0, 1, 0})
	if err := reg.Release(b); err != nil {
		t.Fatal(err)
	}

	seen := map[int]colvars.Vec3{}
	reg.Drain(func(index, id int, f colvars.Vec3) {
		seen[id] = f
	})

	if len(seen) != 1 {
		t.Fatalf("drained %d slots, want 1", len(seen))
	}
	if seen[1] != (colvars.Vec3{1, 0, 0}) {
		t.Errorf("drained force = %v", seen[1])
	}
}

func TestRegistry_EachStopsEarly(t *testing.T) {
	reg := NewRegistry()
	reg.Request(1)
	reg.Request(2)
	reg.Request(3)

	var visited int
	reg.Each(func(index, id int) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("visited %d slots, want 2", visited)
	}
}

func TestRegistry_BadIndexPanics(t *testing.T) {
	reg := NewRegistry()
	reg.Request(1)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range accessor")
		}
	}()
	reg.Position(7)
}
