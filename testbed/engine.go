package testbed

import (
	"math"
	"math/rand"
	"os"

	"github.com/leelasd/colvars"
	"github.com/leelasd/colvars/proxy"
)

// BoltzmannKcal is the Boltzmann constant in kcal/mol/K, the unit system
// the testbed reports.
const BoltzmannKcal = 0.001987191

// Config holds the parameters of a synthetic run.
type Config struct {
	Atoms       int
	Temperature float64 // K
	Timestep    float64 // fs
	Box         colvars.Vec3
	Seed        int64
}

// DefaultConfig returns a small but non-trivial system.
func DefaultConfig() Config {
	return Config{
		Atoms:       16,
		Temperature: 300,
		Timestep:    2.0,
		Box:         colvars.Vec3{32, 32, 32},
		Seed:        1,
	}
}

// Engine is a synthetic host engine: atoms in a periodic box performing a
// thermal random walk. It exists so the proxy's data-sharing protocol can
// be exercised end to end without a real simulation program. Atom ids are
// 1-based, the way several MD engines number atoms.
type Engine struct {
	cfg       Config
	rng       *rand.Rand
	positions []colvars.Vec3
	velocity  []colvars.Vec3
	forces    []colvars.Vec3 // host-computed total forces this step
	masses    []float64
	frame     int
	sysForce  bool
}

// New creates a testbed engine with atoms spread uniformly over the box.
func New(cfg Config) *Engine {
	if cfg.Atoms < 1 {
		cfg.Atoms = 1
	}
	e := &Engine{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		positions: make([]colvars.Vec3, cfg.Atoms),
		velocity:  make([]colvars.Vec3, cfg.Atoms),
		forces:    make([]colvars.Vec3, cfg.Atoms),
		masses:    make([]float64, cfg.Atoms),
	}
	for i := range e.positions {
		for d := 0; d < 3; d++ {
			e.positions[i][d] = e.rng.Float64() * cfg.Box[d]
		}
		e.masses[i] = 12.011 // carbon-like
	}
	return e
}

// Required capability surface.

func (e *Engine) UnitAngstrom() float64 { return 1.0 }
func (e *Engine) Boltzmann() float64    { return BoltzmannKcal }
func (e *Engine) Temperature() float64  { return e.cfg.Temperature }
func (e *Engine) Timestep() float64     { return e.cfg.Timestep }
func (e *Engine) RandGaussian() float64 { return e.rng.NormFloat64() }
func (e *Engine) RestartFrequency() int { return 100 }

// PositionDistance returns the minimum-image distance vector from a to b.
func (e *Engine) PositionDistance(a, b colvars.Vec3) colvars.Vec3 {
	d := b.Sub(a)
	for i := 0; i < 3; i++ {
		box := e.cfg.Box[i]
		if box > 0 {
			d[i] -= box * math.Round(d[i]/box)
		}
	}
	return d
}

// Optional capabilities.

// Frame returns the current frame number; the testbed counts every step
// as a frame.
func (e *Engine) Frame() (int, error) { return e.frame, nil }

// SetFrame seeks the frame counter; the testbed has no trajectory to
// reread, so it only moves the counter.
func (e *Engine) SetFrame(frame int) error {
	e.frame = frame
	return nil
}

// SelectClosestImage folds pos onto its periodic image closest to ref.
func (e *Engine) SelectClosestImage(pos, ref colvars.Vec3) colvars.Vec3 {
	return ref.Add(e.PositionDistance(ref, pos))
}

// AtomVelocity returns the current velocity of the atom with the given
// 1-based id.
func (e *Engine) AtomVelocity(id int) (colvars.Vec3, error) {
	return e.velocity[id-1], nil
}

// RequestSystemForce records whether total forces must be collected.
func (e *Engine) RequestSystemForce(on bool) error {
	e.sysForce = on
	return nil
}

// BackupFile renames an output target to name.old before it is
// overwritten.
func (e *Engine) BackupFile(name string) error {
	if _, err := os.Stat(name); os.IsNotExist(err) {
		return nil
	}
	return os.Rename(name, name+".old")
}

// AtomID returns the 1-based host id of the i-th atom, for registering
// atoms with the proxy.
func (e *Engine) AtomID(i int) int { return i + 1 }

// BeginStep advances the synthetic dynamics by one step and pushes the
// fresh snapshot into the proxy, fulfilling the host's per-step
// obligations before any component queries.
func (e *Engine) BeginStep(p *proxy.Proxy) {
	p.BeginStep()

	dt := e.cfg.Timestep * 1e-3 // fs to ps scale for displacement size
	kT := BoltzmannKcal * e.cfg.Temperature
	for i := range e.positions {
		sigma := math.Sqrt(kT / e.masses[i])
		for d := 0; d < 3; d++ {
			e.velocity[i][d] = sigma * e.rng.NormFloat64()
			e.forces[i][d] = e.rng.NormFloat64() // thermal noise stand-in
		}
		e.positions[i] = e.wrap(e.positions[i].Add(e.velocity[i].Scale(dt)))
	}
	e.frame++

	p.EachAtom(func(index, id int) bool {
		p.SetAtomPosition(index, e.positions[id-1])
		p.SetAtomTotalForce(index, e.forces[id-1])
		p.SetAtomAppliedForce(index, colvars.Vec3{})
		p.SetAtomMass(index, e.masses[id-1])
		return true
	})
}

// CompleteStep reads the accumulated colvar forces back out of the proxy,
// applies them to the synthetic dynamics and returns the restraint energy
// contributed this step.
func (e *Engine) CompleteStep(p *proxy.Proxy) float64 {
	dt := e.cfg.Timestep * 1e-3
	p.DrainForces(func(index, id int, f colvars.Vec3) {
		i := id - 1
		kick := f.Scale(dt / e.masses[i])
		e.velocity[i] = e.velocity[i].Add(kick)
		e.positions[i] = e.wrap(e.positions[i].Add(kick.Scale(dt)))
	})
	return p.DrainEnergy()
}

func (e *Engine) wrap(pos colvars.Vec3) colvars.Vec3 {
	for i := 0; i < 3; i++ {
		box := e.cfg.Box[i]
		if box > 0 {
			pos[i] -= box * math.Floor(pos[i]/box)
		}
	}
	return pos
}

var _ colvars.Engine = (*Engine)(nil)
var _ colvars.FrameProvider = (*Engine)(nil)
var _ colvars.ImageSelector = (*Engine)(nil)
var _ colvars.VelocityReader = (*Engine)(nil)
var _ colvars.SystemForceProvider = (*Engine)(nil)
var _ colvars.Backupper = (*Engine)(nil)
