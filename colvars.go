package colvars

// NoSuchFrame is the sentinel frame index reported by hosts that do not
// track trajectory frames.
const NoSuchFrame = -1

// Engine is the minimal capability surface every host engine must provide.
// The values are authoritative per call: the host may change temperature,
// timestep or units between steps (variable timestep, replica temperature
// exchange), so callers must not cache them across steps.
type Engine interface {
	// UnitAngstrom returns the value of the host's length unit in angstroms.
	UnitAngstrom() float64

	// Boltzmann returns the Boltzmann constant in the host's unit system.
	Boltzmann() float64

	// Temperature returns the current target temperature in kelvin.
	Temperature() float64

	// Timestep returns the current integration timestep in femtoseconds.
	Timestep() float64

	// RandGaussian returns a pseudo-random sample from a unit Gaussian.
	RandGaussian() float64

	// RestartFrequency returns the number of steps between restart writes,
	// or 0 when the host never writes restarts.
	RestartFrequency() int

	// PositionDistance returns the periodic-boundary-aware distance vector
	// from a to b.
	PositionDistance(a, b Vec3) Vec3
}

// Optional capabilities. The proxy discovers these by interface upgrade on
// the Engine value and falls back to a defined default when absent.

// FrameProvider is implemented by hosts that track trajectory frames
// (analysis tools rather than live simulations).
type FrameProvider interface {
	// Frame returns the current frame index.
	Frame() (int, error)

	// SetFrame seeks to the given frame index.
	SetFrame(frame int) error
}

// DistanceSquarer lets a host provide an optimized squared distance.
// Without it the proxy squares PositionDistance.
type DistanceSquarer interface {
	PositionDist2(a, b Vec3) float64
}

// ImageSelector folds a position onto its periodic image closest to a
// reference position.
type ImageSelector interface {
	SelectClosestImage(pos Vec3, ref Vec3) Vec3
}

// VelocityReader is implemented by hosts that expose per-atom velocities.
type VelocityReader interface {
	// AtomVelocity returns the current velocity of the atom with the given
	// host-native id.
	AtomVelocity(id int) (Vec3, error)
}

// NamedAtomResolver maps a (residue, atom name, segment) triple to the
// host-native atom id. Not all hosts support selection by name.
type NamedAtomResolver interface {
	ResolveAtom(residue int, atomName, segmentID string) (int, error)
}

// SystemForceProvider is implemented by hosts that can supply total system
// forces on request.
type SystemForceProvider interface {
	RequestSystemForce(on bool) error
}

// Backupper renames an output target before it is overwritten.
type Backupper interface {
	BackupFile(name string) error
}

// ForceScripter is implemented by hosts with a scripting interface that can
// run user-defined force callbacks. Invocation internals stay on the host
// side; the proxy only forwards the calls.
type ForceScripter interface {
	// RunForceCallback runs the user-defined force script for this step.
	RunForceCallback() error

	// RunColvarCallback evaluates a scripted collective variable from the
	// current component values.
	RunColvarCallback(name string, values []float64) (float64, error)
}
