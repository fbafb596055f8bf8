package proxy

import (
	"github.com/leelasd/colvars"
	"github.com/leelasd/colvars/errors"
)

// Capability queries. These delegate to the host per call and are never
// cached: the host may change temperature, timestep or units between steps.

// UnitAngstrom returns the host's length unit in angstroms.
func (p *Proxy) UnitAngstrom() float64 { return p.engine.UnitAngstrom() }

// Boltzmann returns the Boltzmann constant in the host's unit system.
func (p *Proxy) Boltzmann() float64 { return p.engine.Boltzmann() }

// Temperature returns the current target temperature.
func (p *Proxy) Temperature() float64 { return p.engine.Temperature() }

// Timestep returns the current integration timestep.
func (p *Proxy) Timestep() float64 { return p.engine.Timestep() }

// RandGaussian returns a pseudo-random unit Gaussian sample from the host.
func (p *Proxy) RandGaussian() float64 { return p.engine.RandGaussian() }

// RestartFrequency returns the number of steps between restart writes.
func (p *Proxy) RestartFrequency() int { return p.engine.RestartFrequency() }

// Frame returns the current frame index, or NoSuchFrame with an
// unsupported-operation error when the host does not track frames.
func (p *Proxy) Frame() (int, error) {
	if fp, ok := p.engine.(colvars.FrameProvider); ok {
		return fp.Frame()
	}
	return colvars.NoSuchFrame, errors.Unsupported(errors.ComponentEngine, "frame tracking")
}

// SetFrame seeks to the given frame index on hosts that track frames.
func (p *Proxy) SetFrame(frame int) error {
	if fp, ok := p.engine.(colvars.FrameProvider); ok {
		return fp.SetFrame(frame)
	}
	return errors.Unsupported(errors.ComponentEngine, "frame tracking")
}

// PositionDistance returns the periodic-boundary-aware distance vector
// from a to b.
func (p *Proxy) PositionDistance(a, b colvars.Vec3) colvars.Vec3 {
	return p.engine.PositionDistance(a, b)
}

// PositionDist2 returns the periodic-boundary-aware squared distance
// between a and b, using the host's optimized path when it has one.
func (p *Proxy) PositionDist2(a, b colvars.Vec3) float64 {
	if ds, ok := p.engine.(colvars.DistanceSquarer); ok {
		return ds.PositionDist2(a, b)
	}
	return p.engine.PositionDistance(a, b).Norm2()
}

// SelectClosestImage folds pos onto its periodic image closest to ref.
// Hosts without periodic boundaries return the position unchanged.
func (p *Proxy) SelectClosestImage(pos, ref colvars.Vec3) colvars.Vec3 {
	if is, ok := p.engine.(colvars.ImageSelector); ok {
		return is.SelectClosestImage(pos, ref)
	}
	return pos
}

// SelectClosestImages folds a set of positions in place onto their images
// closest to ref, after which distance vectors can be taken directly.
func (p *Proxy) SelectClosestImages(pos []colvars.Vec3, ref colvars.Vec3) {
	for i := range pos {
		pos[i] = p.SelectClosestImage(pos[i], ref)
	}
}

// RequestSystemForce tells the host whether total system forces will be
// needed; not every engine can supply them.
func (p *Proxy) RequestSystemForce(on bool) error {
	if sfp, ok := p.engine.(colvars.SystemForceProvider); ok {
		return sfp.RequestSystemForce(on)
	}
	if !on {
		return nil
	}
	err := errors.Unsupported(errors.ComponentEngine, "system force collection")
	p.sink.Error(err.Error())
	return err
}

// RunForceCallback runs the user-defined force script, on hosts with a
// scripting interface.
func (p *Proxy) RunForceCallback() error {
	if fs, ok := p.engine.(colvars.ForceScripter); ok {
		return fs.RunForceCallback()
	}
	return errors.Unsupported(errors.ComponentScript, "user force scripts")
}

// RunColvarCallback evaluates a scripted collective variable from the
// current component values.
func (p *Proxy) RunColvarCallback(name string, values []float64) (float64, error) {
	if fs, ok := p.engine.(colvars.ForceScripter); ok {
		return fs.RunColvarCallback(name, values)
	}
	return 0, errors.Unsupported(errors.ComponentScript, "scripted colvar callbacks")
}
