package physics

import (
	"fmt"
	"io"
	"math"
)

// DefaultLightSpeed is the speed of light in natural units.
const DefaultLightSpeed = 1.0

// Particle is a point particle with fixed name, mass and charge and a
// mutable momentum. Energy and beta are always derived from the momentum,
// so they cannot drift out of sync with it.
//
// Units follow the usual high-energy convention: mass in MeV/c^2, charge in
// units of e, momentum in MeV/c.
type Particle struct {
	name     string
	mass     float64
	charge   float64
	momentum float64
	c        float64
}

// Option configures a Particle at construction.
type Option func(*Particle)

// WithLightSpeed overrides the speed of light used by the kinematic formulas.
// Non-positive and infinite values are ignored.
func WithLightSpeed(c float64) Option {
	return func(p *Particle) {
		if c > 0 && !math.IsInf(c, 1) {
			p.c = c
		}
	}
}

// New creates a particle. A negative mass is rejected with ErrInvalidArgument;
// a negative initial momentum is clamped to zero like SetMomentum does.
func New(name string, mass, charge, momentum float64, opts ...Option) (*Particle, error) {
	if mass < 0 || math.IsNaN(mass) {
		return nil, fmt.Errorf("%w: cannot set a negative value for the mass, %q creation failed", ErrInvalidArgument, name)
	}
	p := &Particle{
		name:   name,
		mass:   mass,
		charge: charge,
		c:      DefaultLightSpeed,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.SetMomentum(momentum)
	return p, nil
}

func (p *Particle) Name() string { return p.name }

func (p *Particle) Mass() float64 { return p.mass }

func (p *Particle) Charge() float64 { return p.charge }

func (p *Particle) Momentum() float64 { return p.momentum }

func (p *Particle) LightSpeed() float64 { return p.c }

// SetMomentum assigns the momentum. Negative and non-finite values are
// clamped to zero and reported through the return value instead of failing.
func (p *Particle) SetMomentum(value float64) (clamped bool) {
	if !(value >= 0) || math.IsInf(value, 1) {
		p.momentum = 0
		return true
	}
	p.momentum = value
	return false
}

// RestEnergy returns m*c^2.
func (p *Particle) RestEnergy() float64 {
	return p.mass * p.c * p.c
}

// Energy returns the total relativistic energy sqrt((pc)^2 + (mc^2)^2).
func (p *Particle) Energy() float64 {
	return math.Hypot(p.momentum*p.c, p.RestEnergy())
}

// SetEnergy recomputes the momentum so that Energy returns value. Energies
// below the rest energy are rejected and leave the particle untouched, as are
// energies whose momentum is not finite.
func (p *Particle) SetEnergy(value float64) error {
	rest := p.RestEnergy()
	if value < rest || math.IsNaN(value) {
		return &RejectionError{
			Particle: p.name,
			Param:    "energy",
			Value:    value,
			Wrapped:  fmt.Errorf("%w: cannot set the energy smaller than its mass (%g)", ErrEnergyBelowMass, p.mass),
		}
	}
	// (E-mc^2)(E+mc^2) overflows long before E does.
	mom := math.Sqrt(value-rest) * math.Sqrt(value+rest) / p.c
	if math.IsInf(mom, 0) {
		return &RejectionError{
			Particle: p.name,
			Param:    "energy",
			Value:    value,
			Wrapped:  fmt.Errorf("%w: energy %g is not finite", ErrInvalidArgument, value),
		}
	}
	p.momentum = mom
	return nil
}

// Beta returns v/c, or zero for a particle at rest. A massive particle stays
// strictly below one however large its momentum.
func (p *Particle) Beta() float64 {
	if p.momentum == 0 {
		return 0
	}
	b := 1 / math.Hypot(1, p.mass*p.c/p.momentum)
	if p.mass > 0 && b >= 1 {
		return math.Nextafter(1, 0)
	}
	return b
}

// SetBeta recomputes the momentum from the relativistic relation
// p = gamma*m*beta*c. Values outside [0, 1] are rejected, as is beta = 1 for a
// massive particle. A massless particle accepts beta = 1 without change.
func (p *Particle) SetBeta(value float64) error {
	if value < 0 || value > 1 || math.IsNaN(value) {
		return &RejectionError{Particle: p.name, Param: "beta", Value: value, Wrapped: ErrBetaOutOfRange}
	}
	if value == 1 {
		if p.mass > 0 {
			return &RejectionError{Particle: p.name, Param: "beta", Value: value, Wrapped: ErrLightSpeed}
		}
		return nil
	}
	mom := p.c * value * p.mass / math.Sqrt(1-value*value)
	if math.IsInf(mom, 0) {
		return &RejectionError{Particle: p.name, Param: "beta", Value: value, Wrapped: ErrLightSpeed}
	}
	p.momentum = mom
	return nil
}

// Gamma returns the Lorentz factor E/(mc^2). It is +Inf for massless particles.
func (p *Particle) Gamma() float64 {
	rest := p.RestEnergy()
	if rest == 0 {
		return math.Inf(1)
	}
	return p.Energy() / rest
}

// Info formats a one-line summary of the particle.
func (p *Particle) Info() string {
	return fmt.Sprintf("Particle %q: mass = %g MeV/c^2, charge = %g e, momentum = %g",
		p.name, p.mass, p.charge, p.momentum)
}

func (p *Particle) String() string { return p.Info() }

// PrintInfo writes Info followed by a newline to w.
func (p *Particle) PrintInfo(w io.Writer) error {
	_, err := fmt.Fprintln(w, p.Info())
	return err
}

func (p *Particle) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":     p.mass,
		"charge":   p.charge,
		"momentum": p.momentum,
		"energy":   p.Energy(),
		"beta":     p.Beta(),
	}
}

// SetParam writes one of the kinematic views by name. A clamped momentum is
// not an error here; callers that need to know should use SetMomentum.
func (p *Particle) SetParam(name string, value float64) error {
	switch name {
	case "momentum":
		p.SetMomentum(value)
	case "energy":
		return p.SetEnergy(value)
	case "beta":
		return p.SetBeta(value)
	case "mass", "charge", "name":
		return fmt.Errorf("%w: %s", ErrImmutableParam, name)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}
