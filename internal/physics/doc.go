// Package physics provides a relativistic point-particle model.
//
// A [Particle] has a fixed name, mass and charge and a mutable momentum.
// The derived views are computed on demand:
//
//   - [Particle.Energy]: sqrt((pc)^2 + (mc^2)^2)
//   - [Particle.Beta]: pc/E, zero at rest and below one for any mass > 0
//
// Writing a derived view ([Particle.SetEnergy], [Particle.SetBeta]) recomputes
// the momentum. Invalid targets are soft rejections: the setter returns a
// [RejectionError] and leaves the particle untouched. Negative and
// non-finite momenta are clamped to zero rather than rejected.
//
// # Example
//
//	p, _ := physics.NewProton(200)
//	if err := p.SetBeta(0.8); err != nil {
//	    log.Println(err)
//	}
//	fmt.Println(p.Info())
//
// # Thread Safety
//
// Particle instances are NOT thread-safe.
package physics
