// Package physics advances a body set, and optionally a projectile, by one
// fixed timestep.
//
// [Integrator.Step] uses semi-implicit (symplectic) Euler: every velocity
// is updated from the forces at the current positions, then every position
// moves with its new velocity. Forces are accumulated per ordered pair, so
// each body only ever changes its own velocity.
//
// The projectile is pulled by every body but never pulls back. Its
// distance exponent is tuned rather than physical: bodies lighter than the
// primary pull harder than Newton would allow.
package physics
