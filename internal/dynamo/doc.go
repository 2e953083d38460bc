// Package dynamo provides the core simulation primitives shared by every
// other package:
//
//   - [Vec2]: 2D vector in simulation space (meters, meters/second)
//   - [Body]: a gravitating celestial body
//   - [Bodies]: the ordered body set a session integrates
//   - [Projectile]: the rocket, attracted by bodies but never a source
//   - [CollisionError]: the one fatal condition of a step
//
// # Thread Safety
//
// Nothing here is safe for concurrent mutation. A session owns its bodies
// and projectile and steps them from a single goroutine.
package dynamo
