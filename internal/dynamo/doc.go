// Package dynamo provides the core primitives for two-dimensional phase-space
// integration.
//
// The package defines the fundamental types shared by every other package:
//
//   - [State]: a (position, momentum) pair
//   - [Field]: a vector field giving dq/dt and dp/dt at a state
//   - [Integrator]: a fixed-step numerical scheme over a [Field]
//   - [Interval]: a closed-open range of reals used for bounds and boxes
//
// # Example
//
//	field := physics.NewDissipative(0.3, 0.5)
//	integ := integrators.NewRK4()
//	next := integ.Step(field, dynamo.State{Q: 0, P: 2}, 0.01)
//
// # Thread Safety
//
// State, Interval and the fields in package physics are values with no
// shared mutable state and are safe to use from any goroutine. Integrators
// may keep scratch data and must not be shared between goroutines.
package dynamo
