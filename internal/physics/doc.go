// Package physics provides the pendulum family of vector fields.
//
// Each model implements [dynamo.Field] on the (angle, momentum) plane:
//
//   - [Pendulum]: conservative pendulum, p' = -sin q
//   - [Attractor]: unit linear damping, p' = -sin q - p
//   - [Dissipative]: damping a and natural frequency w, p' = -2ap - w² sin q
//   - [DoubleWell]: bistable well, p' = -4Aq(q² - B) - 2ap
//   - [VanDerPol]: self-excited oscillator, p' = μ(1 - q²)p - q
//
// The last two are not periodic in q; render them with wrapping disabled.
//
// All models implement [dynamo.Configurable] for parameter adjustment. All
// but VanDerPol implement [dynamo.Hamiltonian].
//
// # Energy Conservation
//
// Only the undamped models conserve their energy; use it to check an
// integrator:
//
//	f := physics.NewPendulum()
//	e0 := f.Energy(x0)
package physics
