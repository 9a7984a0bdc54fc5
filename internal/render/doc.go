// Package render drives frame generation.
//
// Every frame is a pure function of its index and the run [config.Config]:
// [Plan] derives the frame's damping and initial momenta, [Scheduler.Draw]
// integrates and draws its trajectories, and [Scheduler.Run] fans frames out
// over a bounded pool of workers, handing each finished canvas to a [Sink].
//
// Frames share no mutable state, so any single frame can be re-rendered in
// isolation with [Scheduler.RenderFrame] and will be bit-identical to the
// same frame from a full run.
package render
