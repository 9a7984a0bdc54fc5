// Package viz turns trajectories into pixels.
//
// The package maps phase space onto a canvas and draws trajectories as
// connected segments coloured by momentum:
//
//   - [Projector]: per-axis affine map from a phase-space box to a pixel box
//   - [Colorizer]: momentum magnitude to a red/blue intensity
//   - [Renderer]: projects, colours and draws one trajectory, skipping jumps
//   - [Raster]: RGBA canvas that can be encoded as PNG
//   - [Braille]: terminal canvas with 2x4 dots per character
//
// Any type implementing [Canvas] can be drawn on.
package viz
