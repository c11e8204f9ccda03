// Package grid lays Pascal's triangle out in pixel space and drives a render
// target.
//
// The mapper walks rows top to bottom and cells left to right, asks a
// [pascal.Cache] for each remainder and emits one rectangle per cell:
//
//   - [Walk]: every cell of an R-row triangle
//   - [WalkSimulated]: S displayed rows sampled from V virtual rows
//   - [Renderer]: draws direct, simulated and sequence renders onto a [Target]
//
// Geometry comes from an explicit [Layout]; nothing reads window state.
package grid
