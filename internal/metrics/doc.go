// Package metrics computes per-robot kinematic metrics from planar traces.
//
//   - [LDJ]: log dimensionless jerk, a smoothness score from a velocity trace
//   - [PerpendicularDeviation]: distance of observed positions from a reference polyline
//   - [DistanceTravelled]: path length of a position trace
//
// All functions are pure: identical inputs yield bit-identical outputs.
package metrics
