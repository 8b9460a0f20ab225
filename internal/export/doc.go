// Package export reads the JSON logs written by the multi-robot simulator.
//
// Two velocity schemas coexist in the wild: flat [vx, vy] pairs and
// timestamped {timestamp, velocity: [x, y, z]} samples from the 3D engine.
// [Robot.Velocity] detects which one a file uses and normalizes both to a
// [trace.VelocityTrace], so metrics never see the difference.
package export
