// Package trace provides the core data types shared by the analysis engines.
//
// A simulation export is reduced to plain numeric traces before any metric is
// computed:
//
//   - [Vec2]: planar vector used for positions, velocities and waypoints
//   - [VelocityTrace]: timestamped planar velocities of one robot
//   - [Polyline]: ordered reference waypoints of a mission
//
// Every value in this package is immutable once built. Metrics are pure
// functions of these traces and never retain state across robots or runs.
//
// # Errors
//
// Failures are reported with the sentinel errors in errors.go and may be
// wrapped in a [FileError] carrying the offending file and robot:
//
//	if errors.Is(err, trace.ErrDegenerateTrajectory) {
//	    // fewer than two samples, non-monotonic time, ...
//	}
package trace
