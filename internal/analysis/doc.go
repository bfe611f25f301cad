// Package analysis provides post-run diagnostics for ring phase trajectories.
//
//   - [MaxStableStep]: largest forward Euler step that keeps the linear flow stable
//   - [SyncTime]: first time the phase spread falls below a tolerance
//   - [Summarize]: compact report of a finished trajectory
//
// # Step Size
//
// The model dphi/dt = -(L + diag(theta)) phi is linear. Forward Euler
// multiplies each eigenmode by (1 - dt·λ), so it stays bounded only while
// dt < 2/λmax:
//
//	limit, _ := analysis.MaxStableStep(l, theta)
//	if dt >= limit {
//	    // trajectory will oscillate with growing amplitude
//	}
package analysis
