// Package sim drives the train animation for the Subway Weaver game.
//
// The sim package implements:
//   - A small run state machine (Idle, Resolving, Animating, Completed, Blocked)
//   - Fixed-cadence emission of train positions along a resolved route
//   - Cooperative cancellation of abandoned runs
//   - Run tagging with unique IDs so stale events can be discarded
//
// Core Types:
//
// Driver owns one level session's simulation lifecycle. Listener is the
// callback surface consumed by the websocket hub and by tests.
//
// Usage:
//
//	driver := sim.NewDriver(listener, sim.DefaultTickInterval)
//
//	runID, err := driver.Start(ctx, eng)
//	if err != nil {
//		// route blocked or a run already active
//	}
//
//	// later, if the player leaves the level:
//	driver.Cancel()
//
// Concurrency:
//
// Start resolves the route synchronously and spawns one goroutine for the
// animation. Listener callbacks run on that goroutine. The driver never
// edits the track graph; the service layer rejects graph edits while the
// driver is active, which keeps resolution and edits mutually exclusive.
package sim
