// Package service defines the application-facing operations of the Subway
// Weaver game and their default implementation.
//
// The service package implements:
//   - Session lifecycle (create, get, list, delete)
//   - Track edit commands with collision reporting
//   - Simulation start/cancel with blocked-route outcomes
//   - Paginated edit history
//   - Level listing and loading
//
// Core Types:
//
// GameService is the single interface consumed by the REST API and the
// MCP transport. SessionManager and LevelManager abstract the storage
// collaborators; SimulationEvents is the sink for the live train stream,
// implemented by the websocket hub.
//
// Concurrency:
//
// All operations are serialized per service instance with a read/write
// mutex. Track edits are additionally rejected with ErrEditLocked while a
// session's simulation driver is resolving or animating, which keeps
// graph mutation and route resolution mutually exclusive without locking
// inside the engine itself.
package service
