// Package session provides session management for the Subway Weaver game.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management and expiry cleanup
//   - File-based persistence of drawn tracks
//
// Core Types:
//
// Manager is the main session manager that handles all session
// operations. Each session owns one level engine (the track graph being
// edited) and, once the train has been started at least once, a
// simulation driver.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated with
// cryptographic randomness. Lookups are case-insensitive.
//
// Persistence:
//
// FilePersistence stores only what the player produced — the track edges
// and their colors — plus the level ID. On load, the level configuration
// is re-read by ID and the edges are replayed into a fresh engine.
package session
