// Package mcp provides the Model Context Protocol interface for AI agents.
//
// The package is a thin client: every tool call is proxied to the REST API,
// so the MCP surface and the HTTP surface always agree on semantics.
//
// MCP Tools:
//
//   - create_session: Create a new level session with level selection
//   - list_sessions: List all active sessions
//   - get_session: Get session details with the rendered level map
//   - level_state: Get the current level state
//   - connect_track: Draw one track segment between two cells
//   - disconnect_track: Erase one track segment
//   - clear_tracks: Wipe all drawn tracks
//   - start_train: Resolve the requested route and run the train
//   - cancel_train: Abandon a running train
//   - edit_history: Retrieve edit history with pagination
//   - list_levels: List available levels
//   - describe_cell: Inspect one grid cell (station, obstacle, tracks)
//   - game_instructions: Full rules and strategy notes
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: the /mcp endpoint on the REST server for remote integration
package mcp
