// Package websocket provides the real-time transport for level sessions.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded with a session_id, an event name, and either
// a full level state snapshot or an event payload:
//   - state_update: full LevelState after a track edit or clear
//   - train_position: one cell of the animating train, with step/total
//   - simulation_blocked: the first station pair with no connecting track
//   - simulation_completed: the train served every requested stop
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?sessionId=abc1) when establishing the connection.
// Updates are broadcast only to clients connected to the same session.
//
// The Hub satisfies the service layer's SimulationEvents interface, so the
// simulation driver's emissions reach connected clients without the service
// knowing about transports.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("sessionId"))
//	})
//
// Concurrency:
//
// All broadcasts are routed through the hub's event loop, so state updates
// and simulation emissions may be produced from any goroutine.
package websocket
