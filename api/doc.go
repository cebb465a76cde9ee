// Package api provides the REST interface for level sessions.
//
// Endpoints:
//
//	POST   /api/sessions                  create a session (optional level_id)
//	GET    /api/sessions                  list sessions (sort, order, limit)
//	GET    /api/sessions/{id}             session info with full level state
//	DELETE /api/sessions/{id}             delete a session
//	GET    /api/sessions/{id}/state       current level state snapshot
//	POST   /api/sessions/{id}/connect     draw a track edge {ax,ay,bx,by,color}
//	POST   /api/sessions/{id}/disconnect  erase a track edge {ax,ay,bx,by}
//	POST   /api/sessions/{id}/clear       wipe all drawn tracks
//	GET    /api/sessions/{id}/history     paginated edit history
//	POST   /api/sessions/{id}/start       resolve the route and start the train
//	POST   /api/sessions/{id}/cancel      abandon the in-progress run
//	GET    /api/levels                    list available levels
//	POST   /api/levels                    save a level configuration
//	GET    /api/levels/{name}             full level configuration
//	GET    /api/health                    health check
//	GET    /ws?session={id}               WebSocket upgrade for live updates
//
// Rejected edits (a collision with an obstacle, a blocked route) are game
// outcomes and return 200 with the outcome in the body. Transport failures
// use conventional status codes; edits attempted while the train is running
// return 409.
//
// After each successful mutation the server broadcasts the new level state
// to the session's WebSocket clients.
package api
