// Package engine provides the core game logic for the Subway Weaver game.
//
// The engine package implements the game mechanics including:
//   - The player-editable undirected track graph with per-edge colors
//   - Obstacle collision checks on every edit
//   - Route validation via breadth-first search between route stops
//   - Level configuration loading and validation
//   - Edit history tracking
//
// Core Types:
//
// The Engine interface defines the main contract for level operations,
// implemented by LevelEngine. TrackGraph holds the drawn tracks, while
// LevelConfig defines the stations, obstacles and requested route loaded
// from JSON files.
//
// Usage:
//
//	level, err := engine.LoadLevelConfig("levels/centro.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.NewEngine(level)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Draw a track segment
//	err = eng.Connect(engine.Coord{X: 1, Y: 1}, engine.Coord{X: 2, Y: 1}, engine.ColorRed)
//
//	// Validate the requested route against the drawn tracks
//	path, err := eng.ResolveRoute()
//
// Game Rules:
//
// Players draw track edges between grid cells to connect the level's
// stations. Edges may never touch an obstacle cell; such edits are
// rejected with a CollisionError and leave the graph unchanged. Starting
// the train resolves the level's route request against the drawn tracks:
// if every consecutive station pair is connected the train traverses the
// concatenated shortest paths, otherwise the first unconnected pair is
// reported.
package engine
