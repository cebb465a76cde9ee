package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for level operations
type Engine interface {
	// Track editing
	Connect(a, b Coord, color Color) error
	Disconnect(a, b Coord) error
	Clear()

	// Queries
	Graph() *TrackGraph
	Level() *LevelConfig
	State() *LevelState
	StationByID(id string) (Station, bool)
	StationAt(c Coord) (Station, bool)
	Waypoints() []Coord

	// Route validation
	ResolveRoute() ([]Coord, error)

	// History
	EditHistory() []EditHistoryEntry
}

// LevelEngine implements the Engine interface for one level session.
// It owns the session's track graph; stations and obstacles are immutable
// level data.
type LevelEngine struct {
	level        *LevelConfig
	graph        *TrackGraph
	stationsByID map[string]Station
	stationsAt   map[Coord]Station
	history      []EditHistoryEntry
	totalEdits   int
	message      string
}

// NewEngine creates a level engine for the provided level configuration
func NewEngine(level *LevelConfig) (*LevelEngine, error) {
	if err := ValidateLevelConfig(level); err != nil {
		return nil, err
	}

	e := &LevelEngine{
		level:        level,
		graph:        NewTrackGraph(level.Obstacles),
		stationsByID: make(map[string]Station, len(level.Stations)),
		stationsAt:   make(map[Coord]Station, len(level.Stations)),
		message:      level.Messages.Welcome,
	}
	for _, s := range level.Stations {
		e.stationsByID[s.ID] = s
		e.stationsAt[s.Coord()] = s
	}
	return e, nil
}

// Level returns the immutable level configuration
func (e *LevelEngine) Level() *LevelConfig {
	return e.level
}

// Graph returns the session's track graph
func (e *LevelEngine) Graph() *TrackGraph {
	return e.graph
}

// Connect draws the track edge a-b with the given color and records the
// edit. A collision leaves the graph untouched and is recorded as a
// failed edit.
func (e *LevelEngine) Connect(a, b Coord, color Color) error {
	err := e.graph.Connect(a, b, color)
	e.recordEdit("connect", a, b, color, err == nil)
	if err != nil {
		e.message = e.level.Messages.Collision
		return err
	}
	e.message = fmt.Sprintf("Track drawn from (%d,%d) to (%d,%d)", a.X, a.Y, b.X, b.Y)
	return nil
}

// Disconnect erases the track edge a-b and records the edit
func (e *LevelEngine) Disconnect(a, b Coord) error {
	err := e.graph.Disconnect(a, b)
	e.recordEdit("disconnect", a, b, "", err == nil)
	if err != nil {
		e.message = e.level.Messages.Collision
		return err
	}
	e.message = fmt.Sprintf("Track erased from (%d,%d) to (%d,%d)", a.X, a.Y, b.X, b.Y)
	return nil
}

// Clear wipes all drawn tracks. Stations and obstacles are unaffected
func (e *LevelEngine) Clear() {
	e.graph.Clear()
	e.recordEdit("clear", Coord{}, Coord{}, "", true)
	e.message = e.level.Messages.Welcome
}

// StationByID looks up a station by its identifier
func (e *LevelEngine) StationByID(id string) (Station, bool) {
	s, ok := e.stationsByID[id]
	return s, ok
}

// StationAt looks up the station occupying a grid cell, if any
func (e *LevelEngine) StationAt(c Coord) (Station, bool) {
	s, ok := e.stationsAt[c]
	return s, ok
}

// Waypoints resolves the level's route request to station coordinates in
// visit order. The request is validated at construction, so every ID
// resolves.
func (e *LevelEngine) Waypoints() []Coord {
	waypoints := make([]Coord, len(e.level.RouteRequest))
	for i, id := range e.level.RouteRequest {
		waypoints[i] = e.stationsByID[id].Coord()
	}
	return waypoints
}

// ResolveRoute validates the requested route against the current tracks
// and returns the full cell path the train will traverse
func (e *LevelEngine) ResolveRoute() ([]Coord, error) {
	return ResolveRoute(e.Waypoints(), e.graph)
}

// SetEdges restores a drawn track layout, replacing the current one.
// Used when loading a persisted session.
func (e *LevelEngine) SetEdges(edges []TrackEdge) error {
	e.graph.Clear()
	for _, edge := range edges {
		if err := e.graph.Connect(edge.A, edge.B, edge.Color); err != nil {
			return fmt.Errorf("restore edge (%d,%d)-(%d,%d): %w", edge.A.X, edge.A.Y, edge.B.X, edge.B.Y, err)
		}
	}
	return nil
}

// State returns a snapshot of the session for transport and persistence
func (e *LevelEngine) State() *LevelState {
	return &LevelState{
		LevelName:    e.level.Name,
		Width:        e.level.Width,
		Height:       e.level.Height,
		Stations:     e.level.Stations,
		Obstacles:    e.level.Obstacles,
		RouteRequest: e.level.RouteRequest,
		Edges:        e.graph.Edges(),
		EdgeCount:    e.graph.EdgeCount(),
		TotalEdits:   e.totalEdits,
		Message:      e.message,
	}
}

// EditHistory returns the cumulative edit history
func (e *LevelEngine) EditHistory() []EditHistoryEntry {
	return e.history
}

func (e *LevelEngine) recordEdit(action string, a, b Coord, color Color, success bool) {
	e.totalEdits++
	e.history = append(e.history, EditHistoryEntry{
		Action:     action,
		A:          a,
		B:          b,
		Color:      color,
		Success:    success,
		Timestamp:  time.Now().Unix(),
		EditNumber: e.totalEdits,
	})
}
