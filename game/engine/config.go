package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateLevelConfig validates a level configuration for correctness and
// playability
func ValidateLevelConfig(level *LevelConfig) error {
	if level == nil {
		return fmt.Errorf("level validation: level is nil")
	}
	if level.Name == "" {
		return fmt.Errorf("level validation: name is required")
	}
	if level.Description == "" {
		return fmt.Errorf("level validation: description is required")
	}

	if level.Width < MinGridSize || level.Width > MaxGridSize {
		return fmt.Errorf("level validation: width must be between %d and %d, got %d", MinGridSize, MaxGridSize, level.Width)
	}
	if level.Height < MinGridSize || level.Height > MaxGridSize {
		return fmt.Errorf("level validation: height must be between %d and %d, got %d", MinGridSize, MaxGridSize, level.Height)
	}

	if len(level.Stations) < MinStations {
		return fmt.Errorf("level validation: at least %d stations required, got %d", MinStations, len(level.Stations))
	}

	seenIDs := make(map[string]bool, len(level.Stations))
	seenCells := make(map[Coord]bool, len(level.Stations))
	for i, s := range level.Stations {
		if s.ID == "" {
			return fmt.Errorf("level validation: station %d has no id", i+1)
		}
		if s.Name == "" {
			return fmt.Errorf("level validation: station '%s' has no name", s.ID)
		}
		if seenIDs[s.ID] {
			return fmt.Errorf("level validation: duplicate station id '%s'", s.ID)
		}
		seenIDs[s.ID] = true

		if s.X < 0 || s.X >= level.Width || s.Y < 0 || s.Y >= level.Height {
			return fmt.Errorf("level validation: station '%s' at (%d,%d) is outside the %dx%d grid", s.ID, s.X, s.Y, level.Width, level.Height)
		}
		if seenCells[s.Coord()] {
			return fmt.Errorf("level validation: two stations share cell (%d,%d)", s.X, s.Y)
		}
		seenCells[s.Coord()] = true
	}

	for _, o := range level.Obstacles {
		if o.X < 0 || o.X >= level.Width || o.Y < 0 || o.Y >= level.Height {
			return fmt.Errorf("level validation: obstacle at (%d,%d) is outside the %dx%d grid", o.X, o.Y, level.Width, level.Height)
		}
		if seenCells[o.Coord()] {
			return fmt.Errorf("level validation: obstacle at (%d,%d) overlaps a station", o.X, o.Y)
		}
	}

	if len(level.RouteRequest) == 0 {
		return fmt.Errorf("level validation: route_request must contain at least one stop")
	}
	if len(level.RouteRequest) > MaxRouteStops {
		return fmt.Errorf("level validation: route_request must not exceed %d stops, got %d", MaxRouteStops, len(level.RouteRequest))
	}
	for _, id := range level.RouteRequest {
		if !seenIDs[id] {
			return fmt.Errorf("level validation: route_request references unknown station '%s'", id)
		}
	}

	if level.Messages.Welcome == "" {
		return fmt.Errorf("level validation: messages.welcome is required")
	}
	if level.Messages.Completed == "" {
		return fmt.Errorf("level validation: messages.completed is required")
	}
	if strings.Count(level.Messages.Blocked, "%s") != 2 {
		return fmt.Errorf("level validation: messages.blocked must contain %%s twice for the station names")
	}
	if level.Messages.Collision == "" {
		return fmt.Errorf("level validation: messages.collision is required")
	}

	return nil
}

// LoadLevelConfig loads a level configuration from a JSON file.
// LEVELS_DIR can override the default levels directory for paths that
// start with "levels/".
func LoadLevelConfig(filename string) (*LevelConfig, error) {
	levelPath := filename
	if levelsDir := os.Getenv("LEVELS_DIR"); levelsDir != "" {
		if strings.HasPrefix(filename, "levels/") {
			levelPath = filepath.Join(levelsDir, strings.TrimPrefix(filename, "levels/"))
		}
	}

	data, err := os.ReadFile(levelPath)
	if err != nil {
		return nil, err
	}

	var level LevelConfig
	if err := json.Unmarshal(data, &level); err != nil {
		return nil, err
	}

	if err := ValidateLevelConfig(&level); err != nil {
		return nil, err
	}

	return &level, nil
}

// DefaultLevel returns the built-in level used when no level directory is
// configured
func DefaultLevel() *LevelConfig {
	level := &LevelConfig{
		Name:        "Centro",
		Description: "Four downtown stations, a river of obstacle cells in the middle",
		Width:       10,
		Height:      10,
		Stations: []Station{
			{ID: "retiro", Name: "Retiro", X: 1, Y: 1},
			{ID: "catedral", Name: "Catedral", X: 8, Y: 1},
			{ID: "congreso", Name: "Congreso", X: 1, Y: 8},
			{ID: "boca", Name: "La Boca", X: 8, Y: 8},
		},
		Obstacles: []Obstacle{
			{Type: "river", X: 4, Y: 3},
			{Type: "river", X: 4, Y: 4},
			{Type: "river", X: 4, Y: 5},
			{Type: "river", X: 5, Y: 3},
			{Type: "river", X: 5, Y: 4},
			{Type: "building", X: 2, Y: 6},
			{Type: "building", X: 7, Y: 3},
		},
		RouteRequest: []string{"retiro", "catedral", "boca", "congreso", "retiro"},
	}
	level.Messages.Welcome = "Draw tracks to connect the stations, then start the train!"
	level.Messages.Departing = "Train departing from %s"
	level.Messages.Blocked = "No connection between %s and %s"
	level.Messages.Completed = "All stops served! Line complete!"
	level.Messages.Collision = "Can't lay track there!"
	return level
}
