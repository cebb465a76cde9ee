package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func createTestLevel() *LevelConfig {
	level := &LevelConfig{
		Name:        "Config Test Level",
		Description: "Level for configuration tests",
		Width:       8,
		Height:      8,
		Stations: []Station{
			{ID: "a", Name: "Alpha", X: 1, Y: 1},
			{ID: "b", Name: "Beta", X: 6, Y: 6},
		},
		Obstacles: []Obstacle{
			{Type: "river", X: 3, Y: 3},
		},
		RouteRequest: []string{"a", "b"},
	}
	level.Messages.Welcome = "Welcome!"
	level.Messages.Departing = "Departing from %s"
	level.Messages.Blocked = "No connection between %s and %s"
	level.Messages.Completed = "Line complete!"
	level.Messages.Collision = "Can't lay track there!"
	return level
}

func TestValidateLevelConfig_Valid(t *testing.T) {
	if err := ValidateLevelConfig(createTestLevel()); err != nil {
		t.Errorf("Expected valid level, got: %v", err)
	}
}

func TestValidateLevelConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LevelConfig)
	}{
		{"missing name", func(l *LevelConfig) { l.Name = "" }},
		{"missing description", func(l *LevelConfig) { l.Description = "" }},
		{"width too small", func(l *LevelConfig) { l.Width = MinGridSize - 1 }},
		{"height too large", func(l *LevelConfig) { l.Height = MaxGridSize + 1 }},
		{"too few stations", func(l *LevelConfig) { l.Stations = l.Stations[:1] }},
		{"station without id", func(l *LevelConfig) { l.Stations[0].ID = "" }},
		{"station without name", func(l *LevelConfig) { l.Stations[0].Name = "" }},
		{"duplicate station id", func(l *LevelConfig) { l.Stations[1].ID = l.Stations[0].ID }},
		{"station out of bounds", func(l *LevelConfig) { l.Stations[0].X = 99 }},
		{"stations share cell", func(l *LevelConfig) {
			l.Stations[1].X = l.Stations[0].X
			l.Stations[1].Y = l.Stations[0].Y
		}},
		{"obstacle out of bounds", func(l *LevelConfig) { l.Obstacles[0].Y = -1 }},
		{"obstacle on station", func(l *LevelConfig) {
			l.Obstacles[0].X = l.Stations[0].X
			l.Obstacles[0].Y = l.Stations[0].Y
		}},
		{"empty route request", func(l *LevelConfig) { l.RouteRequest = nil }},
		{"unknown route station", func(l *LevelConfig) { l.RouteRequest = []string{"a", "nope"} }},
		{"missing welcome message", func(l *LevelConfig) { l.Messages.Welcome = "" }},
		{"missing completed message", func(l *LevelConfig) { l.Messages.Completed = "" }},
		{"blocked message lacks placeholders", func(l *LevelConfig) { l.Messages.Blocked = "blocked" }},
		{"missing collision message", func(l *LevelConfig) { l.Messages.Collision = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := createTestLevel()
			tt.mutate(level)
			if err := ValidateLevelConfig(level); err == nil {
				t.Errorf("Expected validation error for %s", tt.name)
			}
		})
	}
}

func TestValidateLevelConfig_RouteWithRepeatedStops(t *testing.T) {
	level := createTestLevel()
	level.RouteRequest = []string{"a", "b", "a", "a"}
	if err := ValidateLevelConfig(level); err != nil {
		t.Errorf("Round trips with repeated stops must validate, got: %v", err)
	}
}

func TestDefaultLevel(t *testing.T) {
	level := DefaultLevel()
	if err := ValidateLevelConfig(level); err != nil {
		t.Fatalf("Default level must validate: %v", err)
	}
	if len(level.RouteRequest) < 2 {
		t.Error("Default level should request a multi-stop route")
	}
}

func TestLoadLevelConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")

	data := `{
		"name": "Loaded Level",
		"description": "From disk",
		"width": 6,
		"height": 6,
		"stations": [
			{"id": "s1", "name": "One", "x": 0, "y": 0},
			{"id": "s2", "name": "Two", "x": 5, "y": 5}
		],
		"obstacles": [{"type": "building", "x": 2, "y": 2}],
		"route_request": ["s1", "s2"],
		"messages": {
			"welcome": "Hi!",
			"departing": "Departing from %s",
			"blocked": "No connection between %s and %s",
			"completed": "Done!",
			"collision": "Blocked!"
		}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write test level: %v", err)
	}

	level, err := LoadLevelConfig(path)
	if err != nil {
		t.Fatalf("LoadLevelConfig failed: %v", err)
	}
	if level.Name != "Loaded Level" {
		t.Errorf("Expected name 'Loaded Level', got %q", level.Name)
	}
	if len(level.Stations) != 2 {
		t.Errorf("Expected 2 stations, got %d", len(level.Stations))
	}
}

func TestLoadLevelConfig_MissingFile(t *testing.T) {
	if _, err := LoadLevelConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadLevelConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	if _, err := LoadLevelConfig(path); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
