package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
)

func writeTestLevel(t *testing.T, dir, name string, level *engine.LevelConfig) {
	t.Helper()
	data, err := json.Marshal(level)
	if err != nil {
		t.Fatalf("Failed to marshal level: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write level file: %v", err)
	}
}

func testLevel(name string) *engine.LevelConfig {
	return &engine.LevelConfig{
		Name:        name,
		Description: "A test level",
		Width:       8,
		Height:      8,
		Stations: []engine.Station{
			{ID: "a", Name: "Alpha", X: 1, Y: 1},
			{ID: "b", Name: "Beta", X: 6, Y: 6},
		},
		RouteRequest: []string{"a", "b"},
		Messages: engine.LevelMessages{
			Welcome:   "Welcome",
			Departing: "Departing",
			Blocked:   "No route from %s to %s",
			Completed: "Done",
			Collision: "Blocked cell",
		},
	}
}

func TestNewManager_MissingDir(t *testing.T) {
	_, err := NewManager("/nonexistent/levels/dir")
	if err == nil {
		t.Fatal("Expected error for missing levels directory")
	}
}

func TestManager_LoadLevel(t *testing.T) {
	dir := t.TempDir()
	writeTestLevel(t, dir, "plaza", testLevel("Plaza"))

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	level, err := m.LoadLevel("plaza")
	if err != nil {
		t.Fatalf("LoadLevel failed: %v", err)
	}
	if level.Name != "Plaza" {
		t.Errorf("Expected level name 'Plaza', got '%s'", level.Name)
	}

	// Second load comes from the cache and returns the same pointer
	again, err := m.LoadLevel("plaza")
	if err != nil {
		t.Fatalf("Cached LoadLevel failed: %v", err)
	}
	if again != level {
		t.Error("Expected cached level to be the same instance")
	}
}

func TestManager_LoadLevel_NotFound(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	_, err = m.LoadLevel("missing")
	if !errors.Is(err, ErrLevelNotFound) {
		t.Errorf("Expected ErrLevelNotFound, got %v", err)
	}
}

func TestManager_LoadLevel_Invalid(t *testing.T) {
	dir := t.TempDir()
	bad := testLevel("Bad")
	bad.Stations = nil
	writeTestLevel(t, dir, "bad", bad)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	_, err = m.LoadLevel("bad")
	if !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Expected ErrInvalidLevel, got %v", err)
	}
}

func TestManager_ListLevels(t *testing.T) {
	dir := t.TempDir()
	writeTestLevel(t, dir, "plaza", testLevel("Plaza"))
	writeTestLevel(t, dir, "puerto", testLevel("Puerto"))

	// Invalid files are skipped, not fatal
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("Failed to write broken file: %v", err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	levels, err := m.ListLevels()
	if err != nil {
		t.Fatalf("ListLevels failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("Expected 2 levels, got %d", len(levels))
	}
	for _, info := range levels {
		if info.StationCount != 2 {
			t.Errorf("Expected 2 stations in %s, got %d", info.LevelID, info.StationCount)
		}
		if info.RouteStops != 2 {
			t.Errorf("Expected 2 route stops in %s, got %d", info.LevelID, info.RouteStops)
		}
	}
}

func TestManager_GetDefault_BuiltIn(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	def := m.GetDefault()
	if def == nil {
		t.Fatal("Expected a default level")
	}
	if err := engine.ValidateLevelConfig(def); err != nil {
		t.Errorf("Default level is invalid: %v", err)
	}
}

func TestManager_GetDefault_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestLevel(t, dir, "centro", testLevel("Centro Custom"))

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	def := m.GetDefault()
	if def.Name != "Centro Custom" {
		t.Errorf("Expected directory default 'Centro Custom', got '%s'", def.Name)
	}
}

func TestManager_SaveLevel(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	level := testLevel("Saved")
	if err := m.SaveLevel("saved", level); err != nil {
		t.Fatalf("SaveLevel failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Errorf("Expected saved level file on disk: %v", err)
	}

	loaded, err := m.LoadLevel("saved")
	if err != nil {
		t.Fatalf("LoadLevel after save failed: %v", err)
	}
	if loaded.Name != "Saved" {
		t.Errorf("Expected 'Saved', got '%s'", loaded.Name)
	}
}

func TestManager_SaveLevel_Invalid(t *testing.T) {
	m, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	bad := testLevel("Bad")
	bad.Width = 0
	if err := m.SaveLevel("bad", bad); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("Expected ErrInvalidLevel, got %v", err)
	}
}
