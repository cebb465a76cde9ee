package session

import (
	"errors"
	"testing"
	"time"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
)

func createTestLevel() *engine.LevelConfig {
	return &engine.LevelConfig{
		Name:        "Test Level",
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

func TestManager_Create(t *testing.T) {
	m := NewManager()

	session, err := m.Create("abc1", createTestLevel())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.ID != "abc1" {
		t.Errorf("Expected session ID 'abc1', got '%s'", session.ID)
	}
	if session.Engine == nil {
		t.Error("Expected session to have an engine")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}
}

func TestManager_Create_GeneratedID(t *testing.T) {
	m := NewManager()

	session, err := m.Create("", createTestLevel())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(session.ID) != 4 {
		t.Errorf("Expected generated 4-character ID, got '%s'", session.ID)
	}
}

func TestManager_Create_Duplicate(t *testing.T) {
	m := NewManager()
	level := createTestLevel()

	if _, err := m.Create("dup1", level); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	if _, err := m.Create("dup1", level); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
	}

	// IDs are case-insensitive
	if _, err := m.Create("DUP1", level); !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("Expected ErrSessionAlreadyExists for uppercase ID, got %v", err)
	}
}

func TestManager_Get(t *testing.T) {
	m := NewManager()
	created, _ := m.Create("get1", createTestLevel())

	session, err := m.Get("get1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session != created {
		t.Error("Expected the same session instance")
	}

	upper, err := m.Get("GET1")
	if err != nil {
		t.Fatalf("Case-insensitive Get failed: %v", err)
	}
	if upper != created {
		t.Error("Expected case-insensitive lookup to find the session")
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	m := NewManager()

	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_GetOrCreate(t *testing.T) {
	m := NewManager()
	level := createTestLevel()

	first, err := m.GetOrCreate("goc1", level)
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}

	second, err := m.GetOrCreate("goc1", level)
	if err != nil {
		t.Fatalf("Second GetOrCreate failed: %v", err)
	}
	if first != second {
		t.Error("Expected GetOrCreate to return the existing session")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", m.Count())
	}
}

func TestManager_List(t *testing.T) {
	m := NewManager()
	level := createTestLevel()
	m.Create("l1", level)
	m.Create("l2", level)

	sessions := m.List()
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}
}

func TestManager_Delete(t *testing.T) {
	m := NewManager()
	m.Create("del1", createTestLevel())

	if err := m.Delete("del1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if m.Count() != 0 {
		t.Errorf("Expected 0 sessions, got %d", m.Count())
	}

	if err := m.Delete("del1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	m := NewManager()
	session, _ := m.Create("upd1", createTestLevel())

	before := session.LastAccessedAt
	time.Sleep(5 * time.Millisecond)

	if err := m.UpdateLastAccessed("upd1"); err != nil {
		t.Fatalf("UpdateLastAccessed failed: %v", err)
	}
	if !session.LastAccessedAt.After(before) {
		t.Error("Expected LastAccessedAt to advance")
	}
}

func TestManager_CleanupExpiredSessions(t *testing.T) {
	m := NewManager()
	level := createTestLevel()

	stale, _ := m.Create("old1", level)
	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	m.Create("new1", level)

	removed := m.CleanupExpiredSessions(time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 session remaining, got %d", m.Count())
	}
	if _, err := m.Get("old1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected stale session to be gone, got %v", err)
	}
	if _, err := m.Get("new1"); err != nil {
		t.Errorf("Expected fresh session to survive: %v", err)
	}
}
