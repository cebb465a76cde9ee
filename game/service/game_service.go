package service

import (
	"context"
	"time"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
	"github.com/ffrraannccoo/Tejedor-de-subtes/game/sim"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, levelID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Track Editing
	ConnectTrack(ctx context.Context, sessionID string, a, b engine.Coord, color engine.Color) (*EditResult, error)
	DisconnectTrack(ctx context.Context, sessionID string, a, b engine.Coord) (*EditResult, error)
	ClearTracks(ctx context.Context, sessionID string) (*engine.LevelState, error)

	// Simulation
	StartSimulation(ctx context.Context, sessionID string) (*RunResult, error)
	CancelSimulation(ctx context.Context, sessionID string) error

	// Game State
	GetState(ctx context.Context, sessionID string) (*engine.LevelState, error)
	GetEditHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Levels
	ListLevels(ctx context.Context) ([]*LevelInfo, error)
	LoadLevel(ctx context.Context, levelID string) (*engine.LevelConfig, error)
	SaveLevel(ctx context.Context, levelID string, level *engine.LevelConfig) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, level *engine.LevelConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, level *engine.LevelConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// LevelManager handles level configuration loading
type LevelManager interface {
	LoadLevel(name string) (*engine.LevelConfig, error)
	ListLevels() ([]*LevelInfo, error)
	GetDefault() *engine.LevelConfig
	SaveLevel(name string, level *engine.LevelConfig) error
}

// SimulationEvents receives the per-session simulation stream. The
// websocket hub implements it; a nil implementation is allowed and
// discards events.
type SimulationEvents interface {
	SimulationPosition(sessionID, runID string, pos engine.Coord, step, total int)
	SimulationBlocked(sessionID, runID string, from, to engine.Station)
	SimulationCompleted(sessionID, runID string)
}

// Session represents an active level session
type Session struct {
	ID             string
	Engine         *engine.LevelEngine
	Driver         *sim.Driver
	Level          *engine.LevelConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
