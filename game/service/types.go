package service

import (
	"time"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
)

// SessionInfo provides information about a level session
type SessionInfo struct {
	ID             string              `json:"id"`
	LevelID        string              `json:"level_id"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	State          *engine.LevelState  `json:"state"`
	Level          *engine.LevelConfig `json:"level"`
}

// EditResult contains the result of a connect or disconnect command
type EditResult struct {
	Success   bool               `json:"success"`
	State     *engine.LevelState `json:"state"`
	Message   string             `json:"message"`
	Collision *engine.Coord      `json:"collision,omitempty"` // the obstacle cell that rejected the edit
	Events    []GameEvent        `json:"events,omitempty"`
}

// BlockedInfo names the first station pair with no connecting track
type BlockedInfo struct {
	From engine.Station `json:"from"`
	To   engine.Station `json:"to"`
}

// RunResult contains the outcome of a simulation start request
type RunResult struct {
	RunID   string       `json:"run_id"`
	Success bool         `json:"success"`
	State   string       `json:"state"` // "animating" or "blocked"
	Message string       `json:"message,omitempty"`
	Blocked *BlockedInfo `json:"blocked,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string        `json:"type"` // "track_drawn", "track_erased", "collision", "clear"
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Cell      *engine.Coord `json:"cell,omitempty"`
}

// HistoryOptions configures edit history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated edit history
type HistoryResponse struct {
	Edits       []engine.EditHistoryEntry `json:"edits"`
	TotalEdits  int                       `json:"total_edits"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// LevelInfo provides information about a level configuration
type LevelInfo struct {
	Filename     string `json:"filename"`
	LevelID      string `json:"level_id"` // The identifier to use for session creation
	Name         string `json:"name"`     // Display name
	Description  string `json:"description"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	StationCount int    `json:"station_count"`
	RouteStops   int    `json:"route_stops"`
}
