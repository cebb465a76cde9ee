package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
	"github.com/ffrraannccoo/Tejedor-de-subtes/game/sim"
)

// ErrEditLocked is returned for track edits requested while the session's
// simulation is resolving or animating. Edits and route resolution are
// mutually exclusive.
var ErrEditLocked = errors.New("track editing is locked while the train is running")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	levels   LevelManager
	events   SimulationEvents
	tick     time.Duration
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. events may be nil,
// in which case simulation events are discarded. A non-positive tick
// selects the driver's default cadence.
func NewGameService(sessions SessionManager, levels LevelManager, events SimulationEvents, tick time.Duration) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		levels:   levels,
		events:   events,
		tick:     tick,
	}
}

// runListener adapts one session's driver callbacks onto the shared
// SimulationEvents sink
type runListener struct {
	events    SimulationEvents
	sessionID string
}

func (l *runListener) OnPosition(runID string, pos engine.Coord, step, total int) {
	if l.events != nil {
		l.events.SimulationPosition(l.sessionID, runID, pos, step, total)
	}
}

func (l *runListener) OnBlocked(runID string, from, to engine.Station) {
	if l.events != nil {
		l.events.SimulationBlocked(l.sessionID, runID, from, to)
	}
}

func (l *runListener) OnCompleted(runID string) {
	if l.events != nil {
		l.events.SimulationCompleted(l.sessionID, runID)
	}
}

// getLevelID returns the level_id for a given level display name, used for
// consistent API responses
func (s *gameServiceImpl) getLevelID(levelName string) string {
	availableLevels, err := s.levels.ListLevels()
	if err == nil {
		for _, lvl := range availableLevels {
			if lvl.Name == levelName {
				return lvl.LevelID
			}
		}
	}
	if levelName == "" {
		return "default"
	}
	return levelName
}

// CreateSession creates a new level session
func (s *gameServiceImpl) CreateSession(ctx context.Context, levelID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var level *engine.LevelConfig
	var err error
	if levelID != "" {
		level, err = s.levels.LoadLevel(levelID)
		if err != nil {
			if strings.Contains(err.Error(), "level not found") {
				availableLevels, listErr := s.levels.ListLevels()
				if listErr == nil && len(availableLevels) > 0 {
					var levelIDs []string
					for _, lvl := range availableLevels {
						levelIDs = append(levelIDs, lvl.LevelID)
					}
					return nil, fmt.Errorf("level '%s' not found. Available levels: %v", levelID, levelIDs)
				}
				return nil, fmt.Errorf("level '%s' not found. Use /api/levels to list available levels", levelID)
			}
			return nil, fmt.Errorf("failed to load level %s: %w", levelID, err)
		}
	} else {
		level = s.levels.GetDefault()
	}

	// Let the session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", level)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	id := levelID
	if id == "" {
		id = s.getLevelID(level.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		LevelID:        id,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		State:          session.Engine.State(),
		Level:          session.Level,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		LevelID:        s.getLevelID(session.Level.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		State:          session.Engine.State(),
		Level:          session.Level,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			LevelID:        s.getLevelID(sess.Level.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			State:          sess.Engine.State(),
			Level:          sess.Level,
		})
	}

	return result, nil
}

// DeleteSession removes a session, abandoning any in-progress simulation
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, err := s.sessions.Get(sessionID); err == nil && sess.Driver != nil {
		sess.Driver.Cancel()
	}

	return s.sessions.Delete(sessionID)
}

// ConnectTrack draws a track edge between two cells
func (s *gameServiceImpl) ConnectTrack(ctx context.Context, sessionID string, a, b engine.Coord, color engine.Color) (*EditResult, error) {
	return s.applyEdit(sessionID, func(sess *Session) (string, *engine.Coord, error) {
		if err := sess.Engine.Connect(a, b, color); err != nil {
			return "collision", collisionCell(err), err
		}
		return "track_drawn", nil, nil
	})
}

// DisconnectTrack erases a track edge between two cells
func (s *gameServiceImpl) DisconnectTrack(ctx context.Context, sessionID string, a, b engine.Coord) (*EditResult, error) {
	return s.applyEdit(sessionID, func(sess *Session) (string, *engine.Coord, error) {
		if err := sess.Engine.Disconnect(a, b); err != nil {
			return "collision", collisionCell(err), err
		}
		return "track_erased", nil, nil
	})
}

// applyEdit runs one edit command under the service lock with the shared
// gating, event and persistence behavior
func (s *gameServiceImpl) applyEdit(sessionID string, edit func(*Session) (string, *engine.Coord, error)) (*EditResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	// Edits are rejected while the train is running; the graph must not
	// change under an active route.
	if sess.Driver != nil && sess.Driver.Active() {
		return nil, ErrEditLocked
	}

	s.sessions.UpdateLastAccessed(sessionID)

	eventType, collision, editErr := edit(sess)
	state := sess.Engine.State()

	result := &EditResult{
		Success:   editErr == nil,
		State:     state,
		Message:   state.Message,
		Collision: collision,
		Events: []GameEvent{{
			Type:      eventType,
			Message:   state.Message,
			Timestamp: time.Now(),
			Cell:      collision,
		}},
	}

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after edit: %v", sessionID, err)
	}

	return result, nil
}

// collisionCell extracts the offending obstacle cell from a mutation error
func collisionCell(err error) *engine.Coord {
	var collision *engine.CollisionError
	if errors.As(err, &collision) {
		cell := collision.Cell
		return &cell
	}
	return nil
}

// ClearTracks wipes all drawn tracks in a session
func (s *gameServiceImpl) ClearTracks(ctx context.Context, sessionID string) (*engine.LevelState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	if sess.Driver != nil && sess.Driver.Active() {
		return nil, ErrEditLocked
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.Clear()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after clear: %v", sessionID, err)
	}

	return sess.Engine.State(), nil
}

// StartSimulation resolves the session's requested route and starts the
// train. A blocked route is a game outcome, not an error: the result
// carries the first unconnected station pair.
func (s *gameServiceImpl) StartSimulation(ctx context.Context, sessionID string) (*RunResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	if sess.Driver == nil {
		sess.Driver = sim.NewDriver(&runListener{events: s.events, sessionID: sess.ID}, s.tick)
	}

	// The run must outlive the HTTP request that started it; cancellation
	// goes through CancelSimulation or DeleteSession.
	runID, err := sess.Driver.Start(context.Background(), sess.Engine)
	if err != nil {
		if errors.Is(err, sim.ErrSimulationActive) {
			return nil, err
		}

		var unreachable *engine.UnreachableError
		if errors.As(err, &unreachable) {
			from := stationInfo(sess.Engine, unreachable.From)
			to := stationInfo(sess.Engine, unreachable.To)
			return &RunResult{
				RunID:   runID,
				Success: false,
				State:   string(sim.StateBlocked),
				Message: fmt.Sprintf(sess.Level.Messages.Blocked, from.Name, to.Name),
				Blocked: &BlockedInfo{From: from, To: to},
			}, nil
		}
		return nil, fmt.Errorf("failed to start simulation: %w", err)
	}

	return &RunResult{
		RunID:   runID,
		Success: true,
		State:   string(sim.StateAnimating),
	}, nil
}

// CancelSimulation abandons a session's in-progress run
func (s *gameServiceImpl) CancelSimulation(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	if sess.Driver != nil {
		sess.Driver.Cancel()
	}
	return nil
}

// GetState retrieves the current session state
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*engine.LevelState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.State(), nil
}

// GetEditHistory returns paginated edit history
func (s *gameServiceImpl) GetEditHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.EditHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var edits []engine.EditHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			edits = append(edits, history[i])
		}
	} else {
		if start < total {
			edits = history[start:end]
		}
	}
	if edits == nil {
		edits = []engine.EditHistoryEntry{}
	}

	return &HistoryResponse{
		Edits:       edits,
		TotalEdits:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListLevels returns available level configurations
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*LevelInfo, error) {
	return s.levels.ListLevels()
}

// LoadLevel loads a specific level configuration
func (s *gameServiceImpl) LoadLevel(ctx context.Context, levelID string) (*engine.LevelConfig, error) {
	return s.levels.LoadLevel(levelID)
}

// SaveLevel saves a level configuration to disk
func (s *gameServiceImpl) SaveLevel(ctx context.Context, levelID string, level *engine.LevelConfig) error {
	return s.levels.SaveLevel(levelID, level)
}

// stationInfo maps a waypoint cell to its station for blocked reporting
func stationInfo(eng *engine.LevelEngine, c engine.Coord) engine.Station {
	if st, ok := eng.StationAt(c); ok {
		return st
	}
	return engine.Station{Name: fmt.Sprintf("(%d,%d)", c.X, c.Y), X: c.X, Y: c.Y}
}
