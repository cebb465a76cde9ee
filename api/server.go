package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
	"github.com/ffrraannccoo/Tejedor-de-subtes/game/service"
	"github.com/ffrraannccoo/Tejedor-de-subtes/game/sim"
	"github.com/ffrraannccoo/Tejedor-de-subtes/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Track editing
	api.HandleFunc("/sessions/{id}/state", s.handleGetState).Methods("GET")
	api.HandleFunc("/sessions/{id}/connect", s.handleConnect).Methods("POST")
	api.HandleFunc("/sessions/{id}/disconnect", s.handleDisconnect).Methods("POST")
	api.HandleFunc("/sessions/{id}/clear", s.handleClear).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Simulation
	api.HandleFunc("/sessions/{id}/start", s.handleStart).Methods("POST")
	api.HandleFunc("/sessions/{id}/cancel", s.handleCancel).Methods("POST")

	// Levels
	api.HandleFunc("/levels", s.handleListLevels).Methods("GET")
	api.HandleFunc("/levels", s.handleCreateLevel).Methods("POST")
	api.HandleFunc("/levels/{name}", s.handleGetLevel).Methods("GET")

	// Health
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Static files (if needed)
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir("./static/")))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// editStatus maps an edit error to an HTTP status code
func editStatus(err error) int {
	if errors.Is(err, service.ErrEditLocked) {
		return http.StatusConflict
	}
	if strings.Contains(err.Error(), "session not found") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LevelID string `json:"level_id,omitempty"`
	}

	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	session, err := s.service.CreateSession(r.Context(), req.LevelID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort") // "created", "accessed" (default)
	order := query.Get("order")
	limitStr := query.Get("limit")

	if sortBy == "" {
		sortBy = "accessed"
	}
	if order == "" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		var ti, tj time.Time
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		} else { // "accessed"
			ti, tj = sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		}

		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj) // desc
	})

	limit := len(sessions)
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < len(sessions) {
			limit = l
		}
	}
	sessions = sessions[:limit]

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(sessions),
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	session, err := s.service.GetSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	err := s.service.DeleteSession(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Track Editing Handlers

type editRequest struct {
	AX    int    `json:"ax"`
	AY    int    `json:"ay"`
	BX    int    `json:"bx"`
	BY    int    `json:"by"`
	Color string `json:"color,omitempty"`
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	color := engine.Color(req.Color)
	if req.Color == "" {
		color = engine.ColorRed
	}

	result, err := s.service.ConnectTrack(r.Context(), sessionID,
		engine.Coord{X: req.AX, Y: req.AY}, engine.Coord{X: req.BX, Y: req.BY}, color)
	if err != nil {
		respondError(w, editStatus(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastState(sessionID, result.State)
	}

	status := "OK"
	if !result.Success {
		status = "COLLISION"
	}
	fmt.Printf("[TRACK] session=%s connect (%d,%d)-(%d,%d) color=%s edges=%d status=%s\n",
		sessionID, req.AX, req.AY, req.BX, req.BY, color, result.State.EdgeCount, status)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleDisconnect(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.DisconnectTrack(r.Context(), sessionID,
		engine.Coord{X: req.AX, Y: req.AY}, engine.Coord{X: req.BX, Y: req.BY})
	if err != nil {
		respondError(w, editStatus(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastState(sessionID, result.State)
	}

	fmt.Printf("[TRACK] session=%s disconnect (%d,%d)-(%d,%d) edges=%d\n",
		sessionID, req.AX, req.AY, req.BX, req.BY, result.State.EdgeCount)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	state, err := s.service.ClearTracks(r.Context(), sessionID)
	if err != nil {
		respondError(w, editStatus(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.BroadcastState(sessionID, state)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Tracks cleared",
		"state":   state,
	})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	state, err := s.service.GetState(r.Context(), sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			opts.Page = p
		}
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			opts.Limit = l
		}
	}

	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetEditHistory(r.Context(), sessionID, opts)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Simulation Handlers

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	result, err := s.service.StartSimulation(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, sim.ErrSimulationActive) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		if strings.Contains(err.Error(), "session not found") {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	fmt.Printf("[TRAIN] session=%s run=%s state=%s\n", sessionID, result.RunID, result.State)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	if err := s.service.CancelSimulation(r.Context(), sessionID); err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Simulation cancelled",
	})
}

// Level Handlers

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := s.service.ListLevels(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, levels)
}

func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	levelName := vars["name"]

	// Remove .json extension if present
	levelName = strings.TrimSuffix(levelName, ".json")

	level, err := s.service.LoadLevel(r.Context(), levelName)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, level)
}

func (s *Server) handleCreateLevel(w http.ResponseWriter, r *http.Request) {
	var level engine.LevelConfig

	if err := json.NewDecoder(r.Body).Decode(&level); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if level.Name == "" {
		respondError(w, http.StatusBadRequest, "Level name is required")
		return
	}

	if err := s.service.SaveLevel(r.Context(), level.Name, &level); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save level: %v", err))
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Level saved successfully",
		"level_id": level.Name,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists
	_, err := s.service.GetSession(context.Background(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
