package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.sessions == nil {
		t.Error("Hub sessions map is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)

	if _, exists := hub.sessions["test-session"]; !exists {
		t.Error("Session was not created")
	}

	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}

	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	client2 := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.sessions[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions[sessionID]))
	}

	hub.unregisterClient(client1)

	if len(hub.sessions[sessionID]) != 1 {
		t.Errorf("Expected 1 client remaining in session, got %d", len(hub.sessions[sessionID]))
	}

	if !hub.sessions[sessionID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubBroadcastState(t *testing.T) {
	hub := NewHub()
	sessionID := "broadcast-test"

	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}

	hub.registerClient(client)

	state := &engine.LevelState{
		LevelName: "Centro",
		Width:     10,
		Height:    10,
		EdgeCount: 3,
		Message:   "Track placed",
	}

	hub.BroadcastState(sessionID, state)
	hub.broadcastMessage(<-hub.broadcast)

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}

		if message.SessionID != sessionID {
			t.Errorf("Expected sessionID %s, got %s", sessionID, message.SessionID)
		}

		if message.Event != "state_update" {
			t.Errorf("Expected event 'state_update', got %s", message.Event)
		}

		if message.State.LevelName != "Centro" || message.State.EdgeCount != 3 {
			t.Error("Level state not correctly transmitted")
		}

	case <-time.After(100 * time.Millisecond):
		t.Error("No message received within timeout")
	}
}

func TestHubSimulationEvents(t *testing.T) {
	hub := NewHub()
	sessionID := "sim-events"

	client := &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
	hub.registerClient(client)

	hub.SimulationPosition(sessionID, "run-1", engine.Coord{X: 2, Y: 3}, 1, 5)
	hub.SimulationBlocked(sessionID, "run-1",
		engine.Station{ID: "a", Name: "Alpha", X: 0, Y: 0},
		engine.Station{ID: "b", Name: "Beta", X: 4, Y: 4})
	hub.SimulationCompleted(sessionID, "run-1")

	for i := 0; i < 3; i++ {
		hub.broadcastMessage(<-hub.broadcast)
	}

	events := make([]Message, 0, 3)
	for i := 0; i < 3; i++ {
		select {
		case data := <-client.send:
			var message Message
			if err := json.Unmarshal(data, &message); err != nil {
				t.Fatalf("Failed to unmarshal message: %v", err)
			}
			events = append(events, message)
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Expected 3 messages, got %d", len(events))
		}
	}

	if events[0].Event != "train_position" {
		t.Errorf("Expected train_position, got %s", events[0].Event)
	}
	if events[1].Event != "simulation_blocked" {
		t.Errorf("Expected simulation_blocked, got %s", events[1].Event)
	}
	if events[2].Event != "simulation_completed" {
		t.Errorf("Expected simulation_completed, got %s", events[2].Event)
	}

	// Position payload round-trips through the generic Data field
	payload, _ := json.Marshal(events[0].Data)
	var pos TrainPosition
	if err := json.Unmarshal(payload, &pos); err != nil {
		t.Fatalf("Failed to decode train_position payload: %v", err)
	}
	if pos.Cell.X != 2 || pos.Cell.Y != 3 || pos.Step != 1 || pos.Total != 5 {
		t.Errorf("Unexpected position payload: %+v", pos)
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub()

	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("sessionId")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?sessionId=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give some time for registration
	time.Sleep(50 * time.Millisecond)

	if len(hub.sessions["ws-test"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["ws-test"]))
	}

	conn.Close()

	// Give some time for unregistration
	time.Sleep(10 * time.Millisecond)

	if _, exists := hub.sessions["ws-test"]; exists {
		t.Error("Session should have been cleaned up after WebSocket close")
	}
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub()

	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("sessionId")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?sessionId=msg-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give time for connection to establish
	time.Sleep(10 * time.Millisecond)

	state := &engine.LevelState{
		LevelName:  "Centro",
		Width:      10,
		Height:     10,
		EdgeCount:  2,
		TotalEdits: 4,
		Message:    "Track placed",
	}

	hub.BroadcastState("msg-test", state)

	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, messageData, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(messageData, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}

	if message.SessionID != "msg-test" {
		t.Errorf("Expected sessionID 'msg-test', got %s", message.SessionID)
	}

	if message.State.EdgeCount != 2 || message.State.TotalEdits != 4 {
		t.Error("Level state not correctly received")
	}

	if message.State.Message != "Track placed" {
		t.Errorf("Expected message 'Track placed', got '%s'", message.State.Message)
	}
}
