package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ffrraannccoo/Tejedor-de-subtes/game/engine"
	"github.com/ffrraannccoo/Tejedor-de-subtes/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tejedor de Subtes",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tejedor de Subtes - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Draw subway tracks on a grid so the train can visit every requested station
in order. Obstacles (rivers, buildings) block track placement; route your
tracks around them.

AVAILABLE TOOLS:
- create_session: Create a new level session
- list_sessions: List all active sessions
- get_session: Get session details with the full level map
- level_state: Get the current level state
- connect_track: Draw one track segment between two adjacent cells
- disconnect_track: Erase one track segment
- clear_tracks: Wipe all drawn tracks
- start_train: Resolve the requested route and run the train
- cancel_train: Abandon a running train
- edit_history: View past track edits
- list_levels: List available levels
- describe_cell: Get detailed info about a specific grid cell
- game_instructions: Get comprehensive game instructions and rules

NOTE: The 'intent' parameter on connect_track serves as rubber duck
debugging - explain your routing reasoning!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	sessionIDProp := map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new level session with optional level selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the level to play (optional, defaults to the server default)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active level sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session, including the level map",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Track editing
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "level_state",
		Description: "Get the current level state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleLevelState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "connect_track",
		Description: "Draw one track segment between two cells. Segments touching an obstacle are rejected.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"ax": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the first cell (0-based)",
				},
				"ay": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the first cell (0-based)",
				},
				"bx": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the second cell (0-based)",
				},
				"by": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the second cell (0-based)",
				},
				"color": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"red", "blue", "yellow", "green"},
					"description": "Line color for the segment (optional, defaults to red)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the routing intent behind this segment (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "ax", "ay", "bx", "by"},
		},
	}, c.handleConnectTrack)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "disconnect_track",
		Description: "Erase one track segment between two cells",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"ax": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the first cell (0-based)",
				},
				"ay": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the first cell (0-based)",
				},
				"bx": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate of the second cell (0-based)",
				},
				"by": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate of the second cell (0-based)",
				},
			},
			Required: []string{"session_id", "ax", "ay", "bx", "by"},
		},
	}, c.handleDisconnectTrack)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "clear_tracks",
		Description: "Wipe all drawn tracks in a session (stations and obstacles stay)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleClearTracks)

	// Simulation
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "start_train",
		Description: "Resolve the requested route over the drawn tracks and run the train",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleStartTrain)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "cancel_train",
		Description: "Abandon the session's in-progress train run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
			},
			Required: []string{"session_id"},
		},
	}, c.handleCancelTrain)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "edit_history",
		Description: "Get track edit history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleEditHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List available levels",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLevels)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific grid cell: whether it holds a station, an obstacle, and which neighbors it is tracked to.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProp,
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeCell)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	levelID, _ := args["level_id"].(string)

	body := map[string]string{}
	if levelID != "" {
		body["level_id"] = levelID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nLevel: %s\n\n%s",
		session.ID, session.LevelID, formatLevelState(session.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Level: %s, Created: %s)\n",
			s.ID, s.LevelID, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLevelState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.LevelState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatLevelState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleConnectTrack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	color, _ := args["color"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"ax": intArg(args, "ax"),
		"ay": intArg(args, "ay"),
		"bx": intArg(args, "bx"),
		"by": intArg(args, "by"),
	}
	if color != "" {
		body["color"] = color
	}

	var result service.EditResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/connect", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatEditResult("connect", &result)), nil
}

func (c *Client) handleDisconnectTrack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{
		"ax": intArg(args, "ax"),
		"ay": intArg(args, "ay"),
		"bx": intArg(args, "bx"),
		"by": intArg(args, "by"),
	}

	var result service.EditResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/disconnect", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatEditResult("disconnect", &result)), nil
}

func (c *Client) handleClearTracks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *engine.LevelState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/clear", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatLevelState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleStartTrain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.RunResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/start", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRunResult(&result)), nil
}

func (c *Client) handleCancelTrain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string `json:"message"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/cancel", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response.Message), nil
}

func (c *Client) handleEditHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var levels []service.LevelInfo
	err := c.apiCall("GET", "/api/levels", nil, &levels)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Levels:\n\n"
	for _, level := range levels {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Grid: %dx%d, Stations: %d, Route stops: %d\n\n",
			level.Name, level.LevelID, level.Description,
			level.Width, level.Height, level.StationCount, level.RouteStops)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := intArg(args, "x")
	y := intArg(args, "y")

	var state engine.LevelState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if x < 0 || x >= state.Width || y < 0 || y >= state.Height {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Coordinates (%d, %d) are out of bounds. Grid is %dx%d (0-%d for x, 0-%d for y)",
			x, y, state.Width, state.Height, state.Width-1, state.Height-1)), nil
	}

	cell := engine.Coord{X: x, Y: y}
	var b strings.Builder
	fmt.Fprintf(&b, "Cell at position (%d, %d):\n", x, y)

	buildable := true
	for _, st := range state.Stations {
		if st.X == x && st.Y == y {
			fmt.Fprintf(&b, "Station: %s (%s)\n", st.Name, st.ID)
		}
	}
	for _, obs := range state.Obstacles {
		if obs.X == x && obs.Y == y {
			fmt.Fprintf(&b, "Obstacle: %s - tracks touching this cell are REJECTED\n", obs.Type)
			buildable = false
		}
	}

	var connected []string
	for _, edge := range state.Edges {
		if edge.A == cell {
			connected = append(connected, fmt.Sprintf("(%d,%d) [%s]", edge.B.X, edge.B.Y, edge.Color))
		} else if edge.B == cell {
			connected = append(connected, fmt.Sprintf("(%d,%d) [%s]", edge.A.X, edge.A.Y, edge.Color))
		}
	}
	if len(connected) > 0 {
		fmt.Fprintf(&b, "Tracked to: %s\n", strings.Join(connected, ", "))
	} else {
		b.WriteString("Tracked to: nothing\n")
	}

	fmt.Fprintf(&b, "Buildable: %v\n", buildable)
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Tejedor de Subtes - Complete Instructions

GAME OBJECTIVE:
Draw subway tracks on a grid so the train can travel the requested route,
visiting every station in order. The route may revisit stations (a round
trip lists the origin twice).

GAME MECHANICS:
• Tracks: connect two cells with connect_track. Tracks are bidirectional;
  a track from A to B is the same track as from B to A.
• Colors: each segment carries a line color (red, blue, yellow, green).
  Redrawing an existing segment with a new color repaints it.
• Obstacles: rivers and buildings reject any track touching their cell.
  Route around them.
• The train: start_train finds the shortest path over your tracks between
  each consecutive pair of requested stations. Any track works; colors
  are cosmetic.

GRID LEGEND (level_state map):
• A-Z - Station (first letter of its name, uppercase)
• #   - Obstacle (river or building) - tracks here are REJECTED
• +   - Cell with at least one track
• .   - Empty cell

OUTCOMES:
• Completed: the train visited every requested stop in order
• Blocked: some consecutive station pair has no connecting track path.
  The result names the first such pair - connect those two stations.
• Collision: a track edit touched an obstacle cell. The edit is rejected
  and nothing changes.

STRATEGY FOR AI AGENTS:
1. Read the level with get_session: note stations, obstacles, and the
   requested route order.
2. Plan a track path for each consecutive station pair, detouring around
   obstacle cells.
3. Draw tracks segment by segment with connect_track. Diagonal segments
   are allowed.
4. Use describe_cell to verify what a cell holds before building through it.
5. start_train. If blocked, the response names the first unconnected pair;
   connect exactly that pair and try again.
6. Edits are locked while the train is running; wait for the run to finish
   or cancel_train first.

SESSION MANAGEMENT:
- Multiple sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent tracks and edit history

Good luck weaving the subway!`

	return mcp.NewToolResultText(instructions), nil
}

// intArg reads an integer tool argument, tolerating JSON's float decoding
func intArg(args map[string]interface{}, key string) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	if v, ok := args[key].(int); ok {
		return v
	}
	return 0
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nLevel: %s\nCreated: %s\n\n%s",
		session.ID, session.LevelID,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatLevelState(session.State))
}

func formatLevelState(state *engine.LevelState) string {
	if state == nil {
		return "No level state available"
	}

	var result strings.Builder

	fmt.Fprintf(&result, "Level: %s | Grid: %dx%d | Tracks: %d | Edits: %d\n",
		state.LevelName, state.Width, state.Height, state.EdgeCount, state.TotalEdits)

	if len(state.RouteRequest) > 0 {
		fmt.Fprintf(&result, "Route: %s\n", strings.Join(state.RouteRequest, " -> "))
	}
	result.WriteString("\n")

	// Index the cells once, then render row by row
	stations := make(map[engine.Coord]engine.Station, len(state.Stations))
	for _, st := range state.Stations {
		stations[st.Coord()] = st
	}
	obstacles := make(map[engine.Coord]bool, len(state.Obstacles))
	for _, obs := range state.Obstacles {
		obstacles[obs.Coord()] = true
	}
	tracked := make(map[engine.Coord]bool, len(state.Edges)*2)
	for _, edge := range state.Edges {
		tracked[edge.A] = true
		tracked[edge.B] = true
	}

	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			cell := engine.Coord{X: x, Y: y}
			switch {
			case stations[cell].ID != "":
				name := stations[cell].Name
				if name == "" {
					name = stations[cell].ID
				}
				result.WriteString(strings.ToUpper(name[:1]))
			case obstacles[cell]:
				result.WriteString("#")
			case tracked[cell]:
				result.WriteString("+")
			default:
				result.WriteString(".")
			}
		}
		result.WriteString("\n")
	}

	// Station legend
	result.WriteString("\nStations:\n")
	for _, st := range state.Stations {
		fmt.Fprintf(&result, "  %s = %s (%s) at (%d,%d)\n",
			strings.ToUpper(st.Name[:1]), st.Name, st.ID, st.X, st.Y)
	}

	if state.Message != "" {
		fmt.Fprintf(&result, "\nMessage: %s", state.Message)
	}

	return result.String()
}

func formatEditResult(action string, result *service.EditResult) string {
	var b strings.Builder

	if result.Success {
		fmt.Fprintf(&b, "✓ %s successful\n", action)
	} else {
		fmt.Fprintf(&b, "✗ %s rejected\n", action)
	}

	if result.Collision != nil {
		fmt.Fprintf(&b, "Collision: obstacle at (%d,%d) - route your tracks around it\n",
			result.Collision.X, result.Collision.Y)
	}

	b.WriteString("\n")
	b.WriteString(formatLevelState(result.State))
	return b.String()
}

func formatRunResult(result *service.RunResult) string {
	var b strings.Builder

	if result.Success {
		fmt.Fprintf(&b, "🚇 Train departing (run %s)\n", result.RunID)
		b.WriteString("The train is animating along the resolved route. Track edits are locked until it finishes.\n")
	} else {
		b.WriteString("✗ Route blocked\n")
		if result.Blocked != nil {
			fmt.Fprintf(&b, "No track path from %s (%d,%d) to %s (%d,%d)\n",
				result.Blocked.From.Name, result.Blocked.From.X, result.Blocked.From.Y,
				result.Blocked.To.Name, result.Blocked.To.X, result.Blocked.To.Y)
		}
	}

	if result.Message != "" {
		fmt.Fprintf(&b, "\n%s", result.Message)
	}

	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Edit History (page %d of %d, %d total edits):\n\n",
		history.Page, history.TotalPages, history.TotalEdits)

	for _, edit := range history.Edits {
		status := "✓"
		if !edit.Success {
			status = "✗"
		}
		ts := time.Unix(edit.Timestamp, 0).Format("15:04:05")
		switch edit.Action {
		case "connect":
			fmt.Fprintf(&b, "%s #%d %s (%d,%d)-(%d,%d) color=%s [%s]\n",
				status, edit.EditNumber, edit.Action,
				edit.A.X, edit.A.Y, edit.B.X, edit.B.Y, edit.Color, ts)
		case "clear":
			fmt.Fprintf(&b, "%s #%d clear [%s]\n", status, edit.EditNumber, ts)
		default:
			fmt.Fprintf(&b, "%s #%d %s (%d,%d)-(%d,%d) [%s]\n",
				status, edit.EditNumber, edit.Action,
				edit.A.X, edit.A.Y, edit.B.X, edit.B.Y, ts)
		}
	}

	if history.HasNext {
		b.WriteString("\n(more pages available)\n")
	}

	return b.String()
}
