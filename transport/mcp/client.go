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

	"github.com/sokoban-go/sokoban/game/engine"
	"github.com/sokoban-go/sokoban/game/service"
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
		"Sokoban Puzzle Engine",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Sokoban Puzzle Engine - MCP Interface

This is a thin client that proxies all requests to the REST API server.

PUZZLE OBJECTIVE:
Push every box (B) onto a goal tile (O). The player (@) can push exactly one
box at a time; boxes can never be pulled.

AVAILABLE TOOLS:
- game_state: Get current board state
- move: Single move (up/down/left/right) - requires intent explanation
- bulk_move: Multiple moves at once - requires intent explanation
- reset_game: Reset puzzle to the initial layout
- move_history: View past moves
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_levels: List available levels
- game_instructions: Get comprehensive puzzle rules
- describe_cell: Get detailed info about a specific board cell

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional level selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level_id": map[string]interface{}{
					"type":        "string",
					"description": "Name of the level to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the player in a direction, pushing a box if one is in the way",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "direction"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: "Execute multiple moves in sequence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "string",
						"enum": []string{"up", "down", "left", "right"},
					},
					"description": "Array of moves",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before moving",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the puzzle to its initial layout",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
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
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_levels",
		Description: "List available levels",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListLevels)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive puzzle rules and strategy notes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific cell on the board, including its tile and any object on it. Useful for verifying whether a cell is a wall (#), floor (.), goal (O), or holds a box (B).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
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

	result := fmt.Sprintf("Created session: %s\nLevel: %s\n", session.ID, session.LevelName)
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
			s.ID, s.LevelName, s.CreatedAt.Format("15:04:05"))
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

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	direction, _ := args["direction"].(string)
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"direction": direction,
		"reset":     reset,
	}

	var result service.MoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatMoveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	intent, _ := args["intent"].(string)
	reset, _ := args["reset"].(bool)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	// Convert moves to string array
	moves := make([]string, 0, len(movesRaw))
	for _, m := range movesRaw {
		if move, ok := m.(string); ok {
			moves = append(moves, move)
		}
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/bulk-move", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatBulkMoveResult(sessionID, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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

	// Also fetch current segment from live state
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatCurrentSegment(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var levels []service.LevelInfo
	err := c.apiCall("GET", "/api/levels", nil, &levels)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Levels:\n\n"
	for _, level := range levels {
		result += fmt.Sprintf("• %s\n  %s\n  Board: %dx%d, Boxes: %d, Goals: %d\n\n",
			level.LevelID, level.Description, level.Width, level.Height, level.Boxes, level.Goals)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Sokoban Puzzle Engine - Complete Instructions

PUZZLE OBJECTIVE:
Push every box onto a goal tile. The puzzle is solved when no goal tile is
left uncovered.

PUZZLE MECHANICS:
• Movement: up, down, left, right move the player one cell
• Pushing: walking into a box pushes it one cell in the same direction
• A push only succeeds if the cell behind the box is a floor or goal tile
  with nothing on it
• Boxes can NEVER be pulled - a box pushed into a corner is stuck forever
• Blocked moves cost nothing: the board does not change, but the attempt is
  recorded in the move history

BOARD LEGEND (tiles):
• # - Wall (impassable)
• . - Floor (passable)
• O - Goal (passable, target tile for boxes)

BOARD LEGEND (objects, drawn over tiles):
• @ - Player (your current position)
• B - Box (pushable)

AI AGENTS - STRATEGY NOTES:

1. **Parse the board cell by cell**: the state exposes tile rows and object
   rows separately. A goal tile under a box is easy to miss when scanning
   visually - use describe_cell to verify any cell you are unsure about.

2. **Think about deadlocks BEFORE pushing**:
   - A box pushed into a corner (two perpendicular walls) can never move again
   - A box pushed flush against a wall can only slide along that wall
   - If a stuck box is not on a goal, the puzzle is unwinnable - reset

3. **Plan pushes from the far side**: to push a box left, the player must
   stand on its right. Route planning is about reaching the correct pushing
   position, not the box itself.

4. **Use bulk_move for efficiency**: execution stops at the first blocked
   move and the response tells you exactly which move failed and why
   (blocked_wall, blocked_box, blocked_object), plus the goals remaining
   and possible moves from the final position.

5. **goals_remaining counts UNCOVERED goals**: it decreases when a box is
   pushed onto a goal and increases when a box is pushed off one. The
   puzzle is solved when it reaches zero.

MOVEMENT COMMANDS:
- up, down, left, right - Single moves in cardinal directions
- Bulk moves - Execute multiple moves in sequence for efficiency
- Reset parameter available for fresh starts

SOLVED CONDITION:
- Every goal tile has a box on it (goals_remaining == 0)
- The response reports "solved": true and a solved event fires

SESSION MANAGEMENT:
- Multiple puzzle sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and level
- reset_game restores the initial layout but keeps cumulative move history

Remember: Sokoban is unforgiving - one careless push can make the puzzle
unwinnable. Check for deadlocks before every push, and reset early when a
box is stuck off-goal.`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := int(args["x"].(float64))
	y := int(args["y"].(float64))

	// Get the current game state to access the board
	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Check bounds
	if x < 0 || x >= state.Width || y < 0 || y >= state.Height {
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Board is %dx%d (0-%d for x, 0-%d for y)",
			x, y, state.Width, state.Height, state.Width-1, state.Height-1)), nil
	}

	tileChar := string(state.Tiles[y][x])
	objectChar := string(state.Objects[y][x])

	var tileType string
	var passable bool
	switch state.Tiles[y][x] {
	case engine.TileWallChar:
		tileType = "Wall"
		passable = false
	case engine.TileGoalChar:
		tileType = "Goal"
		passable = true
	default:
		tileType = "Floor"
		passable = true
	}

	var description string
	switch {
	case x == state.PlayerPos.X && y == state.PlayerPos.Y:
		description = "Player's current position"
	case state.Objects[y][x] == engine.ObjectBoxChar:
		if state.Tiles[y][x] == engine.TileGoalChar {
			description = "Box resting on a goal - objective satisfied here"
		} else {
			description = "Box - pushable, blocks walking; check the cell behind it before pushing"
		}
		passable = false
	case state.Tiles[y][x] == engine.TileWallChar:
		description = "Wall - IMPASSABLE"
	case state.Tiles[y][x] == engine.TileGoalChar:
		description = "Uncovered goal - push a box here"
	default:
		description = "Empty floor - safe to walk"
	}

	result := fmt.Sprintf(`Cell at position (%d, %d):
━━━━━━━━━━━━━━━━━━━━━━━━
Tile: %s (%s)
Object: %s
Passable: %v
Description: %s`,
		x, y,
		tileChar, tileType,
		objectChar,
		passable,
		description)

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nLevel: %s\nCreated: %s\n\n%s",
		session.ID, session.LevelName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	// Header (include cumulative total moves)
	result.WriteString(fmt.Sprintf("Position: (%d,%d) | Goals left: %d/%d | Moves: %d\n\n",
		state.PlayerPos.X, state.PlayerPos.Y,
		state.GoalsRemaining, state.TotalGoals, state.TotalMoves))

	// Decision aid (if available)
	if len(state.LocalView3x3) == 3 {
		result.WriteString("Local 3x3:\n")
		result.WriteString(state.LocalView3x3[0] + "\n")
		result.WriteString(state.LocalView3x3[1] + "\n")
		result.WriteString(state.LocalView3x3[2] + "\n\n")
	} else if v := formatLocal3x3(state); v != "" {
		result.WriteString("Local 3x3:\n")
		result.WriteString(v + "\n")
	}

	// Board: object layer drawn over the tile layer
	for y := 0; y < state.Height; y++ {
		for x := 0; x < state.Width; x++ {
			result.WriteString(cellChar(state, x, y))
		}
		result.WriteString("\n")
	}

	if state.Solved {
		result.WriteString("\n🎉 SOLVED!")
	}

	return result.String()
}

func formatMoveResult(result *service.MoveResult) string {
	response := ""
	if result.Success {
		response = "✓ Move successful\n"
	} else {
		response = "✗ Move failed\n"
	}

	// Compact step summary (if available)
	if result.Step != nil {
		s := result.Step
		status := "✗"
		if s.Success {
			status = "✓"
		}
		push := ""
		if s.Push {
			push = " push"
		}
		response += fmt.Sprintf("Step: %s (%d,%d)→(%d,%d) tile=%s goals=%d%s %s\n",
			s.Dir, s.From.X, s.From.Y, s.To.X, s.To.Y, s.TileChar, s.GoalsLeft, push, status)
	}

	// Failure diagnostic (if available)
	if result.AttemptedTo != nil {
		a := result.AttemptedTo
		passStr := "impassable"
		if a.Passable {
			passStr = "passable"
		}
		response += fmt.Sprintf("Blocked: attempted (%d,%d) tile=%s %s (%s)\n", a.X, a.Y, a.TileChar, a.TileType, passStr)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	// Session header
	levelName := ""
	width, height := 0, 0
	if result.GameState != nil {
		levelName = result.GameState.LevelName
		width, height = result.GameState.Width, result.GameState.Height
	}
	b.WriteString(fmt.Sprintf("Session: %s • Level: %s • Board: %dx%d\n",
		sessionID, levelName, width, height))

	// Bulk summary
	b.WriteString(fmt.Sprintf("Executed %d/%d moves\n", result.MovesExecuted, result.RequestedMoves))
	b.WriteString(fmt.Sprintf("Path: (%d,%d)→(%d,%d) • Goals: %d→%d • Pushes: %d\n",
		result.StartPos.X, result.StartPos.Y, result.EndPos.X, result.EndPos.Y,
		result.StartGoals, result.EndGoals, result.PushCount))
	if result.StoppedReason != "" {
		stop := result.StoppedReason
		if result.StopReasonCode != "" {
			stop += fmt.Sprintf(" [%s]", result.StopReasonCode)
		}
		b.WriteString(fmt.Sprintf("Stopped on move %d: %s\n", result.StoppedOnMove, stop))
	}
	if result.Truncated {
		b.WriteString(fmt.Sprintf("Truncated to the first %d moves\n", result.Limit))
	}

	// Events (keep as-is, concise)
	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			b.WriteString(fmt.Sprintf("- %s: %s\n", event.Type, event.Message))
		}
	}

	// Per-step trace for this call
	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			status := "✗"
			if s.Success {
				status = "✓"
			}
			push := ""
			if s.Push {
				push = " push"
			}
			b.WriteString(fmt.Sprintf("%d. %s (%d,%d)→(%d,%d) tile=%s goals=%d%s %s\n",
				s.Idx, s.Dir, s.From.X, s.From.Y, s.To.X, s.To.Y, s.TileChar, s.GoalsLeft, push, status))
		}
	}

	// Failure diagnostic
	if result.AttemptedTo != nil {
		a := result.AttemptedTo
		passStr := "impassable"
		if a.Passable {
			passStr = "passable"
		}
		b.WriteString(fmt.Sprintf("\nBlocked cell: (%d,%d) tile=%s %s", a.X, a.Y, a.TileChar, a.TileType))
		if a.ObjectChar != "" && a.ObjectChar != string(engine.ObjectEmptyChar) {
			b.WriteString(fmt.Sprintf(" object=%s", a.ObjectChar))
		}
		b.WriteString(fmt.Sprintf(" (%s)\n", passStr))
	}

	// Possible moves and local 3x3 view from final state
	if len(result.PossibleMoves) > 0 {
		b.WriteString("\nPossible moves: ")
		b.WriteString(strings.Join(result.PossibleMoves, ","))
		b.WriteString("\n")
	}
	if len(result.LocalView3x3) == 3 {
		b.WriteString("Local 3x3:\n")
		for _, row := range result.LocalView3x3 {
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	// Full state at the end (kept for compatibility)
	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

// formatLocal3x3 renders a 3x3 character window centered on the player
func formatLocal3x3(state *engine.GameState) string {
	if state == nil {
		return ""
	}
	px, py := state.PlayerPos.X, state.PlayerPos.Y
	var lines [3]string
	for dy := -1; dy <= 1; dy++ {
		var row strings.Builder
		for dx := -1; dx <= 1; dx++ {
			row.WriteString(cellChar(state, px+dx, py+dy))
		}
		lines[dy+1] = row.String()
	}
	return lines[0] + "\n" + lines[1] + "\n" + lines[2] + "\n"
}

// cellChar returns a single-character representation of the cell at (x,y).
// Objects are drawn over tiles; out-of-bounds renders as a wall.
func cellChar(state *engine.GameState, x, y int) string {
	if x < 0 || y < 0 || x >= state.Width || y >= state.Height {
		return string(engine.TileWallChar)
	}
	if obj := state.Objects[y][x]; obj != engine.ObjectEmptyChar {
		return string(obj)
	}
	return string(state.Tiles[y][x])
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Move History (Page %d/%d) — Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for i, move := range history.Moves {
		num := (history.Page-1)*history.PageSize + i + 1
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		push := ""
		if move.Push {
			push = " push"
		}
		result += fmt.Sprintf("%d. %s %s%s [Goals: %d]\n",
			num, move.Action, status, push, move.GoalsRemaining)
	}

	return result
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	moves := state.CurrentMoves
	total := state.CurrentMovesCount
	header := fmt.Sprintf("Current Move Segment — Moves: %d\n\n", total)
	if len(moves) == 0 {
		return header + "(no moves in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range moves {
		status := "✓"
		if !move.Success {
			status = "✗"
		}
		b.WriteString(fmt.Sprintf("%d. %s %s [Goals: %d]\n", i+1, move.Action, status, move.GoalsRemaining))
	}
	return b.String()
}
