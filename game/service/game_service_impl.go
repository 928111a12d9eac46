package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sokoban-go/sokoban/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	levels   LevelManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, levels LevelManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		levels:   levels,
	}
}

// getLevelID returns the level_id for a given level name, used for consistent API responses
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

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, levelName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load level
	var level *engine.LevelConfig
	var err error
	if levelName != "" {
		level, err = s.levels.LoadLevel(levelName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "level not found") {
				availableLevels, listErr := s.levels.ListLevels()
				if listErr == nil && len(availableLevels) > 0 {
					var levelIDs []string
					for _, lvl := range availableLevels {
						levelIDs = append(levelIDs, lvl.LevelID)
					}
					return nil, fmt.Errorf("level '%s' not found. Available levels: %v", levelName, levelIDs)
				}
				return nil, fmt.Errorf("level '%s' not found. Use /api/levels to list available levels", levelName)
			}
			return nil, fmt.Errorf("failed to load level %s: %w", levelName, err)
		}
	} else {
		level = s.levels.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", level)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	levelID := levelName
	if levelID == "" {
		levelID = s.getLevelID(level.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		LevelName:      levelID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
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
		LevelName:      s.getLevelID(session.Level.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
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
			LevelName:      s.getLevelID(sess.Level.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
			Level:          sess.Level,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	if reset {
		sess.Engine.Reset()
		events = append(events, GameEvent{
			Type:      "reset",
			Message:   "Puzzle reset to initial state",
			Timestamp: time.Now(),
		})
	}

	// Execute move
	prevPos := sess.Engine.GetPlayerPosition()
	prevGoals := sess.Engine.GetGoalsRemaining()
	success := sess.Engine.Move(direction)
	newPos := sess.Engine.GetPlayerPosition()
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:   success,
		GameState: state,
		Message:   stateMessage(state),
		Events:    events,
	}

	if success {
		push := false
		if last := sess.Engine.GetLastMove(); last != nil {
			push = last.Push
		}
		moveEvents := s.extractMoveEvents(sess, prevPos, newPos, prevGoals, direction, push)
		result.Events = append(result.Events, moveEvents...)

		tileChar, tileType := tileCharAndType(sess.Engine.Game().Board().TileAt(newPos))
		result.Step = &StepInfo{
			Idx:       1,
			Dir:       direction,
			From:      prevPos,
			To:        newPos,
			TileChar:  tileChar,
			TileType:  tileType,
			GoalsLeft: state.GoalsRemaining,
			Success:   true,
			Push:      push,
			Solved:    state.Solved,
		}
	} else {
		result.AttemptedTo = s.buildAttemptInfo(sess, prevPos, direction)
	}

	state.LocalView3x3 = buildLocal3x3(state)

	// Auto-save session after move
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after move: %v\n", sessionID, err)
	}

	return result, nil
}

// BulkMove executes multiple moves in sequence
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []string, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	state := sess.Engine.GetState()
	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
		StartPos:       state.PlayerPos,
		StartGoals:     state.GoalsRemaining,
		Solved:         state.Solved,
		Message:        stateMessage(state),
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, GameEvent{
			Type:      "reset",
			Message:   "Puzzle reset to initial state",
			Timestamp: time.Now(),
		})
		result.StartPos = sess.Engine.GetPlayerPosition()
		result.StartGoals = sess.Engine.GetGoalsRemaining()
	}

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if sess.Engine.IsSolved() {
			result.StoppedReason = "puzzle already solved"
			result.StopReasonCode = "solved"
			result.StoppedOnMove = result.MovesExecuted + 1
			break
		}

		prevPos := sess.Engine.GetPlayerPosition()
		prevGoals := sess.Engine.GetGoalsRemaining()
		success := sess.Engine.Move(move)

		if !success {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d blocked: %s", i+1, move)
			result.StoppedOnMove = i + 1
			result.AttemptedTo = s.buildAttemptInfo(sess, prevPos, move)
			result.StopReasonCode = s.stopReasonCode(sess, prevPos, move)
			break
		}

		result.MovesExecuted++
		newPos := sess.Engine.GetPlayerPosition()

		push := false
		if last := sess.Engine.GetLastMove(); last != nil {
			push = last.Push
		}
		if push {
			result.PushCount++
		}

		events := s.extractMoveEvents(sess, prevPos, newPos, prevGoals, move, push)
		result.Events = append(result.Events, events...)

		tileChar, tileType := tileCharAndType(sess.Engine.Game().Board().TileAt(newPos))
		result.Steps = append(result.Steps, StepInfo{
			Idx:       i + 1,
			Dir:       move,
			From:      prevPos,
			To:        newPos,
			TileChar:  tileChar,
			TileType:  tileType,
			GoalsLeft: sess.Engine.GetGoalsRemaining(),
			Success:   true,
			Push:      push,
			Solved:    sess.Engine.IsSolved(),
		})
	}

	result.GameState = sess.Engine.GetState()

	endState := result.GameState
	result.EndPos = endState.PlayerPos
	result.EndGoals = endState.GoalsRemaining
	result.Solved = endState.Solved
	result.Message = stateMessage(endState)

	if result.Solved && result.StopReasonCode == "" {
		result.StopReasonCode = "solved"
	}

	// Decision aids
	result.PossibleMoves = sess.Engine.GetPossibleMoves()
	result.LocalView3x3 = buildLocal3x3(endState)
	endState.LocalView3x3 = result.LocalView3x3

	// Auto-save session after bulk moves
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after bulk moves: %v\n", sessionID, err)
	}

	return result, nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()
	state.LocalView3x3 = buildLocal3x3(state)

	// Auto-save session after reset
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after reset: %v\n", sessionID, err)
	}

	return state, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.GetState()
	state.LocalView3x3 = buildLocal3x3(state)
	return state, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
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

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Reverse order (most recent first)
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		if start < total {
			moves = history[start:end]
		}
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListLevels returns available levels
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]*LevelInfo, error) {
	return s.levels.ListLevels()
}

// LoadLevel loads a specific level
func (s *gameServiceImpl) LoadLevel(ctx context.Context, levelName string) (*engine.LevelConfig, error) {
	return s.levels.LoadLevel(levelName)
}

// SaveLevel saves a level to disk
func (s *gameServiceImpl) SaveLevel(ctx context.Context, levelName string, level *engine.LevelConfig) error {
	return s.levels.SaveLevel(levelName, level)
}

// extractMoveEvents generates events from a successful move
func (s *gameServiceImpl) extractMoveEvents(sess *Session, prevPos, newPos engine.Position, prevGoals int, direction string, push bool) []GameEvent {
	events := []GameEvent{}
	state := sess.Engine.GetState()

	if push {
		events = append(events, GameEvent{
			Type:      "push",
			Message:   fmt.Sprintf("Pushed box %s to (%d,%d)", direction, newPos.X+offsetFor(direction).DX, newPos.Y+offsetFor(direction).DY),
			Timestamp: time.Now(),
			Position:  newPos,
		})
	} else {
		events = append(events, GameEvent{
			Type:      "move",
			Message:   fmt.Sprintf("Moved %s to (%d,%d)", direction, newPos.X, newPos.Y),
			Timestamp: time.Now(),
			Position:  newPos,
		})
	}

	// Goal coverage changes only happen on pushes
	switch {
	case state.GoalsRemaining < prevGoals:
		events = append(events, GameEvent{
			Type:      "goal_covered",
			Message:   fmt.Sprintf("Box covers a goal! %d left", state.GoalsRemaining),
			Timestamp: time.Now(),
			Position:  newPos,
		})
	case state.GoalsRemaining > prevGoals:
		events = append(events, GameEvent{
			Type:      "goal_uncovered",
			Message:   fmt.Sprintf("Box pushed off a goal. %d left", state.GoalsRemaining),
			Timestamp: time.Now(),
			Position:  newPos,
		})
	}

	if state.Solved {
		events = append(events, GameEvent{
			Type:      "solved",
			Message:   "Puzzle solved! All goals covered.",
			Timestamp: time.Now(),
		})
	}

	return events
}

// buildAttemptInfo describes the cell a blocked move was aimed at
func (s *gameServiceImpl) buildAttemptInfo(sess *Session, from engine.Position, direction string) *AttemptInfo {
	off, ok := engine.ParseDirection(direction)
	if !ok {
		return nil
	}
	target := from.Add(off)
	board := sess.Engine.Game().Board()
	tileChar, tileType := tileCharAndType(board.TileAt(target))
	objectChar := ""
	if board.ObjectAt(target) == engine.ObjectBox {
		objectChar = string(engine.ObjectBoxChar)
	}
	return &AttemptInfo{
		X:          target.X,
		Y:          target.Y,
		TileChar:   tileChar,
		TileType:   tileType,
		ObjectChar: objectChar,
		Passable:   board.TileAt(target) != engine.TileWall && board.ObjectAt(target) != engine.ObjectBox,
	}
}

// stopReasonCode classifies why a bulk move stopped at a blocked step
func (s *gameServiceImpl) stopReasonCode(sess *Session, from engine.Position, direction string) string {
	off, ok := engine.ParseDirection(direction)
	if !ok {
		return "invalid_direction"
	}
	target := from.Add(off)
	board := sess.Engine.Game().Board()
	if board.ObjectAt(target) == engine.ObjectBox {
		boxTarget := target.Add(off)
		if board.TileAt(boxTarget) == engine.TileWall {
			return "blocked_wall"
		}
		if board.ObjectAt(boxTarget) != engine.ObjectEmpty {
			return "blocked_object"
		}
		return "blocked_box"
	}
	if board.TileAt(target) == engine.TileWall {
		return "blocked_wall"
	}
	return "blocked"
}

// Helpers for result enrichment
func tileCharAndType(tile engine.Tile) (string, string) {
	switch tile {
	case engine.TileWall:
		return string(engine.TileWallChar), "wall"
	case engine.TileGoal:
		return string(engine.TileGoalChar), "goal"
	default:
		return string(engine.TileFloorChar), "floor"
	}
}

func offsetFor(direction string) engine.Offset {
	off, _ := engine.ParseDirection(direction)
	return off
}

func stateMessage(state *engine.GameState) string {
	if state.Solved {
		return "Puzzle solved! All goals covered."
	}
	if state.GoalsRemaining == 1 {
		return "1 goal left"
	}
	return fmt.Sprintf("%d goals left", state.GoalsRemaining)
}

func buildLocal3x3(state *engine.GameState) []string {
	if state == nil {
		return nil
	}
	px, py := state.PlayerPos.X, state.PlayerPos.Y
	lines := make([]string, 0, 3)
	for dy := -1; dy <= 1; dy++ {
		var row strings.Builder
		for dx := -1; dx <= 1; dx++ {
			x, y := px+dx, py+dy
			// out of bounds is wall-like
			if y < 0 || y >= len(state.Tiles) || x < 0 || x >= len(state.Tiles[0]) {
				row.WriteByte(engine.TileWallChar)
				continue
			}
			if obj := state.Objects[y][x]; obj != engine.ObjectEmptyChar {
				row.WriteByte(obj)
				continue
			}
			row.WriteByte(state.Tiles[y][x])
		}
		lines = append(lines, row.String())
	}
	return lines
}
