package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsSolved() bool
	GetGoalsRemaining() int
	GetPlayerPosition() Position

	// Movement operations
	Move(direction string) bool
	CanMove(direction string) bool
	GetPossibleMoves() []string

	// Configuration
	GetConfig() *LevelConfig

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface. It wraps the core Game with
// direction parsing, move history and reset handling.
type GameEngine struct {
	game   *Game
	config *LevelConfig

	history      []MoveHistoryEntry
	currentMoves []MoveHistoryEntry
	totalMoves   int
}

// NewEngine creates a new game engine from a validated level configuration.
func NewEngine(cfg *LevelConfig) (*GameEngine, error) {
	board, err := NewBoardFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &GameEngine{
		game:         NewGame(board),
		config:       cfg,
		history:      []MoveHistoryEntry{},
		currentMoves: []MoveHistoryEntry{},
	}, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in level.
func NewEngineWithDefaults() *GameEngine {
	eng, err := NewEngine(DefaultLevelConfig())
	if err != nil {
		// The built-in level is validated by tests; this cannot happen.
		panic(fmt.Sprintf("engine: invalid built-in level: %v", err))
	}
	return eng
}

// Game returns the underlying core game.
func (e *GameEngine) Game() *Game { return e.game }

// GetConfig returns the level configuration the engine was built from.
func (e *GameEngine) GetConfig() *LevelConfig { return e.config }

// IsSolved reports whether every goal is covered by a box.
func (e *GameEngine) IsSolved() bool { return e.game.Solved() }

// GetGoalsRemaining returns the number of uncovered goal tiles.
func (e *GameEngine) GetGoalsRemaining() int { return e.game.GoalsRemaining() }

// GetPlayerPosition returns the current player position.
func (e *GameEngine) GetPlayerPosition() Position { return e.game.PlayerPosition() }

// Move attempts to move the player in the specified direction and records
// the attempt in the move history. It returns whether the board changed.
func (e *GameEngine) Move(direction string) bool {
	off, ok := ParseDirection(direction)
	if !ok {
		return false
	}

	prev := e.game.PlayerPosition()
	target := prev.Add(off)
	pushAttempt := e.game.Board().ObjectAt(target) == ObjectBox

	moved := e.game.MovePlayer(off)

	to := prev
	if moved {
		to = target
	}
	e.addMoveToHistory(direction, prev, to, pushAttempt && moved, moved)

	return moved
}

// CanMove checks whether a move in the specified direction would change the
// board, without mutating anything.
func (e *GameEngine) CanMove(direction string) bool {
	off, ok := ParseDirection(direction)
	if !ok {
		return false
	}

	board := e.game.Board()
	target := e.game.PlayerPosition().Add(off)

	if board.ObjectAt(target) == ObjectBox {
		boxTarget := target.Add(off)
		if board.TileAt(boxTarget) == TileWall || board.ObjectAt(boxTarget) != ObjectEmpty {
			return false
		}
		return true
	}
	return board.TileAt(target) != TileWall
}

// GetPossibleMoves returns all directions in which the player can move.
func (e *GameEngine) GetPossibleMoves() []string {
	var possible []string
	for _, dir := range Directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}
	return possible
}

// Reset rebuilds the game from its level configuration. Cumulative history
// and the total move count survive a reset; only the current segment is
// cleared.
func (e *GameEngine) Reset() *GameState {
	board, err := NewBoardFromConfig(e.config)
	if err != nil {
		// The config was validated at construction time.
		panic(fmt.Sprintf("engine: level became invalid on reset: %v", err))
	}
	e.game = NewGame(board)
	e.currentMoves = []MoveHistoryEntry{}
	return e.GetState()
}

// GetState returns a snapshot of the current game state.
func (e *GameEngine) GetState() *GameState {
	board := e.game.Board()

	history := make([]MoveHistoryEntry, len(e.history))
	copy(history, e.history)
	current := make([]MoveHistoryEntry, len(e.currentMoves))
	copy(current, e.currentMoves)

	return &GameState{
		LevelName:         e.config.Name,
		Width:             board.Width(),
		Height:            board.Height(),
		Tiles:             board.TileRows(),
		Objects:           board.ObjectRows(),
		PlayerPos:         e.game.PlayerPosition(),
		GoalsRemaining:    e.game.GoalsRemaining(),
		TotalGoals:        board.CountGoals(),
		Solved:            e.game.Solved(),
		MoveHistory:       history,
		TotalMoves:        e.totalMoves,
		CurrentMoves:      current,
		CurrentMovesCount: len(current),
	}
}

// SetState restores the engine from a snapshot (used for persistence
// loading). The snapshot's layers replace the current board; history and
// counters are taken from the snapshot as-is.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}

	cfg := &LevelConfig{
		Name:        e.config.Name,
		Description: e.config.Description,
		Width:       state.Width,
		Height:      state.Height,
		Tiles:       state.Tiles,
		Objects:     state.Objects,
	}
	board, err := NewBoardFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid state snapshot: %w", err)
	}

	e.game = NewGame(board)
	e.history = append([]MoveHistoryEntry{}, state.MoveHistory...)
	e.currentMoves = append([]MoveHistoryEntry{}, state.CurrentMoves...)
	e.totalMoves = state.TotalMoves
	return nil
}

// GetMoveHistory returns the cumulative move history.
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.history
}

// GetLastMove returns the last move attempt, or nil if no moves were made.
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// addMoveToHistory appends a move attempt to both the cumulative history and
// the current segment.
func (e *GameEngine) addMoveToHistory(action string, from, to Position, push, success bool) {
	entry := MoveHistoryEntry{
		Action:         action,
		FromPosition:   from,
		ToPosition:     to,
		Push:           push,
		GoalsRemaining: e.game.GoalsRemaining(),
		Timestamp:      time.Now().Unix(),
		Success:        success,
		MoveNumber:     e.totalMoves + 1,
	}
	e.history = append(e.history, entry)
	e.totalMoves++
	e.currentMoves = append(e.currentMoves, entry)
}
