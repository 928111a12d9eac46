package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sokoban-go/sokoban/game/engine"
	"github.com/sokoban-go/sokoban/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, level *engine.LevelConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(level)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Level:          level,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, level *engine.LevelConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, level)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	return nil
}

// MockLevelManager implements service.LevelManager for testing
type MockLevelManager struct {
	levels map[string]*engine.LevelConfig
}

func NewMockLevelManager() *MockLevelManager {
	// Player at (1,1), box at (2,2), goal at (3,2): "down" then "right"
	// pushes the box onto the goal and solves the puzzle.
	defaultLevel := &engine.LevelConfig{
		Name:        "test",
		Description: "Test level",
		Width:       7,
		Height:      5,
		Tiles: []string{
			"#######",
			"#.....#",
			"#..O..#",
			"#.....#",
			"#######",
		},
		Objects: []string{
			".......",
			".@.....",
			"..B....",
			".......",
			".......",
		},
	}

	return &MockLevelManager{
		levels: map[string]*engine.LevelConfig{
			"test": defaultLevel,
		},
	}
}

func (m *MockLevelManager) LoadLevel(name string) (*engine.LevelConfig, error) {
	level, exists := m.levels[name]
	if !exists {
		return nil, errors.New("level not found")
	}
	return level, nil
}

func (m *MockLevelManager) ListLevels() ([]*service.LevelInfo, error) {
	var levels []*service.LevelInfo
	for id, level := range m.levels {
		levels = append(levels, &service.LevelInfo{
			Filename:    id + ".json",
			LevelID:     id,
			Name:        level.Name,
			Description: level.Description,
			Width:       level.Width,
			Height:      level.Height,
		})
	}
	return levels, nil
}

func (m *MockLevelManager) GetDefault() *engine.LevelConfig {
	return m.levels["test"]
}

func (m *MockLevelManager) SaveLevel(name string, level *engine.LevelConfig) error {
	m.levels[name] = level
	return nil
}

func newTestService() service.GameService {
	return service.NewGameService(NewMockSessionManager(), NewMockLevelManager())
}

func TestGameService_CreateSession(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("create with level name", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if info.ID == "" {
			t.Error("Expected session ID to be set")
		}
		if info.LevelName != "test" {
			t.Errorf("Expected level name 'test', got '%s'", info.LevelName)
		}
		if info.GameState == nil {
			t.Fatal("Expected game state to be set")
		}
		if info.GameState.GoalsRemaining != 1 {
			t.Errorf("Expected 1 goal remaining, got %d", info.GameState.GoalsRemaining)
		}
	})

	t.Run("create with default level", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if info.LevelName != "test" {
			t.Errorf("Expected default level ID 'test', got '%s'", info.LevelName)
		}
	})

	t.Run("create with unknown level", func(t *testing.T) {
		if _, err := svc.CreateSession(ctx, "unknown"); err == nil {
			t.Error("Expected error for unknown level")
		}
	})
}

func TestGameService_Move(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("successful move", func(t *testing.T) {
		result, err := svc.Move(ctx, info.ID, "right", false)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if !result.Success {
			t.Error("Expected move to succeed")
		}
		if result.GameState.PlayerPos != (engine.Position{X: 2, Y: 1}) {
			t.Errorf("Expected player at (2,1), got %v", result.GameState.PlayerPos)
		}
		if result.Step == nil {
			t.Fatal("Expected step info for successful move")
		}
		if result.Step.Push {
			t.Error("Expected plain move, not push")
		}
		if len(result.Events) == 0 || result.Events[0].Type != "move" {
			t.Errorf("Expected move event, got %v", result.Events)
		}
	})

	t.Run("blocked move", func(t *testing.T) {
		result, err := svc.Move(ctx, info.ID, "up", false)
		if err != nil {
			t.Fatalf("Move failed: %v", err)
		}
		if result.Success {
			t.Error("Expected move into wall to fail")
		}
		if result.AttemptedTo == nil {
			t.Fatal("Expected attempt info for blocked move")
		}
		if result.AttemptedTo.TileType != "wall" {
			t.Errorf("Expected attempted tile type 'wall', got '%s'", result.AttemptedTo.TileType)
		}
		if result.AttemptedTo.Passable {
			t.Error("Expected wall to be reported as impassable")
		}
	})

	t.Run("push generates events", func(t *testing.T) {
		// Fresh session: down then right pushes the box onto the goal
		sess, err := svc.CreateSession(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		if _, err := svc.Move(ctx, sess.ID, "down", false); err != nil {
			t.Fatalf("Setup move failed: %v", err)
		}

		result, err := svc.Move(ctx, sess.ID, "right", false)
		if err != nil {
			t.Fatalf("Push failed: %v", err)
		}
		if !result.Success {
			t.Fatal("Expected push to succeed")
		}
		if result.Step == nil || !result.Step.Push {
			t.Error("Expected step to be recorded as a push")
		}
		if !result.GameState.Solved {
			t.Error("Expected puzzle to be solved")
		}

		types := make(map[string]bool)
		for _, ev := range result.Events {
			types[ev.Type] = true
		}
		for _, want := range []string{"push", "goal_covered", "solved"} {
			if !types[want] {
				t.Errorf("Expected event type '%s' in %v", want, result.Events)
			}
		}
	})

	t.Run("move with reset", func(t *testing.T) {
		result, err := svc.Move(ctx, info.ID, "down", true)
		if err != nil {
			t.Fatalf("Move with reset failed: %v", err)
		}
		if len(result.Events) == 0 || result.Events[0].Type != "reset" {
			t.Error("Expected reset event first")
		}
		// Player starts at (1,1); after reset+down they are at (1,2)
		if result.GameState.PlayerPos != (engine.Position{X: 1, Y: 2}) {
			t.Errorf("Expected player at (1,2), got %v", result.GameState.PlayerPos)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		if _, err := svc.Move(ctx, "nope", "up", false); err == nil {
			t.Error("Expected error for unknown session")
		}
	})
}

func TestGameService_BulkMove(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("executes moves in order", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		result, err := svc.BulkMove(ctx, info.ID, []string{"right", "right", "down"}, false)
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if result.MovesExecuted != 3 {
			t.Errorf("Expected 3 executed moves, got %d", result.MovesExecuted)
		}
		if !result.Success {
			t.Error("Expected bulk move to succeed")
		}
		if len(result.Steps) != 3 {
			t.Errorf("Expected 3 steps, got %d", len(result.Steps))
		}
		if result.EndPos != (engine.Position{X: 3, Y: 2}) {
			t.Errorf("Expected end position (3,2), got %v", result.EndPos)
		}
	})

	t.Run("stops on blocked move", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		result, err := svc.BulkMove(ctx, info.ID, []string{"up", "right"}, false)
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if result.Success {
			t.Error("Expected bulk move to report failure")
		}
		if result.MovesExecuted != 0 {
			t.Errorf("Expected 0 executed moves, got %d", result.MovesExecuted)
		}
		if result.StoppedOnMove != 1 {
			t.Errorf("Expected stop on move 1, got %d", result.StoppedOnMove)
		}
		if result.StopReasonCode != "blocked_wall" {
			t.Errorf("Expected stop reason 'blocked_wall', got '%s'", result.StopReasonCode)
		}
	})

	t.Run("solves and reports push count", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		result, err := svc.BulkMove(ctx, info.ID, []string{"down", "right"}, false)
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if !result.Solved {
			t.Error("Expected puzzle to be solved")
		}
		if result.PushCount != 1 {
			t.Errorf("Expected 1 push, got %d", result.PushCount)
		}
		if result.StopReasonCode != "solved" {
			t.Errorf("Expected stop reason 'solved', got '%s'", result.StopReasonCode)
		}
		if result.EndGoals != 0 {
			t.Errorf("Expected 0 goals at end, got %d", result.EndGoals)
		}
	})

	t.Run("truncates long move lists", func(t *testing.T) {
		info, err := svc.CreateSession(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}

		moves := make([]string, engine.MaxBulkMoves+50)
		for i := range moves {
			moves[i] = "right"
		}

		result, err := svc.BulkMove(ctx, info.ID, moves, false)
		if err != nil {
			t.Fatalf("BulkMove failed: %v", err)
		}
		if !result.Truncated {
			t.Error("Expected move list to be truncated")
		}
		if result.Limit != engine.MaxBulkMoves {
			t.Errorf("Expected limit %d, got %d", engine.MaxBulkMoves, result.Limit)
		}
		if result.RequestedMoves != engine.MaxBulkMoves+50 {
			t.Errorf("Expected requested moves %d, got %d", engine.MaxBulkMoves+50, result.RequestedMoves)
		}
	})
}

func TestGameService_GetMoveHistory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Make some moves, including blocked ones
	for _, dir := range []string{"right", "right", "up", "down", "left"} {
		if _, err := svc.Move(ctx, info.ID, dir, false); err != nil {
			t.Fatalf("Move failed: %v", err)
		}
	}

	t.Run("default options", func(t *testing.T) {
		history, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{})
		if err != nil {
			t.Fatalf("GetMoveHistory failed: %v", err)
		}
		if history.TotalMoves != 5 {
			t.Errorf("Expected 5 total moves, got %d", history.TotalMoves)
		}
		if len(history.Moves) != 5 {
			t.Errorf("Expected 5 moves in page, got %d", len(history.Moves))
		}
		// Default order is most recent first
		if history.Moves[0].Action != "left" {
			t.Errorf("Expected most recent move 'left' first, got '%s'", history.Moves[0].Action)
		}
	})

	t.Run("ascending order", func(t *testing.T) {
		history, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Order: "asc"})
		if err != nil {
			t.Fatalf("GetMoveHistory failed: %v", err)
		}
		if history.Moves[0].Action != "right" {
			t.Errorf("Expected oldest move 'right' first, got '%s'", history.Moves[0].Action)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		history, err := svc.GetMoveHistory(ctx, info.ID, service.HistoryOptions{Page: 2, Limit: 2, Order: "asc"})
		if err != nil {
			t.Fatalf("GetMoveHistory failed: %v", err)
		}
		if len(history.Moves) != 2 {
			t.Errorf("Expected 2 moves on page 2, got %d", len(history.Moves))
		}
		if history.TotalPages != 3 {
			t.Errorf("Expected 3 total pages, got %d", history.TotalPages)
		}
		if !history.HasNext || !history.HasPrevious {
			t.Error("Expected both next and previous pages")
		}
	})
}

func TestGameService_ListSessions(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateSession(ctx, "test"); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
	}

	sessions, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(sessions))
	}
}

func TestGameService_Reset(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if _, err := svc.Move(ctx, info.ID, "right", false); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if state.PlayerPos != (engine.Position{X: 1, Y: 1}) {
		t.Errorf("Expected player back at (1,1), got %v", state.PlayerPos)
	}
	if state.CurrentMovesCount != 0 {
		t.Errorf("Expected empty current segment after reset, got %d", state.CurrentMovesCount)
	}
	if state.TotalMoves != 1 {
		t.Errorf("Expected cumulative total of 1 move, got %d", state.TotalMoves)
	}
}

func TestGameService_ListLevels(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	levels, err := svc.ListLevels(ctx)
	if err != nil {
		t.Fatalf("ListLevels failed: %v", err)
	}
	if len(levels) != 1 {
		t.Fatalf("Expected 1 level, got %d", len(levels))
	}
	if levels[0].LevelID != "test" {
		t.Errorf("Expected level ID 'test', got '%s'", levels[0].LevelID)
	}
}
