package engine

import (
	"testing"
)

func createTestConfig() *LevelConfig {
	return &LevelConfig{
		Name:        "Engine Test Level",
		Description: "Level for engine integration tests",
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
}

func TestNewEngine(t *testing.T) {
	cfg := createTestConfig()
	eng, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if eng == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	// Test initial state
	if got := eng.GetPlayerPosition(); got != (Position{1, 1}) {
		t.Errorf("Expected player at (1,1), got %v", got)
	}
	if got := eng.GetGoalsRemaining(); got != 1 {
		t.Errorf("Expected 1 goal remaining, got %d", got)
	}
	if eng.IsSolved() {
		t.Error("Expected game not to be solved initially")
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := createTestConfig()
	cfg.Name = "" // Make config invalid

	if _, err := NewEngine(cfg); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	eng := NewEngineWithDefaults()
	if eng == nil {
		t.Fatal("Expected engine to be non-nil")
	}

	if got := eng.GetConfig().Name; got != "classic" {
		t.Errorf("Expected built-in level name 'classic', got %q", got)
	}
	if eng.GetGoalsRemaining() <= 0 {
		t.Error("Expected uncovered goals on the built-in level")
	}
}

func TestEngine_BasicMovement(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	initialPos := eng.GetPlayerPosition()

	// Test successful move
	if !eng.Move("right") {
		t.Error("Expected successful move")
	}

	newPos := eng.GetPlayerPosition()
	if newPos.X != initialPos.X+1 {
		t.Errorf("Expected X position to increase by 1, was %d now %d", initialPos.X, newPos.X)
	}

	// Test move history
	history := eng.GetMoveHistory()
	if len(history) != 1 {
		t.Errorf("Expected 1 move in history, got %d", len(history))
	}

	lastMove := eng.GetLastMove()
	if lastMove == nil {
		t.Fatal("Expected last move to be non-nil")
	}
	if lastMove.Action != "right" {
		t.Errorf("Expected last move action 'right', got '%s'", lastMove.Action)
	}
	if !lastMove.Success {
		t.Error("Expected last move to be recorded as successful")
	}
	if lastMove.Push {
		t.Error("Expected plain move not to be recorded as a push")
	}
}

func TestEngine_InvalidDirection(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if eng.Move("north") {
		t.Error("Expected unknown direction to be rejected")
	}
	if len(eng.GetMoveHistory()) != 0 {
		t.Error("Expected no history entry for an unknown direction")
	}
}

func TestEngine_BlockedMoveIsRecorded(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if eng.Move("up") {
		t.Error("Expected move into wall to fail")
	}

	lastMove := eng.GetLastMove()
	if lastMove == nil {
		t.Fatal("Expected blocked move to be recorded")
	}
	if lastMove.Success {
		t.Error("Expected blocked move to be recorded as failed")
	}
	if lastMove.FromPosition != lastMove.ToPosition {
		t.Error("Expected from and to positions to match for a blocked move")
	}
}

func TestEngine_PushIsRecorded(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	// Player (1,1), box (2,2): step down then push the box right? The box is
	// below-right; instead step down so the box is directly right.
	if !eng.Move("down") {
		t.Fatal("Expected setup move to succeed")
	}
	if !eng.Move("right") {
		t.Fatal("Expected push to succeed")
	}

	lastMove := eng.GetLastMove()
	if lastMove == nil {
		t.Fatal("Expected push to be recorded")
	}
	if !lastMove.Push {
		t.Error("Expected move to be recorded as a push")
	}
	if got := eng.Game().Board().ObjectAt(Position{3, 2}); got != ObjectBox {
		t.Errorf("Expected box at (3,2) after push, got %d", got)
	}
	if got := eng.GetGoalsRemaining(); got != 0 {
		t.Errorf("Expected 0 goals after pushing box onto goal, got %d", got)
	}
	if !eng.IsSolved() {
		t.Error("Expected game to be solved")
	}
}

func TestEngine_CanMove(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	tests := []struct {
		direction string
		want      bool
	}{
		{"up", false},    // wall
		{"left", false},  // wall
		{"down", true},   // open floor
		{"right", true},  // open floor
		{"north", false}, // unknown direction
	}

	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			if got := eng.CanMove(tt.direction); got != tt.want {
				t.Errorf("CanMove(%q) = %v, want %v", tt.direction, got, tt.want)
			}
		})
	}

	// CanMove must not mutate anything.
	if got := eng.GetPlayerPosition(); got != (Position{1, 1}) {
		t.Errorf("Expected player to stay at (1,1), got %v", got)
	}
	if len(eng.GetMoveHistory()) != 0 {
		t.Error("Expected CanMove to leave history untouched")
	}
}

func TestEngine_GetPossibleMoves(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	possible := eng.GetPossibleMoves()
	want := map[string]bool{"down": true, "right": true}

	if len(possible) != len(want) {
		t.Fatalf("Expected %d possible moves, got %v", len(want), possible)
	}
	for _, dir := range possible {
		if !want[dir] {
			t.Errorf("Unexpected possible move %q", dir)
		}
	}
}

func TestEngine_Reset(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	eng.Move("right")
	eng.Move("down")
	movesBefore := len(eng.GetMoveHistory())

	state := eng.Reset()

	if got := state.PlayerPos; got != (Position{1, 1}) {
		t.Errorf("Expected player back at (1,1) after reset, got %v", got)
	}
	if got := state.GoalsRemaining; got != 1 {
		t.Errorf("Expected 1 goal remaining after reset, got %d", got)
	}

	// Cumulative history survives a reset; the current segment does not.
	if got := len(eng.GetMoveHistory()); got != movesBefore {
		t.Errorf("Expected cumulative history to survive reset, got %d entries", got)
	}
	if got := state.CurrentMovesCount; got != 0 {
		t.Errorf("Expected empty current segment after reset, got %d", got)
	}
	if got := state.TotalMoves; got != movesBefore {
		t.Errorf("Expected total moves %d after reset, got %d", movesBefore, got)
	}
}

func TestEngine_GetState(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	eng.Move("down")
	state := eng.GetState()

	if state.LevelName != "Engine Test Level" {
		t.Errorf("Expected level name in state, got %q", state.LevelName)
	}
	if state.Width != 7 || state.Height != 5 {
		t.Errorf("Expected 7x5 state, got %dx%d", state.Width, state.Height)
	}
	if state.TotalGoals != 1 {
		t.Errorf("Expected 1 total goal, got %d", state.TotalGoals)
	}
	if state.PlayerPos != (Position{1, 2}) {
		t.Errorf("Expected player at (1,2), got %v", state.PlayerPos)
	}
	if state.Objects[2][1] != ObjectPlayerChar {
		t.Error("Expected player character in serialized object rows")
	}

	// The snapshot is a copy: mutating it must not affect the engine.
	state.MoveHistory = nil
	if len(eng.GetMoveHistory()) != 1 {
		t.Error("Expected engine history to be independent of the snapshot")
	}
}

func TestEngine_SetState_RoundTrip(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	eng.Move("down")
	eng.Move("right") // push onto goal
	snapshot := eng.GetState()

	restored, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	if err := restored.SetState(snapshot); err != nil {
		t.Fatalf("Failed to restore state: %v", err)
	}

	if got := restored.GetPlayerPosition(); got != eng.GetPlayerPosition() {
		t.Errorf("Expected restored player position %v, got %v", eng.GetPlayerPosition(), got)
	}
	if got := restored.GetGoalsRemaining(); got != eng.GetGoalsRemaining() {
		t.Errorf("Expected restored goals remaining %d, got %d", eng.GetGoalsRemaining(), got)
	}
	if got := len(restored.GetMoveHistory()); got != 2 {
		t.Errorf("Expected 2 restored history entries, got %d", got)
	}
	if !restored.IsSolved() {
		t.Error("Expected restored game to be solved")
	}
}

func TestEngine_SetState_Invalid(t *testing.T) {
	eng, err := NewEngine(createTestConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if err := eng.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}

	bad := eng.GetState()
	bad.Objects[1] = "......." // erase the player
	if err := eng.SetState(bad); err == nil {
		t.Error("Expected error for snapshot without a player")
	}
}
