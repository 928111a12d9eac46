package solver

import (
	"errors"
	"testing"

	"github.com/sokoban-go/sokoban/game/engine"
)

func singleBoxLevel() *engine.LevelConfig {
	return &engine.LevelConfig{
		Name:        "single-box",
		Description: "One box, one goal",
		Width:       6,
		Height:      5,
		Tiles: []string{
			"######",
			"#....#",
			"#.O..#",
			"#....#",
			"######",
		},
		Objects: []string{
			"......",
			".@....",
			"...B..",
			"......",
			"......",
		},
	}
}

func twoBoxLevel() *engine.LevelConfig {
	return &engine.LevelConfig{
		Name:        "two-box",
		Description: "Two boxes in an open hall",
		Width:       8,
		Height:      6,
		Tiles: []string{
			"########",
			"#......#",
			"#.O..O.#",
			"#......#",
			"#......#",
			"########",
		},
		Objects: []string{
			"........",
			"........",
			"...BB...",
			"........",
			".@......",
			"........",
		},
	}
}

// replay runs the moves through a fresh engine and reports whether they
// actually solve the level.
func replay(t *testing.T, cfg *engine.LevelConfig, moves []string) bool {
	t.Helper()
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	for i, move := range moves {
		if !eng.Move(move) {
			t.Fatalf("Solution move %d (%s) was blocked", i+1, move)
		}
	}
	return eng.IsSolved()
}

func TestSolve_SingleBox(t *testing.T) {
	cfg := singleBoxLevel()

	result, err := Solve(cfg, 0)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if len(result.Moves) == 0 {
		t.Fatal("Expected a non-empty move sequence")
	}
	if !replay(t, cfg, result.Moves) {
		t.Errorf("Replaying solution did not solve the level: %v", result.Moves)
	}

	// Shortest solution: reach (4,2) and push the box left once.
	// Any 5-move route works; BFS must not return a longer one.
	if len(result.Moves) != 5 {
		t.Errorf("Expected a 5-move solution, got %d: %v", len(result.Moves), result.Moves)
	}
}

func TestSolve_TwoBoxes(t *testing.T) {
	cfg := twoBoxLevel()

	result, err := Solve(cfg, 0)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if !replay(t, cfg, result.Moves) {
		t.Errorf("Replaying solution did not solve the level: %v", result.Moves)
	}
	if result.StatesExplored < 2 {
		t.Errorf("Expected multiple states explored, got %d", result.StatesExplored)
	}
}

func TestSolve_AlreadySolved(t *testing.T) {
	cfg := singleBoxLevel()
	cfg.Objects = []string{
		"......",
		".@....",
		"..B...",
		"......",
		"......",
	}
	// Box starts on the goal at (2,2)

	result, err := Solve(cfg, 0)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(result.Moves) != 0 {
		t.Errorf("Expected empty move sequence for a solved level, got %v", result.Moves)
	}
}

func TestSolve_Unsolvable(t *testing.T) {
	cfg := singleBoxLevel()
	cfg.Objects = []string{
		"......",
		".B....",
		"....@.",
		"......",
		"......",
	}
	// Box starts in the top-left interior corner and can never move

	_, err := Solve(cfg, 0)
	if !errors.Is(err, ErrNoSolution) {
		t.Errorf("Expected ErrNoSolution, got %v", err)
	}
}

func TestSolve_StateLimit(t *testing.T) {
	cfg := twoBoxLevel()

	_, err := Solve(cfg, 1)
	if !errors.Is(err, ErrStateLimit) {
		t.Errorf("Expected ErrStateLimit, got %v", err)
	}
}

func TestSolve_InvalidLevel(t *testing.T) {
	if _, err := Solve(&engine.LevelConfig{Name: "broken"}, 0); err == nil {
		t.Error("Expected error for invalid level")
	}
}
