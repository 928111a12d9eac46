package engine

import (
	"testing"
)

func TestNewBoard_LayerSizeMismatch(t *testing.T) {
	tiles := make([]Tile, 9)
	objects := make([]Object, 8)

	if _, err := NewBoard(3, 3, tiles, objects); err == nil {
		t.Error("Expected error for object layer size mismatch")
	}

	if _, err := NewBoard(3, 3, tiles[:8], make([]Object, 9)); err == nil {
		t.Error("Expected error for tile layer size mismatch")
	}

	if _, err := NewBoard(0, 3, nil, nil); err == nil {
		t.Error("Expected error for zero width")
	}
}

func TestBoard_Lookups(t *testing.T) {
	cfg := &LevelConfig{
		Name:   "lookup test",
		Width:  5,
		Height: 4,
		Tiles: []string{
			"#####",
			"#.O.#",
			"#...#",
			"#####",
		},
		Objects: []string{
			".....",
			".@B..",
			".....",
			".....",
		},
	}

	board, err := NewBoardFromConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}

	if got := board.Width(); got != 5 {
		t.Errorf("Expected width 5, got %d", got)
	}
	if got := board.Height(); got != 4 {
		t.Errorf("Expected height 4, got %d", got)
	}

	tests := []struct {
		pos  Position
		tile Tile
		obj  Object
	}{
		{Position{0, 0}, TileWall, ObjectEmpty},
		{Position{1, 1}, TileEmpty, ObjectPlayer},
		{Position{2, 1}, TileGoal, ObjectBox},
		{Position{3, 1}, TileEmpty, ObjectEmpty},
	}

	for _, tt := range tests {
		if got := board.TileAt(tt.pos); got != tt.tile {
			t.Errorf("TileAt(%v) = %d, want %d", tt.pos, got, tt.tile)
		}
		if got := board.ObjectAt(tt.pos); got != tt.obj {
			t.Errorf("ObjectAt(%v) = %d, want %d", tt.pos, got, tt.obj)
		}
	}
}

func TestBoard_SwapObjects(t *testing.T) {
	cfg := &LevelConfig{
		Name:   "swap test",
		Width:  5,
		Height: 3,
		Tiles:  []string{"#####", "#.O.#", "#####"},
		Objects: []string{
			".....",
			".@B..",
			".....",
		},
	}

	board, err := NewBoardFromConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}

	a := Position{1, 1}
	b := Position{3, 1}
	board.SwapObjects(a, b)

	if board.ObjectAt(a) != ObjectEmpty {
		t.Error("Expected source cell to be empty after swap")
	}
	if board.ObjectAt(b) != ObjectPlayer {
		t.Error("Expected target cell to hold the player after swap")
	}

	// Tiles are untouched by object swaps
	if board.TileAt(Position{2, 1}) != TileGoal {
		t.Error("Expected tile layer to be unchanged by swap")
	}
}

func TestBoard_FindPlayer_RowMajorOrder(t *testing.T) {
	// Player at (3,1) must be found even though boxes precede it in scan order.
	cfg := &LevelConfig{
		Name:   "scan test",
		Width:  6,
		Height: 4,
		Tiles: []string{
			"######",
			"#..O.#",
			"#....#",
			"######",
		},
		Objects: []string{
			"......",
			".B.@..",
			"......",
			"......",
		},
	}

	board, err := NewBoardFromConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}

	got := board.FindPlayer()
	want := Position{3, 1}
	if got != want {
		t.Errorf("FindPlayer() = %v, want %v", got, want)
	}
}

func TestBoard_FindPlayer_MissingPlayerPanics(t *testing.T) {
	tiles := make([]Tile, 9)
	objects := make([]Object, 9)
	board, err := NewBoard(3, 3, tiles, objects)
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected FindPlayer to panic on a board without a player")
		}
	}()
	board.FindPlayer()
}

func TestBoard_CountGoalsUncovered(t *testing.T) {
	cfg := &LevelConfig{
		Name:   "goal count test",
		Width:  7,
		Height: 3,
		Tiles: []string{
			"#######",
			"#.OOO.#",
			"#######",
		},
		Objects: []string{
			".......",
			".@.B.B.",
			".......",
		},
	}

	board, err := NewBoardFromConfig(cfg)
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}

	// Three goals, one covered by the box at (3,1)
	if got := board.CountGoals(); got != 3 {
		t.Errorf("CountGoals() = %d, want 3", got)
	}
	if got := board.CountGoalsUncovered(); got != 2 {
		t.Errorf("CountGoalsUncovered() = %d, want 2", got)
	}
}

func TestBoard_CloneIsIndependent(t *testing.T) {
	board, err := NewBoardFromConfig(DefaultLevelConfig())
	if err != nil {
		t.Fatalf("Failed to build board: %v", err)
	}

	clone := board.Clone()
	if !board.Equal(clone) {
		t.Fatal("Expected clone to equal original")
	}

	clone.SwapObjects(board.FindPlayer(), Position{1, 1})
	if board.Equal(clone) {
		t.Error("Expected mutating the clone to leave the original unchanged")
	}
}
