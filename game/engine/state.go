package engine

// GameState is the complete, serializable snapshot of a running game. It is
// what the service layer hands to the API, the WebSocket hub and the session
// persistence; SetState restores an engine from it.
type GameState struct {
	LevelName      string   `json:"level_name"`
	Width          int      `json:"width"`
	Height         int      `json:"height"`
	Tiles          []string `json:"tiles"`
	Objects        []string `json:"objects"`
	PlayerPos      Position `json:"player_pos"`
	GoalsRemaining int      `json:"goals_remaining"`
	TotalGoals     int      `json:"total_goals"`
	Solved         bool     `json:"solved"`

	MoveHistory []MoveHistoryEntry `json:"move_history"`
	TotalMoves  int                `json:"total_moves"`

	// CurrentMoves tracks only the moves since the last reset. It mirrors
	// MoveHistory entries but gets cleared on reset while MoveHistory remains
	// cumulative.
	CurrentMoves      []MoveHistoryEntry `json:"current_moves"`
	CurrentMovesCount int                `json:"current_moves_count"`

	// LocalView3x3 is a decision aid filled in by the service layer: the
	// 3x3 neighborhood around the player rendered with the level legend.
	LocalView3x3 []string `json:"local_view_3x3,omitempty"`
}

// MoveHistoryEntry represents a single move attempt in the game history.
type MoveHistoryEntry struct {
	Action         string   `json:"action"`
	FromPosition   Position `json:"from_position"`
	ToPosition     Position `json:"to_position"`
	Push           bool     `json:"push"`
	GoalsRemaining int      `json:"goals_remaining"`
	Timestamp      int64    `json:"timestamp"`
	Success        bool     `json:"success"`
	MoveNumber     int      `json:"move_number"`
}
