package engine

// Game owns a Board plus two derived fields: the cached player position and
// the count of goal tiles not covered by a box. Both are recomputable from
// the board alone and exist so a turn never has to rescan the grid. Game is
// the single source of truth for move legality; it mutates the board strictly
// sequentially and must not be shared between goroutines without external
// serialization.
type Game struct {
	board          *Board
	playerPos      Position
	goalsRemaining int
}

// NewGame creates a game from a board, deriving the player position and the
// uncovered-goal count. This is the only place the two caches are computed
// from scratch; every move maintains them incrementally.
func NewGame(board *Board) *Game {
	return &Game{
		board:          board,
		playerPos:      board.FindPlayer(),
		goalsRemaining: board.CountGoalsUncovered(),
	}
}

// Board returns the underlying board for rendering and queries.
func (g *Game) Board() *Board { return g.board }

// PlayerPosition returns the cached player position.
func (g *Game) PlayerPosition() Position { return g.playerPos }

// GoalsRemaining returns the number of goal tiles not covered by a box.
func (g *Game) GoalsRemaining() int { return g.goalsRemaining }

// Solved reports whether every goal tile is covered by a box. The game has no
// terminal state: play can continue after Solved returns true.
func (g *Game) Solved() bool { return g.goalsRemaining == 0 }

// MovePlayer attempts to move the player one cell by the given offset,
// pushing a box if one occupies the target cell. Illegal moves (walls,
// blocked pushes) leave the board unchanged. The return value reports whether
// the board changed; it is an observation, not an error channel.
//
// The outer wall ring guarantees the target is always in bounds.
func (g *Game) MovePlayer(off Offset) bool {
	target := g.playerPos.Add(off)

	// A blocked box blocks the player too.
	if g.board.ObjectAt(target) == ObjectBox && !g.moveBox(target, off) {
		return false
	}
	if g.board.TileAt(target) == TileWall {
		return false
	}

	g.board.SwapObjects(target, g.playerPos)
	g.playerPos = target
	return true
}

// moveBox pushes the box at source one cell by the same offset the player is
// moving with. The push fails, with no state change, when the destination is
// a wall or holds any object; occupied-by-anything blocks a push. On success
// the uncovered-goal counter is adjusted for the box's source and destination
// tiles, each independently.
func (g *Game) moveBox(source Position, off Offset) bool {
	target := source.Add(off)

	if g.board.TileAt(target) == TileWall || g.board.ObjectAt(target) != ObjectEmpty {
		return false
	}

	if g.board.TileAt(source) == TileGoal {
		g.goalsRemaining++
	}
	if g.board.TileAt(target) == TileGoal {
		g.goalsRemaining--
	}

	g.board.SwapObjects(target, source)
	return true
}
