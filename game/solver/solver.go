// Package solver finds move sequences that solve a level. It runs a
// breadth-first search over board states, so the first solution found uses
// the fewest moves. Corner deadlock pruning keeps the search from wading
// through states that can never be won.
package solver

import (
	"fmt"
	"strings"

	"github.com/sokoban-go/sokoban/game/engine"
)

// DefaultMaxStates bounds the search. Boards within the engine's size limits
// rarely need more unless the level is pathological.
const DefaultMaxStates = 500000

// Result describes a successful search.
type Result struct {
	Moves          []string
	StatesExplored int
}

// ErrNoSolution is returned when the full reachable state space was explored
// without finding a solved state.
var ErrNoSolution = fmt.Errorf("solver: level has no solution")

// ErrStateLimit is returned when the search hit the state cap before
// exhausting the space.
var ErrStateLimit = fmt.Errorf("solver: state limit reached before a solution was found")

type searchNode struct {
	board  *engine.Board
	parent *searchNode
	move   string
}

// Solve searches for a minimal move sequence that covers every goal.
// maxStates caps the number of distinct states visited; pass 0 to use
// DefaultMaxStates.
func Solve(cfg *engine.LevelConfig, maxStates int) (*Result, error) {
	board, err := engine.NewBoardFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}

	start := &searchNode{board: board}
	if engine.NewGame(board).Solved() {
		return &Result{Moves: []string{}, StatesExplored: 1}, nil
	}

	visited := map[string]bool{stateKey(board): true}
	queue := []*searchNode{start}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		for _, dir := range engine.Directions {
			off, _ := engine.ParseDirection(dir)

			game := engine.NewGame(node.board.Clone())
			if !game.MovePlayer(off) {
				continue
			}

			next := game.Board()
			key := stateKey(next)
			if visited[key] {
				continue
			}
			visited[key] = true

			if len(visited) > maxStates {
				return nil, ErrStateLimit
			}

			child := &searchNode{board: next, parent: node, move: dir}
			if game.Solved() {
				return &Result{
					Moves:          reconstructMoves(child),
					StatesExplored: len(visited),
				}, nil
			}

			if hasDeadlockedBox(next) {
				continue
			}
			queue = append(queue, child)
		}
	}

	return nil, ErrNoSolution
}

// reconstructMoves walks parent links back to the root and reverses the path.
func reconstructMoves(node *searchNode) []string {
	var moves []string
	for n := node; n.parent != nil; n = n.parent {
		moves = append(moves, n.move)
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// stateKey serializes the positions that define a state: the player cell and
// every box cell. Tiles never change, so they stay out of the key.
func stateKey(b *engine.Board) string {
	var sb strings.Builder
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			switch b.ObjectAt(engine.Position{X: x, Y: y}) {
			case engine.ObjectPlayer:
				fmt.Fprintf(&sb, "p%d.%d;", x, y)
			case engine.ObjectBox:
				fmt.Fprintf(&sb, "b%d.%d;", x, y)
			}
		}
	}
	return sb.String()
}

// hasDeadlockedBox reports whether any box sits on a non-goal cell with a
// wall on one horizontal and one vertical side. Such a box can never move
// again, so the state cannot lead to a solution.
func hasDeadlockedBox(b *engine.Board) bool {
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			p := engine.Position{X: x, Y: y}
			if b.ObjectAt(p) != engine.ObjectBox || b.TileAt(p) == engine.TileGoal {
				continue
			}
			vertWall := b.TileAt(p.Add(engine.Up)) == engine.TileWall ||
				b.TileAt(p.Add(engine.Down)) == engine.TileWall
			horizWall := b.TileAt(p.Add(engine.Left)) == engine.TileWall ||
				b.TileAt(p.Add(engine.Right)) == engine.TileWall
			if vertWall && horizWall {
				return true
			}
		}
	}
	return false
}
