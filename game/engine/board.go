package engine

import "fmt"

// Board holds the two same-shape layers of a level: static tiles and movable
// objects. Both layers are flat slices of size width*height addressed by the
// linear index x + y*width. The shape is immutable after construction; only
// the object layer changes during play, and SwapObjects is the only mutation
// primitive the board exposes.
type Board struct {
	width   int
	height  int
	tiles   []Tile
	objects []Object
}

// NewBoard creates a board from pre-built layers. The layers must both have
// exactly width*height entries.
func NewBoard(width, height int, tiles []Tile, objects []Object) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("board dimensions must be positive, got %dx%d", width, height)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("tile layer has %d cells, want %d", len(tiles), width*height)
	}
	if len(objects) != width*height {
		return nil, fmt.Errorf("object layer has %d cells, want %d", len(objects), width*height)
	}
	return &Board{width: width, height: height, tiles: tiles, objects: objects}, nil
}

// Width returns the board width in cells.
func (b *Board) Width() int { return b.width }

// Height returns the board height in cells.
func (b *Board) Height() int { return b.height }

func (b *Board) index(p Position) int {
	return p.X + p.Y*b.width
}

// TileAt returns the tile at the given position. The position must be in
// bounds; this is the caller's contract and is not re-validated.
func (b *Board) TileAt(p Position) Tile {
	return b.tiles[b.index(p)]
}

// ObjectAt returns the object at the given position. The position must be in
// bounds; this is the caller's contract and is not re-validated.
func (b *Board) ObjectAt(p Position) Object {
	return b.objects[b.index(p)]
}

// SwapObjects exchanges the objects at two positions. It does not validate
// the legality of the result; legality is the Game's responsibility.
func (b *Board) SwapObjects(a, c Position) {
	i, j := b.index(a), b.index(c)
	b.objects[i], b.objects[j] = b.objects[j], b.objects[i]
}

// FindPlayer scans the object layer in row-major order and returns the first
// cell holding the player. A board without a player violates the construction
// invariant, so FindPlayer panics rather than returning an error.
func (b *Board) FindPlayer() Position {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			p := Position{X: x, Y: y}
			if b.ObjectAt(p) == ObjectPlayer {
				return p
			}
		}
	}
	panic("engine: board has no player")
}

// CountGoalsUncovered counts the goal tiles not currently covered by a box.
func (b *Board) CountGoalsUncovered() int {
	count := 0
	for i, t := range b.tiles {
		if t == TileGoal && b.objects[i] != ObjectBox {
			count++
		}
	}
	return count
}

// CountGoals counts all goal tiles on the board.
func (b *Board) CountGoals() int {
	count := 0
	for _, t := range b.tiles {
		if t == TileGoal {
			count++
		}
	}
	return count
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	tiles := make([]Tile, len(b.tiles))
	copy(tiles, b.tiles)
	objects := make([]Object, len(b.objects))
	copy(objects, b.objects)
	return &Board{width: b.width, height: b.height, tiles: tiles, objects: objects}
}

// Equal reports whether two boards have identical dimensions and layers.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.tiles {
		if b.tiles[i] != other.tiles[i] {
			return false
		}
	}
	for i := range b.objects {
		if b.objects[i] != other.objects[i] {
			return false
		}
	}
	return true
}
