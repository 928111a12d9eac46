package engine

// Tile represents the static terrain of a single cell. Tiles are set once at
// board construction and never mutated during play.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall
	TileGoal
)

// Object represents the movable occupant of a single cell. The object layer
// is mutated on every successful move; exactly one cell holds ObjectPlayer at
// all times.
type Object uint8

const (
	ObjectEmpty Object = iota
	ObjectPlayer
	ObjectBox
)

const (
	// Validation constants
	MinBoardSize = 3
	MaxBoardSize = 64
	MaxBulkMoves = 200

	WebSocketBufferSize = 256
)

// Position represents x,y coordinates on the board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Offset is a single-step directional delta. Only the four canonical values
// Up, Down, Left and Right are ever fed to the engine.
type Offset struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

var (
	Up    = Offset{0, -1}
	Down  = Offset{0, 1}
	Left  = Offset{-1, 0}
	Right = Offset{1, 0}
)

// Add returns the position shifted by the given offset.
func (p Position) Add(off Offset) Position {
	return Position{X: p.X + off.DX, Y: p.Y + off.DY}
}

// Directions lists the direction names accepted by ParseDirection, in a
// stable order used when enumerating possible moves.
var Directions = []string{"up", "down", "left", "right"}

// ParseDirection maps a direction name to its offset. The boolean reports
// whether the name was recognized.
func ParseDirection(direction string) (Offset, bool) {
	switch direction {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return Offset{}, false
	}
}
