package engine

import "strings"

// TileRune returns the terminal glyph for a tile.
func TileRune(t Tile) rune {
	switch t {
	case TileWall:
		return '▒'
	case TileGoal:
		return '○'
	default:
		return ' '
	}
}

// ObjectRune returns the terminal glyph for an object, falling back to the
// underlying tile glyph for empty cells. A box on a goal gets its own glyph.
func ObjectRune(o Object, t Tile) rune {
	switch o {
	case ObjectPlayer:
		return '☻'
	case ObjectBox:
		if t == TileGoal {
			return '◙'
		}
		return '■'
	default:
		return TileRune(t)
	}
}

// Render returns the board as terminal glyph rows, one cell per rune.
func (b *Board) Render() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			p := Position{X: x, Y: y}
			sb.WriteRune(ObjectRune(b.ObjectAt(p), b.TileAt(p)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// TileRows serializes the tile layer as legend-character rows.
func (b *Board) TileRows() []string {
	rows := make([]string, 0, b.height)
	for y := 0; y < b.height; y++ {
		var sb strings.Builder
		for x := 0; x < b.width; x++ {
			switch b.TileAt(Position{X: x, Y: y}) {
			case TileWall:
				sb.WriteByte(TileWallChar)
			case TileGoal:
				sb.WriteByte(TileGoalChar)
			default:
				sb.WriteByte(TileFloorChar)
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// ObjectRows serializes the object layer as legend-character rows.
func (b *Board) ObjectRows() []string {
	rows := make([]string, 0, b.height)
	for y := 0; y < b.height; y++ {
		var sb strings.Builder
		for x := 0; x < b.width; x++ {
			switch b.ObjectAt(Position{X: x, Y: y}) {
			case ObjectPlayer:
				sb.WriteByte(ObjectPlayerChar)
			case ObjectBox:
				sb.WriteByte(ObjectBoxChar)
			default:
				sb.WriteByte(ObjectEmptyChar)
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}
