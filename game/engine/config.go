package engine

import (
	"encoding/json"
	"fmt"
	"os"
)

// Level layer characters. Tile rows use TileWallChar, TileFloorChar and
// TileGoalChar; object rows use ObjectPlayerChar, ObjectBoxChar and
// ObjectEmptyChar.
const (
	TileFloorChar = '.'
	TileWallChar  = '#'
	TileGoalChar  = 'O'

	ObjectEmptyChar  = '.'
	ObjectPlayerChar = '@'
	ObjectBoxChar    = 'B'
)

// LevelConfig describes a level as loaded from JSON: the static tile layer
// and the initial object layer, supplied as rows of legend characters.
type LevelConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Tiles       []string `json:"tiles"`
	Objects     []string `json:"objects"`
}

// ValidateLevelConfig validates a level configuration for correctness and
// playability. A valid level has matching layer dimensions, legal characters,
// exactly one player, a sealed outer wall ring, no object standing on a wall,
// at least one goal, and enough boxes to cover every uncovered goal.
func ValidateLevelConfig(cfg *LevelConfig) error {
	if cfg == nil {
		return fmt.Errorf("level validation: config is nil")
	}
	if cfg.Name == "" {
		return fmt.Errorf("level validation: name is required")
	}
	if cfg.Width < MinBoardSize || cfg.Width > MaxBoardSize {
		return fmt.Errorf("level validation: width must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, cfg.Width)
	}
	if cfg.Height < MinBoardSize || cfg.Height > MaxBoardSize {
		return fmt.Errorf("level validation: height must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, cfg.Height)
	}
	if len(cfg.Tiles) != cfg.Height {
		return fmt.Errorf("level validation: tiles must have %d rows to match height, got %d", cfg.Height, len(cfg.Tiles))
	}
	if len(cfg.Objects) != cfg.Height {
		return fmt.Errorf("level validation: objects must have %d rows to match height, got %d", cfg.Height, len(cfg.Objects))
	}

	players := 0
	boxes := 0
	goals := 0
	uncoveredGoals := 0

	for y := 0; y < cfg.Height; y++ {
		tileRow := cfg.Tiles[y]
		objRow := cfg.Objects[y]
		if len(tileRow) != cfg.Width {
			return fmt.Errorf("level validation: tile row %d must have %d characters to match width, got %d", y+1, cfg.Width, len(tileRow))
		}
		if len(objRow) != cfg.Width {
			return fmt.Errorf("level validation: object row %d must have %d characters to match width, got %d", y+1, cfg.Width, len(objRow))
		}

		for x := 0; x < cfg.Width; x++ {
			tc := tileRow[x]
			oc := objRow[x]

			switch tc {
			case TileFloorChar, TileWallChar, TileGoalChar:
			default:
				return fmt.Errorf("level validation: invalid tile character %q at row %d, col %d", tc, y+1, x+1)
			}
			switch oc {
			case ObjectEmptyChar, ObjectPlayerChar, ObjectBoxChar:
			default:
				return fmt.Errorf("level validation: invalid object character %q at row %d, col %d", oc, y+1, x+1)
			}

			// The outer ring must be wall so single-step moves can never
			// leave the grid.
			border := x == 0 || y == 0 || x == cfg.Width-1 || y == cfg.Height-1
			if border && tc != TileWallChar {
				return fmt.Errorf("level validation: border cell at row %d, col %d must be a wall", y+1, x+1)
			}

			if tc == TileWallChar && oc != ObjectEmptyChar {
				return fmt.Errorf("level validation: object %q on wall at row %d, col %d", oc, y+1, x+1)
			}

			switch oc {
			case ObjectPlayerChar:
				players++
			case ObjectBoxChar:
				boxes++
			}
			if tc == TileGoalChar {
				goals++
				if oc != ObjectBoxChar {
					uncoveredGoals++
				}
			}
		}
	}

	if players != 1 {
		return fmt.Errorf("level validation: level must contain exactly one player (@), got %d", players)
	}
	if goals == 0 {
		return fmt.Errorf("level validation: level must contain at least one goal (O) tile")
	}
	if boxes < uncoveredGoals {
		return fmt.Errorf("level validation: %d boxes cannot cover %d uncovered goals", boxes, uncoveredGoals)
	}

	return nil
}

// NewBoardFromConfig builds the two board layers from a validated level
// configuration.
func NewBoardFromConfig(cfg *LevelConfig) (*Board, error) {
	if err := ValidateLevelConfig(cfg); err != nil {
		return nil, err
	}

	tiles := make([]Tile, 0, cfg.Width*cfg.Height)
	objects := make([]Object, 0, cfg.Width*cfg.Height)

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			switch cfg.Tiles[y][x] {
			case TileWallChar:
				tiles = append(tiles, TileWall)
			case TileGoalChar:
				tiles = append(tiles, TileGoal)
			default:
				tiles = append(tiles, TileEmpty)
			}
			switch cfg.Objects[y][x] {
			case ObjectPlayerChar:
				objects = append(objects, ObjectPlayer)
			case ObjectBoxChar:
				objects = append(objects, ObjectBox)
			default:
				objects = append(objects, ObjectEmpty)
			}
		}
	}

	return NewBoard(cfg.Width, cfg.Height, tiles, objects)
}

// LoadLevelConfig loads and validates a level configuration from a JSON file.
func LoadLevelConfig(filename string) (*LevelConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var cfg LevelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", filename, err)
	}

	if err := ValidateLevelConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultLevelConfig returns the built-in 8x8 classic puzzle used when no
// level directory is available.
func DefaultLevelConfig() *LevelConfig {
	return &LevelConfig{
		Name:        "classic",
		Description: "The classic 8x8 warehouse: five boxes, five goals",
		Width:       8,
		Height:      8,
		Tiles: []string{
			"########",
			"##.....#",
			"#......#",
			"#......#",
			"#...#.O#",
			"#.....O#",
			"#...OOO#",
			"########",
		},
		Objects: []string{
			"........",
			"........",
			"..BB....",
			"..B.B...",
			"........",
			"....B...",
			".@......",
			"........",
		},
	}
}
