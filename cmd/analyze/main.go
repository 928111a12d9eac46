// Command analyze prints quick, human-readable heuristics about level files
// in the project's levels directory. It summarizes dimensions, box and goal
// counts, and highlights corner deadlock cells: floor cells where a pushed
// box could never move again.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sokoban-go/sokoban/game/engine"
)

// AnalysisPoint denotes a board coordinate used during analysis output.
type AnalysisPoint struct {
	X, Y int
}

func main() {
	files, err := filepath.Glob(filepath.Join("levels", "*.json"))
	if err != nil {
		fmt.Printf("Error finding level files: %v\n", err)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeLevel(file)
	}
}

func analyzeLevel(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var level engine.LevelConfig
	if err := json.Unmarshal(data, &level); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", level.Name)
	fmt.Printf("Board: %d x %d\n", level.Width, level.Height)

	var boxes []AnalysisPoint
	var goals []AnalysisPoint
	var playerPos AnalysisPoint
	foundPlayer := false

	for y, row := range level.Objects {
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case engine.ObjectBoxChar:
				boxes = append(boxes, AnalysisPoint{x, y})
			case engine.ObjectPlayerChar:
				playerPos = AnalysisPoint{x, y}
				foundPlayer = true
			}
		}
	}
	for y, row := range level.Tiles {
		for x := 0; x < len(row); x++ {
			if row[x] == engine.TileGoalChar {
				goals = append(goals, AnalysisPoint{x, y})
			}
		}
	}

	if foundPlayer {
		fmt.Printf("Player Position: (%d, %d)\n", playerPos.X, playerPos.Y)
	} else {
		fmt.Printf("⚠️  WARNING: No player position found\n")
	}
	fmt.Printf("Total Boxes: %d\n", len(boxes))
	fmt.Printf("Total Goals: %d\n", len(goals))

	coveredGoals := 0
	for _, g := range goals {
		for _, b := range boxes {
			if b == g {
				coveredGoals++
				break
			}
		}
	}
	fmt.Printf("Goals covered at start: %d\n", coveredGoals)

	if len(boxes) < len(goals)-coveredGoals {
		fmt.Printf("⚠️  CRITICAL: Only %d boxes for %d uncovered goals - unsolvable!\n",
			len(boxes), len(goals)-coveredGoals)
	}

	// Corner deadlock cells: a non-goal floor cell with a wall above or below
	// AND a wall left or right. A box pushed there can never move again.
	deadlocks := []AnalysisPoint{}
	for y := 0; y < level.Height; y++ {
		for x := 0; x < len(level.Tiles[y]); x++ {
			if level.Tiles[y][x] != engine.TileFloorChar {
				continue
			}
			if isWall(&level, x, y-1) || isWall(&level, x, y+1) {
				if isWall(&level, x-1, y) || isWall(&level, x+1, y) {
					deadlocks = append(deadlocks, AnalysisPoint{x, y})
				}
			}
		}
	}

	if len(deadlocks) > 0 {
		fmt.Printf("⚠️  %d corner deadlock cells (a box pushed here is stuck forever)\n", len(deadlocks))
		for i, p := range deadlocks {
			if i < 5 { // Show first 5 deadlock cells
				fmt.Printf("   Deadlock: (%d, %d)\n", p.X, p.Y)
			}
		}
		if len(deadlocks) > 5 {
			fmt.Printf("   ... and %d more\n", len(deadlocks)-5)
		}
	} else {
		fmt.Printf("✅ No corner deadlock cells\n")
	}

	// A box already sitting on a deadlock cell can never reach a goal
	stuckBoxes := []AnalysisPoint{}
	for _, box := range boxes {
		for _, d := range deadlocks {
			if box == d {
				stuckBoxes = append(stuckBoxes, box)
				break
			}
		}
	}

	if len(stuckBoxes) > 0 {
		fmt.Printf("⚠️  CRITICAL: %d boxes start on deadlock cells!\n", len(stuckBoxes))
		for _, b := range stuckBoxes {
			fmt.Printf("   Stuck Box: (%d, %d)\n", b.X, b.Y)
		}
	} else {
		fmt.Printf("✅ No boxes start on deadlock cells\n")
	}
}

// isWall reports whether the tile at (x,y) is a wall; out-of-bounds counts
// as wall.
func isWall(level *engine.LevelConfig, x, y int) bool {
	if y < 0 || y >= len(level.Tiles) || x < 0 || x >= len(level.Tiles[y]) {
		return true
	}
	return level.Tiles[y][x] == engine.TileWallChar
}
