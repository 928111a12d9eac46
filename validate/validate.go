// Command validate provides a small CLI that validates level JSON files in
// the ../levels directory. It checks:
//   - JSON structure and required fields
//   - Layer consistency and allowed characters (tiles: # . O, objects: @ B .)
//   - Exactly one player and at least one goal
//   - A sealed outer wall ring
//   - Enough boxes to cover every uncovered goal
//   - Connectivity: all goals and boxes are reachable from the player via
//     non-wall cells
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sokoban-go/sokoban/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateLevel loads and validates a single level JSON file. Structural
// checks are delegated to the engine; connectivity analysis runs on top.
func validateLevel(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var level engine.LevelConfig
	if err := json.Unmarshal(data, &level); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateLevelConfig(&level); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	boxes := 0
	goals := 0
	covered := 0
	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			if level.Objects[y][x] == engine.ObjectBoxChar {
				boxes++
			}
			if level.Tiles[y][x] == engine.TileGoalChar {
				goals++
				if level.Objects[y][x] == engine.ObjectBoxChar {
					covered++
				}
			}
		}
	}

	// Connectivity validation - check if all goals and boxes are reachable
	reachabilityResult := validateConnectivity(&level)
	if !reachabilityResult.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, reachabilityResult.Errors...)

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", level.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d", level.Width, level.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Boxes: %d", boxes))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Goals: %d (%d already covered)", goals, covered))
	}

	return result
}

// validateConnectivity ensures every goal tile and every box is reachable
// from the player using 4-directional movement over non-wall cells. Boxes
// are treated as passable because they can be pushed out of the way; the
// check catches goals and boxes sealed off behind walls, not solvability.
func validateConnectivity(level *engine.LevelConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	var player []int
	var goals [][]int
	var boxes [][]int

	for y := 0; y < level.Height; y++ {
		for x := 0; x < level.Width; x++ {
			if level.Objects[y][x] == engine.ObjectPlayerChar {
				player = []int{x, y}
			}
			if level.Objects[y][x] == engine.ObjectBoxChar {
				boxes = append(boxes, []int{x, y})
			}
			if level.Tiles[y][x] == engine.TileGoalChar {
				goals = append(goals, []int{x, y})
			}
		}
	}

	if player == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "No player position found for connectivity test")
		return result
	}

	// Flood fill from the player to find all reachable cells
	visited := make(map[string]bool)
	queue := [][]int{player}

	isPassable := func(x, y int) bool {
		if x < 0 || y < 0 || y >= level.Height || x >= level.Width {
			return false
		}
		return level.Tiles[y][x] != engine.TileWallChar
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		x, y := current[0], current[1]
		key := fmt.Sprintf("%d,%d", x, y)

		if visited[key] {
			continue
		}
		visited[key] = true

		directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			nx, ny := x+dir[0], y+dir[1]
			nkey := fmt.Sprintf("%d,%d", nx, ny)

			if !visited[nkey] && isPassable(nx, ny) {
				queue = append(queue, []int{nx, ny})
			}
		}
	}

	unreachable := []string{}
	for _, goal := range goals {
		key := fmt.Sprintf("%d,%d", goal[0], goal[1])
		if !visited[key] {
			unreachable = append(unreachable, fmt.Sprintf("Goal at (%d,%d)", goal[0], goal[1]))
		}
	}
	for _, box := range boxes {
		key := fmt.Sprintf("%d,%d", box[0], box[1])
		if !visited[key] {
			unreachable = append(unreachable, fmt.Sprintf("Box at (%d,%d)", box[0], box[1]))
		}
	}

	if len(unreachable) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: %d cells unreachable from the player", len(unreachable)))
		for _, cell := range unreachable {
			result.Errors = append(result.Errors, fmt.Sprintf("Unreachable: %s", cell))
		}
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Connectivity: All %d goals and %d boxes reachable from the player", len(goals), len(boxes)))
	}

	return result
}

// main scans ../levels for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	levelDir := "../levels"
	files, err := filepath.Glob(filepath.Join(levelDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding level files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateLevel(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All levels are valid!")
	} else {
		fmt.Println("❌ Some levels have errors")
		os.Exit(1)
	}
}
