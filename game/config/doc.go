// Package config provides level management for the Sokoban server.
//
// The config package handles:
//   - Loading levels from JSON files
//   - Level validation and verification
//   - Default level management
//   - Level discovery and listing
//
// Level Format:
//
// Levels are stored as JSON files in the levels directory. Each level
// defines:
//   - Tile rows using character mapping ('#'=wall, '.'=floor, 'O'=goal)
//   - Object rows using character mapping ('@'=player, 'B'=box, '.'=empty)
//   - Board dimensions and a display name
//
// Usage:
//
//	manager, err := config.NewManager("levels")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific level
//	level, err := manager.LoadLevel("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default level
//	defaultLevel := manager.GetDefault()
//
//	// List available levels
//	levels, err := manager.ListLevels()
//
// Validation:
//
// All levels are validated for:
//   - Matching grid dimensions across both layers
//   - Valid legend characters
//   - Exactly one player
//   - A sealed outer wall ring
//   - Enough boxes to cover every uncovered goal
package config
