// Package engine provides the core game logic for the Sokoban server.
//
// The engine package implements the game mechanics including:
//   - The two-layer board model (static tiles, movable objects)
//   - Player movement and box pushing with wall/occupancy collision rules
//   - Goal tracking and the solved condition
//   - Game state snapshots for persistence and transport
//   - Level configuration loading and validation
//
// Core Types:
//
// Board holds the tile and object layers for a fixed-size grid. Game owns a
// Board plus the cached player position and uncovered-goal counter, and
// implements the move/push transition rules. The Engine interface defines the
// driver-facing contract, implemented by GameEngine, which adds direction
// parsing, move history, and restartable sessions on top of the core Game.
// LevelConfig defines a level's layers, loaded from JSON files.
//
// Usage:
//
//	cfg, err := engine.LoadLevelConfig("levels/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.NewEngine(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the player
//	moved := eng.Move("up")
//	state := eng.GetState()
//
// Game Rules:
//
// The player moves one cell at a time on a fixed grid. Moving into a box
// pushes it one cell in the same direction, provided the destination is
// neither a wall nor occupied. A blocked box blocks the player too. Boxes
// pushed onto goal tiles cover them; the puzzle is solved when no goal is
// left uncovered. Illegal moves are silently absorbed: the board simply does
// not change.
package engine
