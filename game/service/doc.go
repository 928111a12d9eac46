// Package service provides the business logic layer for the Sokoban server.
//
// The service package implements:
//   - Multi-session puzzle management
//   - Level loading and validation
//   - Move processing and push detection
//   - Session lifecycle management
//   - Move history tracking and pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// LevelManager manages level loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation, level management, and
// business logic orchestration. Each session maintains its own game engine
// instance with independent state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	levelMgr := config.NewManager("levels")
//	gameService := service.NewGameService(sessionMgr, levelMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Execute moves
//	result, err := gameService.Move(ctx, sessionInfo.ID, "up", false)
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain independent
// game state. Multiple sessions can run concurrently with different levels.
// Sessions track creation time, last access time, and move history for
// analytics and debugging.
package service
