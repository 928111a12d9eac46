// Package websocket provides WebSocket transport for the Sokoban server.
//
// The websocket package implements:
//   - Real-time state broadcasting on puzzle changes
//   - Session-aware WebSocket connections
//   - Connection lifecycle management
//   - Message routing and handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded and carry the complete GameState after
// each state change, plus an event name ("state_update" for moves, resets
// and bulk moves).
//
// Session Integration:
//
// WebSocket connections are session-aware. Clients specify their session ID
// via query parameter (?session=abc1) when establishing the connection.
// State updates are broadcast only to clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// After a successful move
//	hub.BroadcastToSession(sessionID, state)
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
