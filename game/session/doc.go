// Package session provides session management for the Sokoban server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Concurrent access control
//   - Session cleanup and expiration
//   - Optional file-based persistence
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Session represents an individual puzzle session with its own engine
// instance and metadata like creation time and last access time.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and provides collision-resistant generation using
// cryptographic randomness.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// sessions simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", level)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// List all active sessions
//	sessions := manager.List()
//
// Persistence:
//
// With a SessionPersistence backend configured, sessions survive server
// restarts. FilePersistence stores each session as a JSON snapshot that is
// replayed through the engine on load.
package session
