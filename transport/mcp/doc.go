// Package mcp provides the Model Context Protocol server for the Sokoban engine.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for puzzle operations
//   - Session-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - game_state: Get current board state with a text rendering
//   - move: Execute single directional movement
//   - bulk_move: Execute multiple moves in sequence
//   - reset_game: Reset puzzle to its initial layout
//   - move_history: Retrieve move history with pagination
//   - create_session: Create new game session with level selection
//   - get_session: Get specific session details
//   - list_sessions: List all active sessions
//   - list_levels: List available levels
//   - game_instructions: Get comprehensive puzzle rules
//   - describe_cell: Get detailed info about a specific board cell
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// The implementation is a thin client: every tool call proxies to the REST
// API, so MCP agents and HTTP clients always observe the same state.
package mcp
