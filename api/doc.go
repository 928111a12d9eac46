// Package api provides HTTP REST API handlers for the Sokoban server.
//
// The api package implements:
//   - RESTful endpoints for puzzle operations
//   - Session management endpoints
//   - Level listing and selection
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session
//   - GET /api/sessions - List all sessions
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - POST /api/sessions/{id}/move - Execute single move
//   - POST /api/sessions/{id}/bulk-move - Execute move sequence
//   - POST /api/sessions/{id}/reset - Reset puzzle to initial layout
//   - GET /api/sessions/{id}/history - Get move history with pagination
//
// Levels:
//   - GET /api/levels - List available levels
//   - POST /api/levels - Save a new level
//   - GET /api/levels/{name} - Get a specific level
//
// Request/Response Format:
//
// All endpoints accept and return JSON. Moves are sent as POST with JSON
// body:
//
//	{
//	  "direction": "up|down|left|right",
//	  "reset": true|false            // optional reset before move
//	}
//
// Bulk moves take a "moves" array instead of "direction".
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api

//
// Enriched Responses (Move and Bulk Move)
//
// Move (POST /api/sessions/{id}/move)
//   Response:
//     - step: { dir, from{x,y}, to{x,y}, tile_char, tile_type, goals_left, success, push?, solved? }
//     - attempted_to: { x, y, tile_char, tile_type, object_char, passable } // present when blocked
//     - game_state additions:
//         local_view_3x3: ["###",".@.","..."] // 3x3 legend characters around player
//
// Bulk Move (POST /api/sessions/{id}/bulk-move)
//   Response:
//     - requested_moves, moves_executed, push_count
//     - stopped_reason (text), stop_reason_code (enum), stopped_on_move (1-based), truncated, limit
//     - steps: [{ idx, dir, from, to, tile_char, tile_type, goals_left, success, push?, solved? }]
//     - attempted_to: failed target cell on first block
//     - start_pos, end_pos, start_goals, end_goals, solved
//     - possible_moves: ["up","right"], local_view_3x3
