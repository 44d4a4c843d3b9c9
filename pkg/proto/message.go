package proto

import "ctchen222/tic-tac-toe-minimax/internal/game"

// Client message types.
const (
	TypeMove  = "move"
	TypeReset = "reset"
	TypeMode  = "mode"
)

// Server message types.
const (
	TypeAssignment = "assignment"
	TypeUpdate     = "update"
	TypeGameOver   = "game_over"
	TypeError      = "error"
)

// ClientToServerMessage represents a message from the client to the server.
// A mode message without Mode toggles between the two modes.
type ClientToServerMessage struct {
	Type     string    `json:"type" validate:"required,oneof=move reset mode"`
	Position *int      `json:"position,omitempty" validate:"required_if=Type move"`
	Mode     game.Mode `json:"mode,omitempty" validate:"omitempty,game_mode"`
}

// ServerToClientMessage represents a message from the server to the client.
type ServerToClientMessage struct {
	Type   string       `json:"type" validate:"required"`
	Reason string       `json:"reason,omitempty"`
	Board  *game.Board  `json:"board,omitempty"`
	Next   game.Player  `json:"next,omitempty"`
	Mode   game.Mode    `json:"mode,omitempty"`
	Result *game.Result `json:"result,omitempty"`
}

// PlayerAssignmentMessage tells a newly connected player who they are and
// which mark the computer plays.
type PlayerAssignmentMessage struct {
	Type     string      `json:"type"`
	PlayerID string      `json:"playerId,omitempty"`
	RoomID   string      `json:"roomId,omitempty"`
	Mode     game.Mode   `json:"mode"`
	Computer game.Player `json:"computer"`
}
