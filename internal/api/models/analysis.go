package models

import "ctchen222/tic-tac-toe-minimax/internal/game"

// EvaluateRequest defines the structure for a board evaluation request.
type EvaluateRequest struct {
	Board []game.Cell `json:"board" binding:"required,len=9"`
}

// EvaluateResponse carries the result of a board evaluation.
type EvaluateResponse struct {
	Result game.Result `json:"result"`
}

// BestMoveRequest asks for the optimal move of Player on Board.
type BestMoveRequest struct {
	Board  []game.Cell `json:"board" binding:"required,len=9"`
	Player game.Player `json:"player" binding:"required"`
}

// BestMoveResponse defines the structure for a successful best-move response.
type BestMoveResponse struct {
	Position int `json:"position"`
	Score    int `json:"score"`
}

// ToBoard copies a validated cell list into a Board.
func ToBoard(cells []game.Cell) game.Board {
	var b game.Board
	copy(b[:], cells)
	return b
}
