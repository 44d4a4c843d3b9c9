package service

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/internal/bot"
	"ctchen222/tic-tac-toe-minimax/internal/game"
)

// AnalysisService defines stateless board analysis.
type AnalysisService interface {
	Evaluate(ctx context.Context, board game.Board) game.Result
	BestMove(ctx context.Context, board game.Board, player game.Player) (bot.Decision, error)
}

type analysisService struct {
	selector *bot.Minimax
}

// NewAnalysisService creates a new AnalysisService backed by selector.
func NewAnalysisService(selector *bot.Minimax) AnalysisService {
	return &analysisService{selector: selector}
}

// Evaluate reports the result of board.
func (s *analysisService) Evaluate(ctx context.Context, board game.Board) game.Result {
	return game.Evaluate(board)
}

// BestMove returns the optimal move for player on board.
func (s *analysisService) BestMove(ctx context.Context, board game.Board, player game.Player) (bot.Decision, error) {
	return s.selector.Decide(ctx, board, player)
}
