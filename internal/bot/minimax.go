package bot

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/internal/game"
	"errors"
	"fmt"
	"math"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Terminal scores, from the selecting player's perspective.
const (
	WinScore  = 10
	LossScore = -10
	DrawScore = 0
)

var (
	ErrNoMovesAvailable = errors.New("no moves available")
	ErrInvalidPlayer    = errors.New("invalid player")
)

var (
	tracer = otel.Tracer("bot")
	meter  = otel.Meter("bot")
)

// Minimax selects moves by exhaustive minimax search with alpha-beta pruning.
// Scores are not scaled by depth, so a quick win and a slow win are worth the same.
type Minimax struct {
	searchNodes metric.Int64Histogram
}

// NewMinimax creates a Minimax selector reporting to the global meter provider.
func NewMinimax() *Minimax {
	nodes, err := meter.Int64Histogram("bot.search.nodes",
		metric.WithDescription("Game tree nodes visited per move selection"),
	)
	if err != nil {
		otel.Handle(err)
	}
	return &Minimax{searchNodes: nodes}
}

// Decision is the outcome of a search.
type Decision struct {
	Position int
	Score    int
	Nodes    int
}

// SelectMove returns the position that maximizes player's guaranteed outcome,
// assuming the opponent replies optimally. Ties go to the lowest position.
func (m *Minimax) SelectMove(ctx context.Context, board game.Board, player game.Player) (int, error) {
	d, err := m.Decide(ctx, board, player)
	if err != nil {
		return -1, err
	}
	return d.Position, nil
}

// Decide runs the search and reports the chosen position with its score.
func (m *Minimax) Decide(ctx context.Context, board game.Board, player game.Player) (Decision, error) {
	ctx, span := tracer.Start(ctx, "bot.SelectMove", trace.WithAttributes(
		attribute.String("bot.player", player.String()),
		attribute.String("bot.board", board.String()),
	))
	defer span.End()

	if player != game.PlayerX && player != game.PlayerO {
		span.SetStatus(codes.Error, "Invalid player")
		return Decision{}, fmt.Errorf("select move for player %d: %w", player, ErrInvalidPlayer)
	}
	if game.Evaluate(board).Terminal() {
		span.SetStatus(codes.Error, "Board is terminal")
		return Decision{}, ErrNoMovesAvailable
	}

	s := &search{me: player}
	best := Decision{Position: -1, Score: math.MinInt}
	for _, pos := range board.EmptyCells() {
		next := board
		next[pos] = game.Occupied(player)
		score := s.minimax(next, false, math.MinInt, math.MaxInt)
		if score > best.Score {
			best.Position = pos
			best.Score = score
		}
	}
	best.Nodes = s.nodes

	span.SetAttributes(
		attribute.Int("bot.position", best.Position),
		attribute.Int("bot.score", best.Score),
		attribute.Int("bot.nodes", best.Nodes),
	)
	if m != nil && m.searchNodes != nil {
		m.searchNodes.Record(ctx, int64(best.Nodes))
	}
	return best, nil
}

type search struct {
	me    game.Player
	nodes int
}

// score returns the terminal score of b, or false if the game goes on.
func (s *search) score(b game.Board) (int, bool) {
	result := game.Evaluate(b)
	switch result.Status {
	case game.Win:
		if result.Winner == s.me {
			return WinScore, true
		}
		return LossScore, true
	case game.Draw:
		return DrawScore, true
	}
	return 0, false
}

// minimax scores b with the selecting player maximizing. Every call receives its
// own copy of the board.
func (s *search) minimax(b game.Board, maximizing bool, alpha, beta int) int {
	s.nodes++
	if score, done := s.score(b); done {
		return score
	}

	if maximizing {
		best := math.MinInt
		for _, pos := range b.EmptyCells() {
			next := b
			next[pos] = game.Occupied(s.me)
			best = max(best, s.minimax(next, false, alpha, beta))
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, pos := range b.EmptyCells() {
		next := b
		next[pos] = game.Occupied(s.me.Opponent())
		best = min(best, s.minimax(next, true, alpha, beta))
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
