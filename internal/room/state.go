package room

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/internal/game"
	"ctchen222/tic-tac-toe-minimax/pkg/proto"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// sendAssignment tells the player its id and which mark the computer plays.
func (r *Room) sendAssignment(ctx context.Context) {
	r.Send(ctx, proto.TypeAssignment, &proto.PlayerAssignmentMessage{
		Type:     proto.TypeAssignment,
		PlayerID: r.Player.ID,
		RoomID:   r.ID,
		Mode:     r.session.Mode(),
		Computer: game.ComputerPlayer,
	})
}

// sendState pushes the current board snapshot.
func (r *Room) sendState(ctx context.Context) {
	board := r.session.Board()
	r.Send(ctx, proto.TypeUpdate, &proto.ServerToClientMessage{
		Type:  proto.TypeUpdate,
		Board: &board,
		Next:  r.session.Turn(),
		Mode:  r.session.Mode(),
	})
}

// handleGameEnd is subscribed to the session and reports the final board
// before the session resets.
func (r *Room) handleGameEnd(end game.GameEnd) {
	ctx, span := tracer.Start(context.Background(), "room.handleGameEnd")
	defer span.End()

	span.SetAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("game.result", end.Result.String()),
	)
	slog.InfoContext(ctx, "Game over", "room.id", r.ID, "result", end.Result.String(), "mode", string(end.Mode))

	if r.gamesFinished != nil {
		r.gamesFinished.Add(ctx, 1, metric.WithAttributes(
			attribute.String("game.status", end.Result.Status.String()),
			attribute.String("game.winner", end.Result.Winner.String()),
			attribute.String("game.mode", string(end.Mode)),
		))
	}

	board := end.Board
	result := end.Result
	r.Send(ctx, proto.TypeGameOver, &proto.ServerToClientMessage{
		Type:   proto.TypeGameOver,
		Board:  &board,
		Mode:   end.Mode,
		Result: &result,
	})
}
