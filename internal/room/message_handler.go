package room

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/internal/game"
	"ctchen222/tic-tac-toe-minimax/internal/validator"
	"ctchen222/tic-tac-toe-minimax/pkg/proto"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleMessage handles a message from the player. It acts as a dispatcher.
func (r *Room) HandleMessage(ctx context.Context, rawMessage []byte) {
	ctx, span := tracer.Start(ctx, "room.HandleMessage", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	var message proto.ClientToServerMessage
	if err := json.Unmarshal(rawMessage, &message); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		return
	}

	if err := validator.GetValidator().Struct(message); err != nil {
		slog.WarnContext(ctx, "invalid message from player", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		return
	}

	span.SetAttributes(attribute.String("message.type", message.Type))

	switch message.Type {
	case proto.TypeMove:
		r.handleMove(ctx, *message.Position)
	case proto.TypeReset:
		r.handleReset(ctx)
	case proto.TypeMode:
		r.handleMode(ctx, message.Mode)
	}
}

// handleMove applies the player's move for whoever is to move and, in
// HumanVsComputer mode, answers with the computer's move.
func (r *Room) handleMove(ctx context.Context, position int) {
	ctx, moveSpan := tracer.Start(ctx, "room.handleMove", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.Int("move.position", position),
	))
	defer moveSpan.End()

	if r.session.ComputerToMove() {
		slog.WarnContext(ctx, "move received while computer is to move", "room.id", r.ID)
		moveSpan.SetStatus(codes.Error, "Computer to move")
		r.sendError(ctx, game.ErrNotYourTurn.Error())
		return
	}

	mark := r.session.Turn()
	result, err := r.session.ApplyMove(position, mark)
	if err != nil {
		slog.WarnContext(ctx, "invalid move from player", "player.id", r.Player.ID, "position", position, "error", err)
		moveSpan.SetAttributes(attribute.Bool("move.valid", false))
		moveSpan.RecordError(err)
		moveSpan.SetStatus(codes.Error, "Invalid move")
		r.sendError(ctx, err.Error())
		return
	}
	moveSpan.SetAttributes(attribute.Bool("move.valid", true), attribute.String("move.mark", mark.String()))
	r.sendState(ctx)

	if !result.Terminal() && r.session.ComputerToMove() {
		r.playComputer(ctx)
	}
}

// playComputer asks the selector for the computer's move and applies it.
func (r *Room) playComputer(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "room.playComputer", trace.WithAttributes(
		attribute.String("room.id", r.ID),
	))
	defer span.End()

	position, err := r.selector.SelectMove(ctx, r.session.Board(), game.ComputerPlayer)
	if err == nil {
		_, err = r.session.ApplyMove(position, game.ComputerPlayer)
	}
	if err != nil {
		// The session only hands the computer a playable board, so this is a bug.
		slog.ErrorContext(ctx, "computer could not move, resetting game", "room.id", r.ID, "board", r.session.Board().String(), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Computer could not move")
		r.session.Reset()
		r.sendError(ctx, err.Error())
		r.sendState(ctx)
		return
	}

	span.SetAttributes(attribute.Int("move.position", position))
	slog.DebugContext(ctx, "Computer moved", "room.id", r.ID, "position", position)
	r.sendState(ctx)
}

func (r *Room) handleReset(ctx context.Context) {
	slog.InfoContext(ctx, "Game reset requested", "room.id", r.ID)
	r.session.Reset()
	r.sendState(ctx)
}

// handleMode switches to mode, or toggles when mode is empty.
func (r *Room) handleMode(ctx context.Context, mode game.Mode) {
	if mode == "" {
		mode = r.session.ToggleMode()
	} else if err := r.session.SwitchMode(mode); err != nil {
		slog.WarnContext(ctx, "invalid mode from player", "player.id", r.Player.ID, "error", err)
		r.sendError(ctx, err.Error())
		return
	}
	slog.InfoContext(ctx, "Switched mode", "room.id", r.ID, "mode", string(mode))
	r.sendState(ctx)
}
