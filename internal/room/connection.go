package room

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/pkg/proto"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Send writes a JSON message to the player.
func (r *Room) Send(ctx context.Context, messageType string, message any) {
	ctx, span := tracer.Start(ctx, "room.Send", trace.WithAttributes(
		attribute.String("room.id", r.ID),
		attribute.String("message.type", messageType),
	))
	defer span.End()

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "error marshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error marshalling message")
		return
	}

	if err := r.Player.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.ErrorContext(ctx, "error writing message to player", "player.id", r.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error writing message to player")
	}
}

// ReadPump pumps messages from the websocket connection to the room's run loop.
// It closes the incoming channel when the connection fails.
func (r *Room) ReadPump() {
	ctx, span := tracer.Start(context.Background(), "room.ReadPump", trace.WithAttributes(
		attribute.String("player.id", r.Player.ID),
		attribute.String("room.id", r.ID),
	))
	defer span.End()
	defer close(r.incoming)

	for {
		_, msg, err := r.Player.Conn.ReadMessage()
		if err != nil {
			slog.WarnContext(ctx, "Player connection error", "player.id", r.Player.ID, "room.id", r.ID, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "Player connection error")
			return
		}

		select {
		case r.incoming <- msg:
		case <-r.done:
			return
		}
	}
}

func (r *Room) sendError(ctx context.Context, reason string) {
	r.Send(ctx, proto.TypeError, &proto.ServerToClientMessage{Type: proto.TypeError, Reason: reason})
}
