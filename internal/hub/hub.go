package hub

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/internal/hub/types"
	"ctchen222/tic-tac-toe-minimax/internal/room"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hub")

// Hub manages all the rooms. Every registered player gets a room of its own.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*room.Room
	register   chan *types.RegistrationRequest
	unregister chan *room.Room
	selector   room.MoveSelector
}

// NewHub creates a new hub whose rooms share selector.
func NewHub(selector room.MoveSelector) *Hub {
	return &Hub{
		rooms:      make(map[string]*room.Room),
		register:   make(chan *types.RegistrationRequest),
		unregister: make(chan *room.Room),
		selector:   selector,
	}
}

// Run starts the hub.
func (h *Hub) Run() {
	for {
		select {
		case req := <-h.register:
			h.handleRegistration(req)

		case r := <-h.unregister:
			h.mu.Lock()
			delete(h.rooms, r.ID)
			h.mu.Unlock()
			slog.Info("Room closed", "room.id", r.ID, "player.id", r.Player.ID)
		}
	}
}

func (h *Hub) handleRegistration(req *types.RegistrationRequest) {
	ctx := req.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := tracer.Start(ctx, "hub.handleRegistration", trace.WithAttributes(
		attribute.String("player.id", req.Player.ID),
		attribute.String("game.mode", string(req.Mode)),
	))
	defer span.End()

	roomID := uuid.New().String()
	r, err := room.NewRoom(roomID, req.Player, req.Mode, h.selector)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to create room", "player.id", req.Player.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create room")
		if err := req.Player.Conn.Close(); err != nil {
			slog.DebugContext(ctx, "Error closing rejected connection", "player.id", req.Player.ID, "error", err)
		}
		return
	}

	h.mu.Lock()
	h.rooms[roomID] = r
	h.mu.Unlock()
	span.SetAttributes(attribute.String("room.id", roomID))

	go r.Start(h.unregister)
	slog.InfoContext(ctx, "Room created", "room.id", roomID, "player.id", req.Player.ID, "mode", string(req.Mode))
}

// Shutdown closes every room. Closed rooms unregister through Run.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	rooms := make([]*room.Room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	for _, r := range rooms {
		r.Close()
	}
}

// RoomCount returns the number of live rooms.
func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}

// Register returns the register channel.
func (h *Hub) Register() chan<- *types.RegistrationRequest {
	return h.register
}
