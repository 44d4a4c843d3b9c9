package room

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/internal/game"
	"ctchen222/tic-tac-toe-minimax/internal/player"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	heartbeatInterval = 10 * time.Second
)

var (
	tracer = otel.Tracer("room")
	meter  = otel.Meter("room")
)

// MoveSelector defines an interface for an agent that can pick the computer's move.
type MoveSelector interface {
	SelectMove(ctx context.Context, board game.Board, player game.Player) (int, error)
}

// Room connects one browser tab to its own game session.
type Room struct {
	ID            string
	Player        *player.Player
	session       *game.Session
	selector      MoveSelector
	incoming      chan []byte
	done          chan struct{}
	closeOnce     sync.Once
	gamesFinished metric.Int64Counter
}

// NewRoom creates a room for p with a fresh session in the given mode.
func NewRoom(id string, p *player.Player, mode game.Mode, selector MoveSelector) (*Room, error) {
	session, err := game.NewSession(mode)
	if err != nil {
		return nil, fmt.Errorf("failed to create session for room %s: %w", id, err)
	}

	gamesFinished, err := meter.Int64Counter("room.games.finished",
		metric.WithDescription("Games that reached a win or a draw"),
	)
	if err != nil {
		otel.Handle(err)
	}

	r := &Room{
		ID:            id,
		Player:        p,
		session:       session,
		selector:      selector,
		incoming:      make(chan []byte, 10),
		done:          make(chan struct{}),
		gamesFinished: gamesFinished,
	}
	session.OnGameEnd(r.handleGameEnd)
	return r, nil
}

// Start runs the room until the player disconnects or the room is closed, then
// hands the room back on unregister.
func (r *Room) Start(unregister chan<- *Room) {
	go r.ReadPump()
	r.run()
	r.Close()
	unregister <- r
}

// Close stops the room and closes the player's connection. Safe to call more than once.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		if err := r.Player.Conn.Close(); err != nil {
			slog.Debug("Error closing player connection", "player.id", r.Player.ID, "room.id", r.ID, "error", err)
		}
	})
}

// run is the main loop for the room. It is the only goroutine that touches the
// session or writes to the connection.
func (r *Room) run() {
	ctx := context.Background()
	pingTicker := time.NewTicker(heartbeatInterval)
	defer pingTicker.Stop()

	r.sendAssignment(ctx)
	r.sendState(ctx)

	for {
		select {
		case <-r.done:
			slog.Info("Room run goroutine stopping.", "room.id", r.ID)
			return

		case msg, ok := <-r.incoming:
			if !ok {
				slog.Info("Player left, closing room.", "player.id", r.Player.ID, "room.id", r.ID)
				return
			}
			r.HandleMessage(ctx, msg)

		case <-pingTicker.C:
			if err := r.Player.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Warn("Failed to send ping to player, assuming disconnect", "player.id", r.Player.ID, "error", err)
				return
			}
		}
	}
}
