package room

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/internal/bot"
	"ctchen222/tic-tac-toe-minimax/internal/game"
	"ctchen222/tic-tac-toe-minimax/internal/player"
	"ctchen222/tic-tac-toe-minimax/internal/player/mocks"
	"ctchen222/tic-tac-toe-minimax/pkg/proto"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type selectorFunc func(ctx context.Context, board game.Board, p game.Player) (int, error)

func (f selectorFunc) SelectMove(ctx context.Context, board game.Board, p game.Player) (int, error) {
	return f(ctx, board, p)
}

// recorder collects every text message written to a mock connection.
type recorder struct {
	mu   sync.Mutex
	msgs []proto.ServerToClientMessage
}

func (rec *recorder) write(t *testing.T) func(int, []byte) error {
	return func(_ int, data []byte) error {
		var msg proto.ServerToClientMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		rec.mu.Lock()
		rec.msgs = append(rec.msgs, msg)
		rec.mu.Unlock()
		return nil
	}
}

func (rec *recorder) take() []proto.ServerToClientMessage {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	msgs := rec.msgs
	rec.msgs = nil
	return msgs
}

func newTestRoom(t *testing.T, mode game.Mode, selector MoveSelector) (*Room, *mocks.MockConnection, *recorder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockConnection(ctrl)
	rec := &recorder{}
	conn.EXPECT().WriteMessage(websocket.TextMessage, gomock.Any()).DoAndReturn(rec.write(t)).AnyTimes()

	r, err := NewRoom("room-1", player.NewPlayer("player-1", conn), mode, selector)
	require.NoError(t, err)
	return r, conn, rec
}

func move(pos int) []byte {
	data, _ := json.Marshal(proto.ClientToServerMessage{Type: proto.TypeMove, Position: &pos})
	return data
}

func TestNewRoomRejectsUnknownMode(t *testing.T) {
	_, err := NewRoom("room-1", player.NewPlayer("p", nil), "robot", bot.NewMinimax())
	assert.ErrorIs(t, err, game.ErrUnknownMode)
}

func TestHandleMoveHumanVsHuman(t *testing.T) {
	r, _, rec := newTestRoom(t, game.HumanVsHuman, bot.NewMinimax())
	ctx := context.Background()

	r.HandleMessage(ctx, move(4))
	msgs := rec.take()
	require.Len(t, msgs, 1)
	assert.Equal(t, proto.TypeUpdate, msgs[0].Type)
	assert.Equal(t, game.CellX, msgs[0].Board[4])
	assert.Equal(t, game.PlayerO, msgs[0].Next)

	r.HandleMessage(ctx, move(0))
	msgs = rec.take()
	require.Len(t, msgs, 1)
	assert.Equal(t, game.CellO, msgs[0].Board[0])
	assert.Equal(t, game.PlayerX, msgs[0].Next)
}

func TestHandleMoveComputerReplies(t *testing.T) {
	r, _, rec := newTestRoom(t, game.HumanVsComputer, bot.NewMinimax())

	r.HandleMessage(context.Background(), move(4))
	msgs := rec.take()
	require.Len(t, msgs, 2)

	assert.Equal(t, game.CellX, msgs[0].Board[4])
	assert.Equal(t, game.PlayerO, msgs[0].Next)

	// A corner is the only drawing reply to a centre opening; 0 is the leftmost.
	assert.Equal(t, "O..\n.X.\n...", msgs[1].Board.String())
	assert.Equal(t, game.PlayerX, msgs[1].Next)
	assert.Equal(t, game.HumanVsComputer, msgs[1].Mode)
}

func TestHandleMoveRejected(t *testing.T) {
	tests := []struct {
		name   string
		setup  []int
		pos    int
		reason error
	}{
		{name: "occupied cell", setup: []int{4}, pos: 4, reason: game.ErrCellOccupied},
		{name: "out of range", pos: 9, reason: game.ErrOutOfRange},
		{name: "negative position", pos: -1, reason: game.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, rec := newTestRoom(t, game.HumanVsHuman, bot.NewMinimax())
			for _, pos := range tt.setup {
				r.HandleMessage(context.Background(), move(pos))
			}
			before := r.session.Board()
			turn := r.session.Turn()
			rec.take()

			r.HandleMessage(context.Background(), move(tt.pos))
			msgs := rec.take()
			require.Len(t, msgs, 1)
			assert.Equal(t, proto.TypeError, msgs[0].Type)
			assert.Contains(t, msgs[0].Reason, tt.reason.Error())
			assert.Equal(t, before, r.session.Board())
			assert.Equal(t, turn, r.session.Turn())
		})
	}
}

func TestHandleMessageIgnoresMalformedInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockConnection(ctrl)
	// No WriteMessage expectation: malformed input must not produce output.
	r, err := NewRoom("room-1", player.NewPlayer("player-1", conn), game.HumanVsHuman, bot.NewMinimax())
	require.NoError(t, err)

	for _, raw := range []string{`not json`, `{"type":"move"}`, `{"type":"rematch"}`, `{"type":"mode","mode":"robot"}`} {
		r.HandleMessage(context.Background(), []byte(raw))
	}
	assert.Equal(t, game.Board{}, r.session.Board())
}

func TestGameOverThenReset(t *testing.T) {
	r, _, rec := newTestRoom(t, game.HumanVsHuman, bot.NewMinimax())
	for _, pos := range []int{0, 3, 1, 4} {
		r.HandleMessage(context.Background(), move(pos))
	}
	rec.take()

	r.HandleMessage(context.Background(), move(2))
	msgs := rec.take()
	require.Len(t, msgs, 2)

	assert.Equal(t, proto.TypeGameOver, msgs[0].Type)
	require.NotNil(t, msgs[0].Result)
	assert.Equal(t, game.WinFor(game.PlayerX), *msgs[0].Result)
	assert.Equal(t, "XXX\nOO.\n...", msgs[0].Board.String())

	assert.Equal(t, proto.TypeUpdate, msgs[1].Type)
	assert.Equal(t, game.Board{}, *msgs[1].Board)
	assert.Equal(t, game.PlayerX, msgs[1].Next)
}

func TestComputerWinEndsGame(t *testing.T) {
	r, _, rec := newTestRoom(t, game.HumanVsComputer, bot.NewMinimax())
	// X:1 O:0 X:2 O:3 X:5 leaves O to complete the 0-3-6 column.
	for _, pos := range []int{1, 2, 5} {
		r.HandleMessage(context.Background(), move(pos))
	}
	msgs := rec.take()

	var over *proto.ServerToClientMessage
	for i := range msgs {
		if msgs[i].Type == proto.TypeGameOver {
			over = &msgs[i]
		}
	}
	require.NotNil(t, over, "computer should have won")
	assert.Equal(t, game.WinFor(game.PlayerO), *over.Result)
	assert.Equal(t, game.HumanVsComputer, over.Mode)
	assert.Equal(t, game.Board{}, r.session.Board())
}

func TestResetAndMode(t *testing.T) {
	r, _, rec := newTestRoom(t, game.HumanVsHuman, bot.NewMinimax())
	ctx := context.Background()

	r.HandleMessage(ctx, move(4))
	r.HandleMessage(ctx, []byte(`{"type":"reset"}`))
	msgs := rec.take()
	require.Len(t, msgs, 2)
	assert.Equal(t, game.Board{}, *msgs[1].Board)
	assert.Equal(t, game.PlayerX, msgs[1].Next)

	r.HandleMessage(ctx, move(4))
	r.HandleMessage(ctx, []byte(`{"type":"mode"}`))
	msgs = rec.take()
	require.Len(t, msgs, 2)
	assert.Equal(t, game.HumanVsComputer, msgs[1].Mode)
	assert.Equal(t, game.Board{}, *msgs[1].Board)

	r.HandleMessage(ctx, []byte(`{"type":"mode","mode":"computer"}`))
	msgs = rec.take()
	require.Len(t, msgs, 1)
	assert.Equal(t, game.HumanVsComputer, msgs[0].Mode)

	r.HandleMessage(ctx, []byte(`{"type":"mode","mode":"human"}`))
	msgs = rec.take()
	require.Len(t, msgs, 1)
	assert.Equal(t, game.HumanVsHuman, msgs[0].Mode)
}

func TestSelectorFailureResetsGame(t *testing.T) {
	failing := selectorFunc(func(context.Context, game.Board, game.Player) (int, error) {
		return -1, bot.ErrNoMovesAvailable
	})
	r, _, rec := newTestRoom(t, game.HumanVsComputer, failing)

	r.HandleMessage(context.Background(), move(4))
	msgs := rec.take()
	require.Len(t, msgs, 3)
	assert.Equal(t, proto.TypeUpdate, msgs[0].Type)
	assert.Equal(t, proto.TypeError, msgs[1].Type)
	assert.Contains(t, msgs[1].Reason, bot.ErrNoMovesAvailable.Error())
	assert.Equal(t, game.Board{}, *msgs[2].Board)
	assert.Equal(t, game.PlayerX, r.session.Turn())
}

func TestSelectorReceivesSnapshot(t *testing.T) {
	var got game.Board
	var gotPlayer game.Player
	spy := selectorFunc(func(_ context.Context, b game.Board, p game.Player) (int, error) {
		got, gotPlayer = b, p
		b[8] = game.CellX // must not leak into the session
		return 0, nil
	})
	r, _, _ := newTestRoom(t, game.HumanVsComputer, spy)

	r.HandleMessage(context.Background(), move(4))
	assert.Equal(t, "...\n.X.\n...", got.String())
	assert.Equal(t, game.PlayerO, gotPlayer)
	assert.Equal(t, "O..\n.X.\n...", r.session.Board().String())
}

func TestStartRunsUntilDisconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockConnection(ctrl)
	rec := &recorder{}
	conn.EXPECT().WriteMessage(websocket.TextMessage, gomock.Any()).DoAndReturn(rec.write(t)).AnyTimes()
	gomock.InOrder(
		conn.EXPECT().ReadMessage().Return(websocket.TextMessage, move(4), nil),
		conn.EXPECT().ReadMessage().Return(0, nil, errors.New("connection closed")),
	)
	conn.EXPECT().Close().Return(nil).Times(1)

	r, err := NewRoom("room-1", player.NewPlayer("player-1", conn), game.HumanVsHuman, bot.NewMinimax())
	require.NoError(t, err)

	unregister := make(chan *Room, 1)
	go r.Start(unregister)

	select {
	case got := <-unregister:
		assert.Same(t, r, got)
	case <-time.After(2 * time.Second):
		t.Fatal("room did not stop after disconnect")
	}

	msgs := rec.take()
	require.Len(t, msgs, 3)
	assert.Equal(t, proto.TypeAssignment, msgs[0].Type)
	assert.Equal(t, proto.TypeUpdate, msgs[1].Type)
	assert.Equal(t, game.Board{}, *msgs[1].Board)
	assert.Equal(t, game.CellX, msgs[2].Board[4])

	r.Close() // idempotent
}
