package player

//go:generate mockgen -source=player.go -destination=mocks/mock_connection.go -package=mocks

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Player represents the browser tab playing in a room.
type Player struct {
	ID   string
	Conn Connection
}

// NewPlayer creates a player bound to a connection.
func NewPlayer(id string, conn Connection) *Player {
	return &Player{ID: id, Conn: conn}
}
