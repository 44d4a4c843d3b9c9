package types

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/internal/game"
	"ctchen222/tic-tac-toe-minimax/internal/player"
)

// RegistrationRequest represents a request to register a player.
type RegistrationRequest struct {
	Player *player.Player
	Mode   game.Mode // initial mode of the player's session
	Ctx    context.Context
}
