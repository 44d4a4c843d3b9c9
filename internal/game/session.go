package game

import "fmt"

// Mode selects who plays O.
type Mode string

const (
	HumanVsHuman    Mode = "human"
	HumanVsComputer Mode = "computer"
)

// ComputerPlayer is the side played by the computer in HumanVsComputer mode.
const ComputerPlayer = PlayerO

// GameEnd is delivered to subscribers when a move ends the game.
type GameEnd struct {
	Result Result
	Board  Board
	Mode   Mode
}

// Session holds the state of one game: the board, whose turn it is and the mode.
// A Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	board     Board
	turn      Player
	mode      Mode
	listeners []func(GameEnd)
}

// NewSession returns an empty session in the given mode with X to move.
func NewSession(mode Mode) (*Session, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%q: %w", mode, ErrUnknownMode)
	}
	return &Session{turn: PlayerX, mode: mode}, nil
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == HumanVsHuman || m == HumanVsComputer
}

// Board returns a snapshot of the board.
func (s *Session) Board() Board { return s.board }

// Turn returns the player to move.
func (s *Session) Turn() Player { return s.turn }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// ComputerToMove reports whether the computer must move before further human input.
func (s *Session) ComputerToMove() bool {
	return s.mode == HumanVsComputer && s.turn == ComputerPlayer
}

// OnGameEnd registers fn to be called with the final board whenever a move ends the game.
func (s *Session) OnGameEnd(fn func(GameEnd)) {
	s.listeners = append(s.listeners, fn)
}

// ApplyMove places player's mark at position. Rejected moves change nothing.
// When the move ends the game, listeners are notified and the session resets.
func (s *Session) ApplyMove(position int, player Player) (Result, error) {
	if player != s.turn {
		return Result{}, fmt.Errorf("%s to move, got %s: %w", s.turn, player, ErrNotYourTurn)
	}
	if err := s.board.Place(position, player); err != nil {
		return Result{}, err
	}

	result := Evaluate(s.board)
	if !result.Terminal() {
		s.turn = s.turn.Opponent()
		return result, nil
	}

	end := GameEnd{Result: result, Board: s.board, Mode: s.mode}
	for _, fn := range s.listeners {
		fn(end)
	}
	s.Reset()
	return result, nil
}

// Evaluate evaluates the current board.
func (s *Session) Evaluate() Result {
	return Evaluate(s.board)
}

// Reset clears the board and gives the first move to X. The mode is kept.
func (s *Session) Reset() {
	s.board = Board{}
	s.turn = PlayerX
}

// SwitchMode changes the mode and resets the game.
func (s *Session) SwitchMode(mode Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%q: %w", mode, ErrUnknownMode)
	}
	s.mode = mode
	s.Reset()
	return nil
}

// ToggleMode flips between HumanVsHuman and HumanVsComputer and resets the game.
func (s *Session) ToggleMode() Mode {
	next := HumanVsComputer
	if s.mode == HumanVsComputer {
		next = HumanVsHuman
	}
	s.mode = next
	s.Reset()
	return next
}
