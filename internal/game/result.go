package game

import "fmt"

// Status is the state of a game as seen by Evaluate.
type Status uint8

const (
	InProgress Status = iota
	Win
	Draw
)

// Result is the outcome of evaluating a board. Winner is set only when Status is Win.
type Result struct {
	Status Status `json:"status"`
	Winner Player `json:"winner,omitempty"`
}

func (s Status) String() string {
	switch s {
	case Win:
		return "win"
	case Draw:
		return "draw"
	}
	return "in_progress"
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "in_progress":
		*s = InProgress
	case "win":
		*s = Win
	case "draw":
		*s = Draw
	default:
		return fmt.Errorf("invalid status %q", text)
	}
	return nil
}

// Terminal reports whether no further moves are valid.
func (r Result) Terminal() bool {
	return r.Status != InProgress
}

func (r Result) String() string {
	if r.Status == Win {
		return r.Winner.String() + " wins"
	}
	return r.Status.String()
}

// WinFor returns a winning result for p.
func WinFor(p Player) Result {
	return Result{Status: Win, Winner: p}
}

// Evaluate scans the win patterns in order and reports the first line held by a
// single player, a draw when the board is full, or InProgress otherwise.
func Evaluate(b Board) Result {
	for _, pattern := range WinPatterns {
		first := b[pattern[0]]
		if first != Empty && first == b[pattern[1]] && first == b[pattern[2]] {
			return WinFor(Player(first))
		}
	}
	if b.Full() {
		return Result{Status: Draw}
	}
	return Result{Status: InProgress}
}
