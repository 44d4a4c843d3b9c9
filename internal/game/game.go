package game

import (
	"errors"
	"fmt"
	"strings"
)

// Player identifies one side of the game.
type Player uint8

// Cell is a single board position: Empty, or occupied by a player.
type Cell uint8

// Board is a 3x3 board stored row-major, positions 0..8.
type Board [9]Cell

const (
	PlayerX Player = iota + 1
	PlayerO
)

const (
	Empty Cell = 0
	CellX Cell = Cell(PlayerX)
	CellO Cell = Cell(PlayerO)
)

// Board boundaries
const (
	PositionMin = 0
	PositionMax = 8
)

var (
	ErrOutOfRange   = errors.New("position out of range")
	ErrCellOccupied = errors.New("cell already occupied")
	ErrNotYourTurn  = errors.New("not player's turn")
	ErrUnknownMode  = errors.New("unknown game mode")
)

// WinPatterns lists every winning line: rows, then columns, then diagonals.
var WinPatterns = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	if p == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (p Player) String() string {
	switch p {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	}
	return ""
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "X", "x":
		*p = PlayerX
	case "O", "o":
		*p = PlayerO
	case "":
		*p = 0
	default:
		return fmt.Errorf("invalid player %q", text)
	}
	return nil
}

// Occupied returns the cell holding p's mark.
func Occupied(p Player) Cell {
	return Cell(p)
}

// Player reports the occupant of the cell, if any.
func (c Cell) Player() (Player, bool) {
	if c == Empty {
		return 0, false
	}
	return Player(c), true
}

func (c Cell) String() string {
	return Player(c).String()
}

func (c Cell) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	var p Player
	if err := p.UnmarshalText(text); err != nil {
		return fmt.Errorf("invalid cell %q", text)
	}
	*c = Cell(p)
	return nil
}

// Place writes p's mark at position. A rejected move leaves the board unchanged.
func (b *Board) Place(position int, p Player) error {
	if position < PositionMin || position > PositionMax {
		return fmt.Errorf("position %d: %w", position, ErrOutOfRange)
	}
	if b[position] != Empty {
		return fmt.Errorf("position %d: %w", position, ErrCellOccupied)
	}
	b[position] = Occupied(p)
	return nil
}

// EmptyCells returns the empty positions in ascending order.
func (b Board) EmptyCells() []int {
	positions := make([]int, 0, len(b))
	for i, c := range b {
		if c == Empty {
			positions = append(positions, i)
		}
	}
	return positions
}

// Full reports whether every cell is occupied.
func (b Board) Full() bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// String renders the board as three rows, using '.' for empty cells.
func (b Board) String() string {
	var sb strings.Builder
	for i, c := range b {
		if c == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(c.String())
		}
		if i%3 == 2 && i != len(b)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseBoard reads nine cells from s. 'X' and 'O' are marks; '.', '_', '-' and
// ' ' are empty. Newlines are ignored so the output of Board.String parses back.
func ParseBoard(s string) (Board, error) {
	var b Board
	i := 0
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		if i >= len(b) {
			return Board{}, fmt.Errorf("board has more than %d cells", len(b))
		}
		switch r {
		case 'X', 'x':
			b[i] = CellX
		case 'O', 'o':
			b[i] = CellO
		case '.', '_', '-', ' ':
			b[i] = Empty
		default:
			return Board{}, fmt.Errorf("invalid cell %q at position %d", r, i)
		}
		i++
	}
	if i != len(b) {
		return Board{}, fmt.Errorf("board has %d cells, want %d", i, len(b))
	}
	return b, nil
}
