package game

import "errors"

const (
	Size  = 3
	Cells = Size * Size
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrGameOver     = errors.New("game is over - no moves allowed")
	ErrNoLegalMoves = errors.New("no legal moves available")
)

// Cell is the content of a board square. X and O double as the two players.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// Valid reports whether c designates a player.
func (c Cell) Valid() bool {
	return c == X || c == O
}

// Opponent returns the other player. It panics for Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case X:
		return O
	case O:
		return X
	}
	panic("empty cell has no opponent")
}

func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "."
}

// State is the canonical serialized board: 9 cells in row-major order.
// It is comparable and serves as the lookup key of every table.
type State [Cells]Cell

func (s State) String() string {
	b := make([]byte, Cells)
	for i, c := range s {
		b[i] = c.String()[0]
	}
	return string(b)
}

// Valid reports whether every cell is Empty, X or O.
func (s State) Valid() bool {
	for _, c := range s {
		if c != Empty && !c.Valid() {
			return false
		}
	}
	return true
}

// Counts returns the number of X and O cells.
func (s State) Counts() (x, o int) {
	for _, c := range s {
		switch c {
		case X:
			x++
		case O:
			o++
		}
	}
	return x, o
}

// Outcome is the result of a game, OutcomeNone until the game is over.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeX
	OutcomeO
	OutcomeDraw
)

// OutcomeFor returns the winning outcome of player p.
func OutcomeFor(p Cell) Outcome {
	switch p {
	case X:
		return OutcomeX
	case O:
		return OutcomeO
	}
	panic("empty cell cannot win")
}

// Winner returns the winning player, or Empty on a draw or an unfinished game.
func (o Outcome) Winner() Cell {
	switch o {
	case OutcomeX:
		return X
	case OutcomeO:
		return O
	}
	return Empty
}

func (o Outcome) String() string {
	switch o {
	case OutcomeX:
		return "X"
	case OutcomeO:
		return "O"
	case OutcomeDraw:
		return "draw"
	}
	return "none"
}

// lines lists the 3 rows, 3 columns and 2 diagonals as cell indices.
var lines = [8][Size]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}
