package game

import (
	"fmt"
	"strings"
)

// Game is a Tic-Tac-Toe game. It is mutated in place one move per turn and
// reused across games through Reset.
type Game struct {
	board   State
	toMove  Cell
	over    bool
	outcome Outcome
}

// NewGame returns an empty game with X to move.
func NewGame() *Game {
	return &Game{toMove: X}
}

// NewGameFromState rebuilds a game from a serialized board. The player to move
// follows from the piece counts and the terminal flags are evaluated.
func NewGameFromState(s State) (*Game, error) {
	x, o := s.Counts()
	if x != o && x != o+1 {
		return nil, fmt.Errorf("unreachable board %s: %d X and %d O", s, x, o)
	}

	g := &Game{board: s, toMove: X}
	if x > o {
		g.toMove = O
	}

	xWon, oWon := g.HasWinner(X), g.HasWinner(O)
	switch {
	case xWon && oWon:
		return nil, fmt.Errorf("unreachable board %s: both players have a line", s)
	case xWon:
		if x == o {
			return nil, fmt.Errorf("unreachable board %s: X won but O moved after", s)
		}
		g.finish(OutcomeX)
	case oWon:
		if x != o {
			return nil, fmt.Errorf("unreachable board %s: O won but X moved after", s)
		}
		g.finish(OutcomeO)
	case g.IsFull():
		g.finish(OutcomeDraw)
	}
	return g, nil
}

// ApplyMove plays the current player's mark at (row, col). It returns false
// and leaves the game untouched when the move is illegal.
func (g *Game) ApplyMove(row, col int) bool {
	m := Move{Row: row, Col: col}
	if !g.IsLegal(m) {
		return false
	}

	mover := g.toMove
	g.board[m.Index()] = mover

	if g.HasWinner(mover) {
		g.finish(OutcomeFor(mover))
	} else if g.IsFull() {
		g.finish(OutcomeDraw)
	} else {
		g.toMove = mover.Opponent()
	}
	return true
}

// Play is ApplyMove reporting why a move was rejected.
func (g *Game) Play(m Move) error {
	if g.over {
		return ErrGameOver
	}
	if !g.ApplyMove(m.Row, m.Col) {
		return fmt.Errorf("%w: %v on\n%v", ErrIllegalMove, m, g)
	}
	return nil
}

func (g *Game) finish(outcome Outcome) {
	g.over = true
	g.outcome = outcome
}

// IsLegal reports whether m is in range, targets an empty cell and the game
// is not over.
func (g *Game) IsLegal(m Move) bool {
	return !g.over && m.InBounds() && g.board[m.Index()] == Empty
}

// LegalMoves returns every empty cell in row-major order.
func (g *Game) LegalMoves() []Move {
	return g.AppendLegalMoves(make([]Move, 0, Cells))
}

// AppendLegalMoves appends the empty cells in row-major order to dst. It
// ignores the game-over flag so that search can enumerate raw placements.
func (g *Game) AppendLegalMoves(dst []Move) []Move {
	for i, c := range g.board {
		if c == Empty {
			dst = append(dst, MoveAt(i))
		}
	}
	return dst
}

// IsFull reports whether no empty cell remains.
func (g *Game) IsFull() bool {
	for _, c := range g.board {
		if c == Empty {
			return false
		}
	}
	return true
}

// HasWinner reports whether player p owns a full row, column or diagonal.
func (g *Game) HasWinner(p Cell) bool {
	for _, line := range lines {
		if g.board[line[0]] == p && g.board[line[1]] == p && g.board[line[2]] == p {
			return true
		}
	}
	return false
}

func (g *Game) IsOver() bool { return g.over }

func (g *Game) Outcome() Outcome { return g.outcome }

// ToMove returns the player whose turn it is. After the game is over it is
// the player who made the last move.
func (g *Game) ToMove() Cell { return g.toMove }

// At returns the content of cell (row, col).
func (g *Game) At(row, col int) Cell {
	return g.board[Move{Row: row, Col: col}.Index()]
}

// Serialize returns the canonical key of the current board.
func (g *Game) Serialize() State { return g.board }

// Reset clears the board, gives the move back to X and clears the terminal flags.
func (g *Game) Reset() {
	g.board = State{}
	g.toMove = X
	g.over = false
	g.outcome = OutcomeNone
}

// Place writes c into the cell of m without touching the mover or the
// terminal flags. Search uses it together with Clear to try a move on the live
// board and take it back; every Place must be paired with exactly one Clear.
func (g *Game) Place(m Move, c Cell) {
	g.board[m.Index()] = c
}

// Clear empties the cell of m. See Place.
func (g *Game) Clear(m Move) {
	g.board[m.Index()] = Empty
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	return &c
}

func (g *Game) String() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g.At(row, col).String())
		}
		if row < Size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
