package game

import "fmt"

// Move is a (row, column) coordinate, both 0-indexed.
type Move struct {
	Row int
	Col int
}

// MoveAt returns the move addressing cell index i of a State.
func MoveAt(i int) Move {
	return Move{Row: i / Size, Col: i % Size}
}

// InBounds reports whether both coordinates are in [0,3).
func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < Size && m.Col >= 0 && m.Col < Size
}

// Index returns the row-major cell index of the move.
func (m Move) Index() int {
	return m.Row*Size + m.Col
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}
