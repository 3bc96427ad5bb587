package agent

import (
	"fmt"

	"tictactoe/game"

	"golang.org/x/exp/rand"
)

// Agent produces a move for the player to move. Agents return
// game.ErrGameOver when asked to move on a finished game.
type Agent interface {
	ChooseMove(g *game.Game) (game.Move, error)
}

// Sided is implemented by agents bound to one side of the board.
type Sided interface {
	Player() game.Cell
}

func mustBePlayer(kind string, player game.Cell) {
	if !player.Valid() {
		panic(fmt.Sprintf("%s player must be X or O, got %v", kind, player))
	}
}

// legalMoves writes the legal moves of g into buf.
func legalMoves(g *game.Game, buf *[game.Cells]game.Move) ([]game.Move, error) {
	if g.IsOver() {
		return nil, game.ErrGameOver
	}
	moves := g.AppendLegalMoves(buf[:0])
	if len(moves) == 0 {
		return nil, game.ErrNoLegalMoves
	}
	return moves, nil
}

func pick(rng *rand.Rand, moves []game.Move) game.Move {
	return moves[rng.Intn(len(moves))]
}
