package agent

import (
	"tictactoe/game"

	"golang.org/x/exp/rand"
)

// Random plays a uniformly random legal move.
type Random struct {
	rng *rand.Rand
	buf [game.Cells]game.Move
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) ChooseMove(g *game.Game) (game.Move, error) {
	moves, err := legalMoves(g, &r.buf)
	if err != nil {
		return game.Move{}, err
	}
	return pick(r.rng, moves), nil
}
