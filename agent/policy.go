package agent

import (
	"tictactoe/game"
	"tictactoe/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// PolicyPlayer plays the best scored move of a precomputed policy table.
// Positions missing from the table, or whose scores do not line up with the
// legal moves, are played at random.
type PolicyPlayer struct {
	table PolicyTable
	rng   *rand.Rand
	buf   [game.Cells]game.Move
}

func NewPolicyPlayer(table PolicyTable, seed uint64) *PolicyPlayer {
	return &PolicyPlayer{
		table: table,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// LoadPolicyPlayer builds a policy player from a table saved with SavePolicy.
func LoadPolicyPlayer(path string, seed uint64) (*PolicyPlayer, error) {
	table, err := LoadPolicy(path)
	if err != nil {
		return nil, err
	}
	return NewPolicyPlayer(table, seed), nil
}

func (p *PolicyPlayer) ChooseMove(g *game.Game) (game.Move, error) {
	moves, err := legalMoves(g, &p.buf)
	if err != nil {
		return game.Move{}, err
	}

	state := g.Serialize()
	scores, ok := p.table[state]
	if !ok || len(scores) != len(moves) {
		log.Warn().Msgf("No policy entry for %s, playing a random move", state)
		return pick(p.rng, moves), nil
	}
	return moves[utils.ArgMax(scores)], nil
}
