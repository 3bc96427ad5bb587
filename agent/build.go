package agent

import (
	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/rs/zerolog/log"
)

// BuildPolicy scores every legal move of every reachable non-terminal position
// with a full-depth minimax engine playing the side to move.
func BuildPolicy() (PolicyTable, error) {
	engines := map[game.Cell]*searcher.Minimax{
		game.X: searcher.NewMinimax(game.X),
		game.O: searcher.NewMinimax(game.O),
	}
	table := make(PolicyTable)

	var walk func(g *game.Game) error
	walk = func(g *game.Game) error {
		state := g.Serialize()
		if g.IsOver() {
			return nil
		}
		if _, ok := table[state]; ok {
			return nil
		}

		scores, err := engines[g.ToMove()].ScoreMoves(g)
		if err != nil {
			return err
		}
		table[state] = scores

		for _, m := range g.LegalMoves() {
			next := g.Clone()
			if err := next.Play(m); err != nil {
				return err
			}
			if err := walk(next); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(game.NewGame()); err != nil {
		return nil, err
	}
	log.Info().Msgf("Built policy for %d positions", len(table))
	return table, nil
}
