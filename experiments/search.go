package experiments

import (
	"fmt"

	"tictactoe/agent"
	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/rs/zerolog/log"
)

// recorder keeps the search metrics of every move of a minimax engine.
type recorder struct {
	*searcher.Minimax
	moves []metrics.SearchMetric
}

func (r *recorder) ChooseMove(g *game.Game) (game.Move, error) {
	move, err := r.Minimax.ChooseMove(g)
	if err == nil {
		r.moves = append(r.moves, r.Minimax.Metrics())
	}
	return move, err
}

// RunSearchExperiment plays a metrics-enabled minimax engine as X against a
// random player for every depth limit (0 for full depth) and records the cost
// of every search.
func RunSearchExperiment(depths []int, games int, seed uint64, writer *metrics.Writer) ([]metrics.MoveRecord, error) {
	log.Info().Msg("starting search experiment...")

	configs := make([]metrics.AgentConfig, 0, len(depths))
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	for di, depth := range depths {
		config := metrics.AgentConfig{ID: di + 1, Kind: Minimax, Depth: depth}
		configs = append(configs, config)

		for i := 0; i < games; i++ {
			r := &recorder{Minimax: searcher.NewMinimax(game.X, searcher.WithDepthLimit(depth), searcher.WithMetrics())}
			outcome, gm, err := engine.NewMatch(r, agent.NewRandom(seed+uint64(i))).Run()
			if err != nil {
				return nil, fmt.Errorf("depth %d game %d: %w", depth, i, err)
			}

			id := len(gameRecords) + 1
			gameRecords = append(gameRecords, metrics.GameRecord{ID: id, Opponent: config.ID, GameMetric: gm})
			for step, sm := range r.moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:         id,
					Step:         step + 1,
					Player:       game.X.String(),
					SearchMetric: sm,
				})
			}
			log.Debug().Msgf("depth %d game %d of %d: winner %v", depth, i+1, games, outcome)
		}
		log.Info().Msgf("completed depth limit %d", depth)
	}

	if writer != nil {
		if err := writer.WriteAgentConfigs(configs); err != nil {
			return nil, err
		}
		if err := writer.WriteGameRecords(gameRecords); err != nil {
			return nil, err
		}
		if err := writer.WriteMoveRecords(moveRecords); err != nil {
			return nil, err
		}
		log.Info().Msgf("stored search records in %s", writer.Dir())
	}
	return moveRecords, nil
}
