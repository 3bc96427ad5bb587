package experiments

import (
	"context"
	"fmt"

	"tictactoe/agent"
	"tictactoe/engine"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/searcher"

	"github.com/rs/zerolog/log"
)

const (
	Random  = "random"
	Perfect = "perfect"
	Minimax = "minimax"
)

// DefaultOpponents are the evaluation opponents of a trained agent.
func DefaultOpponents() []metrics.AgentConfig {
	return []metrics.AgentConfig{
		{ID: 1, Kind: Random},
		{ID: 2, Kind: Perfect},
		{ID: 3, Kind: Minimax},
	}
}

// NewOpponent builds the agent described by config playing side. The perfect
// player needs a policy table.
func NewOpponent(config metrics.AgentConfig, side game.Cell, policy agent.PolicyTable, seed uint64) (agent.Agent, error) {
	switch config.Kind {
	case Random:
		return agent.NewRandom(seed), nil
	case Perfect:
		if policy == nil {
			return nil, fmt.Errorf("perfect opponent %d needs a policy table", config.ID)
		}
		return agent.NewPolicyPlayer(policy, seed), nil
	case Minimax:
		return searcher.NewMinimax(side, searcher.WithDepthLimit(config.Depth)), nil
	}
	return nil, fmt.Errorf("unknown opponent kind %q", config.Kind)
}

type Result struct {
	Opponent metrics.AgentConfig
	Tally    engine.Tally
}

// Evaluation plays an agent against a list of opponents.
type Evaluation struct {
	Opponents []metrics.AgentConfig
	Games     int // Per opponent
	Policy    agent.PolicyTable
	Seed      uint64
	Writer    *metrics.Writer // Optional
}

// Run plays e.Games games against every opponent with the agent on side and
// returns the agent's tallies in opponent order.
func (e Evaluation) Run(a agent.Agent, side game.Cell) ([]Result, error) {
	log.Info().Msgf("starting evaluation of %T as %v...", a, side)

	results := make([]Result, 0, len(e.Opponents))
	gameRecords := []metrics.GameRecord{}
	for oi, config := range e.Opponents {
		opponent, err := NewOpponent(config, side.Opponent(), e.Policy, e.Seed+uint64(oi))
		if err != nil {
			return nil, err
		}

		log.Info().Msgf("starting matchup %d of %d against %+v...", oi+1, len(e.Opponents), config)

		x, o := a, opponent
		if side == game.O {
			x, o = opponent, a
		}
		sim := engine.NewSimulator(x, o, side)
		tally, err := sim.Run(e.Games)
		if err != nil {
			return nil, fmt.Errorf("matchup against %s: %w", config.Kind, err)
		}
		results = append(results, Result{Opponent: config, Tally: tally})

		for _, gm := range sim.Records() {
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         len(gameRecords) + 1,
				Opponent:   config.ID,
				GameMetric: gm,
			})
		}

		log.Info().Msgf("completed matchup %d of %d against %s: %v", oi+1, len(e.Opponents), config.Kind, tally)
	}

	if e.Writer != nil {
		if err := e.Writer.WriteAgentConfigs(e.Opponents); err != nil {
			return nil, err
		}
		if err := e.Writer.WriteGameRecords(gameRecords); err != nil {
			return nil, err
		}
		log.Info().Msgf("stored game records in %s", e.Writer.Dir())
	}
	return results, nil
}

// RunParallel is Run spread over workers. Every worker plays with its own
// agent from newAgent and its own opponents. Game records are not kept.
func (e Evaluation) RunParallel(ctx context.Context, workers int, side game.Cell, newAgent func(worker int) (agent.Agent, error)) ([]Result, error) {
	log.Info().Msgf("starting parallel evaluation as %v with %d workers...", side, workers)

	results := make([]Result, 0, len(e.Opponents))
	for oi, config := range e.Opponents {
		factory := func(worker int) (agent.Agent, agent.Agent, error) {
			a, err := newAgent(worker)
			if err != nil {
				return nil, nil, err
			}
			seed := e.Seed + uint64(oi) + uint64(worker)*uint64(len(e.Opponents))
			opponent, err := NewOpponent(config, side.Opponent(), e.Policy, seed)
			if err != nil {
				return nil, nil, err
			}
			if side == game.O {
				return opponent, a, nil
			}
			return a, opponent, nil
		}

		tally, err := engine.RunParallel(ctx, workers, e.Games, side, factory)
		if err != nil {
			return nil, fmt.Errorf("matchup against %s: %w", config.Kind, err)
		}
		results = append(results, Result{Opponent: config, Tally: tally})
		log.Info().Msgf("completed matchup %d of %d against %s: %v", oi+1, len(e.Opponents), config.Kind, tally)
	}
	return results, nil
}
