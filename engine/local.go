package engine

import (
	"fmt"
	"time"

	"tictactoe/agent"
	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
)

// Match plays games between two seated agents on a single reused board.
type Match struct {
	Game   *game.Game
	Agents [2]agent.Agent // X then O
}

func NewMatch(x, o agent.Agent) *Match {
	if x == nil || o == nil {
		panic("both seats need an agent")
	}
	seat(x, game.X)
	seat(o, game.O)
	return &Match{
		Game:   game.NewGame(),
		Agents: [2]agent.Agent{x, o},
	}
}

// seat panics when an agent bound to one side is put on the other.
func seat(a agent.Agent, side game.Cell) {
	if s, ok := a.(agent.Sided); ok && s.Player() != side {
		panic(fmt.Sprintf("agent playing %v cannot take the %v seat", s.Player(), side))
	}
}

func (m *Match) agentFor(side game.Cell) agent.Agent {
	if side == game.X {
		return m.Agents[0]
	}
	return m.Agents[1]
}

// Run resets the board and plays one game until it is over. Every move is
// validated; an agent returning an illegal move fails the game.
func (m *Match) Run() (game.Outcome, metrics.GameMetric, error) {
	g := m.Game
	g.Reset()
	start := time.Now()

	moves := 0
	for !g.IsOver() {
		side := g.ToMove()
		move, err := m.agentFor(side).ChooseMove(g)
		if err != nil {
			return game.OutcomeNone, metrics.GameMetric{}, fmt.Errorf("%v failed to move: %w", side, err)
		}
		if err := g.Play(move); err != nil {
			return game.OutcomeNone, metrics.GameMetric{}, fmt.Errorf("%v played %v: %w", side, move, err)
		}
		moves++
	}

	end := time.Now()
	log.Debug().Msgf("Game over after %d moves, winner %v\n%v", moves, g.Outcome(), g)
	return g.Outcome(), metrics.GameMetric{
		Winner:    g.Outcome().String(),
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		Moves:     moves,
	}, nil
}
