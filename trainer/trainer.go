package trainer

import (
	"fmt"

	"tictactoe/agent"
	"tictactoe/game"
	"tictactoe/meta"

	"github.com/rs/zerolog/log"
)

// Rewards are handed to the learner from its own perspective.
type Rewards struct {
	Step float64
	Win  float64
	Draw float64
	Loss float64
}

func DefaultRewards() Rewards {
	return Rewards{
		Step: meta.STEP_REWARD,
		Win:  meta.WIN_REWARD,
		Draw: meta.DRAW_REWARD,
		Loss: meta.LOSS_REWARD,
	}
}

// Learner is an agent that learns from the transitions of its own moves.
type Learner interface {
	agent.Agent
	agent.Sided
	Update(prev game.State, move game.Move, reward float64, next game.State, terminal bool)
	DecayEpsilon(factor float64)
}

type Option func(t *Trainer)

func WithRewards(rewards Rewards) Option {
	return func(t *Trainer) {
		t.rewards = rewards
	}
}

func WithEpsilonDecay(factor float64) Option {
	return func(t *Trainer) {
		if factor > 0 && factor <= 1 {
			t.decay = factor
		}
	}
}

// WithAfterstateBootstrap makes step updates bootstrap from the board right
// after the learner's own move instead of the board it next acts on.
func WithAfterstateBootstrap() Option {
	return func(t *Trainer) {
		t.afterstate = true
	}
}

// Trainer plays learning episodes and keeps the learner's record. Records
// accumulate across Train calls so a curriculum of opponents shares one
// history.
type Trainer struct {
	rewards    Rewards
	decay      float64
	afterstate bool
	game       *game.Game
	wins       int
	draws      int
	losses     int
	history    []int
}

func New(options ...Option) *Trainer {
	t := &Trainer{ // Default values
		rewards: DefaultRewards(),
		decay:   meta.EPSILON_DECAY,
		game:    game.NewGame(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

// Summary is the record of a single Train call.
type Summary struct {
	Episodes int
	Wins     int
	Draws    int
	Losses   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d episodes: %d wins, %d draws, %d losses", s.Episodes, s.Wins, s.Draws, s.Losses)
}

// Train plays episodes between learner and opponent, the learner keeping its
// side of the board. Exploration is decayed after every episode.
func (t *Trainer) Train(learner Learner, opponent agent.Agent, episodes int) (Summary, error) {
	var summary Summary
	if s, ok := opponent.(agent.Sided); ok && s.Player() == learner.Player() {
		return summary, fmt.Errorf("opponent plays %v, the learner's own side", s.Player())
	}
	progress := max(episodes/10, 1)
	for i := 0; i < episodes; i++ {
		result, err := t.episode(learner, opponent)
		if err != nil {
			return summary, fmt.Errorf("episode %d: %w", i, err)
		}

		summary.Episodes++
		switch result {
		case Win:
			summary.Wins++
		case Draw:
			summary.Draws++
		case Loss:
			summary.Losses++
		}
		learner.DecayEpsilon(t.decay)

		if (i+1)%progress == 0 {
			log.Debug().Msgf("Training %d/%d: %v", i+1, episodes, summary)
		}
	}
	log.Info().Msgf("Trained %v against %T", summary, opponent)
	return summary, nil
}

func (t *Trainer) episode(learner Learner, opponent agent.Agent) (int, error) {
	g := t.game
	g.Reset()
	player := learner.Player()

	var prev game.State
	var last game.Move
	acted := false
	for !g.IsOver() {
		if g.ToMove() != player {
			move, err := opponent.ChooseMove(g)
			if err != nil {
				return 0, fmt.Errorf("opponent: %w", err)
			}
			if err := g.Play(move); err != nil {
				return 0, fmt.Errorf("opponent: %w", err)
			}
			continue
		}

		current := g.Serialize()
		if acted && !t.afterstate {
			learner.Update(prev, last, t.rewards.Step, current, false)
		}
		move, err := learner.ChooseMove(g)
		if err != nil {
			return 0, fmt.Errorf("learner: %w", err)
		}
		if err := g.Play(move); err != nil {
			return 0, fmt.Errorf("learner: %w", err)
		}
		if acted && t.afterstate {
			learner.Update(prev, last, t.rewards.Step, g.Serialize(), false)
		}
		prev, last, acted = current, move, true
	}

	result := resultFor(g.Outcome(), player)
	if acted {
		learner.Update(prev, last, t.reward(result), g.Serialize(), true)
	}
	t.record(result)
	return result, nil
}

func (t *Trainer) reward(result int) float64 {
	switch result {
	case Win:
		return t.rewards.Win
	case Draw:
		return t.rewards.Draw
	}
	return t.rewards.Loss
}
