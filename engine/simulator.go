package engine

import (
	"context"
	"fmt"
	"sync"

	"tictactoe/agent"
	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Tally counts game results from one player's point of view.
type Tally struct {
	Wins   int
	Draws  int
	Losses int
}

func (t Tally) Games() int { return t.Wins + t.Draws + t.Losses }

func (t *Tally) Add(outcome game.Outcome, tracked game.Cell) {
	switch outcome.Winner() {
	case tracked:
		t.Wins++
	case game.Empty:
		t.Draws++
	default:
		t.Losses++
	}
}

func (t Tally) Merge(other Tally) Tally {
	return Tally{
		Wins:   t.Wins + other.Wins,
		Draws:  t.Draws + other.Draws,
		Losses: t.Losses + other.Losses,
	}
}

func (t Tally) String() string {
	return fmt.Sprintf("%d wins, %d draws, %d losses", t.Wins, t.Draws, t.Losses)
}

// Simulator plays repeated games of a match and tallies them for one side.
type Simulator struct {
	match   Engine
	tracked game.Cell
	records []metrics.GameMetric
}

func NewSimulator(x, o agent.Agent, tracked game.Cell) *Simulator {
	if !tracked.Valid() {
		panic(fmt.Sprintf("tracked player must be X or O, got %v", tracked))
	}
	return &Simulator{match: NewMatch(x, o), tracked: tracked}
}

func (s *Simulator) Run(games int) (Tally, error) {
	return s.run(context.Background(), games)
}

func (s *Simulator) run(ctx context.Context, games int) (Tally, error) {
	var tally Tally
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return tally, err
		}
		outcome, metric, err := s.match.Run()
		if err != nil {
			return tally, fmt.Errorf("game %d: %w", i, err)
		}
		tally.Add(outcome, s.tracked)
		s.records = append(s.records, metric)
	}
	return tally, nil
}

// Records returns the metrics of every game played so far.
func (s *Simulator) Records() []metrics.GameMetric {
	return s.records
}

// Factory builds the X and O agents of one worker. Agents are never shared
// between workers.
type Factory func(worker int) (x, o agent.Agent, err error)

// RunParallel spreads games over workers, each owning its own board and
// agents, and merges their tallies. The first failing worker cancels the rest.
func RunParallel(ctx context.Context, workers, games int, tracked game.Cell, factory Factory) (Tally, error) {
	if workers <= 0 {
		workers = 1
	}
	workers = min(workers, max(games, 1))

	tallies := make([]Tally, workers)
	eg, ctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	done := 0
	for w := 0; w < workers; w++ {
		share := games / workers
		if w < games%workers {
			share++
		}
		eg.Go(func() error {
			x, o, err := factory(w)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			tally, err := NewSimulator(x, o, tracked).run(ctx, share)
			tallies[w] = tally
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}

			mu.Lock()
			done += share
			log.Debug().Msgf("Worker %d finished %d games (%d/%d)", w, share, done, games)
			mu.Unlock()
			return nil
		})
	}
	err := eg.Wait()

	var total Tally
	for _, t := range tallies {
		total = total.Merge(t)
	}
	return total, err
}
