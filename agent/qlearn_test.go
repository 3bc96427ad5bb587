package agent

import (
	"testing"

	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func mustGame(t *testing.T, s game.State) *game.Game {
	t.Helper()
	g, err := game.NewGameFromState(s)
	require.NoError(t, err)
	return g
}

func TestQLearnerUpdate(t *testing.T) {
	prev := game.State{game.X}
	next := game.State{game.X, game.O}
	move := game.Move{Row: 1, Col: 1}

	t.Run("terminal update sets the exact reward", func(t *testing.T) {
		q := NewQLearner(game.X, WithSeed(1))
		q.Update(prev, move, 5, next, false)
		require.NotZero(t, q.Table().Value(prev, move))

		q.Update(prev, move, 100, next, true)

		require.Equal(t, 100.0, q.Table().Value(prev, move), "Terminal reward should not be blended")
	})

	t.Run("temporal difference uses the best recorded next value", func(t *testing.T) {
		q := NewQLearner(game.X, WithLearningRate(0.5), WithDiscountRate(0.9), WithSeed(1))
		q.Update(next, game.Move{Row: 0, Col: 2}, 10, game.State{}, true)
		q.Update(next, game.Move{Row: 2, Col: 2}, -5, game.State{}, true)

		q.Update(prev, move, 1, next, false)

		require.InDelta(t, 0.5*(1+0.9*10), q.Table().Value(prev, move), 1e-9)
	})

	t.Run("unknown next state bootstraps from zero", func(t *testing.T) {
		q := NewQLearner(game.X, WithLearningRate(0.5), WithSeed(1))

		q.Update(prev, move, 2, next, false)

		require.InDelta(t, 1.0, q.Table().Value(prev, move), 1e-9)
	})

	t.Run("only recorded moves count towards the max", func(t *testing.T) {
		q := NewQLearner(game.X, WithLearningRate(0.5), WithDiscountRate(0.9), WithSeed(1))
		q.Update(next, game.Move{Row: 0, Col: 2}, -5, game.State{}, true)

		q.Update(prev, move, 0, next, false)

		require.InDelta(t, 0.5*0.9*-5, q.Table().Value(prev, move), 1e-9)
	})
}

func TestQLearnerChooseMove(t *testing.T) {
	// X . .
	// . O .
	// . . .
	s := game.State{game.X, game.Empty, game.Empty, game.Empty, game.O}

	t.Run("greedy move is deterministic without exploration", func(t *testing.T) {
		q := NewQLearner(game.X, WithEpsilon(0), WithSeed(1))
		q.Update(s, game.Move{Row: 2, Col: 2}, 3, game.State{}, true)
		q.Update(s, game.Move{Row: 0, Col: 2}, 1, game.State{}, true)
		g := mustGame(t, s)

		for i := 0; i < 50; i++ {
			move, err := q.ChooseMove(g)
			require.NoError(t, err)
			require.Equal(t, game.Move{Row: 2, Col: 2}, move)
		}
	})

	t.Run("ties go to the first legal move", func(t *testing.T) {
		q := NewQLearner(game.X, WithEpsilon(0))

		move, err := q.ChooseMove(mustGame(t, s))

		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 1}, move, "Unseen moves read as 0")
	})

	t.Run("negative values lose to unseen moves", func(t *testing.T) {
		q := NewQLearner(game.X, WithEpsilon(0))
		q.Update(s, game.Move{Row: 0, Col: 1}, -100, game.State{}, true)

		move, err := q.ChooseMove(mustGame(t, s))

		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 2}, move)
	})

	t.Run("exploration only plays legal moves and is seeded", func(t *testing.T) {
		a := NewQLearner(game.X, WithEpsilon(1), WithSeed(42))
		b := NewQLearner(game.X, WithEpsilon(1), WithSeed(42))
		g := mustGame(t, s)

		for i := 0; i < 50; i++ {
			moveA, err := a.ChooseMove(g)
			require.NoError(t, err)
			moveB, err := b.ChooseMove(g)
			require.NoError(t, err)

			require.True(t, g.IsLegal(moveA), "move %v", moveA)
			require.Equal(t, moveA, moveB, "Equal seeds should explore identically")
		}
	})

	t.Run("finished game fails loudly", func(t *testing.T) {
		g := mustGame(t, game.State{game.X, game.X, game.X, game.O, game.O})

		_, err := NewQLearner(game.O).ChooseMove(g)

		require.ErrorIs(t, err, game.ErrGameOver)
	})
}

func TestQLearnerConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		q := NewQLearner(game.O)

		require.Equal(t, game.O, q.Player())
		require.Equal(t, 0.1, q.Epsilon())
		require.Zero(t, q.Table().Len())
	})

	t.Run("epsilon decays and is clamped", func(t *testing.T) {
		q := NewQLearner(game.X, WithEpsilon(0.5))

		q.DecayEpsilon(0.5)
		require.Equal(t, 0.25, q.Epsilon())

		q.SetEpsilon(3)
		require.Equal(t, 1.0, q.Epsilon())
		q.SetEpsilon(-1)
		require.Equal(t, 0.0, q.Epsilon())
	})

	t.Run("invalid configuration panics", func(t *testing.T) {
		require.Panics(t, func() { NewQLearner(game.Empty) })
		require.Panics(t, func() { NewQLearner(game.X, WithLearningRate(0)) })
		require.Panics(t, func() { NewQLearner(game.X, WithDiscountRate(1.5)) })
		require.Panics(t, func() { NewQLearner(game.X, WithEpsilon(-0.1)) })
	})
}
