package agent

import (
	"testing"

	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func TestPolicyPlayer(t *testing.T) {
	// X . .
	// . O .
	// . . .
	s := game.State{game.X, game.Empty, game.Empty, game.Empty, game.O}

	t.Run("plays the best scored legal move", func(t *testing.T) {
		p := NewPolicyPlayer(PolicyTable{s: {0, 1, 0, 0, 0, 0, 1}}, 1)

		move, err := p.ChooseMove(mustGame(t, s))

		require.NoError(t, err)
		require.Equal(t, game.Move{Row: 0, Col: 2}, move, "Second legal move holds the first maximum")
	})

	t.Run("missing position falls back to a random legal move", func(t *testing.T) {
		p := NewPolicyPlayer(PolicyTable{}, 1)
		g := mustGame(t, s)

		move, err := p.ChooseMove(g)

		require.NoError(t, err)
		require.True(t, g.IsLegal(move))
	})

	t.Run("mismatched scores fall back to a random legal move", func(t *testing.T) {
		p := NewPolicyPlayer(PolicyTable{s: {5, 1}}, 1)
		g := mustGame(t, s)

		move, err := p.ChooseMove(g)

		require.NoError(t, err)
		require.True(t, g.IsLegal(move))
	})

	t.Run("finished game fails loudly", func(t *testing.T) {
		g := mustGame(t, game.State{game.X, game.X, game.X, game.O, game.O})

		_, err := NewPolicyPlayer(PolicyTable{}, 1).ChooseMove(g)

		require.ErrorIs(t, err, game.ErrGameOver)
	})
}

// policyNeverLoses plays p as player against every possible opponent line.
func policyNeverLoses(t *testing.T, p *PolicyPlayer, player game.Cell, g *game.Game) {
	if g.IsOver() {
		require.NotEqual(t, game.OutcomeFor(player.Opponent()), g.Outcome(), "Policy lost on\n%v", g)
		return
	}
	moves := g.LegalMoves()
	if g.ToMove() == player {
		move, err := p.ChooseMove(g)
		require.NoError(t, err)
		moves = []game.Move{move}
	}
	for _, m := range moves {
		next := g.Clone()
		require.NoError(t, next.Play(m))
		policyNeverLoses(t, p, player, next)
	}
}

func TestBuildPolicy(t *testing.T) {
	table, err := BuildPolicy()
	require.NoError(t, err)

	t.Run("covers every reachable non-terminal position", func(t *testing.T) {
		require.Len(t, table, 4520)
		require.Len(t, table[game.State{}], game.Cells)
		require.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0, 0, 0}, table[game.State{}],
			"Every opening move draws under perfect play")
	})

	t.Run("perfect policy never loses", func(t *testing.T) {
		p := NewPolicyPlayer(table, 1)

		policyNeverLoses(t, p, game.X, game.NewGame())
		policyNeverLoses(t, p, game.O, game.NewGame())
	})
}
