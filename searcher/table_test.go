package searcher

import (
	"testing"

	"tictactoe/game"

	"github.com/stretchr/testify/require"
)

func TestTableProbe(t *testing.T) {
	state := game.State{game.X, game.Empty, game.Empty, game.Empty, game.O}
	entry := Entry{Score: 3, Bound: Exact, Depth: 5, Ply: 2}

	t.Run("miss on unknown position", func(t *testing.T) {
		table := NewTable()

		_, ok := table.Probe(state, true, 2, 5)

		require.False(t, ok)
	})

	t.Run("hit at the same ply with enough look-ahead", func(t *testing.T) {
		table := NewTable()
		table.Store(state, true, entry)

		got, ok := table.Probe(state, true, 2, 4)

		require.True(t, ok)
		require.Equal(t, entry, got)
	})

	t.Run("perspective is part of the key", func(t *testing.T) {
		table := NewTable()
		table.Store(state, true, entry)

		_, ok := table.Probe(state, false, 2, 5)

		require.False(t, ok)
	})

	t.Run("entry from another ply is unusable", func(t *testing.T) {
		table := NewTable()
		table.Store(state, true, entry)

		_, ok := table.Probe(state, true, 3, 5)

		require.False(t, ok, "Scores are scaled by ply")
	})

	t.Run("entry with a shallower look-ahead is unusable", func(t *testing.T) {
		table := NewTable()
		table.Store(state, true, entry)

		_, ok := table.Probe(state, true, 2, 6)

		require.False(t, ok)
	})

	t.Run("store replaces", func(t *testing.T) {
		table := NewTable()
		table.Store(state, true, entry)
		table.Store(state, true, Entry{Score: -1, Bound: UpperBound, Depth: 5, Ply: 2})

		got, ok := table.Probe(state, true, 2, 5)

		require.True(t, ok)
		require.Equal(t, -1, got.Score)
		require.Equal(t, UpperBound, got.Bound)
		require.Equal(t, 1, table.Len())
	})
}

func TestClassify(t *testing.T) {
	require.Equal(t, UpperBound, classify(-2, -2, 4), "Fail-low is an upper bound")
	require.Equal(t, LowerBound, classify(4, -2, 4), "Fail-high is a lower bound")
	require.Equal(t, Exact, classify(1, -2, 4))
	require.Equal(t, Exact, classify(0, -scoreInf, scoreInf))
}
