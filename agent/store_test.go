package agent

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"tictactoe/game"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func trainedLearner() *QLearner {
	q := NewQLearner(game.X, WithSeed(7))
	q.Update(game.State{}, game.Move{Row: 1, Col: 1}, 0, game.State{0, 0, 0, 0, game.X}, false)
	q.Update(game.State{game.X, game.O}, game.Move{Row: 2, Col: 2}, 100, game.State{}, true)
	q.Update(game.State{game.X, game.O}, game.Move{Row: 0, Col: 2}, -100, game.State{}, true)
	return q
}

func writeGob(t *testing.T, path string, v any) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(f).Encode(v))
	require.NoError(t, f.Close())
}

func TestQLearnerPersistence(t *testing.T) {
	t.Run("round trip restores every value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "models", "model.gob")
		saved := trainedLearner()
		require.NoError(t, saved.Save(path))

		loaded := NewQLearner(game.X)
		require.NoError(t, loaded.Load(path))

		require.Empty(t, cmp.Diff(saved.table.values, loaded.table.values))
		require.True(t, saved.Table().Equal(loaded.Table()))
	})

	t.Run("missing file keeps the current table", func(t *testing.T) {
		q := trainedLearner()
		before := trainedLearner()

		err := q.Load(filepath.Join(t.TempDir(), "missing.gob"))

		require.Error(t, err)
		require.True(t, before.Table().Equal(q.Table()))
	})

	t.Run("corrupt file keeps the current table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "corrupt.gob")
		require.NoError(t, os.WriteFile(path, []byte("not a q-table"), 0644))
		q := trainedLearner()
		before := trainedLearner()

		err := q.Load(path)

		require.Error(t, err)
		require.True(t, before.Table().Equal(q.Table()))
	})

	t.Run("decodable but invalid cells keep the current table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.gob")
		writeGob(t, path, []qRecord{
			{State: game.State{game.X}, Row: 1, Col: 1, Value: 1},
			{State: game.State{7, 9, 200}, Value: 42},
		})
		q := trainedLearner()
		before := trainedLearner()

		err := q.Load(path)

		require.Error(t, err)
		require.True(t, before.Table().Equal(q.Table()))
	})

	t.Run("out of range move keeps the current table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "range.gob")
		writeGob(t, path, []qRecord{{State: game.State{}, Row: 3, Col: 0, Value: 1}})
		q := trainedLearner()
		before := trainedLearner()

		err := q.Load(path)

		require.Error(t, err)
		require.True(t, before.Table().Equal(q.Table()))
	})

	t.Run("empty table round trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.gob")
		require.NoError(t, NewQLearner(game.O).Save(path))

		q := trainedLearner()
		require.NoError(t, q.Load(path))

		require.Zero(t, q.Table().Len())
	})
}

func TestPolicyPersistence(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "policy.gob")
		table := PolicyTable{
			game.State{}:                  {0, 0, 0, 0, 0, 0, 0, 0, 0},
			game.State{game.X, game.O, 0}: {-9, 8, 7, 0, -9, 0, -9},
		}

		require.NoError(t, SavePolicy(path, table))
		loaded, err := LoadPolicy(path)

		require.NoError(t, err)
		require.Empty(t, cmp.Diff(table, loaded))
	})

	t.Run("invalid cells are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "invalid.gob")
		writeGob(t, path, []policyRecord{{State: game.State{3}, Scores: []float64{0}}})

		table, err := LoadPolicy(path)

		require.Error(t, err)
		require.Nil(t, table)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPolicyPlayer(filepath.Join(t.TempDir(), "missing.gob"), 1)

		require.Error(t, err)
	})
}
