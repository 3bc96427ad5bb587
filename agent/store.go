package agent

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"tictactoe/game"

	"github.com/pkg/errors"
)

type qRecord struct {
	State game.State
	Row   int
	Col   int
	Value float64
}

type policyRecord struct {
	State  game.State
	Scores []float64
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create directory for %s", path)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

// save gob-encodes v into path and reports the close error.
func save(path, what string, v any) error {
	f, err := create(path)
	if err != nil {
		return err
	}

	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to encode %s to %s", what, path)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return errors.WithStack(err)
	}
	return errors.WithStack(f.Close())
}

// Save writes the whole Q-table to path.
func (q *QLearner) Save(path string) error {
	records := make([]qRecord, 0, q.table.Len())
	for s, moves := range q.table.values {
		for m, v := range moves {
			records = append(records, qRecord{State: s, Row: m.Row, Col: m.Col, Value: v})
		}
	}
	return save(path, "q-table", records)
}

// Load replaces the Q-table with the one stored at path. The current table is
// kept when reading or decoding fails.
func (q *QLearner) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	var records []qRecord
	if err := gob.NewDecoder(f).Decode(&records); err != nil {
		return errors.Wrapf(err, "failed to decode q-table from %s", path)
	}

	table := NewQTable()
	for _, r := range records {
		if !r.State.Valid() {
			return errors.Errorf("q-table %s holds invalid board %v", path, [game.Cells]game.Cell(r.State))
		}
		m := game.Move{Row: r.Row, Col: r.Col}
		if !m.InBounds() {
			return errors.Errorf("q-table %s holds out of range move %v", path, m)
		}
		table.set(r.State, m, r.Value)
	}
	q.table = table
	return nil
}

// PolicyTable maps a state to one score per legal move, in the row-major order
// of the legal moves.
type PolicyTable map[game.State][]float64

func SavePolicy(path string, table PolicyTable) error {
	records := make([]policyRecord, 0, len(table))
	for s, scores := range table {
		records = append(records, policyRecord{State: s, Scores: scores})
	}
	return save(path, "policy", records)
}

func LoadPolicy(path string) (PolicyTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	var records []policyRecord
	if err := gob.NewDecoder(f).Decode(&records); err != nil {
		return nil, errors.Wrapf(err, "failed to decode policy from %s", path)
	}

	table := make(PolicyTable, len(records))
	for _, r := range records {
		if !r.State.Valid() {
			return nil, errors.Errorf("policy %s holds invalid board %v", path, [game.Cells]game.Cell(r.State))
		}
		table[r.State] = r.Scores
	}
	return table, nil
}
