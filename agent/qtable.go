package agent

import "tictactoe/game"

// QTable is a sparse state -> move -> value table. Pairs never written read
// as 0.
type QTable struct {
	values map[game.State]map[game.Move]float64
}

func NewQTable() *QTable {
	return &QTable{values: make(map[game.State]map[game.Move]float64)}
}

func (q *QTable) Value(s game.State, m game.Move) float64 {
	return q.values[s][m]
}

func (q *QTable) set(s game.State, m game.Move, v float64) {
	moves, ok := q.values[s]
	if !ok {
		moves = make(map[game.Move]float64)
		q.values[s] = moves
	}
	moves[m] = v
}

// maxValue returns the highest value recorded for s, 0 when nothing is.
func (q *QTable) maxValue(s game.State) float64 {
	moves := q.values[s]
	if len(moves) == 0 {
		return 0
	}
	first := true
	best := 0.0
	for _, v := range moves {
		if first || v > best {
			best, first = v, false
		}
	}
	return best
}

// Len returns the number of recorded state-move pairs.
func (q *QTable) Len() int {
	n := 0
	for _, moves := range q.values {
		n += len(moves)
	}
	return n
}

// States returns the number of states with at least one recorded move.
func (q *QTable) States() int {
	return len(q.values)
}

func (q *QTable) Equal(other *QTable) bool {
	if q.Len() != other.Len() {
		return false
	}
	for s, moves := range q.values {
		for m, v := range moves {
			w, ok := other.values[s][m]
			if !ok || w != v {
				return false
			}
		}
	}
	return true
}
