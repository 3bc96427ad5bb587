package searcher

import "tictactoe/game"

// Bound classifies a cached score in alpha-beta terms.
type Bound uint8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case LowerBound:
		return "lower"
	case UpperBound:
		return "upper"
	}
	return "unknown"
}

// Entry is a transposition table record.
type Entry struct {
	Score int
	Bound Bound
	Depth int // look-ahead that remained below the node when it was searched
	Ply   int // search depth of the node, scores are scaled by it
}

type tableKey struct {
	state      game.State
	maximizing bool
}

// Table caches searched positions keyed by board and search perspective.
// Entries are never evicted; there are at most a few thousand reachable
// positions. A Table belongs to a single engine and is not safe for
// concurrent use.
type Table struct {
	entries map[tableKey]Entry
}

func NewTable() *Table {
	return &Table{entries: make(map[tableKey]Entry)}
}

// Probe returns the entry for the position if it was recorded at the same ply
// with at least the remaining look-ahead.
func (t *Table) Probe(state game.State, maximizing bool, ply, remaining int) (Entry, bool) {
	e, ok := t.entries[tableKey{state: state, maximizing: maximizing}]
	if !ok || e.Ply != ply || e.Depth < remaining {
		return Entry{}, false
	}
	return e, true
}

// Store records e for the position, replacing any previous entry.
func (t *Table) Store(state game.State, maximizing bool, e Entry) {
	t.entries[tableKey{state: state, maximizing: maximizing}] = e
}

func (t *Table) Len() int {
	return len(t.entries)
}

func classify(score, alphaOrig, beta int) Bound {
	switch {
	case score <= alphaOrig:
		return UpperBound
	case score >= beta:
		return LowerBound
	}
	return Exact
}
