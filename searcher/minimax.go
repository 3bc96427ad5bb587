package searcher

import (
	"fmt"

	"tictactoe/experiments/metrics"
	"tictactoe/game"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// WithDepthLimit stops the search after depth plies below the root move and
// scores the position with the evaluation function instead.
func WithDepthLimit(depth int) Option {
	return func(m *Minimax) {
		if depth > 0 {
			m.depthLimit = depth
		}
	}
}

func WithoutTable() Option {
	return func(m *Minimax) {
		m.table = nil
	}
}

func WithoutPruning() Option {
	return func(m *Minimax) {
		m.prune = false
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

// Minimax is an alpha-beta search engine playing one side. It searches on the
// live game and restores it before returning. The engine and its table are not
// safe for concurrent use.
type Minimax struct {
	player     game.Cell
	opponent   game.Cell
	depthLimit int // 0 searches to the end of the game
	prune      bool
	table      *Table
	evaluate   game.Evaluate
	metrics    metrics.Collector
	last       metrics.SearchMetric
}

func NewMinimax(player game.Cell, options ...Option) *Minimax {
	if player != game.X && player != game.O {
		panic(fmt.Sprintf("minimax player must be X or O, got %v", player))
	}
	m := &Minimax{ // Default values
		player:   player,
		opponent: player.Opponent(),
		prune:    true,
		table:    NewTable(),
		evaluate: game.EvaluateLines,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Player() game.Cell { return m.player }

func (m *Minimax) DepthLimit() int { return m.depthLimit }

// Table returns the engine's transposition table, nil when disabled.
func (m *Minimax) Table() *Table { return m.table }

// Metrics returns the metrics of the last search.
func (m *Minimax) Metrics() metrics.SearchMetric { return m.last }

func (m *Minimax) ChooseMove(g *game.Game) (game.Move, error) {
	move, _, err := m.Search(g)
	return move, err
}

// Search returns the first legal move in row-major order with the highest
// minimax value, together with that value.
func (m *Minimax) Search(g *game.Game) (game.Move, int, error) {
	if g.IsOver() {
		return game.Move{}, 0, game.ErrGameOver
	}
	var buf [game.Cells]game.Move
	moves := g.AppendLegalMoves(buf[:0])
	if len(moves) == 0 {
		return game.Move{}, 0, game.ErrNoLegalMoves
	}

	m.metrics.Start(m.depthLimit)
	best, bestValue := moves[0], -scoreInf
	alpha := -scoreInf
	for _, move := range moves {
		g.Place(move, m.player)
		value := m.minimax(g, 0, false, alpha, scoreInf)
		g.Clear(move)

		if value > bestValue {
			best, bestValue = move, value
		}
		if m.prune && value > alpha {
			alpha = value
		}
	}
	m.complete()

	log.Debug().Msgf("Minimax %v chose %v with value %d", m.player, best, bestValue)
	return best, bestValue, nil
}

// ScoreMoves returns the exact minimax value of every legal move in row-major
// order. Each move is searched with a full window.
func (m *Minimax) ScoreMoves(g *game.Game) ([]float64, error) {
	if g.IsOver() {
		return nil, game.ErrGameOver
	}
	var buf [game.Cells]game.Move
	moves := g.AppendLegalMoves(buf[:0])
	if len(moves) == 0 {
		return nil, game.ErrNoLegalMoves
	}

	m.metrics.Start(m.depthLimit)
	scores := make([]float64, len(moves))
	for i, move := range moves {
		g.Place(move, m.player)
		scores[i] = float64(m.minimax(g, 0, false, -scoreInf, scoreInf))
		g.Clear(move)
	}
	m.complete()
	return scores, nil
}

func (m *Minimax) complete() {
	size := 0
	if m.table != nil {
		size = m.table.Len()
	}
	m.last = m.metrics.Complete(size)
	if m.last.Nodes > 0 {
		log.Debug().Msgf("Searched %d nodes in %v, table hit rate %.2f over %d probes, table size %d",
			m.last.Nodes, m.last.Duration, m.last.HitRate(), m.last.Probes, m.last.TableSize)
	}
}

// remaining is the look-ahead left below a node at the given depth.
func (m *Minimax) remaining(g *game.Game, depth int) int {
	if m.depthLimit > 0 {
		return m.depthLimit - depth
	}
	empty := 0
	for _, c := range g.Serialize() {
		if c == game.Empty {
			empty++
		}
	}
	return empty
}

func (m *Minimax) minimax(g *game.Game, depth int, maximizing bool, alpha, beta int) int {
	m.metrics.AddNode()

	// Terminal positions
	if g.HasWinner(m.player) {
		return WinScore - depth
	}
	if g.HasWinner(m.opponent) {
		return -WinScore + depth
	}
	if g.IsFull() {
		return 0
	}
	if m.depthLimit > 0 && depth >= m.depthLimit {
		return m.evaluate(g, m.player)
	}

	state := g.Serialize()
	remaining := m.remaining(g, depth)
	alphaOrig := alpha
	if m.table != nil {
		entry, ok := m.table.Probe(state, maximizing, depth, remaining)
		m.metrics.AddProbe(ok)
		if ok {
			switch entry.Bound {
			case Exact:
				return entry.Score
			case LowerBound:
				alpha = max(alpha, entry.Score)
			case UpperBound:
				beta = min(beta, entry.Score)
			}
			if alpha >= beta {
				return entry.Score
			}
		}
	}
	betaOrig := beta

	var buf [game.Cells]game.Move
	moves := g.AppendLegalMoves(buf[:0])

	mover, best := m.opponent, scoreInf
	if maximizing {
		mover, best = m.player, -scoreInf
	}
	for _, move := range moves {
		childAlpha, childBeta := alpha, beta
		if !m.prune {
			childAlpha, childBeta = -scoreInf, scoreInf
		}

		g.Place(move, mover)
		score := m.minimax(g, depth+1, !maximizing, childAlpha, childBeta)
		g.Clear(move)

		if maximizing {
			best = max(best, score)
			alpha = max(alpha, best)
		} else {
			best = min(best, score)
			beta = min(beta, best)
		}
		if m.prune && beta <= alpha {
			break
		}
	}

	if m.table != nil {
		m.table.Store(state, maximizing, Entry{
			Score: best,
			Bound: classify(best, alphaOrig, betaOrig),
			Depth: remaining,
			Ply:   depth,
		})
	}
	return best
}
