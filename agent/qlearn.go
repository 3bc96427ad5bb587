package agent

import (
	"fmt"
	"time"

	"tictactoe/game"
	"tictactoe/meta"

	"golang.org/x/exp/rand"
)

type QOption func(q *QLearner)

func WithLearningRate(alpha float64) QOption {
	return func(q *QLearner) {
		q.alpha = alpha
	}
}

func WithDiscountRate(gamma float64) QOption {
	return func(q *QLearner) {
		q.gamma = gamma
	}
}

func WithEpsilon(epsilon float64) QOption {
	return func(q *QLearner) {
		q.epsilon = epsilon
	}
}

func WithSeed(seed uint64) QOption {
	return func(q *QLearner) {
		q.rng = rand.New(rand.NewSource(seed))
	}
}

// QLearner is an epsilon-greedy tabular Q-learning agent. It owns its table
// and is not safe for concurrent use.
type QLearner struct {
	player  game.Cell
	alpha   float64
	gamma   float64
	epsilon float64
	table   *QTable
	rng     *rand.Rand
	buf     [game.Cells]game.Move
}

func NewQLearner(player game.Cell, options ...QOption) *QLearner {
	mustBePlayer("q-learning", player)
	q := &QLearner{ // Default values
		player:  player,
		alpha:   meta.LEARNING_RATE,
		gamma:   meta.DISCOUNT_RATE,
		epsilon: meta.EPSILON,
		table:   NewQTable(),
	}
	for _, option := range options {
		option(q)
	}
	if q.rng == nil {
		q.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if q.alpha <= 0 || q.alpha > 1 {
		panic(fmt.Sprintf("learning rate must be in (0,1], got %v", q.alpha))
	}
	if q.gamma < 0 || q.gamma > 1 {
		panic(fmt.Sprintf("discount rate must be in [0,1], got %v", q.gamma))
	}
	if q.epsilon < 0 || q.epsilon > 1 {
		panic(fmt.Sprintf("epsilon must be in [0,1], got %v", q.epsilon))
	}
	return q
}

func (q *QLearner) Player() game.Cell { return q.player }

func (q *QLearner) Table() *QTable { return q.table }

func (q *QLearner) Epsilon() float64 { return q.epsilon }

// SetEpsilon sets the exploration rate, clamped to [0,1].
func (q *QLearner) SetEpsilon(epsilon float64) {
	q.epsilon = min(max(epsilon, 0), 1)
}

// DecayEpsilon multiplies the exploration rate by factor.
func (q *QLearner) DecayEpsilon(factor float64) {
	q.SetEpsilon(q.epsilon * factor)
}

// ChooseMove explores a uniformly random legal move with probability epsilon
// and otherwise plays the legal move with the highest value. Ties go to the
// first move in row-major order.
func (q *QLearner) ChooseMove(g *game.Game) (game.Move, error) {
	moves, err := legalMoves(g, &q.buf)
	if err != nil {
		return game.Move{}, err
	}
	if q.epsilon > 0 && q.rng.Float64() < q.epsilon {
		return pick(q.rng, moves), nil
	}

	state := g.Serialize()
	best, bestValue := moves[0], q.table.Value(state, moves[0])
	for _, m := range moves[1:] {
		if v := q.table.Value(state, m); v > bestValue {
			best, bestValue = m, v
		}
	}
	return best, nil
}

// Update applies the temporal-difference rule to the value of playing move in
// prev:
//
//	Q(prev,move) += alpha * (reward + gamma * max Q(next,.) - Q(prev,move))
//
// where the max runs over the moves recorded for next. A terminal update sets
// Q(prev,move) to reward.
func (q *QLearner) Update(prev game.State, move game.Move, reward float64, next game.State, terminal bool) {
	if terminal {
		q.table.set(prev, move, reward)
		return
	}
	current := q.table.Value(prev, move)
	target := reward + q.gamma*q.table.maxValue(next)
	q.table.set(prev, move, current+q.alpha*(target-current))
}
