package engine

import (
	"tictactoe/experiments/metrics"
	"tictactoe/game"
)

type Engine interface {
	// Run plays one game to the end and returns its outcome
	Run() (game.Outcome, metrics.GameMetric, error)
}

var _ Engine = (*Match)(nil)
