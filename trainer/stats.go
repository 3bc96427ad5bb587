package trainer

import "tictactoe/game"

// Episode results as stored in the history.
const (
	Loss = -1
	Draw = 0
	Win  = 1
)

func resultFor(outcome game.Outcome, player game.Cell) int {
	switch outcome.Winner() {
	case player:
		return Win
	case game.Empty:
		return Draw
	}
	return Loss
}

func (t *Trainer) record(result int) {
	switch result {
	case Win:
		t.wins++
	case Draw:
		t.draws++
	case Loss:
		t.losses++
	}
	t.history = append(t.history, result)
}

func (t *Trainer) Wins() int   { return t.wins }
func (t *Trainer) Draws() int  { return t.draws }
func (t *Trainer) Losses() int { return t.losses }

// History returns the result of every episode played so far.
func (t *Trainer) History() []int {
	return append([]int(nil), t.history...)
}

// Rates are outcome frequencies in [0,1].
type Rates struct {
	Win  float64
	Draw float64
	Loss float64
}

func rates(results []int) Rates {
	if len(results) == 0 {
		return Rates{}
	}
	var r Rates
	for _, result := range results {
		switch result {
		case Win:
			r.Win++
		case Draw:
			r.Draw++
		case Loss:
			r.Loss++
		}
	}
	n := float64(len(results))
	return Rates{Win: r.Win / n, Draw: r.Draw / n, Loss: r.Loss / n}
}

// WindowRates returns the outcome rates of episodes [from, to). The bounds are
// clamped to the history.
func (t *Trainer) WindowRates(from, to int) Rates {
	from = min(max(from, 0), len(t.history))
	to = min(max(to, from), len(t.history))
	return rates(t.history[from:to])
}

// RollingRates returns the outcome rates of the trailing window ending at each
// episode, starting with the first full window.
func (t *Trainer) RollingRates(window int) []Rates {
	if window <= 0 || window > len(t.history) {
		return nil
	}
	var wins, draws, losses int
	count := func(result, delta int) {
		switch result {
		case Win:
			wins += delta
		case Draw:
			draws += delta
		case Loss:
			losses += delta
		}
	}

	n := float64(window)
	out := make([]Rates, 0, len(t.history)-window+1)
	for i, result := range t.history {
		count(result, 1)
		if i >= window {
			count(t.history[i-window], -1)
		}
		if i >= window-1 {
			out = append(out, Rates{
				Win:  float64(wins) / n,
				Draw: float64(draws) / n,
				Loss: float64(losses) / n,
			})
		}
	}
	return out
}
