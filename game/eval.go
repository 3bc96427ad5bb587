package game

// Evaluate scores a non-terminal position from player's perspective. Positive
// values favour player.
type Evaluate func(g *Game, player Cell) int

// EvaluateLines sums the potential of the 8 lines: a line holding two of the
// player's marks and none of the opponent's is worth 5, a single mark 1, and
// the same counts for the opponent are worth -5 and -1. Contested or empty
// lines score 0.
func EvaluateLines(g *Game, player Cell) int {
	opponent := player.Opponent()
	score := 0
	for _, line := range lines {
		own, opp := 0, 0
		for _, i := range line {
			switch g.board[i] {
			case player:
				own++
			case opponent:
				opp++
			}
		}
		score += lineScore(own, opp)
	}
	return score
}

func lineScore(own, opp int) int {
	switch {
	case opp == 0 && own == 2:
		return 5
	case opp == 0 && own == 1:
		return 1
	case own == 0 && opp == 2:
		return -5
	case own == 0 && opp == 1:
		return -1
	}
	return 0
}
