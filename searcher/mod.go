package searcher

// Scores are from the engine's perspective. A win found at search depth d is
// worth WinScore-d and a loss -WinScore+d, so faster wins and slower losses
// are preferred. Draws are worth 0.
const WinScore = 10

const scoreInf = 1 << 20
