// meta/meta.go
package meta

// LEARNING_RATE defines the default Q-learning step size (alpha).
const LEARNING_RATE = 0.1

// DISCOUNT_RATE defines the default Q-learning discount (gamma).
const DISCOUNT_RATE = 0.9

// EPSILON defines the default exploration rate.
const EPSILON = 0.1

// EPSILON_DECAY defines the per-episode exploration decay during training.
const EPSILON_DECAY = 0.99995

// Training rewards from the learner's perspective.
const (
	STEP_REWARD = 0.0
	WIN_REWARD  = 100.0
	DRAW_REWARD = 50.0
	LOSS_REWARD = -100.0
)

// EPISODES defines the number of training episodes per curriculum stage.
const EPISODES = 100_000

// CURRICULUM_DEPTHS defines the minimax depth limits faced after the random
// opponent stage.
var CURRICULUM_DEPTHS = []int{1, 2, 4, 6, 8, 10}

// EVALUATION_GAMES defines the number of games played against each opponent
// during evaluation.
const EVALUATION_GAMES = 100

// MODEL_PATH defines where the trained Q-table is saved.
const MODEL_PATH = "models/model.gob"

// POLICY_PATH defines where the perfect policy table is saved.
const POLICY_PATH = "models/perfect_policy.gob"
