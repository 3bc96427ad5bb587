package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/utils"

	"gopkg.in/yaml.v3"
)

// Stage is one opponent of the training curriculum.
type Stage struct {
	Opponent string `yaml:"opponent"` // random or minimax
	Depth    int    `yaml:"depth"`    // minimax depth limit, 0 for full depth
	Episodes int    `yaml:"episodes"`
}

type Learner struct {
	Player              string  `yaml:"player"`
	LearningRate        float64 `yaml:"learning_rate"`
	DiscountRate        float64 `yaml:"discount_rate"`
	Epsilon             float64 `yaml:"epsilon"`
	EpsilonDecay        float64 `yaml:"epsilon_decay"`
	AfterstateBootstrap bool    `yaml:"afterstate_bootstrap"`
}

type Rewards struct {
	Step float64 `yaml:"step"`
	Win  float64 `yaml:"win"`
	Draw float64 `yaml:"draw"`
	Loss float64 `yaml:"loss"`
}

type Opponent struct {
	Kind  string `yaml:"kind"` // random, perfect or minimax
	Depth int    `yaml:"depth"`
}

type Evaluation struct {
	Games     int        `yaml:"games"`
	Workers   int        `yaml:"workers"`
	Opponents []Opponent `yaml:"opponents"`
}

type Config struct {
	Seed          uint64     `yaml:"seed"`
	ModelPath     string     `yaml:"model_path"`
	PolicyPath    string     `yaml:"policy_path"`
	OutputDir     string     `yaml:"output_dir"` // CSV output, empty to disable
	RollingWindow int        `yaml:"rolling_window"`
	Learner       Learner    `yaml:"learner"`
	Rewards       Rewards    `yaml:"rewards"`
	Curriculum    []Stage    `yaml:"curriculum"`
	Evaluation    Evaluation `yaml:"evaluation"`
}

var (
	stageKinds    = []string{"random", "minimax"}
	opponentKinds = []string{"random", "perfect", "minimax"}
)

// Default trains against a random player and then against minimax players of
// growing depth, and evaluates against random, perfect and minimax players.
func Default() Config {
	curriculum := []Stage{{Opponent: "random", Episodes: meta.EPISODES}}
	for _, depth := range meta.CURRICULUM_DEPTHS {
		curriculum = append(curriculum, Stage{Opponent: "minimax", Depth: depth, Episodes: meta.EPISODES})
	}

	return Config{
		Seed:          1,
		ModelPath:     meta.MODEL_PATH,
		PolicyPath:    meta.POLICY_PATH,
		OutputDir:     "experiments",
		RollingWindow: meta.EPISODES / 10,
		Learner: Learner{
			Player:       "X",
			LearningRate: meta.LEARNING_RATE,
			DiscountRate: meta.DISCOUNT_RATE,
			Epsilon:      meta.EPSILON,
			EpsilonDecay: meta.EPSILON_DECAY,
		},
		Rewards: Rewards{
			Step: meta.STEP_REWARD,
			Win:  meta.WIN_REWARD,
			Draw: meta.DRAW_REWARD,
			Loss: meta.LOSS_REWARD,
		},
		Curriculum: curriculum,
		Evaluation: Evaluation{
			Games:   meta.EVALUATION_GAMES,
			Workers: 1,
			Opponents: []Opponent{
				{Kind: "random"},
				{Kind: "perfect"},
				{Kind: "minimax"},
			},
		},
	}
}

// Load reads a YAML configuration on top of the defaults. Unknown keys are
// rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Player returns the side of the learner.
func (c Config) Player() game.Cell {
	switch c.Learner.Player {
	case "X", "x":
		return game.X
	case "O", "o":
		return game.O
	}
	return game.Empty
}

func (c Config) Validate() error {
	if !c.Player().Valid() {
		return fmt.Errorf("learner player must be X or O, got %q", c.Learner.Player)
	}
	l := c.Learner
	if l.LearningRate <= 0 || l.LearningRate > 1 {
		return fmt.Errorf("learning rate must be in (0,1], got %v", l.LearningRate)
	}
	if l.DiscountRate < 0 || l.DiscountRate > 1 {
		return fmt.Errorf("discount rate must be in [0,1], got %v", l.DiscountRate)
	}
	if l.Epsilon < 0 || l.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0,1], got %v", l.Epsilon)
	}
	if l.EpsilonDecay <= 0 || l.EpsilonDecay > 1 {
		return fmt.Errorf("epsilon decay must be in (0,1], got %v", l.EpsilonDecay)
	}
	if c.ModelPath == "" {
		return fmt.Errorf("model path is required")
	}
	if c.RollingWindow < 0 {
		return fmt.Errorf("rolling window must not be negative, got %d", c.RollingWindow)
	}

	for i, s := range c.Curriculum {
		if utils.FindIndex(stageKinds, s.Opponent) < 0 {
			return fmt.Errorf("curriculum stage %d: unknown opponent %q", i+1, s.Opponent)
		}
		if s.Episodes <= 0 {
			return fmt.Errorf("curriculum stage %d: episodes must be positive, got %d", i+1, s.Episodes)
		}
		if s.Depth < 0 {
			return fmt.Errorf("curriculum stage %d: depth must not be negative, got %d", i+1, s.Depth)
		}
	}

	e := c.Evaluation
	if e.Games <= 0 {
		return fmt.Errorf("evaluation games must be positive, got %d", e.Games)
	}
	if e.Workers <= 0 {
		return fmt.Errorf("evaluation workers must be positive, got %d", e.Workers)
	}
	for i, o := range e.Opponents {
		if utils.FindIndex(opponentKinds, o.Kind) < 0 {
			return fmt.Errorf("evaluation opponent %d: unknown kind %q", i+1, o.Kind)
		}
		if o.Depth < 0 {
			return fmt.Errorf("evaluation opponent %d: depth must not be negative, got %d", i+1, o.Depth)
		}
		if o.Kind == "perfect" && c.PolicyPath == "" {
			return fmt.Errorf("evaluation opponent %d: perfect player needs a policy path", i+1)
		}
	}
	return nil
}
