package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"tictactoe/agent"
	"tictactoe/config"
	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
	"tictactoe/game"
	"tictactoe/meta"
	"tictactoe/searcher"
	"tictactoe/trainer"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML run configuration, defaults are used when empty")
	load := flag.String("load", "", "Existing Q-table to evaluate instead of training a new one")
	seed := flag.Uint64("seed", 0, "Random seed, overrides the configuration when non-zero")
	out := flag.String("out", "", "CSV output directory, overrides the configuration when set")
	search := flag.Bool("search", false, "Run the minimax search experiment instead of training")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load configuration")
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *out != "" {
		cfg.OutputDir = *out
	}

	if *search {
		if err := searchExperiment(cfg); err != nil {
			log.Fatal().Err(err).Msg("search experiment failed")
		}
		return
	}
	if err := run(cfg, *load); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func searchExperiment(cfg config.Config) error {
	var writer *metrics.Writer
	if cfg.OutputDir != "" {
		var err error
		if writer, err = metrics.NewWriter(cfg.OutputDir, "search"); err != nil {
			return err
		}
	}
	depths := append([]int{0}, meta.CURRICULUM_DEPTHS...)
	_, err := experiments.RunSearchExperiment(depths, cfg.Evaluation.Games, cfg.Seed, writer)
	return err
}

func run(cfg config.Config, load string) error {
	side := cfg.Player()
	learner := agent.NewQLearner(side,
		agent.WithLearningRate(cfg.Learner.LearningRate),
		agent.WithDiscountRate(cfg.Learner.DiscountRate),
		agent.WithEpsilon(cfg.Learner.Epsilon),
		agent.WithSeed(cfg.Seed),
	)

	modelPath := cfg.ModelPath
	if load == "" {
		if err := train(cfg, learner); err != nil {
			return err
		}
	} else {
		if err := learner.Load(load); err != nil {
			return fmt.Errorf("failed to load model: %w", err)
		}
		modelPath = load
		log.Info().Msgf("loaded %d q-values over %d states from %s", learner.Table().Len(), learner.Table().States(), load)
	}
	learner.SetEpsilon(0)

	policy, err := perfectPolicy(cfg)
	if err != nil {
		return err
	}

	evaluation := experiments.Evaluation{
		Opponents: opponents(cfg),
		Games:     cfg.Evaluation.Games,
		Policy:    policy,
		Seed:      cfg.Seed + 1,
	}

	var results []experiments.Result
	if cfg.Evaluation.Workers > 1 {
		// Each worker evaluates its own copy of the trained table
		newAgent := func(worker int) (agent.Agent, error) {
			q := agent.NewQLearner(side, agent.WithEpsilon(0), agent.WithSeed(cfg.Seed+uint64(worker)))
			if err := q.Load(modelPath); err != nil {
				return nil, err
			}
			return q, nil
		}
		results, err = evaluation.RunParallel(context.Background(), cfg.Evaluation.Workers, side, newAgent)
	} else {
		if cfg.OutputDir != "" {
			evaluation.Writer, err = metrics.NewWriter(cfg.OutputDir, "evaluation")
			if err != nil {
				return err
			}
		}
		results, err = evaluation.Run(learner, side)
	}
	if err != nil {
		return err
	}

	printSummary(side, results)
	return nil
}

func train(cfg config.Config, learner *agent.QLearner) error {
	options := []trainer.Option{
		trainer.WithRewards(trainer.Rewards(cfg.Rewards)),
		trainer.WithEpsilonDecay(cfg.Learner.EpsilonDecay),
	}
	if cfg.Learner.AfterstateBootstrap {
		options = append(options, trainer.WithAfterstateBootstrap())
	}
	t := trainer.New(options...)

	side := learner.Player()
	var stages []string
	for i, stage := range cfg.Curriculum {
		var opponent agent.Agent
		name := stage.Opponent
		switch stage.Opponent {
		case "random":
			opponent = agent.NewRandom(cfg.Seed + uint64(i) + 1)
		case "minimax":
			opponent = searcher.NewMinimax(side.Opponent(), searcher.WithDepthLimit(stage.Depth))
			name = fmt.Sprintf("minimax-%d", stage.Depth)
		}

		log.Info().Msgf("starting stage %d of %d: %d episodes against %s...", i+1, len(cfg.Curriculum), stage.Episodes, name)
		summary, err := t.Train(learner, opponent, stage.Episodes)
		if err != nil {
			return fmt.Errorf("stage %s: %w", name, err)
		}
		if err := learner.Save(cfg.ModelPath); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}
		log.Info().Msgf("completed stage %s: %v, epsilon %.4f", name, summary, learner.Epsilon())

		for range stage.Episodes {
			stages = append(stages, name)
		}
	}
	log.Info().Msgf("training done: %d wins, %d draws, %d losses", t.Wins(), t.Draws(), t.Losses())

	if cfg.OutputDir == "" {
		return nil
	}
	return writeHistory(cfg, t, stages)
}

func writeHistory(cfg config.Config, t *trainer.Trainer, stages []string) error {
	writer, err := metrics.NewWriter(cfg.OutputDir, "training")
	if err != nil {
		return err
	}

	history := t.History()
	records := make([]metrics.TrainingRecord, len(history))
	for i, result := range history {
		records[i] = metrics.TrainingRecord{Episode: i + 1, Stage: stages[i], Result: result}
	}
	if err := writer.WriteTrainingHistory(records); err != nil {
		return err
	}

	window := cfg.RollingWindow
	if window == 0 {
		window = max(len(history)/10, 1)
	}
	rolling := t.RollingRates(window)
	rates := make([]metrics.RateRecord, len(rolling))
	for i, r := range rolling {
		rates[i] = metrics.RateRecord{Episode: i + window, Win: r.Win, Draw: r.Draw, Loss: r.Loss}
	}
	if err := writer.WriteRollingRates(rates); err != nil {
		return err
	}
	log.Info().Msgf("stored training history in %s", writer.Dir())
	return nil
}

// perfectPolicy loads the policy table, building and saving it when missing.
func perfectPolicy(cfg config.Config) (agent.PolicyTable, error) {
	if cfg.PolicyPath == "" {
		return nil, nil
	}
	policy, err := agent.LoadPolicy(cfg.PolicyPath)
	if err == nil {
		return policy, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	log.Info().Msgf("no policy at %s, building one...", cfg.PolicyPath)
	policy, err = agent.BuildPolicy()
	if err != nil {
		return nil, err
	}
	if err := agent.SavePolicy(cfg.PolicyPath, policy); err != nil {
		return nil, err
	}
	return policy, nil
}

func opponents(cfg config.Config) []metrics.AgentConfig {
	configs := make([]metrics.AgentConfig, len(cfg.Evaluation.Opponents))
	for i, o := range cfg.Evaluation.Opponents {
		configs[i] = metrics.AgentConfig{ID: i + 1, Kind: o.Kind, Depth: o.Depth}
	}
	return configs
}

func printSummary(side game.Cell, results []experiments.Result) {
	output := termenv.NewOutput(os.Stdout)
	win := output.Color("#22c55e")
	draw := output.Color("#3b82f6")
	loss := output.Color("#ef4444")

	fmt.Fprintln(output, output.String(fmt.Sprintf("Results of the Q-learning agent playing %v", side)).Bold())
	for _, r := range results {
		name := r.Opponent.Kind
		if r.Opponent.Kind == experiments.Minimax && r.Opponent.Depth > 0 {
			name = fmt.Sprintf("%s (depth %d)", name, r.Opponent.Depth)
		}
		fmt.Fprintf(output, "  %-20s %s  %s  %s\n", name,
			output.String(fmt.Sprintf("%4d wins", r.Tally.Wins)).Foreground(win),
			output.String(fmt.Sprintf("%4d draws", r.Tally.Draws)).Foreground(draw),
			output.String(fmt.Sprintf("%4d losses", r.Tally.Losses)).Foreground(loss),
		)
	}
}
