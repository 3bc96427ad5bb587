package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type AgentConfig struct {
	ID    int
	Kind  string // random, perfect or minimax
	Depth int    // minimax depth limit, 0 for full depth
}

type GameRecord struct {
	ID       int
	Opponent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game   int // GameRecord.ID
	Step   int
	Player string
	SearchMetric
}

type TrainingRecord struct {
	Episode int
	Stage   string
	Result  int // 1 win, 0 draw, -1 loss
}

type RateRecord struct {
	Episode int // last episode of the window
	Win     float64
	Draw    float64
	Loss    float64
}

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp>-<run id> and writes every file
// there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	run := uuid.NewString()[:8]
	baseDir := filepath.Join(root, name, timestamp+"-"+run)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) write(file, what string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", what, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", what, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", what, err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Kind,
			strconv.Itoa(config.Depth),
		})
	}
	return w.write("agent_configs.csv", "agent configs", []string{"id", "kind", "depth"}, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Opponent),
			record.Winner,
			strconv.Itoa(record.Moves),
			record.StartTime.Format(time.RFC3339Nano),
			record.EndTime.Format(time.RFC3339Nano),
			record.Duration.String(),
		})
	}
	header := []string{"id", "opponent", "winner", "moves", "start_time", "end_time", "duration"}
	return w.write("game_records.csv", "game records", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Player,
			strconv.Itoa(record.DepthLimit),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Probes),
			strconv.Itoa(record.Hits),
			strconv.Itoa(record.TableSize),
		})
	}
	header := []string{"game", "step", "player", "depth_limit", "duration", "nodes", "probes", "hits", "table_size"}
	return w.write("move_records.csv", "move records", header, rows)
}

func (w *Writer) WriteTrainingHistory(records []TrainingRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Episode),
			record.Stage,
			strconv.Itoa(record.Result),
		})
	}
	return w.write("training_history.csv", "training history", []string{"episode", "stage", "result"}, rows)
}

func (w *Writer) WriteRollingRates(records []RateRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Episode),
			strconv.FormatFloat(record.Win, 'f', 4, 64),
			strconv.FormatFloat(record.Draw, 'f', 4, 64),
			strconv.FormatFloat(record.Loss, 'f', 4, 64),
		})
	}
	header := []string{"episode", "win_rate", "draw_rate", "loss_rate"}
	return w.write("rolling_rates.csv", "rolling rates", header, rows)
}
