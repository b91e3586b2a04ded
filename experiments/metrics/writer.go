package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type MatchRecord struct {
	ID      int
	Matchup int // Matchup.ID
	MatchMetric
}

// Matchup pairs a pigeon class with a human class.
type Matchup struct {
	ID          int
	PigeonClass string
	HumanClass  string
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped folder for one run under root/name.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteMatchups(matchups []Matchup) error {
	rows := make([][]string, 0, len(matchups))
	for _, mu := range matchups {
		rows = append(rows, []string{
			strconv.Itoa(mu.ID),
			mu.PigeonClass,
			mu.HumanClass,
		})
	}
	return w.write("matchups.csv", []string{"id", "pigeon_class", "human_class"}, rows)
}

func (w *Writer) WriteMatchRecords(records []MatchRecord) error {
	header := []string{
		"id", "matchup", "seed", "starting_side", "winner", "rounds", "turns",
		"accepted", "rejected", "nests", "pigeon_straw", "human_coin",
		"start_time", "end_time", "duration",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			strconv.Itoa(r.Matchup),
			strconv.FormatUint(r.Seed, 10),
			r.StartingSide,
			r.Winner,
			strconv.Itoa(r.Rounds),
			strconv.Itoa(r.Turns),
			strconv.Itoa(r.Accepted),
			strconv.Itoa(r.Rejected),
			strconv.Itoa(r.Nests),
			strconv.Itoa(r.PigeonStraw),
			strconv.Itoa(r.HumanCoin),
			r.StartTime.Format(time.RFC3339),
			r.EndTime.Format(time.RFC3339),
			r.Duration.String(),
		})
	}
	return w.write("match_records.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
