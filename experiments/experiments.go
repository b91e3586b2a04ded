package experiments

import (
	"fmt"
	"pigeons/board"
	"pigeons/engine"
	"pigeons/experiments/metrics"
	"pigeons/game"
	"sync"

	"github.com/rs/zerolog/log"
)

// Config describes a batch of playouts. Every matchup plays Games matches,
// seeded Seed, Seed+1, ... so a batch can be replayed exactly.
type Config struct {
	Name     string
	Games    int // Per matchup
	Seed     uint64
	Workers  int
	Rules    *game.Rules
	OutDir   string // No CSV output when empty
	Matchups []metrics.Matchup
}

// AllMatchups pairs every pigeon class with every human class.
func AllMatchups() []metrics.Matchup {
	var matchups []metrics.Matchup
	for _, pc := range game.Classes {
		for _, hc := range game.Classes {
			if pc.Faction != board.Pigeon || hc.Faction != board.Human {
				continue
			}
			matchups = append(matchups, metrics.Matchup{
				ID:          len(matchups) + 1,
				PigeonClass: pc.ID,
				HumanClass:  hc.ID,
			})
		}
	}
	return matchups
}

type job struct {
	id      int
	seed    uint64
	matchup metrics.Matchup
}

// RunPlayouts plays the batch on a pool of workers and returns one record per
// match, ordered by id.
func RunPlayouts(cfg Config) ([]metrics.MatchRecord, error) {
	if cfg.Games < 1 {
		return nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Rules == nil {
		cfg.Rules = game.NewStandardRules()
	}
	if len(cfg.Matchups) == 0 {
		cfg.Matchups = AllMatchups()
	}
	if cfg.Name == "" {
		cfg.Name = "playouts"
	}

	total := cfg.Games * len(cfg.Matchups)
	jobs := make(chan job)
	records := make([]metrics.MatchRecord, total)

	log.Info().Msgf("starting %s: %d matchups x %d games on %d workers...", cfg.Name, len(cfg.Matchups), cfg.Games, cfg.Workers)

	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				winner, metric := runMatch(cfg.Rules, j)
				records[j.id-1] = metrics.MatchRecord{ID: j.id, Matchup: j.matchup.ID, MatchMetric: metric}
				log.Debug().Msgf("completed game %d of %d with winner: %q", j.id, total, winner)
			}
		}()
	}

	id := 0
	for _, mu := range cfg.Matchups {
		for i := 0; i < cfg.Games; i++ {
			id++
			jobs <- job{id: id, seed: cfg.Seed + uint64(id-1), matchup: mu}
		}
	}
	close(jobs)
	wg.Wait()

	logSummary(cfg.Name, records)

	if cfg.OutDir == "" {
		return records, nil
	}
	writer, err := metrics.NewWriter(cfg.OutDir, cfg.Name)
	if err != nil {
		return records, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteMatchups(cfg.Matchups); err != nil {
		return records, fmt.Errorf("failed to store matchups: %w", err)
	}
	log.Info().Msg("stored matchups")
	if err := writer.WriteMatchRecords(records); err != nil {
		return records, fmt.Errorf("failed to write match records: %w", err)
	}
	log.Info().Msgf("stored match records in %s", writer.Dir())
	return records, nil
}

func runMatch(rules *game.Rules, j job) (string, metrics.MatchMetric) {
	p := engine.LocalPlayout(j.seed, j.matchup.PigeonClass, j.matchup.HumanClass,
		engine.WithRules(rules),
		engine.WithCollector(metrics.NewCollector()),
	)
	return p.Run()
}

func logSummary(name string, records []metrics.MatchRecord) {
	wins := map[string]int{}
	rejected, accepted := 0, 0
	for _, r := range records {
		wins[r.Winner]++
		rejected += r.Rejected
		accepted += r.Accepted
	}
	log.Info().
		Int("pigeon_wins", wins[board.Pigeon.String()]).
		Int("human_wins", wins[board.Human.String()]).
		Int("unfinished", wins[""]).
		Int("accepted", accepted).
		Int("rejected", rejected).
		Msgf("completed %s", name)
}
