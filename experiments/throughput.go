package experiments

import (
	"fmt"
	"pigeons/experiments/metrics"
	"pigeons/game"
	"time"

	"github.com/rs/zerolog/log"
)

// ThroughputResult is matches per second for one worker count.
type ThroughputResult struct {
	Workers       int
	Matches       int
	Elapsed       time.Duration
	MatchesPerSec float64
}

// RunThroughputExperiment replays the same batch with each worker count.
func RunThroughputExperiment(rules *game.Rules, games int, seed uint64, workerCounts []int) ([]ThroughputResult, error) {
	matchups := []metrics.Matchup{{ID: 1, PigeonClass: "guttersnipe", HumanClass: "uncle"}}
	results := make([]ThroughputResult, 0, len(workerCounts))

	log.Info().Msg("starting throughput experiment...")
	for _, workers := range workerCounts {
		start := time.Now()
		records, err := RunPlayouts(Config{
			Name:     fmt.Sprintf("throughput-%d", workers),
			Games:    games,
			Seed:     seed,
			Workers:  workers,
			Rules:    rules,
			Matchups: matchups,
		})
		if err != nil {
			return results, err
		}
		elapsed := time.Since(start)
		r := ThroughputResult{
			Workers:       workers,
			Matches:       len(records),
			Elapsed:       elapsed,
			MatchesPerSec: float64(len(records)) / elapsed.Seconds(),
		}
		results = append(results, r)
		log.Info().Msgf("workers=%d: %d matches in %s (%.1f/s)", workers, r.Matches, elapsed, r.MatchesPerSec)
	}
	log.Info().Msg("completed throughput experiment")
	return results, nil
}
