package main

import (
	"flag"
	"os"
	"pigeons/experiments"
	"pigeons/game"
	"pigeons/logger"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

func main() {
	experiment := flag.String("experiment", "playouts", "Experiment to run: playouts or throughput")
	games := flag.Int("games", 10, "Number of games per matchup")
	seed := flag.Uint64("seed", 1, "Seed of the first game")
	workers := flag.Int("workers", 4, "Number of goroutines playing games")
	workerCounts := flag.String("worker-counts", "1,2,4,8", "Comma separated worker counts for the throughput experiment")
	rulesPath := flag.String("rules", "", "YAML file overriding the standard rules")
	out := flag.String("out", "experiments", "Directory for CSV results, empty to skip")
	logLevel := flag.String("log-level", "info", "Log level")
	pretty := flag.Bool("pretty", true, "Human readable console logs")
	flag.Parse()

	if err := logger.Setup(*logLevel, *pretty); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	rules := game.NewStandardRules()
	if *rulesPath != "" {
		var err error
		rules, err = game.LoadRules(*rulesPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load rules")
		}
	}

	switch *experiment {
	case "playouts":
		_, err := experiments.RunPlayouts(experiments.Config{
			Games:   *games,
			Seed:    *seed,
			Workers: *workers,
			Rules:   rules,
			OutDir:  *out,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("playouts failed")
		}
	case "throughput":
		counts, err := parseCounts(*workerCounts)
		if err != nil {
			log.Fatal().Err(err).Msg("bad worker counts")
		}
		if _, err := experiments.RunThroughputExperiment(rules, *games, *seed, counts); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
	default:
		log.Error().Msgf("unknown experiment %q", *experiment)
		os.Exit(2)
	}
}

func parseCounts(s string) ([]int, error) {
	var counts []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return counts, nil
}
