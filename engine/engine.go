package engine

import "pigeons/experiments/metrics"

type Engine interface {
	// Run plays a match till there's a winner or the turn cap is reached
	Run() (winner string, matchMetric metrics.MatchMetric)
}
