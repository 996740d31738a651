package experiments

import (
	"context"
	"fmt"
	"time"

	"threes/config"
	"threes/engine"
	"threes/game"
	"threes/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

type Throughput struct {
	ParallelDepth int
	Searches      int
	MeanDuration  time.Duration
	NodesPerSec   float64
	Speedup       float64 // Against the sequential search
}

// RunThroughputExperiment times the same searches at every parallel depth up
// to the configured one
func RunThroughputExperiment(ctx context.Context, cfg config.Config) ([]Throughput, error) {
	rng := rand.New(rand.NewSource(engine.DeriveSeeds(cfg.Game.Seed + 1).Deal))
	states := make([]game.State, cfg.Experiment.Games)
	for i := range states {
		state, err := game.NewGame(cfg.Game.BoardSize, rng)
		if err != nil {
			return nil, fmt.Errorf("dealing position %d: %w", i+1, err)
		}
		states[i] = state
	}

	log.Info().Msg("starting throughput experiment...")

	results := []Throughput{}
	for parallel := 0; parallel <= cfg.Search.ParallelDepth; parallel++ {
		s := searcher.New(
			searcher.WithDepth(cfg.Search.Depth),
			searcher.WithParallelDepth(parallel),
			searcher.WithWeights(cfg.Search.Weights),
			searcher.WithSeed(cfg.Search.Seed+1),
			searcher.WithMetrics(searcher.NewMetricsCollector()),
		)

		durations := make([]float64, 0, len(states))
		nodes := 0.0
		for _, state := range states {
			_, metric, err := s.SearchWithMetrics(ctx, state)
			if err != nil {
				return nil, fmt.Errorf("search at parallel depth %d: %w", parallel, err)
			}
			durations = append(durations, metric.Duration.Seconds())
			nodes += float64(metric.Nodes)
		}

		mean := stat.Mean(durations, nil)
		result := Throughput{
			ParallelDepth: parallel,
			Searches:      len(states),
			MeanDuration:  time.Duration(mean * float64(time.Second)),
			Speedup:       1,
		}
		if total := mean * float64(len(durations)); total > 0 {
			result.NodesPerSec = nodes / total
		}
		if len(results) > 0 && mean > 0 {
			result.Speedup = results[0].MeanDuration.Seconds() / mean
		}
		results = append(results, result)

		log.Info().Msgf("parallel depth %d: mean search %v, %.0f nodes/s, speedup %.2fx",
			parallel, result.MeanDuration, result.NodesPerSec, result.Speedup)
	}

	log.Info().Msg("completed throughput experiment")
	return results, nil
}
