package experiments

import (
	"context"
	"fmt"

	"threes/config"
	"threes/engine"
	"threes/experiments/metrics"
	"threes/game"
	"threes/searcher"
	"threes/searcher/agent"

	"github.com/rs/zerolog/log"
)

var weightConfigs = []metrics.AgentConfig{
	{ID: 1, Depth: 3, ParallelDepth: 2, Weights: game.DefaultWeights()},
	{ID: 2, Depth: 3, ParallelDepth: 2, Weights: game.Weights{Board: 0.1, FreeCell: 0.9}},
	{ID: 3, Depth: 3, ParallelDepth: 2, Weights: game.Weights{Board: 0.39, FreeCell: 0.47, Matchable: 0.14}},
	{ID: 4, Depth: 3, ParallelDepth: 2, Weights: game.Weights{FreeCell: 1}},
}

// RunWeightsExperiment compares evaluator weightings against a random baseline
func RunWeightsExperiment(ctx context.Context, cfg config.Config) ([]metrics.Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Random: true}
	return Run(ctx, "weights", cfg, append([]metrics.AgentConfig{baseline}, weightConfigs...))
}

// RunDepthExperiment compares search depths using the configured weights
func RunDepthExperiment(ctx context.Context, cfg config.Config) ([]metrics.Summary, error) {
	var configs []metrics.AgentConfig
	for depth := 1; depth <= cfg.Search.Depth; depth++ {
		configs = append(configs, metrics.AgentConfig{
			ID:            depth,
			Depth:         depth,
			ParallelDepth: min(depth, cfg.Search.ParallelDepth),
			Weights:       cfg.Search.Weights,
		})
	}
	return Run(ctx, "depth", cfg, configs)
}

// Run plays cfg.Experiment.Games games per agent config. Game i is dealt from
// the same seed for every agent, so agents face the same openings.
func Run(ctx context.Context, name string, cfg config.Config, configs []metrics.AgentConfig) ([]metrics.Summary, error) {
	games := cfg.Experiment.Games
	records := []metrics.GameRecord{}
	count := 0

	log.Info().Msgf("starting %s experiment...", name)

	for ci, agentConfig := range configs {
		log.Info().Msgf("starting agent %d of %d with config %+v...", ci+1, len(configs), agentConfig)

		for i := 0; i < games; i++ {
			seed := cfg.Game.Seed + uint64(i) + 1
			gameMetric, err := runGame(ctx, cfg, agentConfig, seed)
			if err != nil {
				return nil, fmt.Errorf("%s experiment agent %d game %d: %w", name, agentConfig.ID, i+1, err)
			}
			count++
			records = append(records, metrics.GameRecord{ID: count, Agent: agentConfig.ID, GameMetric: gameMetric})

			log.Info().Msgf("completed agent %d game %d of %d with score %.0f after %d moves",
				agentConfig.ID, i+1, games, gameMetric.Score, gameMetric.TotalMoves)
		}
	}

	summaries := make([]metrics.Summary, 0, len(configs))
	for _, agentConfig := range configs {
		summary := metrics.Summarize(agentConfig.ID, records)
		summaries = append(summaries, summary)
		log.Info().
			Int("agent", summary.Agent).
			Int("games", summary.Games).
			Float64("mean_score", summary.MeanScore).
			Float64("std_score", summary.StdScore).
			Float64("mean_moves", summary.MeanMoves).
			Float64("best_score", summary.BestScore).
			Int("max_tile", summary.MaxTile).
			Msg("agent summary")
	}

	log.Info().Msgf("completed %s experiment", name)
	return summaries, nil
}

// runGame plays a single game with one agent and returns its metrics
func runGame(ctx context.Context, cfg config.Config, agentConfig metrics.AgentConfig, seed uint64) (metrics.GameMetric, error) {
	a := createAgent(agentConfig, engine.DeriveSeeds(seed).Agent)
	e, err := engine.NewLocalGame(cfg.Game.BoardSize, a, seed, cfg.Game.MaxMoves)
	if err != nil {
		return metrics.GameMetric{}, err
	}
	gameMetric, _, err := e.Run(ctx)
	return gameMetric, err
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(seed)
	}
	return agent.NewSearchAgent(searcher.New(
		searcher.WithDepth(config.Depth),
		searcher.WithParallelDepth(config.ParallelDepth),
		searcher.WithWeights(config.Weights),
		searcher.WithSeed(seed),
	))
}
