package experiments

import (
	"context"
	"testing"

	"threes/config"
	"threes/experiments/metrics"
	"threes/game"

	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Search.Depth = 1
	cfg.Search.ParallelDepth = 1
	cfg.Search.Seed = 5
	cfg.Game.MaxMoves = 20
	cfg.Game.Seed = 5
	cfg.Experiment.Games = 2
	return cfg
}

func TestRun(t *testing.T) {
	configs := []metrics.AgentConfig{
		{ID: 0, Random: true},
		{ID: 1, Depth: 1, ParallelDepth: 1, Weights: game.Weights{FreeCell: 1}},
	}

	summaries, err := Run(context.Background(), "test", testConfig(), configs)

	require.NoError(t, err, "Experiment should run")
	require.Len(t, summaries, 2, "Every agent should be summarised")
	for i, s := range summaries {
		require.Equal(t, configs[i].ID, s.Agent, "Summaries should follow config order")
		require.Equal(t, 2, s.Games, "Every agent should play every game")
		require.Positive(t, s.MeanMoves, "Games should have moves")
		require.LessOrEqual(t, s.MeanMoves, 20.0, "Games should respect the move cap")
	}
}

func TestRunDepthExperiment(t *testing.T) {
	cfg := testConfig()
	cfg.Search.Depth = 2
	cfg.Experiment.Games = 1

	summaries, err := RunDepthExperiment(context.Background(), cfg)

	require.NoError(t, err, "Experiment should run")
	require.Len(t, summaries, 2, "One agent per depth")
	require.Equal(t, 2, summaries[1].Agent, "Agents should be numbered by depth")
}

func TestRunThroughputExperiment(t *testing.T) {
	cfg := testConfig()
	cfg.Search.Depth = 2

	results, err := RunThroughputExperiment(context.Background(), cfg)

	require.NoError(t, err, "Experiment should run")
	require.Len(t, results, 2, "One result per parallel depth")
	require.Equal(t, 1.0, results[0].Speedup, "Sequential search is the baseline")
	for _, r := range results {
		require.Equal(t, 2, r.Searches, "Every position should be searched")
		require.Positive(t, r.NodesPerSec, "Throughput should be measured")
	}
}

func TestRunFailsOnBadGame(t *testing.T) {
	cfg := testConfig()
	cfg.Game.BoardSize = 1

	_, err := Run(context.Background(), "test", cfg, []metrics.AgentConfig{{ID: 0, Random: true}})

	require.ErrorIs(t, err, game.ErrEmptyBoard, "Dealing errors should surface")
}
