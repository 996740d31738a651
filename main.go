package main

import (
	"context"
	"os"
	"time"

	"threes/config"
	"threes/engine"
	"threes/experiments"
	"threes/searcher"
	"threes/searcher/agent"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"lukechampine.com/frand"
)

var (
	configPath string
	seed       uint64
	depth      int
)

var rootCmd = &cobra.Command{
	Use:   "threes",
	Short: "Expectimax search for Threes",
	Long:  "Plays Threes with a depth-limited expectimax search and runs experiments comparing search settings.",
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one self-play game and log the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		gameSeed := cfg.Game.Seed
		if gameSeed == 0 {
			gameSeed = frand.Uint64n(1 << 32)
		}
		log.Info().Uint64("seed", gameSeed).Msg("random seed for this game")

		options := cfg.Search.SearchOptions()
		if cfg.Search.Seed == 0 {
			options = append(options, searcher.WithSeed(engine.DeriveSeeds(gameSeed).Agent))
		}
		var registry *prometheus.Registry
		if cfg.Search.Metrics {
			registry = prometheus.NewRegistry()
			collector, err := searcher.NewPrometheusCollector(registry)
			if err != nil {
				return err
			}
			options = append(options, searcher.WithMetrics(collector))
		}
		s := searcher.New(options...)

		e, err := engine.NewLocalGame(cfg.Game.BoardSize, agent.NewSearchAgent(s), gameSeed, cfg.Game.MaxMoves)
		if err != nil {
			return err
		}
		gameMetric, moveMetrics, err := e.Run(cmd.Context())
		if err != nil {
			return err
		}

		var nodes int64
		for _, m := range moveMetrics {
			nodes += m.Nodes
		}
		log.Info().
			Int("moves", gameMetric.TotalMoves).
			Float64("score", gameMetric.Score).
			Int("max_tile", gameMetric.MaxTile).
			Int64("nodes", nodes).
			Dur("duration", gameMetric.Duration).
			Bool("game_over", gameMetric.GameOver).
			Msgf("final board\n%s", gameMetric.FinalBoard)

		if registry != nil {
			return logSearchTotals(registry)
		}
		return nil
	},
}

// logSearchTotals logs the search metrics accumulated over a game
func logSearchTotals(g prometheus.Gatherer) error {
	totals, err := searcher.Totals(g)
	if err != nil {
		return err
	}
	fields := lo.MapValues(totals, func(v float64, _ string) any { return v })
	log.Info().Fields(fields).Msg("search metrics")
	return nil
}

var experimentCmd = &cobra.Command{
	Use:       "experiment [weights|depth|throughput]",
	Short:     "Run a batch of self-play games or timed searches",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"weights", "depth", "throughput"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		switch args[0] {
		case "weights":
			_, err = experiments.RunWeightsExperiment(cmd.Context(), cfg)
		case "depth":
			_, err = experiments.RunDepthExperiment(cmd.Context(), cfg)
		case "throughput":
			_, err = experiments.RunThroughputExperiment(cmd.Context(), cfg)
		}
		return err
	},
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Game.Seed = seed
		cfg.Search.Seed = engine.DeriveSeeds(seed).Agent
	}
	if cmd.Flags().Changed("depth") {
		cfg.Search.Depth = depth
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	zerolog.SetGlobalLevel(cfg.Level())
	return cfg, nil
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "threes.yaml", "path to a YAML or JSON config file")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "seed for the search and the deal (0 picks one)")
	rootCmd.PersistentFlags().IntVar(&depth, "depth", searcher.DefaultDepth, "search depth")
	rootCmd.AddCommand(playCmd, experimentCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("threes failed")
		os.Exit(1)
	}
}
