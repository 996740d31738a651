package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"threes/game"
	"threes/searcher"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Upper bound on the parallel fan-out, 4^6 goroutines at the widest level
const MaxParallelDepth = 6

type Config struct {
	Search     SearchConfig     `json:"search" yaml:"search"`
	Game       GameConfig       `json:"game" yaml:"game"`
	Experiment ExperimentConfig `json:"experiment" yaml:"experiment"`
	LogLevel   string           `json:"log_level" yaml:"log_level"`
}

type SearchConfig struct {
	Depth         int          `json:"depth" yaml:"depth"`
	ParallelDepth int          `json:"parallel_depth" yaml:"parallel_depth"`
	Weights       game.Weights `json:"weights" yaml:"weights"`
	Seed          uint64       `json:"seed" yaml:"seed"` // 0 draws a random seed
	Metrics       bool         `json:"metrics" yaml:"metrics"`
}

type GameConfig struct {
	BoardSize int    `json:"board_size" yaml:"board_size"`
	MaxMoves  int    `json:"max_moves" yaml:"max_moves"`
	Seed      uint64 `json:"seed" yaml:"seed"`
}

type ExperimentConfig struct {
	Games int `json:"games" yaml:"games"` // Per agent configuration
}

func Default() Config {
	return Config{
		Search: SearchConfig{
			Depth:         searcher.DefaultDepth,
			ParallelDepth: searcher.DefaultParallelDepth,
			Weights:       game.DefaultWeights(),
		},
		Game: GameConfig{
			BoardSize: 4,
			MaxMoves:  1000,
		},
		Experiment: ExperimentConfig{
			Games: 10,
		},
		LogLevel: "info",
	}
}

// Load applies the file at path (YAML or JSON) and THREES_* environment
// variables over the defaults. A missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	loadFromEnv(&config)

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		if jsonErr := json.Unmarshal(data, config); jsonErr != nil {
			return fmt.Errorf("parse config (tried YAML and JSON): YAML error: %v, JSON error: %w", err, jsonErr)
		}
	}
	return nil
}

func loadFromEnv(config *Config) {
	envInt("THREES_DEPTH", &config.Search.Depth)
	envInt("THREES_PARALLEL_DEPTH", &config.Search.ParallelDepth)
	envFloat("THREES_BOARD_WEIGHT", &config.Search.Weights.Board)
	envFloat("THREES_FREE_CELL_WEIGHT", &config.Search.Weights.FreeCell)
	envFloat("THREES_MATCHABLE_WEIGHT", &config.Search.Weights.Matchable)
	envUint("THREES_SEED", &config.Search.Seed)
	if v := os.Getenv("THREES_METRICS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Search.Metrics = b
		}
	}

	envInt("THREES_BOARD_SIZE", &config.Game.BoardSize)
	envInt("THREES_MAX_MOVES", &config.Game.MaxMoves)
	envUint("THREES_GAME_SEED", &config.Game.Seed)

	envInt("THREES_GAMES", &config.Experiment.Games)

	if v := os.Getenv("THREES_LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*dst = i
		}
	}
}

func envUint(key string, dst *uint64) {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			*dst = u
		}
	}
}

func envFloat(key string, dst *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Search.Depth < 0 {
		errs = append(errs, fmt.Errorf("search depth %d is negative", c.Search.Depth))
	}
	if c.Search.ParallelDepth < 0 || c.Search.ParallelDepth > MaxParallelDepth {
		errs = append(errs, fmt.Errorf("parallel depth %d outside [0,%d]", c.Search.ParallelDepth, MaxParallelDepth))
	}
	if err := c.Search.Weights.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Game.BoardSize < 2 {
		errs = append(errs, fmt.Errorf("board size %d is below 2", c.Game.BoardSize))
	}
	if c.Game.MaxMoves < 1 {
		errs = append(errs, fmt.Errorf("max moves %d is below 1", c.Game.MaxMoves))
	}
	if c.Experiment.Games < 1 {
		errs = append(errs, fmt.Errorf("experiment games %d is below 1", c.Experiment.Games))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

// Level is the parsed log level, info when unset
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

// SearchOptions translates the search settings into searcher options
func (c SearchConfig) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithDepth(c.Depth),
		searcher.WithParallelDepth(c.ParallelDepth),
		searcher.WithWeights(c.Weights),
		searcher.WithSeed(c.Seed),
	}
	if c.Metrics {
		options = append(options, searcher.WithMetrics(searcher.NewMetricsCollector()))
	}
	return options
}
