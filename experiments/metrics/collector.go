package metrics

import (
	"time"

	"threes/game"
	"threes/searcher"
)

// AgentConfig describes one player in an experiment
type AgentConfig struct {
	ID            int
	Random        bool // Baseline agent, ignores the search settings
	Depth         int
	ParallelDepth int
	Weights       game.Weights
}

type MoveMetric struct {
	Step  int
	Move  string
	Value float64
	searcher.SearchMetrics
}

type GameMetric struct {
	Seed       uint64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
	Score      float64 // Board score of the final position
	MaxTile    int
	FinalBoard game.Board
	GameOver   bool // No legal move was left, as opposed to hitting the move cap
}

type GameRecord struct {
	ID    int
	Agent int
	GameMetric
}
