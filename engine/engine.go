package engine

import (
	"context"

	"threes/experiments/metrics"

	"golang.org/x/exp/rand"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays until no move is legal or a max number of moves is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Seeds are the independent generator seeds of one game
type Seeds struct {
	Deal     uint64
	Outcomes uint64
	Agent    uint64
}

// DeriveSeeds draws the seeds of a game from its game seed
func DeriveSeeds(seed uint64) Seeds {
	rng := rand.New(rand.NewSource(seed))
	return Seeds{Deal: rng.Uint64(), Outcomes: rng.Uint64(), Agent: rng.Uint64()}
}
