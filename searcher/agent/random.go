package agent

import (
	"context"
	"sync"

	"threes/game"
	"threes/searcher"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays a uniformly random
// legal move
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(_ context.Context, state game.State) (searcher.Choice, searcher.SearchMetrics, error) {
	legal := lo.Filter(game.Directions, func(d game.Direction, _ int) bool {
		return d.Legal(state.Board())
	})
	if len(legal) == 0 {
		return searcher.EmptyChoice(), searcher.SearchMetrics{}, nil
	}

	a.mu.Lock()
	move := legal[a.rng.Intn(len(legal))]
	a.mu.Unlock()
	return searcher.Choice{Move: move}, searcher.SearchMetrics{}, nil
}
