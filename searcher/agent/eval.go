package agent

import (
	"context"

	"threes/game"
	"threes/searcher"
)

type searchAgent struct {
	searcher *searcher.Expectimax
}

// NewSearchAgent returns an agent that plays the expectimax choice
func NewSearchAgent(s *searcher.Expectimax) Agent {
	return searchAgent{searcher: s}
}

func (a searchAgent) FindMove(ctx context.Context, state game.State) (searcher.Choice, searcher.SearchMetrics, error) {
	return a.searcher.SearchWithMetrics(ctx, state)
}
