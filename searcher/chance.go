package searcher

import (
	"context"

	"threes/game"

	"golang.org/x/exp/rand"
)

// expect values move as the sum of its sampled outcomes searched one ply
// deeper. An illegal move comes back as the empty choice.
func (s *search) expect(ctx context.Context, state game.State, move game.Move, depth, parallel int, rng *rand.Rand) (Choice, error) {
	if !move.Legal(state.Board()) {
		s.metrics.AddIllegal()
		return EmptyChoice(), nil
	}

	outcomes, err := move.OutcomesForSearch(state, rng)
	if err != nil {
		return EmptyChoice(), err
	}

	value := 0.0
	for _, outcome := range outcomes {
		child, err := s.decide(ctx, outcome, depth-1, parallel, rng)
		if err != nil {
			return EmptyChoice(), err
		}
		value += child.Value
	}
	return Choice{Move: move, Value: value}, nil
}
