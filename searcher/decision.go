package searcher

import (
	"context"
	"fmt"

	"threes/game"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// decide picks the move with the highest expected value from state. While
// parallel > 0 the four moves are evaluated concurrently, each with its own
// generator seeded from rng before any task starts.
func (s *search) decide(ctx context.Context, state game.State, depth, parallel int, rng *rand.Rand) (Choice, error) {
	if err := ctx.Err(); err != nil {
		return EmptyChoice(), err
	}
	s.metrics.AddNode()

	if depth == 0 {
		s.metrics.AddLeaf()
		return Choice{Move: game.Terminal, Value: s.evaluate(s.root, state)}, nil
	}

	choices := make([]Choice, len(game.Directions))
	if parallel > 0 {
		seeds := make([]uint64, len(game.Directions))
		for i := range seeds {
			seeds[i] = rng.Uint64()
		}

		g, gctx := errgroup.WithContext(ctx)
		for i, move := range game.Directions {
			g.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("%w: %s: %v", ErrTaskPanicked, move, r)
					}
				}()
				s.metrics.AddTask()
				choices[i], err = s.expect(gctx, state, move, depth, parallel-1, rand.New(rand.NewSource(seeds[i])))
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return EmptyChoice(), err
		}
	} else {
		for i, move := range game.Directions {
			choice, err := s.expect(ctx, state, move, depth, 0, rng)
			if err != nil {
				return EmptyChoice(), err
			}
			choices[i] = choice
		}
	}

	return best(choices), nil
}
