package agent

import (
	"context"

	"threes/game"
	"threes/searcher"
)

type Agent interface {
	// FindMove returns the chosen move and performance metrics (if collected)
	// from the search. An empty choice means no move is legal.
	FindMove(ctx context.Context, state game.State) (searcher.Choice, searcher.SearchMetrics, error)
}
