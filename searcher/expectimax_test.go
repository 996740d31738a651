package searcher

import (
	"context"
	"math"
	"testing"

	"threes/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func demoState(seed uint64) game.State {
	board := game.MustBoard([][]int{{0, 1, 3, 3}, {3, 2, 0, 1}, {2, 0, 0, 1}, {0, 0, 0, 1}})
	return game.NewState(board, game.Known(2), rand.New(rand.NewSource(seed)))
}

func stuckState() game.State {
	board := game.MustBoard([][]int{{1, 3, 1, 3}, {3, 1, 3, 1}, {1, 3, 1, 3}, {3, 1, 3, 1}})
	return game.NewState(board, game.Known(1), rand.New(rand.NewSource(1)))
}

func probability(_, state game.State) float64 {
	return state.Probability()
}

func TestSearchDepthZero(t *testing.T) {
	e := New(WithDepth(0), WithSeed(1), WithWeights(game.Weights{FreeCell: 1}))

	got, err := e.Search(context.Background(), demoState(1))

	require.NoError(t, err, "Search should succeed")
	require.Equal(t, game.Terminal, got.Move, "Depth 0 should return the terminal move")
	require.Equal(t, 7.0, got.Value, "Depth 0 should evaluate the root")
	require.False(t, math.IsInf(got.Value, 0) || math.IsNaN(got.Value), "Leaf value should be finite")
}

func TestSearchNoLegalMove(t *testing.T) {
	for _, parallel := range []int{0, 2} {
		e := New(WithDepth(3), WithParallelDepth(parallel), WithSeed(1))

		got, err := e.Search(context.Background(), stuckState())

		require.NoError(t, err, "Search without moves should not fail")
		require.True(t, got.IsEmpty(), "Stuck board should give the empty choice")
	}
}

func TestSearchSumsOutcomes(t *testing.T) {
	e := New(WithDepth(1), WithParallelDepth(0), WithSeed(1), WithEvaluationFn(probability))

	got, err := e.Search(context.Background(), demoState(1))

	require.NoError(t, err, "Search should succeed")
	require.InDelta(t, 1.0, got.Value, 1e-9, "Outcome probabilities of a move should add up to one")
	require.Equal(t, game.Down, got.Move, "Equal values should go to the last move tried")
}

func TestSearchTieBreak(t *testing.T) {
	// Right and Down mirror each other and leave no free cell
	board := game.MustBoard([][]int{{1, 3}, {3, 0}})
	state := game.NewState(board, game.Known(2), rand.New(rand.NewSource(1)))
	e := New(WithDepth(1), WithSeed(1), WithWeights(game.Weights{FreeCell: 1}))

	got, err := e.Search(context.Background(), state)

	require.NoError(t, err, "Search should succeed")
	require.Equal(t, game.Down, got.Move, "Later of the tied moves should be picked")
	require.Equal(t, 0.0, got.Value, "No cell should be free after either move")
}

func TestSearchEndToEnd(t *testing.T) {
	e := New(WithDepth(5), WithParallelDepth(3), WithSeed(42), WithWeights(game.Weights{Board: 0.1, FreeCell: 0.9}))

	got, err := e.Search(context.Background(), demoState(42))

	require.NoError(t, err, "Search should succeed")
	require.False(t, got.IsEmpty(), "Position with legal moves should give a move")
	require.Contains(t, game.Directions, got.Move, "Move should be one of the four directions")
}

func TestSearchReproducible(t *testing.T) {
	for _, parallel := range []int{0, 1, 3} {
		a := New(WithDepth(3), WithParallelDepth(parallel), WithSeed(7))
		b := New(WithDepth(3), WithParallelDepth(parallel), WithSeed(7))
		state := demoState(7)

		for range 3 {
			gotA, err := a.Search(context.Background(), state)
			require.NoError(t, err, "Search should succeed")
			gotB, err := b.Search(context.Background(), state)
			require.NoError(t, err, "Search should succeed")
			require.Equal(t, gotA, gotB, "Same seed should give the same choice with parallel depth %d", parallel)
		}
	}
}

func TestSearchFailure(t *testing.T) {
	failing := func(_, _ game.State) float64 { panic("broken evaluator") }

	t.Run("panic in a parallel task", func(t *testing.T) {
		e := New(WithDepth(2), WithParallelDepth(2), WithSeed(1), WithEvaluationFn(failing))
		got, err := e.Search(context.Background(), demoState(1))
		require.ErrorIs(t, err, ErrSearchFailed, "Failure should fail the whole search")
		require.ErrorIs(t, err, ErrTaskPanicked, "Panic should be reported")
		require.True(t, got.IsEmpty(), "Failed search should not return a partial choice")
	})

	t.Run("panic in a sequential search", func(t *testing.T) {
		e := New(WithDepth(0), WithParallelDepth(0), WithSeed(1), WithEvaluationFn(failing))
		_, err := e.Search(context.Background(), demoState(1))
		require.ErrorIs(t, err, ErrTaskPanicked, "Panic should be reported")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := New(WithDepth(2), WithSeed(1))
		_, err := e.Search(ctx, demoState(1))
		require.ErrorIs(t, err, ErrSearchFailed, "Cancelled search should fail")
		require.ErrorIs(t, err, context.Canceled, "Cause should be kept")
	})
}

func TestSearchMetrics(t *testing.T) {
	t.Run("counts nodes leaves and tasks", func(t *testing.T) {
		e := New(WithDepth(1), WithParallelDepth(1), WithSeed(1), WithMetrics(NewMetricsCollector()))

		_, metric, err := e.SearchWithMetrics(context.Background(), demoState(1))

		require.NoError(t, err, "Search should succeed")
		require.Equal(t, int64(12), metric.Leaves, "One leaf per moved line over all four moves")
		require.Equal(t, int64(13), metric.Nodes, "Root plus every leaf")
		require.Equal(t, int64(4), metric.Tasks, "Each move should run as a task")
		require.Zero(t, metric.IllegalMoves, "Every move is legal")
		require.Equal(t, 1, metric.Depth, "Depth should be recorded")
	})

	t.Run("counts illegal moves", func(t *testing.T) {
		e := New(WithDepth(2), WithParallelDepth(0), WithSeed(1), WithMetrics(nil))

		_, metric, err := e.SearchWithMetrics(context.Background(), stuckState())

		require.NoError(t, err, "Search should succeed")
		require.Equal(t, int64(4), metric.IllegalMoves, "Every move should be skipped")
		require.Zero(t, metric.Tasks, "Sequential search should start no tasks")
	})

	t.Run("counters reset between searches", func(t *testing.T) {
		e := New(WithDepth(1), WithParallelDepth(0), WithSeed(1), WithMetrics(NewMetricsCollector()))

		_, first, err := e.SearchWithMetrics(context.Background(), demoState(1))
		require.NoError(t, err, "Search should succeed")
		_, second, err := e.SearchWithMetrics(context.Background(), demoState(1))
		require.NoError(t, err, "Search should succeed")
		require.Equal(t, first.Nodes, second.Nodes, "Each search should count from zero")
	})

	t.Run("no metrics by default", func(t *testing.T) {
		e := New(WithDepth(1), WithSeed(1))
		_, metric, err := e.SearchWithMetrics(context.Background(), demoState(1))
		require.NoError(t, err, "Search should succeed")
		require.Equal(t, SearchMetrics{}, metric, "Default collector should record nothing")
	})
}

func TestNewDefaults(t *testing.T) {
	e := New(WithDepth(-1), WithParallelDepth(-2))
	require.Equal(t, DefaultDepth, e.Depth(), "Negative depth should be ignored")
	require.Equal(t, DefaultParallelDepth, e.ParallelDepth(), "Negative parallel depth should be ignored")
	require.NotZero(t, e.Seed(), "Missing seed should be drawn at random")
	require.Equal(t, uint64(9), New(WithSeed(9)).Seed(), "Given seed should be kept")
}
