package searcher

import (
	"context"
	"fmt"
	"math"
	"sync"

	"threes/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type Option func(e *Expectimax)

// Expectimax searches a fixed number of plies, sampling one future hole card
// per board branch. Calls to Search on the same value are serialised.
type Expectimax struct {
	mu            sync.Mutex
	depth         int
	parallelDepth int
	evaluate      game.Evaluate
	seed          uint64
	rng           *rand.Rand
	metrics       MetricsCollector
}

func WithDepth(depth int) Option {
	return func(e *Expectimax) {
		if depth >= 0 {
			e.depth = depth
		}
	}
}

func WithParallelDepth(depth int) Option {
	return func(e *Expectimax) {
		if depth >= 0 {
			e.parallelDepth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(e *Expectimax) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

func WithWeights(weights game.Weights) Option {
	return func(e *Expectimax) {
		e.evaluate = game.NewWeightedEvaluator(weights)
	}
}

// WithSeed fixes the random source. Zero picks a random seed.
func WithSeed(seed uint64) Option {
	return func(e *Expectimax) {
		e.seed = seed
	}
}

func WithMetrics(collector MetricsCollector) Option {
	return func(e *Expectimax) {
		if collector == nil {
			collector = NewMetricsCollector()
		}
		e.metrics = collector
	}
}

func New(options ...Option) *Expectimax {
	e := &Expectimax{ // Default values
		depth:         DefaultDepth,
		parallelDepth: DefaultParallelDepth,
		evaluate:      game.NewWeightedEvaluator(game.DefaultWeights()),
		metrics:       NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(e)
	}
	if e.seed == 0 {
		e.seed = frand.Uint64n(math.MaxUint64) + 1
		log.Info().Uint64("seed", e.seed).Msg("random seed for searcher")
	}
	e.rng = rand.New(rand.NewSource(e.seed))
	return e
}

func (e *Expectimax) Depth() int {
	return e.depth
}

func (e *Expectimax) ParallelDepth() int {
	return e.parallelDepth
}

func (e *Expectimax) Seed() uint64 {
	return e.seed
}

// Search returns the best move from state, or the empty choice when no move
// is legal. At depth 0 it returns the Terminal move with the state's value.
func (e *Expectimax) Search(ctx context.Context, state game.State) (Choice, error) {
	choice, _, err := e.SearchWithMetrics(ctx, state)
	return choice, err
}

func (e *Expectimax) SearchWithMetrics(ctx context.Context, state game.State) (Choice, SearchMetrics, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := &search{root: state, evaluate: e.evaluate, metrics: e.metrics}
	rng := rand.New(rand.NewSource(e.rng.Uint64()))

	e.metrics.Start(e.depth, e.parallelDepth)
	choice, err := s.run(ctx, state, e.depth, e.parallelDepth, rng)
	metric := e.metrics.Complete(err)
	if err != nil {
		return EmptyChoice(), metric, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	log.Debug().
		Int("depth", e.depth).
		Stringer("move", choice.Move).
		Float64("value", choice.Value).
		Int64("nodes", metric.Nodes).
		Dur("duration", metric.Duration).
		Msg("search complete")
	return choice, metric, nil
}

// search holds what is shared by every node of one Search call
type search struct {
	root     game.State
	evaluate game.Evaluate
	metrics  MetricsCollector
}

// run is decide with panics on the calling goroutine turned into errors
func (s *search) run(ctx context.Context, state game.State, depth, parallel int, rng *rand.Rand) (choice Choice, err error) {
	defer func() {
		if r := recover(); r != nil {
			choice, err = EmptyChoice(), fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()
	return s.decide(ctx, state, depth, parallel, rng)
}
