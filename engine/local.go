package engine

import (
	"context"
	"fmt"
	"time"

	"threes/experiments/metrics"
	"threes/game"
	"threes/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Local plays a single game in process. After every move the real outcome is
// sampled from all possible hole cards and becomes the next search root.
type Local struct {
	State    game.State
	Agent    agent.Agent
	maxMoves int
	seed     uint64
	rng      *rand.Rand
}

func LocalEngine(state game.State, a agent.Agent, seed uint64, maxMoves int) *Local {
	if a == nil {
		panic("engine needs an agent")
	}
	if maxMoves <= 0 || maxMoves > MaxMoves {
		maxMoves = MaxMoves
	}
	return &Local{
		State:    state.Reroot(),
		Agent:    a,
		maxMoves: maxMoves,
		seed:     seed,
		rng:      rand.New(rand.NewSource(DeriveSeeds(seed).Outcomes)),
	}
}

// NewLocalGame deals a fresh size x size game from seed. The agent should be
// seeded with DeriveSeeds(seed).Agent.
func NewLocalGame(size int, a agent.Agent, seed uint64, maxMoves int) (*Local, error) {
	state, err := game.NewGame(size, rand.New(rand.NewSource(DeriveSeeds(seed).Deal)))
	if err != nil {
		return nil, fmt.Errorf("dealing game: %w", err)
	}
	return LocalEngine(state, a, seed, maxMoves), nil
}

func (e *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{Seed: e.seed, StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Uint64("seed", e.seed).Msgf("starting game\n%s", e.State.Board())

	for step := 1; step <= e.maxMoves; step++ {
		choice, searchMetrics, err := e.Agent.FindMove(ctx, e.State)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("finding move %d: %w", step, err)
		}
		if choice.IsEmpty() {
			gameMetric.GameOver = true
			break
		}
		if choice.Move == game.Terminal {
			return gameMetric, moveMetrics, fmt.Errorf("move %d: agent returned the terminal move", step)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:          step,
			Move:          choice.Move.String(),
			Value:         choice.Value,
			SearchMetrics: searchMetrics,
		})

		outcomes, err := choice.Move.OutcomesForSimulation(e.State, e.rng)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("playing move %d: %w", step, err)
		}
		next, err := game.PickState(outcomes, e.rng)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("sampling outcome of move %d: %w", step, err)
		}
		e.State = next.Reroot()

		log.Trace().
			Int("step", step).
			Stringer("move", choice.Move).
			Float64("value", choice.Value).
			Uint64("hash", uint64(e.State.Hash())).
			Msg("played move")
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.FinalBoard = e.State.Board()
	gameMetric.Score = game.BoardScore(e.State.Board())
	gameMetric.MaxTile = e.State.Board().Max()

	if !gameMetric.GameOver {
		log.Warn().Msgf("stopped after %d moves without reaching game over", e.maxMoves)
	}
	log.Debug().
		Int("moves", gameMetric.TotalMoves).
		Float64("score", gameMetric.Score).
		Int("max_tile", gameMetric.MaxTile).
		Msgf("game over\n%s", gameMetric.FinalBoard)
	return gameMetric, moveMetrics, nil
}
