package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestPickState(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	stack := NewCardStack(map[int]int{1: 1})
	likely := NewStateWithStack(MustBoard([][]int{{1, 0}, {0, 0}}), stack, Known(1), 0.75, rng)
	unlikely := NewStateWithStack(MustBoard([][]int{{0, 1}, {0, 0}}), stack, Known(1), 0.25, rng)

	t.Run("single candidate", func(t *testing.T) {
		only := likely.Reroot()
		got, err := PickState([]State{only}, rng)
		require.NoError(t, err, "Single full-mass candidate should be picked")
		require.True(t, got.Equal(only), "Only candidate should be returned")
	})

	t.Run("follows the distribution", func(t *testing.T) {
		candidates := []State{unlikely, likely}
		hits := 0
		const draws = 20000
		for range draws {
			got, err := PickState(candidates, rng)
			require.NoError(t, err, "Valid candidates should be sampled")
			if got.Equal(likely) {
				hits++
			} else {
				require.True(t, got.Equal(unlikely), "Result should be one of the candidates")
			}
		}
		require.InDelta(t, 0.75, float64(hits)/draws, 0.02, "Draw frequency should match probability")
	})

	t.Run("same seed picks the same state", func(t *testing.T) {
		candidates := []State{unlikely, likely}
		for seed := uint64(1); seed <= 10; seed++ {
			a, _ := PickState(candidates, rand.New(rand.NewSource(seed)))
			b, _ := PickState(candidates, rand.New(rand.NewSource(seed)))
			require.True(t, a.Equal(b), "Pick should depend only on the generator")
		}
	})

	t.Run("simulation outcomes can be picked", func(t *testing.T) {
		s := NewState(demoBoard(), Known(2), rng)
		outcomes, err := Down.OutcomesForSimulation(s, rng)
		require.NoError(t, err, "Down should expand")
		got, err := PickState(outcomes, rng)
		require.NoError(t, err, "Simulation outcomes should carry full mass")
		require.Contains(t, outcomes, got, "Picked state should come from the outcomes")
	})

	t.Run("missing mass", func(t *testing.T) {
		_, err := PickState([]State{likely}, rng)
		require.ErrorIs(t, err, ErrProbabilityMass, "Probabilities far from 1 should be rejected")
	})

	t.Run("no candidates", func(t *testing.T) {
		_, err := PickState(nil, rng)
		require.ErrorIs(t, err, ErrNoCandidates, "Empty input should be rejected")
	})
}
