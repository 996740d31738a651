package game

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// Candidate probabilities must add up to 1 within this tolerance
const ProbabilityTolerance = 0.001

var (
	ErrNoCandidates    = errors.New("no candidate states")
	ErrProbabilityMass = errors.New("candidate probabilities do not sum to 1")
)

// PickState samples one of candidates by probability. Candidates are walked
// from most to least likely and the last one absorbs any rounding residue.
func PickState(candidates []State, rng *rand.Rand) (State, error) {
	if len(candidates) == 0 {
		return State{}, ErrNoCandidates
	}
	total := lo.SumBy(candidates, func(s State) float64 { return s.probability })
	if math.Abs(total-1) > ProbabilityTolerance {
		return State{}, fmt.Errorf("%w: got %.6f", ErrProbabilityMass, total)
	}

	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b State) int {
		return cmp.Compare(b.probability, a.probability)
	})

	r := rng.Float64()
	sum := 0.0
	for _, s := range sorted {
		sum += s.probability
		if r <= sum {
			return s, nil
		}
	}
	return sorted[len(sorted)-1], nil
}
