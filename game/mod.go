package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Move transforms a board and expands a state into its chance outcomes.
// Implementations are stateless and safe for concurrent use.
type Move interface {
	fmt.Stringer
	Legal(Board) bool
	// Apply returns the board after the move without inserting the hole card
	Apply(Board) Board
	// OutcomesForSearch samples one hole card per board branch
	OutcomesForSearch(State, *rand.Rand) ([]State, error)
	// OutcomesForSimulation enumerates every remaining hole card per board branch
	OutcomesForSimulation(State, *rand.Rand) ([]State, error)
}

type StateHash uint64

// Evaluates a state relative to the search root. Higher is better.
type Evaluate func(root, state State) float64
