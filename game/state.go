package game

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/rand"
)

// State is a search tree node: a board, the card about to be inserted, the
// remaining deck and the probability of reaching it from the search root.
// States are immutable and safe to share between goroutines.
type State struct {
	board       Board
	hole        HoleCard
	stack       CardStack
	probability float64
}

// NewState starts a game position with a freshly dealt deck
func NewState(board Board, hole HoleCard, rng *rand.Rand) State {
	return NewStateWithStack(board, CardStack{}, hole, 1, rng)
}

// NewStateWithStack deals a fresh deck from board when stack is empty
func NewStateWithStack(board Board, stack CardStack, hole HoleCard, probability float64, rng *rand.Rand) State {
	if hole == nil {
		panic("state requires a hole card")
	}
	if probability <= 0 || probability > 1 || math.IsNaN(probability) {
		panic(fmt.Sprintf("state probability %v outside (0,1]", probability))
	}
	if stack.IsEmpty() {
		stack = GenerateCardStack(board, rng)
	}
	return State{board: board, hole: hole, stack: stack, probability: probability}
}

// Reroot returns a copy that can act as a new search root
func (s State) Reroot() State {
	s.probability = 1
	return s
}

func (s State) Board() Board {
	return s.board
}

func (s State) HoleCard() HoleCard {
	return s.hole
}

func (s State) CardStack() CardStack {
	return s.stack
}

func (s State) Probability() float64 {
	return s.probability
}

// ProbabilityEpsilon is the relative tolerance used when comparing state
// probabilities
const ProbabilityEpsilon = 1e-8

// Equal compares contents; probabilities within ProbabilityEpsilon of each
// other, relative to s, are the same
func (s State) Equal(other State) bool {
	return math.Abs((other.probability-s.probability)/s.probability) < ProbabilityEpsilon &&
		SameCard(s.hole, other.hole) &&
		s.board.Equal(other.board) &&
		s.stack.Equal(other.stack)
}

// Hash covers the board, hole card and stack but not the probability, so that
// equal states hash equally
func (s State) Hash() StateHash {
	d := xxhash.New()
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, s.board.Hash())
	d.Write(buf)
	d.WriteString(s.hole.String())
	for _, v := range s.hole.Values() {
		d.WriteString(fmt.Sprintf(",%d", v))
	}
	d.WriteString(s.stack.String())
	return StateHash(d.Sum64())
}

func (s State) String() string {
	return fmt.Sprintf("%sHoleCard: %s Prob: %.2e", s.board, s.hole, s.probability)
}
