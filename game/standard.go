package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

const (
	// Copies of each of the 1, 2 and 3 tiles in a fresh deck
	BaseCardCount = 4
	// Chance that a fresh deck carries a bonus card
	BonusChance = 0.5
	// Bonus values must not exceed the board's max tile divided by this
	BonusDivisor = 8
)

// GenerateCardStack deals a fresh deck for board. Half the time it also holds
// one ambiguous bonus card when the board allows any.
func GenerateCardStack(board Board, rng *rand.Rand) CardStack {
	stack := NewCardStack(map[int]int{1: BaseCardCount, 2: BaseCardCount, 3: BaseCardCount})
	if rng.Float64() < BonusChance {
		if bonus, err := NewAmbiguous(PossibleAdditions(board)); err == nil {
			stack = stack.WithCard(bonus, 1)
		}
	}
	return stack
}

// PossibleAdditions lists 3, 6, 12, ... up to the board's max tile / 8
func PossibleAdditions(board Board) []int {
	limit := max(board.Max(), 1) / BonusDivisor
	var values []int
	for v := 3; v <= limit; v *= 2 {
		values = append(values, v)
	}
	return values
}

// NewGame deals an opening position on an empty size x size board. Tiles
// from a fresh deck fill 9/16 of the cells, the next card becomes the hole
// card and the rest stay in the stack.
func NewGame(size int, rng *rand.Rand) (State, error) {
	if size < 2 {
		return State{}, fmt.Errorf("board size %d: %w", size, ErrEmptyBoard)
	}
	cells := make([][]int, size)
	for i := range cells {
		cells[i] = make([]int, size)
	}

	bag := GenerateCardStack(Board{cells: cells}, rng).Flatten()
	rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
	tiles := min(size*size*9/16, len(bag)-1)

	for i, pos := range rng.Perm(size * size)[:tiles] {
		cells[pos/size][pos%size] = bag[i].Values()[0]
	}
	stack := CardStack{}
	for _, card := range bag[tiles+1:] {
		stack = stack.WithCard(card, 1)
	}
	return NewStateWithStack(Board{cells: cells}, stack, bag[tiles], 1, rng), nil
}
