package searcher

import (
	"errors"
	"fmt"
	"math"

	"threes/game"
)

var (
	ErrSearchFailed = errors.New("search failed")
	ErrTaskPanicked = errors.New("search task panicked")
)

// Choice is a move paired with its expected value. A nil move marks the
// empty choice returned when no move is legal.
type Choice struct {
	Move  game.Move
	Value float64
}

func EmptyChoice() Choice {
	return Choice{Value: math.Inf(-1)}
}

func (c Choice) IsEmpty() bool {
	return c.Move == nil
}

func (c Choice) String() string {
	if c.IsEmpty() {
		return "Choice{empty}"
	}
	return fmt.Sprintf("Choice{%s %.4f}", c.Move, c.Value)
}
