package game

import (
	"errors"
	"slices"
	"strconv"
)

var ErrNoBonusValues = errors.New("ambiguous card needs at least one value")

// HoleCard is the tile inserted into the vacated edge after a move. It is
// either Known or Ambiguous.
type HoleCard interface {
	// Values lists the tile values the card may turn out to be
	Values() []int
	IsAmbiguous() bool
	String() string
	holeCard()
}

type Known int

func (k Known) Values() []int     { return []int{int(k)} }
func (k Known) IsAmbiguous() bool { return false }
func (k Known) String() string    { return strconv.Itoa(int(k)) }
func (k Known) holeCard()         {}

// Ambiguous is a bonus card whose value is revealed only once placed
type Ambiguous struct {
	values []int
}

func NewAmbiguous(values []int) (Ambiguous, error) {
	if len(values) == 0 {
		return Ambiguous{}, ErrNoBonusValues
	}
	return Ambiguous{values: slices.Clone(values)}, nil
}

func (a Ambiguous) Values() []int     { return slices.Clone(a.values) }
func (a Ambiguous) IsAmbiguous() bool { return true }
func (a Ambiguous) String() string    { return "+" }
func (a Ambiguous) holeCard()         {}

// SameCard compares two hole cards by content
func SameCard(a, b HoleCard) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.IsAmbiguous() == b.IsAmbiguous() && slices.Equal(a.Values(), b.Values())
}
