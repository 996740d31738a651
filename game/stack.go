package game

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

var ErrCardNotInStack = errors.New("card not in stack")

type stackEntry struct {
	card  HoleCard
	count int
}

// CardStack is an immutable multiset of the hole cards left in the deck.
// Entries with a zero count are dropped. Known cards come first in ascending
// order and ambiguous cards last, so iteration order is deterministic.
type CardStack struct {
	entries []stackEntry
}

// NewCardStack builds a stack of known cards from value -> count
func NewCardStack(counts map[int]int) CardStack {
	s := CardStack{}
	for value, count := range counts {
		s = s.WithCard(Known(value), count)
	}
	return s
}

// WithCard returns a copy with count added to card's entry
func (s CardStack) WithCard(card HoleCard, count int) CardStack {
	entries := slices.Clone(s.entries)
	i := s.index(card)
	if i < 0 {
		if count <= 0 {
			return CardStack{entries: entries}
		}
		entries = append(entries, stackEntry{card: card, count: count})
		sortEntries(entries)
		return CardStack{entries: entries}
	}
	entries[i].count += count
	if entries[i].count <= 0 {
		entries = slices.Delete(entries, i, i+1)
	}
	return CardStack{entries: entries}
}

// Without removes a single copy of card
func (s CardStack) Without(card HoleCard) (CardStack, error) {
	if s.index(card) < 0 {
		return CardStack{}, fmt.Errorf("removing %s from %s: %w", card, s, ErrCardNotInStack)
	}
	return s.WithCard(card, -1), nil
}

func (s CardStack) Count(card HoleCard) int {
	if i := s.index(card); i >= 0 {
		return s.entries[i].count
	}
	return 0
}

func (s CardStack) Total() int {
	return lo.SumBy(s.entries, func(e stackEntry) int { return e.count })
}

// Len is the number of distinct cards
func (s CardStack) Len() int {
	return len(s.entries)
}

func (s CardStack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Cards returns the distinct cards in stack order
func (s CardStack) Cards() []HoleCard {
	return lo.Map(s.entries, func(e stackEntry, _ int) HoleCard { return e.card })
}

// Flatten expands the counts into a bag of cards in stack order
func (s CardStack) Flatten() []HoleCard {
	bag := make([]HoleCard, 0, s.Total())
	for _, e := range s.entries {
		for range e.count {
			bag = append(bag, e.card)
		}
	}
	return bag
}

func (s CardStack) Equal(other CardStack) bool {
	return slices.EqualFunc(s.entries, other.entries, func(a, b stackEntry) bool {
		return a.count == b.count && SameCard(a.card, b.card)
	})
}

func (s CardStack) String() string {
	parts := lo.Map(s.entries, func(e stackEntry, _ int) string {
		return fmt.Sprintf("%s:%d", e.card, e.count)
	})
	return "{" + strings.Join(parts, " ") + "}"
}

func (s CardStack) index(card HoleCard) int {
	return slices.IndexFunc(s.entries, func(e stackEntry) bool { return SameCard(e.card, card) })
}

func sortEntries(entries []stackEntry) {
	slices.SortStableFunc(entries, func(a, b stackEntry) int {
		if a.card.IsAmbiguous() != b.card.IsAmbiguous() {
			if a.card.IsAmbiguous() {
				return 1
			}
			return -1
		}
		if a.card.IsAmbiguous() {
			return 0
		}
		return cmp.Compare(a.card.Values()[0], b.card.Values()[0])
	})
}
