package searcher

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// best returns the highest valued non-empty choice. Choices are stably sorted
// by value and the last one taken, so among equal values the later candidate
// wins.
func best(choices []Choice) Choice {
	legal := lo.Filter(choices, func(c Choice, _ int) bool { return !c.IsEmpty() })
	if len(legal) == 0 {
		return EmptyChoice()
	}
	slices.SortStableFunc(legal, func(a, b Choice) int {
		return cmp.Compare(a.Value, b.Value)
	})
	return legal[len(legal)-1]
}
