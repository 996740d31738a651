package game

import (
	"slices"

	"threes/utils"
)

// CombineLeft slides a line toward index 0. At most one merge happens: equal
// tiles above 2 double, a 1 and a 2 make a 3, otherwise the first empty cell
// is closed. The result always has the input's length.
func CombineLeft(line []int) []int {
	if len(line) <= 1 {
		return slices.Clone(line)
	}
	switch {
	case line[0] == 0:
		return shiftLeft(line, 1)
	case line[0] == line[1] && line[0] > 2:
		return shiftLeft(line, 2, 2*line[0])
	case oneAndTwo(line[0], line[1]):
		return shiftLeft(line, 2, 3)
	default:
		return append([]int{line[0]}, CombineLeft(line[1:])...)
	}
}

func CombineRight(line []int) []int {
	return utils.Reversed(CombineLeft(utils.Reversed(line)))
}

// shiftLeft drops line[:from], prefixes head and pads the tail with empty cells
func shiftLeft(line []int, from int, head ...int) []int {
	out := make([]int, 0, len(line))
	out = append(out, head...)
	out = append(out, line[from:]...)
	for len(out) < len(line) {
		out = append(out, 0)
	}
	return out
}

func oneAndTwo(a, b int) bool {
	return (a == 1 && b == 2) || (a == 2 && b == 1)
}

// canMatch reports whether two neighbouring tiles could merge
func canMatch(a, b int) bool {
	return (a == b && a >= 3) || oneAndTwo(a, b)
}
