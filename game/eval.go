package game

import (
	"errors"
	"fmt"
	"math"
)

// Weights below this are treated as disabled and their term is skipped
const WeightEpsilon = 1e-7

// Weights scale the evaluation terms
type Weights struct {
	Board     float64 `yaml:"board" json:"board"`
	FreeCell  float64 `yaml:"free_cell" json:"free_cell"`
	Matchable float64 `yaml:"matchable" json:"matchable"`
}

func DefaultWeights() Weights {
	return Weights{Board: 0.33, FreeCell: 0.33, Matchable: 0.33}
}

func (w Weights) Validate() error {
	var errs []error
	if w.Board < 0 {
		errs = append(errs, fmt.Errorf("board weight %v is negative", w.Board))
	}
	if w.FreeCell < 0 {
		errs = append(errs, fmt.Errorf("free cell weight %v is negative", w.FreeCell))
	}
	if w.Matchable < 0 {
		errs = append(errs, fmt.Errorf("matchable weight %v is negative", w.Matchable))
	}
	return errors.Join(errs...)
}

// NewWeightedEvaluator scores a state as its probability times the weighted
// sum of the board ratio, free cells and matchable pairs. The board ratio is
// the root's score over the state's score.
func NewWeightedEvaluator(w Weights) Evaluate {
	return func(root, state State) float64 {
		score := 0.0
		if w.Board >= WeightEpsilon {
			score += w.Board * boardRatio(root.board, state.board)
		}
		if w.FreeCell >= WeightEpsilon {
			score += w.FreeCell * float64(FreeCells(state.board))
		}
		if w.Matchable >= WeightEpsilon {
			score += w.Matchable * float64(MatchablePairs(state.board))
		}
		return score * state.probability
	}
}

func boardRatio(root, board Board) float64 {
	score := BoardScore(board)
	if score == 0 {
		return 0
	}
	return BoardScore(root) / score
}

// BoardScore sums 3^(log2(tile/3)+1) over tiles above 2, so 3 scores 3, 6
// scores 9, 12 scores 27 and so on
func BoardScore(board Board) float64 {
	score := 0.0
	for _, row := range board.cells {
		for _, v := range row {
			if v > 2 {
				score += math.Pow(3, math.Log2(float64(v/3))+1)
			}
		}
	}
	return score
}

func FreeCells(board Board) int {
	count := 0
	for _, row := range board.cells {
		for _, v := range row {
			if v == 0 {
				count++
			}
		}
	}
	return count
}

// MatchablePairs counts ordered orthogonal neighbour pairs that could merge,
// so every matching pair is counted from both sides
func MatchablePairs(board Board) int {
	n := board.Size()
	count := 0
	for i := range n {
		for j := range n {
			v := board.cells[i][j]
			for _, nb := range [][2]int{{i - 1, j}, {i + 1, j}, {i, j - 1}, {i, j + 1}} {
				r, c := nb[0], nb[1]
				if r < 0 || r >= n || c < 0 || c >= n {
					continue
				}
				if canMatch(v, board.cells[r][c]) {
					count++
				}
			}
		}
	}
	return count
}
