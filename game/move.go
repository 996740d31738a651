package game

import (
	"errors"
	"fmt"
	"slices"

	"threes/utils"

	"golang.org/x/exp/rand"
)

var ErrEmptyStack = errors.New("card stack is empty")

// Direction is a Move that slides every line of the board one way. Terminal
// is the sentinel returned at search leaves and never changes the board.
type Direction int

const (
	Terminal Direction = iota
	Left
	Right
	Up
	Down
)

// Directions lists the playable moves in search order
var Directions = []Direction{Left, Right, Up, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Terminal:
		return "Terminal"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

func (d Direction) Legal(board Board) bool {
	_, modified := d.shift(board)
	return len(modified) > 0
}

func (d Direction) Apply(board Board) Board {
	lines, modified := d.shift(board)
	if len(modified) == 0 {
		return board
	}
	return d.fromLines(lines)
}

// Insert places value at the vacated edge cell of line after the move, the
// last cell for Left and Up and the first for Right and Down
func (d Direction) Insert(board Board, line, value int) Board {
	if d == Terminal {
		return board
	}
	return d.fromLines(d.insert(d.toLines(board), line, value))
}

// OutcomesForSearch draws one hole card from the deck for every board branch.
// An illegal move yields the input state alone.
func (d Direction) OutcomesForSearch(s State, rng *rand.Rand) ([]State, error) {
	branches := d.branch(s)
	if len(branches) == 0 {
		return []State{s}, nil
	}
	outcomes := make([]State, 0, len(branches))
	for _, b := range branches {
		bag := s.stack.Flatten()
		if len(bag) == 0 {
			return nil, fmt.Errorf("drawing after %s: %w", d, ErrEmptyStack)
		}
		rng.Shuffle(len(bag), func(i, j int) { bag[i], bag[j] = bag[j], bag[i] })
		hole := bag[0]
		stack, err := s.stack.Without(hole)
		if err != nil {
			return nil, fmt.Errorf("drawing after %s: %w", d, err)
		}
		outcomes = append(outcomes, NewStateWithStack(b.board, stack, hole, b.probability, rng))
	}
	return outcomes, nil
}

// OutcomesForSimulation yields one state per board branch and remaining card,
// weighted by the card's share of the deck. An illegal move yields the input
// state alone.
func (d Direction) OutcomesForSimulation(s State, rng *rand.Rand) ([]State, error) {
	branches := d.branch(s)
	if len(branches) == 0 {
		return []State{s}, nil
	}
	total := float64(s.stack.Total())
	if total == 0 {
		return nil, fmt.Errorf("simulating %s: %w", d, ErrEmptyStack)
	}
	outcomes := make([]State, 0, len(branches)*s.stack.Len())
	for _, b := range branches {
		for _, card := range s.stack.Cards() {
			stack, err := s.stack.Without(card)
			if err != nil {
				return nil, fmt.Errorf("simulating %s: %w", d, err)
			}
			p := b.probability * float64(s.stack.Count(card)) / total
			outcomes = append(outcomes, NewStateWithStack(b.board, stack, card, p, rng))
		}
	}
	return outcomes, nil
}

type branch struct {
	board       Board
	probability float64
}

// branch inserts every possible hole value at every moved line, splitting
// the state's probability evenly
func (d Direction) branch(s State) []branch {
	lines, modified := d.shift(s.board)
	if len(modified) == 0 {
		return nil
	}
	values := s.hole.Values()
	p := s.probability / float64(len(modified)*len(values))
	branches := make([]branch, 0, len(modified)*len(values))
	for _, v := range values {
		for _, line := range modified {
			branches = append(branches, branch{
				board:       d.fromLines(d.insert(lines, line, v)),
				probability: p,
			})
		}
	}
	return branches
}

// shift combines every line and reports which lines changed
func (d Direction) shift(board Board) ([][]int, []int) {
	if d == Terminal {
		return nil, nil
	}
	lines := d.toLines(board)
	var modified []int
	for i, line := range lines {
		var combined []int
		if d == Left || d == Up {
			combined = CombineLeft(line)
		} else {
			combined = CombineRight(line)
		}
		if !slices.Equal(line, combined) {
			modified = append(modified, i)
		}
		lines[i] = combined
	}
	return lines, modified
}

func (d Direction) insert(lines [][]int, line, value int) [][]int {
	out := utils.Clone2D(lines)
	if d == Left || d == Up {
		out[line][len(out[line])-1] = value
	} else {
		out[line][0] = value
	}
	return out
}

// toLines views the board as rows for horizontal moves and columns otherwise
func (d Direction) toLines(board Board) [][]int {
	if d == Up || d == Down {
		return utils.Transpose(board.cells)
	}
	return board.Cells()
}

func (d Direction) fromLines(lines [][]int) Board {
	if d == Up || d == Down {
		return Board{cells: utils.Transpose(lines)}
	}
	return Board{cells: lines}
}
