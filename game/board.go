package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"threes/utils"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrBoardNotSquare = errors.New("board is not square")
	ErrEmptyBoard     = errors.New("board has no cells")
	ErrNegativeCell   = errors.New("board cell is negative")
)

// Board is an immutable square grid of tiles where 0 marks an empty cell
type Board struct {
	cells [][]int
}

func NewBoard(cells [][]int) (Board, error) {
	if len(cells) == 0 {
		return Board{}, ErrEmptyBoard
	}
	for i, row := range cells {
		if len(row) != len(cells) {
			return Board{}, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), len(cells), ErrBoardNotSquare)
		}
		for j, v := range row {
			if v < 0 {
				return Board{}, fmt.Errorf("cell (%d,%d) is %d: %w", i, j, v, ErrNegativeCell)
			}
		}
	}
	return Board{cells: utils.Clone2D(cells)}, nil
}

// MustBoard is NewBoard for literals known to be valid
func MustBoard(cells [][]int) Board {
	b, err := NewBoard(cells)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Board) Size() int {
	return len(b.cells)
}

func (b Board) At(row, col int) int {
	return b.cells[row][col]
}

// Cells returns a copy of the grid
func (b Board) Cells() [][]int {
	return utils.Clone2D(b.cells)
}

func (b Board) Max() int {
	highest := 0
	for _, row := range b.cells {
		for _, v := range row {
			highest = max(highest, v)
		}
	}
	return highest
}

func (b Board) Equal(other Board) bool {
	if len(b.cells) != len(other.cells) {
		return false
	}
	for i, row := range b.cells {
		for j, v := range row {
			if other.cells[i][j] != v {
				return false
			}
		}
	}
	return true
}

// Hash is an xxhash of the board's size and cells
func (b Board) Hash() uint64 {
	d := xxhash.New()
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(len(b.cells)))
	d.Write(buf)
	for _, row := range b.cells {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf, uint64(v))
			d.Write(buf)
		}
	}
	return d.Sum64()
}

func (b Board) String() string {
	var sb strings.Builder
	for _, row := range b.cells {
		sb.WriteString("|")
		for _, v := range row {
			fmt.Fprintf(&sb, "%6d", v)
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
