package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	t.Run("square grid", func(t *testing.T) {
		cells := [][]int{{1, 2}, {3, 0}}
		b, err := NewBoard(cells)
		require.NoError(t, err, "Square grid should be accepted")
		require.Equal(t, 2, b.Size(), "Size should match row count")
		require.Equal(t, 3, b.At(1, 0), "Cell should match input")

		cells[1][0] = 6
		require.Equal(t, 3, b.At(1, 0), "Board should not share storage with input")
	})

	t.Run("rejects non-square grid", func(t *testing.T) {
		_, err := NewBoard([][]int{{1, 2, 3}, {3, 0, 1}})
		require.ErrorIs(t, err, ErrBoardNotSquare, "Rectangular grid should be rejected")
	})

	t.Run("rejects empty grid", func(t *testing.T) {
		_, err := NewBoard(nil)
		require.ErrorIs(t, err, ErrEmptyBoard, "Empty grid should be rejected")
	})

	t.Run("rejects negative cells", func(t *testing.T) {
		_, err := NewBoard([][]int{{1, -2}, {3, 0}})
		require.ErrorIs(t, err, ErrNegativeCell, "Negative cell should be rejected")
	})

	t.Run("must board panics on invalid grid", func(t *testing.T) {
		require.Panics(t, func() { MustBoard([][]int{{1}, {2}}) }, "Invalid literal should panic")
	})
}

func TestBoardValueSemantics(t *testing.T) {
	a := MustBoard([][]int{{0, 1, 3, 3}, {3, 2, 0, 1}, {2, 0, 0, 1}, {0, 0, 0, 1}})
	b := MustBoard([][]int{{0, 1, 3, 3}, {3, 2, 0, 1}, {2, 0, 0, 1}, {0, 0, 0, 1}})
	c := MustBoard([][]int{{0, 1, 3, 3}, {3, 2, 0, 1}, {2, 0, 0, 1}, {0, 0, 1, 0}})

	require.True(t, a.Equal(b), "Boards with equal cells should be equal")
	require.Equal(t, a.Hash(), b.Hash(), "Equal boards should hash equally")
	require.False(t, a.Equal(c), "Boards with different cells should differ")
	require.NotEqual(t, a.Hash(), c.Hash(), "Different boards should hash differently")
	require.Equal(t, 3, a.Max(), "Max should be the largest tile")

	cells := a.Cells()
	cells[0][0] = 96
	require.Equal(t, 0, a.At(0, 0), "Cells should return a copy")
}

func TestBoardString(t *testing.T) {
	b := MustBoard([][]int{{0, 1}, {3, 12}})
	require.Equal(t, "|     0     1|\n|     3    12|\n", b.String(), "Rows should render with fixed width cells")
}
