package utils

// Reversed returns a reversed copy of slice
func Reversed[T any](slice []T) []T {
	out := make([]T, len(slice))
	for i, v := range slice {
		out[len(slice)-1-i] = v
	}
	return out
}

// Transpose returns a transposed copy of a square grid
func Transpose[T any](grid [][]T) [][]T {
	out := make([][]T, len(grid))
	for i := range grid {
		out[i] = make([]T, len(grid))
		for j := range grid {
			out[i][j] = grid[j][i]
		}
	}
	return out
}

// Clone2D returns a deep copy of grid
func Clone2D[T any](grid [][]T) [][]T {
	out := make([][]T, len(grid))
	for i, row := range grid {
		out[i] = append([]T(nil), row...)
	}
	return out
}
