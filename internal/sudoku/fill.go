package sudoku

import "math/rand/v2"

// Fill completes the grid in place with a backtracking search and reports
// whether every cell could be filled. Candidate digits are tried in a
// fresh uniformly random order at every cell, so successive calls on an
// empty grid produce different solved boards. On failure the grid is
// restored to the state it had on entry.
func (g *Grid) Fill(r *rand.Rand) bool {
	row, col, ok := g.firstEmpty()
	if !ok {
		return true
	}
	candidates := [Size]uint8{1, 2, 3, 4, 5, 6, 7, 8, 9}
	r.Shuffle(Size, func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, digit := range candidates {
		if g.CanPlace(row, col, digit) {
			g[row][col] = digit
			if g.Fill(r) {
				return true
			}
			g[row][col] = Empty
		}
	}
	return false
}
