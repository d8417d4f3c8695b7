package sudoku

// CountSolutions counts the distinct complete legal fillings of the grid,
// stopping as soon as limit is reached. Any value below limit is exact;
// limit itself means "at least limit". The value receiver hands the search
// a private copy, so the caller's grid is never touched.
//
// Unlike [Grid.Fill] the search is deterministic and keeps enumerating
// after a completion is found, which is what makes it usable as a
// uniqueness oracle.
func (g Grid) CountSolutions(limit int) int {
	count := 0
	g.countSolutions(&count, limit)
	return count
}

func (g *Grid) countSolutions(count *int, limit int) {
	if *count >= limit {
		return
	}
	row, col, ok := g.firstEmpty()
	if !ok {
		*count++
		return
	}
	for digit := uint8(1); digit <= Size; digit++ {
		if g.CanPlace(row, col, digit) {
			g[row][col] = digit
			g.countSolutions(count, limit)
			g[row][col] = Empty
			if *count >= limit {
				return
			}
		}
	}
}

// HasUniqueSolution reports whether exactly one complete legal filling
// extends the grid.
func (g Grid) HasUniqueSolution() bool {
	return g.CountSolutions(2) == 1
}
