package sudoku

import (
	"errors"
	"math/rand/v2"
)

// ErrUnfillable is returned when the filler cannot complete an empty grid.
// This indicates a broken search, not bad input.
var ErrUnfillable = errors.New("unable to fill an empty grid")

// Generate builds a random solved grid and derives a puzzle from it by
// removing cells while the puzzle keeps a unique solution.
//
// Removal walks the 81 cell coordinates once in a random order. A cell is
// cleared tentatively; if the uniqueness oracle rejects the removal the
// digit is restored and that cell is never revisited. The walk stops when
// 81-clues cells have been removed or the coordinates run out, so the
// returned puzzle may hold more clues than requested when the target is
// not achievable. That degraded result is not an error.
//
// Clamping clues to a sensible range (17..81) is the caller's job;
// Generate itself behaves for any value, treating clues > 81 as "remove
// nothing".
func Generate(clues int, r *rand.Rand) (puzzle, solution Grid, err error) {
	var g Grid
	if !g.Fill(r) {
		return Grid{}, Grid{}, ErrUnfillable
	}
	solution = g
	puzzle = g

	coords := make([]CellCoord, 0, CellCount)
	for row := range Size {
		for col := range Size {
			coords = append(coords, CellCoord{row, col})
		}
	}
	r.Shuffle(len(coords), func(i, j int) {
		coords[i], coords[j] = coords[j], coords[i]
	})

	toRemove := CellCount - clues
	for _, cell := range coords {
		if toRemove <= 0 {
			break
		}
		if puzzle[cell.Row][cell.Col] == Empty {
			continue
		}
		backup := puzzle[cell.Row][cell.Col]
		puzzle[cell.Row][cell.Col] = Empty
		if puzzle.HasUniqueSolution() {
			toRemove--
		} else {
			puzzle[cell.Row][cell.Col] = backup
		}
	}

	return puzzle, solution, nil
}
