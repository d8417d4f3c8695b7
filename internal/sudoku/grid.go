package sudoku

import (
	"fmt"
	"strings"
)

const (
	Size      = 9
	BoxSize   = 3
	CellCount = Size * Size
	Empty     = 0
)

// Grid is a 9x9 Sudoku board. 0 marks an empty cell, 1..9 a placed digit.
// Being an array type, assignment makes a full copy, which the solution
// counter relies on to keep the caller's grid untouched.
type Grid [Size][Size]uint8

// CellCoord identifies a cell on the board. It marshals as a [row, col]
// JSON pair.
type CellCoord struct {
	Row int
	Col int
}

func (c CellCoord) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%d,%d]", c.Row, c.Col)), nil
}

func (c *CellCoord) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if _, err := fmt.Sscanf(string(data), "[%d,%d]", &pair[0], &pair[1]); err != nil {
		return fmt.Errorf("cell coord must be a [row,col] pair: %w", err)
	}
	c.Row, c.Col = pair[0], pair[1]
	return nil
}

func inBounds(row, col int) bool {
	return 0 <= row && row < Size && 0 <= col && col < Size
}

// panics [AssertionError]
func assertPlacement(row, col int, digit uint8) {
	if !inBounds(row, col) || digit < 1 || digit > Size {
		panic(AssertionError{fmt.Sprintf(
			"placement out of range: row=%d col=%d digit=%d", row, col, digit,
		)})
	}
}

// CanPlace reports whether digit may be placed at (row, col) without
// repeating in its row, column or 3x3 box. The cell itself is assumed
// empty. Out-of-range arguments are a caller bug and panic with
// [AssertionError].
func (g *Grid) CanPlace(row, col int, digit uint8) bool {
	assertPlacement(row, col, digit)
	for i := range Size {
		if g[row][i] == digit || g[i][col] == digit {
			return false
		}
	}
	boxRow, boxCol := row-row%BoxSize, col-col%BoxSize
	for i := range BoxSize {
		for j := range BoxSize {
			if g[boxRow+i][boxCol+j] == digit {
				return false
			}
		}
	}
	return true
}

func (g *Grid) firstEmpty() (row, col int, ok bool) {
	for row = range Size {
		for col = range Size {
			if g[row][col] == Empty {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

// FilledCells counts the non-empty cells.
func (g *Grid) FilledCells() (count int) {
	for row := range Size {
		for col := range Size {
			if g[row][col] != Empty {
				count++
			}
		}
	}
	return
}

// Full reports whether no empty cell remains.
func (g *Grid) Full() bool {
	_, _, ok := g.firstEmpty()
	return !ok
}

// EmptyCells lists the coordinates of all empty cells in row-major order.
func (g *Grid) EmptyCells() []CellCoord {
	cells := make([]CellCoord, 0, CellCount)
	for row := range Size {
		for col := range Size {
			if g[row][col] == Empty {
				cells = append(cells, CellCoord{row, col})
			}
		}
	}
	return cells
}

func (g Grid) String() string {
	var b strings.Builder
	for row := range Size {
		for col := range Size {
			if g[row][col] == Empty {
				fmt.Fprint(&b, ". ")
			} else {
				fmt.Fprintf(&b, "%d ", g[row][col])
			}
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
