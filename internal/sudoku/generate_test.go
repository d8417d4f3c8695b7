package sudoku

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertSolved checks that every row, column and box holds each digit
// exactly once.
func assertSolved(t *testing.T, g Grid) {
	t.Helper()
	for i := range Size {
		var row, col, box [Size + 1]int
		for j := range Size {
			row[g[i][j]]++
			col[g[j][i]]++
			box[g[(i/BoxSize)*BoxSize+j/BoxSize][(i%BoxSize)*BoxSize+j%BoxSize]]++
		}
		for digit := 1; digit <= Size; digit++ {
			assert.Equal(t, 1, row[digit], "digit %d in row %d", digit, i)
			assert.Equal(t, 1, col[digit], "digit %d in col %d", digit, i)
			assert.Equal(t, 1, box[digit], "digit %d in box %d", digit, i)
		}
	}
}

func TestFillProducesSolvedGrid(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	var g Grid
	require.True(t, g.Fill(r))
	assert.True(t, g.Full())
	assertSolved(t, g)
}

func TestFillRespectsExistingClues(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	g := testGrid()
	clues := testGrid()
	require.True(t, g.Fill(r))
	assertSolved(t, g)
	for row := range Size {
		for col := range Size {
			if clues[row][col] != Empty {
				assert.Equal(t, clues[row][col], g[row][col])
			}
		}
	}
}

func TestFillRandomized(t *testing.T) {
	var a, b Grid
	require.True(t, a.Fill(rand.New(rand.NewPCG(1, 2))))
	require.True(t, b.Fill(rand.New(rand.NewPCG(3, 4))))
	assert.NotEqual(t, a, b)
}

func TestFillDeterministicUnderFixedSeed(t *testing.T) {
	var a, b Grid
	require.True(t, a.Fill(rand.New(rand.NewPCG(1, 2))))
	require.True(t, b.Fill(rand.New(rand.NewPCG(1, 2))))
	assert.Equal(t, a, b)
}

func TestCountSolutionsEmptyGrid(t *testing.T) {
	var g Grid
	assert.Equal(t, 2, g.CountSolutions(2))
}

func TestCountSolutionsFullGrid(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	var g Grid
	require.True(t, g.Fill(r))
	assert.Equal(t, 1, g.CountSolutions(2))
}

func TestCountSolutionsUniquePuzzle(t *testing.T) {
	g := testGrid()
	assert.Equal(t, 1, g.CountSolutions(2))
	assert.True(t, g.HasUniqueSolution())
}

func TestCountSolutionsContradiction(t *testing.T) {
	var g Grid
	// (0,8) is empty but every digit conflicts with its row or column
	g[0] = [Size]uint8{1, 2, 3, 4, 5, 6, 7, 8, 0}
	g[1][8] = 9
	assert.Equal(t, 0, g.CountSolutions(2))
	assert.False(t, g.HasUniqueSolution())
}

func TestCountSolutionsDoesNotMutate(t *testing.T) {
	g := testGrid()
	before := g
	g.CountSolutions(2)
	assert.Equal(t, before, g)
}

func TestGenerateExactClueCount(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))
	puzzle, solution, err := Generate(35, r)
	require.NoError(t, err)

	assertSolved(t, solution)
	assert.Equal(t, 35, puzzle.FilledCells())
	assert.True(t, puzzle.HasUniqueSolution())
	for row := range Size {
		for col := range Size {
			if puzzle[row][col] != Empty {
				assert.Equal(t, solution[row][col], puzzle[row][col])
			}
		}
	}
}

func TestGenerateNoRemoval(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewPCG(1, 2))
	puzzle, solution, err := Generate(CellCount, r)
	require.NoError(t, err)
	assert.Equal(t, solution, puzzle)
}

func TestGenerateBestEffort(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	t.Parallel()

	// no 9x9 puzzle below 17 clues has a unique solution, so an impossible
	// request must degrade instead of failing
	r := rand.New(rand.NewPCG(1, 2))
	puzzle, solution, err := Generate(0, r)
	require.NoError(t, err)

	assertSolved(t, solution)
	assert.GreaterOrEqual(t, puzzle.FilledCells(), 17)
	assert.True(t, puzzle.HasUniqueSolution())
}
