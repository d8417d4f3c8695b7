package sudoku

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) *GameState {
	t.Helper()
	game, err := NewGame(35, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return game
}

func TestNewGame(t *testing.T) {
	game := newTestGame(t)
	assert.Equal(t, 35, game.Clues)
	assert.Equal(t, 35, game.Puzzle.FilledCells())
	assert.True(t, game.Solution.Full())
	assert.False(t, game.Solved)
}

func TestCheckSolution(t *testing.T) {
	game := newTestGame(t)
	incorrect := game.Check(game.Solution)
	assert.Empty(t, incorrect)
	assert.True(t, game.Solved)
}

func TestCheckEmptyBoard(t *testing.T) {
	game := newTestGame(t)
	var board Grid
	incorrect := game.Check(board)
	assert.Len(t, incorrect, CellCount)
	assert.False(t, game.Solved)
}

func TestCheckSingleMistake(t *testing.T) {
	game := newTestGame(t)
	board := game.Solution
	row, col := -1, -1
	for r := range Size {
		for c := range Size {
			if game.Puzzle[r][c] == Empty {
				row, col = r, c
			}
		}
	}
	require.NotEqual(t, -1, row)
	board[row][col] = board[row][col]%Size + 1 // any different digit
	incorrect := game.Check(board)
	assert.Equal(t, []CellCoord{{row, col}}, incorrect)
}

func TestHint(t *testing.T) {
	game := newTestGame(t)
	r := rand.New(rand.NewPCG(5, 6))

	board := game.Puzzle
	hint, err := game.Hint(board, r)
	require.NoError(t, err)

	assert.EqualValues(t, Empty, board[hint.Row][hint.Col])
	assert.Equal(t, game.Solution[hint.Row][hint.Col], hint.Value)
	// the revealed cell becomes a permanent clue
	assert.Equal(t, hint.Value, game.Puzzle[hint.Row][hint.Col])
	assert.Equal(t, 36, game.Clues)
}

func TestHintOnFullBoard(t *testing.T) {
	game := newTestGame(t)
	r := rand.New(rand.NewPCG(5, 6))
	_, err := game.Hint(game.Solution, r)
	assert.ErrorIs(t, err, ErrNoEmptyCell)
}

func TestReveal(t *testing.T) {
	game := newTestGame(t)
	game.Reveal()
	assert.Equal(t, game.Solution, game.Puzzle)
	assert.Equal(t, CellCount, game.Clues)
	assert.True(t, game.Solved)
}

func TestGameStateRoundTrip(t *testing.T) {
	game := newTestGame(t)
	b, err := game.Bytes()
	require.NoError(t, err)
	decoded, err := DecodeGameState(b)
	require.NoError(t, err)
	assert.Equal(t, game, decoded)
}
