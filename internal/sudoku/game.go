package sudoku

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math/rand/v2"
)

// ErrNoEmptyCell is returned by [GameState.Hint] when the submitted board
// has no empty cell left to reveal.
var ErrNoEmptyCell = errors.New("hint needs at least one empty cell")

// Hint reveals the solution value of a single cell.
type Hint struct {
	Row   int   `json:"row"`
	Col   int   `json:"col"`
	Value uint8 `json:"value"`
}

// GameState holds one game: the puzzle handed to the player and the full
// solution it was carved from. The solution stays server-side; only the
// puzzle is ever serialized towards a client.
type GameState struct {
	Puzzle   Grid
	Solution Grid
	Clues    int
	Solved   bool
}

func DecodeGameState(buf []byte) (*GameState, error) {
	var game GameState
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&game)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (s GameState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewGame generates a fresh puzzle with the requested clue count. The
// recorded clue count is the achieved one, which may exceed the request
// when removal bottomed out early.
func NewGame(clues int, r *rand.Rand) (*GameState, error) {
	puzzle, solution, err := Generate(clues, r)
	if err != nil {
		return nil, err
	}
	return &GameState{
		Puzzle:   puzzle,
		Solution: solution,
		Clues:    puzzle.FilledCells(),
	}, nil
}

// Check compares a submitted board cell by cell against the solution and
// returns the mismatching coordinates. An empty result means the board is
// solved, which is then remembered on the state.
func (s *GameState) Check(board Grid) []CellCoord {
	incorrect := []CellCoord{}
	for row := range Size {
		for col := range Size {
			if board[row][col] != s.Solution[row][col] {
				incorrect = append(incorrect, CellCoord{row, col})
			}
		}
	}
	if len(incorrect) == 0 {
		s.Solved = true
	}
	return incorrect
}

// Hint picks a uniformly random empty cell of the submitted board and
// reveals its solution value. The revealed cell is written back into the
// puzzle so it counts as a clue from now on and must not be edited again.
func (s *GameState) Hint(board Grid, r *rand.Rand) (Hint, error) {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return Hint{}, ErrNoEmptyCell
	}
	cell := empty[r.IntN(len(empty))]
	value := s.Solution[cell.Row][cell.Col]
	s.Puzzle[cell.Row][cell.Col] = value
	s.Clues = s.Puzzle.FilledCells()
	return Hint{Row: cell.Row, Col: cell.Col, Value: value}, nil
}

// Reveal gives the game up: the puzzle becomes the full solution.
func (s *GameState) Reveal() {
	s.Puzzle = s.Solution
	s.Clues = CellCount
	s.Solved = true
}
