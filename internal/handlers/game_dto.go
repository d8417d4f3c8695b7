package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/promisenxu/sudoku-server/internal/session"
	"github.com/promisenxu/sudoku-server/internal/sudoku"
)

const (
	// MinClues is the theoretical minimum clue count that still admits a
	// unique 9x9 solution.
	MinClues     = 17
	MaxClues     = sudoku.CellCount
	DefaultClues = 35
)

// difficultyClues maps difficulty presets to clue counts.
var difficultyClues = map[string]int{
	"easy":   50,
	"medium": 35,
	"hard":   20,
}

type NewGameDTO struct {
	Clues      int    `schema:"clues"`
	Difficulty string `schema:"difficulty"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

// ResolveClues turns the request into a clue count: an explicit clues
// value (clamped to 17..81) wins, then a difficulty preset, then the
// default.
func (dto NewGameDTO) ResolveClues() (int, error) {
	if dto.Clues != 0 {
		return min(max(dto.Clues, MinClues), MaxClues), nil
	}
	if dto.Difficulty != "" {
		clues, ok := difficultyClues[dto.Difficulty]
		if !ok {
			return 0, fmt.Errorf("unknown difficulty %q", dto.Difficulty)
		}
		return clues, nil
	}
	return DefaultClues, nil
}

type MoveDTO struct {
	Row   int   `schema:"row,required"`
	Col   int   `schema:"col,required"`
	Digit uint8 `schema:"digit,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

func (dto MoveDTO) Validate() error {
	if dto.Row < 0 || dto.Row >= sudoku.Size || dto.Col < 0 || dto.Col >= sudoku.Size {
		return fmt.Errorf("cell coordinates out of range")
	}
	if dto.Digit < 1 || dto.Digit > sudoku.Size {
		return fmt.Errorf("digit must be between 1 and 9")
	}
	return nil
}

// BoardDTO is the JSON body carrying a player's current board.
type BoardDTO struct {
	Board sudoku.Grid `json:"board"`
}

func ParseBoardDTO(r *http.Request) (BoardDTO, error) {
	var dto BoardDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		return dto, fmt.Errorf("body must be a JSON object with a 9x9 board: %w", err)
	}
	for row := range sudoku.Size {
		for col := range sudoku.Size {
			if dto.Board[row][col] > sudoku.Size {
				return dto, fmt.Errorf("board cell (%d,%d) is out of range", row, col)
			}
		}
	}
	return dto, nil
}

type GameSessionDTO struct {
	GameSessionId string      `json:"game_session_id"`
	Puzzle        sudoku.Grid `json:"puzzle"`
	Clues         int         `json:"clues"`
	Solved        bool        `json:"solved"`
	StartedAt     int64       `json:"started_at"`
	EndedAt       *int64      `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(s *session.GameSession, game *sudoku.GameState) *GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: strconv.FormatInt(s.GameSessionID, 10),
		Puzzle:        game.Puzzle,
		Clues:         game.Clues,
		Solved:        game.Solved,
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}

type CheckResultDTO struct {
	Incorrect []sudoku.CellCoord `json:"incorrect"`
	Solved    bool               `json:"solved"`
}

type MoveResultDTO struct {
	Legal bool `json:"legal"`
}
